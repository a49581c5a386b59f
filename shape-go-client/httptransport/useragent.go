// Copyright (c) 2026 Palantir Technologies. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package httptransport

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

const runtimeModulePath = "github.com/palantir/shape-go-runtime"

var (
	userAgentOnce  sync.Once
	userAgentValue string
)

// defaultUserAgent reports this runtime and the Go toolchain, in the usual
// product/version form. The runtime version comes from the build info of the
// embedding binary and falls back to "unknown" outside module builds.
func defaultUserAgent() string {
	userAgentOnce.Do(func() {
		userAgentValue = strings.Join([]string{
			"shape-go-runtime/" + runtimeVersion(),
			fmt.Sprintf("golang/%s (%s/%s)", strings.TrimPrefix(runtime.Version(), "go"), runtime.GOOS, runtime.GOARCH),
		}, " ")
	})
	return userAgentValue
}

func runtimeVersion() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if buildInfo.Main.Path == runtimeModulePath && buildInfo.Main.Version != "" {
		return buildInfo.Main.Version
	}
	for _, mod := range buildInfo.Deps {
		if mod.Path == runtimeModulePath {
			return mod.Version
		}
	}
	return "unknown"
}
