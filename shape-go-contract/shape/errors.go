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

package shape

import (
	"fmt"
)

// UnknownShapeError is returned by Resolve when no shape is registered under
// the requested name, or when the registered shape is of the wrong variant.
type UnknownShapeError struct {
	Name string
	Hint string
}

func (e *UnknownShapeError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("unknown shape %q: %s", e.Name, e.Hint)
	}
	return fmt.Sprintf("unknown shape %q", e.Name)
}

// DuplicateShapeError is returned by Register when a shape of the same name
// already exists in the registry.
type DuplicateShapeError struct {
	Name string
}

func (e *DuplicateShapeError) Error() string {
	return fmt.Sprintf("shape %q already registered", e.Name)
}

// RegistryFrozenError is returned by Register once initialization has
// completed and the registry no longer accepts writes.
type RegistryFrozenError struct {
	Name string
}

func (e *RegistryFrozenError) Error() string {
	return fmt.Sprintf("registry is frozen, cannot register shape %q", e.Name)
}
