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

package errors

import (
	"github.com/palantir/shape-go-runtime/shape-go-contract/builder"
	contracterrors "github.com/palantir/shape-go-runtime/shape-go-contract/errors"
)

// Outcome provides high-level categories for dispatch results, used to tag
// client invocation metrics.
type Outcome string

const (
	// Success tags invocations that produced a typed output value.
	Success Outcome = "success"

	// Build tags invocations rejected before dispatch by builder validation.
	Build Outcome = "build"

	// Domain tags invocations the remote side answered with a declared error shape.
	Domain Outcome = "domain"

	// Transport tags connectivity, protocol and undeclared-payload failures.
	Transport Outcome = "transport"

	// Timeout tags transport failures caused by cancellation or deadline expiry.
	Timeout Outcome = "timeout"

	// Other is the catch-all for failures that fit no dispatch phase.
	Other Outcome = "other"
)

// OutcomeOf classifies a dispatch result.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return Success
	}
	var be *builder.BuildError
	if contracterrors.As(err, &be) {
		return Build
	}
	if _, ok := contracterrors.AsDomainError(err); ok {
		return Domain
	}
	if te, ok := contracterrors.AsTransportError(err); ok {
		if te.Timeout() {
			return Timeout
		}
		return Transport
	}
	return Other
}
