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
	"fmt"

	"github.com/palantir/pkg/uuid"
)

// TransportErrorName identifies transport-phase failures: connectivity,
// timeouts and protocol violations. These are recoverable by caller-level
// retry policy and are never presented as domain errors.
const TransportErrorName = "Default:Transport"

// TransportError wraps a failure of the transport collaborator. Timeout marks
// cancellations and deadline expiries so retry policies can treat them apart
// from hard connectivity failures.
type TransportError struct {
	errorInstanceID uuid.UUID
	cause           error
	timeout         bool
}

var _ Error = (*TransportError)(nil)

// NewTransportError wraps a transport failure.
func NewTransportError(cause error) *TransportError {
	return &TransportError{errorInstanceID: uuid.NewUUID(), cause: cause}
}

// NewTimeoutError wraps a transport failure caused by cancellation or a
// deadline expiry.
func NewTimeoutError(cause error) *TransportError {
	return &TransportError{errorInstanceID: uuid.NewUUID(), cause: cause, timeout: true}
}

// Timeout reports whether the failure was a cancellation or deadline expiry.
func (e *TransportError) Timeout() bool {
	return e.timeout
}

// Cause returns the underlying transport failure, if any.
func (e *TransportError) Cause() error {
	return e.cause
}

func (e *TransportError) Unwrap() error {
	return e.cause
}

func (e *TransportError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("%s (%s)", TransportErrorName, e.errorInstanceID)
	}
	return fmt.Sprintf("%s (%s): %v", TransportErrorName, e.errorInstanceID, e.cause)
}

func (e *TransportError) Name() string {
	return TransportErrorName
}

func (e *TransportError) InstanceID() uuid.UUID {
	return e.errorInstanceID
}

func (e *TransportError) SafeParams() map[string]interface{} {
	return map[string]interface{}{
		"errorShape":      TransportErrorName,
		"errorInstanceId": e.errorInstanceID,
		"timeout":         e.timeout,
	}
}

func (e *TransportError) UnsafeParams() map[string]interface{} {
	return map[string]interface{}{}
}
