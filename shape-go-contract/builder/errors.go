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

package builder

import (
	"errors"
	"fmt"
)

// ErrConsumed is returned by Set and Build once a builder has successfully
// built. Builders are consumed by Build and never reused.
var ErrConsumed = errors.New("builder already consumed by a successful build")

// UnknownFieldError is returned by Set when the named field is not among the
// struct shape's declared descriptors. Always caller-caused, never retryable.
type UnknownFieldError struct {
	Shape string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("struct shape %q does not declare field %q", e.Shape, e.Field)
}

// TypeMismatchError is returned by Set when the value's runtime shape is
// incompatible with the field's declared shape reference.
type TypeMismatchError struct {
	Shape    string
	Field    string
	Declared string
	Got      string
	cause    error
}

// NewTypeMismatchError is used by callers that validate pre-built values
// against a declared shape slot outside a Set call, such as the client
// dispatcher checking a caller-supplied operation input.
func NewTypeMismatchError(shapeName, field, declared, got string, cause error) *TypeMismatchError {
	return &TypeMismatchError{Shape: shapeName, Field: field, Declared: declared, Got: got, cause: cause}
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q of struct shape %q declares shape %q, got value of shape %q: %v",
		e.Field, e.Shape, e.Declared, e.Got, e.cause)
}

func (e *TypeMismatchError) Unwrap() error {
	return e.cause
}

// BuildError is the terminal failure of Build. It names the first violated
// field in the struct's declared order, keeping diagnostics reproducible.
type BuildError struct {
	Shape  string
	Field  string
	Reason string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("failed to build %q: field %q: %s", e.Shape, e.Field, e.Reason)
}
