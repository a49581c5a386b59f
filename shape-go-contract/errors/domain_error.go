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
	"encoding/json"
	"fmt"

	"github.com/palantir/pkg/uuid"

	"github.com/palantir/shape-go-runtime/shape-go-contract/codecs"
	"github.com/palantir/shape-go-runtime/shape-go-contract/value"
)

// DomainError is a typed failure instantiating one of an operation's declared
// error shapes. It carries the matched shape's fields as a built value, so
// callers inspect it with the same accessors they use on outputs.
type DomainError struct {
	val             value.Value
	errorInstanceID uuid.UUID
}

var (
	_ Error          = (*DomainError)(nil)
	_ fmt.Stringer   = (*DomainError)(nil)
	_ json.Marshaler = (*DomainError)(nil)
)

// NewDomainError returns a domain error over a built value of an error shape.
func NewDomainError(v value.Value) *DomainError {
	return &DomainError{val: v, errorInstanceID: uuid.NewUUID()}
}

// newDomainErrorWithID preserves the instance id of a remotely produced error.
func newDomainErrorWithID(v value.Value, id uuid.UUID) *DomainError {
	return &DomainError{val: v, errorInstanceID: id}
}

// Value returns the error shape's built value.
func (e *DomainError) Value() value.Value {
	return e.val
}

// String representation of the error.
//
// For example:
//
//	"NotFoundError (00010203-0405-0607-0809-0a0b0c0d0e0f)"
func (e *DomainError) String() string {
	return fmt.Sprintf("%s (%s)", e.Name(), e.errorInstanceID)
}

func (e *DomainError) Error() string {
	return e.String()
}

func (e *DomainError) Name() string {
	return e.val.ShapeName()
}

func (e *DomainError) InstanceID() uuid.UUID {
	return e.errorInstanceID
}

func (e *DomainError) SafeParams() map[string]interface{} {
	return map[string]interface{}{
		"errorShape":      e.Name(),
		"errorInstanceId": e.errorInstanceID,
	}
}

// UnsafeParams exposes the error shape's set fields. Field contents are
// treated as unsafe since the schema carries no safety markings.
func (e *DomainError) UnsafeParams() map[string]interface{} {
	params := map[string]interface{}{}
	for _, name := range e.val.FieldNames() {
		fv, _ := e.val.Field(name)
		params[name] = fv.String()
	}
	return params
}

func (e *DomainError) MarshalJSON() ([]byte, error) {
	params, err := codecs.MarshalValue(e.val)
	if err != nil {
		return nil, err
	}
	return json.Marshal(SerializableError{
		ErrorShape:      e.Name(),
		ErrorInstanceID: e.errorInstanceID,
		Parameters:      params,
	})
}
