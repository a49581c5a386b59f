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
	"context"
	"fmt"

	werror "github.com/palantir/witchcraft-go-error"

	"github.com/palantir/shape-go-runtime/shape-go-contract/codecs"
	"github.com/palantir/shape-go-runtime/shape-go-contract/shape"
)

// Registry maps error shape names to struct shapes so remote errors decode
// into typed DomainErrors. Unregistered names fall back to genericError,
// which keeps the raw parameters instead of failing.
type Registry struct {
	shapes *shape.Registry
	names  map[string]*shape.Struct
}

// NewRegistry returns an error-shape registry resolving against the given
// shape registry.
func NewRegistry(shapes *shape.Registry) *Registry {
	return &Registry{shapes: shapes, names: map[string]*shape.Struct{}}
}

// RegisterErrorShape adds an error shape. It fails when a different shape is
// already registered under the same name; re-registering the same shape is a
// no-op so multiple operations can declare a shared error.
func (r *Registry) RegisterErrorShape(s *shape.Struct) error {
	if existing, exists := r.names[s.ShapeName()]; exists {
		if existing == s {
			return nil
		}
		return fmt.Errorf("error shape %q already registered with a different definition", s.ShapeName())
	}
	r.names[s.ShapeName()] = s
	return nil
}

// RegisterOperationErrors registers every error shape an operation declares.
func (r *Registry) RegisterOperationErrors(op *shape.Operation) error {
	for _, ref := range op.ErrorRefs() {
		s, err := r.shapes.ResolveStruct(ref)
		if err != nil {
			return err
		}
		if err := r.RegisterErrorShape(s); err != nil {
			return err
		}
	}
	return nil
}

// CopyFrom merges another registry's error shapes into this one.
func (r *Registry) CopyFrom(other *Registry) error {
	for _, s := range other.names {
		if err := r.RegisterErrorShape(s); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalJSONError decodes a SerializableError body into a typed Error. The
// producing side's instance id is preserved. Registered shapes decode into
// *DomainError; unknown names yield the generic form.
func (r *Registry) UnmarshalJSONError(ctx context.Context, body []byte) (Error, error) {
	var se SerializableError
	if err := codecs.JSON.Unmarshal(body, &se); err != nil {
		return nil, werror.WrapWithContextParams(ctx, err, "failed to unmarshal body as serializable error")
	}
	s, registered := r.names[se.ErrorShape]
	if !registered {
		return genericError{
			name:            se.ErrorShape,
			errorInstanceID: se.ErrorInstanceID,
			parameters:      se.Parameters,
		}, nil
	}
	params := se.Parameters
	if len(params) == 0 {
		params = []byte("{}")
	}
	v, err := codecs.UnmarshalValue(r.shapes, s.ShapeName(), params)
	if err != nil {
		return nil, werror.WrapWithContextParams(ctx, err, "failed to unmarshal error parameters using registered shape",
			werror.SafeParam("errorShape", se.ErrorShape))
	}
	return newDomainErrorWithID(v, se.ErrorInstanceID), nil
}

// MustRegisterErrorShape is like RegisterErrorShape but panics on failure.
// Registration happens at initialization, where failure aborts startup.
func MustRegisterErrorShape(registry *Registry, s *shape.Struct) {
	if err := registry.RegisterErrorShape(s); err != nil {
		panic(err)
	}
}
