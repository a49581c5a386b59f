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

// Package builder realizes the mutator-and-build API for any struct or
// operation-input shape. One generic engine, driven by the shape's field
// descriptors, replaces the per-struct builder types a code generator would
// emit.
//
// A Builder is single-owner and not safe for concurrent mutation. A
// successful Build consumes it; subsequent mutations fail with ErrConsumed.
package builder

import (
	"github.com/palantir/shape-go-runtime/shape-go-contract/shape"
	"github.com/palantir/shape-go-runtime/shape-go-contract/value"
)

// Builder is a mutable, in-progress projection of a struct shape: a mapping
// from field name to an optionally set value. It starts with all fields unset.
type Builder struct {
	registry *shape.Registry
	shape    *shape.Struct
	fields   map[string]value.Value
	deferred error
	consumed bool
}

// New returns a builder over the given struct shape. Field shape references
// are resolved against reg on every Set, so reg must be the registry the
// struct was registered in.
func New(reg *shape.Registry, s *shape.Struct) *Builder {
	return &Builder{
		registry: reg,
		shape:    s,
		fields:   map[string]value.Value{},
	}
}

// ForShape resolves shapeRef in reg and returns a builder over the resulting
// struct shape.
func ForShape(reg *shape.Registry, shapeRef string) (*Builder, error) {
	s, err := reg.ResolveStruct(shapeRef)
	if err != nil {
		return nil, err
	}
	return New(reg, s), nil
}

// ShapeName returns the name of the struct shape under construction.
func (b *Builder) ShapeName() string {
	return b.shape.ShapeName()
}

// Set stores v under the named field, overwriting any prior value for that
// field. It fails with *UnknownFieldError for undeclared fields and
// *TypeMismatchError when v's shape is incompatible with the field's declared
// shape reference.
func (b *Builder) Set(name string, v value.Value) error {
	if b.consumed {
		return ErrConsumed
	}
	f, ok := b.shape.Field(name)
	if !ok {
		return &UnknownFieldError{Shape: b.shape.ShapeName(), Field: name}
	}
	if err := value.Compatible(b.registry, f.ShapeRef(), v); err != nil {
		return &TypeMismatchError{
			Shape:    b.shape.ShapeName(),
			Field:    name,
			Declared: f.ShapeRef(),
			Got:      v.ShapeName(),
			cause:    err,
		}
	}
	b.fields[name] = v
	return nil
}

// SetOptional stores v when non-nil and clears the field when nil, mirroring
// the set-or-unset surface of generated builders.
func (b *Builder) SetOptional(name string, v *value.Value) error {
	if v != nil {
		return b.Set(name, *v)
	}
	if b.consumed {
		return ErrConsumed
	}
	if _, ok := b.shape.Field(name); !ok {
		return &UnknownFieldError{Shape: b.shape.ShapeName(), Field: name}
	}
	delete(b.fields, name)
	return nil
}

// With is the chainable form of Set. The first mutation error is retained and
// surfaced by Build, since a fluent chain has nowhere to return it.
func (b *Builder) With(name string, v value.Value) *Builder {
	if err := b.Set(name, v); err != nil && b.deferred == nil {
		b.deferred = err
	}
	return b
}

// Get returns the current in-progress value of the named field, if set. It
// reads builder state, not a built value.
func (b *Builder) Get(name string) (value.Value, bool) {
	v, ok := b.fields[name]
	return v, ok
}

// Build validates and materializes an immutable value.
//
// Validation reports the first required field, in declared order, that is
// neither set nor defaulted, as a *BuildError — deterministically, so repeated
// failed builds of the same partial state name the same field. On success,
// defaults are applied to unset optional fields and the builder is consumed.
// A struct with zero fields builds unconditionally.
func (b *Builder) Build() (value.Value, error) {
	if b.consumed {
		return value.Value{}, ErrConsumed
	}
	if b.deferred != nil {
		return value.Value{}, b.deferred
	}
	out := make(map[string]value.Value, len(b.fields))
	for _, f := range b.shape.Fields() {
		if v, set := b.fields[f.Name()]; set {
			out[f.Name()] = v
			continue
		}
		if def := f.Default(); def != nil {
			v, err := value.FromLiteral(b.registry, f.ShapeRef(), def)
			if err != nil {
				return value.Value{}, &BuildError{
					Shape:  b.shape.ShapeName(),
					Field:  f.Name(),
					Reason: "invalid default: " + err.Error(),
				}
			}
			out[f.Name()] = v
			continue
		}
		if f.Required() {
			return value.Value{}, &BuildError{
				Shape:  b.shape.ShapeName(),
				Field:  f.Name(),
				Reason: "missing required field",
			}
		}
	}
	v, err := value.NewStructValue(b.registry, b.shape, out)
	if err != nil {
		return value.Value{}, err
	}
	b.consumed = true
	return v, nil
}
