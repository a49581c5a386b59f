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

// Package value holds fully-built, immutable instances of shapes: primitive
// scalars, enum values and field mappings honoring a struct's descriptors.
// Values are freely shareable across goroutines; mutation happens only in the
// builder package, before a value exists.
package value

import (
	"bytes"
	"fmt"

	"github.com/palantir/shape-go-runtime/shape-go-contract/shape"
)

// Value is an immutable instance of a shape. The zero Value is invalid and is
// only returned alongside a non-nil error.
type Value struct {
	shape  shape.Shape
	scalar interface{}
	enum   EnumValue
	fields map[string]Value
}

// NewScalar returns a primitive value. The Go type of v must match the
// primitive's kind: []byte for blob, bool for boolean, string for string,
// int32 for integer, int64 for long, float64 for double. Blob contents are
// copied so the caller's slice stays independent.
func NewScalar(p *shape.Primitive, v interface{}) (Value, error) {
	switch p.Kind() {
	case shape.KindBlob:
		b, ok := v.([]byte)
		if !ok {
			return Value{}, scalarTypeError(p, v)
		}
		v = append([]byte(nil), b...)
	case shape.KindBoolean:
		if _, ok := v.(bool); !ok {
			return Value{}, scalarTypeError(p, v)
		}
	case shape.KindString:
		if _, ok := v.(string); !ok {
			return Value{}, scalarTypeError(p, v)
		}
	case shape.KindInteger:
		if _, ok := v.(int32); !ok {
			return Value{}, scalarTypeError(p, v)
		}
	case shape.KindLong:
		if _, ok := v.(int64); !ok {
			return Value{}, scalarTypeError(p, v)
		}
	case shape.KindDouble:
		if _, ok := v.(float64); !ok {
			return Value{}, scalarTypeError(p, v)
		}
	default:
		return Value{}, fmt.Errorf("primitive shape %q has unknown kind %q", p.ShapeName(), p.Kind())
	}
	return Value{shape: p, scalar: v}, nil
}

func scalarTypeError(p *shape.Primitive, v interface{}) error {
	return fmt.Errorf("value of type %T is not valid for %s shape %q", v, p.Kind(), p.ShapeName())
}

// NewEnum returns an enum value of the given shape. Construction never fails;
// out-of-set strings are representable as unrecognized values.
func NewEnum(e *shape.Enum, ev EnumValue) Value {
	return Value{shape: e, enum: ev}
}

// EnumOf classifies raw against the enum shape's declared variants and returns
// the resulting known or unrecognized value.
func EnumOf(e *shape.Enum, raw string) Value {
	if e.IsKnown(raw) {
		return NewEnum(e, Known(raw))
	}
	return NewEnum(e, Unrecognized(raw))
}

// NewStructValue returns a struct value over the given field mapping. Every
// provided field must be declared by the struct shape and hold a value
// compatible with the field's shape reference. Required-field enforcement and
// default application belong to the builder; this constructor checks only
// membership and shape compatibility, so that the builder stays the single
// path to a validated value.
func NewStructValue(reg *shape.Registry, s *shape.Struct, fields map[string]Value) (Value, error) {
	copied := make(map[string]Value, len(fields))
	for name, fv := range fields {
		f, ok := s.Field(name)
		if !ok {
			return Value{}, fmt.Errorf("struct shape %q does not declare field %q", s.ShapeName(), name)
		}
		if err := Compatible(reg, f.ShapeRef(), fv); err != nil {
			return Value{}, fmt.Errorf("struct shape %q field %q: %v", s.ShapeName(), name, err)
		}
		copied[name] = fv
	}
	return Value{shape: s, fields: copied}, nil
}

// Compatible reports whether v can be stored in a slot declared with the given
// shape reference. Primitives are compatible by kind, enums and structs by
// shape name.
func Compatible(reg *shape.Registry, shapeRef string, v Value) error {
	if v.shape == nil {
		return fmt.Errorf("zero value is not compatible with shape %q", shapeRef)
	}
	declared, err := reg.Resolve(shapeRef)
	if err != nil {
		return err
	}
	switch d := declared.(type) {
	case *shape.Primitive:
		p, ok := v.shape.(*shape.Primitive)
		if !ok {
			return fmt.Errorf("value of shape %q is not a %s primitive", v.ShapeName(), d.Kind())
		}
		if p.Kind() != d.Kind() {
			return fmt.Errorf("primitive kind %s does not match declared kind %s", p.Kind(), d.Kind())
		}
	case *shape.Enum:
		if v.ShapeName() != d.ShapeName() {
			return fmt.Errorf("value of shape %q is not enum shape %q", v.ShapeName(), d.ShapeName())
		}
	case *shape.Struct:
		if v.ShapeName() != d.ShapeName() {
			return fmt.Errorf("value of shape %q is not struct shape %q", v.ShapeName(), d.ShapeName())
		}
	default:
		return fmt.Errorf("shape %q cannot be used as a field shape", shapeRef)
	}
	return nil
}

// Shape returns the shape this value instantiates.
func (v Value) Shape() shape.Shape {
	return v.shape
}

// ShapeName returns the name of the value's shape, or "" for the zero value.
func (v Value) ShapeName() string {
	if v.shape == nil {
		return ""
	}
	return v.shape.ShapeName()
}

// IsValid reports whether the value was produced by a constructor rather than
// being the zero Value.
func (v Value) IsValid() bool {
	return v.shape != nil
}

// Field returns the value stored under the given field name or alias. The
// second return is false when the field is unset or undeclared.
func (v Value) Field(name string) (Value, bool) {
	s, ok := v.shape.(*shape.Struct)
	if !ok {
		return Value{}, false
	}
	f, ok := s.ResolveField(name)
	if !ok {
		return Value{}, false
	}
	fv, ok := v.fields[f.Name()]
	return fv, ok
}

// FieldNames returns the names of set fields in the struct's declared order.
func (v Value) FieldNames() []string {
	s, ok := v.shape.(*shape.Struct)
	if !ok {
		return nil
	}
	var names []string
	for _, f := range s.Fields() {
		if _, set := v.fields[f.Name()]; set {
			names = append(names, f.Name())
		}
	}
	return names
}

// AsBool projects a boolean scalar.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.scalar.(bool)
	return b, ok
}

// AsString projects a string scalar.
func (v Value) AsString() (string, bool) {
	s, ok := v.scalar.(string)
	return s, ok
}

// AsInteger projects an integer scalar.
func (v Value) AsInteger() (int32, bool) {
	i, ok := v.scalar.(int32)
	return i, ok
}

// AsLong projects a long scalar.
func (v Value) AsLong() (int64, bool) {
	i, ok := v.scalar.(int64)
	return i, ok
}

// AsDouble projects a double scalar.
func (v Value) AsDouble() (float64, bool) {
	f, ok := v.scalar.(float64)
	return f, ok
}

// AsBlob projects a blob scalar. The returned slice is a copy.
func (v Value) AsBlob() ([]byte, bool) {
	b, ok := v.scalar.([]byte)
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b...), true
}

// AsEnum projects an enum value.
func (v Value) AsEnum() (EnumValue, bool) {
	if _, ok := v.shape.(*shape.Enum); !ok {
		return EnumValue{}, false
	}
	return v.enum, true
}

// Equal reports deep equality: same shape name, and equal scalar, enum or
// field mapping. Enum equality honors the known/unrecognized distinction.
func (v Value) Equal(other Value) bool {
	if v.shape == nil || other.shape == nil {
		return v.shape == nil && other.shape == nil
	}
	if v.ShapeName() != other.ShapeName() {
		return false
	}
	switch v.shape.(type) {
	case *shape.Primitive:
		if b, ok := v.scalar.([]byte); ok {
			ob, ook := other.scalar.([]byte)
			return ook && bytes.Equal(b, ob)
		}
		return v.scalar == other.scalar
	case *shape.Enum:
		return v.enum.Equal(other.enum)
	case *shape.Struct:
		if len(v.fields) != len(other.fields) {
			return false
		}
		for name, fv := range v.fields {
			ofv, ok := other.fields[name]
			if !ok || !fv.Equal(ofv) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders a short human-readable form, mainly for logs and test output.
func (v Value) String() string {
	switch v.shape.(type) {
	case nil:
		return "<zero>"
	case *shape.Enum:
		if v.enum.IsKnown() {
			return fmt.Sprintf("%s.%s", v.ShapeName(), v.enum.String())
		}
		return fmt.Sprintf("%s.unrecognized(%s)", v.ShapeName(), v.enum.String())
	case *shape.Struct:
		return fmt.Sprintf("%s%v", v.ShapeName(), v.FieldNames())
	default:
		return fmt.Sprintf("%s(%v)", v.ShapeName(), v.scalar)
	}
}
