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

// Package shape defines the abstract model of a service description: primitive,
// enum, struct and operation shapes, plus the registry that owns them.
//
// Shapes are metadata only. Building and reading concrete instances of a shape
// is the job of the builder and value packages, both of which are driven by the
// descriptors declared here rather than by per-shape generated code.
package shape

import (
	"fmt"
)

// Kind enumerates the primitive scalar families a shape model can declare.
type Kind string

const (
	KindBlob    Kind = "blob"
	KindBoolean Kind = "boolean"
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindLong    Kind = "long"
	KindDouble  Kind = "double"
)

// Valid reports whether k is one of the declared primitive kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindBlob, KindBoolean, KindString, KindInteger, KindLong, KindDouble:
		return true
	}
	return false
}

// Shape is an abstract definition held by a Registry. Implementations are
// Primitive, Enum, Struct and Operation.
type Shape interface {
	ShapeName() string
}

// Primitive is a named scalar shape.
type Primitive struct {
	name string
	kind Kind
}

// NewPrimitive returns a primitive shape of the given kind.
func NewPrimitive(name string, kind Kind) (*Primitive, error) {
	if name == "" {
		return nil, fmt.Errorf("primitive shape requires a name")
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("primitive shape %q declares unknown kind %q", name, kind)
	}
	return &Primitive{name: name, kind: kind}, nil
}

func (p *Primitive) ShapeName() string {
	return p.name
}

func (p *Primitive) Kind() Kind {
	return p.kind
}

// Enum is a named shape with a closed set of known variants. Values outside the
// known set are still representable as unrecognized values, so the set is
// closed for equality purposes only, not for construction.
type Enum struct {
	name     string
	variants []string
	known    map[string]struct{}
}

// NewEnum returns an enum shape with the given known variants, in declared order.
func NewEnum(name string, variants ...string) (*Enum, error) {
	if name == "" {
		return nil, fmt.Errorf("enum shape requires a name")
	}
	known := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		if _, exists := known[v]; exists {
			return nil, fmt.Errorf("enum shape %q declares variant %q twice", name, v)
		}
		known[v] = struct{}{}
	}
	return &Enum{name: name, variants: append([]string(nil), variants...), known: known}, nil
}

func (e *Enum) ShapeName() string {
	return e.name
}

// Variants returns the known variants in declared order.
func (e *Enum) Variants() []string {
	return append([]string(nil), e.variants...)
}

// IsKnown reports whether tag is one of the declared variants.
func (e *Enum) IsKnown(tag string) bool {
	_, ok := e.known[tag]
	return ok
}

// Struct is a named shape with an ordered list of field descriptors. Field
// names and aliases are unique within a struct; declared order is significant
// because build diagnostics report the first violated field in that order.
type Struct struct {
	name    string
	fields  []FieldDescriptor
	byName  map[string]int
	byAlias map[string]int
}

// NewStruct returns a struct shape over the given fields. It rejects duplicate
// field names and aliases that collide with field names or other aliases.
func NewStruct(name string, fields ...FieldDescriptor) (*Struct, error) {
	if name == "" {
		return nil, fmt.Errorf("struct shape requires a name")
	}
	byName := make(map[string]int, len(fields))
	byAlias := map[string]int{}
	for i, f := range fields {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("struct shape %q: %v", name, err)
		}
		if _, exists := byName[f.name]; exists {
			return nil, fmt.Errorf("struct shape %q declares field %q twice", name, f.name)
		}
		byName[f.name] = i
	}
	for i, f := range fields {
		for _, alias := range f.aliases {
			if _, exists := byName[alias]; exists {
				return nil, fmt.Errorf("struct shape %q alias %q collides with a field name", name, alias)
			}
			if _, exists := byAlias[alias]; exists {
				return nil, fmt.Errorf("struct shape %q declares alias %q twice", name, alias)
			}
			byAlias[alias] = i
		}
	}
	return &Struct{
		name:    name,
		fields:  append([]FieldDescriptor(nil), fields...),
		byName:  byName,
		byAlias: byAlias,
	}, nil
}

// MustStruct is like NewStruct but panics on invalid definitions. Intended for
// static shape declarations evaluated at process startup.
func MustStruct(name string, fields ...FieldDescriptor) *Struct {
	s, err := NewStruct(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Struct) ShapeName() string {
	return s.name
}

// Fields returns the field descriptors in declared order.
func (s *Struct) Fields() []FieldDescriptor {
	return append([]FieldDescriptor(nil), s.fields...)
}

// NumFields returns the number of declared fields.
func (s *Struct) NumFields() int {
	return len(s.fields)
}

// Field returns the descriptor for the given field name. Aliases are not
// considered; use ResolveField for alias-aware lookup.
func (s *Struct) Field(name string) (FieldDescriptor, bool) {
	i, ok := s.byName[name]
	if !ok {
		return FieldDescriptor{}, false
	}
	return s.fields[i], true
}

// ResolveField returns the descriptor for the given field name or alias. An
// alias always resolves to its primary field; it is a read name, never a
// second store.
func (s *Struct) ResolveField(name string) (FieldDescriptor, bool) {
	if f, ok := s.Field(name); ok {
		return f, true
	}
	i, ok := s.byAlias[name]
	if !ok {
		return FieldDescriptor{}, false
	}
	return s.fields[i], true
}

// Operation is a named shape pairing an input struct with an output struct and
// a set of declared error shapes. All references are by shape name and are
// resolved against the owning registry at call time.
type Operation struct {
	name      string
	inputRef  string
	outputRef string
	errorRefs []string
	errorSet  map[string]struct{}
}

// NewOperation returns an operation shape. Input and output references are
// required; error references are optional and de-duplicated set semantics.
func NewOperation(name, inputRef, outputRef string, errorRefs ...string) (*Operation, error) {
	if name == "" {
		return nil, fmt.Errorf("operation shape requires a name")
	}
	if inputRef == "" || outputRef == "" {
		return nil, fmt.Errorf("operation shape %q requires input and output shape references", name)
	}
	errorSet := make(map[string]struct{}, len(errorRefs))
	ordered := make([]string, 0, len(errorRefs))
	for _, ref := range errorRefs {
		if _, exists := errorSet[ref]; exists {
			continue
		}
		errorSet[ref] = struct{}{}
		ordered = append(ordered, ref)
	}
	return &Operation{
		name:      name,
		inputRef:  inputRef,
		outputRef: outputRef,
		errorRefs: ordered,
		errorSet:  errorSet,
	}, nil
}

func (o *Operation) ShapeName() string {
	return o.name
}

// InputRef returns the name of the operation's input struct shape.
func (o *Operation) InputRef() string {
	return o.inputRef
}

// OutputRef returns the name of the operation's output struct shape.
func (o *Operation) OutputRef() string {
	return o.outputRef
}

// ErrorRefs returns the declared error shape names in declared order.
func (o *Operation) ErrorRefs() []string {
	return append([]string(nil), o.errorRefs...)
}

// DeclaresError reports whether the named shape is one of the operation's
// declared error shapes.
func (o *Operation) DeclaresError(name string) bool {
	_, ok := o.errorSet[name]
	return ok
}
