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

// FieldDescriptor describes one struct field: its name, the name of the shape
// it holds, whether it is required, an optional default and optional read
// aliases.
//
// Defaults are declared as raw Go literals (bool, string, integer, float or
// []byte for blobs; a string for enums) and materialized against the field's
// shape when a builder applies them. A required field never carries a default.
type FieldDescriptor struct {
	name         string
	shapeRef     string
	required     bool
	defaultValue interface{}
	aliases      []string
}

// RequiredField returns a descriptor for a field that must be set before build.
func RequiredField(name, shapeRef string) FieldDescriptor {
	return FieldDescriptor{name: name, shapeRef: shapeRef, required: true}
}

// OptionalField returns a descriptor for a field that may be left unset; the
// built value then simply omits it.
func OptionalField(name, shapeRef string) FieldDescriptor {
	return FieldDescriptor{name: name, shapeRef: shapeRef}
}

// DefaultedField returns a descriptor for an optional field whose unset value
// materializes to the given literal at build time.
func DefaultedField(name, shapeRef string, defaultValue interface{}) FieldDescriptor {
	return FieldDescriptor{name: name, shapeRef: shapeRef, defaultValue: defaultValue}
}

// WithAliases returns a copy of the descriptor carrying additional read names.
// Aliases resolve to the primary field on reads and never store separately.
func (f FieldDescriptor) WithAliases(aliases ...string) FieldDescriptor {
	f.aliases = append(append([]string(nil), f.aliases...), aliases...)
	return f
}

// Validate rejects descriptors that violate the model invariants, in
// particular a required field carrying a default.
func (f FieldDescriptor) Validate() error {
	if f.name == "" {
		return fmt.Errorf("field descriptor requires a name")
	}
	if f.shapeRef == "" {
		return fmt.Errorf("field %q requires a shape reference", f.name)
	}
	if f.required && f.defaultValue != nil {
		return fmt.Errorf("field %q is required and must not declare a default", f.name)
	}
	return nil
}

// Name returns the field's primary name.
func (f FieldDescriptor) Name() string {
	return f.name
}

// ShapeRef returns the name of the shape this field holds.
func (f FieldDescriptor) ShapeRef() string {
	return f.shapeRef
}

// Required reports whether the field must be set before build.
func (f FieldDescriptor) Required() bool {
	return f.required
}

// Default returns the field's default literal, or nil if none is declared.
func (f FieldDescriptor) Default() interface{} {
	return f.defaultValue
}

// Aliases returns the field's read aliases, if any.
func (f FieldDescriptor) Aliases() []string {
	return append([]string(nil), f.aliases...)
}
