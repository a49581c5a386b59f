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

// Package shapeyaml loads shape definitions from YAML schema documents. It is
// a shape.Source: parsing happens once at initialization and feeds a registry
// in a single batch.
//
// Document form:
//
//	shapes:
//	  - name: EnumV2
//	    type: enum
//	    variants: [FIRST, SECOND]
//	  - name: GetLongInput
//	    type: struct
//	    fields:
//	      - name: value
//	        shape: Long
//	        aliases: [message]
//	  - name: GetLong
//	    type: operation
//	    input: GetLongInput
//	    output: GetLongOutput
//	    errors: [NotFoundError]
//
// The standard primitives (Blob, Boolean, String, Integer, Long, Double) are
// implied; documents reference them without declaring them.
package shapeyaml

import (
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	werror "github.com/palantir/witchcraft-go-error"

	"github.com/palantir/shape-go-runtime/shape-go-contract/codecs"
	"github.com/palantir/shape-go-runtime/shape-go-contract/shape"
)

type document struct {
	Shapes []shapeDef `yaml:"shapes" validate:"required,min=1,dive"`
}

type shapeDef struct {
	Name     string     `yaml:"name" validate:"required"`
	Type     string     `yaml:"type" validate:"required,oneof=primitive enum struct operation"`
	Kind     string     `yaml:"kind,omitempty"`
	Variants []string   `yaml:"variants,omitempty"`
	Fields   []fieldDef `yaml:"fields,omitempty" validate:"dive"`
	Input    string     `yaml:"input,omitempty"`
	Output   string     `yaml:"output,omitempty"`
	Errors   []string   `yaml:"errors,omitempty"`
}

type fieldDef struct {
	Name     string      `yaml:"name" validate:"required"`
	Shape    string      `yaml:"shape" validate:"required"`
	Required bool        `yaml:"required,omitempty"`
	Default  interface{} `yaml:"default,omitempty"`
	Aliases  []string    `yaml:"aliases,omitempty"`
}

// Source is a parsed schema document, ready to feed a shape registry.
type Source struct {
	shapes []shape.Shape
}

var _ shape.Source = (*Source)(nil)

// New parses a schema document from r.
func New(r io.Reader) (*Source, error) {
	var doc document
	if err := codecs.YAML.Decode(r, &doc); err != nil {
		return nil, werror.Wrap(err, "failed to decode schema document")
	}
	if err := validator.New().Struct(doc); err != nil {
		return nil, werror.Wrap(err, "schema document failed validation")
	}
	shapes := shape.Builtins()
	declared := map[string]struct{}{}
	for _, s := range shapes {
		declared[s.ShapeName()] = struct{}{}
	}
	for _, def := range doc.Shapes {
		s, err := convert(def)
		if err != nil {
			return nil, err
		}
		if _, exists := declared[s.ShapeName()]; exists {
			return nil, werror.Error("schema document redeclares shape",
				werror.SafeParam("shape", s.ShapeName()))
		}
		declared[s.ShapeName()] = struct{}{}
		shapes = append(shapes, s)
	}
	return &Source{shapes: shapes}, nil
}

// FromFile parses the schema document at path.
func FromFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, werror.Wrap(err, "failed to open schema document", werror.UnsafeParam("path", path))
	}
	defer func() { _ = f.Close() }()
	return New(f)
}

// Shapes returns the built-in primitives followed by the document's shapes in
// declared order.
func (s *Source) Shapes() ([]shape.Shape, error) {
	return append([]shape.Shape(nil), s.shapes...), nil
}

func convert(def shapeDef) (shape.Shape, error) {
	switch def.Type {
	case "primitive":
		p, err := shape.NewPrimitive(def.Name, shape.Kind(def.Kind))
		if err != nil {
			return nil, werror.Wrap(err, "invalid primitive definition", werror.SafeParam("shape", def.Name))
		}
		return p, nil
	case "enum":
		e, err := shape.NewEnum(def.Name, def.Variants...)
		if err != nil {
			return nil, werror.Wrap(err, "invalid enum definition", werror.SafeParam("shape", def.Name))
		}
		return e, nil
	case "struct":
		fields := make([]shape.FieldDescriptor, 0, len(def.Fields))
		for _, fd := range def.Fields {
			f, err := convertField(def.Name, fd)
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
		}
		s, err := shape.NewStruct(def.Name, fields...)
		if err != nil {
			return nil, werror.Wrap(err, "invalid struct definition", werror.SafeParam("shape", def.Name))
		}
		return s, nil
	case "operation":
		op, err := shape.NewOperation(def.Name, def.Input, def.Output, def.Errors...)
		if err != nil {
			return nil, werror.Wrap(err, "invalid operation definition", werror.SafeParam("shape", def.Name))
		}
		return op, nil
	}
	return nil, werror.Error("unknown shape type", werror.SafeParam("type", def.Type))
}

func convertField(structName string, fd fieldDef) (shape.FieldDescriptor, error) {
	var f shape.FieldDescriptor
	switch {
	case fd.Required && fd.Default != nil:
		return f, werror.Error("required field must not declare a default",
			werror.SafeParam("shape", structName), werror.SafeParam("field", fd.Name))
	case fd.Required:
		f = shape.RequiredField(fd.Name, fd.Shape)
	case fd.Default != nil:
		f = shape.DefaultedField(fd.Name, fd.Shape, fd.Default)
	default:
		f = shape.OptionalField(fd.Name, fd.Shape)
	}
	if len(fd.Aliases) > 0 {
		f = f.WithAliases(fd.Aliases...)
	}
	return f, nil
}
