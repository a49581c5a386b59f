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

// Registry is the process-wide catalog of shape definitions, keyed by name.
// It is populated once at initialization and frozen before any concurrent use;
// a frozen registry is safe for unsynchronized reads because no further writes
// occur. All shape access outside initialization goes through Resolve.
type Registry struct {
	shapes map[string]Shape
	frozen bool
}

// Source supplies shape definitions to a registry in a single batch. It is the
// only collaborator interface on the loading side; schema parsing itself lives
// behind implementations such as shapeyaml.
type Source interface {
	Shapes() ([]Shape, error)
}

// NewRegistry returns an empty, unfrozen registry.
func NewRegistry() *Registry {
	return &Registry{shapes: map[string]Shape{}}
}

// Register adds a shape to the registry. It fails with *DuplicateShapeError if
// a shape of the same name exists and with *RegistryFrozenError after Freeze.
func (r *Registry) Register(s Shape) error {
	if r.frozen {
		return &RegistryFrozenError{Name: s.ShapeName()}
	}
	name := s.ShapeName()
	if _, exists := r.shapes[name]; exists {
		return &DuplicateShapeError{Name: name}
	}
	r.shapes[name] = s
	return nil
}

// Load batch-registers the given shapes and freezes the registry. It is the
// schema-source entry point and is called exactly once; a second Load fails
// with *RegistryFrozenError from the first registration.
func (r *Registry) Load(shapes ...Shape) error {
	for _, s := range shapes {
		if err := r.Register(s); err != nil {
			return err
		}
	}
	r.Freeze()
	return nil
}

// LoadFrom loads the registry from a schema source and freezes it.
func (r *Registry) LoadFrom(src Source) error {
	shapes, err := src.Shapes()
	if err != nil {
		return err
	}
	return r.Load(shapes...)
}

// Freeze ends the initialization phase. Every subsequent Register fails; reads
// need no synchronization from here on.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether initialization has completed.
func (r *Registry) Frozen() bool {
	return r.frozen
}

// Resolve returns the shape registered under name, or *UnknownShapeError.
func (r *Registry) Resolve(name string) (Shape, error) {
	s, ok := r.shapes[name]
	if !ok {
		return nil, &UnknownShapeError{Name: name}
	}
	return s, nil
}

// ResolveStruct resolves name and asserts the result is a struct shape.
func (r *Registry) ResolveStruct(name string) (*Struct, error) {
	s, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	st, ok := s.(*Struct)
	if !ok {
		return nil, &UnknownShapeError{Name: name, Hint: "registered shape is not a struct"}
	}
	return st, nil
}

// ResolveOperation resolves name and asserts the result is an operation shape.
func (r *Registry) ResolveOperation(name string) (*Operation, error) {
	s, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	op, ok := s.(*Operation)
	if !ok {
		return nil, &UnknownShapeError{Name: name, Hint: "registered shape is not an operation"}
	}
	return op, nil
}

// MustLoad is like Load but panics on failure. Registry-phase errors indicate
// a configuration defect and abort startup.
func MustLoad(r *Registry, shapes ...Shape) {
	if err := r.Load(shapes...); err != nil {
		panic(err)
	}
}
