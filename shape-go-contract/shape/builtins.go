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

// Standard names for the built-in primitive shapes. Schema documents refer to
// these without declaring them.
const (
	BuiltinBlob    = "Blob"
	BuiltinBoolean = "Boolean"
	BuiltinString  = "String"
	BuiltinInteger = "Integer"
	BuiltinLong    = "Long"
	BuiltinDouble  = "Double"
)

// Builtins returns the standard primitive shapes under their conventional
// names, one per kind.
func Builtins() []Shape {
	names := []struct {
		name string
		kind Kind
	}{
		{BuiltinBlob, KindBlob},
		{BuiltinBoolean, KindBoolean},
		{BuiltinString, KindString},
		{BuiltinInteger, KindInteger},
		{BuiltinLong, KindLong},
		{BuiltinDouble, KindDouble},
	}
	shapes := make([]Shape, 0, len(names))
	for _, n := range names {
		p, err := NewPrimitive(n.name, n.kind)
		if err != nil {
			panic(err)
		}
		shapes = append(shapes, p)
	}
	return shapes
}
