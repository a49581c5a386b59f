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

package value

// EnumValue is an instance of an enum shape: either a known variant or an
// unrecognized raw string kept verbatim for forward compatibility with
// variants the local schema has not learned about yet.
//
// Known and unrecognized values never compare equal, even for the same string,
// because they signal different provenance.
type EnumValue struct {
	raw   string
	known bool
}

// Known returns an enum value tagged as one of the shape's declared variants.
// Use EnumOf to classify a raw string against an actual enum shape.
func Known(tag string) EnumValue {
	return EnumValue{raw: tag, known: true}
}

// Unrecognized returns an enum value preserving a raw string that is not among
// the declared variants.
func Unrecognized(raw string) EnumValue {
	return EnumValue{raw: raw}
}

// IsKnown reports whether the value is one of the declared variants.
func (e EnumValue) IsKnown() bool {
	return e.known
}

// String returns the variant tag for known values and the preserved raw string
// for unrecognized ones.
func (e EnumValue) String() string {
	return e.raw
}

// Equal reports whether both values have the same provenance and the same
// string form.
func (e EnumValue) Equal(other EnumValue) bool {
	return e.known == other.known && e.raw == other.raw
}
