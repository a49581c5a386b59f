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

package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palantir/shape-go-runtime/shape-go-contract/shape"
	"github.com/palantir/shape-go-runtime/shape-go-contract/value"
)

func newTestRegistry(t *testing.T, extra ...shape.Shape) *shape.Registry {
	t.Helper()
	reg := shape.NewRegistry()
	require.NoError(t, reg.Load(append(shape.Builtins(), extra...)...))
	return reg
}

func mustPrimitive(t *testing.T, reg *shape.Registry, name string) *shape.Primitive {
	t.Helper()
	s, err := reg.Resolve(name)
	require.NoError(t, err)
	p, ok := s.(*shape.Primitive)
	require.True(t, ok)
	return p
}

func TestNewScalarTypeChecks(t *testing.T) {
	reg := newTestRegistry(t)
	for _, test := range []struct {
		shapeName string
		good      interface{}
		bad       interface{}
	}{
		{shape.BuiltinBoolean, true, "true"},
		{shape.BuiltinString, "hi", 42},
		{shape.BuiltinInteger, int32(7), int64(7)},
		{shape.BuiltinLong, int64(7), int32(7)},
		{shape.BuiltinDouble, 1.5, float32(1.5)},
		{shape.BuiltinBlob, []byte{1, 2}, "AQI="},
	} {
		t.Run(test.shapeName, func(t *testing.T) {
			p := mustPrimitive(t, reg, test.shapeName)
			_, err := value.NewScalar(p, test.good)
			require.NoError(t, err)
			_, err = value.NewScalar(p, test.bad)
			require.Error(t, err)
		})
	}
}

func TestBlobValuesAreCopied(t *testing.T) {
	reg := newTestRegistry(t)
	p := mustPrimitive(t, reg, shape.BuiltinBlob)

	src := []byte{1, 2, 3}
	v, err := value.NewScalar(p, src)
	require.NoError(t, err)
	src[0] = 99

	got, ok := v.AsBlob()
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, got)

	// mutations of the projection do not reach the value either
	got[1] = 99
	again, _ := v.AsBlob()
	assert.Equal(t, []byte{1, 2, 3}, again)
}

func TestStructFieldAliases(t *testing.T) {
	input := shape.MustStruct("GetLongInput",
		shape.OptionalField("value", shape.BuiltinLong).WithAliases("message"),
	)
	reg := newTestRegistry(t, input)
	long := mustPrimitive(t, reg, shape.BuiltinLong)

	fv, err := value.NewScalar(long, int64(42))
	require.NoError(t, err)
	v, err := value.NewStructValue(reg, input, map[string]value.Value{"value": fv})
	require.NoError(t, err)

	primary, ok := v.Field("value")
	require.True(t, ok)
	aliased, ok := v.Field("message")
	require.True(t, ok)
	assert.True(t, primary.Equal(aliased))
}

func TestNewStructValueRejectsUndeclaredAndIncompatible(t *testing.T) {
	input := shape.MustStruct("GetLongInput", shape.OptionalField("value", shape.BuiltinLong))
	reg := newTestRegistry(t, input)

	str, err := value.NewScalar(mustPrimitive(t, reg, shape.BuiltinString), "nope")
	require.NoError(t, err)

	_, err = value.NewStructValue(reg, input, map[string]value.Value{"other": str})
	require.Error(t, err)

	_, err = value.NewStructValue(reg, input, map[string]value.Value{"value": str})
	require.Error(t, err)
}

func TestValueEqual(t *testing.T) {
	status, err := shape.NewEnum("Status", "ACTIVE")
	require.NoError(t, err)
	input := shape.MustStruct("Payload",
		shape.OptionalField("value", shape.BuiltinLong),
		shape.OptionalField("status", "Status"),
	)
	reg := newTestRegistry(t, status, input)
	long := mustPrimitive(t, reg, shape.BuiltinLong)

	a, err := value.NewScalar(long, int64(42))
	require.NoError(t, err)
	b, err := value.NewScalar(long, int64(42))
	require.NoError(t, err)
	c, err := value.NewScalar(long, int64(43))
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	sv1, err := value.NewStructValue(reg, input, map[string]value.Value{
		"value":  a,
		"status": value.EnumOf(status, "ACTIVE"),
	})
	require.NoError(t, err)
	sv2, err := value.NewStructValue(reg, input, map[string]value.Value{
		"value":  b,
		"status": value.EnumOf(status, "ACTIVE"),
	})
	require.NoError(t, err)
	assert.True(t, sv1.Equal(sv2))

	// same raw tag with different provenance is not equal
	sv3, err := value.NewStructValue(reg, input, map[string]value.Value{
		"value":  b,
		"status": value.NewEnum(status, value.Unrecognized("ACTIVE")),
	})
	require.NoError(t, err)
	assert.False(t, sv1.Equal(sv3))
}

func TestFieldNamesDeclaredOrder(t *testing.T) {
	input := shape.MustStruct("Payload",
		shape.OptionalField("first", shape.BuiltinString),
		shape.OptionalField("second", shape.BuiltinString),
		shape.OptionalField("third", shape.BuiltinString),
	)
	reg := newTestRegistry(t, input)
	str := mustPrimitive(t, reg, shape.BuiltinString)

	fv, err := value.NewScalar(str, "x")
	require.NoError(t, err)
	v, err := value.NewStructValue(reg, input, map[string]value.Value{
		"third": fv,
		"first": fv,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "third"}, v.FieldNames())
}

func TestZeroValue(t *testing.T) {
	var v value.Value
	assert.False(t, v.IsValid())
	assert.Equal(t, "", v.ShapeName())
	_, ok := v.AsLong()
	assert.False(t, ok)
}

func TestFromLiteralCoercions(t *testing.T) {
	status, err := shape.NewEnum("Status", "ACTIVE")
	require.NoError(t, err)
	reg := newTestRegistry(t, status)

	for _, test := range []struct {
		name     string
		shapeRef string
		lit      interface{}
		check    func(t *testing.T, v value.Value)
	}{
		{
			name:     "int literal for long",
			shapeRef: shape.BuiltinLong,
			lit:      42,
			check: func(t *testing.T, v value.Value) {
				got, ok := v.AsLong()
				require.True(t, ok)
				assert.Equal(t, int64(42), got)
			},
		},
		{
			name:     "int literal for integer",
			shapeRef: shape.BuiltinInteger,
			lit:      7,
			check: func(t *testing.T, v value.Value) {
				got, ok := v.AsInteger()
				require.True(t, ok)
				assert.Equal(t, int32(7), got)
			},
		},
		{
			name:     "string literal for enum",
			shapeRef: "Status",
			lit:      "ACTIVE",
			check: func(t *testing.T, v value.Value) {
				ev, ok := v.AsEnum()
				require.True(t, ok)
				assert.True(t, ev.IsKnown())
				assert.Equal(t, "ACTIVE", ev.String())
			},
		},
		{
			name:     "out of set enum literal",
			shapeRef: "Status",
			lit:      "FUTURE",
			check: func(t *testing.T, v value.Value) {
				ev, ok := v.AsEnum()
				require.True(t, ok)
				assert.False(t, ev.IsKnown())
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			v, err := value.FromLiteral(reg, test.shapeRef, test.lit)
			require.NoError(t, err)
			test.check(t, v)
		})
	}

	_, err = value.FromLiteral(reg, shape.BuiltinInteger, int64(1)<<40)
	require.Error(t, err)
}
