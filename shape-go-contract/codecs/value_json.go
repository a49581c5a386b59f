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

package codecs

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"math"

	"github.com/palantir/pkg/safelong"
	werror "github.com/palantir/witchcraft-go-error"

	"github.com/palantir/shape-go-runtime/shape-go-contract/builder"
	"github.com/palantir/shape-go-runtime/shape-go-contract/shape"
	"github.com/palantir/shape-go-runtime/shape-go-contract/value"
)

// Shape-directed JSON form:
//
//	struct  → object holding the set fields under their primary names
//	blob    → base64 string
//	long    → number, constrained to the JS-safe range via safelong
//	integer → number
//	double  → number
//	enum    → raw string; unrecognized values pass through verbatim
//
// Unset optional fields are omitted. Unknown object keys are ignored on
// decode, matching the enum model's forward-compatibility stance.

// MarshalValue returns the JSON form of a built value.
func MarshalValue(v value.Value) ([]byte, error) {
	raw, err := valueToJSON(v)
	if err != nil {
		return nil, err
	}
	return JSON.Marshal(raw)
}

// EncodeValue writes the JSON form of a built value to w.
func EncodeValue(w io.Writer, v value.Value) error {
	raw, err := valueToJSON(v)
	if err != nil {
		return err
	}
	return JSON.Encode(w, raw)
}

// UnmarshalValue decodes data as a value of the referenced shape. Struct
// payloads run through the builder engine, so required-field validation and
// defaults apply to decoded values exactly as they do to locally built ones.
func UnmarshalValue(reg *shape.Registry, shapeRef string, data []byte) (value.Value, error) {
	var raw interface{}
	if err := JSON.Unmarshal(data, &raw); err != nil {
		return value.Value{}, err
	}
	return jsonToValue(reg, shapeRef, raw)
}

// DecodeValue reads a value of the referenced shape from r.
func DecodeValue(reg *shape.Registry, shapeRef string, r io.Reader) (value.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return value.Value{}, werror.Wrap(err, "read failed")
	}
	return UnmarshalValue(reg, shapeRef, data)
}

func valueToJSON(v value.Value) (interface{}, error) {
	switch s := v.Shape().(type) {
	case *shape.Primitive:
		return scalarToJSON(s, v)
	case *shape.Enum:
		ev, _ := v.AsEnum()
		return ev.String(), nil
	case *shape.Struct:
		obj := make(map[string]interface{})
		for _, name := range v.FieldNames() {
			fv, _ := v.Field(name)
			raw, err := valueToJSON(fv)
			if err != nil {
				return nil, werror.Wrap(err, "failed to marshal field", werror.SafeParam("field", name))
			}
			obj[name] = raw
		}
		return obj, nil
	default:
		return nil, werror.Error("value shape has no JSON form", werror.SafeParam("shape", v.ShapeName()))
	}
}

func scalarToJSON(p *shape.Primitive, v value.Value) (interface{}, error) {
	switch p.Kind() {
	case shape.KindBlob:
		b, _ := v.AsBlob()
		return base64.StdEncoding.EncodeToString(b), nil
	case shape.KindBoolean:
		b, _ := v.AsBool()
		return b, nil
	case shape.KindString:
		s, _ := v.AsString()
		return s, nil
	case shape.KindInteger:
		i, _ := v.AsInteger()
		return i, nil
	case shape.KindLong:
		i, _ := v.AsLong()
		sl, err := safelong.NewSafeLong(i)
		if err != nil {
			return nil, werror.Wrap(err, "long value is not safely representable",
				werror.SafeParam("shape", p.ShapeName()))
		}
		return sl, nil
	case shape.KindDouble:
		f, _ := v.AsDouble()
		return f, nil
	}
	return nil, werror.Error("primitive shape has unknown kind", werror.SafeParam("kind", string(p.Kind())))
}

func jsonToValue(reg *shape.Registry, shapeRef string, raw interface{}) (value.Value, error) {
	declared, err := reg.Resolve(shapeRef)
	if err != nil {
		return value.Value{}, err
	}
	switch s := declared.(type) {
	case *shape.Primitive:
		return jsonToScalar(s, raw)
	case *shape.Enum:
		str, ok := raw.(string)
		if !ok {
			return value.Value{}, decodeTypeError(shapeRef, "string", raw)
		}
		return value.EnumOf(s, str), nil
	case *shape.Struct:
		obj, ok := raw.(map[string]interface{})
		if !ok {
			return value.Value{}, decodeTypeError(shapeRef, "object", raw)
		}
		b := builder.New(reg, s)
		for _, f := range s.Fields() {
			fraw, present := obj[f.Name()]
			if !present || fraw == nil {
				continue
			}
			fv, err := jsonToValue(reg, f.ShapeRef(), fraw)
			if err != nil {
				return value.Value{}, werror.Wrap(err, "failed to decode field", werror.SafeParam("field", f.Name()))
			}
			if err := b.Set(f.Name(), fv); err != nil {
				return value.Value{}, err
			}
		}
		return b.Build()
	default:
		return value.Value{}, decodeTypeError(shapeRef, "decodable shape", raw)
	}
}

func jsonToScalar(p *shape.Primitive, raw interface{}) (value.Value, error) {
	switch p.Kind() {
	case shape.KindBlob:
		str, ok := raw.(string)
		if !ok {
			return value.Value{}, decodeTypeError(p.ShapeName(), "base64 string", raw)
		}
		b, err := base64.StdEncoding.DecodeString(str)
		if err != nil {
			return value.Value{}, werror.Wrap(err, "failed to decode base64 blob",
				werror.SafeParam("shape", p.ShapeName()))
		}
		return value.NewScalar(p, b)
	case shape.KindBoolean:
		b, ok := raw.(bool)
		if !ok {
			return value.Value{}, decodeTypeError(p.ShapeName(), "boolean", raw)
		}
		return value.NewScalar(p, b)
	case shape.KindString:
		s, ok := raw.(string)
		if !ok {
			return value.Value{}, decodeTypeError(p.ShapeName(), "string", raw)
		}
		return value.NewScalar(p, s)
	case shape.KindInteger:
		i, err := jsonInt(p, raw)
		if err != nil {
			return value.Value{}, err
		}
		if i < math.MinInt32 || i > math.MaxInt32 {
			return value.Value{}, werror.Error("integer out of range",
				werror.SafeParam("shape", p.ShapeName()), werror.UnsafeParam("value", i))
		}
		return value.NewScalar(p, int32(i))
	case shape.KindLong:
		i, err := jsonInt(p, raw)
		if err != nil {
			return value.Value{}, err
		}
		if _, err := safelong.NewSafeLong(i); err != nil {
			return value.Value{}, werror.Wrap(err, "long out of safe range",
				werror.SafeParam("shape", p.ShapeName()))
		}
		return value.NewScalar(p, i)
	case shape.KindDouble:
		num, ok := raw.(json.Number)
		if !ok {
			return value.Value{}, decodeTypeError(p.ShapeName(), "number", raw)
		}
		f, err := num.Float64()
		if err != nil {
			return value.Value{}, werror.Wrap(err, "invalid double", werror.SafeParam("shape", p.ShapeName()))
		}
		return value.NewScalar(p, f)
	}
	return value.Value{}, werror.Error("primitive shape has unknown kind", werror.SafeParam("kind", string(p.Kind())))
}

func jsonInt(p *shape.Primitive, raw interface{}) (int64, error) {
	num, ok := raw.(json.Number)
	if !ok {
		return 0, decodeTypeError(p.ShapeName(), "number", raw)
	}
	i, err := num.Int64()
	if err != nil {
		return 0, werror.Wrap(err, "invalid integer", werror.SafeParam("shape", p.ShapeName()))
	}
	return i, nil
}

func decodeTypeError(shapeName, want string, raw interface{}) error {
	return werror.Error("unexpected JSON type for shape",
		werror.SafeParam("shape", shapeName),
		werror.SafeParam("want", want),
		werror.SafeParam("got", jsonTypeName(raw)))
}

func jsonTypeName(raw interface{}) string {
	switch raw.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	}
	return "unknown"
}
