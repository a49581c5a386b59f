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

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/palantir/shape-go-runtime/shape-go-contract/shape"
)

// FromLiteral materializes a raw literal (as produced by schema documents or
// field defaults) into a value of the referenced shape. Only primitive and
// enum shapes are supported: struct-shaped defaults are not part of the model,
// struct values exist only through the builder.
func FromLiteral(reg *shape.Registry, shapeRef string, lit interface{}) (Value, error) {
	declared, err := reg.Resolve(shapeRef)
	if err != nil {
		return Value{}, err
	}
	switch d := declared.(type) {
	case *shape.Primitive:
		scalar, err := coerceScalar(d.Kind(), lit)
		if err != nil {
			return Value{}, fmt.Errorf("literal for shape %q: %v", shapeRef, err)
		}
		return NewScalar(d, scalar)
	case *shape.Enum:
		raw, ok := lit.(string)
		if !ok {
			return Value{}, fmt.Errorf("literal for enum shape %q must be a string, got %T", shapeRef, lit)
		}
		return EnumOf(d, raw), nil
	default:
		return Value{}, fmt.Errorf("shape %q does not support literal values", shapeRef)
	}
}

func coerceScalar(kind shape.Kind, lit interface{}) (interface{}, error) {
	switch kind {
	case shape.KindBlob:
		switch l := lit.(type) {
		case []byte:
			return l, nil
		case string:
			return []byte(l), nil
		}
	case shape.KindBoolean:
		if b, ok := lit.(bool); ok {
			return b, nil
		}
	case shape.KindString:
		if s, ok := lit.(string); ok {
			return s, nil
		}
	case shape.KindInteger:
		if i, ok := literalInt(lit); ok {
			if i < math.MinInt32 || i > math.MaxInt32 {
				return nil, fmt.Errorf("integer literal %d out of range", i)
			}
			return int32(i), nil
		}
	case shape.KindLong:
		if i, ok := literalInt(lit); ok {
			return i, nil
		}
	case shape.KindDouble:
		switch l := lit.(type) {
		case float64:
			return l, nil
		case float32:
			return float64(l), nil
		case json.Number:
			f, err := l.Float64()
			if err == nil {
				return f, nil
			}
		default:
			if i, ok := literalInt(lit); ok {
				return float64(i), nil
			}
		}
	}
	return nil, fmt.Errorf("literal of type %T is not valid for kind %s", lit, kind)
}

func literalInt(lit interface{}) (int64, bool) {
	switch l := lit.(type) {
	case int:
		return int64(l), true
	case int32:
		return int64(l), true
	case int64:
		return l, true
	case json.Number:
		i, err := l.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}
