package main

import (
	"encoding/json"
	"fmt"

	"github.com/cayleygraph/idiom/idiom"
)

// decodeValue turns arbitrary JSON into an idiom.Value. It is a CLI-local
// convenience, not a general value constructor: it only knows JSON's own
// scalar/array/object shape and has no notion of Thing, Edges, Future,
// Refs or Geometry, none of which round-trip through JSON losslessly.
func decodeValue(data []byte) (idiom.Value, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("idiomget: decoding JSON value: %w", err)
	}
	return fromJSON(v), nil
}

func fromJSON(v interface{}) idiom.Value {
	switch v := v.(type) {
	case nil:
		return idiom.None{}
	case bool:
		return idiom.Bool(v)
	case float64:
		return idiom.Number(v)
	case string:
		return idiom.Strand(v)
	case []interface{}:
		out := make(idiom.Array, len(v))
		for i, el := range v {
			out[i] = fromJSON(el)
		}
		return out
	case map[string]interface{}:
		out := make(idiom.Object, len(v))
		for k, val := range v {
			out[k] = fromJSON(val)
		}
		return out
	default:
		return idiom.None{}
	}
}

// encodeValue renders an idiom.Value back to JSON for CLI/HTTP output.
// Variants with no JSON shape (Future, Refs, Thing, Edges, Geometry,
// Other) render as a small tagged object instead of failing the whole
// response; get() returns such a value as-is when the path ends on it
// (e.g. a field holding a Thing).
func encodeValue(v idiom.Value) interface{} {
	switch v := v.(type) {
	case nil, idiom.None:
		return nil
	case idiom.Bool:
		return bool(v)
	case idiom.Number:
		return float64(v)
	case idiom.Strand:
		return string(v)
	case idiom.Array:
		out := make([]interface{}, len(v))
		for i, el := range v {
			out[i] = encodeValue(el)
		}
		return out
	case idiom.Object:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			out[k] = encodeValue(val)
		}
		return out
	case idiom.Thing:
		return map[string]interface{}{"$thing": v.Raw()}
	case idiom.Scalar:
		if v.Val != nil {
			return v.Val.String()
		}
		return nil
	default:
		return map[string]interface{}{"$type": fmt.Sprintf("%T", v)}
	}
}
