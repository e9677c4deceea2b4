package memfetcher

import (
	"context"
	"fmt"

	"github.com/dop251/goja"

	"github.com/cayleygraph/idiom/idiom"
)

// GojaExpr is an idiom.Computable — and therefore usable as both a
// FutureEvaluator and a RefsEvaluator (§6) — that evaluates a small
// JavaScript expression against the current CursorDoc using goja, the same
// embeddable ECMAScript VM cayley's gizmo/gremlin query sessions use
// (query/gizmo/gizmo.go's Session.vm). It gives idiom.Future and idiom.Refs
// a concrete, testable production collaborator instead of a bare
// ComputableFunc stub.
type GojaExpr struct {
	// Source is the expression text, evaluated with `self` bound to the
	// current CursorDoc's value (or undefined, if doc is nil).
	Source string
}

func (g GojaExpr) Compute(ctx context.Context, c *idiom.Context, o *idiom.Options, doc *idiom.CursorDoc) (idiom.Value, error) {
	vm := goja.New()
	if doc != nil {
		vm.Set("self", toJS(doc.Value))
	}
	result, err := vm.RunString(g.Source)
	if err != nil {
		return nil, fmt.Errorf("memfetcher: goja future evaluation failed: %w", err)
	}
	return fromJS(result), nil
}

func toJS(v idiom.Value) interface{} {
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
			out[i] = toJS(el)
		}
		return out
	case idiom.Object:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			out[k] = toJS(val)
		}
		return out
	case idiom.Thing:
		return v.Raw()
	default:
		return nil
	}
}

func fromJS(v goja.Value) idiom.Value {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return idiom.None{}
	}
	return fromGo(v.Export())
}

func fromGo(v interface{}) idiom.Value {
	switch v := v.(type) {
	case nil:
		return idiom.None{}
	case bool:
		return idiom.Bool(v)
	case int64:
		return idiom.Number(float64(v))
	case float64:
		return idiom.Number(v)
	case string:
		return idiom.Strand(v)
	case []interface{}:
		out := make(idiom.Array, len(v))
		for i, el := range v {
			out[i] = fromGo(el)
		}
		return out
	case map[string]interface{}:
		out := make(idiom.Object, len(v))
		for k, val := range v {
			out[k] = fromGo(val)
		}
		return out
	default:
		return idiom.None{}
	}
}
