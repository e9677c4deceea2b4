package main

import (
	"context"
	"strings"

	"github.com/cayleygraph/idiom/idiom"
)

// builtinDispatcher is a tiny MethodDispatcher covering a handful of
// built-in methods, standing in for a full built-in function library the
// evaluator treats as an external collaborator — idiomtest.Dispatcher
// plays the same stand-in role for tests.
type builtinDispatcher struct{}

func (builtinDispatcher) Invoke(ctx context.Context, c *idiom.Context, o *idiom.Options, doc *idiom.CursorDoc, receiver idiom.Value, name string, args []idiom.Value) (idiom.Value, error) {
	switch name {
	case "count", "len":
		switch v := receiver.(type) {
		case idiom.Array:
			return idiom.Number(len(v)), nil
		case idiom.Object:
			return idiom.Number(len(v)), nil
		case idiom.Strand:
			return idiom.Number(len(v)), nil
		default:
			return idiom.Number(0), nil
		}
	case "upper":
		if v, ok := receiver.(idiom.Strand); ok {
			return idiom.Strand(strings.ToUpper(string(v))), nil
		}
		return receiver, nil
	case "lower":
		if v, ok := receiver.(idiom.Strand); ok {
			return idiom.Strand(strings.ToLower(string(v))), nil
		}
		return receiver, nil
	default:
		return nil, &idiom.InvalidFunctionError{Name: name}
	}
}
