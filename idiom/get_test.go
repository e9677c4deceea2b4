package idiom_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/cayleygraph/idiom/idiom"
	"github.com/cayleygraph/idiom/idiomtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opts(f *idiomtest.Fetcher, d *idiomtest.Dispatcher) *idiom.Options {
	o := &idiom.Options{Depth: idiom.ConstDepthBudget(2000)}
	if f != nil {
		o.Fetcher = f
	}
	if d != nil {
		o.Dispatcher = d
	}
	return o
}

// Scenario 1: get(v, [], ...) == v for an object.
func TestEmptyPathIdentity(t *testing.T) {
	v := idiom.Object{
		"test": idiom.Object{
			"other":     idiom.None{},
			"something": idiom.Number(123),
		},
	}
	got, err := idiom.Get(context.Background(), v, nil, nil, opts(nil, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

// Scenario 2: test.something → 123
func TestFieldChain(t *testing.T) {
	v := idiom.Object{
		"test": idiom.Object{
			"other":     idiom.None{},
			"something": idiom.Number(123),
		},
	}
	path := idiom.Path{idiom.FieldPart{Name: "test"}, idiom.FieldPart{Name: "something"}}
	got, err := idiom.Get(context.Background(), v, path, nil, opts(nil, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.Number(123), got)
}

// Scenario 3: nest test. 20 deep, path of depth 21 resolves innermost field.
func TestDeepFieldChain(t *testing.T) {
	const depth = 20
	var v idiom.Value = idiom.Object{"something": idiom.Number(123)}
	for i := 0; i < depth; i++ {
		v = idiom.Object{"test": v}
	}
	path := make(idiom.Path, 0, depth+1)
	for i := 0; i < depth; i++ {
		path = append(path, idiom.FieldPart{Name: "test"})
	}
	path = append(path, idiom.FieldPart{Name: "something"})

	got, err := idiom.Get(context.Background(), v, path, nil, opts(nil, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.Number(123), got)
}

// Scenario 4: a path over MAX_COMPUTATION_DEPTH fails closed.
func TestComputationDepthExceeded(t *testing.T) {
	path := make(idiom.Path, 2001)
	for i := range path {
		path[i] = idiom.FieldPart{Name: "x"}
	}
	_, err := idiom.Get(context.Background(), idiom.Object{}, path, nil, &idiom.Options{Depth: idiom.ConstDepthBudget(2000)}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, idiom.ErrComputationDepthExceeded)
}

// Scenario 5: test.other → Thing{tb:"test", id:"tobie"}
func TestFieldYieldsThing(t *testing.T) {
	tobie := idiom.Thing{Table: "test", ID: idiom.Strand("tobie")}
	v := idiom.Object{
		"test": idiom.Object{
			"other":     tobie,
			"something": idiom.Number(123),
		},
	}
	path := idiom.Path{idiom.FieldPart{Name: "test"}, idiom.FieldPart{Name: "other"}}
	got, err := idiom.Get(context.Background(), v, path, nil, opts(nil, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, tobie, got)
}

// Scenario 6: test.something[1] → 456
func TestIndexAccess(t *testing.T) {
	v := idiom.Object{
		"test": idiom.Object{
			"something": idiom.Array{idiom.Number(123), idiom.Number(456), idiom.Number(789)},
		},
	}
	path := idiom.Path{
		idiom.FieldPart{Name: "test"},
		idiom.FieldPart{Name: "something"},
		idiom.IndexPart{Index: 1},
	}
	got, err := idiom.Get(context.Background(), v, path, nil, opts(nil, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.Number(456), got)
}

func agePredicate(min float64) idiom.Computable {
	return idiom.ComputableFunc(func(ctx context.Context, c *idiom.Context, o *idiom.Options, doc *idiom.CursorDoc) (idiom.Value, error) {
		obj, ok := doc.Value.(idiom.Object)
		if !ok {
			return idiom.Bool(false), nil
		}
		age, ok := obj["age"].(idiom.Number)
		if !ok {
			return idiom.Bool(false), nil
		}
		return idiom.Bool(float64(age) > min), nil
	})
}

// Scenario 7: test.something[WHERE age > 35].age → [36]
func TestWhereThenField(t *testing.T) {
	v := idiom.Object{
		"test": idiom.Object{
			"something": idiom.Array{
				idiom.Object{"age": idiom.Number(34)},
				idiom.Object{"age": idiom.Number(36)},
			},
		},
	}
	path := idiom.Path{
		idiom.FieldPart{Name: "test"},
		idiom.FieldPart{Name: "something"},
		idiom.WherePart{Predicate: agePredicate(35)},
		idiom.FieldPart{Name: "age"},
	}
	got, err := idiom.Get(context.Background(), v, path, nil, opts(nil, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.Array{idiom.Number(36)}, got)
}

// Scenario 8: test.something[WHERE age > 30][0] → {age:34}
func TestWhereThenIndex(t *testing.T) {
	v := idiom.Object{
		"test": idiom.Object{
			"something": idiom.Array{
				idiom.Object{"age": idiom.Number(34)},
				idiom.Object{"age": idiom.Number(36)},
			},
		},
	}
	path := idiom.Path{
		idiom.FieldPart{Name: "test"},
		idiom.FieldPart{Name: "something"},
		idiom.WherePart{Predicate: agePredicate(30)},
		idiom.IndexPart{Index: 0},
	}
	got, err := idiom.Get(context.Background(), v, path, nil, opts(nil, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.Object{"age": idiom.Number(34)}, got)
}

// Scenario 9: a future followed by a path step computes the future with
// futures enabled, then continues the path against the computed value.
func TestFutureComputedOnContinuation(t *testing.T) {
	inner := idiom.Object{
		"something": idiom.Array{
			idiom.Object{"age": idiom.Number(34)},
			idiom.Object{"age": idiom.Number(36)},
		},
	}
	fut := idiom.Future{Expr: idiom.ComputableFunc(func(ctx context.Context, c *idiom.Context, o *idiom.Options, doc *idiom.CursorDoc) (idiom.Value, error) {
		require.True(t, o.FuturesEnabled)
		return inner, nil
	})}
	v := idiom.Object{"test": fut}
	path := idiom.Path{
		idiom.FieldPart{Name: "test"},
		idiom.FieldPart{Name: "something"},
		idiom.WherePart{Predicate: agePredicate(35)},
	}
	got, err := idiom.Get(context.Background(), v, path, nil, opts(nil, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.Array{idiom.Object{"age": idiom.Number(36)}}, got)
}

// Future identity: no further path returns the future unevaluated.
func TestFutureIdentityWithEmptyPath(t *testing.T) {
	called := false
	fut := idiom.Future{Expr: idiom.ComputableFunc(func(ctx context.Context, c *idiom.Context, o *idiom.Options, doc *idiom.CursorDoc) (idiom.Value, error) {
		called = true
		return idiom.Number(1), nil
	})}
	got, err := idiom.Get(context.Background(), fut, nil, nil, opts(nil, nil), nil)
	require.NoError(t, err)
	require.IsType(t, idiom.Future{}, got)
	// Func values never compare equal under reflect.DeepEqual, so compare
	// the returned Future's Expr by function identity instead.
	assert.Equal(t, reflect.ValueOf(fut.Expr).Pointer(), reflect.ValueOf(got.(idiom.Future).Expr).Pointer())
	assert.False(t, called)
}

// Scenario 10: test[city:london] → true, indexing an object field by a
// computed Thing's canonical raw form.
func TestValuePartThingIndex(t *testing.T) {
	v := idiom.Object{
		"test": idiom.Object{
			"city:london": idiom.Bool(true),
			"other":       idiom.Thing{Table: "test", ID: idiom.Strand("tobie")},
		},
	}
	thingExpr := idiom.ComputableFunc(func(ctx context.Context, c *idiom.Context, o *idiom.Options, doc *idiom.CursorDoc) (idiom.Value, error) {
		return idiom.Thing{Table: "city", ID: idiom.Strand("london")}, nil
	})
	path := idiom.Path{
		idiom.FieldPart{Name: "test"},
		idiom.ValuePart{Expr: thingExpr},
	}
	got, err := idiom.Get(context.Background(), v, path, nil, opts(nil, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.Bool(true), got)
}

// Property 3: Optional is a no-op unless the value is None.
func TestOptionalPassesThroughNonNone(t *testing.T) {
	path := idiom.Path{idiom.OptionalPart{}, idiom.FieldPart{Name: "x"}}
	got, err := idiom.Get(context.Background(), idiom.Object{"x": idiom.Number(1)}, path, nil, opts(nil, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.Number(1), got)
}

func TestOptionalShortCircuitsNone(t *testing.T) {
	path := idiom.Path{idiom.OptionalPart{}, idiom.FieldPart{Name: "x"}}
	got, err := idiom.Get(context.Background(), idiom.None{}, path, nil, opts(nil, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.None{}, got)
}

// Property 5: All preserves order over array elements.
func TestAllPreservesOrder(t *testing.T) {
	v := idiom.Array{
		idiom.Object{"n": idiom.Number(1)},
		idiom.Object{"n": idiom.Number(2)},
		idiom.Object{"n": idiom.Number(3)},
	}
	path := idiom.Path{idiom.AllPart{}, idiom.FieldPart{Name: "n"}}
	got, err := idiom.Get(context.Background(), v, path, nil, opts(nil, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.Array{idiom.Number(1), idiom.Number(2), idiom.Number(3)}, got)
}

// Missing field descends as None rather than erroring.
func TestMissingFieldDescendsAsNone(t *testing.T) {
	path := idiom.Path{idiom.FieldPart{Name: "missing"}, idiom.FieldPart{Name: "deeper"}}
	got, err := idiom.Get(context.Background(), idiom.Object{}, path, nil, opts(nil, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.None{}, got)
}

// RepeatRecurse outside of Recurse always fails.
func TestRepeatRecurseOutsideRecurseFails(t *testing.T) {
	path := idiom.Path{idiom.RepeatRecursePart{}}
	_, err := idiom.Get(context.Background(), idiom.Object{}, path, nil, opts(nil, nil), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, idiom.ErrUnsupportedRepeatRecurse)
}

// A scalar that falls off the end of the path skips to the next Method.
func TestScalarFallsThroughToNextMethod(t *testing.T) {
	d := idiomtest.NewDispatcher()
	d.Methods["count"] = func(receiver idiom.Value, args []idiom.Value) (idiom.Value, error) {
		_, isNone := receiver.(idiom.None)
		return idiom.Bool(isNone), nil
	}
	path := idiom.Path{
		idiom.FieldPart{Name: "missing"}, // falls onto None
		idiom.FieldPart{Name: "deeper"},  // None's catch-all case skips this step to the next Method
		idiom.MethodPart{Name: "count"},
	}
	got, err := idiom.Get(context.Background(), idiom.Object{}, path, nil, opts(nil, d), nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.Bool(true), got)
}
