package memfetcher_test

import (
	"context"
	"testing"

	"github.com/cayleygraph/idiom/idiom"
	"github.com/cayleygraph/idiom/memfetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGojaExprComputesAgainstSelf(t *testing.T) {
	expr := memfetcher.GojaExpr{Source: "self.age + 1"}
	doc := idiom.NewCursorDoc(idiom.Object{"age": idiom.Number(33)})
	got, err := expr.Compute(context.Background(), nil, nil, doc)
	require.NoError(t, err)
	assert.Equal(t, idiom.Number(34), got)
}

func TestCachedRefsMemoizes(t *testing.T) {
	calls := 0
	inner := idiom.ComputableFunc(func(ctx context.Context, c *idiom.Context, o *idiom.Options, doc *idiom.CursorDoc) (idiom.Value, error) {
		calls++
		return idiom.Array{idiom.Number(1), idiom.Number(2)}, nil
	})
	cached := memfetcher.NewCachedRefs(inner)

	doc := idiom.NewCursorDoc(idiom.None{})
	first, err := cached.Compute(context.Background(), nil, nil, doc)
	require.NoError(t, err)
	second, err := cached.Compute(context.Background(), nil, nil, doc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}
