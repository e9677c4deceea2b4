package idiom_test

import (
	"context"
	"testing"

	"github.com/cayleygraph/idiom/idiom"
	"github.com/cayleygraph/idiom/memfetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memOpts(f *memfetcher.Fetcher) *idiom.Options {
	return &idiom.Options{Depth: idiom.ConstDepthBudget(2000), Fetcher: f}
}

func whatKnows() idiom.Computable {
	return idiom.ComputableFunc(func(ctx context.Context, c *idiom.Context, o *idiom.Options, doc *idiom.CursorDoc) (idiom.Value, error) {
		return idiom.Strand("knows"), nil
	})
}

// A last-part Thing.Graph step with no explicit projection defaults to
// id-only rows (§4.1.2: "id if this is the last step, else *").
func TestThingGraphLastPartDefaultsToID(t *testing.T) {
	store := memfetcher.NewStore()
	alice := idiom.Thing{Table: "person", ID: idiom.Strand("alice")}
	bob := idiom.Thing{Table: "person", ID: idiom.Strand("bob")}
	store.Put(alice, idiom.Object{"name": idiom.Strand("Alice")})
	store.Put(bob, idiom.Object{"name": idiom.Strand("Bob")})
	store.Link(alice, "knows", bob)

	f := memfetcher.NewFetcher(store)
	path := idiom.Path{idiom.GraphPart{Spec: idiom.GraphSpec{Dir: idiom.DirOut, What: whatKnows()}}}
	got, err := idiom.Get(context.Background(), alice, path, nil, memOpts(f), nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.Array{bob}, got)
}

// A last-part Thing.Graph step with an explicit projection uses it
// instead of the id default.
func TestThingGraphLastPartExplicitProjection(t *testing.T) {
	store := memfetcher.NewStore()
	alice := idiom.Thing{Table: "person", ID: idiom.Strand("alice")}
	bob := idiom.Thing{Table: "person", ID: idiom.Strand("bob")}
	store.Put(alice, nil)
	store.Put(bob, idiom.Object{"name": idiom.Strand("Bob")})
	store.Link(alice, "knows", bob)

	f := memfetcher.NewFetcher(store)
	nameExpr := idiom.ComputableFunc(func(ctx context.Context, c *idiom.Context, o *idiom.Options, doc *idiom.CursorDoc) (idiom.Value, error) {
		return doc.Value.(idiom.Object)["name"], nil
	})
	path := idiom.Path{idiom.GraphPart{Spec: idiom.GraphSpec{Dir: idiom.DirOut, What: whatKnows(), Expr: nameExpr}}}
	got, err := idiom.Get(context.Background(), alice, path, nil, memOpts(f), nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.Array{idiom.Strand("Bob")}, got)
}

// A non-last-part Thing.Graph step defaults to "*" (full rows), letting
// the following field step dig a value out of each.
func TestThingGraphNonLastPartDefaultsToStar(t *testing.T) {
	store := memfetcher.NewStore()
	alice := idiom.Thing{Table: "person", ID: idiom.Strand("alice")}
	bob := idiom.Thing{Table: "person", ID: idiom.Strand("bob")}
	store.Put(alice, nil)
	store.Put(bob, idiom.Object{"name": idiom.Strand("Bob")})
	store.Link(alice, "knows", bob)

	f := memfetcher.NewFetcher(store)
	path := idiom.Path{
		idiom.GraphPart{Spec: idiom.GraphSpec{Dir: idiom.DirOut, What: whatKnows()}},
		idiom.FieldPart{Name: "name"},
	}
	got, err := idiom.Get(context.Background(), alice, path, nil, memOpts(f), nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.Array{idiom.Strand("Bob")}, got)
}

// DirIn walks edges registered in the opposite direction from DirOut,
// rather than silently behaving like DirOut (the dead-enum bug).
func TestThingGraphDirectionIn(t *testing.T) {
	store := memfetcher.NewStore()
	alice := idiom.Thing{Table: "person", ID: idiom.Strand("alice")}
	bob := idiom.Thing{Table: "person", ID: idiom.Strand("bob")}
	store.Put(alice, nil)
	store.Put(bob, nil)
	store.Link(alice, "knows", bob)

	f := memfetcher.NewFetcher(store)

	outPath := idiom.Path{idiom.GraphPart{Spec: idiom.GraphSpec{Dir: idiom.DirOut, What: whatKnows()}}}
	gotOut, err := idiom.Get(context.Background(), bob, outPath, nil, memOpts(f), nil)
	require.NoError(t, err)
	assert.Empty(t, gotOut, "bob has no outbound knows edge")

	inPath := idiom.Path{idiom.GraphPart{Spec: idiom.GraphSpec{Dir: idiom.DirIn, What: whatKnows()}}}
	gotIn, err := idiom.Get(context.Background(), bob, inPath, nil, memOpts(f), nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.Array{alice}, gotIn, "bob has an inbound knows edge from alice")
}

// DirBoth merges outbound and inbound adjacency for the same edge name.
func TestThingGraphDirectionBoth(t *testing.T) {
	store := memfetcher.NewStore()
	alice := idiom.Thing{Table: "person", ID: idiom.Strand("alice")}
	bob := idiom.Thing{Table: "person", ID: idiom.Strand("bob")}
	carol := idiom.Thing{Table: "person", ID: idiom.Strand("carol")}
	store.Put(alice, nil)
	store.Put(bob, nil)
	store.Put(carol, nil)
	store.Link(alice, "knows", bob)
	store.Link(carol, "knows", alice)

	f := memfetcher.NewFetcher(store)
	path := idiom.Path{idiom.GraphPart{Spec: idiom.GraphSpec{Dir: idiom.DirBoth, What: whatKnows()}}}
	got, err := idiom.Get(context.Background(), alice, path, nil, memOpts(f), nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.ElementsMatch(t, idiom.Array{bob, carol}, got)
}

// A non-empty tail on an Edges value executes a SELECT over it and
// flattens the result one level unconditionally (§4.1.2).
func TestEdgesValueFlattensUnconditionally(t *testing.T) {
	store := memfetcher.NewStore()
	alice := idiom.Thing{Table: "person", ID: idiom.Strand("alice")}
	bob := idiom.Thing{Table: "person", ID: idiom.Strand("bob")}
	store.Put(alice, nil)
	store.Put(bob, idiom.Object{"name": idiom.Strand("Bob")})
	store.Link(alice, "knows", bob)

	f := memfetcher.NewFetcher(store)
	edges := idiom.Edges{From: alice, Dir: idiom.DirOut, What: idiom.Strand("knows")}
	path := idiom.Path{idiom.AllPart{}}
	got, err := idiom.Get(context.Background(), edges, path, nil, memOpts(f), nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.Array{idiom.Object{"name": idiom.Strand("Bob"), "id": bob}}, got)
}

// A bounded Recurse actually iterates through runRecursion: it descends
// level by level until the repeated path yields None, stopping at the
// last non-None result once the minimum has been satisfied.
func TestRecurseBoundedRun(t *testing.T) {
	level3 := idiom.Object{"val": idiom.Number(3)}
	level2 := idiom.Object{"next": level3, "val": idiom.Number(2)}
	level1 := idiom.Object{"next": level2, "val": idiom.Number(1)}
	root := idiom.Object{"next": level1, "val": idiom.Number(0)}

	path := idiom.Path{
		idiom.RecursePart{Bounds: idiom.Bounds{Min: 1, Max: 10, HasMax: true}},
		idiom.FieldPart{Name: "next"},
	}
	got, err := idiom.Get(context.Background(), root, path, nil, &idiom.Options{Depth: idiom.ConstDepthBudget(2000)}, nil)
	require.NoError(t, err)
	assert.Equal(t, level3, got)
}

// A Recurse that can't reach its configured minimum before running dry
// fails with RecursionMinimumNotReachedError.
func TestRecurseMinimumNotReached(t *testing.T) {
	level1 := idiom.Object{"val": idiom.Number(1)}
	root := idiom.Object{"next": level1, "val": idiom.Number(0)}

	path := idiom.Path{
		idiom.RecursePart{Bounds: idiom.Bounds{Min: 5, Max: 10, HasMax: true}},
		idiom.FieldPart{Name: "next"},
	}
	_, err := idiom.Get(context.Background(), root, path, nil, &idiom.Options{Depth: idiom.ConstDepthBudget(2000)}, nil)
	require.Error(t, err)
	var minErr *idiom.RecursionMinimumNotReachedError
	require.ErrorAs(t, err, &minErr)
	assert.Equal(t, 5, minErr.Min)
	assert.Equal(t, 1, minErr.Iterated)
}

// collectAll is a test Instruction that accumulates every non-None step
// result into an array, exercising the reducer-selection path a
// user-supplied Instruction drives (§4.2).
type collectAll struct{}

func (collectAll) Reduce(accumulated, stepResult idiom.Value, iteration int) (idiom.Value, error) {
	arr, _ := accumulated.(idiom.Array)
	return append(append(idiom.Array{}, arr...), stepResult), nil
}

func TestRecurseWithInstructionCollectsEveryLevel(t *testing.T) {
	level2 := idiom.Object{"val": idiom.Number(2)}
	level1 := idiom.Object{"next": level2, "val": idiom.Number(1)}
	root := idiom.Object{"next": level1, "val": idiom.Number(0)}

	path := idiom.Path{
		idiom.RecursePart{
			Bounds:      idiom.Bounds{Min: 1, Max: 10, HasMax: true},
			Instruction: collectAll{},
		},
		idiom.FieldPart{Name: "next"},
	}
	got, err := idiom.Get(context.Background(), root, path, nil, &idiom.Options{Depth: idiom.ConstDepthBudget(2000)}, nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.Array{level1, level2}, got)
}

// Destructure builds a fresh object from sub-idioms computed against self.
func TestDestructureBuildsNewObject(t *testing.T) {
	v := idiom.Object{"a": idiom.Number(1), "b": idiom.Number(2)}
	field := func(name string) idiom.Computable {
		return idiom.ComputableFunc(func(ctx context.Context, c *idiom.Context, o *idiom.Options, doc *idiom.CursorDoc) (idiom.Value, error) {
			return doc.Value.(idiom.Object)[name], nil
		})
	}
	path := idiom.Path{idiom.DestructurePart{Fields: []idiom.DestructureField{
		{Field: "x", Idiom: field("a")},
		{Field: "y", Idiom: field("b")},
	}}}
	got, err := idiom.Get(context.Background(), v, path, nil, &idiom.Options{Depth: idiom.ConstDepthBudget(2000)}, nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.Object{"x": idiom.Number(1), "y": idiom.Number(2)}, got)
}

// Geometry's Field("coordinates") and Field("geometries") pseudo-fields
// are only defined for their respective subtypes (invariant (c) of §3.1).
func TestGeometryCoordinatesAndGeometries(t *testing.T) {
	point := idiom.Geometry{Type: idiom.GeometryPoint, Coordinates: idiom.Array{idiom.Number(1), idiom.Number(2)}}
	got, err := idiom.Get(context.Background(), point, idiom.Path{idiom.FieldPart{Name: "coordinates"}}, nil, &idiom.Options{Depth: idiom.ConstDepthBudget(2000)}, nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.Array{idiom.Number(1), idiom.Number(2)}, got)

	collection := idiom.Geometry{Type: idiom.GeometryCollection, Geometries: []idiom.Value{point}}
	gotColl, err := idiom.Get(context.Background(), collection, idiom.Path{idiom.FieldPart{Name: "geometries"}}, nil, &idiom.Options{Depth: idiom.ConstDepthBudget(2000)}, nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.Array{point}, gotColl)

	gotNone, err := idiom.Get(context.Background(), collection, idiom.Path{idiom.FieldPart{Name: "coordinates"}}, nil, &idiom.Options{Depth: idiom.ConstDepthBudget(2000)}, nil)
	require.NoError(t, err)
	assert.Equal(t, idiom.None{}, gotNone)
}
