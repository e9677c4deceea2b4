package memfetcher

import (
	"context"
	"sort"

	"github.com/cayleygraph/idiom/idiom"
)

// ResultSet is a fixed row sequence satisfying idiom.ResultSet (§6).
type ResultSet struct {
	Rows idiom.Array
}

func (r ResultSet) All() (idiom.Array, error) { return r.Rows, nil }

func (r ResultSet) First() (idiom.Value, error) {
	if len(r.Rows) == 0 {
		return idiom.None{}, nil
	}
	return r.Rows[0], nil
}

// Fetcher is an idiom.RecordFetcher backed by a Store. Unlike idiomtest's
// bare lookup fixture, it honors a Selection's Cond/Limit/Order/Projection
// modifiers (§6), the detail that distinguishes a real record fetcher from
// a test stand-in.
type Fetcher struct {
	Store *Store
}

// NewFetcher builds a Fetcher over s.
func NewFetcher(s *Store) *Fetcher { return &Fetcher{Store: s} }

func (f *Fetcher) Select(ctx context.Context, c *idiom.Context, o *idiom.Options, sel idiom.Selection) (idiom.ResultSet, error) {
	rows, err := f.rowsFor(ctx, c, o, sel.What)
	if err != nil {
		return nil, err
	}
	rows, err = f.applyCond(ctx, c, o, sel.Cond, rows)
	if err != nil {
		return nil, err
	}
	rows, err = f.applyOrder(ctx, c, o, sel.Order, rows)
	if err != nil {
		return nil, err
	}
	rows, err = f.applyLimit(ctx, c, o, sel.Limit, rows)
	if err != nil {
		return nil, err
	}
	rows, err = f.applyProjection(ctx, c, o, sel.Projection, rows)
	if err != nil {
		return nil, err
	}
	return ResultSet{Rows: rows}, nil
}

func (f *Fetcher) rowsFor(ctx context.Context, c *idiom.Context, o *idiom.Options, what idiom.Value) (idiom.Array, error) {
	switch w := what.(type) {
	case idiom.Thing:
		obj, ok := f.Store.get(w)
		if !ok {
			return nil, nil
		}
		return idiom.Array{row(w, obj)}, nil

	case idiom.Edges:
		return f.edgeRows(w), nil

	case idiom.Array:
		var out idiom.Array
		for _, el := range w {
			rows, err := f.rowsFor(ctx, c, o, el)
			if err != nil {
				return nil, err
			}
			out = append(out, rows...)
		}
		return out, nil

	default:
		return nil, nil
	}
}

func (f *Fetcher) edgeRows(e idiom.Edges) idiom.Array {
	adj := f.Store.edgesFrom(e.Dir, e.From)
	if adj == nil {
		return nil
	}
	var vias []string
	if name, ok := e.What.(idiom.Strand); ok && name != "" {
		vias = []string{string(name)}
	} else {
		for via := range adj {
			vias = append(vias, via)
		}
		sort.Strings(vias) // deterministic order for an otherwise map-ordered fan-out
	}
	var out idiom.Array
	for _, via := range vias {
		for _, to := range adj[via] {
			obj, ok := f.Store.get(to)
			if !ok {
				continue
			}
			out = append(out, row(to, obj))
		}
	}
	return out
}

// applyCond keeps rows for which cond evaluates truthy against a CursorDoc
// wrapping the row, the same predicate-evaluation shape §4.1.2's Where case
// uses.
func (f *Fetcher) applyCond(ctx context.Context, c *idiom.Context, o *idiom.Options, cond idiom.Computable, rows idiom.Array) (idiom.Array, error) {
	if cond == nil {
		return rows, nil
	}
	kept := make(idiom.Array, 0, len(rows))
	for _, r := range rows {
		res, err := cond.Compute(ctx, c, o, idiom.NewCursorDoc(r))
		if err != nil {
			return nil, err
		}
		if idiom.Truthy(res) {
			kept = append(kept, r)
		}
	}
	return kept, nil
}

// applyOrder sorts rows by the Strand field name order evaluates to,
// ascending, using idiom's own numeric/string comparison for Number/Strand
// field values. A nil or non-Strand order result leaves rows untouched:
// Split/Group/Start have no defined semantics at this evaluator layer
// either (they're Selection passthroughs for whatever record fetcher a
// caller wires in) and are intentionally not interpreted here.
func (f *Fetcher) applyOrder(ctx context.Context, c *idiom.Context, o *idiom.Options, order idiom.Computable, rows idiom.Array) (idiom.Array, error) {
	if order == nil || len(rows) < 2 {
		return rows, nil
	}
	computed, err := order.Compute(ctx, c, o, nil)
	if err != nil {
		return nil, err
	}
	field, ok := computed.(idiom.Strand)
	if !ok {
		return rows, nil
	}
	sorted := make(idiom.Array, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lessField(sorted[i], sorted[j], string(field))
	})
	return sorted, nil
}

func lessField(a, b idiom.Value, field string) bool {
	ao, aok := a.(idiom.Object)
	bo, bok := b.(idiom.Object)
	if !aok || !bok {
		return false
	}
	av, bv := ao[field], bo[field]
	switch av := av.(type) {
	case idiom.Number:
		if bv, ok := bv.(idiom.Number); ok {
			return av < bv
		}
	case idiom.Strand:
		if bv, ok := bv.(idiom.Strand); ok {
			return av < bv
		}
	}
	return false
}

// applyLimit truncates rows to the non-negative integer limit evaluates to.
// A nil limit, or a non-Number result, leaves rows untouched.
func (f *Fetcher) applyLimit(ctx context.Context, c *idiom.Context, o *idiom.Options, limit idiom.Computable, rows idiom.Array) (idiom.Array, error) {
	if limit == nil {
		return rows, nil
	}
	computed, err := limit.Compute(ctx, c, o, nil)
	if err != nil {
		return nil, err
	}
	n, ok := computed.(idiom.Number)
	if !ok || int(n) < 0 || int(n) >= len(rows) {
		return rows, nil
	}
	return rows[:int(n)], nil
}

// applyProjection evaluates projection (nil meaning "*") against each row
// as a cursor document and collects the results, the same "projection
// expression" shape a Part.Graph's Expr carries (idiom/thing.go's
// GraphSpec.Expr).
func (f *Fetcher) applyProjection(ctx context.Context, c *idiom.Context, o *idiom.Options, projection idiom.Computable, rows idiom.Array) (idiom.Array, error) {
	if projection == nil {
		return rows, nil
	}
	out := make(idiom.Array, len(rows))
	for i, r := range rows {
		v, err := projection.Compute(ctx, c, o, idiom.NewCursorDoc(r))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
