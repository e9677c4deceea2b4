// Package idiomtest provides small in-memory collaborators for exercising
// the idiom evaluator without a real storage or scripting backend,
// mirroring the role graph/graphmock plays for cayley's own graph.QuadStore
// tests.
package idiomtest

import (
	"context"
	"fmt"

	"github.com/cayleygraph/idiom/idiom"
)

// ResultSet is a fixed, pre-computed idiom.ResultSet.
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

// Store is an in-memory table of records keyed by "table:id", and forward
// plus reverse adjacency lists keyed by the same, so tests can exercise
// idiom.DirOut/DirIn/DirBoth graph traversals rather than only the
// outbound case.
type Store struct {
	Records map[string]idiom.Object
	// Adjacency maps a source "table:id" + edge name to a list of target
	// Things (DirOut).
	Adjacency map[string]map[string][]idiom.Thing
	// Reverse maps a target "table:id" + edge name to a list of source
	// Things (DirIn).
	Reverse map[string]map[string][]idiom.Thing
}

// NewStore builds an empty Store.
func NewStore() *Store {
	return &Store{
		Records:   map[string]idiom.Object{},
		Adjacency: map[string]map[string][]idiom.Thing{},
		Reverse:   map[string]map[string][]idiom.Thing{},
	}
}

// Put registers a record.
func (s *Store) Put(t idiom.Thing, obj idiom.Object) {
	s.Records[t.Raw()] = obj
}

// Link registers a directed edge from `from`, over `via`, to `to`, and its
// reverse.
func (s *Store) Link(from idiom.Thing, via string, to idiom.Thing) {
	addLink(s.Adjacency, from, via, to)
	addLink(s.Reverse, to, via, from)
}

func addLink(m map[string]map[string][]idiom.Thing, from idiom.Thing, via string, to idiom.Thing) {
	adj, ok := m[from.Raw()]
	if !ok {
		adj = map[string][]idiom.Thing{}
		m[from.Raw()] = adj
	}
	adj[via] = append(adj[via], to)
}

// edgesFrom returns t's adjacency for dir, merging forward and reverse
// adjacency for DirBoth (matching the memfetcher.Store semantics this
// fixture stands in for).
func (s *Store) edgesFrom(dir idiom.Direction, t idiom.Thing) map[string][]idiom.Thing {
	switch dir {
	case idiom.DirIn:
		return s.Reverse[t.Raw()]
	case idiom.DirBoth:
		out := map[string][]idiom.Thing{}
		for via, tos := range s.Adjacency[t.Raw()] {
			out[via] = append(out[via], tos...)
		}
		for via, tos := range s.Reverse[t.Raw()] {
			out[via] = append(out[via], tos...)
		}
		return out
	default:
		return s.Adjacency[t.Raw()]
	}
}

// Fetcher is a RecordFetcher backed by a Store.
type Fetcher struct {
	Store *Store
}

func NewFetcher(s *Store) *Fetcher { return &Fetcher{Store: s} }

func (f *Fetcher) Select(ctx context.Context, c *idiom.Context, o *idiom.Options, sel idiom.Selection) (idiom.ResultSet, error) {
	switch what := sel.What.(type) {
	case idiom.Thing:
		obj, ok := f.Store.Records[what.Raw()]
		if !ok {
			return ResultSet{}, nil
		}
		row := make(idiom.Object, len(obj)+1)
		for k, v := range obj {
			row[k] = v
		}
		row["id"] = what
		return ResultSet{Rows: idiom.Array{row}}, nil
	case idiom.Edges:
		return f.selectEdges(what)
	case idiom.Array:
		var out idiom.Array
		for _, el := range what {
			sub := sel
			sub.What = el
			rs, err := f.Select(ctx, c, o, sub)
			if err != nil {
				return nil, err
			}
			all, err := rs.All()
			if err != nil {
				return nil, err
			}
			out = append(out, all...)
		}
		return ResultSet{Rows: out}, nil
	default:
		return ResultSet{}, nil
	}
}

func (f *Fetcher) selectEdges(e idiom.Edges) (idiom.ResultSet, error) {
	m := f.Store.edgesFrom(e.Dir, e.From)
	if m == nil {
		return ResultSet{}, nil
	}
	var vias []string
	if name, ok := e.What.(idiom.Strand); ok && name != "" {
		vias = []string{string(name)}
	} else {
		for via := range m {
			vias = append(vias, via)
		}
	}
	var out idiom.Array
	for _, via := range vias {
		for _, to := range m[via] {
			obj, ok := f.Store.Records[to.Raw()]
			if !ok {
				continue
			}
			row := make(idiom.Object, len(obj)+1)
			for k, v := range obj {
				row[k] = v
			}
			row["id"] = to
			out = append(out, row)
		}
	}
	return ResultSet{Rows: out}, nil
}

// AnonymousFunc is a callable stashed in an Object field so tests can
// exercise the field-as-function fallback (§4.1.2, §9).
type AnonymousFunc struct {
	idiom.Other // satisfies idiom.Value so it can live in an Object
	Fn          func(args []idiom.Value) (idiom.Value, error)
}

// Dispatcher is a MethodDispatcher + AnonymousInvoker backed by a small
// name→func table, standing in for the built-in method library (§6).
type Dispatcher struct {
	Methods map[string]func(receiver idiom.Value, args []idiom.Value) (idiom.Value, error)
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{Methods: map[string]func(idiom.Value, []idiom.Value) (idiom.Value, error){}}
}

func (d *Dispatcher) Invoke(ctx context.Context, c *idiom.Context, o *idiom.Options, doc *idiom.CursorDoc, receiver idiom.Value, name string, args []idiom.Value) (idiom.Value, error) {
	fn, ok := d.Methods[name]
	if !ok {
		return nil, &idiom.InvalidFunctionError{Name: name}
	}
	return fn(receiver, args)
}

func (d *Dispatcher) InvokeAnonymous(ctx context.Context, c *idiom.Context, o *idiom.Options, doc *idiom.CursorDoc, fn idiom.Value, args []idiom.Value) (idiom.Value, error) {
	callable, ok := fn.(AnonymousFunc)
	if !ok {
		return nil, &idiom.InvalidFunctionError{Name: fmt.Sprintf("%T", fn)}
	}
	return callable.Fn(args)
}
