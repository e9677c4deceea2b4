// Package memfetcher wires the idiom evaluator's collaborator interfaces
// (idiom.RecordFetcher, idiom.FutureEvaluator, idiom.RefsEvaluator) to a
// real in-memory, quad.Value-backed store instead of idiomtest's bare test
// fixtures — the role a cayley graph.QuadStore-backed statement executor
// plays in production, scaled down to exactly what Selection (idiom
// collaborators.go) needs.
package memfetcher

import (
	"encoding/hex"

	"github.com/cayleygraph/idiom/idiom"
	"github.com/cayleygraph/quad"
)

// key hashes a Thing to a stable store key via quad.HashOf over its
// canonical "table:id" string, the same content-hash keying
// graph/iterator/recursive.go's seenAt map uses for graph.Ref values.
func key(t idiom.Thing) string {
	return hex.EncodeToString(quad.HashOf(quad.String(t.Raw())))
}

// Store is an in-memory table of records and a directed, named adjacency
// list, keyed by hashed Thing identity. Both the forward and reverse
// adjacency are maintained so that a Thing.Graph traversal can honor
// idiom.Edges' Dir (DirOut/DirIn/DirBoth) rather than always walking
// outbound edges.
type Store struct {
	records   map[string]idiom.Object
	adjacency map[string]map[string][]idiom.Thing // from -> via -> []to
	reverse   map[string]map[string][]idiom.Thing // to -> via -> []from
}

// NewStore builds an empty Store.
func NewStore() *Store {
	return &Store{
		records:   map[string]idiom.Object{},
		adjacency: map[string]map[string][]idiom.Thing{},
		reverse:   map[string]map[string][]idiom.Thing{},
	}
}

// Put registers (or replaces) a record under t.
func (s *Store) Put(t idiom.Thing, obj idiom.Object) {
	s.records[key(t)] = obj
}

// Link registers a directed edge from `from`, named `via`, to `to`, and
// its reverse, so both DirOut and DirIn traversals find it.
func (s *Store) Link(from idiom.Thing, via string, to idiom.Thing) {
	addEdge(s.adjacency, from, via, to)
	addEdge(s.reverse, to, via, from)
}

func addEdge(m map[string]map[string][]idiom.Thing, from idiom.Thing, via string, to idiom.Thing) {
	k := key(from)
	adj, ok := m[k]
	if !ok {
		adj = map[string][]idiom.Thing{}
		m[k] = adj
	}
	adj[via] = append(adj[via], to)
}

func (s *Store) get(t idiom.Thing) (idiom.Object, bool) {
	obj, ok := s.records[key(t)]
	return obj, ok
}

// edgesFrom returns t's adjacency for dir: DirOut walks edges registered
// with t as the source, DirIn walks edges registered with t as the
// target, and DirBoth merges the two (matching edge names combine their
// target lists).
func (s *Store) edgesFrom(dir idiom.Direction, t idiom.Thing) map[string][]idiom.Thing {
	k := key(t)
	switch dir {
	case idiom.DirIn:
		return s.reverse[k]
	case idiom.DirBoth:
		return mergeAdjacency(s.adjacency[k], s.reverse[k])
	default:
		return s.adjacency[k]
	}
}

// mergeAdjacency combines two via-keyed adjacency maps, concatenating the
// target lists of any via name present in both.
func mergeAdjacency(a, b map[string][]idiom.Thing) map[string][]idiom.Thing {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string][]idiom.Thing, len(a)+len(b))
	for via, tos := range a {
		out[via] = append(out[via], tos...)
	}
	for via, tos := range b {
		out[via] = append(out[via], tos...)
	}
	return out
}

// row builds the row value for t: its stored object with "id" set to t,
// matching the Object.rid() convention idiom/value.go documents.
func row(t idiom.Thing, obj idiom.Object) idiom.Object {
	out := make(idiom.Object, len(obj)+1)
	for k, v := range obj {
		out[k] = v
	}
	out["id"] = t
	return out
}
