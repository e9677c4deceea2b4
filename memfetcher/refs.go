package memfetcher

import (
	"context"
	"sync"

	"github.com/cayleygraph/idiom/idiom"
)

// CachedRefs wraps a RefsEvaluator with a wire-encoded (idiom's
// value_wire.go) memoization cache keyed by CursorDoc identity, so a Refs
// materialization computed once during a traversal is never recomputed if
// the same Refs value is reached again — e.g. under a Recurse, or from more
// than one branch of an array fan-out. Caching the wire-encoded bytes
// rather than the live Value keeps the cache entry immutable and exercises
// the same MarshalValue/UnmarshalValue round-trip graph/proto.MarshalValue
// provides for quad.Value. A result with no wire form (idiom.ToWire
// rejects it) is not cached and is recomputed on every call.
type CachedRefs struct {
	Inner idiom.RefsEvaluator

	mu    sync.Mutex
	cache map[*idiom.CursorDoc][]byte
}

// NewCachedRefs wraps inner with a fresh, empty cache.
func NewCachedRefs(inner idiom.RefsEvaluator) *CachedRefs {
	return &CachedRefs{Inner: inner, cache: map[*idiom.CursorDoc][]byte{}}
}

func (c *CachedRefs) Compute(ctx context.Context, ctxVal *idiom.Context, o *idiom.Options, doc *idiom.CursorDoc) (idiom.Value, error) {
	c.mu.Lock()
	data, hit := c.cache[doc]
	c.mu.Unlock()
	if hit {
		return idiom.UnmarshalValue(data)
	}

	v, err := c.Inner.Compute(ctx, ctxVal, o, doc)
	if err != nil {
		return nil, err
	}
	if data, werr := idiom.MarshalValue(v); werr == nil {
		c.mu.Lock()
		c.cache[doc] = data
		c.mu.Unlock()
	}
	return v, nil
}
