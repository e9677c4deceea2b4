package idiom

// Context carries query-execution-scoped state the evaluator threads
// through to collaborators but never itself inspects — session info,
// transaction handles, tracing spans. It is a read-only borrow for the
// duration of a get() call (§3.3, §5 "Shared resources").
type Context struct {
	Fields map[string]interface{}
}

// Value looks up a piece of context state by key.
func (c *Context) Value(key string) (interface{}, bool) {
	if c == nil || c.Fields == nil {
		return nil, false
	}
	v, ok := c.Fields[key]
	return v, ok
}

// Options carries per-call evaluator configuration: the futures-enabled
// flag, and the collaborator handles the evaluator calls out to.
type Options struct {
	// FuturesEnabled gates whether a Future may be computed. get()
	// synthesizes a copy with this set before evaluating a Future that
	// has a non-empty path following it (§4.1.2, §6).
	FuturesEnabled bool

	Depth      DepthBudget
	Fetcher    RecordFetcher
	Dispatcher MethodDispatcher

	// Scheduler overrides the default metrics-bearing Scheduler (idiom
	// package-level defaultScheduler) used to meter reentries and run
	// concurrent fan-out. Tests typically leave this nil.
	Scheduler *Scheduler
}

// WithFuturesEnabled returns a shallow copy of o with FuturesEnabled set,
// the "options environment with futures enabled" §4.1.2 calls for.
func (o *Options) WithFuturesEnabled(enabled bool) *Options {
	if o == nil {
		return &Options{FuturesEnabled: enabled}
	}
	cp := *o
	cp.FuturesEnabled = enabled
	return &cp
}

// maxComputationDepth resolves o's DepthBudget, coercing a missing
// provider or an out-of-range value to the platform maximum (§6).
func maxComputationDepth(o *Options) int {
	const platformMax = int(^uint(0) >> 1)
	if o == nil || o.Depth == nil {
		return platformMax
	}
	v := o.Depth.MaxComputationDepth()
	if v < 0 {
		return platformMax
	}
	return v
}
