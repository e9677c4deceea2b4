package idiom

import "context"

// DepthBudget is the depth budget provider collaborator (§6): it reads
// MAX_COMPUTATION_DEPTH as a non-negative integer. The evaluator coerces
// out-of-range values (negative, or simply absent) to the platform
// maximum rather than failing closed.
type DepthBudget interface {
	MaxComputationDepth() int
}

// ConstDepthBudget is the simplest DepthBudget implementation, handy for
// tests and for the CLI's viper-backed config (cmd/idiomget).
type ConstDepthBudget int

func (d ConstDepthBudget) MaxComputationDepth() int { return int(d) }

// ResultSet is what a RecordFetcher's Select returns: a sequence of rows
// that can be consumed either in full (graph traversals; Edges with a
// following path) or as a single row (Thing materialization).
type ResultSet interface {
	All() (Array, error)
	First() (Value, error)
}

// Selection describes a SELECT invocation synthesized by the evaluator
// when it needs to materialize a record by id or an edge traversal (§1,
// §4.1.2 Thing/Edges cases).
type Selection struct {
	// Projection is nil for "*"; when non-nil it is the user-specified
	// projection expression of a Part.Graph step.
	Projection Computable
	// What is the Thing or Edges (or an Array of either) being selected
	// from.
	What  Value
	Cond  Computable
	Limit Computable
	Order Computable
	Split Computable
	Group Computable
	Start Computable
}

// RecordFetcher executes a selection against record ids or edges (§6).
type RecordFetcher interface {
	Select(ctx context.Context, c *Context, o *Options, sel Selection) (ResultSet, error)
}

// FutureEvaluator computes a deferred expression with an "enable futures"
// capability (§6). A Future's Expr field is itself a Computable, so any
// Computable implementation doubles as a FutureEvaluator; this alias
// exists purely to name the collaborator role.
type FutureEvaluator = Computable

// RefsEvaluator computes a deferred reference list (§6). Like
// FutureEvaluator, this is just a named role for RefsComputable.
type RefsEvaluator = RefsComputable

// MethodDispatcher invokes a named built-in method over a receiver and
// already-evaluated arguments (§6). It must signal a distinguishable
// *InvalidFunctionError for unknown names so the evaluator can fall back
// to field-as-function on objects (§4.1.2, §9).
type MethodDispatcher interface {
	Invoke(ctx context.Context, c *Context, o *Options, doc *CursorDoc, receiver Value, name string, args []Value) (Value, error)
}

// AnonymousInvoker is an optional capability a MethodDispatcher may also
// implement: invoking a Value directly as a callable with already-computed
// arguments. It backs the object field-as-function fallback (§4.1.2, §9
// "Field-as-function fallback") — a method dispatcher that can't express
// this (doesn't implement the interface) simply can't serve the fallback,
// and the original InvalidFunctionError propagates.
type AnonymousInvoker interface {
	InvokeAnonymous(ctx context.Context, c *Context, o *Options, doc *CursorDoc, fn Value, args []Value) (Value, error)
}
