package idiom

import "context"

// Computable is the contract every embedded expression honors: predicate
// expressions in Where, index/range expressions in Value, graph traversal
// modifiers in Graph, and the sub-idioms of a Destructure are all
// Computable against a Context/Options/CursorDoc triple, exactly like the
// broader statement executor's expression nodes this evaluator doesn't
// otherwise know about (§1, External collaborators).
type Computable interface {
	Compute(ctx context.Context, c *Context, o *Options, doc *CursorDoc) (Value, error)
}

// RefsComputable is the Refs collaborator contract (§6).
type RefsComputable interface {
	Compute(ctx context.Context, c *Context, o *Options, doc *CursorDoc) (Value, error)
}

// ComputableFunc adapts a plain function to Computable, the same shortcut
// the pack's other evaluators use for inline/test expressions.
type ComputableFunc func(ctx context.Context, c *Context, o *Options, doc *CursorDoc) (Value, error)

func (f ComputableFunc) Compute(ctx context.Context, c *Context, o *Options, doc *CursorDoc) (Value, error) {
	return f(ctx, c, o, doc)
}

// Part is a single navigation step. The evaluator never mutates a Part; it
// only consumes the path head and recurses on the tail (§3.2/§3.3).
type Part interface {
	isPart()
}

// FieldPart descends into an Object by field name.
type FieldPart struct{ Name string }

func (FieldPart) isPart() {}

// IsID reports whether this FieldPart names the conventional "id" field,
// the one case Object dispatch treats specially when more path follows.
func (p FieldPart) IsID() bool { return p.Name == fieldID }

// IndexPart descends into an Array (by position) or Object (by
// stringified index) depending on the current value's variant.
type IndexPart struct{ Index int }

func (IndexPart) isPart() {}

// AllPart ("*") produces every element/value of the current container.
type AllPart struct{}

func (AllPart) isPart() {}

// FirstPart descends into an Array's first element.
type FirstPart struct{}

func (FirstPart) isPart() {}

// LastPart descends into an Array's last element.
type LastPart struct{}

func (LastPart) isPart() {}

// FlattenPart ("?flat" / array flatten) is handled like AllPart on an
// Array (the rest of the path is mapped over every element; no nesting is
// collapsed at this step), is a no-op reentry on None, scalars and Other,
// and yields None on an Object or Geometry.
type FlattenPart struct{}

func (FlattenPart) isPart() {}

// WherePart filters an Array by a predicate evaluated against each
// element as a cursor document.
type WherePart struct{ Predicate Computable }

func (WherePart) isPart() {}

// ValuePart indexes an Array or Object by the runtime value an expression
// evaluates to (a computed field name, index, Thing, or range).
type ValuePart struct{ Expr Computable }

func (ValuePart) isPart() {}

// GraphPart describes one hop of a graph traversal from the current Thing
// or Object's latent record id.
type GraphPart struct{ Spec GraphSpec }

func (GraphPart) isPart() {}

// MethodPart invokes a named built-in (or, on Object, a field-as-function
// fallback) method over the current value and computed arguments.
type MethodPart struct {
	Name string
	Args []Computable
}

func (MethodPart) isPart() {}

// DestructureField names one field of a Destructure projection and the
// sub-idiom computed to fill it.
type DestructureField struct {
	Field string
	Idiom Computable
}

// DestructurePart builds a new Object by evaluating each sub-idiom against
// the current value as a cursor document.
type DestructurePart struct{ Fields []DestructureField }

func (DestructurePart) isPart() {}

// OptionalPart ("?") is a no-op unless the current value is None, in which
// case the whole remaining path short-circuits to None.
type OptionalPart struct{}

func (OptionalPart) isPart() {}

// DocPart ("@") resolves to the current document's own record id.
type DocPart struct{}

func (DocPart) isPart() {}

// Bounds is the min/max iteration count of a Recurse step. Max is
// unbounded when HasMax is false (the recursion engine then stops only on
// an empty/None result).
type Bounds struct {
	Min    int
	Max    int
	HasMax bool
}

// RecursePart drives the recursion engine (§4.2) over an (optionally
// separately specified) inner path, optionally steered by a user-supplied
// Instruction.
type RecursePart struct {
	Bounds      Bounds
	Inner       Path // nil means "repeat the remainder of the outer path"
	Instruction Instruction
}

func (RecursePart) isPart() {}

// RepeatRecursePart ("@" inside a recursed path) marks the point at which
// one level of recursion output should be spliced back in. It is only
// meaningful inside a Recurse context; encountered anywhere else, get()
// fails with UnsupportedRepeatRecurse.
type RepeatRecursePart struct{}

func (RepeatRecursePart) isPart() {}
