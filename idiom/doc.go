package idiom

// CursorDoc is the "current document" during expression evaluation, used
// by Part.Doc and by predicates inside Part.Where. It is a read-only
// borrow for the duration of the get() call that constructed it (§3.3).
type CursorDoc struct {
	// Value is the document (or document fragment) predicates and
	// sub-idioms are computed against.
	Value Value
	// RID is the document's own record id, if any. Part.Doc resolves to
	// Thing(*RID), or None when RID is nil.
	RID *Thing
}

// NewCursorDoc wraps a value with no record id, the shape used for
// per-element cursor docs inside Where and Destructure.
func NewCursorDoc(v Value) *CursorDoc {
	return &CursorDoc{Value: v}
}

// WithRID returns a copy of the cursor doc with its record id set.
func (d *CursorDoc) WithRID(t Thing) *CursorDoc {
	if d == nil {
		return &CursorDoc{RID: &t}
	}
	cp := *d
	cp.RID = &t
	return &cp
}
