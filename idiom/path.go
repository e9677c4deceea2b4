package idiom

// Path is an ordered sequence of Parts describing how to navigate into a
// value. The evaluator treats a Path as immutable; utilities below return
// new slices rather than mutating the receiver.
type Path []Part

// Next drops the head of the path, returning the tail. Calling Next on an
// empty path returns an empty path.
func (p Path) Next() Path {
	if len(p) == 0 {
		return p
	}
	return p[1:]
}

// Skip drops the first n parts of the path.
func (p Path) Skip(n int) Path {
	if n >= len(p) {
		return nil
	}
	return p[n:]
}

// Head returns the first part of the path and whether the path was
// non-empty.
func (p Path) Head() (Part, bool) {
	if len(p) == 0 {
		return nil, false
	}
	return p[0], true
}

// At returns the part at index i, or nil if i is out of range. Used for
// the evaluator's two-cell lookahead (§4.3).
func (p Path) At(i int) Part {
	if i < 0 || i >= len(p) {
		return nil
	}
	return p[i]
}

// NextMethod advances to the next Method-bearing step in the path, or
// returns an empty path if none remains. Used by the scalar/"other
// variant" fallback case of get() (§4.1.2): once descent has fallen off a
// scalar, only a subsequent method call can meaningfully re-materialize a
// non-None result.
func (p Path) NextMethod() Path {
	for i, part := range p {
		if _, ok := part.(MethodPart); ok {
			return p[i:]
		}
	}
	return nil
}

// SplitByRepeatRecurse finds a RepeatRecursePart at the top level of the
// path (not nested inside some other Part's sub-expression) and, if
// found, splits the path into the segment before it (exclusive) and the
// segment after it (exclusive). This lets the recursion engine eliminate
// unneeded recursion plan tracking and simply loop over "pre" when the
// repeat-recurse marker sits directly in the repeated path.
func (p Path) SplitByRepeatRecurse() (pre, post Path, ok bool) {
	for i, part := range p {
		if _, isRepeat := part.(RepeatRecursePart); isRepeat {
			return p[:i], p[i+1:], true
		}
	}
	return nil, nil, false
}

// RecursionPlanSource is implemented by a Part's embedded Computable
// modifiers (typically a GraphPart's traversal target/projection) that
// themselves carry a sub-path. It lets FindRecursionPlan discover a
// RepeatRecursePart nested beneath a part that isn't itself a path step,
// the narrow collaborator indirection that keeps this package from
// reaching into a concrete expression AST it doesn't own.
type RecursionPlanSource interface {
	InnerPath() Path
}

// RecursionPlan is the shape lifted from a path to steer recursion
// iteration when a RepeatRecursePart is found nested inside one of the
// path's parts rather than sitting at the top level (see
// SplitByRepeatRecurse for the top-level case).
type RecursionPlan struct {
	// PartIndex is the index, within the path passed to FindRecursionPlan,
	// of the Part whose embedded sub-path carries the RepeatRecursePart.
	PartIndex int
	Part      Part
	Inner     Path
}

// FindRecursionPlan scans path for the first part implementing
// RecursionPlanSource whose sub-path carries a top-level RepeatRecursePart;
// parts after it are not examined. If found, it returns the path up to and
// including that part (pre), the plan
// describing where recursion should splice back in, and the remaining
// path (post).
func (p Path) FindRecursionPlan() (pre Path, plan *RecursionPlan, post Path, ok bool) {
	for i, part := range p {
		src, isSrc := part.(RecursionPlanSource)
		if !isSrc {
			continue
		}
		inner := src.InnerPath()
		if _, _, found := inner.SplitByRepeatRecurse(); !found {
			continue
		}
		return p[:i+1], &RecursionPlan{PartIndex: i, Part: part, Inner: inner}, p[i+1:], true
	}
	return nil, nil, nil, false
}
