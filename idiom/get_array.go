package idiom

import "context"

// getArray implements the Value::Array arm of §4.1.2.
func getArray(ctx context.Context, v Array, head Part, path Path, c *Context, o *Options, doc *CursorDoc) (Value, error) {
	switch p := head.(type) {
	case AllPart, FlattenPart:
		tail := path.Next()
		return mapArray(ctx, v, func(ctx context.Context, _ int, el Value) (Value, error) {
			return get(ctx, el, tail, c, o, doc)
		})

	case FirstPart:
		if len(v) == 0 {
			return get(ctx, None{}, path.Next(), c, o, doc)
		}
		return get(ctx, v[0], path.Next(), c, o, doc)

	case LastPart:
		if len(v) == 0 {
			return get(ctx, None{}, path.Next(), c, o, doc)
		}
		return get(ctx, v[len(v)-1], path.Next(), c, o, doc)

	case IndexPart:
		if p.Index < 0 || p.Index >= len(v) {
			return get(ctx, None{}, path.Next(), c, o, doc)
		}
		return get(ctx, v[p.Index], path.Next(), c, o, doc)

	case WherePart:
		return getArrayWhere(ctx, v, p, path, c, o, doc)

	case ValuePart:
		return getArrayValue(ctx, v, p, path, c, o, doc)

	case MethodPart:
		res, _, err := invokeMethod(ctx, c, o, doc, v, p)
		if err != nil {
			return nil, err
		}
		return get(ctx, res, path.Next(), c, o, doc)

	case OptionalPart:
		return get(ctx, v, path.Next(), c, o, doc)

	default:
		return getArrayMapped(ctx, v, path, c, o, doc)
	}
}

// getArrayWhere preserves encounter order of matching elements and is
// evaluated sequentially (§5 "Parallelism within a step" carve-out).
func getArrayWhere(ctx context.Context, v Array, p WherePart, path Path, c *Context, o *Options, doc *CursorDoc) (Value, error) {
	kept := make(Array, 0, len(v))
	for _, el := range v {
		cur := NewCursorDoc(el)
		res, err := p.Predicate.Compute(ctx, c, o, cur)
		if err != nil {
			return nil, err
		}
		if Truthy(res) {
			kept = append(kept, el)
		}
	}
	return get(ctx, kept, path.Next(), c, o, doc)
}

func getArrayValue(ctx context.Context, v Array, p ValuePart, path Path, c *Context, o *Options, doc *CursorDoc) (Value, error) {
	computed, err := p.Expr.Compute(ctx, c, o, doc)
	if err != nil {
		return nil, err
	}
	switch idx := computed.(type) {
	case Number:
		i := int(idx)
		if i < 0 || i >= len(v) {
			return None{}, nil
		}
		return get(ctx, v[i], path.Next(), c, o, doc)
	case Range:
		sliced := sliceArray(v, idx)
		return get(ctx, sliced, path.Next(), c, o, doc)
	default:
		return get(ctx, None{}, path.Next(), c, o, doc)
	}
}

func sliceArray(v Array, r Range) Array {
	start, end := 0, len(v)
	if r.HasStart {
		start = r.Start
	}
	if r.HasEnd {
		end = r.End
	}
	if start < 0 {
		start = 0
	}
	if end > len(v) {
		end = len(v)
	}
	if start >= end {
		return Array{}
	}
	out := make(Array, end-start)
	copy(out, v[start:end])
	return out
}

// getArrayMapped implements the fallback "mapped descent" case: any head
// not handled above is applied to every element concurrently, with the
// one- or two-cell lookahead described in §4.1.2 and §4.3.
func getArrayMapped(ctx context.Context, v Array, path Path, c *Context, o *Options, doc *CursorDoc) (Value, error) {
	length := 1
	if _, ok := path.At(1).(AllPart); ok {
		length = 2
	}
	sub := path[:length]
	mapped, err := mapArray(ctx, v, func(ctx context.Context, _ int, el Value) (Value, error) {
		return get(ctx, el, sub, c, o, doc)
	})
	if err != nil {
		return nil, err
	}
	var result Value = mapped
	if shouldFlattenChain(path.At(0), path.At(1)) {
		result = flattenOne(mapped)
	}
	return get(ctx, result, path.Skip(length), c, o, doc)
}
