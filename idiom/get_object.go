package idiom

import "context"

// getObject implements the Value::Object arm of §4.1.2.
func getObject(ctx context.Context, v Object, head Part, path Path, c *Context, o *Options, doc *CursorDoc) (Value, error) {
	switch p := head.(type) {
	case FieldPart:
		if p.IsID() && len(path) > 1 {
			return getObjectIDField(ctx, v, path, c, o, doc)
		}
		next, ok := v[p.Name]
		if !ok {
			next = None{}
		}
		return get(ctx, next, path.Next(), c, o, doc)

	case GraphPart:
		if rid, ok := v.rid(); ok {
			return get(ctx, rid, path, c, o, doc)
		}
		return get(ctx, None{}, path.Next(), c, o, doc)

	case IndexPart:
		next, ok := v[formatNumber(float64(p.Index))]
		if !ok {
			next = None{}
		}
		return get(ctx, next, path.Next(), c, o, doc)

	case ValuePart:
		computed, err := p.Expr.Compute(ctx, c, o, doc)
		if err != nil {
			return nil, err
		}
		switch key := computed.(type) {
		case Strand:
			next, ok := v[string(key)]
			if !ok {
				next = None{}
			}
			return get(ctx, next, path.Next(), c, o, doc)
		case Thing:
			next, ok := v[key.Raw()]
			if !ok {
				next = None{}
			}
			return get(ctx, next, path.Next(), c, o, doc)
		default:
			return get(ctx, None{}, path.Next(), c, o, doc)
		}

	case AllPart:
		values := make(Array, 0, len(v))
		for _, val := range v {
			values = append(values, val)
		}
		return get(ctx, values, path.Next(), c, o, doc)

	case DestructurePart:
		obj, err := destructure(ctx, v, p, c, o, doc)
		if err != nil {
			return nil, err
		}
		return get(ctx, obj, path.Next(), c, o, doc)

	case MethodPart:
		return getObjectMethod(ctx, v, p, path, c, o, doc)

	case OptionalPart:
		return get(ctx, v, path.Next(), c, o, doc)

	default:
		return None{}, nil
	}
}

func getObjectIDField(ctx context.Context, v Object, path Path, c *Context, o *Options, doc *CursorDoc) (Value, error) {
	field, ok := v[fieldID]
	if !ok {
		return get(ctx, None{}, path.Next(), c, o, doc)
	}
	if t, ok := field.(Thing); ok {
		switch id := t.ID.(type) {
		case Object:
			return get(ctx, id, path.Next(), c, o, doc)
		case Array:
			return get(ctx, id, path.Next(), c, o, doc)
		}
	}
	return get(ctx, field, path.Next(), c, o, doc)
}

func destructure(ctx context.Context, v Object, p DestructurePart, c *Context, o *Options, doc *CursorDoc) (Object, error) {
	cur := NewCursorDoc(v)
	out := make(Object, len(p.Fields))
	for _, f := range p.Fields {
		val, err := f.Idiom.Compute(ctx, c, o, cur)
		if err != nil {
			return nil, err
		}
		out[f.Field] = val
	}
	return out, nil
}

// getObjectMethod implements the method-call and field-as-function
// fallback behavior of §4.1.2/§9, with the two-level InvalidFunction
// recovery confirmed against original_source/get.rs (§6 of SPEC_FULL.md).
func getObjectMethod(ctx context.Context, v Object, p MethodPart, path Path, c *Context, o *Options, doc *CursorDoc) (Value, error) {
	res, args, err := invokeMethod(ctx, c, o, doc, v, p)
	if err != nil {
		if !IsInvalidFunction(err) {
			return nil, err
		}
		fieldFn, ok := v[p.Name]
		if !ok {
			return nil, err
		}
		invoker, ok := dispatcherAnonymousInvoker(o)
		if !ok {
			return nil, err
		}
		fallback, ferr := invoker.InvokeAnonymous(ctx, c, o, doc, fieldFn, args)
		if ferr != nil {
			if IsInvalidFunction(ferr) {
				res = None{}
			} else {
				return nil, ferr
			}
		} else {
			res = fallback
		}
	}
	return get(ctx, res, path.Next(), c, o, doc)
}

func dispatcherAnonymousInvoker(o *Options) (AnonymousInvoker, bool) {
	if o == nil || o.Dispatcher == nil {
		return nil, false
	}
	inv, ok := o.Dispatcher.(AnonymousInvoker)
	return inv, ok
}
