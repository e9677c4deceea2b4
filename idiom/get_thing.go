package idiom

import "context"

// getThing implements the Value::Thing arm of §4.1.2, including the
// detail recovered from original_source/get.rs that a leading `All` on a
// freshly-fetched record is consumed rather than kept (§6 of
// SPEC_FULL.md: ".* on a record id means fetch the record's contents").
func getThing(ctx context.Context, v Thing, head Part, path Path, c *Context, o *Options, doc *CursorDoc) (Value, error) {
	if len(path) == 0 {
		return v, nil
	}
	switch p := head.(type) {
	case GraphPart:
		return getThingGraph(ctx, v, p, path, c, o, doc)

	case MethodPart:
		res, _, err := invokeMethod(ctx, c, o, doc, v, p)
		if err != nil {
			return nil, err
		}
		return get(ctx, res, path.Next(), c, o, doc)

	case OptionalPart:
		return get(ctx, v, path.Next(), c, o, doc)

	default:
		rec, err := fetchFirst(ctx, c, o, v)
		if err != nil {
			return nil, err
		}
		next := path
		if _, ok := head.(AllPart); ok {
			next = path.Next()
		}
		return get(ctx, rec, next, c, o, nil)
	}
}

func getThingGraph(ctx context.Context, v Thing, p GraphPart, path Path, c *Context, o *Options, doc *CursorDoc) (Value, error) {
	lastPart := len(path) == 1
	what, err := p.Spec.What.Compute(ctx, c, o, doc)
	if err != nil {
		return nil, err
	}
	projection := p.Spec.Expr
	if projection == nil && lastPart {
		projection = idProjection
	}
	sel := Selection{
		Projection: projection,
		What:       Edges{From: v, Dir: p.Spec.Dir, What: what},
		Cond:       p.Spec.Cond,
		Limit:      p.Spec.Limit,
		Order:      p.Spec.Order,
		Split:      p.Spec.Split,
		Group:      p.Spec.Group,
		Start:      p.Spec.Start,
	}
	rs, err := selectFrom(ctx, c, o, sel)
	if err != nil {
		return nil, err
	}
	all, err := rs.All()
	if err != nil {
		return nil, err
	}
	if lastPart {
		return all, nil
	}
	res, err := get(ctx, all, path.Next(), c, o, nil)
	if err != nil {
		return nil, err
	}
	if shouldFlattenChain(GraphPart{}, path.At(1)) {
		return flattenOne(res), nil
	}
	return res, nil
}

// idProjection is the default projection for a last-part Thing.Graph step
// with no explicit GraphSpec.Expr (§4.1.2: "g.expr (or id if this is the
// last step, else *)"). It reads the row's own record id back off the
// CursorDoc the record fetcher evaluates the projection against.
var idProjection = ComputableFunc(func(ctx context.Context, c *Context, o *Options, doc *CursorDoc) (Value, error) {
	if doc == nil {
		return None{}, nil
	}
	switch row := doc.Value.(type) {
	case Thing:
		return row, nil
	case Object:
		if t, ok := row.rid(); ok {
			return t, nil
		}
	}
	return None{}, nil
})

func fetchFirst(ctx context.Context, c *Context, o *Options, v Thing) (Value, error) {
	rs, err := selectFrom(ctx, c, o, Selection{What: v})
	if err != nil {
		return nil, err
	}
	return rs.First()
}

func selectFrom(ctx context.Context, c *Context, o *Options, sel Selection) (ResultSet, error) {
	if o == nil || o.Fetcher == nil {
		return nil, ErrNoRecordFetcher
	}
	return o.Fetcher.Select(ctx, c, o, sel)
}
