package idiom

import "context"

// getEdges implements the Value::Edges arm of §4.1.2. Unlike Thing.Graph,
// an Edges' non-empty-tail case flattens its SELECT result unconditionally
// (confirmed against original_source/get.rs — see §6 of SPEC_FULL.md).
func getEdges(ctx context.Context, v Edges, path Path, c *Context, o *Options, doc *CursorDoc) (Value, error) {
	if len(path) == 0 {
		return v, nil
	}
	rs, err := selectFrom(ctx, c, o, Selection{What: v})
	if err != nil {
		return nil, err
	}
	all, err := rs.All()
	if err != nil {
		return nil, err
	}
	res, err := get(ctx, all, path, c, o, nil)
	if err != nil {
		return nil, err
	}
	return flattenOne(res), nil
}
