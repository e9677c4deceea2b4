package idiom

import "context"

// getFuture implements the Value::Future arm of §4.1.2: a Future is
// opaque unless path continues beyond it (invariant (b) of §3.1, and
// testable property 10 of §8).
func getFuture(ctx context.Context, v Future, path Path, c *Context, o *Options, doc *CursorDoc) (Value, error) {
	if len(path) == 0 {
		return Future{Expr: v.Expr}, nil
	}
	fut := o.WithFuturesEnabled(true)
	val, err := v.Expr.Compute(ctx, c, fut, doc)
	if err != nil {
		return nil, err
	}
	return get(ctx, val, path, c, o, doc)
}
