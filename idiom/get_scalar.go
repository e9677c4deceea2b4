package idiom

import "context"

// getScalar implements the final arm of §4.1.2: None, scalars (Bool,
// Number, Strand, Scalar, Range), and Other all share this dispatch.
func getScalar(ctx context.Context, v Value, head Part, path Path, c *Context, o *Options, doc *CursorDoc) (Value, error) {
	switch p := head.(type) {
	case OptionalPart:
		if IsNone(v) {
			return None{}, nil
		}
		return get(ctx, v, path.Next(), c, o, doc)

	case FlattenPart:
		return get(ctx, v, path.Next(), c, o, doc)

	case MethodPart:
		res, _, err := invokeMethod(ctx, c, o, doc, v, p)
		if err != nil {
			return nil, err
		}
		return get(ctx, res, path.Next(), c, o, doc)

	default:
		// Once descent has fallen off a scalar, only a subsequent method
		// call can meaningfully re-materialize a non-None value (§4.1.2,
		// §9).
		return get(ctx, None{}, path.NextMethod(), c, o, doc)
	}
}
