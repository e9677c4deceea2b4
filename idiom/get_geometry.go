package idiom

import "context"

const (
	fieldType        = "type"
	fieldCoordinates = "coordinates"
	fieldGeometries  = "geometries"
)

// getGeometry implements the Value::Geometry arm of §4.1.2.
//
// Destructure is the one case that reenters with the *original* path
// rather than its tail: converting to an Object and letting Object's own
// Destructure case consume the step is intentional, not an off-by-one.
func getGeometry(ctx context.Context, v Geometry, head Part, path Path, c *Context, o *Options, doc *CursorDoc) (Value, error) {
	switch p := head.(type) {
	case FieldPart:
		switch {
		case p.Name == fieldType:
			return get(ctx, Strand(v.Type), path.Next(), c, o, doc)
		case p.Name == fieldCoordinates && v.HasCoordinates():
			return get(ctx, v.Coordinates, path.Next(), c, o, doc)
		case p.Name == fieldGeometries && v.IsCollection():
			geoms := make(Array, len(v.Geometries))
			copy(geoms, v.Geometries)
			return get(ctx, geoms, path.Next(), c, o, doc)
		default:
			return None{}, nil
		}

	case DestructurePart:
		return get(ctx, v.AsObject(), path, c, o, doc)

	case MethodPart:
		res, _, err := invokeMethod(ctx, c, o, doc, v, p)
		if err != nil {
			return nil, err
		}
		return get(ctx, res, path.Next(), c, o, doc)

	case OptionalPart:
		return get(ctx, v, path.Next(), c, o, doc)

	default:
		return None{}, nil
	}
}
