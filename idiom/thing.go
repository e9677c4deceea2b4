package idiom

// Thing is a record reference: a table name paired with an id. The id
// itself is one of a primitive, an Object, or an Array (invariant (a) of
// §3.1).
type Thing struct {
	Table string
	ID    Value
}

func (Thing) isValue() {}

// Raw returns the canonical "table:id" form used to index into an object
// by a Thing, mirroring Part.Value's Thing case in get_object.go. Only
// Strand, Number and Scalar ids are rendered; any other id renders as "".
func (t Thing) Raw() string {
	return t.Table + ":" + rawID(t.ID)
}

func rawID(v Value) string {
	switch v := v.(type) {
	case Strand:
		return string(v)
	case Number:
		return formatNumber(float64(v))
	case Scalar:
		if v.Val != nil {
			return v.Val.String()
		}
		return ""
	default:
		return ""
	}
}

// Direction is the traversal direction of an Edges descriptor.
type Direction int

const (
	// DirOut traverses edges outbound from the source Thing.
	DirOut Direction = iota
	// DirIn traverses edges inbound to the source Thing.
	DirIn
	// DirBoth traverses edges in either direction.
	DirBoth
)

// Edges is a graph traversal descriptor bound to a source Thing.
type Edges struct {
	From Thing
	Dir  Direction
	What Value
}

func (Edges) isValue() {}

// GraphSpec carries the traversal direction, target set, and optional
// selection modifiers of a Part.Graph step.
type GraphSpec struct {
	Dir   Direction
	What  Computable // evaluates to the target set (edge names/things)
	Expr  Computable // optional explicit projection; nil means default
	Cond  Computable // optional WHERE condition
	Limit Computable
	Order Computable
	Split Computable
	Group Computable
	Start Computable
}
