package idiom

import "github.com/gogo/protobuf/proto"

// Wire-stable encoding of Value, used by a RefsEvaluator/FutureEvaluator
// implementation (memfetcher) to cache a materialized Refs result without
// recomputing it. This generalizes graph/proto's MakeValue/quad.Value wire
// format (a tagged-variant struct marshaled with gogo/protobuf) to idiom's
// richer sum type.

// ValueKind tags which field of WireValue is populated, playing the role
// graph/proto's oneof Value_* wrapper types play for quad.Value.
type ValueKind int32

const (
	KindNone ValueKind = iota
	KindBool
	KindNumber
	KindStrand
	KindArray
	KindObject
	KindThing
)

// WireValue is a gogo/protobuf message carrying one Value variant. Only the
// field matching Kind is meaningful; the rest are zero. Future, Refs,
// Geometry, and Other are intentionally not wire-representable (they either
// can't outlive a single call, as Future/Refs are inherently tied to a live
// Computable, or are out of scope for the cache this backs — see DESIGN.md).
type WireValue struct {
	Kind   int32        `protobuf:"varint,1,opt,name=kind"`
	Bool   bool         `protobuf:"varint,2,opt,name=bool_val"`
	Number float64      `protobuf:"fixed64,3,opt,name=number_val"`
	Strand string       `protobuf:"bytes,4,opt,name=strand_val"`
	Array  []*WireValue `protobuf:"bytes,5,rep,name=array_val"`
	Object []*WireField `protobuf:"bytes,6,rep,name=object_val"`
	Table  string       `protobuf:"bytes,7,opt,name=table"`
	ID     *WireValue   `protobuf:"bytes,8,opt,name=thing_id"`
}

func (m *WireValue) Reset()         { *m = WireValue{} }
func (m *WireValue) String() string { return proto.CompactTextString(m) }
func (*WireValue) ProtoMessage()    {}

// WireField is one name/value pair of a wire-encoded Object.
type WireField struct {
	Name  string     `protobuf:"bytes,1,opt,name=name"`
	Value *WireValue `protobuf:"bytes,2,opt,name=value"`
}

func (m *WireField) Reset()         { *m = WireField{} }
func (m *WireField) String() string { return proto.CompactTextString(m) }
func (*WireField) ProtoMessage()    {}

// ErrNotWireEncodable is returned by ToWire for variants that have no wire
// representation (Future, Refs, Geometry, Other, Scalar, Range).
type ErrNotWireEncodable struct{ Value Value }

func (e *ErrNotWireEncodable) Error() string {
	return "idiom: value has no wire representation"
}

// ToWire converts v to its WireValue form, for the variants the cache needs
// to round-trip: None, Bool, Number, Strand, Array, Object, Thing (its id
// is encoded recursively by the same rules, so Object/Array ids round-trip
// and an id of any other variant is rejected).
func ToWire(v Value) (*WireValue, error) {
	switch v := v.(type) {
	case nil, None:
		return &WireValue{Kind: int32(KindNone)}, nil
	case Bool:
		return &WireValue{Kind: int32(KindBool), Bool: bool(v)}, nil
	case Number:
		return &WireValue{Kind: int32(KindNumber), Number: float64(v)}, nil
	case Strand:
		return &WireValue{Kind: int32(KindStrand), Strand: string(v)}, nil
	case Array:
		out := make([]*WireValue, len(v))
		for i, el := range v {
			w, err := ToWire(el)
			if err != nil {
				return nil, err
			}
			out[i] = w
		}
		return &WireValue{Kind: int32(KindArray), Array: out}, nil
	case Object:
		out := make([]*WireField, 0, len(v))
		for name, val := range v {
			w, err := ToWire(val)
			if err != nil {
				return nil, err
			}
			out = append(out, &WireField{Name: name, Value: w})
		}
		return &WireValue{Kind: int32(KindObject), Object: out}, nil
	case Thing:
		id, err := ToWire(v.ID)
		if err != nil {
			return nil, err
		}
		return &WireValue{Kind: int32(KindThing), Table: v.Table, ID: id}, nil
	default:
		return nil, &ErrNotWireEncodable{Value: v}
	}
}

// FromWire reconstructs a Value from its WireValue form.
func FromWire(w *WireValue) Value {
	if w == nil {
		return None{}
	}
	switch ValueKind(w.Kind) {
	case KindBool:
		return Bool(w.Bool)
	case KindNumber:
		return Number(w.Number)
	case KindStrand:
		return Strand(w.Strand)
	case KindArray:
		out := make(Array, len(w.Array))
		for i, el := range w.Array {
			out[i] = FromWire(el)
		}
		return out
	case KindObject:
		out := make(Object, len(w.Object))
		for _, f := range w.Object {
			out[f.Name] = FromWire(f.Value)
		}
		return out
	case KindThing:
		return Thing{Table: w.Table, ID: FromWire(w.ID)}
	default:
		return None{}
	}
}

// MarshalValue encodes v as a wire-stable byte slice via gogo/protobuf's
// reflection-based Marshal, mirroring graph/proto.MarshalValue's role for
// quad.Value.
func MarshalValue(v Value) ([]byte, error) {
	w, err := ToWire(v)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(w)
}

// UnmarshalValue decodes a byte slice produced by MarshalValue.
func UnmarshalValue(data []byte) (Value, error) {
	var w WireValue
	if err := proto.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return FromWire(&w), nil
}
