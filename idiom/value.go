// Copyright 2014 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package idiom implements a mutually-recursive, suspension-capable
// evaluator that resolves a compound navigation path against a
// heterogeneous, tree-shaped value.
package idiom

import "github.com/cayleygraph/quad"

// Value is a closed sum type: every step of the evaluator dispatches on
// the dynamic type of a Value alongside the kind of the current Part.
// Adding a variant means adding a case everywhere get.go switches on one,
// which is deliberate (see quad.Value and nosql.Value for the same
// closed-interface idiom this is grounded on).
type Value interface {
	isValue()
}

// None represents the absence of a value. Most steps applied to None
// return None.
type None struct{}

func (None) isValue() {}

// Bool is a scalar boolean value.
type Bool bool

func (Bool) isValue() {}

// Number is a scalar numeric value.
type Number float64

func (Number) isValue() {}

// Strand is a scalar string value, named after SurrealQL's string type to
// keep the vocabulary aligned with the system being modeled.
type Strand string

func (Strand) isValue() {}

// Scalar wraps any quad.Value that isn't natively one of the variants
// above (IRIs, typed literals, blank nodes, …), so the evaluator can carry
// values sourced from a real quad store without lossy conversion.
type Scalar struct {
	Val quad.Value
}

func (Scalar) isValue() {}

// Range describes a half-open slice bound, used by Part.Value when it
// evaluates to a range rather than a number.
type Range struct {
	Start, End int
	HasStart   bool
	HasEnd     bool
}

func (Range) isValue() {}

// Array is an ordered sequence of values.
type Array []Value

func (Array) isValue() {}

// Object is a name→Value mapping. Insertion order is not observable; the
// evaluator must not depend on map iteration order for anything but the
// unspecified-but-deterministic ordering of Part.All (see get_object.go).
type Object map[string]Value

func (Object) isValue() {}

// rid returns the object's own latent record id, if it carries one under
// the conventional "id" field and that field holds a Thing.
func (o Object) rid() (Thing, bool) {
	if v, ok := o[fieldID]; ok {
		if t, ok := v.(Thing); ok {
			return t, true
		}
	}
	return Thing{}, false
}

const fieldID = "id"

// Future is a deferred expression. It is opaque unless at least one path
// step follows it.
type Future struct {
	Expr Computable
}

func (Future) isValue() {}

// Refs is a deferred reference list. It is always materialized via its
// Compute contract before any path step is applied to it.
type Refs struct {
	Compute RefsComputable
}

func (Refs) isValue() {}

// Other is an opaque variant for values this evaluator has no structural
// opinion about (geometries aside): durations, datetimes, bytes, and the
// like. Only Part.Optional, Part.Flatten and Part.Method are meaningful
// against it; every other head skips ahead to the next method call.
type Other struct {
	Raw interface{}
}

func (Other) isValue() {}

// IsNone reports whether v is the None variant (or a nil interface, which
// the evaluator treats identically).
func IsNone(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(None)
	return ok
}

// Truthy mirrors the source language's notion of truthiness for Where
// predicates: None and false are falsy, everything else (including zero
// numbers and empty strings, matching SurrealQL's own loose semantics) is
// truthy unless it is explicitly Bool(false).
func Truthy(v Value) bool {
	switch v := v.(type) {
	case None:
		return false
	case nil:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// Clone returns a deep-enough copy of v suitable for returning from get():
// containers are copied by value at the top level since elements are
// themselves immutable once constructed, matching §3.3's "values flowing
// through the evaluator are logically immutable" invariant.
func Clone(v Value) Value {
	switch v := v.(type) {
	case Array:
		out := make(Array, len(v))
		copy(out, v)
		return out
	case Object:
		out := make(Object, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out
	default:
		return v
	}
}
