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

package idiom

import (
	"context"

	"github.com/cayleygraph/idiom/internal/clog"
)

// Get resolves path against value, descending into nested containers,
// calling methods, evaluating predicates, fetching remote records,
// traversing graph edges, invoking deferred computations, and performing
// bounded recursive traversals, per §4.1.
//
// It is the sole public entry point of this core (§6).
func Get(ctx context.Context, value Value, path Path, c *Context, o *Options, doc *CursorDoc) (Value, error) {
	return get(ctx, value, path, c, o, doc)
}

// get is the mutually-recursive driver. Every reentry goes back through
// this function; see scheduler.go for why ordinary Go recursion already
// satisfies §5's "heap-managed recursion stack" requirement.
func get(ctx context.Context, value Value, path Path, c *Context, o *Options, doc *CursorDoc) (Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sched := schedulerFor(o)
	sched.observeReentry(len(path))

	if max := maxComputationDepth(o); len(path) > max {
		if clog.V(2) {
			clog.Infof("idiom: depth guard tripped at path length %d (max %d)", len(path), max)
		}
		return nil, &DepthExceededError{PathLen: len(path), Max: max}
	}

	head, ok := path.Head()
	if !ok {
		return Clone(value), nil
	}

	// §4.1.1: path-head cases independent of the current value.
	switch p := head.(type) {
	case DocPart:
		return getDoc(ctx, c, o, doc, path)
	case RecursePart:
		return getRecurse(ctx, value, p, path, c, o, doc)
	case RepeatRecursePart:
		return nil, ErrUnsupportedRepeatRecurse
	}

	// §4.1.2: value-dependent cases.
	switch v := value.(type) {
	case Refs:
		computed, err := v.Compute.Compute(ctx, c, o, doc)
		if err != nil {
			return nil, err
		}
		return get(ctx, computed, path, c, o, doc)
	case Future:
		return getFuture(ctx, v, path, c, o, doc)
	case Object:
		return getObject(ctx, v, head, path, c, o, doc)
	case Array:
		return getArray(ctx, v, head, path, c, o, doc)
	case Edges:
		return getEdges(ctx, v, path, c, o, doc)
	case Thing:
		return getThing(ctx, v, head, path, c, o, doc)
	case Geometry:
		return getGeometry(ctx, v, head, path, c, o, doc)
	default:
		return getScalar(ctx, value, head, path, c, o, doc)
	}
}

func getDoc(ctx context.Context, c *Context, o *Options, doc *CursorDoc, path Path) (Value, error) {
	var v Value = None{}
	if doc != nil && doc.RID != nil {
		v = *doc.RID
	}
	return get(ctx, v, path.Next(), c, o, doc)
}

// invokeMethod evaluates a Method part's arguments concurrently and calls
// the method dispatcher collaborator (§6).
func invokeMethod(ctx context.Context, c *Context, o *Options, doc *CursorDoc, receiver Value, m MethodPart) (Value, []Value, error) {
	args, err := mapComputables(ctx, c, o, doc, m.Args)
	if err != nil {
		return nil, nil, err
	}
	if o == nil || o.Dispatcher == nil {
		return nil, args, &InvalidFunctionError{Name: m.Name}
	}
	v, err := o.Dispatcher.Invoke(ctx, c, o, doc, receiver, m.Name, args)
	return v, args, err
}
