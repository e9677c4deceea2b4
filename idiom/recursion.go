package idiom

import (
	"context"

	"github.com/cayleygraph/idiom/internal/clog"
)

// getRecurse implements §4.2: it partitions the path around the Recurse
// step, drives the recursion engine, and — if anything remains after the
// recursion — reenters get() on the result with that remainder.
func getRecurse(ctx context.Context, self Value, p RecursePart, path Path, c *Context, o *Options, doc *CursorDoc) (Value, error) {
	rep, after := partitionRecursePath(p, path)

	var plan *RecursionPlan
	if pre, post, split := rep.SplitByRepeatRecurse(); split {
		rep = pre
		after = prepend(post, after)
	} else if p.Instruction != nil {
		if _, _, _, found := rep.FindRecursionPlan(); found {
			return nil, ErrRecursionInstructionPlanConflict
		}
	} else if pre, foundPlan, post, found := rep.FindRecursionPlan(); found {
		rep = pre
		plan = foundPlan
		after = prepend(post, after)
	}

	result, _, err := runRecursion(ctx, self, p.Bounds, rep, plan, p.Instruction, c, o, doc, schedulerFor(o))
	if err != nil {
		return nil, err
	}
	if len(after) > 0 {
		return get(ctx, result, after, c, o, doc)
	}
	return result, nil
}

func partitionRecursePath(p RecursePart, path Path) (rep, after Path) {
	if p.Inner != nil {
		return p.Inner, path.Next()
	}
	return path.Next(), nil
}

func prepend(post, after Path) Path {
	out := make(Path, 0, len(post)+len(after))
	out = append(out, post...)
	out = append(out, after...)
	return out
}

func selectReducer(plan *RecursionPlan, instr Instruction) Reducer {
	if instr != nil {
		return instr
	}
	if plan != nil {
		return CollectReducer{}
	}
	return LastReducer{}
}

func initAccumulator(reducer Reducer, self Value) Value {
	if _, ok := reducer.(CollectReducer); ok {
		return Array{}
	}
	return self
}

// runRecursion drives the iterated re-application described in §4.2 step
// 2: repeatedly apply `rep` starting from `self`, combining each step's
// result into an accumulation via the plan/instruction reducer, until the
// bounds are satisfied or violated.
func runRecursion(ctx context.Context, self Value, b Bounds, rep Path, plan *RecursionPlan, instr Instruction, c *Context, o *Options, doc *CursorDoc, sched *Scheduler) (Value, int, error) {
	reducer := selectReducer(plan, instr)
	accumulated := initAccumulator(reducer, self)
	current := self
	iterated := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, iterated, err
		}
		if b.HasMax && iterated >= b.Max {
			return accumulated, iterated, nil
		}

		stepResult, err := get(ctx, current, rep, c, o, doc)
		if err != nil {
			return nil, iterated, err
		}

		if arr, isArr := stepResult.(Array); IsNone(stepResult) || (isArr && len(arr) == 0) {
			if iterated < b.Min {
				sched.observeRecursionMinNotReached()
				if clog.V(2) {
					clog.Infof("idiom: recursion did not reach minimum of %d iterations (reached %d)", b.Min, iterated)
				}
				return nil, iterated, &RecursionMinimumNotReachedError{Min: b.Min, Iterated: iterated}
			}
			return accumulated, iterated, nil
		}

		iterated++
		if clog.V(3) {
			clog.Infof("idiom: recursion iteration %d", iterated)
		}
		accumulated, err = reducer.Reduce(accumulated, stepResult, iterated)
		if err != nil {
			return nil, iterated, err
		}
		current = stepResult
	}
}
