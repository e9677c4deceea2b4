package idiom

import (
	"errors"
	"fmt"
)

// Sentinel errors matching §7's error taxonomy. Collaborator errors
// (anything not in this list) propagate verbatim: get() returns them
// unwrapped, so callers can errors.As/errors.Is them directly.
var (
	// ErrComputationDepthExceeded is returned when a path's length
	// exceeds the configured MAX_COMPUTATION_DEPTH at any reentry.
	ErrComputationDepthExceeded = errors.New("idiom: computation depth exceeded")

	// ErrUnsupportedRepeatRecurse is returned when a RepeatRecursePart is
	// reached outside of a Recurse context.
	ErrUnsupportedRepeatRecurse = errors.New("idiom: repeat recurse is not supported in this context")

	// ErrRecursionInstructionPlanConflict is returned when a Recurse step
	// carries both a user-supplied Instruction and a discoverable
	// RecursionPlan.
	ErrRecursionInstructionPlanConflict = errors.New("idiom: recursion instruction conflicts with a discovered recursion plan")

	// ErrNoRecordFetcher is returned when a Thing or Edges step needs to
	// materialize a record but Options carries no RecordFetcher.
	ErrNoRecordFetcher = errors.New("idiom: no record fetcher configured")
)

// RecursionMinimumNotReachedError is returned when a recursion terminates
// via an empty/None step result before reaching its configured minimum
// iteration count.
type RecursionMinimumNotReachedError struct {
	Min      int
	Iterated int
}

func (e *RecursionMinimumNotReachedError) Error() string {
	return fmt.Sprintf("idiom: recursion did not reach minimum of %d iterations (reached %d)", e.Min, e.Iterated)
}

// InvalidFunctionError is the distinguishable "invalid function" signal
// the method dispatcher collaborator (§6) must produce for unknown
// method names, so the evaluator can recover it specifically on objects
// by trying the field-as-function fallback (§4.1.2, §9).
type InvalidFunctionError struct {
	Name string
}

func (e *InvalidFunctionError) Error() string {
	return fmt.Sprintf("idiom: invalid function '%s'", e.Name)
}

// IsInvalidFunction reports whether err is (or wraps) an
// *InvalidFunctionError, the same recognizer-helper idiom graph's
// DeltaError uses for IsQuadExist/IsQuadNotExist.
func IsInvalidFunction(err error) bool {
	var ife *InvalidFunctionError
	return errors.As(err, &ife)
}

// DepthExceededError carries the offending path length alongside the
// sentinel, for callers that want the detail without string-parsing.
type DepthExceededError struct {
	PathLen int
	Max     int
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("idiom: path length %d exceeds maximum computation depth %d", e.PathLen, e.Max)
}

func (e *DepthExceededError) Unwrap() error { return ErrComputationDepthExceeded }

// ControlFlow is a non-error early-exit sentinel used by the broader
// statement executor (e.g. a RETURN inside a subquery). The evaluator
// never produces one itself; when a collaborator's Compute call resolves
// one, get() short-circuits and passes it upward unchanged rather than
// treating it as a failure.
type ControlFlow struct {
	Value Value
}

func (c *ControlFlow) Error() string {
	return "idiom: control flow return"
}

// AsControlFlow reports whether err is a *ControlFlow sentinel.
func AsControlFlow(err error) (*ControlFlow, bool) {
	cf, ok := err.(*ControlFlow)
	return cf, ok
}
