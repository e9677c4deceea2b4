package idiom

// Reducer combines one iteration's step result into the recursion's
// running accumulation. This is the pluggable contract §4.2 step 2
// describes for both recursion plans and recursion instructions.
type Reducer interface {
	Reduce(accumulated Value, stepResult Value, iteration int) (Value, error)
}

// Instruction is a user-visible policy controlling what a Recurse
// traversal selects across iterations. Its presence is mutually
// exclusive with a discovered RecursionPlan (§4.2 step 1,
// ErrRecursionInstructionPlanConflict, §9).
type Instruction interface {
	Reducer
}

// LastReducer keeps only the most recent step result, the default
// behavior when neither a plan nor an instruction is present: a plain
// Recurse simply re-applies its path and returns wherever it lands.
type LastReducer struct{}

func (LastReducer) Reduce(_, stepResult Value, _ int) (Value, error) {
	return stepResult, nil
}

// CollectReducer appends every non-None step result into an Array,
// the behavior a discovered RecursionPlan drives: the nested
// RepeatRecursePart marks the point where each level's result should be
// spliced into the next, so the natural accumulation across levels is
// "all of them, in order".
type CollectReducer struct{}

func (CollectReducer) Reduce(accumulated, stepResult Value, _ int) (Value, error) {
	arr, _ := accumulated.(Array)
	if IsNone(stepResult) {
		return arr, nil
	}
	return append(append(Array{}, arr...), stepResult), nil
}
