package idiom

// flattenOne collapses one level of nesting in an array of arrays,
// leaving non-array elements untouched (matching the source's permissive
// `.flatten()` helper, which is a no-op on values that aren't arrays of
// arrays). This implements §4.3.
func flattenOne(v Value) Value {
	arr, ok := v.(Array)
	if !ok {
		return v
	}
	out := make(Array, 0, len(arr))
	for _, el := range arr {
		if inner, ok := el.(Array); ok {
			out = append(out, inner...)
		} else {
			out = append(out, el)
		}
	}
	return out
}

// shouldFlattenChain reports whether an intermediate array-of-arrays
// produced by chaining through `first` should be flattened one level,
// based on the *next* path head `second` — the two-cell lookahead §4.3
// and §9's "Conditional flattening" design note describe. It is true only
// when the chain is Graph→Graph or Graph→Where; field-access chaining
// deliberately preserves nesting.
func shouldFlattenChain(first, second Part) bool {
	if _, ok := first.(GraphPart); !ok {
		return false
	}
	switch second.(type) {
	case GraphPart, WherePart:
		return true
	default:
		return false
	}
}
