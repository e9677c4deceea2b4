package idiom

import "strconv"

// formatNumber renders a Number the way an index/field lookup expects an
// Index(i) part's integer to be stringified.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
