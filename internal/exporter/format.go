package exporter

import (
	"fmt"
	"math"
	"strconv"
)

// FormatFloat formats a float64 for CSV output using the shortest decimal
// representation that round-trips. NaN (the missing-value sentinel) becomes
// an empty cell.
func FormatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatFloatPrec formats a float64 with a fixed number of decimal places,
// used by summary tables where aligned precision reads better.
func FormatFloatPrec(f float64, prec int) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', prec, 64)
}

// FormatInt formats an integer count for CSV output
func FormatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
