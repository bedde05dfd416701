package math

import (
	"strconv"
)

// Format formats a float based on the given precision
func Format(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// Decimal formats a float in plain decimal notation with the minimal digits
// needed to parse it back to the same value.
func Decimal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
