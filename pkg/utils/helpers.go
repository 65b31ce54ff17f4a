package utils

import (
	"cmp"
	"math"
	"strconv"
)

// Clamp limits a value between min and max
func Clamp[T cmp.Ordered](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// RoundHalfUp rounds to the nearest integer, with halves going toward +Inf
// (-2.5 becomes -2, 2.5 becomes 3)
func RoundHalfUp(value float64) int {
	floor := math.Floor(value)
	if value-floor >= 0.5 {
		return int(floor) + 1
	}
	return int(floor)
}

// FormatNumber prints a float without trailing zeros (3.50 -> "3.5", 4.0 -> "4")
func FormatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
