// Package floatutils provides utilities for working with floats
package floatutils

import "math"

// Clip returns value restricted to the interval [min, max]. NaN is
// returned unchanged.
func Clip(value, min, max float64) float64 {
	if min > max {
		panic("clip: min > max")
	}
	return math.Max(min, math.Min(value, max))
}
