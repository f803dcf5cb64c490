package types

import "math"

const (
	// Relative tolerance used by FloatEqual.
	floatCmpEpsilon = 1e-5

	// Smallest positive normal float64.
	minNormalFloat64 = 0x1p-1022
)

// FloatEqual reports whether a and b are approximately equal. Values near
// zero are compared using an absolute threshold; everything else is compared
// using the ratio of their difference to their combined magnitude.
//
// See http://floating-point-gui.de/errors/comparison/
func FloatEqual(a, b float64) bool {
	if a == b {
		// shortcut; also handles infinities
		return true
	}

	diff := math.Abs(a - b)
	if a == 0 || b == 0 || diff < minNormalFloat64 {
		return diff < floatCmpEpsilon*minNormalFloat64
	}

	return diff/math.Min(math.Abs(a)+math.Abs(b), math.MaxFloat64) < floatCmpEpsilon
}
