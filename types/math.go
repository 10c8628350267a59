package types

import "github.com/chewxy/math32"

const (
	// Comparison threshold for near-zero float32 values.
	floatCmpEpsilon float32 = 1e-7

	// Self-intersection guard for single precision ray offsets.
	HitEpsilon float32 = 1e-4

	// Determinant threshold below which a ray is considered parallel
	// to a triangle plane.
	DetEpsilon float32 = 1e-6
)

// Clamp x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Square root that treats small negative arguments caused by float32
// rounding as zero.
func SafeSqrt(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return math32.Sqrt(x)
}

// Acos with the argument clamped to the valid [-1, 1] domain.
func SafeAcos(x float32) float32 {
	return math32.Acos(Clamp(x, -1, 1))
}
