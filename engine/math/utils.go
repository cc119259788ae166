package math

import "golang.org/x/exp/constraints"

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// CeilDiv returns x/y rounded up. y must be positive.
func CeilDiv[T constraints.Integer](x, y T) T {
	return (x + y - 1) / y
}

// NextMultipleOf rounds x up to a multiple of y. y must be positive.
func NextMultipleOf[T constraints.Integer](x, y T) T {
	return CeilDiv(x, y) * y
}
