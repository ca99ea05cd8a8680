// Package mathutil provides the numeric building blocks shared by the
// animation specs: interpolation, clamping and bounded root finding.
package mathutil

import (
	"math"
)

// Lerp linearly interpolates between start and stop by fraction.
// fraction is not clamped; values outside [0, 1] extrapolate.
func Lerp(start, stop, fraction float64) float64 {
	return (1-fraction)*start + fraction*stop
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ClampInt64 restricts v to [lo, hi].
func ClampInt64(v, lo, hi int64) int64 {
	return max(lo, min(hi, v))
}

// NewtonRaphson refines the root estimate x0 of fn using its derivative.
//
// Iteration stops when two successive estimates differ by less than
// tolerance, or after maxIterations steps, whichever comes first. The last
// estimate is returned in both cases together with the number of steps
// taken; running out of iterations is not an error.
//
// Each step is:
//
//	x ← x - fn(x) / fnPrime(x)
func NewtonRaphson(fn, fnPrime func(float64) float64, x0, tolerance float64, maxIterations int) (float64, int) {
	x := x0
	iterations := 0
	delta := math.MaxFloat64
	for delta > tolerance && iterations < maxIterations {
		iterations++
		last := x
		x = last - fn(last)/fnPrime(last)
		delta = math.Abs(last - x)
	}
	return x, iterations
}

// Bisect searches [lo, hi] for the parameter t at which the monotonically
// increasing fn reaches target, stopping once |fn(t) - target| < tolerance.
// It returns the final midpoint even if the tolerance was not met.
func Bisect(fn func(float64) float64, target, lo, hi, tolerance float64) float64 {
	mid := lo
	for range maxBisectIterations {
		mid = (lo + hi) / halfDivisor
		estimate := fn(mid)
		if math.Abs(target-estimate) < tolerance {
			return mid
		}
		if estimate < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return mid
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
