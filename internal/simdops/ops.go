// Package simdops provides SIMD-accelerated kernels over animation vector
// channels.
package simdops

import (
	"github.com/tphakala/simd/f64"
)

// Ops bundles the channel kernels used by the animation specs.
//
// Function pointers keep call sites independent of the SIMD backend;
// with PGO the indirect calls can be devirtualized in hot paths.
type Ops struct {
	// Sub subtracts element-wise: dst[i] = a[i] - b[i]
	Sub func(dst, a, b []float64)
	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []float64, s float64)
}

// Pre-instantiated operations.
// Package-level to avoid repeated allocation.
var ops = Ops{
	Sub:   f64.Sub,
	Scale: f64.Scale,
}

// Float64Ops returns the float64 channel operations.
func Float64Ops() *Ops {
	return &ops
}

// Difference writes (a[i] - b[i]) * scale into dst.
// All slices must have the same length; dst may alias a or b.
func Difference(dst, a, b []float64, scale float64) {
	ops.Sub(dst, a, b)
	ops.Scale(dst, dst, scale)
}
