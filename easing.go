package animspec

import (
	"github.com/tanema/gween/ease"

	"github.com/tphakala/go-animspec/internal/mathutil"
)

// Easing maps a linear fraction of elapsed time in [0, 1] to the fraction
// of the value change to apply. Easings may overshoot [0, 1].
type Easing func(fraction float64) float64

// Standard easing curves.
var (
	// LinearEasing returns the fraction unchanged.
	LinearEasing Easing = func(fraction float64) float64 { return fraction }

	// FastOutSlowInEasing accelerates quickly and spends more time
	// decelerating. The default for tweens.
	FastOutSlowInEasing = CubicBezierEasing(0.4, 0.0, 0.2, 1.0)

	// LinearOutSlowInEasing starts at peak velocity and decelerates.
	LinearOutSlowInEasing = CubicBezierEasing(0.0, 0.0, 0.2, 1.0)

	// FastOutLinearInEasing accelerates and ends at peak velocity.
	FastOutLinearInEasing = CubicBezierEasing(0.4, 0.0, 1.0, 1.0)
)

// cubicBezier is a unit Bézier from (0, 0) to (1, 1) with control points
// (a, b) and (c, d).
type cubicBezier struct {
	a, b, c, d float64
}

// CubicBezierEasing returns an easing following the cubic Bézier curve with
// control points (a, b) and (c, d), as used by CSS cubic-bezier().
//
// The x coordinates a and c should lie in [0, 1] so that x(t) is monotonic;
// otherwise the solved parameter is only approximate.
func CubicBezierEasing(a, b, c, d float64) Easing {
	cb := cubicBezier{a: a, b: b, c: c, d: d}
	return cb.transform
}

// evaluate returns one coordinate of the curve at parameter m given the
// coordinates p1, p2 of the two control points.
func (cubicBezier) evaluate(p1, p2, m float64) float64 {
	mt := 1 - m
	return 3*p1*mt*mt*m + 3*p2*mt*m*m + m*m*m
}

func (cb cubicBezier) transform(fraction float64) float64 {
	if fraction <= 0 || fraction >= 1 {
		return fraction
	}
	x := func(m float64) float64 { return cb.evaluate(cb.a, cb.c, m) }
	m := mathutil.Bisect(x, fraction, 0, 1, cubicErrorBound)
	return cb.evaluate(cb.b, cb.d, m)
}

// EasingFromTween adapts a gween easing function, such as ease.OutBounce or
// ease.InOutSine, into an Easing.
func EasingFromTween(fn ease.TweenFunc) Easing {
	return func(fraction float64) float64 {
		return float64(fn(float32(fraction), 0, 1, 1))
	}
}
