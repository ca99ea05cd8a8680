package spring

import (
	"math"
	"math/cmplx"

	"github.com/tphakala/go-animspec/internal/mathutil"
)

// EstimateDurationMillis estimates how long a unit-mass spring takes to
// settle: the smallest time after which |x(t)| stays at or below delta.
//
// initialDisplacement is measured from the rest position. The estimate is
// best effort; critically and over-damped springs are refined with a capped
// Newton–Raphson search and need not converge fully. An undamped spring
// that is not at rest never settles and returns +Inf.
func EstimateDurationMillis(stiffness, dampingRatio, initialVelocity, initialDisplacement, delta float64) float64 {
	dampingCoefficient := 2.0 * dampingRatio * math.Sqrt(stiffness)
	roots := characteristicRoots(1.0, dampingCoefficient, stiffness)
	return estimateDuration(roots, dampingRatio, initialVelocity, initialDisplacement, delta)
}

// EstimateDurationMillisWithMass is EstimateDurationMillis for an arbitrary
// mass, parameterized by the damping coefficient c in m·x″ + c·x′ + k·x = 0.
func EstimateDurationMillisWithMass(mass, stiffness, dampingCoefficient, initialVelocity, initialDisplacement, delta float64) float64 {
	dampingRatio := dampingCoefficient / (2.0 * math.Sqrt(stiffness*mass))
	roots := characteristicRoots(mass, dampingCoefficient, stiffness)
	return estimateDuration(roots, dampingRatio, initialVelocity, initialDisplacement, delta)
}

// characteristicRoots solves a·s² + b·s + c = 0 over the complex numbers.
// The root with the larger imaginary (or real) part comes first.
func characteristicRoots(a, b, c float64) [2]complex128 {
	discriminant := cmplx.Sqrt(complex(b*b-discriminantFactor*a*c, 0))
	return [2]complex128{
		(complex(-b, 0) + discriminant) / complex(halfDivisor*a, 0),
		(complex(-b, 0) - discriminant) / complex(halfDivisor*a, 0),
	}
}

func estimateDuration(roots [2]complex128, dampingRatio, initialVelocity, initialPosition, delta float64) float64 {
	if initialPosition == 0 && initialVelocity == 0 {
		return 0
	}

	// Normalize so the displacement is non-negative.
	v0 := initialVelocity
	if initialPosition < 0 {
		v0 = -initialVelocity
	}
	p0 := math.Abs(initialPosition)

	var seconds float64
	switch {
	case dampingRatio > criticalDampingRatio:
		seconds = estimateOverDamped(roots, p0, v0, delta)
	case dampingRatio < criticalDampingRatio:
		seconds = estimateUnderDamped(roots, p0, v0, delta)
	default:
		seconds = estimateCriticallyDamped(roots, p0, v0, delta)
	}

	if math.IsNaN(seconds) || seconds < 0 {
		return 0
	}
	return seconds * millisPerSecond
}

// estimateUnderDamped solves the decay envelope c·e^(rt) = delta directly.
//
// Near critical damping ωd is tiny and c blows up, so the envelope is
// compared with the bound (c1 + |v0 - r·c1|·t)·e^(rt), which follows from
// |sin(ωd·t)| <= ωd·t. When that bound is tighter the motion is
// indistinguishable from the critically damped one, whose estimate caps it.
func estimateUnderDamped(roots [2]complex128, p0, v0, delta float64) float64 {
	r := real(roots[0])
	c1 := p0
	c2 := (v0 - r*c1) / imag(roots[0])
	c := math.Hypot(c1, c2)
	if r == 0 {
		// No damping: the envelope is flat.
		if c <= delta {
			return 0
		}
		return math.Inf(1)
	}
	envelope := math.Log(delta/c) / r

	decay := [2]complex128{complex(r, 0), complex(r, 0)}
	linear := estimateCriticallyDamped(decay, c1, math.Abs(v0-r*c1)+r*c1, delta)
	if !(linear < envelope) {
		return envelope
	}

	w := -cmplx.Abs(roots[0])
	critical := estimateCriticallyDamped([2]complex128{complex(w, 0), complex(w, 0)}, p0, v0, delta)
	return math.Min(linear, critical)
}

// estimateCriticallyDamped finds the last crossing of
// x(t) = (c1 + c2·t)·e^(rt) with the threshold.
func estimateCriticallyDamped(roots [2]complex128, p0, v0, delta float64) float64 {
	r := real(roots[0])
	c1 := p0
	c2 := v0 - r*c1

	t1 := math.Log(math.Abs(delta/c1)) / r
	// Lambert W style fixed point for t·e^t.
	guess := math.Log(math.Abs(delta / c2))
	t2 := guess
	for range 6 {
		t2 = guess - math.Log(math.Abs(t2/r))
	}
	t2 /= r

	tCurr := initialGuess(t1, t2)

	tInflection := -(r*c1 + c2) / (r * c2)
	xInflection := c1*math.Exp(r*tInflection) + c2*tInflection*math.Exp(r*tInflection)

	var signedDelta float64
	switch {
	case math.IsNaN(tInflection) || tInflection <= 0:
		signedDelta = -delta
	case -xInflection < delta:
		// The overshoot stays inside the threshold, so the first crossing
		// from above is the last one.
		if c2 < 0 && c1 > 0 {
			tCurr = 0
		}
		signedDelta = -delta
	default:
		// The overshoot leaves the threshold: three crossings, start past the
		// concavity change to land on the last.
		tCurr = -(concavityFactor / r) - (c1 / c2)
		signedDelta = delta
	}

	t, _ := mathutil.NewtonRaphson(
		func(t float64) float64 { return (c1+c2*t)*math.Exp(r*t) + signedDelta },
		func(t float64) float64 { return (c2*(r*t+1) + c1*r) * math.Exp(r*t) },
		tCurr, mathutil.DefaultNewtonTolerance, mathutil.DefaultNewtonMaxIterations,
	)
	return t
}

// estimateOverDamped finds the last crossing of
// x(t) = c1·e^(r1·t) + c2·e^(r2·t) with the threshold.
func estimateOverDamped(roots [2]complex128, p0, v0, delta float64) float64 {
	r1 := real(roots[0])
	r2 := real(roots[1])
	c2 := (r1*p0 - v0) / (r1 - r2)
	c1 := p0 - c2

	t1 := math.Log(math.Abs(delta/c1)) / r1
	t2 := math.Log(math.Abs(delta/c2)) / r2
	tCurr := initialGuess(t1, t2)

	tInflection := math.Log((c1*r1)/(-c2*r2)) / (r2 - r1)
	xInflection := c1*math.Exp(r1*tInflection) + c2*math.Exp(r2*tInflection)

	var signedDelta float64
	switch {
	case math.IsNaN(tInflection) || tInflection <= 0:
		signedDelta = -delta
	case -xInflection < delta:
		if c2 > 0 && c1 < 0 {
			tCurr = 0
		}
		signedDelta = -delta
	default:
		tCurr = math.Log(-(c2*r2*r2)/(c1*r1*r1)) / (r1 - r2)
		signedDelta = delta
	}

	t, _ := mathutil.NewtonRaphson(
		func(t float64) float64 { return c1*math.Exp(r1*t) + c2*math.Exp(r2*t) + signedDelta },
		func(t float64) float64 { return c1*r1*math.Exp(r1*t) + c2*r2*math.Exp(r2*t) },
		tCurr, mathutil.DefaultNewtonTolerance, mathutil.DefaultNewtonMaxIterations,
	)
	return t
}

// initialGuess picks the later of the two per-term estimates, falling back
// to whichever is finite.
func initialGuess(t1, t2 float64) float64 {
	switch {
	case !mathutil.IsFinite(t1):
		return t2
	case !mathutil.IsFinite(t2):
		return t1
	default:
		return math.Max(t1, t2)
	}
}
