package animspec

import "math"

// Vector arity
const (
	MaxVectorSize = 4 // Widest supported vector (e.g. a rectangle or a color)
)

// Time conversion
const (
	MillisToNanos    int64 = 1_000_000
	SecondsToMillis        = 1000.0
	finiteDifference int64 = 1 // Tween and keyframe velocity step in ms
)

// InfiniteDurationNanos is reported by specs that never finish on their own.
const InfiniteDurationNanos int64 = math.MaxInt64

// DefaultDurationMillis is the default duration of duration-based specs.
const DefaultDurationMillis = 300

// Spring stiffness presets. Higher stiffness settles faster.
const (
	StiffnessHigh      = 10_000.0
	StiffnessMedium    = 1500.0
	StiffnessMediumLow = 400.0
	StiffnessLow       = 200.0
	StiffnessVeryLow   = 50.0
)

// Spring damping ratio presets. Below 1 the spring overshoots.
const (
	DampingRatioHighBouncy   = 0.2
	DampingRatioMediumBouncy = 0.5
	DampingRatioLowBouncy    = 0.75
	DampingRatioNoBouncy     = 1.0
)

// DefaultDisplacementThreshold is the spring visibility threshold used when
// none is given.
const DefaultDisplacementThreshold = 0.01

// Easing constants
const (
	cubicErrorBound = 0.001 // Bisection tolerance on the Bézier x coordinate
)

// Exponential decay constants
const (
	exponentialDecayFriction = -4.2 // Friction per unit multiplier, in 1/s
)
