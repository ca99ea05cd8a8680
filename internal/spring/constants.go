package spring

// Time conversion
const (
	millisPerSecond = 1000.0
)

// Damping regimes are split at exactly 1.
const (
	criticalDampingRatio = 1.0
)

// Quadratic formula constants for the characteristic equation
// m·s² + c·s + k = 0.
const (
	discriminantFactor = 4.0
	halfDivisor        = 2.0
)

// Concavity change of the critically damped response, t = -2/r - c1/c2.
const (
	concavityFactor = 2.0
)
