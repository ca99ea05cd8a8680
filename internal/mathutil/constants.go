package mathutil

// Root finding constants
const (
	// Newton–Raphson defaults used by the spring duration estimator.
	// The tolerance is in the caller's time unit (seconds for springs).
	DefaultNewtonMaxIterations = 100
	DefaultNewtonTolerance     = 0.001

	// Bisection safety cap. 64 halvings exhaust float64 precision on [0, 1].
	maxBisectIterations = 64
)

// Common division constants
const (
	halfDivisor = 2.0 // Division by 2
)
