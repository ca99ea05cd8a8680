package animspec

import (
	"math"
)

// ExponentialDecaySpec decelerates a fling with friction proportional to
// velocity. It has no target: the resting value follows from the initial
// value and velocity.
type ExponentialDecaySpec struct {
	friction             float64 // negative, in 1/s
	absVelocityThreshold float64
}

// NewExponentialDecaySpec returns a decay whose friction is
// frictionMultiplier times the default, finishing once the speed drops to
// absVelocityThreshold. Both must be positive.
func NewExponentialDecaySpec(frictionMultiplier, absVelocityThreshold float64) (ExponentialDecaySpec, error) {
	if !(frictionMultiplier > 0) || math.IsInf(frictionMultiplier, 0) {
		return ExponentialDecaySpec{}, invalidf("friction multiplier must be positive and finite, got %v", frictionMultiplier)
	}
	if !(absVelocityThreshold > 0) || math.IsInf(absVelocityThreshold, 0) {
		return ExponentialDecaySpec{}, invalidf("velocity threshold must be positive and finite, got %v", absVelocityThreshold)
	}
	return ExponentialDecaySpec{
		friction:             exponentialDecayFriction * frictionMultiplier,
		absVelocityThreshold: absVelocityThreshold,
	}, nil
}

// AbsVelocityThreshold returns the speed below which the decay is finished.
func (s ExponentialDecaySpec) AbsVelocityThreshold() float64 { return s.absVelocityThreshold }

// ValueFromNanos returns the value at playTimeNanos.
func (s ExponentialDecaySpec) ValueFromNanos(playTimeNanos int64, initialValue, initialVelocity float64) float64 {
	seconds := float64(max(0, playTimeNanos)/MillisToNanos) / SecondsToMillis
	return s.valueAt(seconds, initialValue, initialVelocity)
}

// VelocityFromNanos returns the velocity at playTimeNanos.
func (s ExponentialDecaySpec) VelocityFromNanos(playTimeNanos int64, initialValue, initialVelocity float64) float64 {
	seconds := float64(max(0, playTimeNanos)/MillisToNanos) / SecondsToMillis
	return initialVelocity * math.Exp(s.friction*seconds)
}

// DurationNanos returns the time at which |velocity| falls to the
// threshold. Starting at or below the threshold finishes immediately.
func (s ExponentialDecaySpec) DurationNanos(initialValue, initialVelocity float64) int64 {
	seconds := s.settleSeconds(initialVelocity)
	return millisToNanosSaturated(seconds * SecondsToMillis)
}

// TargetValue returns the value at which the decay comes to rest.
func (s ExponentialDecaySpec) TargetValue(initialValue, initialVelocity float64) float64 {
	return s.valueAt(s.settleSeconds(initialVelocity), initialValue, initialVelocity)
}

func (s ExponentialDecaySpec) settleSeconds(initialVelocity float64) float64 {
	speed := math.Abs(initialVelocity)
	if speed <= s.absVelocityThreshold {
		return 0
	}
	return math.Log(s.absVelocityThreshold/speed) / s.friction
}

func (s ExponentialDecaySpec) valueAt(seconds, initialValue, initialVelocity float64) float64 {
	travel := initialVelocity / s.friction
	return initialValue - travel + travel*math.Exp(s.friction*seconds)
}

// VectorizedDecaySpec applies an ExponentialDecaySpec to each channel of a
// vector independently.
type VectorizedDecaySpec struct {
	spec ExponentialDecaySpec
	size int

	value    *Vector
	velocity *Vector
	target   *Vector
}

// NewVectorizedDecaySpec lifts spec to vectors of the given size.
func NewVectorizedDecaySpec(size int, spec ExponentialDecaySpec) (*VectorizedDecaySpec, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if spec.friction == 0 {
		return nil, invalidf("decay spec is not initialized")
	}
	return &VectorizedDecaySpec{
		spec:     spec,
		size:     size,
		value:    NewVector(size),
		velocity: NewVector(size),
		target:   NewVector(size),
	}, nil
}

// Size returns the vector arity.
func (s *VectorizedDecaySpec) Size() int { return s.size }

// AbsVelocityThreshold returns the per-channel speed threshold.
func (s *VectorizedDecaySpec) AbsVelocityThreshold() float64 { return s.spec.absVelocityThreshold }

// ValueFromNanos returns the value at playTimeNanos. The result is a
// scratch vector owned by s.
func (s *VectorizedDecaySpec) ValueFromNanos(playTimeNanos int64, initialValue, initialVelocity *Vector) *Vector {
	for i := range s.size {
		s.value.c[i] = s.spec.ValueFromNanos(playTimeNanos, initialValue.Get(i), initialVelocity.Get(i))
	}
	return s.value
}

// VelocityFromNanos returns the velocity at playTimeNanos. The result is a
// scratch vector owned by s.
func (s *VectorizedDecaySpec) VelocityFromNanos(playTimeNanos int64, initialValue, initialVelocity *Vector) *Vector {
	for i := range s.size {
		s.velocity.c[i] = s.spec.VelocityFromNanos(playTimeNanos, initialValue.Get(i), initialVelocity.Get(i))
	}
	return s.velocity
}

// DurationNanos returns the longest channel duration.
func (s *VectorizedDecaySpec) DurationNanos(initialValue, initialVelocity *Vector) int64 {
	var longest int64
	for i := range s.size {
		longest = max(longest, s.spec.DurationNanos(initialValue.Get(i), initialVelocity.Get(i)))
	}
	return longest
}

// TargetValue returns the resting value of every channel. The result is a
// scratch vector owned by s.
func (s *VectorizedDecaySpec) TargetValue(initialValue, initialVelocity *Vector) *Vector {
	for i := range s.size {
		s.target.c[i] = s.spec.TargetValue(initialValue.Get(i), initialVelocity.Get(i))
	}
	return s.target
}

// CalculateTargetValue returns where a value of type T moving at
// initialVelocity comes to rest under spec.
func CalculateTargetValue[T any](spec ExponentialDecaySpec, conv TwoWayConverter[T], initialValue, initialVelocity T) (T, error) {
	var zero T
	if err := conv.validate(); err != nil {
		return zero, err
	}
	vectorized, err := NewVectorizedDecaySpec(conv.Size, spec)
	if err != nil {
		return zero, err
	}
	target := vectorized.TargetValue(conv.toVector(initialValue), conv.toVector(initialVelocity))
	return conv.FromVector(target), nil
}
