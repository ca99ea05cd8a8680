package animspec

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// TargetBasedAnimation binds a VectorizedSpec to fixed initial and target
// values and an initial velocity, so that only the playtime varies between
// queries. Duration and end velocity are computed once at construction.
//
// Like the spec it wraps, an animation must not be queried from multiple
// goroutines at once.
type TargetBasedAnimation[T any] struct {
	spec *VectorizedSpec
	conv TwoWayConverter[T]

	initialValue T
	targetValue  T

	initialValueVector    *Vector
	targetValueVector     *Vector
	initialVelocityVector *Vector

	durationNanos int64
	endVelocity   *Vector
}

// NewTargetBasedAnimation vectorizes spec with conv and animates from
// initialValue to targetValue starting at initialVelocity. Pass the zero
// value of T to start at rest.
func NewTargetBasedAnimation[T any](spec AnimationSpec[T], conv TwoWayConverter[T], initialValue, targetValue, initialVelocity T) (*TargetBasedAnimation[T], error) {
	vectorized, err := spec.Vectorize(conv)
	if err != nil {
		return nil, err
	}
	return NewVectorizedTargetBasedAnimation(vectorized, conv, initialValue, targetValue, conv.toVector(initialVelocity))
}

// NewVectorizedTargetBasedAnimation animates with an already vectorized
// spec. A nil initialVelocity starts at rest.
func NewVectorizedTargetBasedAnimation[T any](spec *VectorizedSpec, conv TwoWayConverter[T], initialValue, targetValue T, initialVelocity *Vector) (*TargetBasedAnimation[T], error) {
	if spec == nil {
		return nil, invalidf("animation needs a spec")
	}
	if err := conv.validate(); err != nil {
		return nil, err
	}
	if conv.Size != spec.Size() {
		return nil, invalidf("converter has %d channels but spec has %d", conv.Size, spec.Size())
	}
	if initialVelocity == nil {
		initialVelocity = NewVector(spec.Size())
	}
	if initialVelocity.Size() != spec.Size() {
		return nil, invalidf("initial velocity has %d channels but spec has %d", initialVelocity.Size(), spec.Size())
	}

	a := &TargetBasedAnimation[T]{
		spec:                  spec,
		conv:                  conv,
		initialValue:          initialValue,
		targetValue:           targetValue,
		initialValueVector:    conv.toVector(initialValue).Copy(),
		targetValueVector:     conv.toVector(targetValue).Copy(),
		initialVelocityVector: initialVelocity.Copy(),
	}
	a.durationNanos = spec.DurationNanos(a.initialValueVector, a.targetValueVector, a.initialVelocityVector)
	a.endVelocity = spec.EndVelocity(a.initialValueVector, a.targetValueVector, a.initialVelocityVector).Copy()
	return a, nil
}

// ValueFromNanos returns the value at playTimeNanos, or the target value
// once finished. It panics with a *NonFiniteError if the spec produces NaN.
func (a *TargetBasedAnimation[T]) ValueFromNanos(playTimeNanos int64) T {
	if a.IsFinishedFromNanos(playTimeNanos) {
		return a.targetValue
	}
	value := a.spec.ValueFromNanos(playTimeNanos, a.initialValueVector, a.targetValueVector, a.initialVelocityVector)
	checkFinite(a.spec.Kind().String(), playTimeNanos, value)
	return a.conv.FromVector(value)
}

// VelocityVectorFromNanos returns the velocity at playTimeNanos, or the end
// velocity once finished. The result must not be modified.
func (a *TargetBasedAnimation[T]) VelocityVectorFromNanos(playTimeNanos int64) *Vector {
	if a.IsFinishedFromNanos(playTimeNanos) {
		return a.endVelocity
	}
	velocity := a.spec.VelocityFromNanos(playTimeNanos, a.initialValueVector, a.targetValueVector, a.initialVelocityVector)
	checkFinite(a.spec.Kind().String(), playTimeNanos, velocity)
	return velocity
}

// VelocityFromNanos is VelocityVectorFromNanos converted to T.
func (a *TargetBasedAnimation[T]) VelocityFromNanos(playTimeNanos int64) T {
	return a.conv.FromVector(a.VelocityVectorFromNanos(playTimeNanos))
}

// IsFinishedFromNanos reports whether playTimeNanos is at or past the
// duration.
func (a *TargetBasedAnimation[T]) IsFinishedFromNanos(playTimeNanos int64) bool {
	return playTimeNanos >= a.durationNanos
}

// DurationNanos returns the duration computed at construction.
func (a *TargetBasedAnimation[T]) DurationNanos() int64 { return a.durationNanos }

// IsInfinite reports whether the animation never finishes.
func (a *TargetBasedAnimation[T]) IsInfinite() bool { return a.spec.IsInfinite() }

// InitialValue returns the value the animation starts from.
func (a *TargetBasedAnimation[T]) InitialValue() T { return a.initialValue }

// TargetValue returns the value the animation ends at.
func (a *TargetBasedAnimation[T]) TargetValue() T { return a.targetValue }

// Spec returns the wrapped spec.
func (a *TargetBasedAnimation[T]) Spec() *VectorizedSpec { return a.spec }

// DecayAnimation flings a value with an ExponentialDecaySpec. The target is
// wherever the decay comes to rest.
type DecayAnimation[T any] struct {
	spec *VectorizedDecaySpec
	conv TwoWayConverter[T]

	initialValue T
	targetValue  T

	initialValueVector    *Vector
	initialVelocityVector *Vector
	targetValueVector     *Vector

	durationNanos int64
	endVelocity   *Vector
}

// NewDecayAnimation starts a decay at initialValue moving at
// initialVelocity.
func NewDecayAnimation[T any](spec ExponentialDecaySpec, conv TwoWayConverter[T], initialValue, initialVelocity T) (*DecayAnimation[T], error) {
	if err := conv.validate(); err != nil {
		return nil, err
	}
	vectorized, err := NewVectorizedDecaySpec(conv.Size, spec)
	if err != nil {
		return nil, err
	}

	a := &DecayAnimation[T]{
		spec:                  vectorized,
		conv:                  conv,
		initialValue:          initialValue,
		initialValueVector:    conv.toVector(initialValue).Copy(),
		initialVelocityVector: conv.toVector(initialVelocity).Copy(),
	}
	a.targetValueVector = vectorized.TargetValue(a.initialValueVector, a.initialVelocityVector).Copy()
	a.targetValue = conv.FromVector(a.targetValueVector)
	a.durationNanos = vectorized.DurationNanos(a.initialValueVector, a.initialVelocityVector)
	a.endVelocity = vectorized.VelocityFromNanos(a.durationNanos, a.initialValueVector, a.initialVelocityVector).Copy()
	return a, nil
}

// ValueFromNanos returns the value at playTimeNanos, or the resting value
// once finished.
func (a *DecayAnimation[T]) ValueFromNanos(playTimeNanos int64) T {
	if a.IsFinishedFromNanos(playTimeNanos) {
		return a.targetValue
	}
	value := a.spec.ValueFromNanos(playTimeNanos, a.initialValueVector, a.initialVelocityVector)
	checkFinite(decaySpecName, playTimeNanos, value)
	return a.conv.FromVector(value)
}

// VelocityVectorFromNanos returns the velocity at playTimeNanos, or the end
// velocity once finished. The result must not be modified.
func (a *DecayAnimation[T]) VelocityVectorFromNanos(playTimeNanos int64) *Vector {
	if a.IsFinishedFromNanos(playTimeNanos) {
		return a.endVelocity
	}
	velocity := a.spec.VelocityFromNanos(playTimeNanos, a.initialValueVector, a.initialVelocityVector)
	checkFinite(decaySpecName, playTimeNanos, velocity)
	return velocity
}

// VelocityFromNanos is VelocityVectorFromNanos converted to T.
func (a *DecayAnimation[T]) VelocityFromNanos(playTimeNanos int64) T {
	return a.conv.FromVector(a.VelocityVectorFromNanos(playTimeNanos))
}

// IsFinishedFromNanos reports whether playTimeNanos is at or past the
// duration.
func (a *DecayAnimation[T]) IsFinishedFromNanos(playTimeNanos int64) bool {
	return playTimeNanos >= a.durationNanos
}

// DurationNanos returns the time at which every channel has slowed to the
// velocity threshold.
func (a *DecayAnimation[T]) DurationNanos() int64 { return a.durationNanos }

// IsInfinite always reports false; decays always come to rest.
func (a *DecayAnimation[T]) IsInfinite() bool { return false }

// InitialValue returns the value the decay starts from.
func (a *DecayAnimation[T]) InitialValue() T { return a.initialValue }

// TargetValue returns the resting value.
func (a *DecayAnimation[T]) TargetValue() T { return a.targetValue }

const decaySpecName = "decay"

// checkFinite panics with a *NonFiniteError when v has a NaN channel.
func checkFinite(spec string, playTimeNanos int64, v *Vector) {
	channels := v.Channels()
	if !floats.HasNaN(channels) {
		return
	}
	for i, c := range channels {
		if math.IsNaN(c) {
			panic(&NonFiniteError{Spec: spec, PlayTimeNanos: playTimeNanos, Channel: i, Value: v.Copy()})
		}
	}
}
