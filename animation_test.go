package animspec

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-animspec/internal/testutil"
)

// TestTargetBasedAnimationTween verifies the façade over a linear tween,
// including the cached target and end velocity once finished.
func TestTargetBasedAnimationTween(t *testing.T) {
	anim, err := NewTargetBasedAnimation(Tween[float64](300, 0, LinearEasing), Float64Converter, 0, 100, 0)
	require.NoError(t, err)

	assert.Equal(t, 300*ms, anim.DurationNanos())
	assert.False(t, anim.IsInfinite())
	assert.InDelta(t, 0.0, anim.InitialValue(), 0)
	assert.InDelta(t, 100.0, anim.TargetValue(), 0)

	assert.InDelta(t, 0.0, anim.ValueFromNanos(0), testutil.DefaultTolerance)
	assert.InDelta(t, 50.0, anim.ValueFromNanos(150*ms), testutil.DefaultTolerance)
	assert.InDelta(t, 1000.0/3, anim.VelocityFromNanos(150*ms), testutil.VelocityTolerance)

	assert.False(t, anim.IsFinishedFromNanos(300*ms-1))
	assert.True(t, anim.IsFinishedFromNanos(300*ms))
	assert.InDelta(t, 100.0, anim.ValueFromNanos(300*ms), 0)
	assert.InDelta(t, 100.0, anim.ValueFromNanos(10_000*ms), 0)
	assert.InDelta(t, 1000.0/3, anim.VelocityFromNanos(10_000*ms), testutil.VelocityTolerance)
}

func TestTargetBasedAnimationSpring(t *testing.T) {
	spec := Spring[Point](DampingRatioMediumBouncy, StiffnessLow, nil)
	anim, err := NewTargetBasedAnimation(spec, PointConverter, Point{}, Point{X: 100, Y: 10}, Point{})
	require.NoError(t, err)

	scalar, err := NewFloatSpringSpec(DampingRatioMediumBouncy, StiffnessLow, DefaultDisplacementThreshold)
	require.NoError(t, err)
	assert.Equal(t, scalar.DurationNanos(0, 100, 0), anim.DurationNanos())

	duration := anim.DurationNanos()
	assert.Equal(t, Point{X: 100, Y: 10}, anim.ValueFromNanos(duration))
	assert.Equal(t, []float64{0, 0}, anim.VelocityVectorFromNanos(duration).Channels())

	almost := anim.ValueFromNanos(duration - ms)
	assert.InDelta(t, 100.0, almost.X, 2*DefaultDisplacementThreshold)
	assert.InDelta(t, 10.0, almost.Y, 2*DefaultDisplacementThreshold)
}

// TestTargetBasedAnimationFreezesInputs verifies that mutating the caller's
// velocity vector after construction has no effect.
func TestTargetBasedAnimationFreezesInputs(t *testing.T) {
	spec, err := NewVectorizedSpringSpec(1, DampingRatioNoBouncy, StiffnessMedium, nil)
	require.NoError(t, err)
	velocity := Vector1(250)

	anim, err := NewVectorizedTargetBasedAnimation(spec, Float64Converter, 0, 10, velocity)
	require.NoError(t, err)
	before := anim.ValueFromNanos(20 * ms)

	velocity.Set(0, -9999)
	assert.InDelta(t, before, anim.ValueFromNanos(20*ms), 0)
}

func TestTargetBasedAnimationDefaultVelocity(t *testing.T) {
	spec, err := NewVectorizedTweenSpec(1, 100, 0, LinearEasing)
	require.NoError(t, err)

	anim, err := NewVectorizedTargetBasedAnimation(spec, IntConverter, 0, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, anim.VelocityFromNanos(0))
	assert.Equal(t, 5, anim.ValueFromNanos(50*ms))
	assert.Same(t, spec, anim.Spec())
}

func TestTargetBasedAnimationInfinite(t *testing.T) {
	spec := InfiniteRepeatable(Tween[float64](100, 0, LinearEasing), RepeatReverse, StartOffset{})
	anim, err := NewTargetBasedAnimation(spec, Float64Converter, 0, 1, 0)
	require.NoError(t, err)

	assert.True(t, anim.IsInfinite())
	assert.Equal(t, InfiniteDurationNanos, anim.DurationNanos())
	assert.False(t, anim.IsFinishedFromNanos(1_000_000*ms))
	assert.InDelta(t, 0.75, anim.ValueFromNanos(1_000_125*ms), testutil.DefaultTolerance)
}

func TestTargetBasedAnimationValidation(t *testing.T) {
	spec, err := NewVectorizedTweenSpec(2, 100, 0, nil)
	require.NoError(t, err)

	_, err = NewVectorizedTargetBasedAnimation(spec, Float64Converter, 0, 1, nil)
	require.ErrorIs(t, err, ErrInvalidSpec)

	_, err = NewVectorizedTargetBasedAnimation(spec, PointConverter, Point{}, Point{}, Vector1(0))
	require.ErrorIs(t, err, ErrInvalidSpec)

	_, err = NewVectorizedTargetBasedAnimation[Point](nil, PointConverter, Point{}, Point{}, nil)
	require.ErrorIs(t, err, ErrInvalidSpec)

	_, err = NewTargetBasedAnimation(Tween[float64](-1, 0, nil), Float64Converter, 0, 1, 0)
	require.ErrorIs(t, err, ErrInvalidSpec)
}

// TestTargetBasedAnimationNaNPanics verifies that a NaN value aborts with
// context instead of propagating.
func TestTargetBasedAnimationNaNPanics(t *testing.T) {
	broken := func(float64) float64 { return math.NaN() }
	anim, err := NewTargetBasedAnimation(Tween[Point](100, 0, broken), PointConverter, Point{}, Point{X: 1, Y: 1}, Point{})
	require.NoError(t, err)

	defer func() {
		recovered := recover()
		require.NotNil(t, recovered)
		err, ok := recovered.(error)
		require.True(t, ok, "panic value %v is not an error", recovered)

		var nonFinite *NonFiniteError
		require.True(t, errors.As(err, &nonFinite))
		assert.ErrorIs(t, err, ErrNonFinite)
		assert.Equal(t, "tween", nonFinite.Spec)
		assert.Equal(t, 50*ms, nonFinite.PlayTimeNanos)
		assert.Equal(t, 0, nonFinite.Channel)
		assert.Contains(t, err.Error(), "tween")
	}()
	anim.ValueFromNanos(50 * ms)
}

func TestDecayAnimation(t *testing.T) {
	spec, err := NewExponentialDecaySpec(1, 0.1)
	require.NoError(t, err)

	anim, err := NewDecayAnimation(spec, Float64Converter, 0, 1000)
	require.NoError(t, err)

	assert.Equal(t, 2192*ms, anim.DurationNanos())
	assert.False(t, anim.IsInfinite())
	assert.InDelta(t, 0.0, anim.InitialValue(), 0)
	assert.InDelta(t, spec.TargetValue(0, 1000), anim.TargetValue(), 0)

	assert.InDelta(t, spec.ValueFromNanos(500*ms, 0, 1000), anim.ValueFromNanos(500*ms), 0)
	assert.InDelta(t, spec.VelocityFromNanos(500*ms, 0, 1000), anim.VelocityFromNanos(500*ms), 0)

	endVelocity := spec.VelocityFromNanos(anim.DurationNanos(), 0, 1000)
	assert.True(t, anim.IsFinishedFromNanos(anim.DurationNanos()))
	assert.InDelta(t, anim.TargetValue(), anim.ValueFromNanos(5000*ms), 0)
	assert.InDelta(t, endVelocity, anim.VelocityFromNanos(5000*ms), 0)
}

// TestDecayAnimationVector verifies that the end velocity is a stable copy
// and channels decay independently.
func TestDecayAnimationVector(t *testing.T) {
	spec, err := NewExponentialDecaySpec(2, 0.5)
	require.NoError(t, err)

	anim, err := NewDecayAnimation(spec, PointConverter, Point{X: 10, Y: 10}, Point{X: -400, Y: 0})
	require.NoError(t, err)

	end := anim.VelocityVectorFromNanos(anim.DurationNanos()).Copy()
	anim.VelocityVectorFromNanos(100 * ms)
	if diff := cmp.Diff(end.Channels(), anim.VelocityVectorFromNanos(anim.DurationNanos()).Channels(),
		cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("end velocity changed (-want +got):\n%s", diff)
	}

	target := anim.TargetValue()
	assert.Less(t, target.X, 10.0)
	assert.InDelta(t, 10.0, target.Y, 0)
}
