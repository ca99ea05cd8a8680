package animspec

import (
	"math"

	"github.com/tphakala/go-animspec/internal/mathutil"
	"github.com/tphakala/go-animspec/internal/spring"
)

// FloatKind identifies the variant held by a FloatSpec.
type FloatKind int

const (
	// FloatTween interpolates with an easing curve over a fixed duration.
	FloatTween FloatKind = iota

	// FloatSpring follows a damped spring towards the target.
	FloatSpring
)

func (k FloatKind) String() string {
	switch k {
	case FloatTween:
		return "tween"
	case FloatSpring:
		return "spring"
	default:
		return "unknown"
	}
}

// FloatSpec animates a single float channel. It is a closed set of
// variants (see FloatKind) evaluated through one dispatch per query, and is
// stateless with respect to time: every query carries the playtime and the
// boundary conditions.
type FloatSpec struct {
	kind FloatKind

	// tween
	durationMillis int64
	delayMillis    int64
	easing         Easing

	// spring
	sim                 *spring.Simulation
	visibilityThreshold float64
}

// NewFloatTweenSpec returns a tween lasting durationMillis after an initial
// delayMillis, shaped by easing (FastOutSlowInEasing when nil).
func NewFloatTweenSpec(durationMillis, delayMillis int, easing Easing) (FloatSpec, error) {
	if durationMillis < 0 {
		return FloatSpec{}, invalidf("tween duration must be non-negative, got %d", durationMillis)
	}
	if delayMillis < 0 {
		return FloatSpec{}, invalidf("tween delay must be non-negative, got %d", delayMillis)
	}
	if easing == nil {
		easing = FastOutSlowInEasing
	}
	return FloatSpec{
		kind:           FloatTween,
		durationMillis: int64(durationMillis),
		delayMillis:    int64(delayMillis),
		easing:         easing,
	}, nil
}

// NewFloatSpringSpec returns a spring with the given damping ratio (>= 0),
// stiffness (> 0) and visibility threshold (> 0), the distance from the
// target below which the animation counts as settled.
func NewFloatSpringSpec(dampingRatio, stiffness, visibilityThreshold float64) (FloatSpec, error) {
	sim, err := spring.NewSimulation(stiffness, dampingRatio)
	if err != nil {
		return FloatSpec{}, invalidf("%v", err)
	}
	if !(visibilityThreshold > 0) || math.IsInf(visibilityThreshold, 0) {
		return FloatSpec{}, invalidf("visibility threshold must be positive and finite, got %v", visibilityThreshold)
	}
	return FloatSpec{
		kind:                FloatSpring,
		sim:                 sim,
		visibilityThreshold: visibilityThreshold,
	}, nil
}

// Kind returns the variant.
func (s FloatSpec) Kind() FloatKind { return s.kind }

// DurationMillis returns the tween duration, excluding delay. Zero for springs.
func (s FloatSpec) DurationMillis() int { return int(s.durationMillis) }

// DelayMillis returns the tween delay. Zero for springs.
func (s FloatSpec) DelayMillis() int { return int(s.delayMillis) }

// ValueFromNanos returns the value at playTimeNanos.
func (s FloatSpec) ValueFromNanos(playTimeNanos int64, initialValue, targetValue, initialVelocity float64) float64 {
	playTimeMillis := playTimeNanos / MillisToNanos
	switch s.kind {
	case FloatTween:
		return s.tweenValue(playTimeMillis, initialValue, targetValue)
	case FloatSpring:
		value, _ := s.sim.Update(initialValue, initialVelocity, max(0, playTimeMillis), targetValue)
		return value
	default:
		panic(unknownKind(s.kind))
	}
}

// VelocityFromNanos returns the velocity, in units per second, at
// playTimeNanos.
func (s FloatSpec) VelocityFromNanos(playTimeNanos int64, initialValue, targetValue, initialVelocity float64) float64 {
	playTimeMillis := playTimeNanos / MillisToNanos
	switch s.kind {
	case FloatTween:
		if s.clampPlayTime(playTimeMillis) == 0 {
			return initialVelocity
		}
		prev := s.tweenValue(playTimeMillis-finiteDifference, initialValue, targetValue)
		curr := s.tweenValue(playTimeMillis, initialValue, targetValue)
		return (curr - prev) * SecondsToMillis
	case FloatSpring:
		_, velocity := s.sim.Update(initialValue, initialVelocity, max(0, playTimeMillis), targetValue)
		return velocity
	default:
		panic(unknownKind(s.kind))
	}
}

// DurationNanos returns how long the animation runs for the given boundary
// conditions. Springs that can never settle report InfiniteDurationNanos.
func (s FloatSpec) DurationNanos(initialValue, targetValue, initialVelocity float64) int64 {
	switch s.kind {
	case FloatTween:
		return (s.delayMillis + s.durationMillis) * MillisToNanos
	case FloatSpring:
		millis := spring.EstimateDurationMillis(
			s.sim.Stiffness(),
			s.sim.DampingRatio(),
			initialVelocity/s.visibilityThreshold,
			(initialValue-targetValue)/s.visibilityThreshold,
			1,
		)
		return millisToNanosSaturated(millis)
	default:
		panic(unknownKind(s.kind))
	}
}

// EndVelocity returns the velocity once the animation has finished. A
// spring's trailing velocity is below its visibility threshold, so it is
// reported as exactly zero.
func (s FloatSpec) EndVelocity(initialValue, targetValue, initialVelocity float64) float64 {
	switch s.kind {
	case FloatSpring:
		return 0
	default:
		return s.VelocityFromNanos(s.DurationNanos(initialValue, targetValue, initialVelocity),
			initialValue, targetValue, initialVelocity)
	}
}

func (s FloatSpec) clampPlayTime(playTimeMillis int64) int64 {
	return mathutil.ClampInt64(playTimeMillis-s.delayMillis, 0, s.durationMillis)
}

func (s FloatSpec) tweenValue(playTimeMillis int64, initialValue, targetValue float64) float64 {
	fraction := 1.0
	if s.durationMillis > 0 {
		fraction = float64(s.clampPlayTime(playTimeMillis)) / float64(s.durationMillis)
	}
	return mathutil.Lerp(initialValue, targetValue, s.easing(mathutil.Clamp(fraction, 0, 1)))
}

// millisToNanosSaturated truncates a millisecond estimate to whole
// milliseconds and converts it, saturating at InfiniteDurationNanos.
func millisToNanosSaturated(millis float64) int64 {
	if math.IsNaN(millis) || millis <= 0 {
		return 0
	}
	if millis >= float64(InfiniteDurationNanos/MillisToNanos) {
		return InfiniteDurationNanos
	}
	return int64(millis) * MillisToNanos
}
