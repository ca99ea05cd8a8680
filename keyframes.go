package animspec

import (
	"cmp"
	"slices"

	"github.com/tphakala/go-animspec/internal/mathutil"
	"github.com/tphakala/go-animspec/internal/simdops"
)

// Keyframe pins a value at a timestamp. Easing shapes the segment that
// starts at this keyframe; nil means LinearEasing.
type Keyframe struct {
	Value  *Vector
	Easing Easing
}

type keyframe struct {
	timestampMillis int64
	value           *Vector
	easing          Easing
}

// NewVectorizedKeyframesSpec returns a spec that passes through each
// keyframe value at its timestamp (milliseconds after the delay). The
// segments before the first keyframe and after the last one run from the
// initial value and to the target value. Timestamps outside
// [0, durationMillis] are clamped into range; when two keyframes land on the
// same time, the one whose timestamp was moved the least wins.
//
// Keyframe values are copied, so later changes to the caller's vectors do
// not affect the spec.
func NewVectorizedKeyframesSpec(size int, keyframes map[int]Keyframe, durationMillis, delayMillis int) (*VectorizedSpec, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if durationMillis < 0 {
		return nil, invalidf("keyframes duration must be non-negative, got %d", durationMillis)
	}
	if delayMillis < 0 {
		return nil, invalidf("keyframes delay must be non-negative, got %d", delayMillis)
	}

	type candidate struct {
		frame    keyframe
		distance int64 // how far the timestamp was moved by clamping
	}
	byTime := make(map[int64]candidate, len(keyframes))
	for ts, kf := range keyframes {
		if kf.Value == nil {
			return nil, invalidf("keyframe at %d ms has no value", ts)
		}
		if kf.Value.Size() != size {
			return nil, invalidf("keyframe at %d ms has %d channels, want %d", ts, kf.Value.Size(), size)
		}
		clamped := mathutil.ClampInt64(int64(ts), 0, int64(durationMillis))
		distance := max(int64(ts)-clamped, clamped-int64(ts))
		if existing, taken := byTime[clamped]; taken && existing.distance <= distance {
			continue
		}
		easing := kf.Easing
		if easing == nil {
			easing = LinearEasing
		}
		byTime[clamped] = candidate{
			frame:    keyframe{timestampMillis: clamped, value: kf.Value.Copy(), easing: easing},
			distance: distance,
		}
	}

	s := newVectorizedSpec(KindKeyframes, size)
	s.durationMillis = int64(durationMillis)
	s.delayMillis = int64(delayMillis)
	s.keyframes = make([]keyframe, 0, len(byTime))
	for _, c := range byTime {
		s.keyframes = append(s.keyframes, c.frame)
	}
	slices.SortFunc(s.keyframes, func(a, b keyframe) int {
		return cmp.Compare(a.timestampMillis, b.timestampMillis)
	})
	return s, nil
}

// keyframesValue evaluates the spec at playTimeMillis, measured from the
// start of the delay.
func (s *VectorizedSpec) keyframesValue(playTimeMillis int64, initialValue, targetValue *Vector) *Vector {
	t := mathutil.ClampInt64(playTimeMillis-s.delayMillis, 0, s.durationMillis)

	i, found := slices.BinarySearchFunc(s.keyframes, t, func(kf keyframe, target int64) int {
		return cmp.Compare(kf.timestampMillis, target)
	})
	if found {
		s.value.CopyFrom(s.keyframes[i].value)
		return s.value
	}
	if t >= s.durationMillis {
		s.value.CopyFrom(targetValue)
		return s.value
	}
	if t <= 0 {
		s.value.CopyFrom(initialValue)
		return s.value
	}

	startTime, startValue, easing := int64(0), initialValue, LinearEasing
	if i > 0 {
		prev := s.keyframes[i-1]
		startTime, startValue, easing = prev.timestampMillis, prev.value, prev.easing
	}
	endTime, endValue := s.durationMillis, targetValue
	if i < len(s.keyframes) {
		next := s.keyframes[i]
		endTime, endValue = next.timestampMillis, next.value
	}

	fraction := easing(float64(t-startTime) / float64(endTime-startTime))
	for c := range s.size {
		s.value.c[c] = mathutil.Lerp(startValue.c[c], endValue.c[c], fraction)
	}
	return s.value
}

// keyframesVelocity is the backward difference over one millisecond, scaled
// to units per second.
func (s *VectorizedSpec) keyframesVelocity(playTimeMillis int64, initialValue, targetValue, initialVelocity *Vector) *Vector {
	t := mathutil.ClampInt64(playTimeMillis-s.delayMillis, 0, s.durationMillis)
	if t <= 0 {
		return initialVelocity
	}

	s.previous.CopyFrom(s.keyframesValue(playTimeMillis-finiteDifference, initialValue, targetValue))
	current := s.keyframesValue(playTimeMillis, initialValue, targetValue)
	simdops.Difference(s.velocity.Channels(), current.Channels(), s.previous.Channels(), SecondsToMillis)
	return s.velocity
}
