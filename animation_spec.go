package animspec

import (
	"fmt"
	"math"
)

// AnimationSpec describes an animation over values of type T. It is a plain
// value built with Tween, Spring, Keyframes, Snap, Repeatable or
// InfiniteRepeatable and turned into an evaluator with Vectorize.
type AnimationSpec[T any] struct {
	kind SpecKind

	durationMillis int
	delayMillis    int
	easing         Easing

	dampingRatio        float64
	stiffness           float64
	visibilityThreshold *T

	keyframes *KeyframesConfig[T]

	iterations int
	inner      *AnimationSpec[T]
	mode       RepeatMode
	offset     StartOffset
}

// Tween eases from the initial to the target value over durationMillis
// after delayMillis. A nil easing selects FastOutSlowInEasing.
func Tween[T any](durationMillis, delayMillis int, easing Easing) AnimationSpec[T] {
	return AnimationSpec[T]{
		kind:           KindTween,
		durationMillis: durationMillis,
		delayMillis:    delayMillis,
		easing:         easing,
	}
}

// Spring drives the value with a damped spring. A nil visibilityThreshold
// uses DefaultDisplacementThreshold on every channel.
func Spring[T any](dampingRatio, stiffness float64, visibilityThreshold *T) AnimationSpec[T] {
	return AnimationSpec[T]{
		kind:                KindSpring,
		dampingRatio:        dampingRatio,
		stiffness:           stiffness,
		visibilityThreshold: visibilityThreshold,
	}
}

// Keyframes builds a keyframes spec. init receives a config whose duration
// defaults to DefaultDurationMillis.
//
//	spec := Keyframes(func(c *KeyframesConfig[float64]) {
//		c.DurationMillis = 375
//		c.At(0.0, 0).With(LinearOutSlowInEasing)
//		c.At(0.2, 15).With(FastOutLinearInEasing)
//		c.At(0.4, 75)
//	})
func Keyframes[T any](init func(*KeyframesConfig[T])) AnimationSpec[T] {
	config := &KeyframesConfig[T]{
		DurationMillis: DefaultDurationMillis,
		entries:        make(map[int]*KeyframeEntity[T]),
	}
	if init != nil {
		init(config)
	}
	return AnimationSpec[T]{kind: KindKeyframes, keyframes: config}
}

// Snap jumps to the target value after delayMillis.
func Snap[T any](delayMillis int) AnimationSpec[T] {
	return AnimationSpec[T]{kind: KindSnap, delayMillis: delayMillis}
}

// Repeatable plays inner iterations times. inner must be a tween,
// keyframes or snap spec.
func Repeatable[T any](iterations int, inner AnimationSpec[T], mode RepeatMode, offset StartOffset) AnimationSpec[T] {
	return AnimationSpec[T]{
		kind:       KindRepeatable,
		iterations: iterations,
		inner:      &inner,
		mode:       mode,
		offset:     offset,
	}
}

// InfiniteRepeatable plays inner forever. inner must be a tween, keyframes
// or snap spec.
func InfiniteRepeatable[T any](inner AnimationSpec[T], mode RepeatMode, offset StartOffset) AnimationSpec[T] {
	return AnimationSpec[T]{
		kind:   KindInfiniteRepeatable,
		inner:  &inner,
		mode:   mode,
		offset: offset,
	}
}

// Kind returns the variant.
func (s AnimationSpec[T]) Kind() SpecKind { return s.kind }

// Validate checks the parameters that do not depend on a converter.
func (s AnimationSpec[T]) Validate() error {
	switch s.kind {
	case KindTween:
		_, err := NewFloatTweenSpec(s.durationMillis, s.delayMillis, s.easing)
		return err
	case KindSpring:
		_, err := NewFloatSpringSpec(s.dampingRatio, s.stiffness, DefaultDisplacementThreshold)
		return err
	case KindKeyframes:
		if s.keyframes == nil {
			return invalidf("keyframes spec has no config")
		}
		if s.keyframes.DurationMillis < 0 || s.keyframes.DelayMillis < 0 {
			return invalidf("keyframes duration and delay must be non-negative, got %d and %d",
				s.keyframes.DurationMillis, s.keyframes.DelayMillis)
		}
		return nil
	case KindSnap:
		if s.delayMillis < 0 {
			return invalidf("snap delay must be non-negative, got %d", s.delayMillis)
		}
		return nil
	case KindRepeatable, KindInfiniteRepeatable:
		if s.kind == KindRepeatable && s.iterations < 1 {
			return invalidf("repeat iterations must be at least 1, got %d", s.iterations)
		}
		if s.inner == nil {
			return invalidf("%s spec needs an inner spec", s.kind)
		}
		switch s.inner.kind {
		case KindTween, KindKeyframes, KindSnap:
		default:
			return invalidf("%s spec cannot repeat a %s spec", s.kind, s.inner.kind)
		}
		if err := s.inner.Validate(); err != nil {
			return fmt.Errorf("inner spec: %w", err)
		}
		return nil
	default:
		return invalidf("unsupported spec kind %s", s.kind)
	}
}

// Vectorize validates s and builds the evaluator for vectors produced by
// conv.
func (s AnimationSpec[T]) Vectorize(conv TwoWayConverter[T]) (*VectorizedSpec, error) {
	if err := conv.validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s.vectorize(conv)
}

func (s AnimationSpec[T]) vectorize(conv TwoWayConverter[T]) (*VectorizedSpec, error) {
	switch s.kind {
	case KindTween:
		return NewVectorizedTweenSpec(conv.Size, s.durationMillis, s.delayMillis, s.easing)
	case KindSpring:
		var threshold *Vector
		if s.visibilityThreshold != nil {
			threshold = conv.toVector(*s.visibilityThreshold)
		}
		return NewVectorizedSpringSpec(conv.Size, s.dampingRatio, s.stiffness, threshold)
	case KindKeyframes:
		frames := make(map[int]Keyframe, len(s.keyframes.entries))
		for ts, entry := range s.keyframes.entries {
			frames[ts] = Keyframe{Value: conv.toVector(entry.value), Easing: entry.easing}
		}
		return NewVectorizedKeyframesSpec(conv.Size, frames, s.keyframes.DurationMillis, s.keyframes.DelayMillis)
	case KindSnap:
		return NewVectorizedSnapSpec(conv.Size, s.delayMillis)
	case KindRepeatable:
		inner, err := s.inner.vectorize(conv)
		if err != nil {
			return nil, err
		}
		return NewVectorizedRepeatableSpec(s.iterations, inner, s.mode, s.offset)
	case KindInfiniteRepeatable:
		inner, err := s.inner.vectorize(conv)
		if err != nil {
			return nil, err
		}
		return NewVectorizedInfiniteRepeatableSpec(inner, s.mode, s.offset)
	default:
		return nil, invalidf("unsupported spec kind %s", s.kind)
	}
}

// KeyframesConfig collects the keyframes of a Keyframes spec.
type KeyframesConfig[T any] struct {
	DurationMillis int
	DelayMillis    int

	entries map[int]*KeyframeEntity[T]
}

// KeyframeEntity is one keyframe in a KeyframesConfig.
type KeyframeEntity[T any] struct {
	value  T
	easing Easing
}

// At pins value at timestampMillis, replacing any keyframe already there.
func (c *KeyframesConfig[T]) At(value T, timestampMillis int) *KeyframeEntity[T] {
	if c.entries == nil {
		c.entries = make(map[int]*KeyframeEntity[T])
	}
	entity := &KeyframeEntity[T]{value: value, easing: LinearEasing}
	c.entries[timestampMillis] = entity
	return entity
}

// AtFraction pins value at fraction of the duration, rounded to the
// nearest millisecond.
func (c *KeyframesConfig[T]) AtFraction(value T, fraction float64) *KeyframeEntity[T] {
	return c.At(value, int(math.Round(float64(c.DurationMillis)*fraction)))
}

// With sets the easing of the segment that starts at this keyframe.
func (e *KeyframeEntity[T]) With(easing Easing) {
	e.easing = easing
}
