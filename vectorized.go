package animspec

import (
	"fmt"
)

// SpecKind identifies the variant held by a VectorizedSpec.
type SpecKind int

const (
	// KindTween eases every channel from initial to target over a fixed
	// duration.
	KindTween SpecKind = iota

	// KindSpring drives every channel with a damped spring.
	KindSpring

	// KindFloat applies one FloatSpec per channel.
	KindFloat

	// KindKeyframes interpolates between values pinned at timestamps.
	KindKeyframes

	// KindSnap jumps to the target after a delay.
	KindSnap

	// KindRepeatable plays a duration-based spec a fixed number of times.
	KindRepeatable

	// KindInfiniteRepeatable plays a duration-based spec forever.
	KindInfiniteRepeatable
)

func (k SpecKind) String() string {
	switch k {
	case KindTween:
		return "tween"
	case KindSpring:
		return "spring"
	case KindFloat:
		return "float"
	case KindKeyframes:
		return "keyframes"
	case KindSnap:
		return "snap"
	case KindRepeatable:
		return "repeatable"
	case KindInfiniteRepeatable:
		return "infiniteRepeatable"
	default:
		return fmt.Sprintf("SpecKind(%d)", int(k))
	}
}

type query int

const (
	queryValue query = iota
	queryVelocity
)

// VectorizedSpec is a stateless animation specification over vectors of a
// fixed arity. It stores only configuration; boundary conditions and
// playtime are supplied with every query, so one spec can serve any number
// of animations sequentially.
//
// Results are returned in scratch vectors owned by the spec, allocated once
// at construction and overwritten by the next query. Copy a result to keep
// it. A spec must not be queried from multiple goroutines at once.
type VectorizedSpec struct {
	kind SpecKind
	size int

	// tween, spring, float
	anims [MaxVectorSize]FloatSpec

	// tween, keyframes, snap
	durationMillis int64
	delayMillis    int64

	keyframes []keyframe
	repeat    repeatParams

	value       *Vector
	velocity    *Vector
	endVelocity *Vector
	previous    *Vector // keyframe finite difference
	carried     *Vector // repeat start velocity
}

func newVectorizedSpec(kind SpecKind, size int) *VectorizedSpec {
	return &VectorizedSpec{
		kind:        kind,
		size:        size,
		value:       NewVector(size),
		velocity:    NewVector(size),
		endVelocity: NewVector(size),
		previous:    NewVector(size),
		carried:     NewVector(size),
	}
}

// NewVectorizedTweenSpec returns a tween applied to every channel of a
// size-channel vector. A nil easing selects FastOutSlowInEasing.
func NewVectorizedTweenSpec(size, durationMillis, delayMillis int, easing Easing) (*VectorizedSpec, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	anim, err := NewFloatTweenSpec(durationMillis, delayMillis, easing)
	if err != nil {
		return nil, err
	}
	s := newVectorizedSpec(KindTween, size)
	s.durationMillis = anim.durationMillis
	s.delayMillis = anim.delayMillis
	for i := range size {
		s.anims[i] = anim
	}
	return s, nil
}

// NewVectorizedSpringSpec returns a spring applied to every channel. When
// visibilityThreshold is nil every channel uses DefaultDisplacementThreshold;
// otherwise each channel gets its own spring with that channel's threshold.
func NewVectorizedSpringSpec(size int, dampingRatio, stiffness float64, visibilityThreshold *Vector) (*VectorizedSpec, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if visibilityThreshold != nil && visibilityThreshold.Size() != size {
		return nil, invalidf("visibility threshold has %d channels, want %d", visibilityThreshold.Size(), size)
	}

	s := newVectorizedSpec(KindSpring, size)
	for i := range size {
		threshold := DefaultDisplacementThreshold
		if visibilityThreshold != nil {
			threshold = visibilityThreshold.Get(i)
		}
		anim, err := NewFloatSpringSpec(dampingRatio, stiffness, threshold)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", i, err)
		}
		s.anims[i] = anim
	}
	return s, nil
}

// NewVectorizedFloatSpec lifts scalar specs to vectors. Pass one spec to
// share it across all channels, or exactly size specs for one per channel.
func NewVectorizedFloatSpec(size int, anims ...FloatSpec) (*VectorizedSpec, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if len(anims) != 1 && len(anims) != size {
		return nil, invalidf("got %d float specs for %d channels", len(anims), size)
	}

	s := newVectorizedSpec(KindFloat, size)
	for i := range size {
		anim := anims[0]
		if len(anims) == size {
			anim = anims[i]
		}
		if (anim.kind == FloatTween && anim.easing == nil) || (anim.kind == FloatSpring && anim.sim == nil) {
			return nil, invalidf("float spec for channel %d was not created by a constructor", i)
		}
		s.anims[i] = anim
	}
	return s, nil
}

// NewVectorizedSnapSpec returns a spec that holds the initial value for
// delayMillis and then jumps to the target.
func NewVectorizedSnapSpec(size, delayMillis int) (*VectorizedSpec, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if delayMillis < 0 {
		return nil, invalidf("snap delay must be non-negative, got %d", delayMillis)
	}
	s := newVectorizedSpec(KindSnap, size)
	s.delayMillis = int64(delayMillis)
	return s, nil
}

// Kind returns the variant.
func (s *VectorizedSpec) Kind() SpecKind { return s.kind }

// Size returns the vector arity.
func (s *VectorizedSpec) Size() int { return s.size }

// IsInfinite reports whether the spec never finishes on its own.
func (s *VectorizedSpec) IsInfinite() bool { return s.kind == KindInfiniteRepeatable }

// IsDurationBased reports whether the spec has a fixed duration and delay
// independent of its boundary conditions. Only such specs can be repeated.
func (s *VectorizedSpec) IsDurationBased() bool {
	switch s.kind {
	case KindTween, KindKeyframes, KindSnap:
		return true
	default:
		return false
	}
}

// ValueFromNanos returns the value at playTimeNanos.
func (s *VectorizedSpec) ValueFromNanos(playTimeNanos int64, initialValue, targetValue, initialVelocity *Vector) *Vector {
	s.checkArity(initialValue, targetValue, initialVelocity)
	return s.evaluate(queryValue, playTimeNanos, initialValue, targetValue, initialVelocity)
}

// VelocityFromNanos returns the velocity, in units per second, at
// playTimeNanos.
func (s *VectorizedSpec) VelocityFromNanos(playTimeNanos int64, initialValue, targetValue, initialVelocity *Vector) *Vector {
	s.checkArity(initialValue, targetValue, initialVelocity)
	return s.evaluate(queryVelocity, playTimeNanos, initialValue, targetValue, initialVelocity)
}

// DurationNanos returns how long the animation runs for these boundary
// conditions: the longest channel for per-channel specs, and
// InfiniteDurationNanos for infinite repeats.
func (s *VectorizedSpec) DurationNanos(initialValue, targetValue, initialVelocity *Vector) int64 {
	s.checkArity(initialValue, targetValue, initialVelocity)
	return s.duration(initialValue, targetValue, initialVelocity)
}

// EndVelocity returns the velocity once the animation has finished.
func (s *VectorizedSpec) EndVelocity(initialValue, targetValue, initialVelocity *Vector) *Vector {
	s.checkArity(initialValue, targetValue, initialVelocity)
	switch s.kind {
	case KindTween, KindSpring, KindFloat:
		for i := range s.size {
			s.endVelocity.c[i] = s.anims[i].EndVelocity(initialValue.c[i], targetValue.c[i], initialVelocity.c[i])
		}
	default:
		end := s.duration(initialValue, targetValue, initialVelocity)
		s.endVelocity.CopyFrom(s.evaluate(queryVelocity, end, initialValue, targetValue, initialVelocity))
	}
	return s.endVelocity
}

// ValueFromMillis is ValueFromNanos with the playtime in milliseconds.
func (s *VectorizedSpec) ValueFromMillis(playTimeMillis int64, initialValue, targetValue, initialVelocity *Vector) *Vector {
	return s.ValueFromNanos(playTimeMillis*MillisToNanos, initialValue, targetValue, initialVelocity)
}

// VelocityFromMillis is VelocityFromNanos with the playtime in milliseconds.
func (s *VectorizedSpec) VelocityFromMillis(playTimeMillis int64, initialValue, targetValue, initialVelocity *Vector) *Vector {
	return s.VelocityFromNanos(playTimeMillis*MillisToNanos, initialValue, targetValue, initialVelocity)
}

// DurationMillis is DurationNanos in whole milliseconds.
func (s *VectorizedSpec) DurationMillis(initialValue, targetValue, initialVelocity *Vector) int64 {
	return s.DurationNanos(initialValue, targetValue, initialVelocity) / MillisToNanos
}

// evaluate is the single dispatch point for value and velocity queries.
func (s *VectorizedSpec) evaluate(q query, playTimeNanos int64, initialValue, targetValue, initialVelocity *Vector) *Vector {
	switch s.kind {
	case KindTween, KindSpring, KindFloat:
		return s.evaluateChannels(q, playTimeNanos, initialValue, targetValue, initialVelocity)
	case KindKeyframes:
		if q == queryValue {
			return s.keyframesValue(playTimeNanos/MillisToNanos, initialValue, targetValue)
		}
		return s.keyframesVelocity(playTimeNanos/MillisToNanos, initialValue, targetValue, initialVelocity)
	case KindSnap:
		if q == queryVelocity {
			return initialVelocity
		}
		if playTimeNanos < s.delayMillis*MillisToNanos {
			return initialValue
		}
		return targetValue
	case KindRepeatable, KindInfiniteRepeatable:
		return s.evaluateRepeat(q, playTimeNanos, initialValue, targetValue, initialVelocity)
	default:
		panic(unknownKind(s.kind))
	}
}

func (s *VectorizedSpec) duration(initialValue, targetValue, initialVelocity *Vector) int64 {
	switch s.kind {
	case KindTween, KindKeyframes, KindSnap:
		return (s.delayMillis + s.durationMillis) * MillisToNanos
	case KindSpring, KindFloat:
		var longest int64
		for i := range s.size {
			longest = max(longest, s.anims[i].DurationNanos(initialValue.c[i], targetValue.c[i], initialVelocity.c[i]))
		}
		return longest
	case KindRepeatable:
		return max(0, s.repeat.iterations*s.repeat.iterationNanos-s.repeat.offsetNanos)
	case KindInfiniteRepeatable:
		return InfiniteDurationNanos
	default:
		panic(unknownKind(s.kind))
	}
}

// evaluateChannels applies the per-channel scalar specs independently.
func (s *VectorizedSpec) evaluateChannels(q query, playTimeNanos int64, initialValue, targetValue, initialVelocity *Vector) *Vector {
	out := s.value
	if q == queryVelocity {
		out = s.velocity
	}
	for i := range s.size {
		anim := s.anims[i]
		if q == queryValue {
			out.c[i] = anim.ValueFromNanos(playTimeNanos, initialValue.c[i], targetValue.c[i], initialVelocity.c[i])
		} else {
			out.c[i] = anim.VelocityFromNanos(playTimeNanos, initialValue.c[i], targetValue.c[i], initialVelocity.c[i])
		}
	}
	return out
}

func (s *VectorizedSpec) checkArity(vectors ...*Vector) {
	for _, v := range vectors {
		if v.Size() != s.size {
			panic(fmt.Sprintf("animspec: %s spec expects vectors of size %d, got %d", s.kind, s.size, v.Size()))
		}
	}
}

func checkSize(size int) error {
	if size < 1 || size > MaxVectorSize {
		return invalidf("vector size must be in [1, %d], got %d", MaxVectorSize, size)
	}
	return nil
}

func unknownKind(kind any) string {
	return fmt.Sprintf("animspec: unhandled spec kind %v", kind)
}
