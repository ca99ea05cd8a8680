package animspec

import "math"

// RepeatMode selects how successive iterations of a repeated spec play.
type RepeatMode int

const (
	// RepeatRestart plays every iteration from the beginning.
	RepeatRestart RepeatMode = iota

	// RepeatReverse alternates forward and backward iterations.
	RepeatReverse
)

func (m RepeatMode) String() string {
	switch m {
	case RepeatRestart:
		return "restart"
	case RepeatReverse:
		return "reverse"
	default:
		return "RepeatMode(?)"
	}
}

// StartOffsetType selects the direction of a StartOffset.
type StartOffsetType int

const (
	// StartOffsetDelay holds the first iteration at its start for the
	// offset before playing.
	StartOffsetDelay StartOffsetType = -1

	// StartOffsetFastForward begins the first iteration part-way through.
	StartOffsetFastForward StartOffsetType = 1
)

// StartOffset shifts where a repeated spec begins. The zero value is no
// offset.
type StartOffset struct {
	value int64 // signed millis; positive fast-forwards
}

// NewStartOffset returns an offset of offsetMillis in the given direction.
// Unknown types are treated as StartOffsetDelay.
func NewStartOffset(offsetMillis int, offsetType StartOffsetType) StartOffset {
	abs := int64(offsetMillis)
	if abs < 0 {
		abs = -abs
	}
	if offsetType == StartOffsetFastForward {
		return StartOffset{value: abs}
	}
	return StartOffset{value: -abs}
}

// OffsetMillis returns the magnitude of the offset.
func (o StartOffset) OffsetMillis() int {
	if o.value < 0 {
		return int(-o.value)
	}
	return int(o.value)
}

// OffsetType returns the direction of the offset.
func (o StartOffset) OffsetType() StartOffsetType {
	if o.value > 0 {
		return StartOffsetFastForward
	}
	return StartOffsetDelay
}

type repeatParams struct {
	inner          *VectorizedSpec
	iterations     int64
	mode           RepeatMode
	offsetNanos    int64
	iterationNanos int64
}

// NewVectorizedRepeatableSpec plays inner iterations times. inner must be
// duration-based with a positive duration.
func NewVectorizedRepeatableSpec(iterations int, inner *VectorizedSpec, mode RepeatMode, offset StartOffset) (*VectorizedSpec, error) {
	if iterations < 1 {
		return nil, invalidf("repeat iterations must be at least 1, got %d", iterations)
	}
	s, err := newRepeatSpec(KindRepeatable, inner, mode, offset)
	if err != nil {
		return nil, err
	}
	s.repeat.iterations = int64(iterations)
	return s, nil
}

// NewVectorizedInfiniteRepeatableSpec plays inner forever. inner must be
// duration-based with a positive duration.
func NewVectorizedInfiniteRepeatableSpec(inner *VectorizedSpec, mode RepeatMode, offset StartOffset) (*VectorizedSpec, error) {
	return newRepeatSpec(KindInfiniteRepeatable, inner, mode, offset)
}

func newRepeatSpec(kind SpecKind, inner *VectorizedSpec, mode RepeatMode, offset StartOffset) (*VectorizedSpec, error) {
	if inner == nil {
		return nil, invalidf("%s spec needs an inner spec", kind)
	}
	if !inner.IsDurationBased() {
		return nil, invalidf("%s spec cannot repeat a %s spec", kind, inner.kind)
	}
	if mode != RepeatRestart && mode != RepeatReverse {
		return nil, invalidf("unknown repeat mode %d", int(mode))
	}
	iterationNanos := (inner.delayMillis + inner.durationMillis) * MillisToNanos
	if iterationNanos <= 0 {
		return nil, invalidf("%s spec needs an inner spec with a positive duration", kind)
	}

	s := newVectorizedSpec(kind, inner.size)
	s.repeat = repeatParams{
		inner:          inner,
		mode:           mode,
		offsetNanos:    offset.value * MillisToNanos,
		iterationNanos: iterationNanos,
	}
	return s, nil
}

// Inner returns the repeated spec, or nil for other kinds.
func (s *VectorizedSpec) Inner() *VectorizedSpec { return s.repeat.inner }

// Iterations returns the iteration count of a finite repeat, or 0.
func (s *VectorizedSpec) Iterations() int { return int(s.repeat.iterations) }

func (s *VectorizedSpec) evaluateRepeat(q query, playTimeNanos int64, initialValue, targetValue, initialVelocity *Vector) *Vector {
	r := &s.repeat
	repetitionTime, index := s.repetitionPlayTime(playTimeNanos)
	startVelocity := s.startVelocityForIteration(index, initialValue, targetValue, initialVelocity)
	return r.inner.evaluate(q, repetitionTime, initialValue, targetValue, startVelocity)
}

// repetitionPlayTime maps a playtime onto the wrapped spec's timeline and
// returns it with the iteration index.
func (s *VectorizedSpec) repetitionPlayTime(playTimeNanos int64) (int64, int64) {
	r := &s.repeat
	adjusted := addSaturated(playTimeNanos, r.offsetNanos)
	if adjusted <= 0 {
		return 0, 0
	}

	index := adjusted / r.iterationNanos
	if s.kind == KindRepeatable {
		index = min(index, r.iterations-1)
	}
	elapsed := adjusted - index*r.iterationNanos
	if r.mode == RepeatRestart || index%2 == 0 {
		return elapsed, index
	}
	return r.iterationNanos - elapsed, index
}

// startVelocityForIteration returns the initial velocity the wrapped spec
// sees in the given iteration. The first iteration uses the caller's
// velocity; later ones carry the velocity reached at the end of one full
// iteration.
func (s *VectorizedSpec) startVelocityForIteration(index int64, initialValue, targetValue, initialVelocity *Vector) *Vector {
	if index == 0 {
		return initialVelocity
	}
	r := &s.repeat
	s.carried.CopyFrom(r.inner.evaluate(queryVelocity, r.iterationNanos, initialValue, targetValue, initialVelocity))
	return s.carried
}

func addSaturated(a, b int64) int64 {
	sum := a + b
	switch {
	case b > 0 && sum < a:
		return math.MaxInt64
	case b < 0 && sum > a:
		return math.MinInt64
	}
	return sum
}
