package spring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-animspec/internal/testutil"
)

// displacementAt evaluates the spring response relative to rest.
func displacementAt(t *testing.T, stiffness, dampingRatio, p0, v0 float64, ms int64) float64 {
	t.Helper()
	s, err := NewSimulation(stiffness, dampingRatio)
	require.NoError(t, err)
	x, _ := s.Update(p0, v0, ms, 0)
	return x
}

// TestEstimateDuration_AtRest tests the trivial case.
func TestEstimateDuration_AtRest(t *testing.T) {
	for _, regime := range dampingRegimes {
		assert.InDelta(t, 0.0, EstimateDurationMillis(1500, regime.dampingRatio, 0, 0, 1), 0, regime.name)
	}
}

// TestEstimateDuration_AlreadySettled tests that a start inside the
// threshold never yields a negative time.
func TestEstimateDuration_AlreadySettled(t *testing.T) {
	for _, regime := range dampingRegimes {
		d := EstimateDurationMillis(1500, regime.dampingRatio, 0, 0.5, 1)
		assert.GreaterOrEqual(t, d, 0.0, regime.name)
	}
}

// TestEstimateDuration_Undamped tests that an undamped spring never settles.
func TestEstimateDuration_Undamped(t *testing.T) {
	d := EstimateDurationMillis(100, 0, 0, 10, 1)
	assert.True(t, math.IsInf(d, 1))
}

// TestEstimateDuration_UnderDampedEnvelope tests the closed-form branch
// against the envelope equation ln(delta/c)/r.
func TestEstimateDuration_UnderDampedEnvelope(t *testing.T) {
	const (
		stiffness = 400.0
		ratio     = 0.5
		p0        = 100.0
	)
	w := math.Sqrt(stiffness)
	r := -ratio * w
	wd := w * math.Sqrt(1-ratio*ratio)
	c := math.Hypot(p0, (0-r*p0)/wd)
	want := math.Log(1/c) / r * 1000

	assert.InDelta(t, want, EstimateDurationMillis(stiffness, ratio, 0, p0, 1), 1e-9)
}

// TestEstimateDuration_StaysSettled tests that after the estimate the
// response never leaves the threshold again.
func TestEstimateDuration_StaysSettled(t *testing.T) {
	tests := []struct {
		name         string
		dampingRatio float64
		p0           float64
		v0           float64
	}{
		{"UnderDamped from rest", 0.3, 100, 0},
		{"UnderDamped with velocity", 0.75, 100, 5000},
		{"Near critical from rest", 0.999, 100, 0},
		{"Near critical pushed away", 0.999, 100, 3000},
		{"Critical from rest", 1, 100, 0},
		{"Critical with overshoot", 1, 100, -20000},
		{"Critical pushed away", 1, 100, 3000},
		{"OverDamped from rest", 2, 100, 0},
		{"OverDamped with overshoot", 1.5, 100, -30000},
		{"Negative displacement", 1, -100, 500},
	}

	const (
		stiffness = 1500.0
		delta     = 1.0
	)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			estimate := EstimateDurationMillis(stiffness, tt.dampingRatio, tt.v0, tt.p0, delta)
			require.True(t, estimate > 0 && !math.IsInf(estimate, 0), "estimate=%v", estimate)

			start := int64(math.Ceil(estimate)) + 2
			for ms := start; ms < start+2000; ms += 3 {
				x := displacementAt(t, stiffness, tt.dampingRatio, tt.p0, tt.v0, ms)
				if !assert.LessOrEqual(t, math.Abs(x), delta*1.05, "t=%dms estimate=%.2fms", ms, estimate) {
					return
				}
			}
		})
	}
}

// TestEstimateDuration_CriticalReference tests the critically damped
// estimate against the root of (1 + ωt)·e^(-ωt) = 0.01.
func TestEstimateDuration_CriticalReference(t *testing.T) {
	const stiffness = 1500.0
	w := math.Sqrt(stiffness)

	estimate := EstimateDurationMillis(stiffness, 1, 0, 100, 1)
	residual := (1 + w*estimate/1000) * math.Exp(-w*estimate/1000)
	testutil.AssertRelativeError(t, 0.01, residual, 1e-3)
}

// TestEstimateDuration_StiffnessMonotonic tests that a stiffer spring never
// takes longer to settle.
func TestEstimateDuration_StiffnessMonotonic(t *testing.T) {
	stiffnesses := []float64{50, 200, 400, 1500, 10_000}

	for _, ratio := range []float64{0.2, 0.5, 1, 2} {
		durations := make([]float64, 0, len(stiffnesses))
		for i := len(stiffnesses) - 1; i >= 0; i-- {
			durations = append(durations, EstimateDurationMillis(stiffnesses[i], ratio, 0, 100, 1))
		}
		testutil.AssertMonotonic(t, durations, "ratio=%v", ratio)
	}
}

// TestEstimateDuration_DampingBounded tests that raising the damping ratio
// towards critical shortens settling and stays within the critical duration.
func TestEstimateDuration_DampingBounded(t *testing.T) {
	const stiffness = 1500.0
	critical := EstimateDurationMillis(stiffness, 1, 0, 100, 1)

	prev := math.Inf(1)
	for ratio := 0.1; ratio < 0.95; ratio += 0.1 {
		d := EstimateDurationMillis(stiffness, ratio, 0, 100, 1)
		assert.LessOrEqual(t, d, prev, "ratio=%.1f", ratio)
		prev = d
	}
	assert.LessOrEqual(t, prev, critical)
}

// TestEstimateDuration_NearCritical tests that under-damped springs close to
// critical never settle later than the critically damped spring.
func TestEstimateDuration_NearCritical(t *testing.T) {
	const stiffness = 1500.0

	for _, v0 := range []float64{0, 3000, 20_000} {
		critical := EstimateDurationMillis(stiffness, 1, v0, 100, 1)
		for _, ratio := range []float64{0.9, 0.95, 0.99, 0.999, 0.9999} {
			d := EstimateDurationMillis(stiffness, ratio, v0, 100, 1)
			assert.LessOrEqual(t, d, critical, "ratio=%v v0=%v", ratio, v0)
			assert.Positive(t, d, "ratio=%v v0=%v", ratio, v0)
		}
	}
}

// TestEstimateDurationWithMass tests that unit mass matches the default.
func TestEstimateDurationWithMass(t *testing.T) {
	const stiffness = 400.0
	for _, ratio := range []float64{0.4, 1, 1.8} {
		c := 2 * ratio * math.Sqrt(stiffness)
		assert.InDelta(t,
			EstimateDurationMillis(stiffness, ratio, 200, 100, 1),
			EstimateDurationMillisWithMass(1, stiffness, c, 200, 100, 1),
			1e-6, "ratio=%v", ratio)
	}
}

// BenchmarkEstimateDuration_Critical benchmarks the Newton path.
func BenchmarkEstimateDuration_Critical(b *testing.B) {
	for b.Loop() {
		_ = EstimateDurationMillis(1500, 1, -20000, 100, 1)
	}
}
