package spring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dampingRegimes = []struct {
	name         string
	dampingRatio float64
}{
	{"Undamped", 0},
	{"UnderDamped", 0.5},
	{"CriticallyDamped", 1},
	{"OverDamped", 2.5},
}

// TestNewSimulation_InvalidParameters tests eager rejection of bad input.
func TestNewSimulation_InvalidParameters(t *testing.T) {
	tests := []struct {
		name         string
		stiffness    float64
		dampingRatio float64
	}{
		{"Zero stiffness", 0, 1},
		{"Negative stiffness", -10, 1},
		{"NaN stiffness", math.NaN(), 1},
		{"Infinite stiffness", math.Inf(1), 1},
		{"Negative damping", 100, -0.1},
		{"NaN damping", 100, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSimulation(tt.stiffness, tt.dampingRatio)
			require.ErrorIs(t, err, ErrInvalidParameter)
			assert.Nil(t, s)
		})
	}
}

// TestSimulation_InitialConditions tests that elapsed time zero reproduces
// the initial displacement and velocity in every regime.
func TestSimulation_InitialConditions(t *testing.T) {
	for _, regime := range dampingRegimes {
		t.Run(regime.name, func(t *testing.T) {
			s, err := NewSimulation(400, regime.dampingRatio)
			require.NoError(t, err)

			value, velocity := s.Update(10, -250, 0, 50)
			assert.InDelta(t, 10.0, value, 1e-9)
			assert.InDelta(t, -250.0, velocity, 1e-9)
		})
	}
}

// TestSimulation_VelocityIsDerivative tests that the reported velocity
// matches a central difference of the reported position.
func TestSimulation_VelocityIsDerivative(t *testing.T) {
	for _, regime := range dampingRegimes {
		t.Run(regime.name, func(t *testing.T) {
			s, err := NewSimulation(200, regime.dampingRatio)
			require.NoError(t, err)

			for _, ms := range []int64{50, 120, 300} {
				before, _ := s.Update(0, 100, ms-1, 1)
				after, _ := s.Update(0, 100, ms+1, 1)
				_, velocity := s.Update(0, 100, ms, 1)

				numeric := (after - before) / 0.002
				assert.InDelta(t, numeric, velocity, math.Abs(velocity)*1e-3+1e-3,
					"t=%dms", ms)
			}
		})
	}
}

// TestSimulation_SettlesAtFinalPosition tests convergence for damped springs.
func TestSimulation_SettlesAtFinalPosition(t *testing.T) {
	for _, regime := range dampingRegimes[1:] {
		t.Run(regime.name, func(t *testing.T) {
			s, err := NewSimulation(1500, regime.dampingRatio)
			require.NoError(t, err)

			value, velocity := s.Update(-30, 0, 10_000, 42)
			assert.InDelta(t, 42.0, value, 1e-6)
			assert.InDelta(t, 0.0, velocity, 1e-6)
		})
	}
}

// TestSimulation_UndampedConservesEnergy tests that a zero damping ratio
// oscillates with constant amplitude.
func TestSimulation_UndampedConservesEnergy(t *testing.T) {
	s, err := NewSimulation(100, 0)
	require.NoError(t, err)

	w := s.NaturalFrequency()
	for _, ms := range []int64{0, 37, 250, 1000, 5000} {
		x, v := s.Update(1, 0, ms, 0)
		energy := x*x + (v/w)*(v/w)
		assert.InDelta(t, 1.0, energy, 1e-9, "t=%dms", ms)
	}
}

// TestSimulation_Setters tests that changing parameters refreshes the
// cached coefficients and still validates.
func TestSimulation_Setters(t *testing.T) {
	s, err := NewSimulation(100, 0.5)
	require.NoError(t, err)

	require.NoError(t, s.SetDampingRatio(3))
	fresh, err := NewSimulation(100, 3)
	require.NoError(t, err)

	got, _ := s.Update(1, 0, 80, 0)
	want, _ := fresh.Update(1, 0, 80, 0)
	assert.InDelta(t, want, got, 1e-12)

	require.NoError(t, s.SetStiffness(900))
	assert.InDelta(t, 30.0, s.NaturalFrequency(), 1e-12)
	assert.InDelta(t, 900.0, s.Stiffness(), 0)
	assert.InDelta(t, 3.0, s.DampingRatio(), 0)

	require.ErrorIs(t, s.SetStiffness(0), ErrInvalidParameter)
	require.ErrorIs(t, s.SetDampingRatio(-1), ErrInvalidParameter)
	assert.InDelta(t, 900.0, s.Stiffness(), 0, "failed set must not change state")
}

// BenchmarkSimulation_Update benchmarks the under-damped path.
func BenchmarkSimulation_Update(b *testing.B) {
	s, err := NewSimulation(1500, 0.5)
	if err != nil {
		b.Fatal(err)
	}
	for b.Loop() {
		_, _ = s.Update(0, 0, 120, 1)
	}
}
