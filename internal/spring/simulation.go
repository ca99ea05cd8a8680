// Package spring implements the damped harmonic oscillator used by spring
// animations, together with the settling-time estimator.
package spring

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter indicates a spring parameter outside its valid domain.
var ErrInvalidParameter = errors.New("invalid spring parameter")

// Simulation solves the unit-mass damped harmonic oscillator in closed form.
//
// Coefficients that depend only on stiffness and damping ratio (the two
// real roots when over-damped, the damped frequency when under-damped) are
// computed when either parameter is set. The final position is supplied on
// every Update call, so a Simulation can serve many targets.
//
// A Simulation is not safe for concurrent mutation; concurrent Update calls
// are fine once parameters are fixed.
type Simulation struct {
	stiffness    float64
	dampingRatio float64

	naturalFreq float64
	gammaPlus   float64 // over-damped roots
	gammaMinus  float64
	dampedFreq  float64 // under-damped oscillation frequency
}

// NewSimulation creates a simulation for the given stiffness (> 0) and
// damping ratio (>= 0).
func NewSimulation(stiffness, dampingRatio float64) (*Simulation, error) {
	if err := validate(stiffness, dampingRatio); err != nil {
		return nil, err
	}
	s := &Simulation{stiffness: stiffness, dampingRatio: dampingRatio}
	s.computeCoefficients()
	return s, nil
}

func validate(stiffness, dampingRatio float64) error {
	if !(stiffness > 0) || math.IsInf(stiffness, 0) {
		return fmt.Errorf("%w: stiffness must be positive and finite, got %v", ErrInvalidParameter, stiffness)
	}
	if !(dampingRatio >= 0) || math.IsInf(dampingRatio, 0) {
		return fmt.Errorf("%w: damping ratio must be non-negative and finite, got %v", ErrInvalidParameter, dampingRatio)
	}
	return nil
}

// Stiffness returns the spring constant.
func (s *Simulation) Stiffness() float64 { return s.stiffness }

// DampingRatio returns the damping ratio.
func (s *Simulation) DampingRatio() float64 { return s.dampingRatio }

// NaturalFrequency returns √stiffness.
func (s *Simulation) NaturalFrequency() float64 { return s.naturalFreq }

// SetStiffness changes the stiffness and refreshes the cached coefficients.
func (s *Simulation) SetStiffness(stiffness float64) error {
	if err := validate(stiffness, s.dampingRatio); err != nil {
		return err
	}
	s.stiffness = stiffness
	s.computeCoefficients()
	return nil
}

// SetDampingRatio changes the damping ratio and refreshes the cached
// coefficients.
func (s *Simulation) SetDampingRatio(dampingRatio float64) error {
	if err := validate(s.stiffness, dampingRatio); err != nil {
		return err
	}
	s.dampingRatio = dampingRatio
	s.computeCoefficients()
	return nil
}

func (s *Simulation) computeCoefficients() {
	s.naturalFreq = math.Sqrt(s.stiffness)
	s.gammaPlus, s.gammaMinus, s.dampedFreq = 0, 0, 0

	switch {
	case s.dampingRatio > criticalDampingRatio:
		root := s.naturalFreq * math.Sqrt(s.dampingRatio*s.dampingRatio-1)
		s.gammaPlus = -s.dampingRatio*s.naturalFreq + root
		s.gammaMinus = -s.dampingRatio*s.naturalFreq - root
	case s.dampingRatio < criticalDampingRatio:
		s.dampedFreq = s.naturalFreq * math.Sqrt(1-s.dampingRatio*s.dampingRatio)
	}
}

// Update returns the position and velocity reached elapsedMillis after the
// spring was at lastDisplacement moving at lastVelocity (units per second),
// pulled towards finalPosition.
func (s *Simulation) Update(lastDisplacement, lastVelocity float64, elapsedMillis int64, finalPosition float64) (value, velocity float64) {
	x0 := lastDisplacement - finalPosition
	dt := float64(elapsedMillis) / millisPerSecond
	w := s.naturalFreq

	var displacement, currentVelocity float64
	switch {
	case s.dampingRatio > criticalDampingRatio:
		// x(t) = A·e^(γ₋t) + B·e^(γ₊t)
		coeffB := (s.gammaMinus*x0 - lastVelocity) / (s.gammaMinus - s.gammaPlus)
		coeffA := x0 - coeffB
		expMinus := math.Exp(s.gammaMinus * dt)
		expPlus := math.Exp(s.gammaPlus * dt)
		displacement = coeffA*expMinus + coeffB*expPlus
		currentVelocity = coeffA*s.gammaMinus*expMinus + coeffB*s.gammaPlus*expPlus

	case s.dampingRatio == criticalDampingRatio:
		// x(t) = (A + B·t)·e^(-ωt)
		coeffA := x0
		coeffB := lastVelocity + w*x0
		decay := math.Exp(-w * dt)
		displacement = (coeffA + coeffB*dt) * decay
		currentVelocity = displacement*(-w) + coeffB*decay

	default:
		// x(t) = e^(-ζωt)·(A·cos(ωd·t) + B·sin(ωd·t))
		cosCoeff := x0
		sinCoeff := (s.dampingRatio*w*x0 + lastVelocity) / s.dampedFreq
		envelope := math.Exp(-s.dampingRatio * w * dt)
		sin, cos := math.Sincos(s.dampedFreq * dt)
		displacement = envelope * (cosCoeff*cos + sinCoeff*sin)
		currentVelocity = displacement*(-w)*s.dampingRatio +
			envelope*(-s.dampedFreq*cosCoeff*sin+s.dampedFreq*sinCoeff*cos)
	}

	return displacement + finalPosition, currentVelocity
}
