package spring

import (
	"fmt"
	"math"
)

// criticalBand is the half-width of the damping-ratio band treated as
// critically damped. Both the underdamped and overdamped closed forms
// divide by the damped frequency, which vanishes at ratio 1, so evaluation
// inside the band switches to the critical-form solution.
const criticalBand = 1e-6

// Model is a damped harmonic oscillator: a mass on a spring with a viscous
// damper, governed by m·x'' + c·x' + k·x = 0. It is immutable after
// construction and carries no state beyond its three parameters; two models
// with equal parameters behave identically.
//
// Construct with [New] or [NewFromDesign]; zero-value Models are invalid.
type Model struct {
	Mass      float64
	Stiffness float64
	Damping   float64
}

// New returns a model built from raw physical constants.
// Mass and stiffness must be positive and damping non-negative; New panics
// otherwise, since a spring with invalid physics has no meaningful motion.
func New(mass, stiffness, damping float64) Model {
	if !(mass > 0) {
		panic(fmt.Sprintf("spring: mass must be positive, got %v", mass))
	}
	if !(stiffness > 0) {
		panic(fmt.Sprintf("spring: stiffness must be positive, got %v", stiffness))
	}
	if !(damping >= 0) {
		panic(fmt.Sprintf("spring: damping must be non-negative, got %v", damping))
	}
	return Model{Mass: mass, Stiffness: stiffness, Damping: damping}
}

// NewFromDesign returns a model derived from designer-facing constants: a
// damping ratio (how bouncy, 0 oscillates forever, 1 is critical, above 1
// creeps) and a frequency response (the undamped oscillation period in
// seconds, how fast). Mass is fixed at 1.
//
// The mapping inverts the derived quantities, so reading DampingRatio and
// FrequencyResponse back from the result reproduces the inputs.
func NewFromDesign(dampingRatio, frequencyResponse float64) Model {
	if !(dampingRatio >= 0) {
		panic(fmt.Sprintf("spring: damping ratio must be non-negative, got %v", dampingRatio))
	}
	if !(frequencyResponse > 0) {
		panic(fmt.Sprintf("spring: frequency response must be positive, got %v", frequencyResponse))
	}
	const mass = 1.0
	omega := 2 * math.Pi / frequencyResponse
	return Model{
		Mass:      mass,
		Stiffness: omega * omega * mass,
		Damping:   4 * math.Pi * dampingRatio * mass / frequencyResponse,
	}
}

// DampingRatio is the ratio of actual to critical damping. Below 1 the
// spring oscillates, at 1 it settles fastest without overshooting, above 1
// it creeps toward equilibrium.
func (m Model) DampingRatio() float64 {
	return m.Damping / (2 * math.Sqrt(m.Stiffness*m.Mass))
}

// UndampedNaturalFrequency is the angular frequency the spring would
// oscillate at with zero damping, in radians per second.
func (m Model) UndampedNaturalFrequency() float64 {
	return math.Sqrt(m.Stiffness / m.Mass)
}

// DampedNaturalFrequency is the angular frequency of the decaying
// oscillation. For overdamped springs the same quantity (with the sign of
// 1−ζ² flipped) is the spread of the two real decay rates.
func (m Model) DampedNaturalFrequency() float64 {
	zeta := m.DampingRatio()
	return m.UndampedNaturalFrequency() * math.Sqrt(math.Abs(1-zeta*zeta))
}

// FrequencyResponse is the undamped oscillation period in seconds, the
// inverse of the design mapping in [NewFromDesign].
func (m Model) FrequencyResponse() float64 {
	return 2 * math.Pi / m.UndampedNaturalFrequency()
}

// decay is the exponential decay rate λ = c/2m shared by all three
// solution branches.
func (m Model) decay() float64 {
	return m.Damping / (2 * m.Mass)
}

// Position evaluates the closed-form solution of the motion equation at
// time t for the given initial displacement and velocity. No integration
// is performed; each call is exact up to floating point.
//
// The solution has three branches. Which one applies is decided by the
// damping ratio with a tolerance band of 1e-6 around the critical point:
// exactly at ratio 1 the under- and overdamped forms divide by zero, and
// just off it they lose precision, so the band must be respected by any
// re-implementation.
func (m Model) Position(t, initialPosition, initialVelocity float64) float64 {
	x0, v0 := initialPosition, initialVelocity
	lambda := m.decay()
	zeta := m.DampingRatio()
	omegaD := m.DampedNaturalFrequency()

	switch {
	case math.Abs(zeta-1) < criticalBand:
		c2 := v0 + lambda*x0
		return math.Exp(-lambda*t) * (x0 + c2*t)
	case zeta < 1:
		c2 := (v0 + lambda*x0) / omegaD
		return math.Exp(-lambda*t) * (x0*math.Cos(omegaD*t) + c2*math.Sin(omegaD*t))
	default:
		c1 := (v0 + x0*(lambda+omegaD)) / (2 * omegaD)
		c2 := x0 - c1
		return math.Exp(-lambda*t) * (c1*math.Exp(omegaD*t) + c2*math.Exp(-omegaD*t))
	}
}

// Velocity evaluates the time derivative of [Model.Position] at time t,
// using the same branch selection.
func (m Model) Velocity(t, initialPosition, initialVelocity float64) float64 {
	x0, v0 := initialPosition, initialVelocity
	lambda := m.decay()
	zeta := m.DampingRatio()
	omegaD := m.DampedNaturalFrequency()

	switch {
	case math.Abs(zeta-1) < criticalBand:
		c2 := v0 + lambda*x0
		return math.Exp(-lambda*t) * (c2 - lambda*(x0+c2*t))
	case zeta < 1:
		c1 := x0
		c2 := (v0 + lambda*x0) / omegaD
		return math.Exp(-lambda*t) *
			((c2*omegaD-lambda*c1)*math.Cos(omegaD*t) - (c1*omegaD+lambda*c2)*math.Sin(omegaD*t))
	default:
		c1 := (v0 + x0*(lambda+omegaD)) / (2 * omegaD)
		c2 := x0 - c1
		return math.Exp(-lambda*t) *
			(c1*(omegaD-lambda)*math.Exp(omegaD*t) - c2*(omegaD+lambda)*math.Exp(-omegaD*t))
	}
}

// Energy is the total mechanical energy at displacement x and velocity v:
// kinetic ½mv² plus elastic ½kx². For any damped model it decays
// monotonically along a trajectory.
func (m Model) Energy(x, v float64) float64 {
	return 0.5*m.Mass*v*v + 0.5*m.Stiffness*x*x
}

// MaxDisplacement is the peak distance from equilibrium reached by a
// spring released at equilibrium with the given initial velocity. The peak
// time has a closed form in every damping regime, so no search is needed.
//
// Fitting uses it to judge whether a velocity is worth honoring when the
// start and target coincide.
func (m Model) MaxDisplacement(initialVelocity float64) float64 {
	lambda := m.decay()
	zeta := m.DampingRatio()
	omegaD := m.DampedNaturalFrequency()

	var tPeak float64
	switch {
	case math.Abs(zeta-1) < criticalBand:
		tPeak = 1 / lambda
	case zeta < 1:
		// Atan(+Inf) = π/2 covers the undamped λ=0 case.
		tPeak = math.Atan(omegaD/lambda) / omegaD
	default:
		tPeak = math.Log((lambda+omegaD)/(lambda-omegaD)) / (2 * omegaD)
	}
	return math.Abs(m.Position(tPeak, 0, initialVelocity))
}
