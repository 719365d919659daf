package analysis

import (
	"math"

	"github.com/ossian-f/springlab/internal/ode"
	"github.com/ossian-f/springlab/internal/spring"
)

// EnvelopeRate returns the exponential rate of the model's free response
// envelope. Negative for any damped spring: -zeta*omega0 up to critical
// damping, the slow eigenvalue beyond it.
func EnvelopeRate(m spring.Model) float64 {
	zeta := m.DampingRatio()
	omega := m.UndampedNaturalFrequency()
	if zeta <= 1 {
		return -zeta * omega
	}
	return omega * (-zeta + math.Sqrt(zeta*zeta-1))
}

// DecayRate estimates the envelope rate numerically from trajectory
// separation: two releases are integrated a small perturbation apart and
// the log separation change is averaged per unit time. The perturbed
// trajectory is rescaled to the original offset after every step, so the
// separation stays in the regime where the estimate is meaningful.
//
// Comparing the estimate against EnvelopeRate exposes the numerical
// dissipation of an integrator.
func DecayRate(m spring.Model, integ ode.Integrator, x0, v0, dt, duration, perturbation float64) float64 {
	if dt <= 0 || duration <= 0 || perturbation == 0 {
		return 0
	}

	sys := ode.Oscillator{Model: m}
	x := ode.State{x0, v0}
	xp := ode.State{x0 + perturbation, v0}
	d0 := math.Abs(perturbation)

	sumLog := 0.0
	count := 0

	for t := 0.0; t < duration; t += dt {
		x = integ.Step(sys, x, t, dt)
		xp = integ.Step(sys, xp, t, dt)

		sep := 0.0
		for i := range x {
			diff := xp[i] - x[i]
			sep += diff * diff
		}
		sep = math.Sqrt(sep)
		if sep == 0 {
			break
		}

		sumLog += math.Log(sep / d0)
		count++

		scale := d0 / sep
		for i := range xp {
			xp[i] = x[i] + (xp[i]-x[i])*scale
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}
