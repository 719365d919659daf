package ode

import "github.com/ossian-f/springlab/internal/spring"

// Oscillator exposes a damped spring as a first-order system over the state
// [displacement, velocity], for integrating numerically next to the closed
// form:
//
//	x' = v
//	v' = -(c*v + k*x) / m
type Oscillator struct {
	Model spring.Model
}

func (o Oscillator) Dim() int { return 2 }

func (o Oscillator) Derive(x State, _ float64) State {
	return State{
		x[1],
		-(o.Model.Damping*x[1] + o.Model.Stiffness*x[0]) / o.Model.Mass,
	}
}

// Energy is the mechanical energy of the state, delegated to the model.
func (o Oscillator) Energy(x State) float64 {
	return o.Model.Energy(x[0], x[1])
}
