package ode

import (
	"errors"
	"math"
)

// ErrUnknownIntegrator is returned by New for names outside the registry.
var ErrUnknownIntegrator = errors.New("ode: unknown integrator")

// State is a flat state vector. For the spring systems in this module it is
// [displacement, velocity].
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every component is a finite number.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// System is an autonomous first-order ODE dx/dt = f(x, t).
type System interface {
	Derive(x State, t float64) State
	Dim() int
}

// Func adapts a derivative closure of dimension N to the System interface.
type Func struct {
	N int
	F func(x State, t float64) State
}

func (f Func) Dim() int { return f.N }

func (f Func) Derive(x State, t float64) State { return f.F(x, t) }

// Integrator advances a system state by one fixed step.
type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}
