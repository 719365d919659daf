package ode

import (
	"math"
	"testing"

	"github.com/ossian-f/springlab/internal/spring"
)

func integrate(in Integrator, sys System, x0 State, dt float64, steps int) State {
	x := x0.Clone()
	for i := 0; i < steps; i++ {
		x = in.Step(sys, x, float64(i)*dt, dt)
	}
	return x
}

func TestRK4MatchesClosedForm(t *testing.T) {
	cases := []struct {
		name  string
		model spring.Model
	}{
		{"underdamped", spring.NewFromDesign(0.3, 0.5)},
		{"critical", spring.NewFromDesign(1.0, 0.5)},
		{"overdamped", spring.NewFromDesign(1.8, 0.5)},
	}

	const (
		dt    = 1e-3
		steps = 1000
	)

	for _, tc := range cases {
		sys := Oscillator{Model: tc.model}
		x := integrate(NewRK4(), sys, State{1, -2}, dt, steps)

		tEnd := dt * steps
		wantX := tc.model.Position(tEnd, 1, -2)
		wantV := tc.model.Velocity(tEnd, 1, -2)

		if math.Abs(x[0]-wantX) > 1e-6 {
			t.Errorf("%s: RK4 displacement %.9f, closed form %.9f", tc.name, x[0], wantX)
		}
		if math.Abs(x[1]-wantV) > 1e-5 {
			t.Errorf("%s: RK4 velocity %.9f, closed form %.9f", tc.name, x[1], wantV)
		}
	}
}

func TestEulerLessAccurateThanRK4(t *testing.T) {
	model := spring.NewFromDesign(0.3, 0.5)
	sys := Oscillator{Model: model}

	const (
		dt    = 1e-3
		steps = 500
	)
	tEnd := dt * steps
	want := model.Position(tEnd, 1, 0)

	eulerErr := math.Abs(integrate(NewEuler(), sys, State{1, 0}, dt, steps)[0] - want)
	rk4Err := math.Abs(integrate(NewRK4(), sys, State{1, 0}, dt, steps)[0] - want)

	if eulerErr > 0.05 {
		t.Errorf("Euler error too large: %e", eulerErr)
	}
	if rk4Err >= eulerErr {
		t.Errorf("RK4 error %e not below Euler error %e", rk4Err, eulerErr)
	}
}

func TestRK4StaysFinite(t *testing.T) {
	sys := Oscillator{Model: spring.NewFromDesign(0.75, 0.25)}
	x := integrate(NewRK4(), sys, State{14, -200}, 0.004, 2000)
	if !x.IsValid() {
		t.Errorf("RK4 produced invalid state: %v", x)
	}
}

func TestRK45MatchesClosedForm(t *testing.T) {
	cases := []struct {
		name  string
		model spring.Model
	}{
		{"underdamped", spring.NewFromDesign(0.3, 0.5)},
		{"critical", spring.NewFromDesign(1.0, 0.5)},
		{"overdamped", spring.NewFromDesign(1.8, 0.5)},
	}

	const (
		dt    = 1e-3
		steps = 1000
	)

	for _, tc := range cases {
		sys := Oscillator{Model: tc.model}
		x := integrate(NewRK45(), sys, State{1, -2}, dt, steps)

		tEnd := dt * steps
		wantX := tc.model.Position(tEnd, 1, -2)
		wantV := tc.model.Velocity(tEnd, 1, -2)

		if math.Abs(x[0]-wantX) > 1e-8 {
			t.Errorf("%s: RK45 displacement %.12f, closed form %.12f", tc.name, x[0], wantX)
		}
		if math.Abs(x[1]-wantV) > 1e-7 {
			t.Errorf("%s: RK45 velocity %.12f, closed form %.12f", tc.name, x[1], wantV)
		}
	}
}

func TestRK45AdaptiveStepSuggestions(t *testing.T) {
	sys := Oscillator{Model: spring.NewFromDesign(0.5, 0.5)}
	rk45 := NewRK45()

	// A tiny step on a smooth system is wastefully accurate, so the
	// suggestion should grow.
	_, dtNext := rk45.StepAdaptive(sys, State{1, 0}, 0, 1e-4, 1e-6)
	if dtNext <= 1e-4 {
		t.Errorf("smooth step suggestion %e did not grow from 1e-4", dtNext)
	}

	// A huge step against a tight tolerance should shrink.
	_, dtNext = rk45.StepAdaptive(sys, State{1, 0}, 0, 0.25, 1e-12)
	if dtNext >= 0.25 {
		t.Errorf("coarse step suggestion %e did not shrink from 0.25", dtNext)
	}
}

func TestVerletMatchesClosedForm(t *testing.T) {
	model := spring.NewFromDesign(0.3, 0.5)
	sys := Oscillator{Model: model}

	const (
		dt    = 1e-3
		steps = 1000
	)
	tEnd := dt * steps
	want := model.Position(tEnd, 1, 0)

	verletErr := math.Abs(integrate(NewVerlet(), sys, State{1, 0}, dt, steps)[0] - want)
	eulerErr := math.Abs(integrate(NewEuler(), sys, State{1, 0}, dt, steps)[0] - want)

	if verletErr > 5e-3 {
		t.Errorf("Verlet error too large: %e", verletErr)
	}
	if verletErr >= eulerErr {
		t.Errorf("Verlet error %e not below Euler error %e", verletErr, eulerErr)
	}
}

func TestOscillatorDerive(t *testing.T) {
	m := spring.New(2, 50, 3)
	sys := Oscillator{Model: m}

	dx := sys.Derive(State{0.4, -1.5}, 0)
	if dx[0] != -1.5 {
		t.Errorf("displacement derivative = %f, want -1.5", dx[0])
	}
	want := -(3*-1.5 + 50*0.4) / 2
	if math.Abs(dx[1]-want) > 1e-12 {
		t.Errorf("velocity derivative = %f, want %f", dx[1], want)
	}
	if sys.Dim() != 2 {
		t.Errorf("Dim() = %d, want 2", sys.Dim())
	}
}

func TestOscillatorEnergyDecays(t *testing.T) {
	sys := Oscillator{Model: spring.NewFromDesign(0.5, 0.5)}
	rk4 := NewRK4()

	x := State{1, 0}
	e0 := sys.Energy(x)
	peak := e0
	for i := 0; i < 400; i++ {
		x = rk4.Step(sys, x, float64(i)*0.01, 0.01)
		if e := sys.Energy(x); e > peak {
			peak = e
		}
	}

	if peak > e0*(1+1e-6) {
		t.Errorf("energy rose above its initial value: %e > %e", peak, e0)
	}
	if final := sys.Energy(x); final > 0.01*e0 {
		t.Errorf("energy did not decay: final %e, initial %e", final, e0)
	}
}
