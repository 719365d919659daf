package ode

import "math"

// Dormand-Prince tableau. dc* are the differences between the fifth and
// fourth order weights, used for the embedded error estimate.
const (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 + 92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// RK45 is the Dormand-Prince embedded pair. Step advances with the fifth
// order solution at the given step; StepAdaptive also suggests the next
// step size from the embedded error estimate. Stage buffers are reused,
// so a single RK45 value must not be shared between goroutines.
type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64

	k       [7]State
	scratch State
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

func (r *RK45) ensureScratch(n int) {
	if len(r.scratch) != n {
		for i := range r.k {
			r.k[i] = make(State, n)
		}
		r.scratch = make(State, n)
	}
}

func (r *RK45) Step(sys System, x State, t, dt float64) State {
	next, _ := r.StepAdaptive(sys, x, t, dt, 1e-6)
	return next
}

func (r *RK45) StepAdaptive(sys System, x State, t, dt, tol float64) (State, float64) {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k[0], sys.Derive(x, t))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*b21*r.k[0][i]
	}
	copy(r.k[1], sys.Derive(r.scratch, t+a2*dt))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*(b31*r.k[0][i]+b32*r.k[1][i])
	}
	copy(r.k[2], sys.Derive(r.scratch, t+a3*dt))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*(b41*r.k[0][i]+b42*r.k[1][i]+b43*r.k[2][i])
	}
	copy(r.k[3], sys.Derive(r.scratch, t+a4*dt))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*(b51*r.k[0][i]+b52*r.k[1][i]+b53*r.k[2][i]+b54*r.k[3][i])
	}
	copy(r.k[4], sys.Derive(r.scratch, t+a5*dt))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*(b61*r.k[0][i]+b62*r.k[1][i]+b63*r.k[2][i]+b64*r.k[3][i]+b65*r.k[4][i])
	}
	copy(r.k[5], sys.Derive(r.scratch, t+dt))

	next := make(State, n)
	for i := 0; i < n; i++ {
		next[i] = x[i] + dt*(c1*r.k[0][i]+c3*r.k[2][i]+c4*r.k[3][i]+c5*r.k[4][i]+c6*r.k[5][i])
	}
	copy(r.k[6], sys.Derive(next, t+dt))

	errMax := 0.0
	for i := 0; i < n; i++ {
		errEst := dt * (dc1*r.k[0][i] + dc3*r.k[2][i] + dc4*r.k[3][i] + dc5*r.k[4][i] + dc6*r.k[5][i] + dc7*r.k[6][i])
		scale := math.Abs(x[i]) + math.Abs(dt*r.k[0][i]) + 1e-10
		if e := math.Abs(errEst) / scale; e > errMax {
			errMax = e
		}
	}

	errRatio := errMax / tol
	var dtNext float64
	switch {
	case errRatio > 1:
		dtNext = dt * math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.25))
	case errRatio > 0:
		dtNext = dt * math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2))
	default:
		dtNext = dt * r.maxScale
	}

	return next, dtNext
}
