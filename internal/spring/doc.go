// Package spring models a damped harmonic oscillator in closed form and
// fits release events into normalized spring-timing parameters.
//
// Unlike a numerically integrated model, [Model.Position] solves
// m·x'' + c·x' + k·x = 0 analytically, branching on the damping regime:
//
//   - underdamped (ζ < 1): decaying oscillation
//   - critically damped (ζ ≈ 1): fastest non-oscillating settle
//   - overdamped (ζ > 1): slow creep with two real decay rates
//
// The second job of the package is [Model.FitPoint] and friends, which
// turn an absolute release (velocity in units per second, a current value
// and a target value) into the relative-velocity form spring animation
// APIs consume, including the epsilon nudge that keeps the conversion
// well-defined when the release lands exactly on its target.
//
// # Example
//
//	m := spring.NewFromDesign(0.75, 0.25)
//	cur := spring.Point{X: 300, Y: 700}
//	timing := m.FitPointAuto(spring.Vec2{X: 800, Y: -200}, &cur, spring.Point{X: 40, Y: 60})
//
// # Contracts
//
// Constructors and fitting panic on physically meaningless parameters
// (non-positive mass, stiffness or epsilon, negative damping). Degenerate
// geometry such as coincident endpoints or a tiny velocity is never an
// error; the branch logic resolves it to a well-defined result.
//
// All types are immutable values; concurrent use needs no coordination.
package spring
