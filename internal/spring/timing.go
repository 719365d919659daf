package spring

import (
	"fmt"
	"math"
)

// autoEpsilonFraction sets the coincidence threshold used by the FitAuto
// variants to 0.1% of the release speed.
const autoEpsilonFraction = 1e-3

// Timing packages everything an animation driver needs to reproduce a
// model's motion: the three physical constants plus a relative initial
// velocity. Relative velocity is normalized so that 1.0 covers the full
// remaining start-to-target distance in one second, the unit spring-based
// animation APIs expect.
type Timing struct {
	Mass            float64
	Stiffness       float64
	Damping         float64
	InitialVelocity Vec2
}

// TimingWithVelocity packages the model's constants with an already
// normalized velocity vector.
func (m Model) TimingWithVelocity(relativeVelocity Vec2) Timing {
	return Timing{
		Mass:            m.Mass,
		Stiffness:       m.Stiffness,
		Damping:         m.Damping,
		InitialVelocity: relativeVelocity,
	}
}

// TimingWithScalarVelocity broadcasts one relative velocity to both axes,
// so a single-axis release still moves a 2-D value on both dimensions.
func (m Model) TimingWithScalarVelocity(relativeVelocity float64) Timing {
	return m.TimingWithVelocity(Vec2{X: relativeVelocity, Y: relativeVelocity})
}

// RelativeVelocity converts an absolute velocity (units per second) into
// the normalized form, given the current and target values of the animated
// quantity. Epsilon is the distance below which current and target count
// as coincident; it must be positive.
//
// When the endpoints coincide the division that defines relative velocity
// blows up, so the procedure branches:
//
//   - endpoints at least epsilon apart: plain velocity/(target−current);
//   - coincident, but the velocity would fling the value at least
//     2·epsilon from rest: *current is moved off the target by exactly
//     epsilon in the direction the velocity points, and the division
//     is retaken against the nudged value;
//   - coincident with a negligible velocity: 0, and *current is left
//     alone.
//
// The write through current is the documented output channel: after a
// nudge the caller must treat *current as the animation's start value or
// the produced velocity will be wrong for its geometry.
func (m Model) RelativeVelocity(velocity float64, current *float64, target, epsilon float64) float64 {
	if !(epsilon > 0) {
		panic(fmt.Sprintf("spring: epsilon must be positive, got %v", epsilon))
	}
	if math.Abs(target-*current) >= epsilon {
		return velocity / (target - *current)
	}
	if m.MaxDisplacement(velocity) >= 2*epsilon {
		if velocity >= 0 {
			*current = target + epsilon
		} else {
			*current = target - epsilon
		}
		return velocity / (target - *current)
	}
	return 0
}

// Fit converts a scalar release (absolute velocity, current and target
// values) into timing parameters, broadcasting the fitted velocity to both
// axes. *current may be nudged; see [Model.RelativeVelocity].
func (m Model) Fit(velocity float64, current *float64, target, epsilon float64) Timing {
	return m.TimingWithScalarVelocity(m.RelativeVelocity(velocity, current, target, epsilon))
}

// FitPoint fits a 2-D release by applying the scalar procedure to each
// axis independently and composing the two results. Each coordinate of
// *current may be nudged; see [Model.RelativeVelocity].
func (m Model) FitPoint(velocity Vec2, current *Point, target Point, epsilon float64) Timing {
	return m.TimingWithVelocity(Vec2{
		X: m.RelativeVelocity(velocity.X, &current.X, target.X, epsilon),
		Y: m.RelativeVelocity(velocity.Y, &current.Y, target.Y, epsilon),
	})
}

// FitAuto is Fit with epsilon set to 0.1% of the release speed. The
// velocity must be non-zero or the derived epsilon violates the contract.
func (m Model) FitAuto(velocity float64, current *float64, target float64) Timing {
	return m.Fit(velocity, current, target, autoEpsilonFraction*math.Abs(velocity))
}

// FitPointAuto is FitPoint with epsilon set to 0.1% of the release speed.
func (m Model) FitPointAuto(velocity Vec2, current *Point, target Point) Timing {
	return m.FitPoint(velocity, current, target, autoEpsilonFraction*velocity.Norm())
}

// FitPixel is Fit with epsilon set to one physical pixel for a display
// with the given scale factor (pixels per unit), so a nudge is never
// visible on screen. Scale factors below 1 are treated as 1.
func (m Model) FitPixel(velocity float64, current *float64, target, scale float64) Timing {
	return m.Fit(velocity, current, target, 1/math.Max(1, scale))
}

// FitPointPixel is FitPoint with the one-pixel epsilon of [Model.FitPixel].
func (m Model) FitPointPixel(velocity Vec2, current *Point, target Point, scale float64) Timing {
	return m.FitPoint(velocity, current, target, 1/math.Max(1, scale))
}
