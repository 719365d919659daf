// Package motion drives animated values from spring timing parameters: it
// turns a fitted Timing plus start and target points into positions,
// velocities and sampled frames over time.
package motion

import (
	"github.com/ossian-f/springlab/internal/spring"
)

// sampleRate is the scan resolution used when searching for the settling
// time, in samples per second.
const sampleRate = 240

// settleHold is how many consecutive settled frames Frames requires before
// cutting the tail off an animation.
const settleHold = 8

// Frame is one sampled instant of an animation.
type Frame struct {
	T        float64
	Value    spring.Point
	Velocity spring.Vec2
}

// Animation evaluates the motion described by spring timing parameters
// between two points. Each axis follows the normalized closed-form solution
// independently: the axis starts at 1 in normalized space with the fitted
// relative velocity reversed, decays to 0, and is mapped back onto the
// from-to span.
//
// An axis whose span is zero holds the target value for all t; whatever
// relative velocity the timing carries for it is unused.
type Animation struct {
	model    spring.Model
	velocity spring.Vec2
	from, to spring.Point
}

// New builds an animation from timing parameters and the endpoints they
// were fitted against. After a nudged fit, from must be the nudged start
// value or the motion will not match the fitted velocity.
func New(timing spring.Timing, from, to spring.Point) *Animation {
	return &Animation{
		model:    spring.New(timing.Mass, timing.Stiffness, timing.Damping),
		velocity: timing.InitialVelocity,
		from:     from,
		to:       to,
	}
}

func (a *Animation) Start() spring.Point  { return a.from }
func (a *Animation) Target() spring.Point { return a.to }
func (a *Animation) Model() spring.Model  { return a.model }

func (a *Animation) axis(t, from, to, rel float64) float64 {
	span := to - from
	if span == 0 {
		return to
	}
	return to - span*a.model.Position(t, 1, -rel)
}

func (a *Animation) axisVelocity(t, from, to, rel float64) float64 {
	span := to - from
	if span == 0 {
		return 0
	}
	return -span * a.model.Velocity(t, 1, -rel)
}

// At returns the animated value at time t since release.
func (a *Animation) At(t float64) spring.Point {
	return spring.Point{
		X: a.axis(t, a.from.X, a.to.X, a.velocity.X),
		Y: a.axis(t, a.from.Y, a.to.Y, a.velocity.Y),
	}
}

// VelocityAt returns the absolute velocity at time t, in value units per
// second. At t=0 it reproduces the release velocity the timing was fitted
// from.
func (a *Animation) VelocityAt(t float64) spring.Vec2 {
	return spring.Vec2{
		X: a.axisVelocity(t, a.from.X, a.to.X, a.velocity.X),
		Y: a.axisVelocity(t, a.from.Y, a.to.Y, a.velocity.Y),
	}
}

// Done reports whether the animation is within tol of its target and
// moving slower than tol units per second at time t.
func (a *Animation) Done(t, tol float64) bool {
	return a.At(t).Distance(a.to) <= tol && a.VelocityAt(t).Norm() <= tol
}

// SettlingDuration scans forward for the last time the animation is
// outside tol, and returns the following sample instant. Animations still
// unsettled at maxDur return maxDur.
func (a *Animation) SettlingDuration(tol, maxDur float64) float64 {
	steps := int(maxDur * sampleRate)
	last := 0.0
	settled := false
	for i := 0; i <= steps; i++ {
		t := float64(i) / sampleRate
		if a.Done(t, tol) {
			if !settled {
				last = t
				settled = true
			}
		} else {
			settled = false
		}
	}
	if !settled {
		return maxDur
	}
	return last
}

// Frames samples the animation at the given frame rate until it has been
// settled within tol for a short hold, or until maxDur. The first frame is
// always t=0.
func (a *Animation) Frames(fps int, maxDur, tol float64) []Frame {
	if fps <= 0 {
		fps = 60
	}
	dt := 1.0 / float64(fps)

	frames := make([]Frame, 0, int(maxDur*float64(fps))+1)
	held := 0
	for i := 0; ; i++ {
		t := float64(i) * dt
		if t > maxDur {
			break
		}
		frames = append(frames, Frame{T: t, Value: a.At(t), Velocity: a.VelocityAt(t)})
		if a.Done(t, tol) {
			held++
			if held >= settleHold {
				break
			}
		} else {
			held = 0
		}
	}
	return frames
}
