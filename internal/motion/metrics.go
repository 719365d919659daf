package motion

import (
	"math"

	"github.com/ossian-f/springlab/internal/spring"
)

// Metric accumulates one scalar observation over the frames of an
// animation.
type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// Overshoot tracks how far past the target the value travels, measured
// per axis along the direction of approach and reported as the worst axis.
// Axes that start on target never overshoot.
type Overshoot struct {
	from, to spring.Point
	peak     float64
}

func NewOvershoot(from, to spring.Point) *Overshoot {
	return &Overshoot{from: from, to: to}
}

func (o *Overshoot) Name() string { return "overshoot" }

func (o *Overshoot) Observe(f Frame) {
	o.peak = math.Max(o.peak, axisOvershoot(f.Value.X, o.from.X, o.to.X))
	o.peak = math.Max(o.peak, axisOvershoot(f.Value.Y, o.from.Y, o.to.Y))
}

func axisOvershoot(value, from, to float64) float64 {
	span := to - from
	if span == 0 {
		return 0
	}
	return math.Max(0, math.Copysign(1, span)*(value-to))
}

func (o *Overshoot) Value() float64 { return o.peak }
func (o *Overshoot) Reset()         { o.peak = 0 }

// SettlingTime tracks the time of the last frame observed outside the
// tolerance radius around the target.
type SettlingTime struct {
	target    spring.Point
	tolerance float64
	last      float64
}

func NewSettlingTime(target spring.Point, tolerance float64) *SettlingTime {
	return &SettlingTime{target: target, tolerance: tolerance}
}

func (s *SettlingTime) Name() string { return "settling_time" }

func (s *SettlingTime) Observe(f Frame) {
	if f.Value.Distance(s.target) > s.tolerance {
		s.last = f.T
	}
}

func (s *SettlingTime) Value() float64 { return s.last }
func (s *SettlingTime) Reset()         { s.last = 0 }

// Energy tracks the mean mechanical energy over the observed frames,
// taking displacement from the target as the spring extension.
type Energy struct {
	model   spring.Model
	target  spring.Point
	sum     float64
	samples int
}

func NewEnergy(model spring.Model, target spring.Point) *Energy {
	return &Energy{model: model, target: target}
}

func (e *Energy) Name() string { return "energy" }

func (e *Energy) Observe(f Frame) {
	e.sum += e.model.Energy(f.Value.Distance(e.target), f.Velocity.Norm())
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *Energy) Reset() {
	e.sum = 0
	e.samples = 0
}

// Summary condenses one animation's sampled frames into the numbers the
// CLI reports and the store persists.
type Summary struct {
	Duration      float64 `json:"duration"`
	Frames        int     `json:"frames"`
	Overshoot     float64 `json:"overshoot"`
	SettlingTime  float64 `json:"settling_time"`
	MeanEnergy    float64 `json:"mean_energy"`
	FinalDistance float64 `json:"final_distance"`
}

// Summarize runs the standard metrics over the frames of an animation.
func Summarize(frames []Frame, model spring.Model, from, to spring.Point, tolerance float64) Summary {
	metrics := []Metric{
		NewOvershoot(from, to),
		NewSettlingTime(to, tolerance),
		NewEnergy(model, to),
	}
	for _, f := range frames {
		for _, m := range metrics {
			m.Observe(f)
		}
	}

	var s Summary
	s.Frames = len(frames)
	if len(frames) > 0 {
		last := frames[len(frames)-1]
		s.Duration = last.T
		s.FinalDistance = last.Value.Distance(to)
	}
	s.Overshoot = metrics[0].Value()
	s.SettlingTime = metrics[1].Value()
	s.MeanEnergy = metrics[2].Value()
	return s
}
