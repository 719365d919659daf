// Package scenario runs scripted sequences of spring releases. Each step
// fits a release toward its target and plays it out; the position the
// value settles at becomes the start of the next step, so a scenario
// traces one value being flung around, corner to corner.
package scenario

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ossian-f/springlab/internal/config"
	"github.com/ossian-f/springlab/internal/motion"
	"github.com/ossian-f/springlab/internal/spring"
)

// Scenario defines a scripted release sequence.
type Scenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	From        config.XY `yaml:"from"`
	Steps       []Step    `yaml:"steps"`
}

// Step is a single release in a scenario. The spring comes from a named
// preset or an inline spring block; exactly one must be given.
type Step struct {
	Preset      string               `yaml:"preset,omitempty"`
	Spring      config.SpringConfig  `yaml:"spring,omitempty"`
	Velocity    config.XY            `yaml:"velocity"`
	To          config.XY            `yaml:"to"`
	Epsilon     config.EpsilonConfig `yaml:"epsilon,omitempty"`
	FPS         int                  `yaml:"fps,omitempty"`
	MaxDuration float64              `yaml:"max_duration,omitempty"`
	Tolerance   float64              `yaml:"tolerance,omitempty"`
}

// StepResult is the outcome of one executed step.
type StepResult struct {
	Step             int            `json:"step"`
	Preset           string         `json:"preset,omitempty"`
	Start            spring.Point   `json:"start"`
	Target           spring.Point   `json:"target"`
	RelativeVelocity spring.Vec2    `json:"relative_velocity"`
	End              spring.Point   `json:"end"`
	Summary          motion.Summary `json:"summary"`
}

// Load reads a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &sc, nil
}

func (sc *Scenario) Validate() error {
	if len(sc.Steps) == 0 {
		return fmt.Errorf("scenario has no steps")
	}
	for i, step := range sc.Steps {
		if _, err := step.model(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (s Step) model() (spring.Model, error) {
	if s.Preset != "" {
		p := config.GetPreset(s.Preset)
		if p == nil {
			return spring.Model{}, fmt.Errorf("unknown preset %q", s.Preset)
		}
		return p.Spring.Model()
	}
	if s.Spring == (config.SpringConfig{}) {
		return spring.Model{}, fmt.Errorf("needs a preset or a spring block")
	}
	return s.Spring.Model()
}

// Run executes all steps in order, chaining each settled position into the
// next release. Progress lines go to out; pass io.Discard to silence them.
func Run(ctx context.Context, sc *Scenario, out io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(sc.Steps))

	cur := sc.From.Point()
	for i, step := range sc.Steps {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		m, err := step.model()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		fps := step.FPS
		if fps <= 0 {
			fps = config.DefaultFPS
		}
		maxDur := step.MaxDuration
		if maxDur <= 0 {
			maxDur = config.DefaultMaxDuration
		}
		tol := step.Tolerance
		if tol <= 0 {
			tol = config.DefaultTolerance
		}

		target := step.To.Point()
		timing, err := step.Epsilon.Fit(m, step.Velocity.Vec(), &cur, target)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		anim := motion.New(timing, cur, target)
		frames := anim.Frames(fps, maxDur, tol)
		summary := motion.Summarize(frames, m, cur, target, tol)
		end := frames[len(frames)-1].Value

		results = append(results, StepResult{
			Step:             i + 1,
			Preset:           step.Preset,
			Start:            cur,
			Target:           target,
			RelativeVelocity: timing.InitialVelocity,
			End:              end,
			Summary:          summary,
		})

		fmt.Fprintf(out, "step %d/%d: (%.1f, %.1f) -> (%.1f, %.1f) settled in %.2fs\n",
			i+1, len(sc.Steps), cur.X, cur.Y, target.X, target.Y, summary.SettlingTime)

		cur = end
	}

	return results, nil
}
