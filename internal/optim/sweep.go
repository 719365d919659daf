// Package optim searches the spring design space for parameters that snap
// a release to its target well: a grid sweep over damping ratio and
// frequency response, scored by an objective over the sampled motion.
package optim

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ossian-f/springlab/internal/motion"
	"github.com/ossian-f/springlab/internal/spring"
)

// Objective scores one candidate model; lower is better.
type Objective func(m spring.Model) float64

// Sweep describes a grid over the design space.
type Sweep struct {
	RatioMin   float64
	RatioMax   float64
	RatioSteps int

	PeriodMin   float64
	PeriodMax   float64
	PeriodSteps int

	// Workers caps concurrent evaluations; 0 means GOMAXPROCS.
	Workers int
}

// Candidate is one evaluated grid point.
type Candidate struct {
	DampingRatio float64 `json:"damping_ratio"`
	Period       float64 `json:"period"`
	Score        float64 `json:"score"`
}

// Run evaluates the objective at every grid point and returns the
// candidates sorted best first. Evaluations run in parallel.
func (s Sweep) Run(ctx context.Context, objective Objective) ([]Candidate, error) {
	if s.RatioSteps < 1 || s.PeriodSteps < 1 {
		return nil, fmt.Errorf("optim: sweep needs at least one step per axis")
	}
	if s.RatioMin <= 0 || s.PeriodMin <= 0 {
		return nil, fmt.Errorf("optim: damping ratio and period must be positive")
	}
	if s.RatioMax < s.RatioMin || s.PeriodMax < s.PeriodMin {
		return nil, fmt.Errorf("optim: sweep range is inverted")
	}

	candidates := make([]Candidate, s.RatioSteps*s.PeriodSteps)

	g, ctx := errgroup.WithContext(ctx)
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g.SetLimit(workers)

	for i := 0; i < s.RatioSteps; i++ {
		for j := 0; j < s.PeriodSteps; j++ {
			idx := i*s.PeriodSteps + j
			ratio := gridValue(s.RatioMin, s.RatioMax, s.RatioSteps, i)
			period := gridValue(s.PeriodMin, s.PeriodMax, s.PeriodSteps, j)
			g.Go(func() error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				m := spring.NewFromDesign(ratio, period)
				candidates[idx] = Candidate{
					DampingRatio: ratio,
					Period:       period,
					Score:        objective(m),
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a].Score < candidates[b].Score
	})
	return candidates, nil
}

func gridValue(min, max float64, steps, i int) float64 {
	if steps == 1 {
		return min
	}
	return min + (max-min)*float64(i)/float64(steps-1)
}

// Best returns the lowest scoring candidate.
func Best(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score < best.Score {
			best = c
		}
	}
	return best, true
}

// SnapObjective scores how well a model snaps a release to its target:
// settling time plus a weighted overshoot penalty. The zero value of
// FPS, MaxDuration, Tolerance and Epsilon fall back to the sampling
// defaults; an OvershootWeight of zero scores settling time alone.
type SnapObjective struct {
	Velocity spring.Vec2
	From     spring.Point
	To       spring.Point

	FPS             int
	MaxDuration     float64
	Tolerance       float64
	Epsilon         float64
	OvershootWeight float64
}

// Score evaluates one model. It is an [Objective].
func (o SnapObjective) Score(m spring.Model) float64 {
	fps := o.FPS
	if fps <= 0 {
		fps = 60
	}
	maxDur := o.MaxDuration
	if maxDur <= 0 {
		maxDur = 5
	}
	tol := o.Tolerance
	if tol <= 0 {
		tol = 0.1
	}
	eps := o.Epsilon
	if eps <= 0 {
		eps = 1e-3
	}

	cur := o.From
	timing := m.FitPoint(o.Velocity, &cur, o.To, eps)
	anim := motion.New(timing, cur, o.To)
	frames := anim.Frames(fps, maxDur, tol)
	sum := motion.Summarize(frames, m, cur, o.To, tol)
	return sum.SettlingTime + o.OvershootWeight*sum.Overshoot
}
