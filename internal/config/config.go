package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ossian-f/springlab/internal/spring"
)

const (
	DefaultDampingRatio = 0.75
	DefaultPeriod       = 0.25
	DefaultFPS          = 60
	DefaultMaxDuration  = 5.0
	DefaultTolerance    = 0.1
	DefaultScale        = 2.0
	DefaultDataDir      = "runs"
)

// Epsilon policy names accepted by EpsilonConfig.Mode.
const (
	EpsilonFixed = "fixed"
	EpsilonAuto  = "auto"
	EpsilonPixel = "pixel"
)

type Config struct {
	Spring    SpringConfig    `yaml:"spring"`
	Release   ReleaseConfig   `yaml:"release"`
	Epsilon   EpsilonConfig   `yaml:"epsilon"`
	Animation AnimationConfig `yaml:"animation"`
	DataDir   string          `yaml:"data_dir"`
}

// SpringConfig describes a spring either by raw physical constants or by
// design parameters. Setting mass or stiffness selects the raw form and
// the design fields are ignored.
type SpringConfig struct {
	Mass      float64 `yaml:"mass,omitempty"`
	Stiffness float64 `yaml:"stiffness,omitempty"`
	Damping   float64 `yaml:"damping,omitempty"`

	DampingRatio float64 `yaml:"damping_ratio"`
	Period       float64 `yaml:"period"`
}

// Model validates the configured parameters and builds the spring model.
func (s SpringConfig) Model() (spring.Model, error) {
	if s.Mass != 0 || s.Stiffness != 0 {
		if s.Mass <= 0 {
			return spring.Model{}, fmt.Errorf("spring mass must be positive, got %v", s.Mass)
		}
		if s.Stiffness <= 0 {
			return spring.Model{}, fmt.Errorf("spring stiffness must be positive, got %v", s.Stiffness)
		}
		if s.Damping < 0 {
			return spring.Model{}, fmt.Errorf("spring damping must be non-negative, got %v", s.Damping)
		}
		return spring.New(s.Mass, s.Stiffness, s.Damping), nil
	}
	if s.DampingRatio < 0 {
		return spring.Model{}, fmt.Errorf("damping ratio must be non-negative, got %v", s.DampingRatio)
	}
	if s.Period <= 0 {
		return spring.Model{}, fmt.Errorf("period must be positive, got %v", s.Period)
	}
	return spring.NewFromDesign(s.DampingRatio, s.Period), nil
}

// XY is a 2-D value in configuration files.
type XY struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p XY) Vec() spring.Vec2    { return spring.Vec2{X: p.X, Y: p.Y} }
func (p XY) Point() spring.Point { return spring.Point{X: p.X, Y: p.Y} }

// ReleaseConfig is one drag-release event: where the value is, where it
// should land, and how fast it was moving when let go.
type ReleaseConfig struct {
	Velocity XY `yaml:"velocity"`
	From     XY `yaml:"from"`
	To       XY `yaml:"to"`
}

// EpsilonConfig selects how the coincidence threshold is chosen when
// fitting a release.
type EpsilonConfig struct {
	Mode  string  `yaml:"mode"`
	Value float64 `yaml:"value,omitempty"`
	Scale float64 `yaml:"scale,omitempty"`
}

// Fit fits a release under the configured epsilon policy. *current may be
// nudged, exactly as in the underlying fit calls.
func (e EpsilonConfig) Fit(m spring.Model, velocity spring.Vec2, current *spring.Point, target spring.Point) (spring.Timing, error) {
	switch e.Mode {
	case EpsilonFixed:
		if e.Value <= 0 {
			return spring.Timing{}, fmt.Errorf("fixed epsilon must be positive, got %v", e.Value)
		}
		return m.FitPoint(velocity, current, target, e.Value), nil
	case EpsilonAuto, "":
		if velocity.Norm() == 0 {
			return spring.Timing{}, fmt.Errorf("auto epsilon requires a non-zero velocity")
		}
		return m.FitPointAuto(velocity, current, target), nil
	case EpsilonPixel:
		scale := e.Scale
		if scale == 0 {
			scale = DefaultScale
		}
		return m.FitPointPixel(velocity, current, target, scale), nil
	default:
		return spring.Timing{}, fmt.Errorf("unknown epsilon mode %q", e.Mode)
	}
}

// FitScalar is Fit for a single axis.
func (e EpsilonConfig) FitScalar(m spring.Model, velocity float64, current *float64, target float64) (spring.Timing, error) {
	switch e.Mode {
	case EpsilonFixed:
		if e.Value <= 0 {
			return spring.Timing{}, fmt.Errorf("fixed epsilon must be positive, got %v", e.Value)
		}
		return m.Fit(velocity, current, target, e.Value), nil
	case EpsilonAuto, "":
		if velocity == 0 {
			return spring.Timing{}, fmt.Errorf("auto epsilon requires a non-zero velocity")
		}
		return m.FitAuto(velocity, current, target), nil
	case EpsilonPixel:
		scale := e.Scale
		if scale == 0 {
			scale = DefaultScale
		}
		return m.FitPixel(velocity, current, target, scale), nil
	default:
		return spring.Timing{}, fmt.Errorf("unknown epsilon mode %q", e.Mode)
	}
}

type AnimationConfig struct {
	FPS         int     `yaml:"fps"`
	MaxDuration float64 `yaml:"max_duration"`
	Tolerance   float64 `yaml:"tolerance"`
}

func DefaultConfig() *Config {
	return &Config{
		Spring: SpringConfig{
			DampingRatio: DefaultDampingRatio,
			Period:       DefaultPeriod,
		},
		Release: ReleaseConfig{
			Velocity: XY{X: 800, Y: -200},
			From:     XY{X: 300, Y: 700},
			To:       XY{X: 300, Y: 700},
		},
		Epsilon: EpsilonConfig{
			Mode:  EpsilonAuto,
			Scale: DefaultScale,
		},
		Animation: AnimationConfig{
			FPS:         DefaultFPS,
			MaxDuration: DefaultMaxDuration,
			Tolerance:   DefaultTolerance,
		},
		DataDir: DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := c.Spring.Model(); err != nil {
		return err
	}
	switch c.Epsilon.Mode {
	case EpsilonFixed:
		if c.Epsilon.Value <= 0 {
			return fmt.Errorf("fixed epsilon must be positive, got %v", c.Epsilon.Value)
		}
	case EpsilonAuto, EpsilonPixel, "":
	default:
		return fmt.Errorf("unknown epsilon mode %q", c.Epsilon.Mode)
	}
	if c.Animation.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.Animation.FPS)
	}
	if c.Animation.MaxDuration <= 0 {
		return fmt.Errorf("max duration must be positive, got %v", c.Animation.MaxDuration)
	}
	if c.Animation.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %v", c.Animation.Tolerance)
	}
	return nil
}
