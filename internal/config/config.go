// Package config defines the yaml scenario format: rope geometry, gravity,
// solver tuning, anchor motion, and run timing. A Config is the single
// source from which the CLI builds rope, anchor path, and runner config.
package config

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/runner"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt         = 1.0 / 60.0
	DefaultIterations = 8
	DefaultDuration   = 10.0
	DefaultCount      = 10
	DefaultSpacing    = 0.25
	DefaultMass       = 1.0
	DefaultGravityY   = -10.0
)

type Config struct {
	Rope       RopeConfig   `yaml:"rope"`
	Gravity    VecConfig    `yaml:"gravity"`
	Tuning     TuningConfig `yaml:"tuning"`
	Anchor     AnchorConfig `yaml:"anchor"`
	Dt         float64      `yaml:"dt"`
	Iterations int          `yaml:"iterations"`
	Duration   float64      `yaml:"duration"`
}

// RopeConfig lays the chain out as a straight horizontal run of Count
// particles, Spacing apart, starting at Origin. Particles listed in Pins are
// kinematic; all others carry Mass.
type RopeConfig struct {
	Count   int       `yaml:"count"`
	Spacing float64   `yaml:"spacing"`
	Origin  VecConfig `yaml:"origin"`
	Mass    float64   `yaml:"mass"`
	Pins    []int     `yaml:"pins"`
}

type VecConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type TuningConfig struct {
	Damping          float64 `yaml:"damping"`
	BendingModel     string  `yaml:"bending_model"`
	BendHertz        float64 `yaml:"bend_hertz"`
	BendDamping      float64 `yaml:"bend_damping"`
	BendStiffness    float64 `yaml:"bend_stiffness"`
	StretchStiffness float64 `yaml:"stretch_stiffness"`
}

// AnchorConfig describes the motion of the anchor offset: "fixed", "sway",
// or "circle".
type AnchorConfig struct {
	Motion    string  `yaml:"motion"`
	Amplitude float64 `yaml:"amplitude"`
	Hertz     float64 `yaml:"hertz"`
}

func Default() *Config {
	return &Config{
		Rope: RopeConfig{
			Count:   DefaultCount,
			Spacing: DefaultSpacing,
			Mass:    DefaultMass,
			Pins:    []int{0},
		},
		Gravity: VecConfig{Y: DefaultGravityY},
		Tuning: TuningConfig{
			Damping:          0.1,
			BendingModel:     "pbd",
			BendHertz:        30.0,
			BendDamping:      0.7,
			BendStiffness:    0.5,
			StretchStiffness: 0.9,
		},
		Anchor:     AnchorConfig{Motion: "fixed"},
		Dt:         DefaultDt,
		Iterations: DefaultIterations,
		Duration:   DefaultDuration,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// BuildTuning maps the yaml tuning block to rope.Tuning.
func (c *Config) BuildTuning() (rope.Tuning, error) {
	model, err := rope.ParseBendingModel(c.Tuning.BendingModel)
	if err != nil {
		return rope.Tuning{}, err
	}
	return rope.Tuning{
		Damping:          c.Tuning.Damping,
		StretchStiffness: c.Tuning.StretchStiffness,
		BendStiffness:    c.Tuning.BendStiffness,
		BendHertz:        c.Tuning.BendHertz,
		BendDamping:      c.Tuning.BendDamping,
		BendingModel:     model,
	}, nil
}

// BuildDef lays out the chain and produces the rope construction parameters.
func (c *Config) BuildDef() (rope.Def, error) {
	tuning, err := c.BuildTuning()
	if err != nil {
		return rope.Def{}, err
	}

	n := c.Rope.Count
	vertices := make([]mgl64.Vec2, n)
	masses := make([]float64, n)
	for i := 0; i < n; i++ {
		vertices[i] = mgl64.Vec2{
			c.Rope.Origin.X + float64(i)*c.Rope.Spacing,
			c.Rope.Origin.Y,
		}
		masses[i] = c.Rope.Mass
	}
	for _, pin := range c.Rope.Pins {
		if pin < 0 || pin >= n {
			return rope.Def{}, fmt.Errorf("config: pin index %d out of range [0, %d)", pin, n)
		}
		masses[pin] = 0
	}

	return rope.Def{
		Vertices: vertices,
		Masses:   masses,
		Gravity:  mgl64.Vec2{c.Gravity.X, c.Gravity.Y},
		Tuning:   tuning,
	}, nil
}

// BuildPath maps the anchor block to a runner.AnchorPath.
func (c *Config) BuildPath() (runner.AnchorPath, error) {
	switch c.Anchor.Motion {
	case "", "fixed":
		return runner.Fixed(mgl64.Vec2{}), nil
	case "sway":
		return runner.Sway(c.Anchor.Amplitude, c.Anchor.Hertz), nil
	case "circle":
		return runner.Circle(c.Anchor.Amplitude, c.Anchor.Hertz), nil
	}
	return nil, fmt.Errorf("config: unknown anchor motion %q", c.Anchor.Motion)
}

// RunnerConfig maps the timing block to a runner.Config.
func (c *Config) RunnerConfig() runner.Config {
	return runner.Config{Dt: c.Dt, Iterations: c.Iterations, Duration: c.Duration}
}
