// Package runner drives a rope simulation over time: it evaluates the
// anchor path, calls Step with a fixed timestep, records frames, and feeds
// metrics. It is the host loop the rope package itself stays agnostic of.
package runner

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/ropesim/internal/rope"
)

// AnchorPath yields the anchor offset applied to kinematic particles at
// simulation time t.
type AnchorPath func(t float64) mgl64.Vec2

// Metric observes the rope after every step and reduces to a single value.
type Metric interface {
	Name() string
	Observe(r *rope.Rope, t float64)
	Value() float64
	Reset()
}

// Observer is called after every step with the rope and the current time.
type Observer interface {
	OnStep(r *rope.Rope, t float64)
}

// Config controls one run.
type Config struct {
	Dt         float64
	Iterations int
	Duration   float64
}

// Frame is a snapshot of all particle positions at one instant.
type Frame []mgl64.Vec2

// Result collects the recorded frames and final metric values of a run.
type Result struct {
	Frames  []Frame
	Times   []float64
	Metrics map[string]float64
}

// Runner owns one rope plus its anchor path, metrics, and observers.
type Runner struct {
	rope      *rope.Rope
	path      AnchorPath
	metrics   []Metric
	observers []Observer
}

func New(r *rope.Rope, path AnchorPath) *Runner {
	if path == nil {
		path = Fixed(mgl64.Vec2{})
	}
	return &Runner{rope: r, path: path}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Rope returns the rope being driven.
func (r *Runner) Rope() *rope.Rope { return r.rope }

func validate(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("runner: dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Iterations <= 0 {
		return fmt.Errorf("runner: iterations must be positive, got %d", cfg.Iterations)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("runner: duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

// Run steps the rope for cfg.Duration, recording a frame per step (plus the
// initial frame). It stops early if ctx is canceled, returning the partial
// result alongside the context error.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Frames:  make([]Frame, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	result.Frames = append(result.Frames, r.rope.Positions())
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r.rope.Step(cfg.Dt, cfg.Iterations, r.path(t))
		t += cfg.Dt

		for _, m := range r.metrics {
			m.Observe(r.rope, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(r.rope, t)
		}

		result.Frames = append(result.Frames, r.rope.Positions())
		result.Times = append(result.Times, t)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps the rope without recording frames, handing each step
// to callback; a false return stops the run. Used where frame storage is
// unwanted (benchmarks, live views).
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(rp *rope.Rope, t float64) bool) error {
	if err := validate(cfg); err != nil {
		return err
	}

	t := 0.0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.rope.Step(cfg.Dt, cfg.Iterations, r.path(t))
		t += cfg.Dt

		if !callback(r.rope, t) {
			return nil
		}
	}

	return nil
}
