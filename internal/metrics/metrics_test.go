package metrics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/ropesim/internal/rope"
)

func restingRope(t *testing.T) *rope.Rope {
	t.Helper()
	r, err := rope.New(rope.Def{
		Vertices: []mgl64.Vec2{{0, 0}, {1, 0}, {2, 0}},
		Masses:   []float64{0, 1, 1},
		Tuning:   rope.DefaultTuning(),
	})
	if err != nil {
		t.Fatalf("rope.New: %v", err)
	}
	return r
}

func TestStretchError_ZeroAtRest(t *testing.T) {
	m := NewStretchError()
	m.Observe(restingRope(t), 0)

	if got := m.Value(); got != 0 {
		t.Errorf("stretch error at rest = %v, want 0", got)
	}
}

func TestStretchError_TracksWorstViolation(t *testing.T) {
	r := restingRope(t)

	m := NewStretchError()

	// Drag the anchor most of a unit: the first segment is heavily
	// compressed, a violation the metric must remember even after the
	// rope recovers.
	r.Step(0.1, 1, mgl64.Vec2{0.9, 0})
	m.Observe(r, 0.1)
	worst := m.Value()
	if worst <= 0 {
		t.Fatalf("expected positive violation, got %v", worst)
	}

	for i := 0; i < 50; i++ {
		r.Step(0.1, 20, mgl64.Vec2{1, 0})
		m.Observe(r, 0.2+float64(i)*0.1)
	}
	if got := m.Value(); got < worst {
		t.Errorf("worst violation shrank: %v -> %v", worst, got)
	}

	m.Reset()
	if got := m.Value(); got != 0 {
		t.Errorf("value after reset = %v, want 0", got)
	}
}

func TestBendDeviation_WrapsAcrossBranch(t *testing.T) {
	r := restingRope(t)

	m := NewBendDeviation()
	m.Observe(r, 0)
	if got := m.Value(); got > 1e-12 {
		t.Errorf("bend deviation at rest = %v, want 0", got)
	}

	// A reference angle of pi against a straight chain is a half-turn
	// deviation; the wrap keeps it at pi, not above.
	r.SetReferenceAngle(math.Pi)
	m.Reset()
	m.Observe(r, 0)
	if got := m.Value(); got > math.Pi+1e-12 {
		t.Errorf("bend deviation = %v, exceeds pi", got)
	}
}

func TestKineticEnergy(t *testing.T) {
	r, err := rope.New(rope.Def{
		Vertices: []mgl64.Vec2{{0, 0}, {1, 0}, {2, 0}},
		Masses:   []float64{0, 2, 1},
		Gravity:  mgl64.Vec2{0, -10},
		Tuning:   rope.DefaultTuning(),
	})
	if err != nil {
		t.Fatalf("rope.New: %v", err)
	}

	m := NewKineticEnergy()
	m.Observe(r, 0)
	if got := m.Value(); got != 0 {
		t.Errorf("kinetic energy at rest = %v, want 0", got)
	}

	r.Step(0.01, 4, mgl64.Vec2{})
	m.Reset()
	m.Observe(r, 0.01)
	if got := m.Value(); got <= 0 {
		t.Errorf("kinetic energy after gravity step = %v, want > 0", got)
	}
}

func TestSample(t *testing.T) {
	r := restingRope(t)
	if got := Sample(r); got != 0 {
		t.Errorf("Sample at rest = %v, want 0", got)
	}
}
