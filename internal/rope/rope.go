package rope

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Def holds the construction parameters for a Rope, consumed once by New.
// Vertices and Masses are parallel; a non-positive mass marks a kinematic
// (pinned, anchor-driven) particle.
type Def struct {
	Vertices []mgl64.Vec2
	Masses   []float64
	Gravity  mgl64.Vec2
	Tuning   Tuning
}

// Rope owns all particle and constraint arrays. The arrays are allocated at
// construction and never resized; Step performs no allocation.
type Rope struct {
	count        int
	stretchCount int
	bendCount    int

	bind []mgl64.Vec2 // rest-pose positions, anchor target for kinematic particles
	ps   []mgl64.Vec2 // positions
	p0s  []mgl64.Vec2 // positions at the start of the step
	vs   []mgl64.Vec2 // velocities
	ims  []float64    // inverse masses, 0 for kinematic

	restLens   []float64 // stretch constraint rest lengths
	restAngles []float64 // bend constraint rest turning angles
	lambdas    []float64 // xpbd bend multipliers, valid only within one Step

	gravity mgl64.Vec2
	tuning  Tuning
}

// New builds a Rope from def. It fails if fewer than three vertices are
// given or if the mass list does not match the vertex list. Rest lengths and
// rest angles are captured from the initial configuration and define the
// rope's natural shape.
func New(def Def) (*Rope, error) {
	n := len(def.Vertices)
	if n < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewVertices, n)
	}
	if len(def.Masses) != n {
		return nil, fmt.Errorf("%w: %d vertices, %d masses", ErrDimensionMismatch, n, len(def.Masses))
	}

	r := &Rope{
		count:        n,
		stretchCount: n - 1,
		bendCount:    n - 2,
		bind:         make([]mgl64.Vec2, n),
		ps:           make([]mgl64.Vec2, n),
		p0s:          make([]mgl64.Vec2, n),
		vs:           make([]mgl64.Vec2, n),
		ims:          make([]float64, n),
		restLens:     make([]float64, n-1),
		restAngles:   make([]float64, n-2),
		lambdas:      make([]float64, n-2),
		gravity:      def.Gravity,
		tuning:       def.Tuning,
	}

	for i, v := range def.Vertices {
		r.bind[i] = v
		r.ps[i] = v
		r.p0s[i] = v
		if m := def.Masses[i]; m > 0 {
			r.ims[i] = 1.0 / m
		}
	}

	for i := 0; i < r.stretchCount; i++ {
		r.restLens[i] = r.ps[i+1].Sub(r.ps[i]).Len()
	}

	for i := 0; i < r.bendCount; i++ {
		d1 := r.ps[i+1].Sub(r.ps[i])
		d2 := r.ps[i+2].Sub(r.ps[i+1])
		r.restAngles[i] = math.Atan2(cross(d1, d2), d1.Dot(d2))
	}

	return r, nil
}

// SetTuning replaces the solver parameters; it takes effect on the next Step.
func (r *Rope) SetTuning(t Tuning) {
	r.tuning = t
}

// SetReferenceAngle overwrites every bend constraint's rest angle uniformly,
// re-posing the rope's natural curvature.
func (r *Rope) SetReferenceAngle(angle float64) {
	for i := range r.restAngles {
		r.restAngles[i] = angle
	}
}

// Step advances the simulation by dt seconds using the given number of
// constraint solver iterations. Kinematic particles are driven to their bind
// position plus anchor. A zero dt is a no-op.
func (r *Rope) Step(dt float64, iterations int, anchor mgl64.Vec2) {
	if dt == 0 {
		return
	}

	invDt := 1.0 / dt
	decay := math.Exp(-dt * r.tuning.Damping)

	for i := 0; i < r.count; i++ {
		if r.ims[i] > 0 {
			r.vs[i] = r.vs[i].Add(r.gravity.Mul(dt)).Mul(decay)
		} else {
			r.vs[i] = r.bind[i].Add(anchor).Sub(r.p0s[i]).Mul(invDt)
		}
	}

	if r.tuning.BendingModel == BendSpring {
		r.applyBendForces(dt)
	}

	for i := 0; i < r.count; i++ {
		r.ps[i] = r.ps[i].Add(r.vs[i].Mul(dt))
	}

	for i := range r.lambdas {
		r.lambdas[i] = 0
	}

	for it := 0; it < iterations; it++ {
		switch r.tuning.BendingModel {
		case BendPBD:
			r.solveBendAngle()
		case BendXPBD:
			r.solveBendSoftAngle(dt)
		}
		r.solveStretch()
	}

	for i := 0; i < r.count; i++ {
		r.vs[i] = r.ps[i].Sub(r.p0s[i]).Mul(invDt)
		r.p0s[i] = r.ps[i]
	}
}

// Count returns the number of particles.
func (r *Rope) Count() int { return r.count }

// StretchCount returns the number of distance constraints.
func (r *Rope) StretchCount() int { return r.stretchCount }

// BendCount returns the number of bend constraints.
func (r *Rope) BendCount() int { return r.bendCount }

// Position returns the current position of particle i.
func (r *Rope) Position(i int) mgl64.Vec2 { return r.ps[i] }

// Velocity returns the current velocity of particle i.
func (r *Rope) Velocity(i int) mgl64.Vec2 { return r.vs[i] }

// InvMass returns the inverse mass of particle i; 0 means kinematic.
func (r *Rope) InvMass(i int) float64 { return r.ims[i] }

// Pinned reports whether particle i is kinematic.
func (r *Rope) Pinned(i int) bool { return r.ims[i] == 0 }

// Positions returns a copy of all particle positions. The rope's own arrays
// are never exposed.
func (r *Rope) Positions() []mgl64.Vec2 {
	out := make([]mgl64.Vec2, r.count)
	copy(out, r.ps)
	return out
}

// RestLength returns the rest length of stretch constraint i.
func (r *Rope) RestLength(i int) float64 { return r.restLens[i] }

// RestAngle returns the rest turning angle of bend constraint i.
func (r *Rope) RestAngle(i int) float64 { return r.restAngles[i] }

// BendAngle returns the current signed turning angle at bend constraint i,
// in (-pi, pi]. Degenerate (zero-length) edges yield 0.
func (r *Rope) BendAngle(i int) float64 {
	d1 := r.ps[i+1].Sub(r.ps[i])
	d2 := r.ps[i+2].Sub(r.ps[i+1])
	if d1.LenSqr()*d2.LenSqr() == 0 {
		return 0
	}
	return math.Atan2(cross(d1, d2), d1.Dot(d2))
}
