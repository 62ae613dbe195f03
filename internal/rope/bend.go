package rope

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// bendFrame holds the geometry shared by all three bending formulations at
// one constraint: the current turning angle, the per-particle angle
// Jacobians, and the combined inverse effective mass.
type bendFrame struct {
	angle      float64
	j1, j2, j3 mgl64.Vec2
	w          float64
}

// bendAt evaluates the bend geometry at constraint i. It reports ok=false
// for degenerate triples: a zero-length edge, or all three particles pinned
// (w == 0). Those constraints are skipped for the current pass.
func (r *Rope) bendAt(i int) (bendFrame, bool) {
	var bf bendFrame

	d1 := r.ps[i+1].Sub(r.ps[i])
	d2 := r.ps[i+2].Sub(r.ps[i+1])

	l1sqr := d1.LenSqr()
	l2sqr := d2.LenSqr()
	if l1sqr*l2sqr == 0 {
		return bf, false
	}

	bf.angle = math.Atan2(cross(d1, d2), d1.Dot(d2))

	jd1 := skew(d1).Mul(-1.0 / l1sqr)
	jd2 := skew(d2).Mul(1.0 / l2sqr)

	bf.j1 = jd1.Mul(-1)
	bf.j2 = jd1.Sub(jd2)
	bf.j3 = jd2

	bf.w = r.ims[i]*bf.j1.Dot(bf.j1) + r.ims[i+1]*bf.j2.Dot(bf.j2) + r.ims[i+2]*bf.j3.Dot(bf.j3)
	if bf.w == 0 {
		return bf, false
	}

	return bf, true
}

// wrapError returns angle - rest with angle shifted by whole turns until the
// result lies in [-pi, pi], selecting the representation of the measured
// angle nearest the rest angle. Without this a rope wound through a full
// revolution sees a 2*pi jump in the constraint error.
func wrapError(angle, rest float64) float64 {
	c := angle - rest
	for c > math.Pi {
		angle -= 2 * math.Pi
		c = angle - rest
	}
	for c < -math.Pi {
		angle += 2 * math.Pi
		c = angle - rest
	}
	return c
}

// springDamper derives the spring and damper coefficients from the tuning's
// resonant frequency and damping ratio for an effective mass 1/w.
func (r *Rope) springDamper(w float64) (spring, damper float64) {
	meff := 1.0 / w
	omega := 2.0 * math.Pi * r.tuning.BendHertz
	spring = meff * omega * omega
	damper = 2.0 * meff * r.tuning.BendDamping * omega
	return spring, damper
}

// solveBendAngle runs one sweep of the rigid position-based angle
// constraint, relaxed by BendStiffness. No state is carried across
// iterations or steps.
func (r *Rope) solveBendAngle() {
	k := r.tuning.BendStiffness

	for i := 0; i < r.bendCount; i++ {
		bf, ok := r.bendAt(i)
		if !ok {
			continue
		}

		mass := 1.0 / bf.w
		c := wrapError(bf.angle, r.restAngles[i])
		impulse := -k * mass * c

		r.ps[i] = r.ps[i].Add(bf.j1.Mul(r.ims[i] * impulse))
		r.ps[i+1] = r.ps[i+1].Add(bf.j2.Mul(r.ims[i+1] * impulse))
		r.ps[i+2] = r.ps[i+2].Add(bf.j3.Mul(r.ims[i+2] * impulse))
	}
}

// solveBendSoftAngle runs one sweep of the compliant (extended
// position-based) angle constraint. The multiplier accumulates across the
// iterations of one step; Step zeroes it before the first sweep. The
// velocity term reads the step's pre-integration velocities, which are held
// fixed across iterations.
func (r *Rope) solveBendSoftAngle(dt float64) {
	for i := 0; i < r.bendCount; i++ {
		bf, ok := r.bendAt(i)
		if !ok {
			continue
		}

		spring, damper := r.springDamper(bf.w)
		alpha := 1.0 / (spring * dt * dt)
		beta := dt * dt * damper

		c := wrapError(bf.angle, r.restAngles[i])
		cdot := bf.j1.Dot(r.vs[i]) + bf.j2.Dot(r.vs[i+1]) + bf.j3.Dot(r.vs[i+2])

		b := c + alpha*r.lambdas[i] + alpha*beta*cdot
		ws := (1.0+alpha*beta/dt)*bf.w + alpha

		impulse := -b / ws

		r.ps[i] = r.ps[i].Add(bf.j1.Mul(r.ims[i] * impulse))
		r.ps[i+1] = r.ps[i+1].Add(bf.j2.Mul(r.ims[i+1] * impulse))
		r.ps[i+2] = r.ps[i+2].Add(bf.j3.Mul(r.ims[i+2] * impulse))
		r.lambdas[i] += impulse
	}
}

// applyBendForces applies the continuous spring-damper bending model. It
// mutates velocities only, once per step before position integration, and
// does not participate in the iterative solver.
func (r *Rope) applyBendForces(dt float64) {
	for i := 0; i < r.bendCount; i++ {
		bf, ok := r.bendAt(i)
		if !ok {
			continue
		}

		spring, damper := r.springDamper(bf.w)

		c := wrapError(bf.angle, r.restAngles[i])
		cdot := bf.j1.Dot(r.vs[i]) + bf.j2.Dot(r.vs[i+1]) + bf.j3.Dot(r.vs[i+2])

		impulse := -dt * (spring*c + damper*cdot)

		r.vs[i] = r.vs[i].Add(bf.j1.Mul(r.ims[i] * impulse))
		r.vs[i+1] = r.vs[i+1].Add(bf.j2.Mul(r.ims[i+1] * impulse))
		r.vs[i+2] = r.vs[i+2].Add(bf.j3.Mul(r.ims[i+2] * impulse))
	}
}
