package metrics

import "github.com/san-kum/ropesim/internal/rope"

// KineticEnergy tracks the mean kinetic energy of the dynamic particles over
// a run. Kinematic particles are excluded; their motion is imposed, not
// simulated.
type KineticEnergy struct {
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{}
}

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(r *rope.Rope, t float64) {
	e := 0.0
	for i := 0; i < r.Count(); i++ {
		im := r.InvMass(i)
		if im == 0 {
			continue
		}
		e += 0.5 * r.Velocity(i).LenSqr() / im
	}
	k.total += e
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}
