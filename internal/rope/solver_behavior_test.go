package rope

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// elbow builds a right-angle rope with the first two particles pinned and
// the tip free, so bending corrections act on the tip alone.
func elbow(tuning Tuning) *Rope {
	r, err := New(Def{
		Vertices: []mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}},
		Masses:   []float64{0, 0, 1},
		Tuning:   tuning,
	})
	Expect(err).NotTo(HaveOccurred())
	return r
}

var _ = Describe("stretch solver", func() {
	It("restores rest lengths for varied mass ratios", func() {
		for _, masses := range [][]float64{
			{0, 1, 1},
			{0, 1, 10},
			{0, 10, 0.1},
		} {
			tuning := DefaultTuning()
			tuning.BendingModel = BendNone
			tuning.StretchStiffness = 1

			r, err := New(Def{
				Vertices: []mgl64.Vec2{{0, 0}, {1, 0}, {2, 0}},
				Masses:   masses,
				Tuning:   tuning,
			})
			Expect(err).NotTo(HaveOccurred())

			// Shift the anchor to compress the chain, then let the
			// solver iterate until both segments recover.
			r.Step(0.1, 50, mgl64.Vec2{0.5, 0})

			for i := 0; i < r.StretchCount(); i++ {
				l := r.Position(i + 1).Sub(r.Position(i)).Len()
				Expect(l).To(BeNumerically("~", r.RestLength(i), 1e-6),
					"masses %v, constraint %d", masses, i)
			}
		}
	})

	It("skips constraints whose particles are both pinned", func() {
		tuning := DefaultTuning()
		tuning.BendingModel = BendNone

		r, err := New(Def{
			Vertices: []mgl64.Vec2{{0, 0}, {1, 0}, {2, 0}},
			Masses:   []float64{0, 0, 1},
			Gravity:  mgl64.Vec2{0, -10},
			Tuning:   tuning,
		})
		Expect(err).NotTo(HaveOccurred())

		r.Step(1.0/60, 8, mgl64.Vec2{})

		Expect(r.Position(0)).To(Equal(mgl64.Vec2{0, 0}))
		Expect(r.Position(1)).To(Equal(mgl64.Vec2{1, 0}))
	})
})

var _ = Describe("degenerate geometry", func() {
	It("survives coincident particles without NaN", func() {
		for _, model := range []BendingModel{BendNone, BendSpring, BendPBD, BendXPBD} {
			tuning := DefaultTuning()
			tuning.BendingModel = model
			tuning.BendHertz = 2

			r, err := New(Def{
				Vertices: []mgl64.Vec2{{0, 0}, {0, 0}, {1, 0}},
				Masses:   []float64{0, 1, 1},
				Gravity:  mgl64.Vec2{0, -10},
				Tuning:   tuning,
			})
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 10; i++ {
				r.Step(1.0/60, 8, mgl64.Vec2{})
			}

			for i := 0; i < r.Count(); i++ {
				p := r.Position(i)
				Expect(math.IsNaN(p.X()) || math.IsNaN(p.Y())).To(BeFalse(),
					"model %v particle %d", model, i)
			}
		}
	})
})

var _ = Describe("bending models", func() {
	Context("rigid position-based", func() {
		It("drives the bend angle to the reference angle", func() {
			tuning := DefaultTuning()
			tuning.BendingModel = BendPBD
			tuning.BendStiffness = 1
			tuning.Damping = 5

			r := elbow(tuning)
			Expect(r.RestAngle(0)).To(BeNumerically("~", math.Pi/2, 1e-12))

			r.SetReferenceAngle(0)
			for i := 0; i < 60; i++ {
				r.Step(1.0/60, 8, mgl64.Vec2{})
			}

			Expect(math.Abs(r.BendAngle(0))).To(BeNumerically("<", 0.3))
		})
	})

	Context("compliant position-based", func() {
		It("settles to the reference angle under critical damping", func() {
			tuning := DefaultTuning()
			tuning.BendingModel = BendXPBD
			tuning.BendHertz = 2
			tuning.BendDamping = 1

			r := elbow(tuning)
			r.SetReferenceAngle(0)
			for i := 0; i < 240; i++ {
				r.Step(1.0/60, 8, mgl64.Vec2{})
			}

			Expect(math.Abs(r.BendAngle(0))).To(BeNumerically("<", 0.3))
		})

		It("resets its multipliers at the start of every step", func() {
			tuning := DefaultTuning()
			tuning.BendingModel = BendXPBD
			tuning.BendHertz = 2

			r := elbow(tuning)
			r.SetReferenceAngle(0)

			r.Step(1.0/60, 8, mgl64.Vec2{})
			Expect(r.lambdas[0]).NotTo(BeZero())

			// A step with no solver sweeps still performs the reset.
			r.Step(1.0/60, 0, mgl64.Vec2{})
			Expect(r.lambdas[0]).To(BeZero())
		})
	})

	Context("continuous force", func() {
		It("turns the chain toward the reference angle via velocities", func() {
			tuning := DefaultTuning()
			tuning.BendingModel = BendSpring
			tuning.BendHertz = 1
			tuning.BendDamping = 0.7

			r := elbow(tuning)
			r.SetReferenceAngle(0)

			start := r.BendAngle(0)
			for i := 0; i < 240; i++ {
				r.Step(1.0/60, 4, mgl64.Vec2{})
			}

			Expect(math.Abs(r.BendAngle(0))).To(BeNumerically("<", math.Abs(start)))
			Expect(math.Abs(r.BendAngle(0))).To(BeNumerically("<", 0.5))
		})
	})

	Context("disabled", func() {
		It("leaves bend angles to the stretch solver alone", func() {
			tuning := DefaultTuning()
			tuning.BendingModel = BendNone

			r := elbow(tuning)
			r.SetReferenceAngle(0)
			before := r.BendAngle(0)

			// No gravity, no bend solver: nothing disturbs the shape.
			r.Step(1.0/60, 8, mgl64.Vec2{})
			Expect(r.BendAngle(0)).To(BeNumerically("~", before, 1e-12))
		})
	})
})
