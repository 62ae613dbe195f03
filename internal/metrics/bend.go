package metrics

import (
	"math"

	"github.com/san-kum/ropesim/internal/rope"
)

// BendDeviation tracks the worst absolute deviation of any bend angle from
// its rest angle, wrapped to the nearest representative.
type BendDeviation struct {
	worst float64
}

func NewBendDeviation() *BendDeviation {
	return &BendDeviation{}
}

func (b *BendDeviation) Name() string { return "bend_deviation" }

func (b *BendDeviation) Observe(r *rope.Rope, t float64) {
	for i := 0; i < r.BendCount(); i++ {
		d := r.BendAngle(i) - r.RestAngle(i)
		d = math.Atan2(math.Sin(d), math.Cos(d))
		b.worst = math.Max(b.worst, math.Abs(d))
	}
}

func (b *BendDeviation) Value() float64 {
	return b.worst
}

func (b *BendDeviation) Reset() {
	b.worst = 0
}
