// Package metrics provides rope observables reduced over a run: constraint
// violation magnitudes and kinetic energy. Each metric implements the
// runner.Metric interface.
package metrics

import (
	"math"

	"github.com/san-kum/ropesim/internal/rope"
)

// StretchError tracks the worst relative rest-length violation seen over a
// run. 0 means every segment stayed at its rest length.
type StretchError struct {
	worst float64
}

func NewStretchError() *StretchError {
	return &StretchError{}
}

func (s *StretchError) Name() string { return "stretch_error" }

func (s *StretchError) Observe(r *rope.Rope, t float64) {
	for i := 0; i < r.StretchCount(); i++ {
		rest := r.RestLength(i)
		if rest == 0 {
			continue
		}
		l := r.Position(i + 1).Sub(r.Position(i)).Len()
		s.worst = math.Max(s.worst, math.Abs(l-rest)/rest)
	}
}

func (s *StretchError) Value() float64 {
	return s.worst
}

func (s *StretchError) Reset() {
	s.worst = 0
}

// Sample returns the current worst violation of a single rope state, without
// accumulating. Used by the live view for its sparkline.
func Sample(r *rope.Rope) float64 {
	var m StretchError
	m.Observe(r, 0)
	return m.Value()
}
