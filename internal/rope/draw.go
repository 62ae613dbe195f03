package rope

import "github.com/go-gl/mathgl/mgl64"

// Drawer receives the rope's shape as line segments plus per-particle
// markers. It is a pure output sink; implementations render however they
// like (terminal canvas, SVG, ...).
type Drawer interface {
	Segment(a, b mgl64.Vec2)
	Point(p mgl64.Vec2, pinned bool)
}

// Draw emits the chain's segments in order, then a marker per particle
// distinguishing pinned from dynamic.
func (r *Rope) Draw(d Drawer) {
	for i := 0; i < r.count-1; i++ {
		d.Segment(r.ps[i], r.ps[i+1])
	}
	for i := 0; i < r.count; i++ {
		d.Point(r.ps[i], r.Pinned(i))
	}
}
