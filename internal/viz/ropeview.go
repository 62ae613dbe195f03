package viz

import "github.com/go-gl/mathgl/mgl64"

// RopeView projects world coordinates onto a Canvas and implements
// rope.Drawer. The view is centered on a world point and spans a fixed
// world height; x scales the same as y so shapes keep their aspect.
type RopeView struct {
	Canvas *Canvas

	center      mgl64.Vec2
	worldHeight float64
}

func NewRopeView(width, height int, center mgl64.Vec2, worldHeight float64) *RopeView {
	if worldHeight <= 0 {
		worldHeight = 1
	}
	return &RopeView{
		Canvas:      NewCanvas(width, height),
		center:      center,
		worldHeight: worldHeight,
	}
}

func (v *RopeView) project(p mgl64.Vec2) (int, int) {
	pxHeight := float64(v.Canvas.Height * 4)
	scale := pxHeight / v.worldHeight

	// Terminal cells are roughly twice as tall as wide; braille dots are
	// 2x4 per cell, which evens that back out.
	x := (p.X()-v.center.X())*scale + float64(v.Canvas.Width*2)/2
	y := pxHeight/2 - (p.Y()-v.center.Y())*scale
	return int(x), int(y)
}

// Segment draws a rope segment. Part of rope.Drawer.
func (v *RopeView) Segment(a, b mgl64.Vec2) {
	ax, ay := v.project(a)
	bx, by := v.project(b)
	v.Canvas.DrawLine(ax, ay, bx, by)
}

// Point marks a particle, distinguishing pinned from dynamic. Part of
// rope.Drawer.
func (v *RopeView) Point(p mgl64.Vec2, pinned bool) {
	x, y := v.project(p)
	if pinned {
		v.Canvas.Mark(x, y, '●')
	} else {
		v.Canvas.Mark(x, y, '○')
	}
}
