package runner

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Fixed keeps the anchor at a constant offset.
func Fixed(offset mgl64.Vec2) AnchorPath {
	return func(float64) mgl64.Vec2 { return offset }
}

// Sway oscillates the anchor horizontally with the given amplitude and
// frequency.
func Sway(amplitude, hz float64) AnchorPath {
	omega := 2 * math.Pi * hz
	return func(t float64) mgl64.Vec2 {
		return mgl64.Vec2{amplitude * math.Sin(omega*t), 0}
	}
}

// Circle moves the anchor on a circle of the given radius, starting at the
// rightmost point.
func Circle(radius, hz float64) AnchorPath {
	omega := 2 * math.Pi * hz
	return func(t float64) mgl64.Vec2 {
		return mgl64.Vec2{radius * math.Cos(omega*t), radius * math.Sin(omega*t)}
	}
}
