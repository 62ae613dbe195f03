package rope

import "github.com/go-gl/mathgl/mgl64"

// cross is the 2D scalar cross product a.x*b.y - a.y*b.x.
func cross(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// skew rotates v counter-clockwise by 90 degrees.
func skew(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v.Y(), v.X()}
}
