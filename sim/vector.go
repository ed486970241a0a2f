package sim

import "math"

// Vec2 is a 2-D point or direction in world space. The world spans the
// unit square, so coordinates normally live in [0, 1).
type Vec2 struct {
	X float32
	Y float32
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Length returns the Euclidean norm.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Distance returns the Euclidean distance to o.
func (v Vec2) Distance(o Vec2) float32 {
	return v.Sub(o).Length()
}

func (v Vec2) Dot(o Vec2) float32 { return v.X*o.X + v.Y*o.Y }

// Normalize returns the unit vector in v's direction, or the zero vector
// when v has no length.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return v.Scale(1 / l)
}

// Rotate returns v rotated counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float32) Vec2 {
	sin, cos := math.Sincos(float64(angle))
	s, c := float32(sin), float32(cos)
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// Bearing returns the angle from the +Y axis to v. Vision cells index off
// this convention.
func (v Vec2) Bearing() float32 {
	return float32(math.Atan2(float64(v.X), float64(v.Y)))
}

// Heading converts an angle from the +X axis into a unit direction.
func Heading(angle float32) Vec2 {
	sin, cos := math.Sincos(float64(angle))
	return Vec2{X: float32(cos), Y: float32(sin)}
}
