package math

import "math"

// Vec2 is a 2D vector used for texture coordinates.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// BitsEqual reports whether v and other have identical bit patterns.
func (v Vec2) BitsEqual(other Vec2) bool {
	return math.Float32bits(v.X) == math.Float32bits(other.X) &&
		math.Float32bits(v.Y) == math.Float32bits(other.Y)
}
