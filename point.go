package zplot

import "math"

// Point is a 2D point in projected (screen) space.
type Point struct {
	X, Y float64
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return Point{X: (p.X + q.X) * 0.5, Y: (p.Y + q.Y) * 0.5}
}

// Vec3 is a point in world (visual) space.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Mul returns the vector scaled by a scalar.
func (v Vec3) Mul(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// InCube reports whether every coordinate satisfies |c| <= half.
// NaN and ±Inf coordinates are always outside.
func (v Vec3) InCube(half float64) bool {
	return math.Abs(v.X) <= half && math.Abs(v.Y) <= half && math.Abs(v.Z) <= half
}

// appendVec3 appends v as three float32 values.
func appendVec3(dst []float32, v Vec3) []float32 {
	return append(dst, float32(v.X), float32(v.Y), float32(v.Z))
}
