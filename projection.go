package zplot

import "math"

// degenerateW is the |w| below which a projected point is treated as lying
// on the eye plane.
const degenerateW = 1e-9

// Projection maps world points to 2D screen space for error estimation.
// The zero value has no matrix and projects orthographically top-down.
type Projection struct {
	m   Mat4
	set bool
}

// NoProjection returns the identity fallback projection.
func NoProjection() Projection {
	return Projection{}
}

// MatrixProjection returns a projection using a column-major combined
// view-projection matrix.
func MatrixProjection(m Mat4) Projection {
	return Projection{m: m, set: true}
}

// Matrix returns the matrix and true, or false for the fallback projection.
func (p Projection) Matrix() (Mat4, bool) {
	return p.m, p.set
}

// Project returns the perspective-divided screen position of v.
//
// Without a matrix it returns (v.X, v.Y). When |w| < 1e-9 it returns the
// origin, which loses all information for geometry near the eye plane but
// keeps the error metric finite.
func (p Projection) Project(v Vec3) Point {
	if !p.set {
		return Point{X: v.X, Y: v.Y}
	}
	x, y, w := p.m.Transform(v)
	if math.Abs(w) < degenerateW {
		return Point{}
	}
	return Point{X: x / w, Y: y / w}
}
