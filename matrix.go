package zplot

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f32"
)

// Mat4 is a 4x4 matrix in column-major order, the layout used by WebGPU
// and OpenGL uniforms:
//
//	| m0  m4  m8   m12 |
//	| m1  m5  m9   m13 |
//	| m2  m6  m10  m14 |
//	| m3  m7  m11  m15 |
//
// Element (row r, column c) is m[4*c + r].
type Mat4 [16]float64

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4FromSlice builds a matrix from 16 column-major values.
func Mat4FromSlice[T float32 | float64](s []T) (Mat4, error) {
	var m Mat4
	if len(s) != 16 {
		return m, fmt.Errorf("zplot: matrix needs 16 values, got %d", len(s))
	}
	for i, v := range s {
		m[i] = float64(v)
	}
	return m, nil
}

// Mat4FromRowMajor converts a row-major f32.Mat4, as held by renderers
// built on golang.org/x/image/math/f32, into column-major form.
func Mat4FromRowMajor(r f32.Mat4) Mat4 {
	var m Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m[4*col+row] = float64(r[4*row+col])
		}
	}
	return m
}

// Mul returns m * o, so o is applied to a point first.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var s float64
			for k := 0; k < 4; k++ {
				s += m[4*k+r] * o[4*c+k]
			}
			out[4*c+r] = s
		}
	}
	return out
}

// Transform applies the matrix to the homogeneous point (v, 1) and returns
// the clip-space x, y and w components.
func (m Mat4) Transform(v Vec3) (x, y, w float64) {
	x = m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]
	y = m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]
	w = m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	return x, y, w
}

// Perspective creates a right-handed perspective projection with a depth
// range of [0, 1]. fovY is in radians.
func Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovY/2)
	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (near - far)
	m[11] = -1
	m[14] = near * far / (near - far)
	return m
}

// LookAt creates a right-handed view matrix looking from eye towards
// target with the given up direction.
func LookAt(eye, target, up Vec3) Mat4 {
	f := normalize3(sub3(target, eye))
	s := normalize3(cross3(f, up))
	u := cross3(s, f)
	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-dot3(s, eye), -dot3(u, eye), dot3(f, eye), 1,
	}
}

func sub3(a, b Vec3) Vec3 { return Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z} }

func dot3(a, b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func cross3(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func normalize3(v Vec3) Vec3 {
	l := math.Sqrt(dot3(v, v))
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}
