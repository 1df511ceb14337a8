package zplot

import "testing"

func TestProjection_Project(t *testing.T) {
	var zero Mat4
	nearEye := Identity4()
	nearEye[15] = 1e-10

	persp := Identity4()
	persp[11] = 1 // w = z + 1
	persp[15] = 1

	tests := []struct {
		name string
		p    Projection
		v    Vec3
		want Point
	}{
		{"none is top-down", NoProjection(), V3(3, -4, 99), Point{3, -4}},
		{"zero value is top-down", Projection{}, V3(1, 2, 3), Point{1, 2}},
		{"identity", MatrixProjection(Identity4()), V3(3, -4, 99), Point{3, -4}},
		{"tilted", MatrixProjection(tilted()), V3(1, 2, 4), Point{1, 4}},
		{"perspective divide", MatrixProjection(persp), V3(4, 6, 1), Point{2, 3}},
		{"zero matrix is degenerate", MatrixProjection(zero), V3(1, 2, 3), Point{0, 0}},
		{"near eye plane is degenerate", MatrixProjection(nearEye), V3(0, 0, 0), Point{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Project(tt.v); got != tt.want {
				t.Errorf("Project(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestProjection_Matrix(t *testing.T) {
	if _, ok := NoProjection().Matrix(); ok {
		t.Error("NoProjection().Matrix() reported a matrix")
	}
	m, ok := MatrixProjection(tilted()).Matrix()
	if !ok || m != tilted() {
		t.Errorf("MatrixProjection(tilted).Matrix() = %v, %v", m, ok)
	}
}
