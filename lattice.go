package zplot

import "math"

// stepEpsilon absorbs rounding when a step override divides the domain
// width almost exactly.
const stepEpsilon = 1e-9

// latticeAxis returns the coordinates of the lattice lines along r.
// Without a usable step override the last line is pinned to r.Max.
func latticeAxis(r Range, step float64) []float64 {
	if n, ok := stepLines(r, step); ok {
		out := make([]float64, n)
		for i := range out {
			out[i] = r.Min + float64(i)*step
		}
		return out
	}
	step = r.Width() / FixedResolution
	out := make([]float64, FixedResolution+1)
	for i := range FixedResolution {
		out[i] = r.Min + float64(i)*step
	}
	out[FixedResolution] = r.Max
	return out
}

// stepLines returns the number of lines step places along r, and false
// when step is unset or would exceed MaxLatticeLines.
func stepLines(r Range, step float64) (int, bool) {
	if step <= 0 {
		return 0, false
	}
	n := math.Floor(r.Width()/step + stepEpsilon)
	if !(n < MaxLatticeLines) {
		return 0, false
	}
	return int(n) + 1, true
}

// SampleLattice evaluates surface on a regular lattice over space and
// returns the zoom-scaled points, x outer and y inner.
//
// With space.Step == 0 each axis is split into FixedResolution equal
// parts. Otherwise lattice lines are placed every space.Step units from
// the range minimum, unless that needs more than MaxLatticeLines lines. Points outside the visual cube, including NaN and
// infinite results, are dropped one by one.
func SampleLattice(surface Surface, space CoordinateSpace, zoom float64) []float32 {
	xs := latticeAxis(space.X, space.Step)
	ys := latticeAxis(space.Y, space.Step)

	out := make([]float32, 0, len(xs)*len(ys)*3)
	for _, x := range xs {
		for _, y := range ys {
			p := Vec3{X: x, Y: y, Z: surface.Eval(x, y)}.Mul(zoom)
			if !inVisualCube(p) {
				continue
			}
			out = appendVec3(out, p)
		}
	}
	return out
}
