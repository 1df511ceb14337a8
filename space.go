package zplot

import "math"

const (
	// BaseRange is the half-width of the domain at zoom 1.
	BaseRange = 10.0

	// VisualBound is the half-extent of the visual cube. Emitted geometry
	// always lies within [-VisualBound, VisualBound] on every axis.
	VisualBound = 10.0

	// FixedResolution is the number of lattice subdivisions per axis used
	// by the fixed-grid fallback when no step override is set.
	FixedResolution = 20

	// MaxLatticeLines bounds the lattice lines per axis under a step
	// override. SetStep rejects finer steps, and a zoom that pushes an
	// accepted step past the bound falls back to FixedResolution.
	MaxLatticeLines = 1024

	// boundSlack absorbs rounding in (BaseRange/zoom)*zoom so that samples
	// on the domain edge stay inside the visual cube.
	boundSlack = 1e-9
)

// Range is a closed interval [Min, Max].
type Range struct {
	Min, Max float64
}

// Width returns Max - Min.
func (r Range) Width() float64 {
	return r.Max - r.Min
}

// symmetricRange returns [-half, half].
func symmetricRange(half float64) Range {
	return Range{Min: -half, Max: half}
}

// CoordinateSpace is the parameter domain sampled by the engine.
// Step is the lattice step override; zero means "derive from
// FixedResolution".
type CoordinateSpace struct {
	X, Y Range
	Step float64
}

// spaceForZoom returns the symmetric domain for the given zoom.
func spaceForZoom(zoom, step float64) CoordinateSpace {
	r := symmetricRange(BaseRange / zoom)
	return CoordinateSpace{X: r, Y: r, Step: step}
}

// inVisualCube reports whether v lies within the visual cube.
// NaN and infinite coordinates are always outside.
func inVisualCube(v Vec3) bool {
	return v.InCube(VisualBound + boundSlack)
}

// validPositive reports whether v is a finite value greater than zero.
func validPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
