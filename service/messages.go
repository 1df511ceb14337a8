package service

import (
	"golang.org/x/image/math/f32"

	"github.com/gogpu/zplot"
)

// Message is an inbound update. It is implemented by Init, FormulaChanged,
// ScaleChanged and SamplingContextUpdated.
type Message interface {
	kind() string
}

// Init resets the engine to its initial state. It emits no grid.
type Init struct{}

func (Init) kind() string { return "init" }

// FormulaChanged carries new formula text from the input collaborator.
type FormulaChanged struct {
	Expression string
}

func (FormulaChanged) kind() string { return "formula" }

// ScaleChanged carries a multiplicative zoom factor.
type ScaleChanged struct {
	Factor float64
}

func (ScaleChanged) kind() string { return "scale" }

// SamplingContextUpdated is sent by the renderer whenever its combined
// view-projection changes, including on resize and rotation.
type SamplingContextUpdated struct {
	// Projection is the column-major view-projection matrix, or nil for
	// the top-down fallback.
	Projection *[16]float32
	// RowMajor is the same matrix in row-major f32.Mat4 form. It takes
	// precedence over Projection when both are set.
	RowMajor   *f32.Mat4
	Tolerance  float64
	Limits     zplot.SubdivisionLimits
}

func (SamplingContextUpdated) kind() string { return "sampling_context" }

// context converts the message into an engine sampling context.
func (m SamplingContextUpdated) context() zplot.SamplingContext {
	proj := zplot.NoProjection()
	switch {
	case m.RowMajor != nil:
		proj = zplot.MatrixProjection(zplot.Mat4FromRowMajor(*m.RowMajor))
	case m.Projection != nil:
		// Length is fixed at 16, so the conversion cannot fail.
		mat, _ := zplot.Mat4FromSlice(m.Projection[:])
		proj = zplot.MatrixProjection(mat)
	}
	return zplot.SamplingContext{
		Projection: proj,
		Tolerance:  m.Tolerance,
		Limits:     m.Limits,
	}
}

// GridUpdated is the outbound notification carrying a freshly computed
// grid. Ownership of Grid passes to the receiver.
type GridUpdated struct {
	// Seq increases by one with every emitted grid, starting at 1.
	Seq  uint64
	Grid zplot.Grid
}
