package zplot

import "github.com/gogpu/gputypes"

// vertexStride is the size in bytes of one xyz float32 position.
const vertexStride = 12

// Grid is the result of one computation.
//
// The topology tells the renderer how to read Vertices:
//   - PrimitiveTopologyPointList: the fixed-grid fallback; every xyz triple
//     is an independent point.
//   - PrimitiveTopologyTriangleList: adaptive mode; every nine values form
//     one triangle. Points then holds the centre samples of quads that hit
//     the minimum step, which are not part of any triangle.
//
// All coordinates lie within the visual cube. The slices are owned by the
// caller; the engine never touches them after returning.
type Grid struct {
	Topology gputypes.PrimitiveTopology
	Vertices []float32
	Points   []float32
}

// Adaptive reports whether the grid was produced by the adaptive sampler.
func (g Grid) Adaptive() bool {
	return g.Topology == gputypes.PrimitiveTopologyTriangleList
}

// VertexCount returns the number of xyz triples in Vertices.
func (g Grid) VertexCount() int {
	return len(g.Vertices) / 3
}

// PrimitiveCount returns the number of triangles for adaptive grids and the
// number of points for fixed grids.
func (g Grid) PrimitiveCount() int {
	if g.Adaptive() {
		return len(g.Vertices) / 9
	}
	return g.VertexCount()
}

// Empty reports whether the grid carries no geometry at all.
func (g Grid) Empty() bool {
	return len(g.Vertices) == 0 && len(g.Points) == 0
}

// Flat returns a single float32 sequence: Vertices followed by Points.
// This is the untagged buffer layout; consumers relying on it must know
// which mode produced the grid.
func (g Grid) Flat() []float32 {
	if len(g.Points) == 0 {
		return g.Vertices
	}
	out := make([]float32, 0, len(g.Vertices)+len(g.Points))
	out = append(out, g.Vertices...)
	return append(out, g.Points...)
}

// VertexLayout describes the buffer for a render pipeline: one Float32x3
// position at shader location 0.
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0}, // position
			},
		},
	}
}
