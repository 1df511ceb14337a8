package zplot

// Surface evaluates z = f(x, y) in parameter space.
// expr.Surface and expr.Func implement it.
type Surface interface {
	Eval(x, y float64) float64
}

// samplerStats counts the work done by one adaptive pass.
type samplerStats struct {
	quads      int // quads visited
	leaves     int // quads that emitted triangles
	forced     int // quads that hit MinStep
	maxDepth   int // deepest level reached
	culledTris int // triangles dropped by the visual cube
}

// adaptiveSampler holds the inputs of one adaptive pass and accumulates its
// output. It is created per computation so no state leaks between calls.
type adaptiveSampler struct {
	surface Surface
	zoom    float64
	ctx     SamplingContext

	tris   []float32
	points []float32
	stats  samplerStats
}

// evalPoint evaluates the surface at (u, v) in parameter space and returns
// the zoom-scaled world point.
func (s *adaptiveSampler) evalPoint(u, v float64) Vec3 {
	z := s.surface.Eval(u, v)
	return Vec3{X: u * s.zoom, Y: v * s.zoom, Z: z * s.zoom}
}

// sampleQuad recursively refines [minX, maxX] x [minY, maxY] until the
// projected surface is flat within tolerance or a limit is reached.
// Children follow screen convention with y growing downwards: the minY
// half is the top.
func (s *adaptiveSampler) sampleQuad(minX, maxX, minY, maxY float64, depth int) {
	s.stats.quads++
	if depth > s.stats.maxDepth {
		s.stats.maxDepth = depth
	}

	midX := (minX + maxX) * 0.5
	midY := (minY + maxY) * 0.5

	if maxX-minX < s.ctx.Limits.MinStep {
		s.stats.forced++
		if c := s.evalPoint(midX, midY); inVisualCube(c) {
			s.points = appendVec3(s.points, c)
		}
		return
	}

	if depth < s.ctx.Limits.MaxDepth && s.diagonalError(minX, maxX, minY, maxY, midX, midY) > s.ctx.Tolerance {
		// Fixed order: top-left, top-right, bottom-left, bottom-right.
		s.sampleQuad(minX, midX, minY, midY, depth+1)
		s.sampleQuad(midX, maxX, minY, midY, depth+1)
		s.sampleQuad(minX, midX, midY, maxY, depth+1)
		s.sampleQuad(midX, maxX, midY, maxY, depth+1)
		return
	}

	s.emitLeaf(minX, maxX, minY, maxY)
}

// diagonalError is the projected distance between the quad centre and the
// midpoint of its projected main diagonal.
func (s *adaptiveSampler) diagonalError(minX, maxX, minY, maxY, midX, midY float64) float64 {
	proj := s.ctx.Projection
	p0 := proj.Project(s.evalPoint(minX, minY))
	p1 := proj.Project(s.evalPoint(maxX, maxY))
	pc := proj.Project(s.evalPoint(midX, midY))
	return pc.Distance(p0.Midpoint(p1))
}

// emitLeaf appends the two triangles of a leaf quad. A triangle with any
// vertex outside the visual cube is dropped whole.
func (s *adaptiveSampler) emitLeaf(minX, maxX, minY, maxY float64) {
	s.stats.leaves++
	p00 := s.evalPoint(minX, minY)
	p10 := s.evalPoint(maxX, minY)
	p01 := s.evalPoint(minX, maxY)
	p11 := s.evalPoint(maxX, maxY)
	s.emitTriangle(p00, p10, p01)
	s.emitTriangle(p10, p11, p01)
}

func (s *adaptiveSampler) emitTriangle(a, b, c Vec3) {
	if !inVisualCube(a) || !inVisualCube(b) || !inVisualCube(c) {
		s.stats.culledTris++
		return
	}
	s.tris = appendVec3(s.tris, a)
	s.tris = appendVec3(s.tris, b)
	s.tris = appendVec3(s.tris, c)
}

// SampleAdaptive runs the adaptive quadtree sampler over space and returns
// triangle vertices and forced-leaf points. ctx must be valid.
func SampleAdaptive(surface Surface, space CoordinateSpace, zoom float64, ctx SamplingContext) (tris, points []float32) {
	s := adaptiveSampler{surface: surface, zoom: zoom, ctx: ctx}
	s.sampleQuad(space.X.Min, space.X.Max, space.Y.Min, space.Y.Max, 0)
	return s.tris, s.points
}
