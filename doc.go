// Package zplot samples surfaces z = f(x, y) into vertex buffers ready for
// GPU upload.
//
// # Overview
//
// An Engine holds one sampling session: a parsed formula, an accumulated
// zoom, the coordinate space derived from it and an optional sampling
// context. ComputeGrid turns that state into a Grid of float32 (x, y, z)
// triples inside the visual cube [-10, 10]³.
//
// # Quick Start
//
//	eng := zplot.NewEngine(zplot.WithFormula("z = x * y / 10"))
//	g := eng.ComputeGrid()         // fixed 21x21 lattice, point list
//	buf := g.Flat()                // upload as vertex data
//	layout := zplot.VertexLayout() // one Float32x3 attribute
//
// # Modes
//
// Without a sampling context the engine evaluates a fixed lattice and emits
// a point list. With one, it runs an adaptive quadtree: each quad is split
// while the projected midpoint of its diagonal strays from the projected
// surface centre by more than the tolerance. Leaves become two triangles;
// quads narrower than the minimum step become single centre points.
//
// # Coordinate System
//
// The domain is [-10/zoom, 10/zoom]² and every emitted coordinate is
// multiplied by the zoom, so the visible region always maps onto the same
// cube. Matrices are column-major, as uploaded to the GPU. The fixed grid
// emits x outer and y inner; the adaptive sampler visits quadrants in
// top-left, top-right, bottom-left, bottom-right order.
//
// # Logging
//
// The package is silent by default. SetLogger installs an slog.Logger for
// debug statistics and warnings about rejected updates; WithLogger
// overrides it per engine.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Independent engines may run
// in parallel, and may share an expr.Cache.
package zplot
