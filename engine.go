package zplot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/zplot/expr"
)

// Engine owns the state of one sampling session: the current expression,
// the accumulated zoom, the coordinate space and the optional sampling
// context. Every update replaces its field wholesale; ComputeGrid reads
// them all.
//
// Engine is not safe for concurrent use. Independent sessions use
// independent engines.
type Engine struct {
	expr   expr.Expr
	zoom   float64
	space  CoordinateSpace
	ctx    SamplingContext
	hasCtx bool

	logger *slog.Logger
	parser *expr.Cache
}

// NewEngine creates an engine at zoom 1 over [-BaseRange, BaseRange]² with
// no expression and no sampling context, then applies opts.
func NewEngine(opts ...EngineOption) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{logger: o.logger, parser: o.parser}
	e.Reset()

	if o.step > 0 {
		if err := e.SetStep(o.step); err != nil {
			e.log().Warn("zplot: ignoring initial step", "step", o.step, "err", err)
		}
	}
	if o.formula != "" {
		if err := e.UpdateFormula(o.formula); err != nil {
			e.log().Warn("zplot: ignoring initial formula", "err", err)
		}
	}
	if o.ctx != nil {
		if err := e.UpdateSamplingContext(*o.ctx); err != nil {
			e.log().Warn("zplot: ignoring initial sampling context", "err", err)
		}
	}
	return e
}

// Reset restores the freshly constructed state: zoom 1, default domain,
// no step override, no expression and no sampling context.
func (e *Engine) Reset() {
	e.expr = nil
	e.zoom = 1
	e.space = spaceForZoom(1, 0)
	e.ctx = SamplingContext{}
	e.hasCtx = false
}

func (e *Engine) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return Logger()
}

// UpdateFormula parses text and makes it the current expression.
// On failure it returns the *expr.ParseError and the previous expression
// stays in effect.
func (e *Engine) UpdateFormula(text string) error {
	parse := expr.Parse
	if e.parser != nil {
		parse = e.parser.Parse
	}
	parsed, err := parse(text)
	if err != nil {
		e.log().Warn("zplot: formula rejected", "formula", text, "err", err)
		return err
	}
	e.expr = parsed
	return nil
}

// Expression returns the current expression, or nil if none was accepted.
func (e *Engine) Expression() expr.Expr {
	return e.expr
}

// UpdateScale multiplies the accumulated zoom by factor and recomputes the
// domain as ±BaseRange/zoom. A factor above 1 zooms in.
func (e *Engine) UpdateScale(factor float64) error {
	if !validPositive(factor) {
		e.log().Warn("zplot: scale rejected", "factor", factor)
		return fmt.Errorf("%w: got %v", ErrInvalidScale, factor)
	}
	zoom := e.zoom * factor
	if !validPositive(zoom) {
		// Repeated extreme factors can overflow or underflow the product.
		e.log().Warn("zplot: scale rejected", "factor", factor, "zoom", zoom)
		return fmt.Errorf("%w: zoom %v out of range", ErrInvalidScale, zoom)
	}
	e.zoom = zoom
	e.space = spaceForZoom(zoom, e.space.Step)
	return nil
}

// Zoom returns the accumulated zoom multiplier.
func (e *Engine) Zoom() float64 {
	return e.zoom
}

// Space returns the current coordinate space.
func (e *Engine) Space() CoordinateSpace {
	return e.space
}

// SetStep overrides the lattice step of the fixed-grid fallback. A step
// that needs more than MaxLatticeLines lines over the current domain is
// rejected.
func (e *Engine) SetStep(step float64) error {
	if !validPositive(step) {
		return fmt.Errorf("%w: got %v", ErrInvalidStep, step)
	}
	if _, ok := stepLines(e.space.X, step); !ok {
		e.log().Warn("zplot: step rejected", "step", step, "width", e.space.X.Width())
		return fmt.Errorf("%w: %v needs more than %d lines over %v", ErrInvalidStep, step, MaxLatticeLines, e.space.X)
	}
	e.space.Step = step
	return nil
}

// UpdateSamplingContext validates ctx and makes it current, switching the
// engine to adaptive mode.
func (e *Engine) UpdateSamplingContext(ctx SamplingContext) error {
	if err := ctx.Validate(); err != nil {
		e.log().Warn("zplot: sampling context rejected", "err", err)
		return err
	}
	e.ctx = ctx
	e.hasCtx = true
	return nil
}

// ClearSamplingContext drops the sampling context, returning the engine to
// the fixed-grid fallback.
func (e *Engine) ClearSamplingContext() {
	e.ctx = SamplingContext{}
	e.hasCtx = false
}

// SamplingContext returns the current context and whether one is set.
func (e *Engine) SamplingContext() (SamplingContext, bool) {
	return e.ctx, e.hasCtx
}

// ComputeGrid samples the current expression.
//
// With a sampling context it runs the adaptive sampler and returns a
// triangle list; without one it returns the fixed-grid point cloud. With
// no expression the grid is empty but still carries the mode's topology.
func (e *Engine) ComputeGrid() Grid {
	if !e.hasCtx {
		g := Grid{Topology: gputypes.PrimitiveTopologyPointList}
		if e.expr == nil {
			return g
		}
		g.Vertices = SampleLattice(expr.Surface{Expr: e.expr}, e.space, e.zoom)
		e.log().Debug("zplot: fixed grid computed",
			"formula", e.expr.String(),
			"zoom", e.zoom,
			"points", g.VertexCount())
		return g
	}

	g := Grid{Topology: gputypes.PrimitiveTopologyTriangleList}
	if e.expr == nil {
		return g
	}
	s := adaptiveSampler{surface: expr.Surface{Expr: e.expr}, zoom: e.zoom, ctx: e.ctx}
	s.sampleQuad(e.space.X.Min, e.space.X.Max, e.space.Y.Min, e.space.Y.Max, 0)
	g.Vertices, g.Points = s.tris, s.points
	if log := e.log(); log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("zplot: adaptive grid computed",
			"formula", e.expr.String(),
			"zoom", e.zoom,
			"tolerance", e.ctx.Tolerance,
			"quads", s.stats.quads,
			"leaves", s.stats.leaves,
			"forced", s.stats.forced,
			"depth", s.stats.maxDepth,
			"culled", s.stats.culledTris,
			"triangles", g.PrimitiveCount())
	}
	return g
}
