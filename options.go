package zplot

import (
	"log/slog"

	"github.com/gogpu/zplot/expr"
)

// EngineOption configures an Engine during creation.
//
// Example:
//
//	eng := zplot.NewEngine(
//	    zplot.WithFormula("x * y"),
//	    zplot.WithLogger(slog.Default()),
//	)
type EngineOption func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	formula string
	step    float64
	ctx     *SamplingContext
	logger  *slog.Logger
	parser  *expr.Cache
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		logger: nil, // falls back to the package logger on every call
	}
}

// WithFormula sets the initial formula. A formula that fails to parse is
// logged and ignored, leaving the engine without an expression; use
// UpdateFormula to observe the error.
func WithFormula(text string) EngineOption {
	return func(o *engineOptions) {
		o.formula = text
	}
}

// WithStep sets an initial lattice step override for the fixed-grid
// fallback. Non-positive values are ignored.
func WithStep(step float64) EngineOption {
	return func(o *engineOptions) {
		o.step = step
	}
}

// WithSamplingContext starts the engine in adaptive mode. An invalid
// context is logged and ignored.
func WithSamplingContext(ctx SamplingContext) EngineOption {
	return func(o *engineOptions) {
		o.ctx = &ctx
	}
}

// WithLogger sets a logger for this engine instead of the package-wide
// logger returned by Logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = l
	}
}

// WithParseCache makes the engine parse formulas through c. Sessions that
// share c skip re-parsing formulas already seen by any of them.
func WithParseCache(c *expr.Cache) EngineOption {
	return func(o *engineOptions) {
		o.parser = c
	}
}

