// Package service connects a zplot.Engine to its collaborators.
//
// The input collaborator sends FormulaChanged and ScaleChanged, the
// renderer sends SamplingContextUpdated, and every accepted update yields a
// GridUpdated carrying a full recompute. Handle is synchronous: transports
// that move messages between threads or workers call it from the one
// goroutine that owns the Service.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/zplot"
)

// ErrNilMessage is returned by Handle for a nil message.
var ErrNilMessage = errors.New("service: nil message")

// Option configures a Service during creation.
type Option func(*options)

type options struct {
	engineOpts []zplot.EngineOption
	registerer prometheus.Registerer
	logger     *slog.Logger
}

// WithEngineOptions passes options to the underlying engine.
func WithEngineOptions(opts ...zplot.EngineOption) Option {
	return func(o *options) {
		o.engineOpts = append(o.engineOpts, opts...)
	}
}

// WithRegisterer registers the service metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithLogger sets the logger for the service and its engine.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Service applies inbound messages to one engine and produces grids.
// It is not safe for concurrent use.
type Service struct {
	engine  *zplot.Engine
	metrics *Metrics
	logger  *slog.Logger
	seq     uint64
}

// New creates a Service with a fresh engine.
func New(opts ...Option) *Service {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	engineOpts := o.engineOpts
	if o.logger != nil {
		engineOpts = append(engineOpts, zplot.WithLogger(o.logger))
	}
	return &Service{
		engine:  zplot.NewEngine(engineOpts...),
		metrics: NewMetrics(o.registerer),
		logger:  o.logger,
	}
}

// Engine returns the engine owned by the service.
func (s *Service) Engine() *zplot.Engine {
	return s.engine
}

func (s *Service) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return zplot.Logger()
}

// Handle applies msg and, unless msg is Init, recomputes the grid.
//
// A rejected update returns its error and no grid; the engine keeps the
// state it had before the message, so the last valid surface can still be
// computed.
func (s *Service) Handle(msg Message) (*GridUpdated, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}
	kind := msg.kind()

	var err error
	switch m := msg.(type) {
	case Init:
		s.engine.Reset()
		s.metrics.updates.WithLabelValues(kind).Inc()
		return nil, nil
	case FormulaChanged:
		err = s.engine.UpdateFormula(m.Expression)
	case ScaleChanged:
		err = s.engine.UpdateScale(m.Factor)
	case SamplingContextUpdated:
		err = s.engine.UpdateSamplingContext(m.context())
	default:
		err = fmt.Errorf("service: unsupported message %T", msg)
	}
	if err != nil {
		s.metrics.rejected.WithLabelValues(kind).Inc()
		return nil, err
	}
	s.metrics.updates.WithLabelValues(kind).Inc()

	return s.recompute(), nil
}

// Recompute emits the grid for the current state without applying an
// update, e.g. for a renderer that attaches after the first messages.
func (s *Service) Recompute() *GridUpdated {
	return s.recompute()
}

func (s *Service) recompute() *GridUpdated {
	start := time.Now()
	g := s.engine.ComputeGrid()
	elapsed := time.Since(start)

	mode := "points"
	if g.Adaptive() {
		mode = "triangles"
	}
	s.metrics.compute.Observe(elapsed.Seconds())
	s.metrics.vertices.WithLabelValues(mode).Observe(float64(g.VertexCount()))

	s.seq++
	s.log().Debug("service: grid updated",
		"seq", s.seq,
		"mode", mode,
		"vertices", g.VertexCount(),
		"points", len(g.Points)/3,
		"elapsed", elapsed)
	return &GridUpdated{Seq: s.seq, Grid: g}
}
