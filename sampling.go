package zplot

import (
	"fmt"
	"math"
)

// SubdivisionLimits bounds the adaptive recursion.
type SubdivisionLimits struct {
	// MaxDepth is the hard recursion ceiling. Zero means the root quad is
	// always a leaf.
	MaxDepth int

	// MinStep forces a single-point leaf once a quad is narrower than this.
	MinStep float64
}

// SamplingContext describes the camera the surface will be viewed through
// and how closely the emitted mesh must follow the true surface on screen.
type SamplingContext struct {
	Projection Projection

	// Tolerance is the largest accepted distance, in projected units,
	// between a quad's projected centre and the midpoint of its projected
	// diagonal.
	Tolerance float64

	Limits SubdivisionLimits
}

// Validate checks the context against the engine's requirements.
func (c SamplingContext) Validate() error {
	switch {
	case math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) || c.Tolerance < 0:
		return fmt.Errorf("%w: tolerance %v must be finite and >= 0", ErrInvalidContext, c.Tolerance)
	case c.Limits.MaxDepth < 0:
		return fmt.Errorf("%w: max depth %d must be >= 0", ErrInvalidContext, c.Limits.MaxDepth)
	case !validPositive(c.Limits.MinStep):
		return fmt.Errorf("%w: min step %v must be finite and > 0", ErrInvalidContext, c.Limits.MinStep)
	}
	return nil
}
