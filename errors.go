package zplot

import "errors"

var (
	// ErrInvalidScale is returned by UpdateScale for zero, negative or
	// non-finite factors.
	ErrInvalidScale = errors.New("zplot: scale factor must be finite and positive")

	// ErrInvalidStep is returned by SetStep for zero, negative or
	// non-finite steps, and for steps too fine for the current domain.
	ErrInvalidStep = errors.New("zplot: step must be finite and positive")

	// ErrInvalidContext is returned by UpdateSamplingContext when the
	// tolerance or limits are out of range.
	ErrInvalidContext = errors.New("zplot: invalid sampling context")
)
