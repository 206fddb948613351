package toss

import "errors"

var (
	// Configuration errors, returned by Bind.

	ErrCoincidentRestPositions = errors.New("back and fore positions are equal")
	ErrNonFiniteRestPosition   = errors.New("rest position is not finite")
	ErrInvalidStiffness        = errors.New("stiffness must be positive")
	ErrInvalidDamping          = errors.New("damping must be positive")
	ErrInvalidEpsilon          = errors.New("epsilon must be positive")
	ErrInvalidMaxTicks         = errors.New("max ticks must not be negative")

	// Lifecycle errors

	ErrNotSettled = errors.New("toss has not settled")
	ErrTornDown   = errors.New("toss was torn down")

	// ErrNonFinitePosition is the panic value (wrapped) when a non-finite
	// position reaches the sink. It indicates a broken invariant upstream.
	ErrNonFinitePosition = errors.New("non-finite position written to sink")
)
