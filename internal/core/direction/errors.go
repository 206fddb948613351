package direction

import "errors"

var (
	ErrInvalidDirection       = errors.New("invalid direction")
	ErrInvalidMinimumVelocity = errors.New("minimum velocity must be positive")
	ErrInvalidThreshold       = errors.New("position threshold must be finite")
)
