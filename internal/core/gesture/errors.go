package gesture

import "errors"

var (
	ErrUnknownPhase    = errors.New("unknown gesture phase")
	ErrNotActive       = errors.New("gesture is not active")
	ErrAlreadyActive   = errors.New("gesture is already active")
	ErrUnknownGesture  = errors.New("unknown gesture")
	ErrNonFiniteSample = errors.New("gesture sample is not finite")
)
