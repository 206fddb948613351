package transition

import "errors"

var (
	ErrUnknownKind     = errors.New("unknown transition kind")
	ErrMissingHook     = errors.New("capability declared without its hook")
	ErrUnexpectedHook  = errors.New("hook provided without its capability")
	ErrInvalidContext  = errors.New("invalid transition context")
	ErrFallbackLoop    = errors.New("fallback did not resolve to a concrete transition")
	ErrRuntimeTornDown = errors.New("runtime is torn down")
	ErrNonInteractive  = errors.New("transition does not support this direction")
)
