// Package gesture defines the contract between touch input and the motion
// core. Recognition itself happens elsewhere; the core only sees a stream of
// samples per recognizer.
package gesture

import (
	"fmt"

	"github.com/zeusync/motion/internal/core/geometry"
	"github.com/zeusync/motion/internal/core/stream"
)

type Phase uint8

const (
	PhasePossible Phase = iota
	PhaseBegan
	PhaseChanged
	PhaseEnded
	PhaseCancelled
)

var phaseNames = [...]string{"possible", "began", "changed", "ended", "cancelled"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(s string) (Phase, error) {
	for i, name := range phaseNames {
		if name == s {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPhase, s)
}

// Active reports whether a gesture in this phase is live.
func (p Phase) Active() bool { return p == PhaseBegan || p == PhaseChanged }

// Terminal reports whether this phase ends a gesture lifetime.
func (p Phase) Terminal() bool { return p == PhaseEnded || p == PhaseCancelled }

// Sample is one frame of gesture state. Translation is cumulative since the
// gesture began.
type Sample struct {
	Phase       Phase
	Translation geometry.Point
	Velocity    geometry.Point
}

// Recognizer is a source of gesture samples. Each lifetime is a finite run of
// began, changed... followed by exactly one ended or cancelled sample.
type Recognizer interface {
	ID() string
	// Kind is a free-form classifier such as "pan" or "tap".
	Kind() string
	Samples() stream.Observable[Sample]
}

// Live reports whether r's latest sample belongs to an active gesture.
func Live(r Recognizer) bool {
	s, ok := r.Samples().Latest()
	return ok && s.Phase.Active()
}

// FirstLive returns the first live recognizer in priority order.
func FirstLive(rs []Recognizer) (Recognizer, bool) {
	for _, r := range rs {
		if r != nil && Live(r) {
			return r, true
		}
	}
	return nil, false
}

// LivePans keeps the pan recognizers that are currently live, in order.
func LivePans(rs []Recognizer) []Recognizer {
	out := make([]Recognizer, 0, len(rs))
	for _, r := range rs {
		if r != nil && r.Kind() == KindPan && Live(r) {
			out = append(out, r)
		}
	}
	return out
}
