package gesture

import (
	"github.com/google/uuid"
	"github.com/zeusync/motion/internal/core/geometry"
	"github.com/zeusync/motion/internal/core/stream"
)

const KindPan = "pan"

// Pan is a recognizer driven by its host: whatever turns raw touches into pan
// updates calls Begin, Move and End. Samples go out on an Event stream, so
// the latest sample is available but never replayed to late subscribers.
type Pan struct {
	id      string
	samples *stream.Event[Sample]
	phase   Phase
	last    Sample
}

// NewPan creates a pan recognizer. An empty id gets a random one.
func NewPan(g *stream.Graph, id string) *Pan {
	if id == "" {
		id = uuid.NewString()
	}
	return &Pan{id: id, samples: stream.NewEvent[Sample](g)}
}

func (p *Pan) ID() string                         { return p.id }
func (p *Pan) Kind() string                       { return KindPan }
func (p *Pan) Samples() stream.Observable[Sample] { return p.samples }
func (p *Pan) Phase() Phase                       { return p.phase }

func (p *Pan) Begin() error {
	if p.phase.Active() {
		return ErrAlreadyActive
	}
	return p.emit(Sample{Phase: PhaseBegan})
}

// Move reports the cumulative translation and the current velocity.
func (p *Pan) Move(translation, velocity geometry.Point) error {
	if !p.phase.Active() {
		return ErrNotActive
	}
	return p.emit(Sample{Phase: PhaseChanged, Translation: translation, Velocity: velocity})
}

// End terminates the gesture with its release velocity.
func (p *Pan) End(velocity geometry.Point) error {
	if !p.phase.Active() {
		return ErrNotActive
	}
	return p.emit(Sample{Phase: PhaseEnded, Translation: p.last.Translation, Velocity: velocity})
}

func (p *Pan) Cancel() error {
	if !p.phase.Active() {
		return ErrNotActive
	}
	return p.emit(Sample{Phase: PhaseCancelled, Translation: p.last.Translation})
}

// Apply feeds a raw sample, enforcing the lifetime rules of Begin/Move/End.
func (p *Pan) Apply(s Sample) error {
	switch s.Phase {
	case PhaseBegan:
		return p.Begin()
	case PhaseChanged:
		return p.Move(s.Translation, s.Velocity)
	case PhaseEnded:
		return p.End(s.Velocity)
	case PhaseCancelled:
		return p.Cancel()
	default:
		return ErrUnknownPhase
	}
}

func (p *Pan) emit(s Sample) error {
	if !geometry.Finite(s.Translation) || !geometry.Finite(s.Velocity) {
		return ErrNonFiniteSample
	}
	p.phase = s.Phase
	p.last = s
	p.samples.Emit(s)
	return nil
}
