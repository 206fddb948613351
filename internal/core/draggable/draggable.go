// Package draggable binds a single live gesture to a position stream.
//
// An Adapter is offered candidate recognizers in priority order. It binds at
// most one gesture at a time: the first live candidate when candidates are
// attached, or afterwards whichever candidate next reports an active sample
// while the adapter is free. Samples from every other candidate are ignored
// until the bound gesture ends or is cancelled. Ignoring them is the policy,
// not an error.
package draggable

import (
	"github.com/zeusync/motion/internal/core/geometry"
	"github.com/zeusync/motion/internal/core/gesture"
	"github.com/zeusync/motion/internal/core/observability/log"
	"github.com/zeusync/motion/internal/core/stream"
)

// Release is emitted exactly once when the bound gesture terminates.
type Release struct {
	Gesture   string
	Velocity  geometry.Point
	Cancelled bool
}

type Adapter struct {
	graph     *stream.Graph
	target    *stream.Value[geometry.Point]
	perimeter *geometry.Perimeter
	enabled   bool
	logger    log.Log

	candidates []gesture.Recognizer
	bag        *stream.Bag

	bound    gesture.Recognizer
	pos      geometry.Point
	lastMove geometry.Point

	bindings *stream.Event[string]
	samples  *stream.Event[gesture.Sample]
	releases *stream.Event[Release]
}

type Option func(*Adapter)

func WithPerimeter(r geometry.Rect) Option {
	return func(a *Adapter) { a.SetPerimeter(&r) }
}

func WithLogger(l log.Log) Option {
	return func(a *Adapter) { a.logger = l }
}

// New creates an adapter that writes drag motion into target.
func New(target *stream.Value[geometry.Point], opts ...Option) *Adapter {
	g := target.Graph()
	a := &Adapter{
		graph:    g,
		target:   target,
		enabled:  true,
		logger:   log.NewNop(),
		bag:      stream.NewBag(g),
		bindings: stream.NewEvent[string](g),
		samples:  stream.NewEvent[gesture.Sample](g),
		releases: stream.NewEvent[Release](g),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Attach offers candidates, highest priority first. If the adapter is free,
// the first candidate that is live right now is bound immediately.
func (a *Adapter) Attach(candidates ...gesture.Recognizer) {
	for _, r := range candidates {
		if r == nil {
			continue
		}
		a.candidates = append(a.candidates, r)
		a.bag.Add(r.Samples().Subscribe(func(s gesture.Sample) { a.handle(r, s) }))
	}
	if a.bound != nil || !a.enabled {
		return
	}
	if r, ok := gesture.FirstLive(candidates); ok {
		s, _ := r.Samples().Latest()
		a.bind(r, s)
	}
}

// Bound returns the gesture currently driving the target, if any.
func (a *Adapter) Bound() (gesture.Recognizer, bool) {
	return a.bound, a.bound != nil
}

func (a *Adapter) Candidates() []gesture.Recognizer {
	return a.candidates
}

// SetEnabled controls whether new gestures may bind. A gesture that is already
// bound keeps driving until it ends.
func (a *Adapter) SetEnabled(enabled bool) { a.enabled = enabled }

// SetPerimeter limits drag travel to r; nil removes the limit.
func (a *Adapter) SetPerimeter(r *geometry.Rect) {
	if r == nil {
		a.perimeter = nil
		return
	}
	a.perimeter = &geometry.Perimeter{Bounds: *r}
}

// Bindings emits the id of each gesture as it binds, before its first move.
func (a *Adapter) Bindings() stream.Observable[string] { return a.bindings }

// Samples relays the samples of the bound gesture only.
func (a *Adapter) Samples() stream.Observable[gesture.Sample] { return a.samples }

func (a *Adapter) Releases() stream.Observable[Release] { return a.releases }

// Detach drops every candidate without emitting a release.
func (a *Adapter) Detach() {
	a.bag.Dispose()
	a.graph.Do(func() {
		a.candidates = nil
		a.bound = nil
	})
}

func (a *Adapter) handle(r gesture.Recognizer, s gesture.Sample) {
	if a.bound == nil {
		if !a.enabled || !s.Phase.Active() {
			return
		}
		a.bind(r, s)
	}
	if a.bound != r {
		if s.Phase == gesture.PhaseBegan {
			a.logger.Debug("gesture ignored while another is bound",
				log.String("gesture", r.ID()), log.String("bound", a.bound.ID()))
		}
		return
	}

	a.move(s)
	a.samples.Emit(s)
	if s.Phase.Terminal() {
		a.release(r, s)
	}
}

func (a *Adapter) bind(r gesture.Recognizer, s gesture.Sample) {
	a.bound = r
	a.pos = a.target.Get()
	a.lastMove = s.Translation
	a.logger.Debug("gesture bound",
		log.String("gesture", r.ID()), log.Stringer("phase", s.Phase), log.Point("origin", a.pos.X(), a.pos.Y()))
	a.bindings.Emit(r.ID())
}

func (a *Adapter) move(s gesture.Sample) {
	delta := s.Translation.Sub(a.lastMove)
	a.lastMove = s.Translation
	if delta == (geometry.Point{}) && s.Phase != gesture.PhaseChanged {
		return
	}
	if a.perimeter != nil {
		a.pos = a.perimeter.Step(a.pos, delta)
	} else {
		a.pos = a.pos.Add(delta)
	}
	a.target.Set(a.pos)
}

func (a *Adapter) release(r gesture.Recognizer, s gesture.Sample) {
	rel := Release{Gesture: r.ID(), Cancelled: s.Phase == gesture.PhaseCancelled}
	if !rel.Cancelled {
		rel.Velocity = s.Velocity
	}
	a.bound = nil
	a.logger.Debug("gesture released",
		log.String("gesture", r.ID()), log.Bool("cancelled", rel.Cancelled),
		log.Point("velocity", rel.Velocity.X(), rel.Velocity.Y()))
	a.releases.Emit(rel)
}
