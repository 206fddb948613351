package transition

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zeusync/motion/internal/core/direction"
	"github.com/zeusync/motion/internal/core/events/bus"
	"github.com/zeusync/motion/internal/core/observability/log"
	"github.com/zeusync/motion/internal/core/stream"
	"github.com/zeusync/motion/internal/core/toss"
)

// maxFallbacks bounds how many times a transition may hand over at begin.
const maxFallbacks = 4

// Runtime runs transitions on one stream graph. Like the graph it is driven
// from the frame loop and is not safe for concurrent use.
type Runtime struct {
	graph   *stream.Graph
	bus     bus.EventBus
	presets Presets
	logger  log.Log

	active     []*Active
	torn       bool
	deliveries *deliveryLog
}

type RuntimeOption func(*Runtime)

// WithBus publishes lifecycle events to b instead of a private bus.
func WithBus(b bus.EventBus) RuntimeOption {
	return func(r *Runtime) { r.bus = b }
}

func WithPresets(p Presets) RuntimeOption {
	return func(r *Runtime) { r.presets = p }
}

func WithRuntimeLogger(l log.Log) RuntimeOption {
	return func(r *Runtime) { r.logger = l }
}

func NewRuntime(g *stream.Graph, opts ...RuntimeOption) *Runtime {
	r := &Runtime{
		graph:   g,
		bus:     bus.New(),
		presets: DefaultPresets(),
		logger:  log.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.deliveries = &deliveryLog{logger: r.logger}
	r.bus.AddObserver(r.deliveries)
	return r
}

// deliveryLog traces lifecycle deliveries and keeps the bus collecting
// metrics for the teardown summary.
type deliveryLog struct {
	logger log.Log
}

func (*deliveryLog) OnPublish(bus.Event) {}

func (d *deliveryLog) OnDelivered(e bus.Event, handlers int, err error, took time.Duration) {
	d.logger.Debug("lifecycle delivered",
		log.String("event", string(e.Type)),
		log.String("transition", e.Transition),
		log.Int("handlers", handlers),
		log.Duration("took", took),
		log.Bool("failed", err != nil))
}

func (r *Runtime) Graph() *stream.Graph { return r.graph }

// Bus is where lifecycle events are published.
func (r *Runtime) Bus() bus.EventBus { return r.bus }

// Active is a running transition.
type Active struct {
	id         string
	requested  Kind
	transition Transition
	ctx        Context
	handle     *toss.Handle
	redirects  *stream.Subscription

	settled direction.Direction
	done    bool
}

func (a *Active) ID() string { return a.id }

// Kind is the kind actually running, after any fallback.
func (a *Active) Kind() Kind { return a.transition.Kind() }

// Requested is the kind passed to Begin.
func (a *Active) Requested() Kind { return a.requested }

func (a *Active) Handle() *toss.Handle { return a.handle }

func (a *Active) Context() Context { return a.ctx }

// Settled returns the direction the transition settled in, if it has.
func (a *Active) Settled() (direction.Direction, bool) { return a.settled, a.done }

// Completed reports whether the transition settled in its initial direction.
// A presentation dragged back, or a dismissal thrown back, did not complete.
func (a *Active) Completed() bool { return a.done && a.settled == a.ctx.Direction }

// Begin starts t. The view position is written to sink on every change.
func (r *Runtime) Begin(t Transition, ctx Context, sink toss.Sink) (*Active, error) {
	if r.torn {
		return nil, ErrRuntimeTornDown
	}
	if err := ctx.Validate(); err != nil {
		return nil, err
	}
	requested := t.Kind()
	t, err := r.resolve(t, ctx)
	if err != nil {
		return nil, err
	}

	if p, ok := t.(Presenter); ok && t.Capabilities().Has(Presentation) {
		ctx.ForeFrame = p.PresentedFrame(ctx.Container)
	}

	cfg := r.presets.For(t.Kind())
	plan, err := t.Plan(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a := &Active{id: uuid.NewString(), requested: requested, transition: t, ctx: ctx}
	logger := r.logger.With(log.String("transition", a.id), log.Stringer("kind", t.Kind()))

	opts := append(plan.options(), toss.WithConfig(cfg), toss.WithLogger(logger))
	if sink != nil {
		opts = append(opts, toss.WithSink(sink))
	}
	h, err := toss.Bind(r.graph, ctx.Direction, plan.Back, plan.Fore, opts...)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", t.Kind(), err)
	}
	a.handle = h

	h.OnSettled(func(d direction.Direction) { r.onSettled(a, logger, d) })

	last := ctx.Direction
	a.redirects = h.Direction().Subscribe(func(d direction.Direction) {
		if d == last || a.done {
			return
		}
		last = d
		r.publish(a, bus.TransitionRedirected, d, logger)
	})

	h.AttachGesture(plan.Gestures...)
	r.active = append(r.active, a)

	logger.Info("transition began",
		log.Stringer("direction", ctx.Direction),
		log.Int("gestures", len(plan.Gestures)))
	r.publish(a, bus.TransitionBegan, ctx.Direction, logger)
	return a, nil
}

func (r *Runtime) resolve(t Transition, ctx Context) (Transition, error) {
	for i := 0; i <= maxFallbacks; i++ {
		if err := Validate(t); err != nil {
			return nil, err
		}
		if !t.Capabilities().Has(Fallback) {
			return t, nil
		}
		next := t.(FallbackProvider).FallbackFor(ctx)
		if next == nil || next == t {
			return t, nil
		}
		r.logger.Warn("transition falls back",
			log.Stringer("from", t.Kind()),
			log.Stringer("to", next.Kind()),
			log.Stringer("direction", ctx.Direction))
		t = next
	}
	return nil, fmt.Errorf("%w: after %d fallbacks", ErrFallbackLoop, maxFallbacks)
}

// Tick advances every running transition by dt seconds and drops the ones
// that have settled. Transitions begun by lifecycle handlers during the tick
// are kept and first ticked on the next frame.
func (r *Runtime) Tick(dt float64) {
	if r.torn {
		return
	}
	for _, a := range r.active {
		a.handle.Tick(dt)
	}

	var done []*Active
	kept := make([]*Active, 0, len(r.active))
	for _, a := range r.active {
		if a.done {
			done = append(done, a)
			continue
		}
		kept = append(kept, a)
	}
	r.active = kept
	for _, a := range done {
		ev := r.finish(a)
		r.publishEvents(r.logger.With(log.String("transition", a.id)), ev)
	}
}

// Running returns the transitions that have not settled yet.
func (r *Runtime) Running() []*Active {
	out := make([]*Active, len(r.active))
	copy(out, r.active)
	return out
}

// Teardown stops every running transition without settling it. The torn
// down events go out as one batch, followed by a summary of the bus metrics.
func (r *Runtime) Teardown() {
	if r.torn {
		return
	}
	r.torn = true
	events := make([]bus.Event, 0, len(r.active))
	for _, a := range r.active {
		events = append(events, r.finish(a))
	}
	r.active = nil
	r.publishEvents(r.logger, events...)

	r.bus.RemoveObserver(r.deliveries)
	m := r.bus.GetMetrics()
	r.logger.Info("runtime torn down",
		log.Int("stopped", len(events)),
		log.Uint64("published", m.Published),
		log.Uint64("delivered", m.DeliveredHandlers),
		log.Uint64("handler_errors", m.Errors))
}

func (r *Runtime) onSettled(a *Active, logger log.Log, d direction.Direction) {
	if a.done {
		return
	}
	a.settled, a.done = d, true
	if term, ok := a.transition.(Terminator); ok && a.transition.Capabilities().Has(Termination) {
		term.DidEnd(a.ctx, d)
	}
	logger.Info("transition settled",
		log.Stringer("direction", d),
		log.Bool("completed", a.Completed()))
	r.publish(a, bus.TransitionSettled, d, logger)
}

// finish releases a and returns its torn down event for the caller to publish.
func (r *Runtime) finish(a *Active) bus.Event {
	a.handle.Teardown()
	a.redirects.Cancel()
	return r.event(a, bus.TransitionTornDown, a.handle.Direction().Get())
}

func (r *Runtime) event(a *Active, typ bus.EventType, d direction.Direction) bus.Event {
	ev := bus.NewEvent(typ, a.id, a.Kind().String())
	ev.Direction = d
	ev.Position = a.handle.Snapshot().Position
	return ev
}

func (r *Runtime) publish(a *Active, typ bus.EventType, d direction.Direction, logger log.Log) {
	r.publishEvents(logger, r.event(a, typ, d))
}

func (r *Runtime) publishEvents(logger log.Log, events ...bus.Event) {
	if len(events) == 0 {
		return
	}
	if err := r.bus.PublishBatch(events...); err != nil {
		logger.Warn("lifecycle handler failed",
			log.String("event", string(events[0].Type)), log.Int("events", len(events)), log.Error(err))
	}
}
