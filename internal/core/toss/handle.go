// Package toss moves a view between a back and a fore rest position with an
// interruptible spring.
//
// A Handle owns the view position for one transition. While a gesture is bound
// the draggable adapter writes it 1:1; otherwise the spring does, one step per
// Tick, toward whichever rest position the current direction designates.
// Changing the direction mid-flight retargets the spring without resetting its
// position or velocity.
package toss

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/zeusync/motion/internal/core/direction"
	"github.com/zeusync/motion/internal/core/draggable"
	"github.com/zeusync/motion/internal/core/geometry"
	"github.com/zeusync/motion/internal/core/gesture"
	"github.com/zeusync/motion/internal/core/observability/log"
	"github.com/zeusync/motion/internal/core/stream"
)

type Handle struct {
	id     string
	graph  *stream.Graph
	config Config
	back   geometry.Point
	fore   geometry.Point
	spring *Spring
	logger log.Log

	direction *stream.Value[direction.Direction]
	position  *stream.Value[geometry.Point]
	output    *stream.Derived[geometry.Point]
	states    *stream.Value[State]
	settled   *stream.Event[direction.Direction]

	adapter *draggable.Adapter
	bag     *stream.Bag

	state State
	toss  TossState
	ticks int
	torn  bool
}

// Bind validates the configuration and starts a toss. Configuration errors are
// joined so the caller sees all of them at once.
func Bind(g *stream.Graph, dir direction.Direction, back, fore geometry.Point, opts ...Option) (*Handle, error) {
	o := options{config: DefaultConfig(), logger: log.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validate(dir, back, fore, o); err != nil {
		return nil, err
	}

	start := fore
	if dir == direction.Forward {
		start = back
	}
	if o.initial != nil {
		start = *o.initial
	}

	h := &Handle{
		id:        uuid.NewString(),
		graph:     g,
		config:    o.config,
		back:      back,
		fore:      fore,
		spring:    NewSpring(o.config),
		direction: stream.NewValue(g, dir),
		position:  stream.NewValue(g, start),
		states:    stream.NewValue(g, StateIdle),
		settled:   stream.NewEvent[direction.Direction](g),
		bag:       stream.NewBag(g),
		toss:      TossState{Position: start},
	}
	h.logger = o.logger.With(log.String("toss", h.id))

	adapterOpts := []draggable.Option{draggable.WithLogger(h.logger)}
	if o.perimeter != nil {
		adapterOpts = append(adapterOpts, draggable.WithPerimeter(*o.perimeter))
	}
	h.adapter = draggable.New(h.position, adapterOpts...)

	h.wire(o)

	h.logger.Debug("toss bound",
		log.Stringer("direction", dir),
		log.Point("back", back.X(), back.Y()),
		log.Point("fore", fore.X(), fore.Y()),
		log.Point("start", start.X(), start.Y()))
	return h, nil
}

func validate(dir direction.Direction, back, fore geometry.Point, o options) error {
	var errs []error
	if !dir.Valid() {
		errs = append(errs, direction.ErrInvalidDirection)
	}
	if !geometry.Finite(back) || !geometry.Finite(fore) {
		errs = append(errs, ErrNonFiniteRestPosition)
	} else if back == fore {
		errs = append(errs, fmt.Errorf("%w: %v", ErrCoincidentRestPositions, back))
	}
	if o.initial != nil && !geometry.Finite(*o.initial) {
		errs = append(errs, fmt.Errorf("%w: initial %v", ErrNonFiniteRestPosition, *o.initial))
	}
	if err := o.config.Validate(); err != nil {
		errs = append(errs, err)
	}
	if o.resolver != nil {
		if err := o.resolver.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *Handle) wire(o options) {
	// The resolver subscribes to releases before the engine does, so its
	// decision is queued ahead of the engine reading the direction.
	if o.resolver != nil {
		velocities := stream.Map[draggable.Release, geometry.Point](h.adapter.Releases(),
			func(r draggable.Release) geometry.Point { return r.Velocity })
		h.bag.OnDispose(velocities.Dispose)
		h.bag.Add(
			direction.Connect(*o.resolver, h.direction, velocities, h.position),
			direction.ConnectLive(*o.resolver, h.direction, h.adapter.Samples()),
		)
	}

	h.bag.Add(
		h.direction.Subscribe(h.onDirection),
		h.adapter.Bindings().Subscribe(h.onBind),
		h.adapter.Releases().Subscribe(h.onRelease),
	)

	constrain := geometry.Chain(o.constraints...)
	h.output = stream.Map[geometry.Point, geometry.Point](h.position, constrain)
	h.bag.OnDispose(h.output.Dispose)
	if o.sink != nil {
		h.bag.Add(h.output.Subscribe(func(p geometry.Point) { h.write(o.sink, p) }))
	}
}

func (h *Handle) ID() string { return h.id }

// Direction is the live direction value. Setting it while springing retargets
// the toss.
func (h *Handle) Direction() *stream.Value[direction.Direction] { return h.direction }

// Position is the constrained position stream, one value per write.
func (h *Handle) Position() stream.Observable[geometry.Point] { return h.output }

func (h *Handle) States() stream.Observable[State] { return h.states }

func (h *Handle) State() State { return h.state }

// Control reports which component may write the position right now.
func (h *Handle) Control() Control { return h.state.Control() }

func (h *Handle) Snapshot() TossState { return h.toss }

func (h *Handle) Back() geometry.Point { return h.back }
func (h *Handle) Fore() geometry.Point { return h.fore }

// Adapter exposes the draggable adapter, e.g. to adjust its perimeter.
func (h *Handle) Adapter() *draggable.Adapter { return h.adapter }

// AttachGesture offers candidate gestures in priority order. Candidates that
// arrive while another gesture is bound are kept and ignored until it ends.
func (h *Handle) AttachGesture(candidates ...gesture.Recognizer) {
	if h.torn {
		return
	}
	h.adapter.Attach(candidates...)
}

// OnSettled registers fn to run each time the toss settles, with the
// direction it settled in: forward means the transition completed, backward
// that it was cancelled (for a presentation).
func (h *Handle) OnSettled(fn func(direction.Direction)) *stream.Subscription {
	return h.bag.Add(h.settled.Subscribe(fn))
}

// Tick advances the spring by dt seconds. It is a no-op while dragging, after
// settling and after teardown.
func (h *Handle) Tick(dt float64) {
	if h.torn || !(dt > 0) || math.IsInf(dt, 1) {
		return
	}
	switch h.state {
	case StateIdle:
		h.setState(StateSpringing)
	case StateSpringing:
	default:
		return
	}

	h.ticks++
	pos, vel := h.spring.Step(h.toss.Position, h.toss.Velocity, h.toss.Target, dt)
	h.toss.Position, h.toss.Velocity = pos, vel

	switch {
	case h.converged():
		h.settle()
	case h.config.MaxTicks > 0 && h.ticks >= h.config.MaxTicks:
		h.logger.Warn("toss did not converge, forcing settle",
			log.Int("ticks", h.ticks),
			log.Float64("distance", pos.Sub(h.toss.Target).Len()),
			log.Float64("speed", vel.Len()),
			log.Float64("damping_ratio", h.config.DampingRatio()))
		h.settle()
	default:
		h.position.Set(pos)
	}
}

// Restart springs a settled toss again toward the rest position of dir.
func (h *Handle) Restart(dir direction.Direction) error {
	if h.torn {
		return ErrTornDown
	}
	if !dir.Valid() {
		return direction.ErrInvalidDirection
	}
	if h.state != StateSettled {
		return fmt.Errorf("%w: state is %s", ErrNotSettled, h.state)
	}
	h.toss.Settled = false
	h.toss.Velocity = geometry.Point{}
	h.ticks = 0
	h.adapter.SetEnabled(true)
	h.setState(StateSpringing)
	h.direction.Set(dir)
	return nil
}

// Teardown unsubscribes everything the handle created. Mid-notification it
// takes effect once the notification completes. OnSettled never fires after
// teardown.
func (h *Handle) Teardown() {
	h.graph.Do(func() {
		if h.torn {
			return
		}
		h.torn = true
		h.adapter.Detach()
		h.bag.Dispose()
		h.logger.Debug("toss torn down", log.Stringer("state", h.state))
	})
}

func (h *Handle) targetFor(d direction.Direction) geometry.Point {
	if d == direction.Forward {
		return h.fore
	}
	return h.back
}

func (h *Handle) onDirection(d direction.Direction) {
	if h.state == StateSettled {
		return
	}
	prev := h.toss.Target
	h.toss.Target = h.targetFor(d)
	if h.state == StateSpringing && prev != h.toss.Target {
		h.ticks = 0
		h.logger.Debug("toss redirected", log.Stringer("direction", d))
	}
}

func (h *Handle) onBind(id string) {
	if h.torn || h.state == StateSettled {
		return
	}
	h.toss.Position = h.position.Get()
	h.toss.Velocity = geometry.Point{}
	h.setState(StateDragging)
}

func (h *Handle) onRelease(r draggable.Release) {
	if h.torn || h.state != StateDragging {
		return
	}
	h.toss.Position = h.position.Get()
	h.toss.Velocity = r.Velocity
	h.toss.Target = h.targetFor(h.direction.Get())
	h.ticks = 0
	h.setState(StateSpringing)
}

func (h *Handle) converged() bool {
	return h.toss.Position.Sub(h.toss.Target).Len() < h.config.PositionEpsilon &&
		h.toss.Velocity.Len() < h.config.VelocityEpsilon
}

func (h *Handle) settle() {
	h.toss.Position = h.toss.Target
	h.toss.Velocity = geometry.Point{}
	h.toss.Settled = true
	h.adapter.SetEnabled(false)
	h.position.Set(h.toss.Target)
	h.setState(StateSettled)

	d := h.direction.Get()
	h.logger.Debug("toss settled", log.Stringer("direction", d), log.Int("ticks", h.ticks))
	h.settled.Emit(d)
}

func (h *Handle) setState(s State) {
	if s == h.state {
		return
	}
	h.logger.Debug("toss state", log.Stringer("from", h.state), log.Stringer("to", s))
	h.state = s
	h.states.Set(s)
}

func (h *Handle) write(sink Sink, p geometry.Point) {
	if !geometry.Finite(p) {
		err := fmt.Errorf("%w: %v", ErrNonFinitePosition, p)
		h.logger.Error("position invariant violated", log.Error(err))
		panic(err)
	}
	sink.SetPosition(p)
}
