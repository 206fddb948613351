package toss

import (
	"github.com/zeusync/motion/internal/core/direction"
	"github.com/zeusync/motion/internal/core/geometry"
	"github.com/zeusync/motion/internal/core/observability/log"
)

type options struct {
	config      Config
	initial     *geometry.Point
	resolver    *direction.Resolver
	constraints []geometry.Constraint
	perimeter   *geometry.Rect
	sink        Sink
	logger      log.Log
}

type Option func(*options)

func WithConfig(cfg Config) Option {
	return func(o *options) { o.config = cfg }
}

// WithInitialPosition overrides the starting position. By default a forward
// toss starts at the back position and a backward one at the fore position.
func WithInitialPosition(p geometry.Point) Option {
	return func(o *options) { o.initial = &p }
}

// WithResolver enables gesture-driven direction changes: live velocity
// crossings while dragging and the two-tier decision at release.
func WithResolver(r direction.Resolver) Option {
	return func(o *options) { o.resolver = &r }
}

// WithConstraint adds a transform applied to every position before the sink.
func WithConstraint(c geometry.Constraint) Option {
	return func(o *options) { o.constraints = append(o.constraints, c) }
}

// WithAxisLock pins one coordinate of the output.
func WithAxisLock(axis geometry.Axis, v float64) Option {
	return WithConstraint(geometry.Lock(axis, v))
}

// WithPerimeter limits how far gestures may drag the view.
func WithPerimeter(r geometry.Rect) Option {
	return func(o *options) { o.perimeter = &r }
}

func WithSink(s Sink) Option {
	return func(o *options) { o.sink = s }
}

func WithLogger(l log.Log) Option {
	return func(o *options) { o.logger = l }
}
