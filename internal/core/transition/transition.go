// Package transition plans view controller style transitions on top of the
// toss engine: where the back and fore positions are, which gestures may
// drive the view and how a release decides the outcome.
package transition

import (
	"errors"
	"fmt"
	"math"

	"github.com/zeusync/motion/internal/core/direction"
	"github.com/zeusync/motion/internal/core/geometry"
	"github.com/zeusync/motion/internal/core/gesture"
	"github.com/zeusync/motion/internal/core/toss"
)

// Context is what a transition knows when it begins.
type Context struct {
	Container geometry.Rect
	// ForeFrame is the frame of the fore view in container coordinates. Its
	// center is the fore rest position.
	ForeFrame geometry.Rect
	// Direction is the initial direction: forward presents, backward dismisses.
	Direction direction.Direction
	Gestures  []gesture.Recognizer
}

func (c Context) Validate() error {
	var errs []error
	if !c.Direction.Valid() {
		errs = append(errs, direction.ErrInvalidDirection)
	}
	if !validRect(c.Container) {
		errs = append(errs, fmt.Errorf("%w: container %+v", ErrInvalidContext, c.Container))
	}
	if !validRect(c.ForeFrame) {
		errs = append(errs, fmt.Errorf("%w: fore frame %+v", ErrInvalidContext, c.ForeFrame))
	}
	return errors.Join(errs...)
}

func validRect(r geometry.Rect) bool {
	for _, v := range []float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.Width > 0 && r.Height > 0
}

// Plan is the resolved geometry and interaction of one transition.
type Plan struct {
	Back geometry.Point
	Fore geometry.Point
	// Start overrides where the view starts; by default the rest position
	// opposite to the initial direction.
	Start       *geometry.Point
	Resolver    *direction.Resolver
	Perimeter   *geometry.Rect
	Constraints []geometry.Constraint
	Gestures    []gesture.Recognizer
}

func (p Plan) options() []toss.Option {
	var opts []toss.Option
	if p.Start != nil {
		opts = append(opts, toss.WithInitialPosition(*p.Start))
	}
	if p.Resolver != nil {
		opts = append(opts, toss.WithResolver(*p.Resolver))
	}
	if p.Perimeter != nil {
		opts = append(opts, toss.WithPerimeter(*p.Perimeter))
	}
	for _, c := range p.Constraints {
		opts = append(opts, toss.WithConstraint(c))
	}
	return opts
}

// Transition is one kind of transition. Optional behaviour is declared with
// Capabilities and provided by implementing the matching hook interface.
type Transition interface {
	Kind() Kind
	Capabilities() Capabilities
	Plan(ctx Context, cfg toss.Config) (Plan, error)
}

// Presenter is the Presentation hook.
type Presenter interface {
	// PresentedFrame returns the frame of the presented view in container.
	PresentedFrame(container geometry.Rect) geometry.Rect
}

// FallbackProvider is the Fallback hook. Returning the receiver keeps it.
type FallbackProvider interface {
	FallbackFor(ctx Context) Transition
}

// Terminator is the Termination hook. It runs once, after the toss settles.
type Terminator interface {
	DidEnd(ctx Context, settled direction.Direction)
}

// Validate checks that t provides a hook for every capability it declares
// and none that it does not.
func Validate(t Transition) error {
	caps := t.Capabilities()
	var errs []error
	check := func(flag Capabilities, implemented bool) {
		switch {
		case caps.Has(flag) && !implemented:
			errs = append(errs, fmt.Errorf("%w: %s %s", ErrMissingHook, t.Kind(), flag))
		case !caps.Has(flag) && implemented:
			errs = append(errs, fmt.Errorf("%w: %s %s", ErrUnexpectedHook, t.Kind(), flag))
		}
	}
	_, presenter := t.(Presenter)
	_, fallback := t.(FallbackProvider)
	_, terminator := t.(Terminator)
	check(Presentation, presenter)
	check(Fallback, fallback)
	check(Termination, terminator)
	return errors.Join(errs...)
}

// New returns the default transition of the given kind. The FAB kinds need
// the frame of their button, so they cannot be built here.
func New(k Kind) (Transition, error) {
	switch k {
	case KindModal:
		return Modal{}, nil
	case KindVerticalSheet:
		return &VerticalSheet{}, nil
	case KindSlide:
		return Slide{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, k)
	}
}
