package transition

import (
	"fmt"
	"math"

	"github.com/zeusync/motion/internal/core/direction"
	"github.com/zeusync/motion/internal/core/geometry"
	"github.com/zeusync/motion/internal/core/gesture"
	"github.com/zeusync/motion/internal/core/toss"
)

// Edge is the container edge a slide transition dismisses through.
type Edge uint8

const (
	EdgeBottom Edge = iota
	EdgeLeft
	EdgeTop
	EdgeRight
)

func (e Edge) String() string {
	switch e {
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	case EdgeTop:
		return "top"
	case EdgeRight:
		return "right"
	}
	return fmt.Sprintf("edge(%d)", uint8(e))
}

// Axis is the axis the view travels on when dismissed through e.
func (e Edge) Axis() geometry.Axis {
	if e == EdgeLeft || e == EdgeRight {
		return geometry.AxisX
	}
	return geometry.AxisY
}

// DismissEdgeFor picks the edge from a gesture's initial velocity: the
// dominant axis wins, and anything undecided goes to the bottom.
func DismissEdgeFor(velocity geometry.Point) Edge {
	vx, vy := velocity.X(), velocity.Y()
	switch {
	case vx > 0 && math.Abs(vx) > math.Abs(vy):
		return EdgeRight
	case vx < 0 && math.Abs(vx) > math.Abs(vy):
		return EdgeLeft
	case vy < 0 && math.Abs(vy) > math.Abs(vx):
		return EdgeTop
	default:
		return EdgeBottom
	}
}

// Slide centers the fore view in the container. Dismissal locks to the axis
// of the first gesture's velocity when the transition begins.
type Slide struct{}

func (Slide) Kind() Kind                 { return KindSlide }
func (Slide) Capabilities() Capabilities { return 0 }

func (Slide) Plan(ctx Context, cfg toss.Config) (Plan, error) {
	bounds := ctx.Container
	fore := bounds.Center()

	var gestures []gesture.Recognizer
	var initial geometry.Point
	for _, r := range ctx.Gestures {
		if r == nil {
			continue
		}
		gestures = []gesture.Recognizer{r}
		if s, ok := r.Samples().Latest(); ok {
			initial = s.Velocity
		}
		break
	}

	edge := DismissEdgeFor(initial)
	halfW, halfH := ctx.ForeFrame.Width/2, ctx.ForeFrame.Height/2

	var back geometry.Point
	var velocity direction.SignMapping
	var position direction.PositionRule
	switch edge {
	case EdgeLeft:
		back = geometry.Pt(bounds.MinX()-halfW, bounds.MidY())
		velocity = direction.NegativeBackward()
		position = direction.PositionRule{Threshold: bounds.MinX(), Lower: direction.Backward, Upper: direction.Forward}
	case EdgeRight:
		back = geometry.Pt(bounds.MaxX()+halfW, bounds.MidY())
		velocity = direction.NegativeForward()
		position = direction.PositionRule{Threshold: bounds.MaxX(), Lower: direction.Forward, Upper: direction.Backward}
	case EdgeTop:
		back = geometry.Pt(bounds.MidX(), bounds.MinY()-halfH)
		velocity = direction.NegativeBackward()
		position = direction.PositionRule{Threshold: bounds.MinY(), Lower: direction.Backward, Upper: direction.Forward}
	default:
		back = geometry.Pt(bounds.MidX(), bounds.MaxY()+halfH)
		velocity = direction.NegativeForward()
		position = direction.PositionRule{Threshold: bounds.MaxY(), Lower: direction.Forward, Upper: direction.Backward}
	}

	axis := edge.Axis()
	return Plan{
		Back: back,
		Fore: fore,
		Resolver: &direction.Resolver{
			Axis:            axis,
			MinimumVelocity: cfg.MinimumVelocity,
			Velocity:        velocity,
			Position:        position,
		},
		Constraints: []geometry.Constraint{geometry.Lock(axis.Other(), axis.Other().Component(fore))},
		Gestures:    gestures,
	}, nil
}
