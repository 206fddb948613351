package transition

import (
	"github.com/zeusync/motion/internal/core/direction"
	"github.com/zeusync/motion/internal/core/geometry"
	"github.com/zeusync/motion/internal/core/gesture"
	"github.com/zeusync/motion/internal/core/toss"
)

// Modal rises the fore view from below the container to its frame and can be
// dragged back down to dismiss it.
type Modal struct{}

func (Modal) Kind() Kind                 { return KindModal }
func (Modal) Capabilities() Capabilities { return 0 }

func (Modal) Plan(ctx Context, cfg toss.Config) (Plan, error) {
	return sheetPlan(ctx, cfg), nil
}

// VerticalSheet moves like Modal. Frame, when set, decides the frame of the
// presented view; otherwise the view fills the container.
type VerticalSheet struct {
	Frame func(container geometry.Rect) geometry.Rect
}

func (*VerticalSheet) Kind() Kind                 { return KindVerticalSheet }
func (*VerticalSheet) Capabilities() Capabilities { return Presentation }

func (s *VerticalSheet) PresentedFrame(container geometry.Rect) geometry.Rect {
	if s.Frame == nil {
		return container
	}
	return s.Frame(container)
}

func (*VerticalSheet) Plan(ctx Context, cfg toss.Config) (Plan, error) {
	return sheetPlan(ctx, cfg), nil
}

// sheetPlan parks the back position just below the container. Only pans that
// are already live may drive the view, and it travels on a vertical segment
// between the two rest positions.
func sheetPlan(ctx Context, cfg toss.Config) Plan {
	fore := ctx.ForeFrame.Center()
	back := geometry.Pt(fore.X(), ctx.Container.MaxY()+ctx.ForeFrame.Height/2)

	return Plan{
		Back: back,
		Fore: fore,
		Resolver: &direction.Resolver{
			Axis:            geometry.AxisY,
			MinimumVelocity: cfg.MinimumVelocity,
			Velocity:        direction.NegativeForward(),
			Position: direction.PositionRule{
				Threshold: ctx.Container.MaxY(),
				Lower:     direction.Forward,
				Upper:     direction.Backward,
			},
		},
		Perimeter: &geometry.Rect{
			X:      fore.X(),
			Y:      fore.Y(),
			Width:  0,
			Height: back.Y() - fore.Y(),
		},
		Constraints: []geometry.Constraint{geometry.LockX(fore.X())},
		Gestures:    gesture.LivePans(ctx.Gestures),
	}
}
