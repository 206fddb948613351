package transition

import (
	"fmt"

	"github.com/zeusync/motion/internal/core/direction"
	"github.com/zeusync/motion/internal/core/geometry"
	"github.com/zeusync/motion/internal/core/toss"
)

// fabRise is how far above the button the rising content starts.
const fabRise = 20

// FABFullScreen grows a full screen view out of a floating action button.
// Presenting is not interactive; dismissal hands over to a VerticalSheet.
type FABFullScreen struct {
	// Button is the frame of the floating action button in container
	// coordinates.
	Button geometry.Rect
	// OnEnd, when set, runs once the presentation settles.
	OnEnd func(settled direction.Direction)
}

func (*FABFullScreen) Kind() Kind { return KindFABFullScreen }

func (*FABFullScreen) Capabilities() Capabilities { return Fallback | Termination }

func (f *FABFullScreen) FallbackFor(ctx Context) Transition {
	if ctx.Direction == direction.Backward {
		return &VerticalSheet{}
	}
	return f
}

func (f *FABFullScreen) DidEnd(_ Context, settled direction.Direction) {
	if f.OnEnd != nil {
		f.OnEnd(settled)
	}
}

func (f *FABFullScreen) Plan(ctx Context, _ toss.Config) (Plan, error) {
	if ctx.Direction != direction.Forward {
		return Plan{}, fmt.Errorf("%w: %s %s", ErrNonInteractive, f.Kind(), ctx.Direction)
	}
	bounds := ctx.Container
	start := geometry.Pt(bounds.MidX(), f.Button.MinY()-fabRise+ctx.ForeFrame.Height/2)
	return Plan{
		Back:        start,
		Fore:        bounds.Center(),
		Constraints: []geometry.Constraint{geometry.LockX(bounds.MidX())},
	}, nil
}
