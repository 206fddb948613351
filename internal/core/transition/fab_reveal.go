package transition

import (
	"fmt"

	"github.com/zeusync/motion/internal/core/direction"
	"github.com/zeusync/motion/internal/core/geometry"
	"github.com/zeusync/motion/internal/core/toss"
)

// toolbarMaxHeight is the tallest bottom-anchored full width frame that is
// still revealed as a toolbar rather than a sheet.
const toolbarMaxHeight = 100

type revealLayout uint8

const (
	// revealNearTop starts the content just above the button, horizontally
	// where it ends.
	revealNearTop revealLayout = iota + 1
	// revealCentered starts the content centered on the button.
	revealCentered
)

// revealLayoutFor routes on the shape of the presented frame. It reports
// false when the reveal has no motion for that shape and direction.
func revealLayoutFor(container, frame geometry.Rect, d direction.Direction) (revealLayout, bool) {
	switch {
	case frame == container:
		return revealNearTop, d == direction.Forward
	case frame.Width == container.Width && frame.MaxY() == container.MaxY():
		if frame.Height > toolbarMaxHeight {
			return revealNearTop, d == direction.Forward
		}
		return revealCentered, true
	case frame.Width < container.Width && frame.MidY() >= container.MidY():
		return revealCentered, true
	}
	return 0, false
}

// FABMaskedReveal reveals the presented view out of a floating action button.
// Full screen and bottom sheet frames only expand; toolbars and bottom cards
// also collapse back into the button. Anything else hands over to a
// VerticalSheet with the same frame.
type FABMaskedReveal struct {
	Button geometry.Rect
	// Frame, when set, decides the frame of the presented view; otherwise it
	// fills the container.
	Frame func(container geometry.Rect) geometry.Rect
	// OnEnd runs once the reveal settles. scrim is true when the reveal drew
	// its own scrim, which happens when no Frame is set.
	OnEnd func(settled direction.Direction, scrim bool)
}

func (*FABMaskedReveal) Kind() Kind { return KindFABMaskedReveal }

func (*FABMaskedReveal) Capabilities() Capabilities {
	return Presentation | Fallback | Termination
}

func (f *FABMaskedReveal) PresentedFrame(container geometry.Rect) geometry.Rect {
	if f.Frame == nil {
		return container
	}
	return f.Frame(container)
}

func (f *FABMaskedReveal) FallbackFor(ctx Context) Transition {
	if _, ok := revealLayoutFor(ctx.Container, f.PresentedFrame(ctx.Container), ctx.Direction); ok {
		return f
	}
	return &VerticalSheet{Frame: f.Frame}
}

func (f *FABMaskedReveal) DidEnd(_ Context, settled direction.Direction) {
	if f.OnEnd != nil {
		f.OnEnd(settled, f.Frame == nil)
	}
}

func (f *FABMaskedReveal) Plan(ctx Context, _ toss.Config) (Plan, error) {
	frame := ctx.ForeFrame
	layout, ok := revealLayoutFor(ctx.Container, frame, ctx.Direction)
	if !ok {
		return Plan{}, fmt.Errorf("%w: %s %s", ErrNonInteractive, f.Kind(), ctx.Direction)
	}

	plan := Plan{Fore: frame.Center()}
	switch layout {
	case revealNearTop:
		plan.Back = geometry.Pt(frame.MidX(), f.Button.MinY()-fabRise+frame.Height/2)
		plan.Constraints = []geometry.Constraint{geometry.LockX(frame.MidX())}
	case revealCentered:
		plan.Back = f.Button.Center()
	}
	return plan, nil
}
