package toss

import (
	"fmt"

	"github.com/zeusync/motion/internal/core/geometry"
)

type State uint8

const (
	StateIdle State = iota
	StateDragging
	StateSpringing
	StateSettled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateSpringing:
		return "springing"
	case StateSettled:
		return "settled"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Control names the component allowed to write the position in a state.
type Control uint8

const (
	ControlNone Control = iota
	ControlDraggable
	ControlSpring
)

func (c Control) String() string {
	switch c {
	case ControlDraggable:
		return "draggable"
	case ControlSpring:
		return "spring"
	default:
		return "none"
	}
}

func (s State) Control() Control {
	switch s {
	case StateDragging:
		return ControlDraggable
	case StateIdle, StateSpringing:
		return ControlSpring
	default:
		return ControlNone
	}
}

// TossState is the simulation state of a toss.
type TossState struct {
	Position geometry.Point
	Velocity geometry.Point
	Target   geometry.Point
	Settled  bool
}

// Sink receives the constrained position once per write. It is owned by the
// rendering side.
type Sink interface {
	SetPosition(p geometry.Point)
}

type SinkFunc func(p geometry.Point)

func (f SinkFunc) SetPosition(p geometry.Point) { f(p) }
