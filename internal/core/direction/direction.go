// Package direction decides whether a transition is advancing toward its fore
// (visible) rest position or retreating toward its back (hidden) one.
package direction

import (
	"fmt"
	"strings"
)

// Direction has no undetermined state: the zero value is invalid and every
// constructor in this module rejects it.
type Direction uint8

const (
	Forward Direction = iota + 1
	Backward
)

func (d Direction) Valid() bool { return d == Forward || d == Backward }

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

func Parse(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward":
		return Forward, nil
	case "backward":
		return Backward, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, ErrInvalidDirection
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
