package direction

import (
	"errors"
	"fmt"
	"math"

	"github.com/zeusync/motion/internal/core/geometry"
)

// SignMapping maps the sign of a velocity along the transition axis to a
// direction. The mapping depends on which way the view leaves the screen:
// dragging down to dismiss uses the opposite mapping from dragging up.
type SignMapping struct {
	WhenNegative Direction
	WhenPositive Direction
}

// NegativeForward is the mapping for views that dismiss toward +axis
// (e.g. a sheet dragged down).
func NegativeForward() SignMapping {
	return SignMapping{WhenNegative: Forward, WhenPositive: Backward}
}

// NegativeBackward is the mapping for views that dismiss toward -axis.
func NegativeBackward() SignMapping {
	return SignMapping{WhenNegative: Backward, WhenPositive: Forward}
}

func (m SignMapping) For(v float64) Direction {
	if v < 0 {
		return m.WhenNegative
	}
	return m.WhenPositive
}

// PositionRule splits the axis at Threshold. The threshold itself belongs to
// the upper region, i.e. the upper region has an inclusive lower bound.
type PositionRule struct {
	Threshold float64
	// Lower applies to coordinates strictly less than Threshold.
	Lower Direction
	// Upper applies to coordinates greater than or equal to Threshold.
	Upper Direction
}

func (r PositionRule) For(coord float64) Direction {
	if coord < r.Threshold {
		return r.Lower
	}
	return r.Upper
}

// Resolver implements the two-tier release policy: a release at least as fast
// as MinimumVelocity commits by the sign of the velocity alone; a slower one
// commits by where the view was let go.
type Resolver struct {
	Axis            geometry.Axis
	MinimumVelocity float64
	Velocity        SignMapping
	Position        PositionRule
}

func (r Resolver) Validate() error {
	var errs []error
	if !(r.MinimumVelocity > 0) || math.IsInf(r.MinimumVelocity, 0) {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidMinimumVelocity, r.MinimumVelocity))
	}
	if math.IsNaN(r.Position.Threshold) || math.IsInf(r.Position.Threshold, 0) {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidThreshold, r.Position.Threshold))
	}
	for name, d := range map[string]Direction{
		"velocity.negative": r.Velocity.WhenNegative,
		"velocity.positive": r.Velocity.WhenPositive,
		"position.lower":    r.Position.Lower,
		"position.upper":    r.Position.Upper,
	} {
		if !d.Valid() {
			errs = append(errs, fmt.Errorf("%w for %s", ErrInvalidDirection, name))
		}
	}
	return errors.Join(errs...)
}

// Decisive reports whether v is fast enough to decide on its own.
func (r Resolver) Decisive(v float64) bool {
	return math.Abs(v) >= r.MinimumVelocity
}

// ResolveScalar applies the policy to values already projected on the axis.
func (r Resolver) ResolveScalar(velocity, coord float64) Direction {
	if r.Decisive(velocity) {
		return r.Velocity.For(velocity)
	}
	return r.Position.For(coord)
}

// Resolve applies the policy to a release velocity and the view position at
// release time.
func (r Resolver) Resolve(velocity, position geometry.Point) Direction {
	return r.ResolveScalar(r.Axis.Component(velocity), r.Axis.Component(position))
}

// Live returns the direction implied by a velocity sample of a gesture that is
// still in progress, or false when the sample is not decisive.
func (r Resolver) Live(velocity geometry.Point) (Direction, bool) {
	v := r.Axis.Component(velocity)
	if !r.Decisive(v) {
		return 0, false
	}
	return r.Velocity.For(v), true
}
