package geometry

import "math"

// Constraint is a pure transform applied to every position on its way to the
// sink.
type Constraint func(Point) Point

// LockX pins the x coordinate of every position to x.
func LockX(x float64) Constraint {
	return Lock(AxisX, x)
}

// LockY pins the y coordinate of every position to y.
func LockY(y float64) Constraint {
	return Lock(AxisY, y)
}

// Lock pins the coordinate along axis to v.
func Lock(axis Axis, v float64) Constraint {
	return func(p Point) Point { return axis.With(p, v) }
}

// Chain applies constraints in order.
func Chain(cs ...Constraint) Constraint {
	return func(p Point) Point {
		for _, c := range cs {
			if c != nil {
				p = c(p)
			}
		}
		return p
	}
}

// Perimeter restricts incremental moves to a rectangle. Each delta is applied
// to the current position and any part of it that would carry the point
// further past an edge is dropped, so dragging against an edge produces no
// movement on that axis until the drag reverses. A point that starts outside
// the rectangle is never snapped in; it may only move back toward it.
type Perimeter struct {
	Bounds Rect
}

func (p Perimeter) Step(current, delta Point) Point {
	b := p.Bounds.Standardize()
	lo := Pt(b.MinX(), b.MinY())
	hi := Pt(b.MaxX(), b.MaxY())

	next := current.Add(delta)
	for i := range next {
		switch {
		case delta[i] > 0 && next[i] > hi[i]:
			next[i] = math.Max(current[i], hi[i])
		case delta[i] < 0 && next[i] < lo[i]:
			next[i] = math.Min(current[i], lo[i])
		}
	}
	return next
}
