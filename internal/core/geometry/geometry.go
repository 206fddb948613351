// Package geometry holds the 2D value types shared by the motion packages and
// the pure position transforms (axis lock, perimeter clamp).
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Point is a position or velocity in container coordinates. y grows downward.
type Point = mgl64.Vec2

func Pt(x, y float64) Point { return Point{x, y} }

// Finite reports whether both coordinates are real numbers.
func Finite(p Point) bool {
	for _, c := range p {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Component returns p's coordinate along a.
func (a Axis) Component(p Point) float64 {
	return p[a]
}

// With returns p with its coordinate along a replaced by v.
func (a Axis) With(p Point, v float64) Point {
	p[a] = v
	return p
}

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	return 1 - a
}

// Rect is an axis-aligned rectangle. Zero width or height is allowed and
// describes a segment.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }
func (r Rect) MidX() float64 { return r.X + r.Width/2 }
func (r Rect) MidY() float64 { return r.Y + r.Height/2 }

func (r Rect) Center() Point { return Pt(r.MidX(), r.MidY()) }

// Standardize returns r with a non-negative width and height.
func (r Rect) Standardize() Rect {
	if r.Width < 0 {
		r.X, r.Width = r.X+r.Width, -r.Width
	}
	if r.Height < 0 {
		r.Y, r.Height = r.Y+r.Height, -r.Height
	}
	return r
}

func (r Rect) Contains(p Point) bool {
	s := r.Standardize()
	return p.X() >= s.MinX() && p.X() <= s.MaxX() &&
		p.Y() >= s.MinY() && p.Y() <= s.MaxY()
}

// Clamp moves p to the closest point inside r.
func (r Rect) Clamp(p Point) Point {
	s := r.Standardize()
	return Pt(
		mgl64.Clamp(p.X(), s.MinX(), s.MaxX()),
		mgl64.Clamp(p.Y(), s.MinY(), s.MaxY()),
	)
}
