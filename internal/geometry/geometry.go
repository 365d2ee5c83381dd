// Package geometry derives the ring layout from the drawing area.
package geometry

import "math"

// Rect is an axis-aligned box.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Width returns the box width.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the box height.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Geometry is the resolved ring layout for one drawing area size.
type Geometry struct {
	CenterX     float64
	CenterY     float64
	Radius      float64
	StrokeWidth float64
}

// Resize computes the layout for a width x height area. The result may have
// a zero or negative radius for degenerate areas; check Drawable before use.
func Resize(width, height, strokeWidth float64) Geometry {
	return Geometry{
		CenterX:     width / 2,
		CenterY:     height / 2,
		Radius:      math.Min(width, height)/2 - strokeWidth/2,
		StrokeWidth: strokeWidth,
	}
}

// Drawable reports whether the ring has a positive, finite radius.
func (g Geometry) Drawable() bool {
	return g.Radius > 0 && !math.IsInf(g.Radius, 0) && !math.IsNaN(g.Radius) &&
		isFinite(g.CenterX) && isFinite(g.CenterY)
}

// Box returns the square bounding the ring's stroke centerline.
func (g Geometry) Box() Rect {
	return Rect{
		Left:   g.CenterX - g.Radius,
		Top:    g.CenterY - g.Radius,
		Right:  g.CenterX + g.Radius,
		Bottom: g.CenterY + g.Radius,
	}
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
