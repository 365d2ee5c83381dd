// Package render turns chart state into draw commands.
package render

import (
	"image/color"

	"github.com/verte-zerg/statsview/internal/geometry"
)

// Command is one drawing instruction. The concrete types are Circle, Arc
// and Text.
type Command interface {
	command()
}

// Stroke describes how outlines are painted.
type Stroke struct {
	Width float64
	Round bool
}

// Align is the horizontal text anchor.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// TextStyle describes how text is painted.
type TextStyle struct {
	Size  float64
	Color color.NRGBA
	Align Align
}

// Circle strokes a full circle.
type Circle struct {
	CenterX float64
	CenterY float64
	Radius  float64
	Color   color.NRGBA
	Stroke  Stroke
}

// Arc strokes part of the ellipse inscribed in Box. Angles are in degrees,
// 0 at three o'clock, positive clockwise (y grows downward).
type Arc struct {
	Box        geometry.Rect
	StartAngle float64
	SweepAngle float64
	Color      color.NRGBA
	Stroke     Stroke
}

// Text draws Content with its baseline at Y, anchored at X per Style.Align.
type Text struct {
	Content string
	X       float64
	Y       float64
	Style   TextStyle
}

func (Circle) command() {}
func (Arc) command()    {}
func (Text) command()   {}

// BackgroundColor paints the unfilled ring.
var BackgroundColor = color.NRGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 0xFF}
