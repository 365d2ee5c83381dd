// Package surface executes render commands on concrete drawing targets:
// a braille terminal canvas, raster images and SVG documents.
package surface

import (
	"math"

	"github.com/verte-zerg/statsview/internal/render"
)

// Surface executes an ordered command list.
type Surface interface {
	Draw(cmds []render.Command) error
}

// arcCircle returns the center and radius of the circle inscribed in an
// arc's box.
func arcCircle(a render.Arc) (cx, cy, r float64) {
	cx = (a.Box.Left + a.Box.Right) / 2
	cy = (a.Box.Top + a.Box.Bottom) / 2
	r = math.Min(a.Box.Width(), a.Box.Height()) / 2
	return cx, cy, r
}

// normalizeSweep rewrites a negative sweep as the equivalent positive one.
func normalizeSweep(start, sweep float64) (float64, float64) {
	if sweep < 0 {
		return start + sweep, -sweep
	}
	return start, sweep
}

func anchorX(align render.Align) float64 {
	switch align {
	case render.AlignLeft:
		return 0
	case render.AlignRight:
		return 1
	default:
		return 0.5
	}
}
