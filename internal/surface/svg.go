package surface

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/verte-zerg/statsview/internal/palette"
	"github.com/verte-zerg/statsview/internal/render"
)

// SVG writes commands as an SVG document.
type SVG struct {
	w          *errWriter
	width      int
	height     int
	background string
}

// NewSVG returns an SVG surface of width x height writing to w. An empty
// background leaves the document transparent.
func NewSVG(w io.Writer, width, height int, background string) *SVG {
	return &SVG{w: &errWriter{w: w}, width: width, height: height, background: background}
}

// Draw writes one complete document containing cmds.
func (s *SVG) Draw(cmds []render.Command) error {
	if s.width <= 0 || s.height <= 0 {
		return fmt.Errorf("invalid svg size %dx%d", s.width, s.height)
	}
	canvas := svg.New(s.w)
	canvas.Start(s.width, s.height)
	if s.background != "" {
		canvas.Rect(0, 0, s.width, s.height, "fill:"+s.background)
	}
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case render.Circle:
			canvas.Path(arcPath(c.CenterX, c.CenterY, c.Radius, 0, 360), strokeStyle(c.Color, c.Stroke))
		case render.Arc:
			if c.SweepAngle == 0 {
				continue
			}
			cx, cy, r := arcCircle(c)
			canvas.Path(arcPath(cx, cy, r, c.StartAngle, c.SweepAngle), strokeStyle(c.Color, c.Stroke))
		case render.Text:
			canvas.Text(round(c.X), round(c.Y), c.Content, textStyle(c.Style))
		}
	}
	canvas.End()
	if s.w.err != nil {
		return fmt.Errorf("failed to write svg: %w", s.w.err)
	}
	return nil
}

// arcPath builds path data for an arc. Sweeps of a full turn or more are
// split into two half arcs since a single SVG arc cannot close on itself.
func arcPath(cx, cy, r, start, sweep float64) string {
	if math.Abs(sweep) >= 360 {
		sign := math.Copysign(1, sweep)
		return arcPath(cx, cy, r, start, 180*sign) + " " + arcSegment(cx, cy, r, start+180*sign, 180*sign)
	}
	x0, y0 := pointAt(cx, cy, r, start)
	return fmt.Sprintf("M%s,%s %s", num(x0), num(y0), arcSegment(cx, cy, r, start, sweep))
}

func arcSegment(cx, cy, r, start, sweep float64) string {
	x1, y1 := pointAt(cx, cy, r, start+sweep)
	large := 0
	if math.Abs(sweep) > 180 {
		large = 1
	}
	dir := 0
	if sweep > 0 {
		dir = 1
	}
	return fmt.Sprintf("A%s,%s 0 %d,%d %s,%s", num(r), num(r), large, dir, num(x1), num(y1))
}

func pointAt(cx, cy, r, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return cx + r*math.Cos(rad), cy + r*math.Sin(rad)
}

func strokeStyle(c color.Color, s render.Stroke) string {
	lineCap := "butt"
	if s.Round {
		lineCap = "round"
	}
	return fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s;stroke-linecap:%s", palette.Hex(c), num(s.Width), lineCap)
}

func textStyle(ts render.TextStyle) string {
	anchor := "middle"
	switch ts.Align {
	case render.AlignLeft:
		anchor = "start"
	case render.AlignRight:
		anchor = "end"
	}
	return fmt.Sprintf("text-anchor:%s;font-family:sans-serif;font-size:%spx;fill:%s", anchor, num(ts.Size), palette.Hex(ts.Color))
}

func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func round(v float64) int {
	return int(math.Round(v))
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
