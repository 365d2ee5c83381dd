package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/verte-zerg/statsview/internal/anim"
	"github.com/verte-zerg/statsview/internal/geometry"
	"github.com/verte-zerg/statsview/internal/model"
)

// Colors resolves the color of a segment index.
type Colors interface {
	At(i int) color.NRGBA
}

// Scene is everything a frame depends on.
type Scene struct {
	Data      []float64
	Full      float64
	Style     model.Style
	Rotation  bool
	Progress  anim.Snapshot
	Geometry  geometry.Geometry
	Colors    Colors
	TextSize  float64
	TextColor color.NRGBA
}

// Render maps a scene to an ordered command list. Empty data or a ring with
// no positive radius yields no commands. No NaN or infinite value is ever
// emitted.
func Render(sc Scene) []Command {
	if len(sc.Data) == 0 || !sc.Geometry.Drawable() || sc.Colors == nil {
		return nil
	}
	st := stepFor(sc.Style)
	g := sc.Geometry
	stroke := Stroke{Width: finite(math.Max(g.StrokeWidth, 0)), Round: true}
	box := g.Box()

	cmds := make([]Command, 0, len(sc.Data)*2+3)
	cmds = append(cmds, Circle{
		CenterX: g.CenterX,
		CenterY: g.CenterY,
		Radius:  g.Radius,
		Color:   BackgroundColor,
		Stroke:  stroke,
	})

	rotation := 0.0
	if sc.Rotation {
		rotation = finite(sc.Progress.RotationDegrees())
	}

	start := st.startAngle()
	for i, datum := range sc.Data {
		sweep := SweepAngle(datum, sc.Full)
		drawn := finite(sweep * st.factor(sc.Progress, i))
		cmds = st.appendArcs(cmds, box, finite(start+rotation), drawn, sc.Colors.At(i), stroke)
		// Keep the running angle bounded so huge values cannot overflow it.
		start = math.Mod(start+sweep, 360)
	}

	if st.closingCap() {
		cmds = append(cmds, Arc{
			Box:        box,
			StartAngle: -90 + rotation,
			SweepAngle: finite(sc.Progress.Slot(0)),
			Color:      sc.Colors.At(0),
			Stroke:     stroke,
		})
	}

	size := finite(math.Max(sc.TextSize, 0))
	cmds = append(cmds, Text{
		Content: Percent(sc.Data, sc.Full),
		X:       g.CenterX,
		Y:       g.CenterY + size/4,
		Style:   TextStyle{Size: size, Color: sc.TextColor, Align: AlignCenter},
	})
	return cmds
}

// SweepAngle returns the full-progress sweep in degrees for value. A
// non-positive or non-finite full scale yields 0.
func SweepAngle(value, full float64) float64 {
	if !validScale(full) {
		return 0
	}
	return finite(value / full * 360)
}

// Percent formats sum(data)/full as a percentage with two decimals. A
// degenerate full scale renders "0.00%".
func Percent(data []float64, full float64) string {
	if !validScale(full) {
		return "0.00%"
	}
	pct := 0.0
	for _, v := range data {
		pct += v / full * 100
	}
	return fmt.Sprintf("%.2f%%", finite(pct))
}

func validScale(full float64) bool {
	return full > 0 && !math.IsInf(full, 0) && !math.IsNaN(full)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
