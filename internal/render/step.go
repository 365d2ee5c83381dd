package render

import (
	"image/color"

	"github.com/verte-zerg/statsview/internal/anim"
	"github.com/verte-zerg/statsview/internal/geometry"
	"github.com/verte-zerg/statsview/internal/model"
)

// step is the per-style drawing policy.
type step interface {
	startAngle() float64
	factor(p anim.Snapshot, segment int) float64
	appendArcs(cmds []Command, box geometry.Rect, start, sweep float64, c color.NRGBA, stroke Stroke) []Command
	closingCap() bool
}

func stepFor(style model.Style) step {
	switch style {
	case model.StyleSimultaneous:
		return simultaneousStep{}
	case model.StyleSplit:
		return splitStep{}
	default:
		return sequentialStep{}
	}
}

type sequentialStep struct{}

func (sequentialStep) startAngle() float64 { return -90 }

func (sequentialStep) factor(p anim.Snapshot, segment int) float64 {
	return p.Slot(segment)
}

func (sequentialStep) appendArcs(cmds []Command, box geometry.Rect, start, sweep float64, c color.NRGBA, stroke Stroke) []Command {
	return append(cmds, Arc{Box: box, StartAngle: start, SweepAngle: sweep, Color: c, Stroke: stroke})
}

func (sequentialStep) closingCap() bool { return true }

type simultaneousStep struct {
	sequentialStep
}

func (simultaneousStep) factor(p anim.Snapshot, _ int) float64 {
	return p.Slot(0)
}

type splitStep struct{}

func (splitStep) startAngle() float64 { return -45 }

func (splitStep) factor(p anim.Snapshot, _ int) float64 {
	return p.Slot(0) / 2
}

// appendArcs emits the forward arc and its mirror from the same start.
func (splitStep) appendArcs(cmds []Command, box geometry.Rect, start, sweep float64, c color.NRGBA, stroke Stroke) []Command {
	return append(cmds,
		Arc{Box: box, StartAngle: start, SweepAngle: sweep, Color: c, Stroke: stroke},
		Arc{Box: box, StartAngle: start, SweepAngle: -sweep, Color: c, Stroke: stroke},
	)
}

func (splitStep) closingCap() bool { return false }
