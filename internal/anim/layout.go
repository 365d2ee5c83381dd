package anim

import (
	"time"

	"github.com/verte-zerg/statsview/internal/model"
)

// AllSegments marks a run that drives the single shared slot.
const AllSegments = -1

// Timings used by the built-in layouts.
const (
	SequentialDelay      = 500 * time.Millisecond
	SequentialDuration   = 500 * time.Millisecond
	SimultaneousDelay    = 1000 * time.Millisecond
	SimultaneousDuration = 1500 * time.Millisecond
)

// Run is one timed 0→1 interpolation. Delay is measured from the end of the
// previous run, or from Start for the first run.
type Run struct {
	Segment  int
	Delay    time.Duration
	Duration time.Duration
}

// Slot returns the progress slot the run writes.
func (r Run) Slot() int {
	if r.Segment == AllSegments {
		return 0
	}
	return r.Segment
}

type layout interface {
	slots(segments int) int
	plan(segments int) []Run
}

func layoutFor(style model.Style) layout {
	switch style {
	case model.StyleSimultaneous, model.StyleSplit:
		return sharedLayout{}
	default:
		return sequentialLayout{}
	}
}

// SlotCount returns how many progress slots style needs for segments values.
func SlotCount(style model.Style, segments int) int {
	return layoutFor(style).slots(segments)
}

type sequentialLayout struct{}

func (sequentialLayout) slots(segments int) int {
	return segments
}

func (sequentialLayout) plan(segments int) []Run {
	runs := make([]Run, 0, segments)
	for i := 0; i < segments; i++ {
		delay := time.Duration(0)
		if i == 0 {
			delay = SequentialDelay
		}
		runs = append(runs, Run{Segment: i, Delay: delay, Duration: SequentialDuration})
	}
	return runs
}

type sharedLayout struct{}

func (sharedLayout) slots(segments int) int {
	if segments == 0 {
		return 0
	}
	return 1
}

func (sharedLayout) plan(segments int) []Run {
	if segments == 0 {
		return nil
	}
	return []Run{{Segment: AllSegments, Delay: SimultaneousDelay, Duration: SimultaneousDuration}}
}
