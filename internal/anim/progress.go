// Package anim drives the chart's sweep-in animation.
//
// The Scheduler owns a Progress value and a list of timed runs. Runs write
// progress only through a Handle bound to the generation that created them;
// restarting bumps the generation, so any write from a superseded run is
// dropped.
package anim

import "math"

// Snapshot is an immutable copy of the progress slots.
type Snapshot struct {
	Slots   []float64
	Overall float64
}

// Slot returns slot i, or 0 when i is out of range.
func (s Snapshot) Slot(i int) float64 {
	if i < 0 || i >= len(s.Slots) {
		return 0
	}
	return s.Slots[i]
}

// RotationDegrees returns the spin offset derived from overall progress.
func (s Snapshot) RotationDegrees() float64 {
	return s.Overall * 360
}

// Progress holds one interpolation value per slot, each in [0,1].
type Progress struct {
	gen   uint64
	slots []float64
}

// Handle is a write capability for a single Progress generation.
type Handle struct {
	p   *Progress
	gen uint64
}

// Reset zeroes the progress to n slots and invalidates every earlier handle.
func (p *Progress) Reset(n int) Handle {
	if n < 0 {
		n = 0
	}
	p.gen++
	p.slots = make([]float64, n)
	return Handle{p: p, gen: p.gen}
}

// Generation returns the current generation counter.
func (p *Progress) Generation() uint64 {
	return p.gen
}

// Snapshot copies the current slots.
func (p *Progress) Snapshot() Snapshot {
	slots := make([]float64, len(p.slots))
	copy(slots, p.slots)
	overall := 0.0
	if len(slots) > 0 {
		for _, v := range slots {
			overall += v
		}
		overall /= float64(len(slots))
	}
	return Snapshot{Slots: slots, Overall: overall}
}

// Valid reports whether the handle still belongs to the live generation.
func (h Handle) Valid() bool {
	return h.p != nil && h.gen == h.p.gen
}

// Set writes v (clamped to [0,1]) into slot. It returns false and writes
// nothing when the handle is stale or the slot is out of range.
func (h Handle) Set(slot int, v float64) bool {
	if !h.Valid() {
		return false
	}
	if slot < 0 || slot >= len(h.p.slots) {
		return false
	}
	if v < 0 || math.IsNaN(v) {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	h.p.slots[slot] = v
	return true
}
