package anim

import (
	"time"

	"github.com/verte-zerg/statsview/internal/model"
)

// EventKind classifies scheduler lifecycle events.
type EventKind int

const (
	// RunStarted fires when a run begins interpolating.
	RunStarted EventKind = iota
	// RunFinished fires when a run reaches 1.
	RunFinished
	// RunCanceled fires for every unfinished run dropped by a restart.
	RunCanceled
)

func (k EventKind) String() string {
	switch k {
	case RunStarted:
		return "started"
	case RunFinished:
		return "finished"
	case RunCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Event reports a run transition. At is the scheduled time of the
// transition, not the time of the tick that observed it.
type Event struct {
	Kind       EventKind
	Index      int
	Run        Run
	Generation uint64
	At         time.Time
}

// Scheduler sequences runs and writes their progress on every tick. It has no
// timers of its own; the host delivers ticks.
type Scheduler struct {
	progress Progress
	handle   Handle
	runs     []Run
	current  int
	started  bool
	startAt  time.Time
	observe  func(Event)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithObserver registers a callback for run lifecycle events.
func WithObserver(fn func(Event)) Option {
	return func(s *Scheduler) {
		s.observe = fn
	}
}

// NewScheduler returns an idle scheduler.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start cancels any in-flight runs and plans fresh ones for style and
// segments, beginning at now. Progress is reset to zero.
func (s *Scheduler) Start(style model.Style, segments int, now time.Time) {
	s.Cancel(now)
	l := layoutFor(style)
	s.handle = s.progress.Reset(l.slots(segments))
	s.runs = l.plan(segments)
	s.current = 0
	s.started = false
	if len(s.runs) > 0 {
		s.startAt = now.Add(s.runs[0].Delay)
	}
}

// Cancel drops every unfinished run. Progress keeps its last values but can
// no longer be written by the dropped runs.
func (s *Scheduler) Cancel(now time.Time) {
	for i := s.current; i < len(s.runs); i++ {
		s.emit(RunCanceled, i, now)
	}
	s.runs = nil
	s.current = 0
	s.started = false
	s.handle = Handle{}
}

// Tick advances the active runs to now. It returns true when any progress
// value was written, meaning the host should request a redraw.
func (s *Scheduler) Tick(now time.Time) bool {
	changed := false
	for s.current < len(s.runs) {
		run := s.runs[s.current]
		if now.Before(s.startAt) {
			break
		}
		if !s.started {
			s.started = true
			s.emit(RunStarted, s.current, s.startAt)
		}
		value := 1.0
		if run.Duration > 0 {
			value = float64(now.Sub(s.startAt)) / float64(run.Duration)
		}
		if s.handle.Set(run.Slot(), value) {
			changed = true
		}
		if value < 1 {
			break
		}
		end := s.startAt.Add(run.Duration)
		s.emit(RunFinished, s.current, end)
		s.current++
		s.started = false
		if s.current < len(s.runs) {
			s.startAt = end.Add(s.runs[s.current].Delay)
		}
	}
	return changed
}

// Done reports whether no run is pending.
func (s *Scheduler) Done() bool {
	return s.current >= len(s.runs)
}

// Snapshot returns a copy of the current progress.
func (s *Scheduler) Snapshot() Snapshot {
	return s.progress.Snapshot()
}

// Handle returns the write handle of the live generation.
func (s *Scheduler) Handle() Handle {
	return s.handle
}

// Runs returns the planned runs of the live generation.
func (s *Scheduler) Runs() []Run {
	out := make([]Run, len(s.runs))
	copy(out, s.runs)
	return out
}

// Generation returns the live progress generation.
func (s *Scheduler) Generation() uint64 {
	return s.progress.Generation()
}

// Remaining returns the time until every run finishes, measured from now.
func (s *Scheduler) Remaining(now time.Time) time.Duration {
	if s.Done() {
		return 0
	}
	end := s.startAt
	for i := s.current; i < len(s.runs); i++ {
		if i > s.current {
			end = end.Add(s.runs[i].Delay)
		}
		end = end.Add(s.runs[i].Duration)
	}
	if end.Before(now) {
		return 0
	}
	return end.Sub(now)
}

func (s *Scheduler) emit(kind EventKind, index int, at time.Time) {
	if s.observe == nil {
		return
	}
	s.observe(Event{
		Kind:       kind,
		Index:      index,
		Run:        s.runs[index],
		Generation: s.progress.Generation(),
		At:         at,
	})
}
