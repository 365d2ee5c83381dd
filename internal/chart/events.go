package chart

// EventKind classifies chart notifications sent to the host.
type EventKind int

const (
	// AreaResized reports that the drawing area changed size.
	AreaResized EventKind = iota
	// RedrawRequested asks the host to repaint at its next opportunity.
	RedrawRequested
)

// Event is a notification for the host.
type Event struct {
	Kind   EventKind
	Width  float64
	Height float64
}

// Sink receives chart events. Implementations must tolerate any number of
// redraw requests per frame.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Emit implements Sink.
func (f SinkFunc) Emit(e Event) {
	f(e)
}

// Coalescer folds redraw requests into a single pending flag.
type Coalescer struct {
	pending  bool
	requests int
}

// Emit implements Sink.
func (c *Coalescer) Emit(e Event) {
	switch e.Kind {
	case RedrawRequested, AreaResized:
		c.pending = true
		c.requests++
	}
}

// Take reports whether a redraw is pending and clears the flag.
func (c *Coalescer) Take() bool {
	pending := c.pending
	c.pending = false
	return pending
}

// Requests returns how many requests were received in total.
func (c *Coalescer) Requests() int {
	return c.requests
}
