package chart

import (
	"fmt"
	"image/color"
	"time"

	"github.com/verte-zerg/statsview/internal/anim"
	"github.com/verte-zerg/statsview/internal/geometry"
	"github.com/verte-zerg/statsview/internal/model"
	"github.com/verte-zerg/statsview/internal/palette"
	"github.com/verte-zerg/statsview/internal/render"
)

// Chart is the donut chart component. It is not safe for concurrent use;
// the host calls it from a single event loop.
type Chart struct {
	model     Model
	sched     *anim.Scheduler
	palette   *palette.Palette
	geom      geometry.Geometry
	lineWidth float64
	textSize  float64
	textColor color.NRGBA
	sink      Sink
	now       func() time.Time
}

// Option configures a Chart.
type Option func(*Chart)

// WithSink sets the receiver for resize and redraw events.
func WithSink(sink Sink) Option {
	return func(c *Chart) {
		c.sink = sink
	}
}

// WithClock overrides the time source used when data changes.
func WithClock(now func() time.Time) Option {
	return func(c *Chart) {
		c.now = now
	}
}

// WithSchedulerOptions forwards options to the animation scheduler.
func WithSchedulerOptions(opts ...anim.Option) Option {
	return func(c *Chart) {
		c.sched = anim.NewScheduler(opts...)
	}
}

// DefaultTextColor paints the percentage label.
var DefaultTextColor = color.NRGBA{A: 0xFF}

// New builds a chart from configuration. Colors are resolved once here.
func New(cfg model.ChartConfig, opts ...Option) (*Chart, error) {
	pal, err := palette.New(cfg.Colors, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to build palette: %w", err)
	}
	if !cfg.Style.Valid() {
		return nil, fmt.Errorf("unknown animation style %d", int(cfg.Style))
	}
	c := &Chart{
		model:     Model{style: cfg.Style, rotation: cfg.Rotation},
		palette:   pal,
		lineWidth: cfg.LineWidthPx(),
		textSize:  cfg.TextSizePx(),
		textColor: DefaultTextColor,
		now:       time.Now,
	}
	if cfg.TextColor != "" {
		tc, err := palette.ParseHex(cfg.TextColor)
		if err != nil {
			return nil, fmt.Errorf("text color: %w", err)
		}
		c.textColor = tc
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sched == nil {
		c.sched = anim.NewScheduler()
	}
	return c, nil
}

// SetTextColor changes the percentage label color.
func (c *Chart) SetTextColor(col color.NRGBA) {
	c.textColor = col
	c.requestRedraw()
}

// SetData commits a new value vector and restarts the animation. Invalid
// values leave the previous data committed.
func (c *Chart) SetData(values []float64) error {
	next, err := NewModel(values, c.model.full, c.model.style, c.model.rotation)
	if err != nil {
		return err
	}
	c.model = next
	c.restart()
	return nil
}

// SetFull changes the full-scale total without restarting the animation.
func (c *Chart) SetFull(full float64) {
	c.model = c.model.withFull(full)
	c.requestRedraw()
}

// SetStyle switches the animation style and restarts the animation.
func (c *Chart) SetStyle(style model.Style) error {
	if !style.Valid() {
		return fmt.Errorf("%w: unknown style %d", ErrInvalidInput, int(style))
	}
	c.model = c.model.withStyle(style)
	c.restart()
	return nil
}

// SetRotation toggles the rotation effect.
func (c *Chart) SetRotation(enabled bool) {
	c.model = c.model.withRotation(enabled)
	c.requestRedraw()
}

// OnAreaResized recomputes the ring geometry for the new drawing area.
func (c *Chart) OnAreaResized(width, height float64) {
	c.geom = geometry.Resize(width, height, c.lineWidth)
	c.emit(Event{Kind: AreaResized, Width: width, Height: height})
	c.requestRedraw()
}

// Tick advances the animation to now.
func (c *Chart) Tick(now time.Time) {
	if c.sched.Tick(now) {
		c.requestRedraw()
	}
}

// Animating reports whether any animation run is still pending.
func (c *Chart) Animating() bool {
	return !c.sched.Done()
}

// Remaining returns how long the current animation still runs.
func (c *Chart) Remaining(now time.Time) time.Duration {
	return c.sched.Remaining(now)
}

// Model returns the committed model.
func (c *Chart) Model() Model {
	return c.model
}

// Geometry returns the current ring geometry.
func (c *Chart) Geometry() geometry.Geometry {
	return c.geom
}

// Progress returns a snapshot of the animation progress.
func (c *Chart) Progress() anim.Snapshot {
	return c.sched.Snapshot()
}

// Color returns the color assigned to segment i.
func (c *Chart) Color(i int) color.NRGBA {
	return c.palette.At(i)
}

// Scene assembles the renderer input for the current state.
func (c *Chart) Scene() render.Scene {
	return render.Scene{
		Data:      c.model.data,
		Full:      c.model.full,
		Style:     c.model.style,
		Rotation:  c.model.rotation,
		Progress:  c.sched.Snapshot(),
		Geometry:  c.geom,
		Colors:    c.palette,
		TextSize:  c.textSize,
		TextColor: c.textColor,
	}
}

// Frame renders the current state to draw commands.
func (c *Chart) Frame() []render.Command {
	return render.Render(c.Scene())
}

func (c *Chart) restart() {
	c.sched.Start(c.model.style, c.model.Len(), c.now())
	c.requestRedraw()
}

func (c *Chart) requestRedraw() {
	c.emit(Event{Kind: RedrawRequested})
}

func (c *Chart) emit(e Event) {
	if c.sink == nil {
		return
	}
	c.sink.Emit(e)
}
