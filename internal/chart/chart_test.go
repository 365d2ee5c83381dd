package chart

import (
	"errors"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/verte-zerg/statsview/internal/anim"
	"github.com/verte-zerg/statsview/internal/model"
	"github.com/verte-zerg/statsview/internal/render"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) time.Time {
	f.t = f.t.Add(d)
	return f.t
}

func testConfig(style model.Style) model.ChartConfig {
	return model.ChartConfig{
		TextSize:  20,
		LineWidth: 10,
		Density:   1,
		Colors:    []string{"#FF0000", "#00FF00", "#0000FF", "#FFFF00"},
		Style:     style,
		Seed:      1,
	}
}

func newTestChart(t *testing.T, style model.Style, opts ...Option) (*Chart, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(0, 0)}
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	c, err := New(testConfig(style), opts...)
	if err != nil {
		t.Fatalf("new chart: %v", err)
	}
	c.OnAreaResized(200, 200)
	return c, clock
}

func arcSweeps(cmds []render.Command) []float64 {
	var out []float64
	for _, cmd := range cmds {
		if a, ok := cmd.(render.Arc); ok {
			out = append(out, a.SweepAngle)
		}
	}
	return out
}

func TestSetDataEmptyRendersNothing(t *testing.T) {
	c, _ := newTestChart(t, model.StyleSequential)
	c.SetFull(100)
	if err := c.SetData([]float64{}); err != nil {
		t.Fatalf("set data: %v", err)
	}
	if cmds := c.Frame(); len(cmds) != 0 {
		t.Fatalf("expected no commands, got %d", len(cmds))
	}
	if c.Animating() {
		t.Fatalf("expected no animation for empty data")
	}
}

func TestSetDataRejectsInvalidValues(t *testing.T) {
	c, _ := newTestChart(t, model.StyleSequential)
	if err := c.SetData([]float64{1, 2}); err != nil {
		t.Fatalf("set data: %v", err)
	}
	for _, bad := range [][]float64{{1, -1}, {math.NaN()}, {math.Inf(1)}} {
		err := c.SetData(bad)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %v, got %v", bad, err)
		}
	}
	data := c.Model().Data()
	if len(data) != 2 || data[0] != 1 || data[1] != 2 {
		t.Fatalf("expected prior data to stay committed, got %v", data)
	}
}

func TestSetDataCopiesInput(t *testing.T) {
	c, _ := newTestChart(t, model.StyleSequential)
	values := []float64{1, 2, 3}
	if err := c.SetData(values); err != nil {
		t.Fatalf("set data: %v", err)
	}
	values[0] = 99
	if got := c.Model().Data()[0]; got != 1 {
		t.Fatalf("expected model to own its copy, got %v", got)
	}
}

func TestSequentialEndToEnd(t *testing.T) {
	c, clock := newTestChart(t, model.StyleSequential)
	c.SetFull(1000)
	if err := c.SetData([]float64{500, 150, 50, 50, 100}); err != nil {
		t.Fatalf("set data: %v", err)
	}
	for c.Animating() {
		c.Tick(clock.Advance(16 * time.Millisecond))
	}
	sweeps := arcSweeps(c.Frame())
	want := []float64{180, 54, 18, 18, 36, 1}
	if len(sweeps) != len(want) {
		t.Fatalf("expected %d arcs, got %d", len(want), len(sweeps))
	}
	for i := range want {
		if math.Abs(sweeps[i]-want[i]) > 1e-9 {
			t.Fatalf("arc %d: expected %v, got %v", i, want[i], sweeps[i])
		}
	}
	cmds := c.Frame()
	txt, ok := cmds[len(cmds)-1].(render.Text)
	if !ok || txt.Content != "85.00%" {
		t.Fatalf("expected 85.00%% text, got %+v", cmds[len(cmds)-1])
	}
}

func TestRestartDropsPriorGeneration(t *testing.T) {
	var events []anim.Event
	c, clock := newTestChart(t, model.StyleSequential,
		WithSchedulerOptions(anim.WithObserver(func(e anim.Event) { events = append(events, e) })))
	c.SetFull(100)
	if err := c.SetData([]float64{10, 20, 30}); err != nil {
		t.Fatalf("set data: %v", err)
	}
	c.Tick(clock.Advance(700 * time.Millisecond))
	firstGen := events[0].Generation
	if c.Progress().Slot(0) == 0 {
		t.Fatalf("expected first run to have progressed")
	}

	if err := c.SetData([]float64{40, 50}); err != nil {
		t.Fatalf("set data: %v", err)
	}
	mark := len(events)
	snap := c.Progress()
	if len(snap.Slots) != 2 || snap.Slots[0] != 0 || snap.Slots[1] != 0 {
		t.Fatalf("expected fresh zero progress, got %v", snap.Slots)
	}

	for c.Animating() {
		c.Tick(clock.Advance(50 * time.Millisecond))
	}
	for _, e := range events[mark:] {
		if e.Generation == firstGen {
			t.Fatalf("observed event from canceled generation after restart: %+v", e)
		}
	}
	for _, e := range events[:mark] {
		if e.Generation != firstGen {
			t.Fatalf("unexpected generation before restart: %+v", e)
		}
	}
}

func TestSetFullDoesNotRestart(t *testing.T) {
	c, clock := newTestChart(t, model.StyleSimultaneous)
	c.SetFull(100)
	if err := c.SetData([]float64{25, 25}); err != nil {
		t.Fatalf("set data: %v", err)
	}
	c.Tick(clock.Advance(1750 * time.Millisecond))
	before := c.Progress().Slot(0)
	c.SetFull(200)
	if got := c.Progress().Slot(0); got != before {
		t.Fatalf("expected progress %v to survive SetFull, got %v", before, got)
	}
	if !c.Animating() {
		t.Fatalf("expected animation to continue")
	}
	sweeps := arcSweeps(c.Frame())
	if math.Abs(sweeps[0]-45*before) > 1e-9 {
		t.Fatalf("expected sweep rescaled to new full, got %v", sweeps[0])
	}
}

func TestZeroFullNeverEmitsNonFinite(t *testing.T) {
	c, clock := newTestChart(t, model.StyleSequential)
	if err := c.SetData([]float64{10, 20}); err != nil {
		t.Fatalf("set data: %v", err)
	}
	for c.Animating() {
		c.Tick(clock.Advance(100 * time.Millisecond))
	}
	cmds := c.Frame()
	if len(cmds) == 0 {
		t.Fatalf("expected a ring")
	}
	for _, cmd := range cmds {
		if a, ok := cmd.(render.Arc); ok {
			if math.IsNaN(a.SweepAngle) || math.IsInf(a.SweepAngle, 0) || math.IsNaN(a.StartAngle) {
				t.Fatalf("non-finite arc %+v", a)
			}
		}
	}
	if txt := cmds[len(cmds)-1].(render.Text); txt.Content != "0.00%" {
		t.Fatalf("expected fallback text, got %q", txt.Content)
	}
}

func TestHugeValuesNeverEmitInfiniteAngles(t *testing.T) {
	c, clock := newTestChart(t, model.StyleSequential)
	c.SetFull(360)
	if err := c.SetData([]float64{1.7e308, 1.7e308, 1}); err != nil {
		t.Fatalf("set data: %v", err)
	}
	for c.Animating() {
		c.Tick(clock.Advance(100 * time.Millisecond))
	}
	cmds := c.Frame()
	for i, cmd := range cmds {
		if a, ok := cmd.(render.Arc); ok {
			if math.IsInf(a.StartAngle, 0) || math.IsNaN(a.StartAngle) || math.IsInf(a.SweepAngle, 0) {
				t.Fatalf("cmd %d: non-finite arc %+v", i, a)
			}
		}
	}
	if txt := cmds[len(cmds)-1].(render.Text); txt.Content == "0.00%" {
		t.Fatalf("expected a real percentage, got %q", txt.Content)
	}
}

func TestRedrawRequestsAreCoalesced(t *testing.T) {
	var sink Coalescer
	c, clock := newTestChart(t, model.StyleSimultaneous, WithSink(&sink))
	sink.Take()
	c.SetFull(10)
	if err := c.SetData([]float64{1, 2}); err != nil {
		t.Fatalf("set data: %v", err)
	}
	now := clock.Advance(1100 * time.Millisecond)
	c.Tick(now)
	c.Tick(now.Add(time.Millisecond))
	if sink.Requests() < 4 {
		t.Fatalf("expected several requests, got %d", sink.Requests())
	}
	if !sink.Take() {
		t.Fatalf("expected a pending redraw")
	}
	if sink.Take() {
		t.Fatalf("expected requests to fold into one redraw")
	}
}

func TestResizeEmitsEvent(t *testing.T) {
	var got []Event
	c, _ := newTestChart(t, model.StyleSequential, WithSink(SinkFunc(func(e Event) { got = append(got, e) })))
	got = nil
	c.OnAreaResized(300, 120)
	if len(got) == 0 || got[0].Kind != AreaResized || got[0].Width != 300 || got[0].Height != 120 {
		t.Fatalf("expected AreaResized event, got %+v", got)
	}
	if g := c.Geometry(); g.Radius != 55 || g.CenterX != 150 {
		t.Fatalf("unexpected geometry %+v", g)
	}
}

func TestSetStyleRestartsWithNewLayout(t *testing.T) {
	c, clock := newTestChart(t, model.StyleSequential)
	c.SetFull(100)
	if err := c.SetData([]float64{10, 20, 30}); err != nil {
		t.Fatalf("set data: %v", err)
	}
	c.Tick(clock.Advance(time.Second))
	if err := c.SetStyle(model.StyleSplit); err != nil {
		t.Fatalf("set style: %v", err)
	}
	if got := len(c.Progress().Slots); got != 1 {
		t.Fatalf("expected one shared slot, got %d", got)
	}
	if err := c.SetStyle(model.Style(9)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFallbackColorsStableAcrossFrames(t *testing.T) {
	c, clock := newTestChart(t, model.StyleSimultaneous)
	c.SetFull(100)
	if err := c.SetData([]float64{1, 1, 1, 1, 1, 1}); err != nil {
		t.Fatalf("set data: %v", err)
	}
	c.Tick(clock.Advance(3 * time.Second))
	first := c.Frame()
	second := c.Frame()
	for i := range first {
		a, ok := first[i].(render.Arc)
		if !ok {
			continue
		}
		if b := second[i].(render.Arc); a.Color != b.Color {
			t.Fatalf("command %d changed color between frames", i)
		}
	}
}

func TestColorsAndTextColor(t *testing.T) {
	c, _ := newTestChart(t, model.StyleSequential)
	c.SetFull(100)
	if err := c.SetData([]float64{20, 30}); err != nil {
		t.Fatalf("set data: %v", err)
	}
	if got := c.Color(0); got != (color.NRGBA{R: 0xFF, A: 0xFF}) {
		t.Fatalf("expected configured first color, got %v", got)
	}
	if got := c.Model().Sum(); got != 50 {
		t.Fatalf("expected sum 50, got %v", got)
	}
	blue := color.NRGBA{B: 0xFF, A: 0xFF}
	c.SetTextColor(blue)
	cmds := c.Frame()
	text, ok := cmds[len(cmds)-1].(render.Text)
	if !ok {
		t.Fatalf("expected text as last command")
	}
	if text.Style.Color != blue || text.Content != "50.00%" {
		t.Fatalf("unexpected label %+v", text)
	}
}
