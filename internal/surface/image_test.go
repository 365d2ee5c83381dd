package surface

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/statsview/internal/chart"
	"github.com/verte-zerg/statsview/internal/model"
	"github.com/verte-zerg/statsview/internal/render"
)

func settledChart(t *testing.T, values []float64, full float64) (*chart.Chart, *Clock) {
	t.Helper()
	clock := NewClock(time.Unix(0, 0))
	c, err := chart.New(model.ChartConfig{
		TextSize:  20,
		LineWidth: 10,
		Density:   1,
		Colors:    []string{"#FF0000", "#00FF00", "#0000FF", "#FFFF00"},
		Style:     model.StyleSequential,
		Seed:      1,
	}, chart.WithClock(clock.Now))
	if err != nil {
		t.Fatalf("new chart: %v", err)
	}
	c.OnAreaResized(200, 200)
	c.SetFull(full)
	if err := c.SetData(values); err != nil {
		t.Fatalf("set data: %v", err)
	}
	return c, clock
}

func pixelAt(img image.Image, deg, r float64) (uint8, uint8, uint8) {
	rad := deg * math.Pi / 180
	x := int(math.Round(100 + r*math.Cos(rad)))
	y := int(math.Round(100 + r*math.Sin(rad)))
	cr, cg, cb, _ := img.At(x, y).RGBA()
	return uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8)
}

func TestImageDrawsSegments(t *testing.T) {
	c, clock := settledChart(t, []float64{500, 150, 50, 50, 100}, 1000)
	Settle(c, clock)
	im, err := NewImage(200, 200, nil)
	if err != nil {
		t.Fatalf("new image: %v", err)
	}
	if err := im.Draw(c.Frame()); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if r, g, b := pixelAt(im.Image(), 0, 95); r < 200 || g > 60 || b > 60 {
		t.Fatalf("expected red at 0 degrees, got %d,%d,%d", r, g, b)
	}
	if r, g, b := pixelAt(im.Image(), 240, 95); r < 180 || r > 225 || g < 180 || g > 225 || b < 180 || b > 225 {
		t.Fatalf("expected background gray at 240 degrees, got %d,%d,%d", r, g, b)
	}
	if _, _, _, a := im.Image().At(100, 50).RGBA(); a != 0 {
		t.Fatalf("expected transparent inside ring")
	}
	var buf bytes.Buffer
	if err := im.EncodePNG(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("expected png signature")
	}
}

func TestNewImageRejectsEmptySize(t *testing.T) {
	if _, err := NewImage(0, 10, nil); err == nil {
		t.Fatalf("expected error for zero width")
	}
}

func TestSVGContainsArcsAndLabel(t *testing.T) {
	c, clock := settledChart(t, []float64{500, 150, 50, 50, 100}, 1000)
	Settle(c, clock)
	var buf bytes.Buffer
	if err := NewSVG(&buf, 200, 200, "#FFFFFF").Draw(c.Frame()); err != nil {
		t.Fatalf("draw: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("expected svg document, got %q", out)
	}
	if n := strings.Count(out, "<path"); n != 7 {
		t.Fatalf("expected ring and 6 arc paths, got %d", n)
	}
	if !strings.Contains(out, "85.00%") {
		t.Fatalf("expected percentage label")
	}
	if !strings.Contains(out, "stroke:#ff0000") {
		t.Fatalf("expected first segment color")
	}
}

func TestSVGRingKeepsFractionalRadius(t *testing.T) {
	var buf bytes.Buffer
	ring := render.Circle{CenterX: 100.5, CenterY: 100.5, Radius: 97.5, Color: render.BackgroundColor, Stroke: render.Stroke{Width: 5}}
	if err := NewSVG(&buf, 201, 201, "").Draw([]render.Command{ring}); err != nil {
		t.Fatalf("draw: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<circle") {
		t.Fatalf("expected the ring as a path, got %q", out)
	}
	if !strings.Contains(out, "M198,100.5 A97.5,97.5") {
		t.Fatalf("expected exact ring geometry, got %q", out)
	}
}

func TestArcPathSplitsFullTurn(t *testing.T) {
	d := arcPath(0, 0, 10, 0, 360)
	if n := strings.Count(d, "A"); n != 2 {
		t.Fatalf("expected two arc commands, got %q", d)
	}
	if !strings.HasPrefix(d, "M10,0 ") {
		t.Fatalf("unexpected start %q", d)
	}
	if d := arcPath(0, 0, 10, 0, -90); !strings.Contains(d, "0 0,0 0,-10") {
		t.Fatalf("unexpected counter-clockwise arc %q", d)
	}
}

func TestExportFramesStopsWhenSettled(t *testing.T) {
	c, clock := settledChart(t, []float64{10, 20}, 100)
	var last []render.Command
	n, err := ExportFrames(c, clock, 10, 0, func(index int, cmds []render.Command) error {
		last = cmds
		return nil
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if n != 16 {
		t.Fatalf("expected 16 frames, got %d", n)
	}
	if c.Animating() {
		t.Fatalf("expected animation finished")
	}
	if len(last) == 0 {
		t.Fatalf("expected commands in last frame")
	}
}

func TestExportFramesHonorsLimit(t *testing.T) {
	c, clock := settledChart(t, []float64{10, 20}, 100)
	n, err := ExportFrames(c, clock, 10, 3, func(int, []render.Command) error { return nil })
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 frames, got %d", n)
	}
}

func TestDirFramesWritesNumberedFiles(t *testing.T) {
	dir := t.TempDir()
	c, clock := settledChart(t, []float64{10, 20}, 100)
	n, err := ExportFrames(c, clock, 4, 2, DirFrames(dir, FormatSVG, 100, 100, ""))
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	for i := 1; i <= n; i++ {
		path := filepath.Join(dir, fmt.Sprintf("frame-%04d.svg", i))
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s: %v", path, err)
		}
	}
}

func TestWriteFrameRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, "gif", 10, 10, "", nil); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}
