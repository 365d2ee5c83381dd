package surface

import (
	"image/color"
	"strings"
	"testing"

	"github.com/verte-zerg/statsview/internal/geometry"
	"github.com/verte-zerg/statsview/internal/render"
)

var (
	red  = color.NRGBA{R: 0xFF, A: 0xFF}
	gray = render.BackgroundColor
)

func ringBox() geometry.Rect {
	return geometry.Rect{Left: 5, Top: 5, Right: 35, Bottom: 35}
}

func TestBrailleFullRing(t *testing.T) {
	b := NewBraille(20, 10)
	if w, h := b.DotSize(); w != 40 || h != 40 {
		t.Fatalf("unexpected dot size %dx%d", w, h)
	}
	err := b.Draw([]render.Command{
		render.Circle{CenterX: 20, CenterY: 20, Radius: 15, Color: gray, Stroke: render.Stroke{Width: 2}},
	})
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	for _, p := range [][2]int{{35, 20}, {5, 20}, {20, 5}, {20, 34}} {
		if !b.Dot(p[0], p[1]) {
			t.Fatalf("expected dot at %v", p)
		}
	}
	if b.Dot(20, 20) {
		t.Fatalf("expected empty center")
	}
}

func TestBrailleArcRespectsAngles(t *testing.T) {
	for _, arc := range []render.Arc{
		{Box: ringBox(), StartAngle: -90, SweepAngle: 90, Color: red, Stroke: render.Stroke{Width: 2}},
		{Box: ringBox(), StartAngle: 0, SweepAngle: -90, Color: red, Stroke: render.Stroke{Width: 2}},
	} {
		b := NewBraille(20, 10)
		if err := b.Draw([]render.Command{arc}); err != nil {
			t.Fatalf("draw: %v", err)
		}
		if !b.Dot(31, 9) {
			t.Fatalf("expected upper right dot for sweep %.0f", arc.SweepAngle)
		}
		if b.Dot(9, 9) {
			t.Fatalf("unexpected upper left dot for sweep %.0f", arc.SweepAngle)
		}
	}
}

func TestBrailleLaterCommandsRepaint(t *testing.T) {
	b := NewBraille(20, 10)
	err := b.Draw([]render.Command{
		render.Circle{CenterX: 20, CenterY: 20, Radius: 15, Color: gray, Stroke: render.Stroke{Width: 2}},
		render.Arc{Box: ringBox(), StartAngle: -90, SweepAngle: 90, Color: red, Stroke: render.Stroke{Width: 2}},
	})
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if c, ok := b.CellColor(15, 2); !ok || c != red {
		t.Fatalf("expected red cell, got %v (set=%v)", c, ok)
	}
	if c, ok := b.CellColor(4, 2); !ok || c != gray {
		t.Fatalf("expected gray cell, got %v (set=%v)", c, ok)
	}
}

func TestBrailleCentersText(t *testing.T) {
	b := NewBraille(20, 10)
	err := b.Draw([]render.Command{
		render.Text{Content: "50%", X: 20, Y: 21, Style: render.TextStyle{Size: 4, Align: render.AlignCenter}},
	})
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	lines := strings.Split(b.String(false), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}
	row := []rune(lines[5])
	if got := string(row[9:12]); got != "50%" {
		t.Fatalf("expected centered label, got %q", string(row))
	}
	if len(row) != 20 {
		t.Fatalf("expected 20 cells, got %d", len(row))
	}
}

func TestBrailleEmptyCanvas(t *testing.T) {
	b := NewBraille(3, 1)
	if got := b.String(false); got != "⠀⠀⠀" {
		t.Fatalf("unexpected empty canvas %q", got)
	}
}
