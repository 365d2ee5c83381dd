package surface

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/statsview/internal/chart"
	"github.com/verte-zerg/statsview/internal/palette"
	"github.com/verte-zerg/statsview/internal/render"
)

// Image formats understood by WriteFrame.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Clock is a manually advanced time source for offline rendering.
type Clock struct {
	now time.Time
}

// NewClock returns a clock stopped at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current synthetic time.
func (c *Clock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// FrameFunc receives one rendered frame. Indexes start at 1.
type FrameFunc func(index int, cmds []render.Command) error

// ExportFrames replays the chart animation at fps, handing every frame to
// write. It stops after the frame in which the animation finishes, or after
// limit frames when limit is positive. The chart must use clock as its time
// source.
func ExportFrames(c *chart.Chart, clock *Clock, fps, limit int, write FrameFunc) (int, error) {
	if fps <= 0 {
		return 0, fmt.Errorf("invalid fps %d", fps)
	}
	step := time.Second / time.Duration(fps)
	count := 0
	for {
		c.Tick(clock.Now())
		count++
		if err := write(count, c.Frame()); err != nil {
			return count, fmt.Errorf("failed to write frame %d: %w", count, err)
		}
		if !c.Animating() || (limit > 0 && count >= limit) {
			return count, nil
		}
		clock.Advance(step)
	}
}

// Settle advances clock past the end of the current animation and ticks the
// chart there.
func Settle(c *chart.Chart, clock *Clock) {
	clock.Advance(c.Remaining(clock.Now()))
	c.Tick(clock.Now())
}

// DirFrames returns a FrameFunc writing frame-0001.<format> files into dir.
func DirFrames(dir, format string, width, height int, background string) FrameFunc {
	return func(index int, cmds []render.Command) error {
		var buf bytes.Buffer
		if err := WriteFrame(&buf, format, width, height, background, cmds); err != nil {
			return err
		}
		path := filepath.Join(dir, fmt.Sprintf("frame-%04d.%s", index, format))
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return nil
	}
}

// WriteFrame encodes cmds as a single png or svg image.
func WriteFrame(w io.Writer, format string, width, height int, background string, cmds []render.Command) error {
	switch format {
	case FormatPNG:
		var bg color.Color
		if background != "" {
			c, err := palette.ParseHex(background)
			if err != nil {
				return fmt.Errorf("background: %w", err)
			}
			bg = c
		}
		im, err := NewImage(width, height, bg)
		if err != nil {
			return err
		}
		if err := im.Draw(cmds); err != nil {
			return err
		}
		return im.EncodePNG(w)
	case FormatSVG:
		return NewSVG(w, width, height, background).Draw(cmds)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}
