package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/statsview/internal/chart"
	"github.com/verte-zerg/statsview/internal/model"
	"github.com/verte-zerg/statsview/internal/palette"
	"github.com/verte-zerg/statsview/internal/stats"
	"github.com/verte-zerg/statsview/internal/surface"
)

const (
	defaultWidth      = 400
	defaultHeight     = 400
	defaultFormat     = surface.FormatPNG
	defaultBackground = "#FFFFFF"
	defaultFPS        = 30
	defaultTextCols   = 40
)

const (
	formatText  = "text"
	formatTable = "table"
)

var (
	renderOut        string
	renderFormat     string
	renderWidth      int
	renderHeight     int
	renderBackground string
	renderAt         time.Duration
	renderFrames     int
	renderFPS        int
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [values...]",
		Short: "Render the chart to an image, text or a table",
		RunE:  runRenderCmd,
	}
	addChartFlags(cmd)
	cmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file, or directory for frame sequences (default: stdout)")
	cmd.Flags().StringVar(&renderFormat, "format", defaultFormat, "output format: png, svg, text or table")
	cmd.Flags().IntVar(&renderWidth, "width", defaultWidth, "width in pixels (cells for text)")
	cmd.Flags().IntVar(&renderHeight, "height", defaultHeight, "height in pixels (cells for text)")
	cmd.Flags().StringVar(&renderBackground, "background", defaultBackground, "background color, empty for transparent")
	cmd.Flags().DurationVar(&renderAt, "at", 0, "render the animation at this offset (default: settled)")
	cmd.Flags().IntVar(&renderFrames, "frames", 0, "write a frame sequence of at most N frames (-1: until settled)")
	cmd.Flags().IntVar(&renderFPS, "fps", defaultFPS, "frames per second for frame sequences")
	return cmd
}

func runRenderCmd(cmd *cobra.Command, args []string) (err error) {
	cfg, fileCfg, err := loadChartConfig(cmd)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "width", &renderWidth, fileCfg.Render.Width)
	applyIntConfig(cmd, "height", &renderHeight, fileCfg.Render.Height)
	applyStringConfig(cmd, "format", &renderFormat, fileCfg.Render.Format)
	applyStringConfig(cmd, "background", &renderBackground, fileCfg.Render.Background)

	rcfg := model.RenderConfig{
		Width:      renderWidth,
		Height:     renderHeight,
		Format:     strings.ToLower(strings.TrimSpace(renderFormat)),
		Background: renderBackground,
		Out:        renderOut,
		At:         renderAt,
		Frames:     renderFrames,
		FPS:        renderFPS,
	}
	if err := validateRenderConfig(rcfg); err != nil {
		return err
	}

	values, full, err := resolveValues(cmd, args, newGenerator(cfg.Seed))
	if err != nil {
		return err
	}

	if rcfg.Frames != 0 {
		return renderFrameSequence(cfg, rcfg, values, full)
	}

	out, closeOut, err := openOutput(cmd, rcfg.Out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOut(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	switch rcfg.Format {
	case formatTable:
		pal, err := palette.New(cfg.Colors, cfg.Seed)
		if err != nil {
			return fmt.Errorf("failed to build palette: %w", err)
		}
		return stats.RenderTable(out, values, full, pal)
	case formatText:
		return renderText(cmd, out, cfg, rcfg, values, full)
	default:
		if err := checkBinaryOutput(rcfg, isTerminal(os.Stdout)); err != nil {
			return err
		}
		c, clock, err := newOfflineChart(cfg, values, full, float64(rcfg.Width), float64(rcfg.Height))
		if err != nil {
			return err
		}
		advance(c, clock, cmd, rcfg.At)
		return surface.WriteFrame(out, rcfg.Format, rcfg.Width, rcfg.Height, rcfg.Background, c.Frame())
	}
}

func validateRenderConfig(rcfg model.RenderConfig) error {
	switch rcfg.Format {
	case surface.FormatPNG, surface.FormatSVG, formatText, formatTable:
	default:
		return fmt.Errorf("--format must be one of png, svg, text, table")
	}
	if rcfg.Width <= 0 || rcfg.Height <= 0 {
		return fmt.Errorf("--width and --height must be > 0")
	}
	if rcfg.At < 0 {
		return fmt.Errorf("--at must be >= 0")
	}
	if rcfg.Frames != 0 {
		if rcfg.Format != surface.FormatPNG && rcfg.Format != surface.FormatSVG {
			return fmt.Errorf("--frames requires --format png or svg")
		}
		if toStdout(rcfg.Out) {
			return fmt.Errorf("--frames requires --out DIR")
		}
		if rcfg.FPS <= 0 {
			return fmt.Errorf("--fps must be > 0")
		}
	}
	return nil
}

func renderFrameSequence(cfg model.ChartConfig, rcfg model.RenderConfig, values []float64, full float64) error {
	if err := os.MkdirAll(rcfg.Out, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	c, clock, err := newOfflineChart(cfg, values, full, float64(rcfg.Width), float64(rcfg.Height))
	if err != nil {
		return err
	}
	limit := rcfg.Frames
	if limit < 0 {
		limit = 0
	}
	write := surface.DirFrames(rcfg.Out, rcfg.Format, rcfg.Width, rcfg.Height, rcfg.Background)
	n, err := surface.ExportFrames(c, clock, rcfg.FPS, limit, write)
	if err != nil {
		return err
	}
	logErrf("Wrote %d frames to %s\n", n, rcfg.Out)
	return nil
}

func renderText(cmd *cobra.Command, out io.Writer, cfg model.ChartConfig, rcfg model.RenderConfig, values []float64, full float64) error {
	cols := defaultTextCols
	rows := 0
	if cmd.Flags().Changed("width") {
		cols = rcfg.Width
	} else if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		cols = w
		rows = h - 1
	}
	if cmd.Flags().Changed("height") {
		rows = rcfg.Height
	} else if rows <= 0 || rows > cols/2 {
		rows = cols / 2
	}
	if rows <= 0 {
		return fmt.Errorf("text area too small")
	}
	cfg.Density *= surface.BrailleDensity
	c, clock, err := newOfflineChart(cfg, values, full, float64(cols*2), float64(rows*4))
	if err != nil {
		return err
	}
	advance(c, clock, cmd, rcfg.At)
	canvas := surface.NewBraille(cols, rows)
	if err := canvas.Draw(c.Frame()); err != nil {
		return err
	}
	useColor := toStdout(rcfg.Out) && isTerminal(os.Stdout)
	if _, err := fmt.Fprintln(out, canvas.String(useColor)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// newOfflineChart builds a chart on a synthetic clock sized to the target.
func newOfflineChart(cfg model.ChartConfig, values []float64, full, width, height float64) (*chart.Chart, *surface.Clock, error) {
	clock := surface.NewClock(time.Now())
	c, err := chart.New(cfg, chart.WithClock(clock.Now))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create chart: %w", err)
	}
	c.OnAreaResized(width, height)
	c.SetFull(full)
	if err := c.SetData(values); err != nil {
		return nil, nil, err
	}
	return c, clock, nil
}

// advance moves the chart to --at when given, otherwise to the settled state.
func advance(c *chart.Chart, clock *surface.Clock, cmd *cobra.Command, at time.Duration) {
	if !cmd.Flags().Changed("at") {
		surface.Settle(c, clock)
		return
	}
	clock.Advance(at)
	c.Tick(clock.Now())
}

func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if toStdout(path) {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	return w, func() error {
		if err := w.Flush(); err != nil {
			if cerr := f.Close(); cerr != nil {
				// Best-effort close after a failed flush.
				_ = cerr
			}
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", path, err)
		}
		return nil
	}, nil
}

func toStdout(path string) bool {
	return path == "" || path == "-"
}

// checkBinaryOutput rejects image formats bound for an interactive stdout.
func checkBinaryOutput(rcfg model.RenderConfig, stdoutIsTerminal bool) error {
	if toStdout(rcfg.Out) && stdoutIsTerminal {
		return fmt.Errorf("refusing to write %s to a terminal; use --out", rcfg.Format)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
