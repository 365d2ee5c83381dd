// Package stats contains per-segment calculations and text reporting.
package stats

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/verte-zerg/statsview/internal/model"
	"github.com/verte-zerg/statsview/internal/palette"
	"github.com/verte-zerg/statsview/internal/render"
)

const (
	sparkChars       = " .:-=+*#%@"
	datasetNameWidth = 24
)

// Segment summarizes one value of a chart.
type Segment struct {
	Index   int
	Value   float64
	Percent float64
	Start   float64
	Sweep   float64
	Color   color.NRGBA
}

// Summarize computes share, start angle and sweep for every value at full
// progress, starting at -90 degrees. Start angles wrap at a full turn.
func Summarize(values []float64, full float64, colors render.Colors) []Segment {
	out := make([]Segment, 0, len(values))
	start := -90.0
	for i, v := range values {
		sweep := render.SweepAngle(v, full)
		seg := Segment{
			Index:   i,
			Value:   v,
			Percent: sweep / 360 * 100,
			Start:   start,
			Sweep:   sweep,
		}
		if colors != nil {
			seg.Color = colors.At(i)
		}
		out = append(out, seg)
		start = math.Mod(start+sweep, 360)
	}
	return out
}

// RenderTable prints a segment table followed by the total percentage.
func RenderTable(w io.Writer, values []float64, full float64, colors render.Colors) error {
	if len(values) == 0 {
		_, err := fmt.Fprintln(w, "No data.")
		return err
	}
	t := newTable(
		column{title: "#", align: alignRight},
		column{title: "Value", align: alignRight},
		column{title: "Share", align: alignRight},
		column{title: "Start", align: alignRight},
		column{title: "Sweep", align: alignRight},
		column{title: "Color"},
	)
	for _, seg := range Summarize(values, full, colors) {
		t.add(
			strconv.Itoa(seg.Index+1),
			formatValue(seg.Value),
			fmt.Sprintf("%.2f%%", seg.Percent),
			fmt.Sprintf("%.1f", seg.Start),
			fmt.Sprintf("%.1f", seg.Sweep),
			palette.Hex(seg.Color),
		)
	}
	if err := t.write(w); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total: %s of %s\n", render.Percent(values, full), formatValue(full))
	return err
}

// RenderDatasets prints one row per stored dataset.
func RenderDatasets(w io.Writer, datasets []model.DatasetSummary) error {
	if len(datasets) == 0 {
		_, err := fmt.Fprintln(w, "No datasets.")
		return err
	}
	t := newTable(
		column{title: "Name", maxWidth: datasetNameWidth},
		column{title: "Values", align: alignRight},
		column{title: "Full", align: alignRight},
		column{title: "Filled", align: alignRight},
		column{title: "Updated"},
	)
	for _, ds := range datasets {
		t.add(
			ds.Name,
			strconv.Itoa(ds.Count),
			formatValue(ds.Full),
			render.Percent([]float64{ds.Sum}, ds.Full),
			ds.UpdatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return t.write(w)
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
