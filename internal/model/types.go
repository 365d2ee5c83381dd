// Package model defines shared data structures.
package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Style selects how animation progress is distributed across segments.
type Style int

const (
	// StyleSequential sweeps segments one after another.
	StyleSequential Style = iota
	// StyleSimultaneous sweeps all segments together.
	StyleSimultaneous
	// StyleSplit sweeps every segment in both directions from its start.
	StyleSplit
)

var styleNames = []string{"sequential", "simultaneous", "split"}

// Styles lists every style in cycle order.
func Styles() []Style {
	return []Style{StyleSequential, StyleSimultaneous, StyleSplit}
}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return fmt.Sprintf("style(%d)", int(s))
	}
	return styleNames[s]
}

// Valid reports whether s is a known style.
func (s Style) Valid() bool {
	return s >= StyleSequential && s <= StyleSplit
}

// Next returns the following style, wrapping around.
func (s Style) Next() Style {
	return Style((int(s) + 1) % len(styleNames))
}

// ParseStyle accepts a style name or its numeric value.
func ParseStyle(value string) (Style, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	for i, name := range styleNames {
		if value == name {
			return Style(i), nil
		}
	}
	n, err := strconv.Atoi(value)
	if err != nil || !Style(n).Valid() {
		return 0, fmt.Errorf("unknown animation style %q (expected %s or 0-2)", value, strings.Join(styleNames, ", "))
	}
	return Style(n), nil
}

// ChartConfig holds the resolved chart settings handed to the core.
type ChartConfig struct {
	TextSize  float64 // density units
	LineWidth float64 // density units
	Density   float64 // pixels per density unit
	Colors    []string
	TextColor string
	Style     Style
	Rotation  bool
	Seed      int64
}

// TextSizePx returns the text size in pixels.
func (c ChartConfig) TextSizePx() float64 {
	return c.TextSize * c.density()
}

// LineWidthPx returns the stroke width in pixels.
func (c ChartConfig) LineWidthPx() float64 {
	return c.LineWidth * c.density()
}

func (c ChartConfig) density() float64 {
	if c.Density <= 0 {
		return 1
	}
	return c.Density
}

// RenderConfig defines options for offline rendering.
type RenderConfig struct {
	Width      int
	Height     int
	Format     string
	Background string
	Out        string
	At         time.Duration
	Frames     int
	FPS        int
}

// Dataset is a named value vector with its full-scale total.
type Dataset struct {
	Name      string
	Full      float64
	Values    []float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DatasetSummary describes a stored dataset without its values.
type DatasetSummary struct {
	Name      string
	Full      float64
	Count     int
	Sum       float64
	UpdatedAt time.Time
}
