// Package chart binds the data model, animation scheduler, palette and
// geometry into a single donut chart component.
package chart

import (
	"errors"
	"fmt"
	"math"

	"github.com/verte-zerg/statsview/internal/model"
)

// ErrInvalidInput is returned for negative or non-finite data values.
var ErrInvalidInput = errors.New("invalid chart input")

// Model is an immutable snapshot of the committed chart data.
type Model struct {
	data     []float64
	full     float64
	style    model.Style
	rotation bool
}

// NewModel validates and copies values into a Model.
func NewModel(values []float64, full float64, style model.Style, rotation bool) (Model, error) {
	if err := ValidateValues(values); err != nil {
		return Model{}, err
	}
	if !style.Valid() {
		return Model{}, fmt.Errorf("%w: unknown style %d", ErrInvalidInput, int(style))
	}
	data := make([]float64, len(values))
	copy(data, values)
	return Model{data: data, full: full, style: style, rotation: rotation}, nil
}

// ValidateValues rejects negative, NaN and infinite values.
func ValidateValues(values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: value %d is not finite", ErrInvalidInput, i)
		}
		if v < 0 {
			return fmt.Errorf("%w: value %d is negative (%g)", ErrInvalidInput, i, v)
		}
	}
	return nil
}

// Data returns a copy of the values.
func (m Model) Data() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)
	return out
}

// Len returns the number of segments.
func (m Model) Len() int { return len(m.data) }

// Full returns the full-scale total.
func (m Model) Full() float64 { return m.full }

// Style returns the animation style.
func (m Model) Style() model.Style { return m.style }

// Rotation reports whether the rotation effect is enabled.
func (m Model) Rotation() bool { return m.rotation }

// Sum returns the total of all values.
func (m Model) Sum() float64 {
	sum := 0.0
	for _, v := range m.data {
		sum += v
	}
	return sum
}

func (m Model) withFull(full float64) Model {
	m.full = full
	return m
}

func (m Model) withStyle(style model.Style) Model {
	m.style = style
	return m
}

func (m Model) withRotation(rotation bool) Model {
	m.rotation = rotation
	return m
}
