// Package generator builds random chart datasets.
package generator

import (
	"math"
	"math/rand"
	"time"
)

// Generator produces randomized value vectors.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate returns count non-negative values whose sum is fill*full,
// rounded to whole numbers. fill is clamped to [0,1].
func (g *Generator) Generate(count int, full, fill float64) []float64 {
	if count <= 0 {
		return nil
	}
	fill = math.Max(0, math.Min(fill, 1))
	weights := make([]float64, count)
	total := 0.0
	for i := range weights {
		w := 0.2 + g.rnd.Float64()
		weights[i] = w
		total += w
	}
	budget := math.Floor(full * fill)
	values := make([]float64, count)
	assigned := 0.0
	for i, w := range weights {
		v := math.Floor(budget * w / total)
		values[i] = v
		assigned += v
	}
	// Hand the rounding remainder to the largest share.
	values[largest(weights)] += budget - assigned
	return values
}

// Fill returns a random fill ratio in [min,max].
func (g *Generator) Fill(min, max float64) float64 {
	if max < min {
		min, max = max, min
	}
	return min + g.rnd.Float64()*(max-min)
}

func largest(weights []float64) int {
	idx := 0
	for i, w := range weights {
		if w > weights[idx] {
			idx = i
		}
	}
	return idx
}
