// Package palette resolves segment colors.
package palette

import (
	"fmt"
	"image/color"
	"math/rand"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Size is the number of configurable palette slots.
const Size = 4

// Palette hands out one stable color per segment index. Configured slots are
// used as-is; unset slots and indexes past Size get a random opaque color
// that is generated once and cached.
type Palette struct {
	rnd    *rand.Rand
	colors []color.NRGBA
}

// New builds a palette from hex colors. Empty entries fall back to random
// colors drawn from a generator seeded with seed (0 seeds from the clock).
func New(hexColors []string, seed int64) (*Palette, error) {
	if len(hexColors) > Size {
		return nil, fmt.Errorf("at most %d colors can be configured, got %d", Size, len(hexColors))
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p := &Palette{rnd: rand.New(rand.NewSource(seed))}
	for i := 0; i < Size; i++ {
		value := ""
		if i < len(hexColors) {
			value = strings.TrimSpace(hexColors[i])
		}
		if value == "" {
			p.colors = append(p.colors, p.random())
			continue
		}
		c, err := ParseHex(value)
		if err != nil {
			return nil, fmt.Errorf("color%d: %w", i+1, err)
		}
		p.colors = append(p.colors, c)
	}
	return p, nil
}

// At returns the color for segment index i. Negative indexes map to slot 0.
func (p *Palette) At(i int) color.NRGBA {
	if i < 0 {
		i = 0
	}
	for len(p.colors) <= i {
		p.colors = append(p.colors, p.random())
	}
	return p.colors[i]
}

// Len reports how many colors have been resolved so far.
func (p *Palette) Len() int {
	return len(p.colors)
}

func (p *Palette) random() color.NRGBA {
	v := p.rnd.Uint32()
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
}

// ParseHex parses "#RRGGBB" (or "#RGB") into an opaque color.
func ParseHex(value string) (color.NRGBA, error) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "#") {
		value = "#" + value
	}
	c, err := colorful.Hex(value)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", value, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}, nil
}

// Hex formats a color as "#rrggbb".
func Hex(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cf.Hex()
}
