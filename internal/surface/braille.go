package surface

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/statsview/internal/palette"
	"github.com/verte-zerg/statsview/internal/render"
)

// brailleBase is the code point of the empty braille pattern.
const brailleBase = 0x2800

// BrailleDensity converts density units to braille dots.
const BrailleDensity = 0.5

type brailleCell struct {
	mask  uint8
	color color.NRGBA
}

type textRun struct {
	row   int
	col   int
	runes []rune
	color color.NRGBA
}

// Braille is a terminal canvas with 2x4 dots per character cell.
type Braille struct {
	cols  int
	rows  int
	cells [][]brailleCell
	texts []textRun
}

// NewBraille returns a canvas of cols x rows character cells.
func NewBraille(cols, rows int) *Braille {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	cells := make([][]brailleCell, rows)
	for y := range cells {
		cells[y] = make([]brailleCell, cols)
	}
	return &Braille{cols: cols, rows: rows, cells: cells}
}

// DotSize returns the canvas size in dots.
func (b *Braille) DotSize() (width, height int) {
	return b.cols * 2, b.rows * 4
}

// Draw rasterizes commands in order; later commands repaint earlier ones.
func (b *Braille) Draw(cmds []render.Command) error {
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case render.Circle:
			b.ring(c.CenterX, c.CenterY, c.Radius, c.Stroke.Width, 0, 360, c.Color)
		case render.Arc:
			cx, cy, r := arcCircle(c)
			b.ring(cx, cy, r, c.Stroke.Width, c.StartAngle, c.SweepAngle, c.Color)
		case render.Text:
			b.text(c)
		}
	}
	return nil
}

// Dot reports whether the dot at (x, y) is set.
func (b *Braille) Dot(x, y int) bool {
	if x < 0 || y < 0 || x >= b.cols*2 || y >= b.rows*4 {
		return false
	}
	return b.cells[y/4][x/2].mask&dotMask(x%2, y%4) != 0
}

// CellColor returns the color of the last dot painted into a cell.
func (b *Braille) CellColor(col, row int) (color.NRGBA, bool) {
	if col < 0 || row < 0 || col >= b.cols || row >= b.rows {
		return color.NRGBA{}, false
	}
	cell := b.cells[row][col]
	return cell.color, cell.mask != 0
}

// String renders the canvas. With useColor each cell is wrapped in a
// lipgloss foreground style.
func (b *Braille) String(useColor bool) string {
	grid := make([][]string, b.rows)
	for y := 0; y < b.rows; y++ {
		grid[y] = make([]string, b.cols)
		for x := 0; x < b.cols; x++ {
			cell := b.cells[y][x]
			s := string(rune(brailleBase + int(cell.mask)))
			if useColor && cell.mask != 0 {
				s = styleFor(cell.color).Render(s)
			}
			grid[y][x] = s
		}
	}
	for _, t := range b.texts {
		col := t.col
		for _, r := range t.runes {
			w := runewidth.RuneWidth(r)
			if col >= 0 && col+w <= b.cols {
				s := string(r)
				if useColor {
					s = styleFor(t.color).Render(s)
				}
				grid[t.row][col] = s
				for i := 1; i < w; i++ {
					grid[t.row][col+i] = ""
				}
			}
			col += w
		}
	}
	lines := make([]string, b.rows)
	for y, row := range grid {
		lines[y] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

func (b *Braille) ring(cx, cy, r, stroke, start, sweep float64, c color.NRGBA) {
	if r <= 0 || sweep == 0 {
		return
	}
	half := math.Max(stroke/2, 0.5)
	start, sweep = normalizeSweep(start, sweep)
	full := sweep >= 360
	width, height := b.DotSize()
	minX := clampInt(int(math.Floor(cx-r-half)), 0, width)
	maxX := clampInt(int(math.Ceil(cx+r+half)), 0, width)
	minY := clampInt(int(math.Floor(cy-r-half)), 0, height)
	maxY := clampInt(int(math.Ceil(cy+r+half)), 0, height)
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			px := float64(x) + 0.5 - cx
			py := float64(y) + 0.5 - cy
			if math.Abs(math.Hypot(px, py)-r) > half {
				continue
			}
			if !full {
				angle := math.Atan2(py, px) * 180 / math.Pi
				if math.Mod(math.Mod(angle-start, 360)+360, 360) > sweep {
					continue
				}
			}
			b.set(x, y, c)
		}
	}
}

func (b *Braille) set(x, y int, c color.NRGBA) {
	cell := &b.cells[y/4][x/2]
	cell.mask |= dotMask(x%2, y%4)
	cell.color = c
}

// text places a label on the character grid. Glyphs sit in whole cells, so
// the baseline offset applied by the renderer is removed again here.
func (b *Braille) text(t render.Text) {
	if b.rows == 0 || t.Content == "" {
		return
	}
	runes := []rune(t.Content)
	width := runewidth.StringWidth(t.Content)
	row := int(math.Floor((t.Y - t.Style.Size/4) / 4))
	col := int(math.Round(t.X/2 - anchorX(t.Style.Align)*float64(width)))
	if row < 0 || row >= b.rows {
		return
	}
	b.texts = append(b.texts, textRun{row: row, col: col, runes: runes, color: t.Style.Color})
}

func dotMask(x, y int) uint8 {
	switch {
	case x == 0 && y == 0:
		return 0x01
	case x == 0 && y == 1:
		return 0x02
	case x == 0 && y == 2:
		return 0x04
	case x == 0 && y == 3:
		return 0x40
	case x == 1 && y == 0:
		return 0x08
	case x == 1 && y == 1:
		return 0x10
	case x == 1 && y == 2:
		return 0x20
	case x == 1 && y == 3:
		return 0x80
	default:
		return 0
	}
}

func styleFor(c color.NRGBA) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Hex(c)))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
