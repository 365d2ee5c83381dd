package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

type align int

const (
	alignLeft align = iota
	alignRight
)

// column describes one report column. Numeric columns are right aligned so
// decimals line up; a positive maxWidth truncates longer cells.
type column struct {
	title    string
	align    align
	maxWidth int
}

type table struct {
	columns []column
	rows    [][]string
}

func newTable(columns ...column) *table {
	return &table{columns: columns}
}

// add appends a row. Missing cells render blank, extra cells are dropped.
func (t *table) add(cells ...string) {
	row := make([]string, len(t.columns))
	for i := range row {
		if i < len(cells) {
			row[i] = t.columns[i].clip(cells[i])
		}
	}
	t.rows = append(t.rows, row)
}

func (c column) clip(cell string) string {
	if c.maxWidth <= 0 || runewidth.StringWidth(cell) <= c.maxWidth {
		return cell
	}
	return runewidth.Truncate(cell, c.maxWidth, "...")
}

// lines lays the header and rows out on a single-space grid. Trailing
// padding of a left aligned last column is trimmed.
func (t *table) lines() []string {
	if len(t.columns) == 0 {
		return nil
	}
	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = runewidth.StringWidth(col.title)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	header := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = col.title
	}
	out := make([]string, 0, len(t.rows)+1)
	out = append(out, t.format(header, widths))
	for _, row := range t.rows {
		out = append(out, t.format(row, widths))
	}
	return out
}

func (t *table) format(row []string, widths []int) string {
	var b strings.Builder
	for i, cell := range row {
		if i > 0 {
			b.WriteByte(' ')
		}
		pad := widths[i] - runewidth.StringWidth(cell)
		if pad < 0 {
			pad = 0
		}
		if t.columns[i].align == alignRight {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(cell)
			continue
		}
		b.WriteString(cell)
		if i < len(row)-1 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return b.String()
}

func (t *table) write(w io.Writer) error {
	for _, line := range t.lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
