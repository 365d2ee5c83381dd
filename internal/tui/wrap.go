package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// joinFitting joins segments with sep, dropping trailing segments that
// would overflow width.
func joinFitting(segments []string, sep string, width int) string {
	if width <= 0 {
		return strings.Join(segments, sep)
	}
	var out strings.Builder
	used := 0
	for i, seg := range segments {
		w := lipgloss.Width(seg)
		if i > 0 {
			w += lipgloss.Width(sep)
		}
		if used+w > width {
			if i == 0 {
				return truncateLine(seg, width)
			}
			break
		}
		if i > 0 {
			out.WriteString(sep)
		}
		out.WriteString(seg)
		used += w
	}
	return out.String()
}

// truncateLine shortens plain text to width cells.
func truncateLine(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
