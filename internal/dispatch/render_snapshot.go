package dispatch

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jefe-cli/jefe/internal/ptymgr"
	"github.com/jefe-cli/jefe/internal/theme"
)

// renderSnapshot draws a terminal snapshot cell-by-cell, collapsing runs of
// identical style into a single lipgloss.Render call per run rather than per
// cell, the same "style run" rendering teacher code uses for table rows.
func renderSnapshot(snap ptymgr.Snapshot) string {
	var out strings.Builder
	for y, row := range snap.Grid {
		if y > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(renderRow(row))
	}
	return out.String()
}

// cellStyleKey identifies the style of a cell so adjacent cells sharing one
// can be rendered as a single run instead of one lipgloss.Render call each.
type cellStyleKey struct {
	fg, bg          theme.RGB
	bold, underline bool
}

func runKey(c ptymgr.Cell) cellStyleKey {
	return cellStyleKey{fg: c.FG, bg: c.BG, bold: c.Bold, underline: c.Underline}
}

func renderRow(row []ptymgr.Cell) string {
	var out strings.Builder
	var run strings.Builder
	var key cellStyleKey
	haveRun := false

	flush := func() {
		if run.Len() == 0 {
			return
		}
		style := lipgloss.NewStyle().Foreground(rgbColor(key.fg)).Background(rgbColor(key.bg)).Bold(key.bold).Underline(key.underline)
		out.WriteString(style.Render(run.String()))
		run.Reset()
	}

	for _, c := range row {
		k := runKey(c)
		if !haveRun || k != key {
			flush()
			key = k
			haveRun = true
		}
		run.WriteRune(c.Ch)
	}
	flush()
	return out.String()
}
