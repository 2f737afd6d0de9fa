package ptymgr

import (
	"github.com/hinshun/vt10x"

	"github.com/jefe-cli/jefe/internal/theme"
)

// Glyph attribute bits, matching vt10x's internal Mode encoding (grounded
// on KaolaMiao-vibemux's terminal model, the pack's only in-process vt10x
// consumer — vt10x does not export these as named constants).
const (
	attrReverse = 1 << iota
	attrUnderline
	attrBold
	attrGfx
	attrItalic
	attrBlink
	attrWrap
)

// Cell is one resolved, render-ready terminal cell (spec.md §4.3 snapshot
// algorithm): a unicode scalar plus already-resolved fg/bg RGB and the two
// attributes the spec keeps for rendering.
type Cell struct {
	Ch        rune
	FG        theme.RGB
	BG        theme.RGB
	Bold      bool
	Underline bool
}

// Snapshot is a read-only grid extracted from the terminal model. Rows are
// trimmed of trailing blank-cell runs per spec.md §4.3.
type Snapshot struct {
	Rows int
	Cols int
	Grid [][]Cell
}

// emptySnapshot returns a blank grid of the given size. TerminalSnapshot
// uses it, at a fixed 24x80, when no viewer is attached to the requested
// slot; it has no lock-failure path, since it waits for the terminal lock.
func emptySnapshot(rows, cols int) Snapshot {
	grid := make([][]Cell, rows)
	for y := range grid {
		row := make([]Cell, cols)
		for x := range row {
			row[x] = Cell{Ch: ' '}
		}
		grid[y] = row
	}
	return Snapshot{Rows: rows, Cols: cols, Grid: grid}
}

// Selection is an inclusive row/col span highlighted with the theme's
// selection colors. Jefe layers this over the terminal model itself, since
// vt10x has no native concept of a UI-driven text selection.
type Selection struct {
	StartRow, StartCol int
	EndRow, EndCol     int
}

func (s *Selection) contains(row, col int) bool {
	if s == nil {
		return false
	}
	sr, sc, er, ec := s.StartRow, s.StartCol, s.EndRow, s.EndCol
	if sr > er || (sr == er && sc > ec) {
		sr, sc, er, ec = er, ec, sr, sc
	}
	if row < sr || row > er {
		return false
	}
	if row == sr && col < sc {
		return false
	}
	if row == er && col > ec {
		return false
	}
	return true
}

// SetSelection installs a selection span on the attached viewer, or clears
// it when sel is nil.
func (m *Manager) SetSelection(slot int, sel *Selection) {
	m.mu.Lock()
	v := m.viewer
	m.mu.Unlock()
	if v == nil || v.slot != slot {
		return
	}
	v.selMu.Lock()
	v.selection = sel
	v.selMu.Unlock()
}

// TerminalSnapshot extracts a themed cell grid from the terminal model
// attached to slot, applying spec.md §4.3's fg/bg resolution rules
// (inverse/dim/hidden, palette/cube/grayscale/true-color, selection and
// cursor highlighting) and trimming trailing blank-cell runs per row.
func (m *Manager) TerminalSnapshot(slot int) Snapshot {
	m.mu.Lock()
	v := m.viewer
	defaults := m.defaults
	m.mu.Unlock()

	if v == nil || v.slot != slot {
		return emptySnapshot(24, 80)
	}

	v.term.Lock()
	defer v.term.Unlock()

	rows, cols := v.rows, v.cols
	cursor := v.term.Cursor()
	showCursor := v.term.CursorVisible()

	v.selMu.RLock()
	sel := v.selection
	v.selMu.RUnlock()

	grid := make([][]Cell, rows)
	for y := 0; y < rows; y++ {
		row := make([]Cell, cols)
		lastNonBlank := -1
		for x := 0; x < cols; x++ {
			glyph := v.term.Cell(x, y)
			ch := glyph.Char
			if ch == 0 {
				ch = ' '
			}

			fg := resolveGlyphColor(glyph.FG, defaults.Foreground, defaults)
			bg := resolveGlyphColor(glyph.BG, defaults.Background, defaults)

			// vt10x's Mode bitmask has no dim or hidden bit (confirmed against
			// KaolaMiao-vibemux's terminal model, the pack's only other vt10x
			// consumer, which defines the identical seven-bit attrReverse..
			// attrWrap set and never reads SGR 2/8 either). theme.CellFlags
			// still carries Dim/Hidden since ResolveCellColors resolves them
			// generically, but vt10x gives this call site nothing to set them
			// from.
			flags := theme.CellFlags{
				Inverse: glyph.Mode&attrReverse != 0,
				Dim:     false,
				Hidden:  false,
			}
			fg, bg = theme.ResolveCellColors(fg, bg, flags, defaults)

			if sel.contains(y, x) {
				fg, bg = defaults.SelectionFG, defaults.SelectionBG
			}
			if showCursor && cursor.Y == y && cursor.X == x {
				fg, bg = defaults.CursorFG, defaults.CursorBG
			}

			row[x] = Cell{
				Ch:        ch,
				FG:        fg,
				BG:        bg,
				Bold:      glyph.Mode&attrBold != 0,
				Underline: glyph.Mode&attrUnderline != 0,
			}
			if ch != ' ' {
				lastNonBlank = x
			}
		}
		grid[y] = row[:lastNonBlank+1]
	}

	return Snapshot{Rows: rows, Cols: cols, Grid: grid}
}

// resolveGlyphColor maps a vt10x.Color to RGB: def when c is the terminal's
// sentinel default color, otherwise through theme.ResolveIndex for
// palette/cube/grayscale indices, otherwise (a true-color cell) unpacked
// directly.
func resolveGlyphColor(c vt10x.Color, def theme.RGB, d theme.Defaults) theme.RGB {
	switch {
	case c == vt10x.DefaultFG || c == vt10x.DefaultBG:
		return def
	case c < 256:
		return theme.ResolveIndex(uint8(c), d)
	default:
		return theme.RGB{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c)}
	}
}
