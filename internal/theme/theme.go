// Package theme resolves logical color names and ANSI palette indices to
// concrete RGB values for the active theme. It holds the color slots, the
// index-resolution math the PTY snapshot algorithm needs (spec.md §4.3's
// foreground/background resolution rules), a registry of built-in themes,
// and a minimal color-only decoder (DecodeFile) plus directory watcher for
// theme JSON files in JEFE_THEME_DIR.
package theme

// RGB is a concrete, already-resolved 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Sixteen is the sixteen-entry ANSI palette: indices 0-7 are the normal
// colors, 8-15 their bright counterparts, in the conventional
// black/red/green/yellow/blue/magenta/cyan/white order.
type Sixteen [16]RGB

// Theme holds every color slot a built-in or user theme must define. Field
// names mirror the slots enumerated in spec.md §6 (foreground hierarchy,
// backgrounds, borders, selection, per-status indicators, accents, diff,
// input, scrollbar).
type Theme struct {
	Name string

	Foreground      RGB
	ForegroundDim   RGB
	ForegroundMuted RGB

	Background       RGB
	BackgroundPanel  RGB
	BorderDefault    RGB
	BorderFocused    RGB

	SelectionFG RGB
	SelectionBG RGB
	CursorFG    RGB
	CursorBG    RGB

	StatusRunning   RGB
	StatusCompleted RGB
	StatusErrored   RGB
	StatusWaiting   RGB
	StatusPaused    RGB
	StatusQueued    RGB
	StatusDead      RGB

	Accent     RGB
	DiffAdd    RGB
	DiffRemove RGB
	InputField RGB
	Scrollbar  RGB

	Palette Sixteen
}

// Defaults is the set of terminal color defaults the PTY session manager
// consumes via set_color_defaults (spec.md §4.3): foreground, background,
// cursor fg/bg, the dim-foreground override used for DIM cells, and the
// sixteen-entry ANSI palette.
type Defaults struct {
	Foreground    RGB
	Background    RGB
	ForegroundDim RGB
	CursorFG      RGB
	CursorBG      RGB
	SelectionFG   RGB
	SelectionBG   RGB
	Palette       Sixteen
}

// ToDefaults projects a Theme down to the subset the PTY manager needs for
// snapshot resolution.
func (t Theme) ToDefaults() Defaults {
	return Defaults{
		Foreground:    t.Foreground,
		Background:    t.Background,
		ForegroundDim: t.ForegroundDim,
		CursorFG:      t.CursorFG,
		CursorBG:      t.CursorBG,
		SelectionFG:   t.SelectionFG,
		SelectionBG:   t.SelectionBG,
		Palette:       t.Palette,
	}
}
