package theme

// ResolveIndex maps an ANSI color index (0-255) to an RGB value per
// spec.md §4.3: indices 0-15 resolve through the theme's sixteen palette
// entries; 16-231 through the standard 6x6x6 xterm color cube; 232-255
// through the standard 24-step grayscale ramp.
func ResolveIndex(idx uint8, d Defaults) RGB {
	switch {
	case idx < 16:
		return d.Palette[idx]
	case idx < 232:
		return cubeColor(idx - 16)
	default:
		return grayscaleColor(idx - 232)
	}
}

// cubeColor resolves an index 0-215 in the 6x6x6 color cube to RGB. The
// standard xterm cube step values are 0, 95, 135, 175, 215, 255.
func cubeColor(n uint8) RGB {
	steps := [6]uint8{0, 95, 135, 175, 215, 255}
	r := n / 36
	g := (n % 36) / 6
	b := n % 6
	return RGB{R: steps[r], G: steps[g], B: steps[b]}
}

// grayscaleColor resolves an index 0-23 in the 24-step grayscale ramp.
// Standard xterm values run 8, 18, 28, ..., 238.
func grayscaleColor(n uint8) RGB {
	v := 8 + 10*uint16(n)
	if v > 255 {
		v = 255
	}
	return RGB{R: uint8(v), G: uint8(v), B: uint8(v)}
}

// CellFlags mirrors the terminal model's per-cell attribute bits relevant to
// color resolution (spec.md §4.3): INVERSE swaps fg/bg before resolution,
// DIM overrides fg to the theme's dim foreground, HIDDEN forces fg = bg.
type CellFlags struct {
	Inverse bool
	Dim     bool
	Hidden  bool
}

// ResolveCellColors applies the spec.md §4.3 foreground/background
// resolution rules for one cell, given its already-resolved (pre-flag) fg
// and bg RGB values. Named colors, palette indices, the 6x6x6 cube, and the
// grayscale ramp are all resolved by the caller before this step; true-color
// cells pass through unmodified (callers just don't pass them through
// ResolveIndex first).
func ResolveCellColors(fg, bg RGB, flags CellFlags, d Defaults) (resolvedFG, resolvedBG RGB) {
	if flags.Inverse {
		fg, bg = bg, fg
	}
	if flags.Dim {
		fg = d.ForegroundDim
	}
	if flags.Hidden {
		fg = bg
	}
	return fg, bg
}
