package theme

import "sync"

// greenScreen is the guaranteed fallback theme (spec.md §6): always
// available even if every other theme file is missing or malformed.
func greenScreen() Theme {
	return Theme{
		Name:            "green-screen",
		Foreground:      RGB{0x33, 0xff, 0x33},
		ForegroundDim:   RGB{0x1a, 0x80, 0x1a},
		ForegroundMuted: RGB{0x0d, 0x40, 0x0d},
		Background:      RGB{0x00, 0x00, 0x00},
		BackgroundPanel: RGB{0x00, 0x10, 0x00},
		BorderDefault:   RGB{0x1a, 0x80, 0x1a},
		BorderFocused:   RGB{0x33, 0xff, 0x33},
		SelectionFG:     RGB{0x00, 0x00, 0x00},
		SelectionBG:     RGB{0x33, 0xff, 0x33},
		CursorFG:        RGB{0x00, 0x00, 0x00},
		CursorBG:        RGB{0x33, 0xff, 0x33},
		StatusRunning:   RGB{0x33, 0xff, 0x33},
		StatusCompleted: RGB{0x00, 0xcc, 0x66},
		StatusErrored:   RGB{0xff, 0x33, 0x33},
		StatusWaiting:   RGB{0xcc, 0xcc, 0x33},
		StatusPaused:    RGB{0x80, 0x80, 0x33},
		StatusQueued:    RGB{0x33, 0x80, 0x80},
		StatusDead:      RGB{0x40, 0x40, 0x40},
		Accent:          RGB{0x33, 0xff, 0x99},
		DiffAdd:         RGB{0x33, 0xff, 0x33},
		DiffRemove:      RGB{0xff, 0x33, 0x33},
		InputField:      RGB{0x0d, 0x40, 0x0d},
		Scrollbar:       RGB{0x1a, 0x80, 0x1a},
		Palette: Sixteen{
			{0x00, 0x00, 0x00}, {0xcc, 0x33, 0x33}, {0x33, 0xcc, 0x33}, {0xcc, 0xcc, 0x33},
			{0x33, 0x33, 0xcc}, {0xcc, 0x33, 0xcc}, {0x33, 0xcc, 0xcc}, {0xcc, 0xcc, 0xcc},
			{0x40, 0x40, 0x40}, {0xff, 0x66, 0x66}, {0x66, 0xff, 0x66}, {0xff, 0xff, 0x66},
			{0x66, 0x66, 0xff}, {0xff, 0x66, 0xff}, {0x66, 0xff, 0xff}, {0xff, 0xff, 0xff},
		},
	}
}

func solarized() Theme {
	return Theme{
		Name:            "solarized",
		Foreground:      RGB{0x83, 0x94, 0x96},
		ForegroundDim:   RGB{0x58, 0x6e, 0x75},
		ForegroundMuted: RGB{0x65, 0x7b, 0x83},
		Background:      RGB{0x00, 0x2b, 0x36},
		BackgroundPanel: RGB{0x07, 0x36, 0x42},
		BorderDefault:   RGB{0x58, 0x6e, 0x75},
		BorderFocused:   RGB{0x26, 0x8b, 0xd2},
		SelectionFG:     RGB{0x00, 0x2b, 0x36},
		SelectionBG:     RGB{0x26, 0x8b, 0xd2},
		CursorFG:        RGB{0x00, 0x2b, 0x36},
		CursorBG:        RGB{0x83, 0x94, 0x96},
		StatusRunning:   RGB{0x85, 0x99, 0x00},
		StatusCompleted: RGB{0x2a, 0xa1, 0x98},
		StatusErrored:   RGB{0xdc, 0x32, 0x2f},
		StatusWaiting:   RGB{0xb5, 0x89, 0x00},
		StatusPaused:    RGB{0xcb, 0x4b, 0x16},
		StatusQueued:    RGB{0x6c, 0x71, 0xc4},
		StatusDead:      RGB{0x58, 0x6e, 0x75},
		Accent:          RGB{0xd3, 0x36, 0x82},
		DiffAdd:         RGB{0x85, 0x99, 0x00},
		DiffRemove:      RGB{0xdc, 0x32, 0x2f},
		InputField:      RGB{0x07, 0x36, 0x42},
		Scrollbar:       RGB{0x58, 0x6e, 0x75},
		Palette: Sixteen{
			{0x07, 0x36, 0x42}, {0xdc, 0x32, 0x2f}, {0x85, 0x99, 0x00}, {0xb5, 0x89, 0x00},
			{0x26, 0x8b, 0xd2}, {0xd3, 0x36, 0x82}, {0x2a, 0xa1, 0x98}, {0xee, 0xe8, 0xd5},
			{0x00, 0x2b, 0x36}, {0xcb, 0x4b, 0x16}, {0x58, 0x6e, 0x75}, {0x65, 0x7b, 0x83},
			{0x83, 0x94, 0x96}, {0x6c, 0x71, 0xc4}, {0x93, 0xa1, 0xa1}, {0xfd, 0xf6, 0xe3},
		},
	}
}

func midnight() Theme {
	return Theme{
		Name:            "midnight",
		Foreground:      RGB{0xe0, 0xe0, 0xe0},
		ForegroundDim:   RGB{0x80, 0x80, 0x90},
		ForegroundMuted: RGB{0x60, 0x60, 0x70},
		Background:      RGB{0x10, 0x10, 0x18},
		BackgroundPanel: RGB{0x18, 0x18, 0x24},
		BorderDefault:   RGB{0x40, 0x40, 0x50},
		BorderFocused:   RGB{0x7a, 0x5c, 0xf0},
		SelectionFG:     RGB{0x10, 0x10, 0x18},
		SelectionBG:     RGB{0x7a, 0x5c, 0xf0},
		CursorFG:        RGB{0x10, 0x10, 0x18},
		CursorBG:        RGB{0xe0, 0xe0, 0xe0},
		StatusRunning:   RGB{0x4c, 0xd1, 0x64},
		StatusCompleted: RGB{0x4c, 0x9c, 0xd1},
		StatusErrored:   RGB{0xf0, 0x5c, 0x5c},
		StatusWaiting:   RGB{0xf0, 0xd4, 0x5c},
		StatusPaused:    RGB{0xb8, 0x8c, 0x3c},
		StatusQueued:    RGB{0x9c, 0x8c, 0xd1},
		StatusDead:      RGB{0x50, 0x50, 0x60},
		Accent:          RGB{0x7a, 0x5c, 0xf0},
		DiffAdd:         RGB{0x4c, 0xd1, 0x64},
		DiffRemove:      RGB{0xf0, 0x5c, 0x5c},
		InputField:      RGB{0x18, 0x18, 0x24},
		Scrollbar:       RGB{0x40, 0x40, 0x50},
		Palette: Sixteen{
			{0x18, 0x18, 0x24}, {0xf0, 0x5c, 0x5c}, {0x4c, 0xd1, 0x64}, {0xf0, 0xd4, 0x5c},
			{0x4c, 0x9c, 0xd1}, {0x9c, 0x8c, 0xd1}, {0x5c, 0xd1, 0xd1}, {0xe0, 0xe0, 0xe0},
			{0x40, 0x40, 0x50}, {0xf0, 0x8c, 0x8c}, {0x8c, 0xf0, 0x9c}, {0xf0, 0xe4, 0x9c},
			{0x8c, 0xc4, 0xf0}, {0xc4, 0xb8, 0xf0}, {0x9c, 0xf0, 0xf0}, {0xff, 0xff, 0xff},
		},
	}
}

// Registry holds the built-in themes plus any loaded from the external
// theme directory, keyed by slug. Safe for concurrent use: the watcher
// goroutine writes while the main loop reads.
type Registry struct {
	mu     sync.RWMutex
	themes map[string]Theme
}

// NewRegistry returns a Registry seeded with the built-in themes. Green
// Screen is always present and is never removable (spec.md §6: "Green
// Screen as the guaranteed fallback").
func NewRegistry() *Registry {
	r := &Registry{themes: map[string]Theme{}}
	r.Add(greenScreen())
	r.Add(solarized())
	r.Add(midnight())
	return r
}

// Add installs or replaces a theme under its own Name.
func (r *Registry) Add(t Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.themes[t.Name] = t
}

// Get returns the theme with the given slug, falling back to Green Screen
// if the slug is unknown.
func (r *Registry) Get(name string) Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.themes[name]; ok {
		return t
	}
	return greenScreen()
}

// Names returns every registered theme slug.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.themes))
	for n := range r.themes {
		names = append(names, n)
	}
	return names
}
