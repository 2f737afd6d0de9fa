package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// themeFile is the on-disk shape of a user theme dropped into JEFE_THEME_DIR:
// every color slot as a "#rrggbb" string, plus the sixteen-entry palette.
// This is the one piece of theme-file decoding Jefe owns itself, since the
// core still needs a way to load the external themes §6 describes; the
// richer declarative UI loader referenced in spec.md §1 remains out of
// scope — Jefe's decoder only fills in the RGB slots this package resolves.
type themeFile struct {
	Name string `json:"name"`

	Foreground      string `json:"foreground"`
	ForegroundDim   string `json:"foreground_dim"`
	ForegroundMuted string `json:"foreground_muted"`

	Background      string `json:"background"`
	BackgroundPanel string `json:"background_panel"`
	BorderDefault   string `json:"border_default"`
	BorderFocused   string `json:"border_focused"`

	SelectionFG string `json:"selection_fg"`
	SelectionBG string `json:"selection_bg"`
	CursorFG    string `json:"cursor_fg"`
	CursorBG    string `json:"cursor_bg"`

	StatusRunning   string `json:"status_running"`
	StatusCompleted string `json:"status_completed"`
	StatusErrored   string `json:"status_errored"`
	StatusWaiting   string `json:"status_waiting"`
	StatusPaused    string `json:"status_paused"`
	StatusQueued    string `json:"status_queued"`
	StatusDead      string `json:"status_dead"`

	Accent     string `json:"accent"`
	DiffAdd    string `json:"diff_add"`
	DiffRemove string `json:"diff_remove"`
	InputField string `json:"input_field"`
	Scrollbar  string `json:"scrollbar"`

	Palette [16]string `json:"palette"`
}

func parseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("theme: invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("theme: invalid color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// DecodeFile parses a theme JSON file into a Theme. Every color field must
// be present and a valid "#rrggbb" string.
func DecodeFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var tf themeFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return Theme{}, fmt.Errorf("theme: decode %s: %w", path, err)
	}
	if tf.Name == "" {
		return Theme{}, fmt.Errorf("theme: %s is missing \"name\"", path)
	}

	t := Theme{Name: tf.Name}
	fields := []struct {
		name string
		src  string
		dst  *RGB
	}{
		{"foreground", tf.Foreground, &t.Foreground},
		{"foreground_dim", tf.ForegroundDim, &t.ForegroundDim},
		{"foreground_muted", tf.ForegroundMuted, &t.ForegroundMuted},
		{"background", tf.Background, &t.Background},
		{"background_panel", tf.BackgroundPanel, &t.BackgroundPanel},
		{"border_default", tf.BorderDefault, &t.BorderDefault},
		{"border_focused", tf.BorderFocused, &t.BorderFocused},
		{"selection_fg", tf.SelectionFG, &t.SelectionFG},
		{"selection_bg", tf.SelectionBG, &t.SelectionBG},
		{"cursor_fg", tf.CursorFG, &t.CursorFG},
		{"cursor_bg", tf.CursorBG, &t.CursorBG},
		{"status_running", tf.StatusRunning, &t.StatusRunning},
		{"status_completed", tf.StatusCompleted, &t.StatusCompleted},
		{"status_errored", tf.StatusErrored, &t.StatusErrored},
		{"status_waiting", tf.StatusWaiting, &t.StatusWaiting},
		{"status_paused", tf.StatusPaused, &t.StatusPaused},
		{"status_queued", tf.StatusQueued, &t.StatusQueued},
		{"status_dead", tf.StatusDead, &t.StatusDead},
		{"accent", tf.Accent, &t.Accent},
		{"diff_add", tf.DiffAdd, &t.DiffAdd},
		{"diff_remove", tf.DiffRemove, &t.DiffRemove},
		{"input_field", tf.InputField, &t.InputField},
		{"scrollbar", tf.Scrollbar, &t.Scrollbar},
	}
	for _, f := range fields {
		rgb, err := parseHex(f.src)
		if err != nil {
			return Theme{}, fmt.Errorf("theme: %s field %q: %w", path, f.name, err)
		}
		*f.dst = rgb
	}
	for i, s := range tf.Palette {
		rgb, err := parseHex(s)
		if err != nil {
			return Theme{}, fmt.Errorf("theme: %s palette[%d]: %w", path, i, err)
		}
		t.Palette[i] = rgb
	}
	return t, nil
}
