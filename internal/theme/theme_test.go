package theme

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveIndexPalette(t *testing.T) {
	d := NewRegistry().Get("green-screen").ToDefaults()
	for i := 0; i < 16; i++ {
		require.Equal(t, d.Palette[i], ResolveIndex(uint8(i), d))
	}
}

func TestResolveIndexCube(t *testing.T) {
	d := Defaults{}
	// index 16 is cube (0,0,0) -> RGB{0,0,0}
	require.Equal(t, RGB{0, 0, 0}, ResolveIndex(16, d))
	// index 231 is cube (5,5,5) -> RGB{255,255,255}
	require.Equal(t, RGB{255, 255, 255}, ResolveIndex(231, d))
}

func TestResolveIndexGrayscale(t *testing.T) {
	d := Defaults{}
	require.Equal(t, RGB{8, 8, 8}, ResolveIndex(232, d))
	require.Equal(t, RGB{238, 238, 238}, ResolveIndex(255, d))
}

func TestResolveCellColorsInverseSwapsFgBg(t *testing.T) {
	fg, bg := RGB{1, 2, 3}, RGB{4, 5, 6}
	rFG, rBG := ResolveCellColors(fg, bg, CellFlags{Inverse: true}, Defaults{})
	require.Equal(t, bg, rFG)
	require.Equal(t, fg, rBG)
}

func TestResolveCellColorsDimOverridesForeground(t *testing.T) {
	d := Defaults{ForegroundDim: RGB{9, 9, 9}}
	fg, _ := ResolveCellColors(RGB{1, 2, 3}, RGB{4, 5, 6}, CellFlags{Dim: true}, d)
	require.Equal(t, d.ForegroundDim, fg)
}

func TestResolveCellColorsHiddenForcesFgEqualsBg(t *testing.T) {
	bg := RGB{7, 7, 7}
	fg, rBG := ResolveCellColors(RGB{1, 2, 3}, bg, CellFlags{Hidden: true}, Defaults{})
	require.Equal(t, bg, fg)
	require.Equal(t, bg, rBG)
}

func TestRegistryFallsBackToGreenScreen(t *testing.T) {
	r := NewRegistry()
	require.Equal(t, "green-screen", r.Get("does-not-exist").Name)
}

func TestRegistryHasThreeBuiltins(t *testing.T) {
	r := NewRegistry()
	names := r.Names()
	require.Len(t, names, 3)
	require.Contains(t, names, "green-screen")
}

func TestDecodeFileRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.json")
	raw := `{
		"name": "custom",
		"foreground": "#ffffff", "foreground_dim": "#888888", "foreground_muted": "#444444",
		"background": "#000000", "background_panel": "#111111",
		"border_default": "#222222", "border_focused": "#333333",
		"selection_fg": "#000000", "selection_bg": "#ffffff",
		"cursor_fg": "#000000", "cursor_bg": "#ffffff",
		"status_running": "#00ff00", "status_completed": "#00ffff", "status_errored": "#ff0000",
		"status_waiting": "#ffff00", "status_paused": "#808000", "status_queued": "#008080",
		"status_dead": "#404040",
		"accent": "#ff00ff", "diff_add": "#00ff00", "diff_remove": "#ff0000",
		"input_field": "#111111", "scrollbar": "#222222",
		"palette": ["#000000","#ff0000","#00ff00","#ffff00","#0000ff","#ff00ff","#00ffff","#ffffff",
		            "#000000","#ff0000","#00ff00","#ffff00","#0000ff","#ff00ff","#00ffff","#ffffff"]
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	th, err := DecodeFile(path)
	require.NoError(t, err)
	require.Equal(t, "custom", th.Name)
	require.Equal(t, RGB{0xff, 0xff, 0xff}, th.Foreground)
	require.Equal(t, RGB{0xff, 0x00, 0x00}, th.Palette[1])
}

func TestDecodeFileRejectsMissingField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "broken"}`), 0o600))

	_, err := DecodeFile(path)
	require.Error(t, err)
}

func TestWatcherLoadsExistingAndNewFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.json")
	require.NoError(t, os.WriteFile(existing, []byte(sampleThemeJSON("existing")), 0o600))

	reg := NewRegistry()
	w := NewWatcher(dir, reg)
	require.NotNil(t, w)
	defer w.Close()

	require.Equal(t, "existing", reg.Get("existing").Name)

	fresh := filepath.Join(dir, "fresh.json")
	require.NoError(t, os.WriteFile(fresh, []byte(sampleThemeJSON("fresh")), 0o600))

	require.Eventually(t, func() bool {
		return reg.Get("fresh").Name == "fresh"
	}, 2*time.Second, 20*time.Millisecond)
}

func sampleThemeJSON(name string) string {
	return `{
		"name": "` + name + `",
		"foreground": "#ffffff", "foreground_dim": "#888888", "foreground_muted": "#444444",
		"background": "#000000", "background_panel": "#111111",
		"border_default": "#222222", "border_focused": "#333333",
		"selection_fg": "#000000", "selection_bg": "#ffffff",
		"cursor_fg": "#000000", "cursor_bg": "#ffffff",
		"status_running": "#00ff00", "status_completed": "#00ffff", "status_errored": "#ff0000",
		"status_waiting": "#ffff00", "status_paused": "#808000", "status_queued": "#008080",
		"status_dead": "#404040",
		"accent": "#ff00ff", "diff_add": "#00ff00", "diff_remove": "#ff0000",
		"input_field": "#111111", "scrollbar": "#222222",
		"palette": ["#000000","#ff0000","#00ff00","#ffff00","#0000ff","#ff00ff","#00ffff","#ffffff",
		            "#000000","#ff0000","#00ff00","#ffff00","#0000ff","#ff00ff","#00ffff","#ffffff"]
	}`
}
