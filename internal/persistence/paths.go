package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Environment variable names governing path resolution precedence (§6):
// an absolute-path override wins outright; a directory override is joined
// with the fixed filename; otherwise a per-OS default applies. Settings and
// catalog share one base directory (see SPEC_FULL.md §4.1, Open Question a)
// but have independent override variables so either can be redirected alone.
const (
	EnvSettingsPath = "JEFE_SETTINGS_PATH"
	EnvSettingsDir  = "JEFE_SETTINGS_DIR"
	EnvCatalogPath  = "JEFE_CATALOG_PATH"
	EnvCatalogDir   = "JEFE_CATALOG_DIR"

	SettingsFileName = "settings.toml"
	CatalogFileName  = "catalog.json"
)

// defaultBaseDir returns the per-OS default directory Jefe stores its files
// under when no environment override applies.
func defaultBaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("persistence: resolve home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "jefe"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "jefe"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "jefe"), nil
	default: // linux and everything else XDG-ish
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "jefe"), nil
		}
		return filepath.Join(home, ".config", "jefe"), nil
	}
}

// resolvePath applies the three-tier precedence for one logical file: an
// absolute-path env override, a directory env override + fixed name, then
// the per-OS default directory + fixed name. The resolved path is computed
// fresh each call; callers that need it fixed for the process lifetime
// should cache the result themselves.
func resolvePath(pathEnv, dirEnv, fileName string) (string, error) {
	if p := os.Getenv(pathEnv); p != "" {
		return p, nil
	}
	if d := os.Getenv(dirEnv); d != "" {
		return filepath.Join(d, fileName), nil
	}
	base, err := defaultBaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, fileName), nil
}

// SettingsPath resolves the settings file path per §6 precedence.
func SettingsPath() (string, error) {
	return resolvePath(EnvSettingsPath, EnvSettingsDir, SettingsFileName)
}

// CatalogPath resolves the catalog file path per §6 precedence.
func CatalogPath() (string, error) {
	return resolvePath(EnvCatalogPath, EnvCatalogDir, CatalogFileName)
}
