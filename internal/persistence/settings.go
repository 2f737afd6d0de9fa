package persistence

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jefe-cli/jefe/internal/domain"
	"github.com/jefe-cli/jefe/internal/logging"
)

var persistLog = logging.ForComponent(logging.CompPersist)

// LoadSettingsResult carries the loaded settings plus a non-fatal notice the
// caller should surface (empty when nothing is worth mentioning).
type LoadSettingsResult struct {
	Settings *domain.Settings
	Notice   string
}

// LoadOrDefaultSettings loads the settings file, falling back to the
// canonical default on any missing-file or malformed-file condition. It
// never returns an error: per spec, persistence load failures never fail
// application startup.
func LoadOrDefaultSettings() LoadSettingsResult {
	path, err := SettingsPath()
	if err != nil {
		persistLog.Warn("settings_path_resolve_failed", "err", err)
		return LoadSettingsResult{Settings: domain.NewSettings(), Notice: "could not resolve settings path; using defaults"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return LoadSettingsResult{Settings: domain.NewSettings()}
		}
		persistLog.Warn("settings_read_failed", "path", path, "err", err)
		return LoadSettingsResult{Settings: domain.NewSettings(), Notice: fmt.Sprintf("could not read settings file (%v); using defaults", err)}
	}

	var s domain.Settings
	if _, err := toml.Decode(string(data), &s); err != nil {
		persistLog.Warn("settings_parse_failed", "path", path, "err", err)
		return LoadSettingsResult{Settings: domain.NewSettings(), Notice: fmt.Sprintf("settings file is malformed (%v); using defaults, original file left untouched", err)}
	}

	if s.Version != domain.SettingsSchemaVersion {
		persistLog.Warn("settings_schema_mismatch", "path", path, "got", s.Version, "want", domain.SettingsSchemaVersion)
		return LoadSettingsResult{Settings: domain.NewSettings(), Notice: "settings file is from an incompatible version; using defaults"}
	}

	if s.Preferences == nil {
		s.Preferences = map[string]string{}
	}
	if s.DefaultProfiles == nil {
		s.DefaultProfiles = map[string]string{}
	}
	if s.ActiveTheme == "" {
		s.ActiveTheme = "green-screen"
	}

	return LoadSettingsResult{Settings: &s}
}

// SaveAtomicSettings serializes settings to TOML and writes it atomically.
// A failure here never corrupts in-memory state; it is surfaced to the
// caller as an error.
func SaveAtomicSettings(s *domain.Settings) error {
	path, err := SettingsPath()
	if err != nil {
		return fmt.Errorf("persistence: resolve settings path: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# Jefe settings\n")
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("persistence: encode settings: %w", err)
	}

	if err := writeAtomic(path, buf.Bytes()); err != nil {
		persistLog.Warn("settings_save_failed", "path", path, "err", err)
		return err
	}
	return nil
}
