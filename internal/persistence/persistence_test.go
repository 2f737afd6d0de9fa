package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jefe-cli/jefe/internal/domain"
)

func withCatalogDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvCatalogDir, dir)
	t.Setenv(EnvCatalogPath, "")
	return dir
}

func withSettingsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvSettingsDir, dir)
	t.Setenv(EnvSettingsPath, "")
	return dir
}

func TestLoadOrDefaultCatalogMissingFile(t *testing.T) {
	withCatalogDir(t)
	res := LoadOrDefaultCatalog()
	require.Empty(t, res.Notice)
	require.Equal(t, domain.CatalogSchemaVersion, res.Catalog.Version)
	require.Empty(t, res.Catalog.Repositories)
}

func TestLoadOrDefaultCatalogMalformedFile(t *testing.T) {
	dir := withCatalogDir(t)
	path := filepath.Join(dir, CatalogFileName)
	require.NoError(t, os.WriteFile(path, []byte("{ not: valid }"), 0o600))

	res := LoadOrDefaultCatalog()
	require.NotEmpty(t, res.Notice)
	require.Empty(t, res.Catalog.Repositories)

	// The malformed file must survive untouched.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "{ not: valid }", string(data))
}

func TestSaveAtomicCatalogThenLoadRoundTrips(t *testing.T) {
	withCatalogDir(t)
	domain.ResetDisplayIDCounterForTest()

	cat := domain.NewCatalog()
	repo := domain.NewRepository("app", "/tmp/app", "default")
	agent := domain.NewAgent("Fix bug", "/tmp/app/fix-bug", "default", "--yolo --continue")
	slot := 0
	agent.PTYSlot = &slot
	repo.Agents = append(repo.Agents, agent)
	cat.Repositories = append(cat.Repositories, repo)

	require.NoError(t, SaveAtomicCatalog(cat))

	res := LoadOrDefaultCatalog()
	require.Empty(t, res.Notice)
	require.Len(t, res.Catalog.Repositories, 1)
	loadedRepo := res.Catalog.Repositories[0]
	require.Equal(t, "app", loadedRepo.Name)
	require.Equal(t, "app", loadedRepo.Slug)
	require.Len(t, loadedRepo.Agents, 1)
	loadedAgent := loadedRepo.Agents[0]
	require.Equal(t, agent.ID, loadedAgent.ID)
	require.Equal(t, agent.DisplayID, loadedAgent.DisplayID)
	require.Equal(t, agent.WorkDir, loadedAgent.WorkDir)
	// Status is never persisted: freshly loaded agents start Dead until reconciled.
	require.Equal(t, domain.StatusDead, loadedAgent.Status)
}

func TestSaveAtomicCatalogIsByteStableAcrossRoundTrip(t *testing.T) {
	// Invariant: load -> save with no intervening edits reproduces the same
	// canonical serialization.
	withCatalogDir(t)
	domain.ResetDisplayIDCounterForTest()

	cat := domain.NewCatalog()
	repo := domain.NewRepository("app", "/tmp/app", "default")
	cat.Repositories = append(cat.Repositories, repo)
	require.NoError(t, SaveAtomicCatalog(cat))

	path, err := CatalogPath()
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	res := LoadOrDefaultCatalog()
	require.NoError(t, SaveAtomicCatalog(res.Catalog))

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestLoadOrDefaultCatalogDropsOrphanAgents(t *testing.T) {
	dir := withCatalogDir(t)
	path := filepath.Join(dir, CatalogFileName)
	raw := `{
		"version": 1,
		"repositories": [{"name": "app", "slug": "app", "base_dir": "/tmp/app"}],
		"agents": [
			{"repo_slug": "app", "id": "a1", "display_id": 1, "name": "ok", "work_dir": "/tmp/app/ok", "created_at": "2026-01-01T00:00:00Z"},
			{"repo_slug": "ghost", "id": "a2", "display_id": 2, "name": "orphan", "work_dir": "/tmp/x", "created_at": "2026-01-01T00:00:00Z"}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	res := LoadOrDefaultCatalog()
	require.Contains(t, res.Notice, "1")
	require.Len(t, res.Catalog.Repositories[0].Agents, 1)
	require.Equal(t, "a1", res.Catalog.Repositories[0].Agents[0].ID)
}

func TestReconcileLivenessNoSlotIsDead(t *testing.T) {
	cat := domain.NewCatalog()
	repo := domain.NewRepository("app", "/tmp/app", "default")
	noSlotAgent := &domain.Agent{ID: "noslot"}
	repo.Agents = append(repo.Agents, noSlotAgent)
	cat.Repositories = append(cat.Repositories, repo)

	ReconcileLiveness(cat,
		func(slot int) string { return "jefe-fake" },
		func(name string) bool { return true })

	require.Equal(t, domain.StatusDead, noSlotAgent.Status)
}

func TestReconcileLivenessDifferentiatesBySlot(t *testing.T) {
	cat := domain.NewCatalog()
	repo := domain.NewRepository("app", "/tmp/app", "default")
	aliveSlot, deadSlot := 0, 1
	aliveAgent := &domain.Agent{ID: "alive", PTYSlot: &aliveSlot}
	deadAgent := &domain.Agent{ID: "dead", PTYSlot: &deadSlot}
	repo.Agents = append(repo.Agents, aliveAgent, deadAgent)
	cat.Repositories = append(cat.Repositories, repo)

	sessionName := func(slot int) string {
		if slot == 0 {
			return "jefe-0"
		}
		return "jefe-1"
	}
	ReconcileLiveness(cat, sessionName, func(name string) bool { return name == "jefe-0" })

	require.Equal(t, domain.StatusRunning, aliveAgent.Status)
	require.Equal(t, domain.StatusDead, deadAgent.Status)
}

func TestSettingsLoadOrDefaultMissingFile(t *testing.T) {
	withSettingsDir(t)
	res := LoadOrDefaultSettings()
	require.Empty(t, res.Notice)
	require.Equal(t, "green-screen", res.Settings.ActiveTheme)
}

func TestSettingsSaveAtomicThenLoadRoundTrips(t *testing.T) {
	withSettingsDir(t)
	s := domain.NewSettings()
	s.ActiveTheme = "solarized"
	s.Preferences["split_mode"] = "true"

	require.NoError(t, SaveAtomicSettings(s))

	res := LoadOrDefaultSettings()
	require.Equal(t, "solarized", res.Settings.ActiveTheme)
	require.Equal(t, "true", res.Settings.Preferences["split_mode"])
}

func TestCatalogPathPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvCatalogDir, dir)
	t.Setenv(EnvCatalogPath, "")

	p, err := CatalogPath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, CatalogFileName), p)

	// An absolute-path override takes precedence over the directory override.
	override := filepath.Join(t.TempDir(), "custom.json")
	t.Setenv(EnvCatalogPath, override)
	p, err = CatalogPath()
	require.NoError(t, err)
	require.Equal(t, override, p)
}

func TestSettingsMalformedFallsBackToDefault(t *testing.T) {
	dir := withSettingsDir(t)
	path := filepath.Join(dir, SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("not = [valid toml"), 0o600))

	res := LoadOrDefaultSettings()
	require.NotEmpty(t, res.Notice)
	require.Equal(t, "green-screen", res.Settings.ActiveTheme)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "not = [valid toml", string(data))
}
