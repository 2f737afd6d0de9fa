package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jefe-cli/jefe/internal/domain"
)

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	return time.Parse(timeLayout, s)
}

// LoadCatalogResult carries the loaded catalog plus a non-fatal notice.
type LoadCatalogResult struct {
	Catalog *domain.Catalog
	Notice  string
}

// LoadOrDefaultCatalog loads the catalog file, sanitizes cross-references,
// seeds the process-wide display-ID counter from the highest ID on disk, and
// falls back to an empty canonical catalog on any missing or malformed file.
// It never returns an error; startup is never failed by a corrupt catalog.
func LoadOrDefaultCatalog() LoadCatalogResult {
	path, err := CatalogPath()
	if err != nil {
		persistLog.Warn("catalog_path_resolve_failed", "err", err)
		return LoadCatalogResult{Catalog: domain.NewCatalog(), Notice: "could not resolve catalog path; starting empty"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return LoadCatalogResult{Catalog: domain.NewCatalog()}
		}
		persistLog.Warn("catalog_read_failed", "path", path, "err", err)
		return LoadCatalogResult{Catalog: domain.NewCatalog(), Notice: fmt.Sprintf("could not read catalog file (%v); starting empty", err)}
	}

	var cf catalogFile
	if err := json.Unmarshal(data, &cf); err != nil {
		persistLog.Warn("catalog_parse_failed", "path", path, "err", err)
		return LoadCatalogResult{Catalog: domain.NewCatalog(), Notice: fmt.Sprintf("catalog file is malformed (%v); starting empty, original file left untouched", err)}
	}

	if cf.Version != domain.CatalogSchemaVersion {
		persistLog.Warn("catalog_schema_mismatch", "path", path, "got", cf.Version, "want", domain.CatalogSchemaVersion)
		return LoadCatalogResult{Catalog: domain.NewCatalog(), Notice: "catalog file is from an incompatible version; starting empty"}
	}

	cat, dropped := unflatten(cf)

	var highWaterMark int64
	for _, r := range cat.Repositories {
		for _, a := range r.Agents {
			if a.DisplayID > highWaterMark {
				highWaterMark = a.DisplayID
			}
		}
	}
	domain.SeedDisplayIDCounter(highWaterMark)

	result := LoadCatalogResult{Catalog: cat}
	if dropped > 0 {
		persistLog.Warn("catalog_dropped_orphan_agents", "count", dropped)
		result.Notice = fmt.Sprintf("dropped %d agent(s) referencing unknown repositories", dropped)
	}
	return result
}

// SaveAtomicCatalog flattens and serializes the catalog to JSON and writes
// it atomically. A failure here never corrupts in-memory state; it is
// surfaced to the caller as an error.
func SaveAtomicCatalog(cat *domain.Catalog) error {
	path, err := CatalogPath()
	if err != nil {
		return fmt.Errorf("persistence: resolve catalog path: %w", err)
	}

	cf := flatten(cat)
	data, err := json.MarshalIndent(cf, "", "  ")
	if err != nil {
		return fmt.Errorf("persistence: encode catalog: %w", err)
	}
	data = append(data, '\n')

	if err := writeAtomic(path, data); err != nil {
		persistLog.Warn("catalog_save_failed", "path", path, "err", err)
		return err
	}
	return nil
}

// ReconcileLiveness walks every agent in the catalog and, per spec.md §4.1:
// if a session by the agent's expected session name is alive, status is set
// to Running; otherwise Dead. Status is never persisted, so a freshly
// loaded catalog can only ever produce these two values here — the other
// variants (Completed/Errored/Paused/Waiting/Queued) are exclusively set by
// explicit user events or instrumentation during the live process, never by
// this startup pass. isAlive is injected rather than imported from
// internal/ptymgr to keep persistence free of any dependency on the PTY
// subsystem.
func ReconcileLiveness(cat *domain.Catalog, sessionName func(slot int) string, isAlive func(name string) bool) {
	for _, r := range cat.Repositories {
		for _, a := range r.Agents {
			if a.PTYSlot == nil {
				a.Status = domain.StatusDead
				continue
			}
			name := sessionName(*a.PTYSlot)
			if isAlive(name) {
				a.Status = domain.StatusRunning
			} else {
				a.Status = domain.StatusDead
			}
		}
	}
}
