package statemachine

import "github.com/jefe-cli/jefe/internal/domain"

// Effect is the marker interface for side-effecting intents a reducer
// returns instead of performing I/O itself (spec.md §4.4: "the contract is
// that the reducer itself performs no I/O").
type Effect interface{ isEffect() }

// CreateSessionEffect asks the dispatch layer to call PtyManager.AddSession
// and write the resulting slot (or failure) directly onto Agent — the
// catalog already holds Agent by pointer, so the dispatch layer mutating it
// is visible to the state machine without a round-trip event.
type CreateSessionEffect struct {
	Agent   *domain.Agent
	WorkDir string
	Profile string
	Mode    string
}

// KillSessionEffect asks the dispatch layer to kill the session at Slot and
// mark Agent Dead on success.
type KillSessionEffect struct {
	Agent *domain.Agent
	Slot  int
}

// RelaunchSessionEffect asks the dispatch layer to relaunch the session at
// Slot from Agent's stored (work_dir, profile, mode), transitioning Agent to
// Running on success or leaving it Dead on failure (spec.md §4.4).
type RelaunchSessionEffect struct {
	Agent *domain.Agent
	Slot  int
}

// DeleteWorkDirEffect asks the dispatch layer to remove an agent's working
// directory from disk, issued only when a delete confirmation's "also
// delete working directory" checkbox was on.
type DeleteWorkDirEffect struct {
	WorkDir string
}

// MkdirEffect asks the dispatch layer to create Path (and any missing
// parents) if it doesn't already exist. Issued when a form commits a
// repository's base_dir or an edited agent's work_dir, since both may be
// created on demand (spec.md §4.3 add_session's directory parameter); a new
// agent's work_dir is created by AddSession via CreateSessionEffect instead.
type MkdirEffect struct{ Path string }

// PersistCatalogEffect asks the dispatch layer to atomically save the
// catalog.
type PersistCatalogEffect struct{}

// PersistSettingsEffect asks the dispatch layer to atomically save
// settings.
type PersistSettingsEffect struct{}

// ApplyThemeEffect asks the dispatch layer to resolve and install the named
// theme's color defaults onto the PTY manager.
type ApplyThemeEffect struct{ Slug string }

// StatusMessageEffect asks the dispatch layer to surface Text in the status
// bar. Used for guarded no-ops the reducer refuses to act on (e.g.
// relaunching an already-running agent) where there is no I/O result to
// report, just user feedback.
type StatusMessageEffect struct{ Text string }

func (CreateSessionEffect) isEffect()   {}
func (KillSessionEffect) isEffect()     {}
func (RelaunchSessionEffect) isEffect() {}
func (DeleteWorkDirEffect) isEffect()   {}
func (MkdirEffect) isEffect()           {}
func (PersistCatalogEffect) isEffect()  {}
func (PersistSettingsEffect) isEffect() {}
func (ApplyThemeEffect) isEffect()      {}
func (StatusMessageEffect) isEffect()   {}
