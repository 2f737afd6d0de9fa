package dispatch

import (
	"os"

	"github.com/jefe-cli/jefe/internal/persistence"
	"github.com/jefe-cli/jefe/internal/statemachine"
)

// perform executes one Effect returned by the reducer against the live
// subsystems the reducer itself may not touch (spec.md §4.5 step 2).
func (m *Model) perform(eff statemachine.Effect) {
	switch e := eff.(type) {
	case statemachine.CreateSessionEffect:
		slot, err := m.mgr.AddSession(e.WorkDir, e.Profile, e.Mode)
		statemachine.ApplySpawnResult(e.Agent, slot, err)
		if err != nil {
			m.statusMessage = "failed to start agent: " + err.Error()
			dispatchLog.Warn("create_session_failed", "agent", e.Agent.ID, "err", err)
		}

	case statemachine.KillSessionEffect:
		err := m.mgr.KillSession(e.Slot)
		statemachine.ApplyKillResult(e.Agent, err)
		if err != nil {
			m.statusMessage = "failed to kill agent: " + err.Error()
			dispatchLog.Warn("kill_session_failed", "agent", e.Agent.ID, "err", err)
		}

	case statemachine.RelaunchSessionEffect:
		err := m.mgr.RelaunchSession(e.Slot)
		statemachine.ApplyRelaunchResult(e.Agent, err)
		if err != nil {
			m.statusMessage = "failed to relaunch agent: " + err.Error()
			dispatchLog.Warn("relaunch_session_failed", "agent", e.Agent.ID, "err", err)
		}

	case statemachine.DeleteWorkDirEffect:
		// Non-fatal: a failed removal is logged and surfaced, never fatal to
		// the delete itself (the agent is already gone from the catalog).
		if err := os.RemoveAll(e.WorkDir); err != nil {
			m.statusMessage = "could not remove work dir: " + err.Error()
			dispatchLog.Warn("delete_workdir_failed", "work_dir", e.WorkDir, "err", err)
		}

	case statemachine.MkdirEffect:
		if err := os.MkdirAll(e.Path, 0o755); err != nil {
			m.statusMessage = "could not create directory: " + err.Error()
			dispatchLog.Warn("mkdir_failed", "path", e.Path, "err", err)
		}

	case statemachine.PersistCatalogEffect:
		if err := persistence.SaveAtomicCatalog(m.state.Catalog); err != nil {
			m.statusMessage = "failed to save catalog: " + err.Error()
			dispatchLog.Warn("catalog_save_failed", "err", err)
		}

	case statemachine.PersistSettingsEffect:
		if err := persistence.SaveAtomicSettings(m.settings); err != nil {
			m.statusMessage = "failed to save settings: " + err.Error()
			dispatchLog.Warn("settings_save_failed", "err", err)
		}

	case statemachine.ApplyThemeEffect:
		m.settings.ActiveTheme = e.Slug
		m.mgr.SetColorDefaults(m.registry.Get(e.Slug).ToDefaults())

	case statemachine.StatusMessageEffect:
		m.statusMessage = e.Text
	}
}
