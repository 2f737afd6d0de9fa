package statemachine

import "github.com/jefe-cli/jefe/internal/domain"

// ApplySpawnResult records the outcome of executing a CreateSessionEffect.
// On success slot is stored and the agent stays Running; on failure the
// agent is left Dead with the error surfaced (spec.md §7: "the state
// machine creates the agent record but leaves pty_slot empty and marks the
// agent Dead with an error-message surface"). This is not itself I/O — it
// just records an I/O result the dispatch layer already obtained.
func ApplySpawnResult(agent *domain.Agent, slot int, err error) {
	if err != nil {
		agent.Status = domain.StatusDead
		agent.LastErrorMessage = err.Error()
		return
	}
	agent.PTYSlot = &slot
	agent.Status = domain.StatusRunning
	agent.LastErrorMessage = ""
}

// ApplyKillResult records the outcome of executing a KillSessionEffect.
func ApplyKillResult(agent *domain.Agent, err error) {
	if err != nil {
		agent.LastErrorMessage = err.Error()
		return
	}
	agent.Status = domain.StatusDead
	agent.LastErrorMessage = ""
}

// ApplyRelaunchResult records the outcome of executing a
// RelaunchSessionEffect: Running on success, Dead on failure, with
// ephemeral telemetry cleared either way (spec.md §4.4: "clears
// timestamps").
func ApplyRelaunchResult(agent *domain.Agent, err error) {
	agent.ElapsedSeconds = 0
	agent.TokenCountIn = 0
	agent.TokenCountOut = 0
	agent.EstimatedCostUSD = 0
	agent.Todos = nil
	agent.RecentOutput = nil

	if err != nil {
		agent.Status = domain.StatusDead
		agent.LastErrorMessage = err.Error()
		return
	}
	agent.Status = domain.StatusRunning
	agent.LastErrorMessage = ""
}
