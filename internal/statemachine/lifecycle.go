package statemachine

import "github.com/jefe-cli/jefe/internal/domain"

// killCurrentAgent returns a KillSessionEffect for the selected agent, if
// it has a PTY slot.
func (s *State) killCurrentAgent() []Effect {
	agent := s.currentAgent()
	if agent == nil || agent.PTYSlot == nil {
		return nil
	}
	return []Effect{KillSessionEffect{Agent: agent, Slot: *agent.PTYSlot}, PersistCatalogEffect{}}
}

// relaunchCurrentAgent returns a RelaunchSessionEffect for the selected
// agent, if it has a PTY slot to relaunch into (spec.md §4.4: "Relaunch of
// a dead agent re-creates the PTY session from the agent's stored
// (work_dir, profile, mode)"). Relaunching an agent that is already Running
// is a guarded no-op that surfaces a status message instead of killing and
// recreating a perfectly live session.
func (s *State) relaunchCurrentAgent() []Effect {
	agent := s.currentAgent()
	if agent == nil || agent.PTYSlot == nil {
		return nil
	}
	if agent.Status == domain.StatusRunning {
		return []Effect{StatusMessageEffect{Text: "agent already running"}}
	}
	return []Effect{RelaunchSessionEffect{Agent: agent, Slot: *agent.PTYSlot}, PersistCatalogEffect{}}
}

// requestDelete opens the appropriate confirmation modal for the current
// selection. Agent deletions default the "also delete working directory"
// checkbox to on (spec.md §4.4).
func (s *State) requestDelete() {
	switch s.Pane {
	case PaneSidebar:
		if s.currentRepo() == nil {
			return
		}
		s.Modal = ModalConfirmDeleteRepo
		s.Pending = PendingDelete{Kind: DeleteRepository, RepoIndex: s.SelectedRepo}
	default:
		if s.currentAgent() == nil {
			return
		}
		s.Modal = ModalConfirmDeleteAgent
		s.Pending = PendingDelete{
			Kind:          DeleteAgent,
			RepoIndex:     s.SelectedRepo,
			AgentIndex:    s.SelectedAgent,
			DeleteWorkDir: true,
		}
	}
}

func (s *State) confirmDelete() []Effect {
	defer func() {
		s.Modal = ModalNone
		s.Pending = PendingDelete{}
	}()

	switch s.Pending.Kind {
	case DeleteAgent:
		return s.deleteAgent(s.Pending.RepoIndex, s.Pending.AgentIndex, s.Pending.DeleteWorkDir)
	case DeleteRepository:
		return s.deleteRepository(s.Pending.RepoIndex)
	}
	return nil
}

func (s *State) deleteAgent(repoIdx, agentIdx int, deleteWorkDir bool) []Effect {
	if repoIdx < 0 || repoIdx >= len(s.Catalog.Repositories) {
		return nil
	}
	repo := s.Catalog.Repositories[repoIdx]
	if agentIdx < 0 || agentIdx >= len(repo.Agents) {
		return nil
	}
	agent := repo.Agents[agentIdx]
	repo.Agents = append(repo.Agents[:agentIdx], repo.Agents[agentIdx+1:]...)

	if s.SelectedAgent >= len(repo.Agents) {
		s.SelectedAgent = len(repo.Agents) - 1
	}

	effects := []Effect{PersistCatalogEffect{}}
	if agent.PTYSlot != nil {
		effects = append(effects, KillSessionEffect{Agent: agent, Slot: *agent.PTYSlot})
	}
	if deleteWorkDir {
		effects = append(effects, DeleteWorkDirEffect{WorkDir: agent.WorkDir})
	}
	return effects
}

func (s *State) deleteRepository(repoIdx int) []Effect {
	if repoIdx < 0 || repoIdx >= len(s.Catalog.Repositories) {
		return nil
	}
	repo := s.Catalog.Repositories[repoIdx]

	var effects []Effect
	for _, agent := range repo.Agents {
		if agent.PTYSlot != nil {
			effects = append(effects, KillSessionEffect{Agent: agent, Slot: *agent.PTYSlot})
		}
	}

	s.Catalog.Repositories = append(s.Catalog.Repositories[:repoIdx], s.Catalog.Repositories[repoIdx+1:]...)
	if s.SelectedRepo >= len(s.Catalog.Repositories) {
		s.SelectedRepo = len(s.Catalog.Repositories) - 1
	}
	s.SelectedAgent = -1

	effects = append(effects, PersistCatalogEffect{})
	return effects
}

// swapAgentRow swaps the split-mode selected agent row with its neighbor
// delta rows away, within the currently focused split-mode repository.
func (s *State) swapAgentRow(delta int) {
	repo := s.splitSelectedRepo()
	if repo == nil {
		return
	}
	i := s.Split.SelectedRow
	j := i + delta
	if i < 0 || i >= len(repo.Agents) || j < 0 || j >= len(repo.Agents) {
		return
	}
	repo.Agents[i], repo.Agents[j] = repo.Agents[j], repo.Agents[i]
	s.Split.SelectedRow = j
}
