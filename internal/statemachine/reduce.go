package statemachine

import (
	"github.com/sahilm/fuzzy"

	"github.com/jefe-cli/jefe/internal/domain"
)

// Handle is the state machine's single entry point (spec.md §4.4: "A single
// handle(event) method dispatches to private reducers"). It mutates s in
// place and returns the side-effecting intents the dispatch layer must
// execute; Handle itself performs no I/O.
func (s *State) Handle(ev Event) []Effect {
	switch e := ev.(type) {
	case MoveUp:
		s.handleMove(-1, 0)
	case MoveDown:
		s.handleMove(1, 0)
	case MoveLeft:
		s.handleMove(0, -1)
	case MoveRight:
		s.handleMove(0, 1)

	case FocusSidebar:
		s.Pane = PaneSidebar
	case FocusAgentList:
		s.Pane = PaneAgentList
	case FocusTerminal:
		s.Pane = PanePreview
		s.TerminalFocus = true

	case OpenNewAgent:
		s.openNewAgentForm()
	case OpenNewRepository:
		s.openNewRepositoryForm()
	case OpenEdit:
		s.openEditForm()
	case OpenSplit:
		s.Screen = ScreenSplit
	case OpenSearch:
		s.SearchQuery = ""
	case OpenHelp:
		s.Modal = ModalHelp
		s.HelpScroll = 0
	case Back:
		s.handleBack()

	case NextField:
		s.moveFormFocus(1)
	case PrevField:
		s.moveFormFocus(-1)
	case EditChar:
		s.editFormChar(e.Ch)
	case Backspace:
		s.backspaceFormChar()
	case ToggleCheckbox:
		s.Form.Checkboxes[e.Name] = !s.Form.Checkboxes[e.Name]
	case SubmitForm:
		return s.submitForm()

	case KillAgent:
		return s.killCurrentAgent()
	case RelaunchAgent:
		return s.relaunchCurrentAgent()

	case RequestDelete:
		s.requestDelete()
	case ConfirmDelete:
		return s.confirmDelete()
	case CancelDelete:
		s.Modal = ModalNone
		s.Pending = PendingDelete{}

	case ToggleGrab:
		s.Split.Grabbed = !s.Split.Grabbed
	case SwapUp:
		s.swapAgentRow(-1)
	case SwapDown:
		s.swapAgentRow(1)
	case SetRepoFilter:
		s.Split.RepoFilter = e.Query
		s.Split.RepoCursor = 0

	case SetTheme:
		return []Effect{ApplyThemeEffect{Slug: e.Slug}, PersistSettingsEffect{}}

	case ToggleTerminalFocus:
		s.TerminalFocus = !s.TerminalFocus

	case CharInput:
		s.handleCharInput(e.Ch)
	}
	return nil
}

// handleBack pops one level: modal first, then form screens back to
// dashboard, then split back to dashboard.
func (s *State) handleBack() {
	switch {
	case s.Modal != ModalNone:
		s.Modal = ModalNone
		s.Pending = PendingDelete{}
	case s.Screen != ScreenDashboard:
		s.Screen = ScreenDashboard
	}
}

// handleMove routes arrow-key navigation by active screen/pane, per
// spec.md §4.4's event taxonomy (navigation events carry no payload beyond
// direction; meaning depends on context).
func (s *State) handleMove(dRow, dCol int) {
	if s.Modal != ModalNone {
		if s.Modal == ModalConfirmDeleteAgent && (dRow != 0 || dCol != 0) {
			s.Pending.DeleteWorkDir = !s.Pending.DeleteWorkDir
		}
		return
	}

	switch s.Screen {
	case ScreenSplit:
		s.handleSplitMove(dRow, dCol)
		return
	case ScreenNewAgent, ScreenNewRepository, ScreenEditAgent, ScreenEditRepository:
		return
	}

	switch s.Pane {
	case PaneSidebar:
		if dCol != 0 {
			s.Pane = PaneAgentList
			return
		}
		s.moveRepoSelection(dRow)
	case PaneAgentList:
		if dCol < 0 {
			s.Pane = PaneSidebar
			return
		}
		if dCol > 0 {
			s.Pane = PanePreview
			return
		}
		s.moveAgentSelection(dRow)
	case PanePreview:
		if dCol < 0 {
			s.Pane = PaneAgentList
		}
	}
}

func (s *State) moveRepoSelection(delta int) {
	n := len(s.Catalog.Repositories)
	if n == 0 {
		return
	}
	s.SelectedRepo = clamp(s.SelectedRepo+delta, 0, n-1)
	s.SelectedAgent = -1
}

func (s *State) moveAgentSelection(delta int) {
	repo := s.currentRepo()
	if repo == nil || len(repo.Agents) == 0 {
		return
	}
	s.SelectedAgent = clamp(s.SelectedAgent+delta, 0, len(repo.Agents)-1)
}

func (s *State) handleSplitMove(dRow, dCol int) {
	switch s.Split.SubFocus {
	case SplitFocusRepoList:
		if dCol > 0 {
			s.Split.SubFocus = SplitFocusAgentRows
			return
		}
		n := len(s.filteredRepoIndices())
		if n > 0 {
			s.Split.RepoCursor = clamp(s.Split.RepoCursor+dRow, 0, n-1)
		}
	case SplitFocusAgentRows:
		if dCol < 0 {
			s.Split.SubFocus = SplitFocusRepoList
			return
		}
		if s.Split.Grabbed {
			if dRow < 0 {
				s.swapAgentRow(-1)
			} else if dRow > 0 {
				s.swapAgentRow(1)
			}
			return
		}
		repo := s.splitSelectedRepo()
		if repo == nil || len(repo.Agents) == 0 {
			return
		}
		s.Split.SelectedRow = clamp(s.Split.SelectedRow+dRow, 0, len(repo.Agents)-1)
	}
}

// filteredRepoIndices returns catalog indices of repositories whose name
// fuzzy-matches Split.RepoFilter, ranked best match first (spec.md §4.4
// SetRepoFilter; grounded on the teacher's command-palette fuzzy search,
// generalized from sessions to repository names).
func (s *State) filteredRepoIndices() []int {
	if s.Split.RepoFilter == "" {
		idx := make([]int, len(s.Catalog.Repositories))
		for i := range s.Catalog.Repositories {
			idx[i] = i
		}
		return idx
	}

	names := make([]string, len(s.Catalog.Repositories))
	for i, r := range s.Catalog.Repositories {
		names[i] = r.Name
	}
	matches := fuzzy.Find(s.Split.RepoFilter, names)
	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = m.Index
	}
	return idx
}

// splitSelectedRepo returns the repository at the current filtered cursor
// position in split mode, or nil if the filtered list is empty.
func (s *State) splitSelectedRepo() *domain.Repository {
	idx := s.filteredRepoIndices()
	if s.Split.RepoCursor < 0 || s.Split.RepoCursor >= len(idx) {
		return nil
	}
	return s.Catalog.Repositories[idx[s.Split.RepoCursor]]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
