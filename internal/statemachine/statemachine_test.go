package statemachine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jefe-cli/jefe/internal/domain"
)

func newTestCatalog() *domain.Catalog {
	repo := domain.NewRepository("Widgets", "/repos/widgets", "work")
	a1 := domain.NewAgent("alpha", "/repos/widgets/alpha", "work", "")
	a2 := domain.NewAgent("beta", "/repos/widgets/beta", "work", "")
	repo.Agents = append(repo.Agents, a1, a2)
	return &domain.Catalog{Version: domain.CatalogSchemaVersion, Repositories: []*domain.Repository{repo}}
}

func TestHandleIsDeterministicAcrossIdenticalSequences(t *testing.T) {
	seq := []Event{MoveRight{}, MoveDown{}, OpenNewAgent{}, EditChar{Ch: 'x'}, Back{}}

	s1 := NewState(newTestCatalog())
	for _, ev := range seq {
		s1.Handle(ev)
	}

	s2 := NewState(newTestCatalog())
	for _, ev := range seq {
		s2.Handle(ev)
	}

	assert.Equal(t, s1.Screen, s2.Screen)
	assert.Equal(t, s1.Pane, s2.Pane)
	assert.Equal(t, s1.SelectedRepo, s2.SelectedRepo)
	assert.Equal(t, s1.SelectedAgent, s2.SelectedAgent)
}

func TestMoveDownSelectsNextAgent(t *testing.T) {
	s := NewState(newTestCatalog())
	s.Pane = PaneAgentList
	s.SelectedRepo, s.SelectedAgent = 0, 0

	s.Handle(MoveDown{})
	assert.Equal(t, 1, s.SelectedAgent)
}

func TestMoveRightFromSidebarFocusesAgentList(t *testing.T) {
	s := NewState(newTestCatalog())
	s.Pane = PaneSidebar

	s.Handle(MoveRight{})
	assert.Equal(t, PaneAgentList, s.Pane)
}

func TestFocusTerminalSetsPaneAndFocus(t *testing.T) {
	s := NewState(newTestCatalog())
	s.Handle(FocusTerminal{})
	assert.Equal(t, PanePreview, s.Pane)
	assert.True(t, s.TerminalFocus)
}

func TestToggleTerminalFocusAlwaysFlips(t *testing.T) {
	s := NewState(newTestCatalog())
	s.Modal = ModalHelp
	s.Screen = ScreenNewAgent

	s.Handle(ToggleTerminalFocus{})
	assert.True(t, s.TerminalFocus)
	s.Handle(ToggleTerminalFocus{})
	assert.False(t, s.TerminalFocus)
}

func TestOpenNewAgentFormSeedsDefaultProfile(t *testing.T) {
	s := NewState(newTestCatalog())
	s.SelectedRepo = 0

	s.Handle(OpenNewAgent{})
	assert.Equal(t, ScreenNewAgent, s.Screen)
	assert.Equal(t, "work", s.Form.Values[FieldProfile])
}

func TestFormNameEditRegeneratesWorkDirUntilManuallyEdited(t *testing.T) {
	s := NewState(newTestCatalog())
	s.SelectedRepo = 0
	s.Handle(OpenNewAgent{})

	for _, r := range "gamma" {
		s.Handle(EditChar{Ch: r})
	}
	assert.Equal(t, "/repos/widgets/gamma", s.Form.Values[FieldWorkDir])

	s.Handle(NextField{}) // description
	s.Handle(NextField{}) // work_dir
	require.Equal(t, FieldWorkDir, s.focusedField())
	s.Handle(EditChar{Ch: '2'})
	assert.True(t, s.Form.WorkDirManuallyEdited)
	assert.Equal(t, "/repos/widgets/gamma2", s.Form.Values[FieldWorkDir])

	s.Handle(PrevField{})
	s.Handle(PrevField{})
	require.Equal(t, FieldName, s.focusedField())
	s.Handle(EditChar{Ch: '!'})
	assert.Equal(t, "/repos/widgets/gamma2", s.Form.Values[FieldWorkDir], "latched work dir must not regenerate")
}

func TestSubmitNewAgentAppendsAgentAndReturnsEffects(t *testing.T) {
	s := NewState(newTestCatalog())
	s.SelectedRepo = 0
	s.Handle(OpenNewAgent{})
	for _, r := range "gamma" {
		s.Handle(EditChar{Ch: r})
	}

	effects := s.Handle(SubmitForm{})
	require.Len(t, effects, 2)
	create, ok := effects[0].(CreateSessionEffect)
	require.True(t, ok)
	assert.Equal(t, "gamma", create.Agent.Name)
	_, ok = effects[1].(PersistCatalogEffect)
	assert.True(t, ok)

	repo := s.Catalog.Repositories[0]
	assert.Len(t, repo.Agents, 3)
	assert.Equal(t, ScreenDashboard, s.Screen)
}

func TestDisplayIDsStrictlyIncreaseAcrossNewAgentEvents(t *testing.T) {
	domain.ResetDisplayIDCounterForTest()
	s := NewState(newTestCatalog())
	s.SelectedRepo = 0

	var ids []int64
	for i := 0; i < 3; i++ {
		s.Handle(OpenNewAgent{})
		s.Handle(EditChar{Ch: 'a'})
		s.Handle(SubmitForm{})
		repo := s.Catalog.Repositories[0]
		ids = append(ids, repo.Agents[len(repo.Agents)-1].DisplayID)
	}

	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
	}
}

func TestRequestDeleteAgentDefaultsCheckboxOn(t *testing.T) {
	s := NewState(newTestCatalog())
	s.Pane = PaneAgentList
	s.SelectedRepo, s.SelectedAgent = 0, 0

	s.Handle(RequestDelete{})
	assert.Equal(t, ModalConfirmDeleteAgent, s.Modal)
	assert.True(t, s.Pending.DeleteWorkDir)
}

func TestConfirmDeleteAgentRemovesItAndReturnsKillEffect(t *testing.T) {
	s := NewState(newTestCatalog())
	s.Pane = PaneAgentList
	s.SelectedRepo, s.SelectedAgent = 0, 0
	slot := 4
	s.Catalog.Repositories[0].Agents[0].PTYSlot = &slot

	s.Handle(RequestDelete{})
	effects := s.Handle(ConfirmDelete{})

	assert.Len(t, s.Catalog.Repositories[0].Agents, 1)
	assert.Equal(t, ModalNone, s.Modal)

	var sawKill, sawDeleteDir, sawPersist bool
	for _, e := range effects {
		switch v := e.(type) {
		case KillSessionEffect:
			sawKill = true
			assert.Equal(t, 4, v.Slot)
		case DeleteWorkDirEffect:
			sawDeleteDir = true
		case PersistCatalogEffect:
			sawPersist = true
		}
	}
	assert.True(t, sawKill)
	assert.True(t, sawDeleteDir)
	assert.True(t, sawPersist)
}

func TestCancelDeleteClearsModalWithoutMutatingCatalog(t *testing.T) {
	s := NewState(newTestCatalog())
	s.Pane = PaneAgentList
	s.SelectedRepo, s.SelectedAgent = 0, 0

	s.Handle(RequestDelete{})
	s.Handle(CancelDelete{})

	assert.Equal(t, ModalNone, s.Modal)
	assert.Len(t, s.Catalog.Repositories[0].Agents, 2)
}

func TestKillAgentWithNoSlotReturnsNoEffects(t *testing.T) {
	s := NewState(newTestCatalog())
	s.Pane = PaneAgentList
	s.SelectedRepo, s.SelectedAgent = 0, 0

	effects := s.Handle(KillAgent{})
	assert.Nil(t, effects)
}

func TestRelaunchAgentReturnsEffectForStoredSlot(t *testing.T) {
	s := NewState(newTestCatalog())
	s.Pane = PaneAgentList
	s.SelectedRepo, s.SelectedAgent = 0, 0
	slot := 2
	s.Catalog.Repositories[0].Agents[0].PTYSlot = &slot
	s.Catalog.Repositories[0].Agents[0].Status = domain.StatusDead

	effects := s.Handle(RelaunchAgent{})
	require.Len(t, effects, 2)
	relaunch, ok := effects[0].(RelaunchSessionEffect)
	require.True(t, ok)
	assert.Equal(t, 2, relaunch.Slot)
}

func TestApplyRelaunchResultSuccessSetsRunningAndClearsTelemetry(t *testing.T) {
	agent := domain.NewAgent("a", "/x", "", "")
	agent.ElapsedSeconds = 42
	agent.Status = domain.StatusDead

	ApplyRelaunchResult(agent, nil)
	assert.Equal(t, domain.StatusRunning, agent.Status)
	assert.Equal(t, int64(0), agent.ElapsedSeconds)
}

func TestApplyRelaunchResultFailureLeavesDead(t *testing.T) {
	agent := domain.NewAgent("a", "/x", "", "")
	ApplyRelaunchResult(agent, errors.New("spawn failed"))
	assert.Equal(t, domain.StatusDead, agent.Status)
	assert.Equal(t, "spawn failed", agent.LastErrorMessage)
}

func TestReconcileLivenessTransitionsOnlyDeadRunningAgentsWithSlot(t *testing.T) {
	s := NewState(newTestCatalog())
	slotA, slotB := 0, 1
	s.Catalog.Repositories[0].Agents[0].PTYSlot = &slotA
	s.Catalog.Repositories[0].Agents[0].Status = domain.StatusRunning
	s.Catalog.Repositories[0].Agents[1].PTYSlot = &slotB
	s.Catalog.Repositories[0].Agents[1].Status = domain.StatusRunning

	changed := s.ReconcileLiveness(func(slot int) bool { return slot != slotA })

	assert.True(t, changed)
	assert.Equal(t, domain.StatusDead, s.Catalog.Repositories[0].Agents[0].Status)
	assert.Equal(t, domain.StatusRunning, s.Catalog.Repositories[0].Agents[1].Status)
}

func TestReconcileLivenessNoChangeReturnsFalse(t *testing.T) {
	s := NewState(newTestCatalog())
	slot := 0
	s.Catalog.Repositories[0].Agents[0].PTYSlot = &slot
	s.Catalog.Repositories[0].Agents[0].Status = domain.StatusRunning

	changed := s.ReconcileLiveness(func(slot int) bool { return true })
	assert.False(t, changed)
}

func TestReconcileLivenessIgnoresAgentsWithoutSlot(t *testing.T) {
	s := NewState(newTestCatalog())
	s.Catalog.Repositories[0].Agents[0].Status = domain.StatusRunning
	s.Catalog.Repositories[0].Agents[0].PTYSlot = nil

	changed := s.ReconcileLiveness(func(slot int) bool { return false })
	assert.False(t, changed)
	assert.Equal(t, domain.StatusRunning, s.Catalog.Repositories[0].Agents[0].Status)
}

func TestSetThemeReturnsApplyAndPersistEffects(t *testing.T) {
	s := NewState(newTestCatalog())
	effects := s.Handle(SetTheme{Slug: "solarized"})
	require.Len(t, effects, 2)
	apply, ok := effects[0].(ApplyThemeEffect)
	require.True(t, ok)
	assert.Equal(t, "solarized", apply.Slug)
	_, ok = effects[1].(PersistSettingsEffect)
	assert.True(t, ok)
}

func TestSplitModeFilterNarrowsRepoCursor(t *testing.T) {
	s := NewState(newTestCatalog())
	s.Catalog.Repositories = append(s.Catalog.Repositories, domain.NewRepository("Gadgets", "/repos/gadgets", ""))
	s.Screen = ScreenSplit
	s.Split.SubFocus = SplitFocusRepoList

	s.Handle(SetRepoFilter{Query: "gad"})
	idx := s.filteredRepoIndices()
	require.Len(t, idx, 1)
	assert.Equal(t, "Gadgets", s.Catalog.Repositories[idx[0]].Name)
}

func TestSplitModeSwapReordersAgents(t *testing.T) {
	s := NewState(newTestCatalog())
	s.Screen = ScreenSplit
	s.Split.SubFocus = SplitFocusAgentRows
	s.Split.Grabbed = true
	s.Split.SelectedRow = 0

	first := s.Catalog.Repositories[0].Agents[0].Name
	second := s.Catalog.Repositories[0].Agents[1].Name

	s.Handle(SwapDown{})

	assert.Equal(t, second, s.Catalog.Repositories[0].Agents[0].Name)
	assert.Equal(t, first, s.Catalog.Repositories[0].Agents[1].Name)
	assert.Equal(t, 1, s.Split.SelectedRow)
}

func TestCharInputAppendsToSearchQueryOutsideForms(t *testing.T) {
	s := NewState(newTestCatalog())
	s.Handle(OpenSearch{})
	s.Handle(CharInput{Ch: 'a'})
	s.Handle(CharInput{Ch: 'b'})
	assert.Equal(t, "ab", s.SearchQuery)
}

func TestBackClosesModalBeforeScreen(t *testing.T) {
	s := NewState(newTestCatalog())
	s.Screen = ScreenNewAgent
	s.Modal = ModalHelp

	s.Handle(Back{})
	assert.Equal(t, ModalNone, s.Modal)
	assert.Equal(t, ScreenNewAgent, s.Screen, "first Back only closes the modal")

	s.Handle(Back{})
	assert.Equal(t, ScreenDashboard, s.Screen)
}
