// Package statemachine owns all application state: the in-memory catalog,
// the active screen/pane/modal, selection indices, split-mode and form
// state. A single State.Handle method is the sole writer; it performs no
// I/O and instead returns a list of Effects for the dispatch layer to
// execute. This is the Application State Machine of spec.md §4.4.
package statemachine

import "github.com/jefe-cli/jefe/internal/domain"

// Screen is the top-level view the renderer shows.
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenSplit
	ScreenNewAgent
	ScreenNewRepository
	ScreenEditAgent
	ScreenEditRepository
	ScreenCommandPalette
)

// Pane is the focused region of the dashboard screen.
type Pane int

const (
	PaneSidebar Pane = iota
	PaneAgentList
	PanePreview
)

// Modal is an overlay blocking the rest of the screen's keys.
type Modal int

const (
	ModalNone Modal = iota
	ModalConfirmDeleteRepo
	ModalConfirmDeleteAgent
	ModalHelp
)

// SplitSubFocus distinguishes the two regions split mode navigates between.
type SplitSubFocus int

const (
	SplitFocusRepoList SplitSubFocus = iota
	SplitFocusAgentRows
)

// SplitState is the extra state split mode carries beyond the dashboard's
// own selection indices (spec.md §4.4: "sub-focus, grabbed-for-reorder
// flag, selected row, repo filter, repo cursor").
type SplitState struct {
	SubFocus    SplitSubFocus
	Grabbed     bool
	SelectedRow int
	RepoFilter  string
	RepoCursor  int
}

// fieldKey names a form field. Using string keys (rather than a fixed
// struct-per-screen) lets one FormState shape serve all four form screens
// (NewAgent, NewRepository, EditAgent, EditRepository).
type fieldKey string

const (
	FieldName           fieldKey = "name"
	FieldDescription    fieldKey = "description"
	FieldWorkDir        fieldKey = "work_dir"
	FieldBaseDir        fieldKey = "base_dir"
	FieldProfile        fieldKey = "profile"
	FieldDefaultProfile fieldKey = "default_profile"
	FieldMode           fieldKey = "mode"
)

// FormState is the shared shape behind every form screen: field values in
// edit order, a focus index, checkbox states, and the work-dir
// manually-edited latch spec.md §4.4 describes.
type FormState struct {
	FieldOrder            []fieldKey
	Values                map[fieldKey]string
	FocusIndex            int
	Checkboxes            map[string]bool
	WorkDirManuallyEdited bool

	// RepoIndex/AgentIndex identify which catalog entry SubmitForm edits;
	// -1 means "new" (the form is creating, not editing).
	RepoIndex  int
	AgentIndex int
}

// DeleteKind distinguishes what a pending deletion confirmation targets.
type DeleteKind int

const (
	DeleteNone DeleteKind = iota
	DeleteAgent
	DeleteRepository
)

// PendingDelete is the target of a ConfirmDeleteAgent/ConfirmDeleteRepo
// modal.
type PendingDelete struct {
	Kind          DeleteKind
	RepoIndex     int
	AgentIndex    int
	DeleteWorkDir bool
}

// State is the entire application state the reducer owns.
type State struct {
	Catalog *domain.Catalog

	Screen Screen
	Pane   Pane
	Modal  Modal

	SelectedRepo  int
	SelectedAgent int

	Split SplitState
	Form  FormState

	SearchQuery string
	HelpScroll  int

	TerminalFocus bool

	Pending PendingDelete
}

// NewState returns the initial application state: dashboard screen,
// sidebar focused, no modal, nothing selected.
func NewState(catalog *domain.Catalog) *State {
	return &State{
		Catalog:       catalog,
		Screen:        ScreenDashboard,
		Pane:          PaneSidebar,
		Modal:         ModalNone,
		SelectedRepo:  -1,
		SelectedAgent: -1,
	}
}

// currentRepo returns the repository at SelectedRepo, or nil if out of
// range.
func (s *State) currentRepo() *domain.Repository {
	if s.SelectedRepo < 0 || s.SelectedRepo >= len(s.Catalog.Repositories) {
		return nil
	}
	return s.Catalog.Repositories[s.SelectedRepo]
}

// currentAgent returns the agent at (SelectedRepo, SelectedAgent), or nil.
func (s *State) currentAgent() *domain.Agent {
	repo := s.currentRepo()
	if repo == nil || s.SelectedAgent < 0 || s.SelectedAgent >= len(repo.Agents) {
		return nil
	}
	return repo.Agents[s.SelectedAgent]
}
