package statemachine

import "github.com/jefe-cli/jefe/internal/domain"

var agentFieldOrder = []fieldKey{FieldName, FieldDescription, FieldWorkDir, FieldProfile, FieldMode}
var repoFieldOrder = []fieldKey{FieldName, FieldBaseDir, FieldDefaultProfile}

func newFormState(order []fieldKey, repoIdx, agentIdx int) FormState {
	values := make(map[fieldKey]string, len(order))
	for _, k := range order {
		values[k] = ""
	}
	return FormState{
		FieldOrder: order,
		Values:     values,
		FocusIndex: 0,
		Checkboxes: map[string]bool{},
		RepoIndex:  repoIdx,
		AgentIndex: agentIdx,
	}
}

func (s *State) openNewAgentForm() {
	s.Screen = ScreenNewAgent
	s.Form = newFormState(agentFieldOrder, s.SelectedRepo, -1)
	if repo := s.currentRepo(); repo != nil {
		s.Form.Values[FieldProfile] = repo.DefaultProfile
	}
}

func (s *State) openNewRepositoryForm() {
	s.Screen = ScreenNewRepository
	s.Form = newFormState(repoFieldOrder, -1, -1)
}

func (s *State) openEditForm() {
	switch s.Pane {
	case PaneSidebar:
		repo := s.currentRepo()
		if repo == nil {
			return
		}
		s.Screen = ScreenEditRepository
		s.Form = newFormState(repoFieldOrder, s.SelectedRepo, -1)
		s.Form.Values[FieldName] = repo.Name
		s.Form.Values[FieldBaseDir] = repo.BaseDir
		s.Form.Values[FieldDefaultProfile] = repo.DefaultProfile
		s.Form.WorkDirManuallyEdited = true
	default:
		agent := s.currentAgent()
		if agent == nil {
			return
		}
		s.Screen = ScreenEditAgent
		s.Form = newFormState(agentFieldOrder, s.SelectedRepo, s.SelectedAgent)
		s.Form.Values[FieldName] = agent.Name
		s.Form.Values[FieldDescription] = agent.Description
		s.Form.Values[FieldWorkDir] = agent.WorkDir
		s.Form.Values[FieldProfile] = agent.Profile
		s.Form.Values[FieldMode] = agent.Mode
		s.Form.WorkDirManuallyEdited = agent.WorkDirManuallyEdited
	}
}

func (s *State) moveFormFocus(delta int) {
	n := len(s.Form.FieldOrder)
	if n == 0 {
		return
	}
	s.Form.FocusIndex = ((s.Form.FocusIndex+delta)%n + n) % n
}

func (s *State) focusedField() fieldKey {
	if s.Form.FocusIndex < 0 || s.Form.FocusIndex >= len(s.Form.FieldOrder) {
		return ""
	}
	return s.Form.FieldOrder[s.Form.FocusIndex]
}

// FocusedFieldName exposes the focused field's name as a plain string, for
// the dispatch layer's checkbox-toggle key (fieldKey itself is unexported
// since it only ever needs to be compared within this package).
func (s *State) FocusedFieldName() string {
	return string(s.focusedField())
}

// FormFields exposes the active form's fields as plain (name, value) pairs
// in display order, for the dispatch layer's renderer (fieldKey stays
// unexported; this is the one seam that crosses the package boundary).
func (s *State) FormFields() []FormField {
	out := make([]FormField, len(s.Form.FieldOrder))
	for i, k := range s.Form.FieldOrder {
		out[i] = FormField{Name: string(k), Value: s.Form.Values[k], Focused: i == s.Form.FocusIndex}
	}
	return out
}

// FormField is one field of the active form, exposed for rendering.
type FormField struct {
	Name    string
	Value   string
	Focused bool
}

// editFormChar appends ch to the focused field, regenerating the work-dir
// field from the repository base dir + slug(name) whenever the name field
// changes and the work-dir field has not been manually edited (spec.md
// §4.4's name/work-dir latch rule). Editing the work-dir field directly
// latches WorkDirManuallyEdited so subsequent name edits stop overwriting
// it.
func (s *State) editFormChar(ch rune) {
	field := s.focusedField()
	if field == "" {
		return
	}
	s.Form.Values[field] += string(ch)

	switch field {
	case FieldName:
		s.regenerateWorkDir()
	case FieldWorkDir:
		s.Form.WorkDirManuallyEdited = true
	}
}

func (s *State) backspaceFormChar() {
	field := s.focusedField()
	if field == "" {
		return
	}
	v := []rune(s.Form.Values[field])
	if len(v) == 0 {
		return
	}
	s.Form.Values[field] = string(v[:len(v)-1])

	switch field {
	case FieldName:
		s.regenerateWorkDir()
	case FieldWorkDir:
		s.Form.WorkDirManuallyEdited = true
	}
}

func (s *State) regenerateWorkDir() {
	if s.Form.WorkDirManuallyEdited {
		return
	}
	baseDir := ""
	if repo := s.repoForForm(); repo != nil {
		baseDir = repo.BaseDir
	}
	s.Form.Values[FieldWorkDir] = domain.AgentWorkDir(baseDir, s.Form.Values[FieldName])
}

func (s *State) repoForForm() *domain.Repository {
	if s.Form.RepoIndex < 0 || s.Form.RepoIndex >= len(s.Catalog.Repositories) {
		return nil
	}
	return s.Catalog.Repositories[s.Form.RepoIndex]
}

// submitForm commits the active form to the catalog and returns the
// effects its screen implies (new agents need a session created;
// everything needs the catalog persisted).
func (s *State) submitForm() []Effect {
	switch s.Screen {
	case ScreenNewAgent:
		return s.submitNewAgent()
	case ScreenNewRepository:
		return s.submitNewRepository()
	case ScreenEditAgent:
		return s.submitEditAgent()
	case ScreenEditRepository:
		return s.submitEditRepository()
	}
	return nil
}

func (s *State) submitNewAgent() []Effect {
	repo := s.repoForForm()
	if repo == nil {
		s.Screen = ScreenDashboard
		return nil
	}
	agent := domain.NewAgent(
		s.Form.Values[FieldName],
		s.Form.Values[FieldWorkDir],
		s.Form.Values[FieldProfile],
		s.Form.Values[FieldMode],
	)
	agent.WorkDirManuallyEdited = s.Form.WorkDirManuallyEdited
	repo.Agents = append(repo.Agents, agent)
	s.SelectedAgent = len(repo.Agents) - 1
	s.Screen = ScreenDashboard

	return []Effect{
		CreateSessionEffect{Agent: agent, WorkDir: agent.WorkDir, Profile: agent.Profile, Mode: agent.Mode},
		PersistCatalogEffect{},
	}
}

func (s *State) submitNewRepository() []Effect {
	repo := domain.NewRepository(
		s.Form.Values[FieldName],
		s.Form.Values[FieldBaseDir],
		s.Form.Values[FieldDefaultProfile],
	)
	s.Catalog.Repositories = append(s.Catalog.Repositories, repo)
	s.SelectedRepo = len(s.Catalog.Repositories) - 1
	s.Screen = ScreenDashboard
	return []Effect{MkdirEffect{Path: repo.BaseDir}, PersistCatalogEffect{}}
}

func (s *State) submitEditAgent() []Effect {
	repo := s.repoForForm()
	if repo == nil || s.Form.AgentIndex < 0 || s.Form.AgentIndex >= len(repo.Agents) {
		s.Screen = ScreenDashboard
		return nil
	}
	agent := repo.Agents[s.Form.AgentIndex]
	agent.Name = s.Form.Values[FieldName]
	agent.Description = s.Form.Values[FieldDescription]
	agent.WorkDir = s.Form.Values[FieldWorkDir]
	agent.Profile = s.Form.Values[FieldProfile]
	agent.Mode = s.Form.Values[FieldMode]
	agent.WorkDirManuallyEdited = s.Form.WorkDirManuallyEdited
	s.Screen = ScreenDashboard
	return []Effect{MkdirEffect{Path: agent.WorkDir}, PersistCatalogEffect{}}
}

func (s *State) submitEditRepository() []Effect {
	if s.Form.RepoIndex < 0 || s.Form.RepoIndex >= len(s.Catalog.Repositories) {
		s.Screen = ScreenDashboard
		return nil
	}
	repo := s.Catalog.Repositories[s.Form.RepoIndex]
	repo.Name = s.Form.Values[FieldName]
	repo.Slug = domain.Slug(repo.Name)
	repo.BaseDir = s.Form.Values[FieldBaseDir]
	repo.DefaultProfile = s.Form.Values[FieldDefaultProfile]
	s.Screen = ScreenDashboard
	return []Effect{MkdirEffect{Path: repo.BaseDir}, PersistCatalogEffect{}}
}

// handleCharInput routes a raw character by active screen: form screens
// treat it as an edit; any other screen appends it to the search query
// buffer while no modal is open, and ignores it while one is.
func (s *State) handleCharInput(ch rune) {
	switch s.Screen {
	case ScreenNewAgent, ScreenNewRepository, ScreenEditAgent, ScreenEditRepository:
		s.editFormChar(ch)
	default:
		if s.Modal == ModalNone {
			s.SearchQuery += string(ch)
		}
	}
}
