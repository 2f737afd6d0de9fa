package statemachine

// Event is the marker interface every application event implements. Events
// are plain data — no callbacks, no promises — so the full taxonomy is
// exhaustively enumerable, matching spec.md §4.4's event taxonomy.
type Event interface{ isEvent() }

// Navigation events.
type MoveUp struct{}
type MoveDown struct{}
type MoveLeft struct{}
type MoveRight struct{}

func (MoveUp) isEvent()    {}
func (MoveDown) isEvent()  {}
func (MoveLeft) isEvent()  {}
func (MoveRight) isEvent() {}

// Pane-focus events.
type FocusSidebar struct{}
type FocusAgentList struct{}
type FocusTerminal struct{}

func (FocusSidebar) isEvent()   {}
func (FocusAgentList) isEvent() {}
func (FocusTerminal) isEvent()  {}

// Screen-transition events.
type OpenNewAgent struct{}
type OpenNewRepository struct{}
type OpenEdit struct{}
type OpenSplit struct{}
type OpenSearch struct{}
type OpenHelp struct{}
type Back struct{}

func (OpenNewAgent) isEvent()      {}
func (OpenNewRepository) isEvent() {}
func (OpenEdit) isEvent()          {}
func (OpenSplit) isEvent()         {}
func (OpenSearch) isEvent()        {}
func (OpenHelp) isEvent()          {}
func (Back) isEvent()              {}

// Form events.
type NextField struct{}
type PrevField struct{}
type EditChar struct{ Ch rune }
type Backspace struct{}
type ToggleCheckbox struct{ Name string }
type SubmitForm struct{}

func (NextField) isEvent()      {}
func (PrevField) isEvent()      {}
func (EditChar) isEvent()       {}
func (Backspace) isEvent()      {}
func (ToggleCheckbox) isEvent() {}
func (SubmitForm) isEvent()     {}

// Lifecycle intents.
type KillAgent struct{}
type RelaunchAgent struct{}

func (KillAgent) isEvent()     {}
func (RelaunchAgent) isEvent() {}

// Deletion flow.
type RequestDelete struct{}
type ConfirmDelete struct{}
type CancelDelete struct{}

func (RequestDelete) isEvent() {}
func (ConfirmDelete) isEvent() {}
func (CancelDelete) isEvent()  {}

// Split-mode events.
type ToggleGrab struct{}
type SwapUp struct{}
type SwapDown struct{}
type SetRepoFilter struct{ Query string }

func (ToggleGrab) isEvent()    {}
func (SwapUp) isEvent()        {}
func (SwapDown) isEvent()      {}
func (SetRepoFilter) isEvent() {}

// Theme event.
type SetTheme struct{ Slug string }

func (SetTheme) isEvent() {}

// Terminal-focus toggle (F12 — spec.md §4.4's key policy, independent of
// FocusTerminal's pane-navigation meaning).
type ToggleTerminalFocus struct{}

func (ToggleTerminalFocus) isEvent() {}

// Character input. Routed by the active screen: form screens treat it as
// EditChar; any other screen appends it to SearchQuery while no modal is
// open, and ignores it while one is.
type CharInput struct{ Ch rune }

func (CharInput) isEvent() {}
