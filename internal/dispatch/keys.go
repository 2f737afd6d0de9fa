package dispatch

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jefe-cli/jefe/internal/ptymgr"
	"github.com/jefe-cli/jefe/internal/statemachine"
)

// namedKeys maps bubbletea's String() form of a non-rune key to the Special
// field ptymgr.KeyEvent expects (spec.md §4.3's key-encoding table).
var namedKeys = map[string]string{
	"up": "up", "down": "down", "left": "left", "right": "right",
	"home": "home", "end": "end", "pgup": "pgup", "pgdown": "pgdown",
	"insert": "insert", "delete": "delete",
	"enter": "enter", "tab": "tab", "backspace": "backspace",
	"f1": "f1", "f2": "f2", "f3": "f3", "f4": "f4", "f5": "f5",
	"f6": "f6", "f7": "f7", "f8": "f8", "f9": "f9", "f10": "f10", "f11": "f11",
}

// ctrlLetters maps bubbletea's named ctrl+letter key strings back to the
// plain letter, since tea.KeyMsg represents them as distinct key types
// rather than a rune with a Ctrl flag.
var ctrlLetters = map[string]rune{
	"ctrl+a": 'a', "ctrl+b": 'b', "ctrl+c": 'c', "ctrl+d": 'd', "ctrl+e": 'e',
	"ctrl+f": 'f', "ctrl+g": 'g', "ctrl+h": 'h', "ctrl+j": 'j', "ctrl+k": 'k',
	"ctrl+l": 'l', "ctrl+n": 'n', "ctrl+o": 'o', "ctrl+p": 'p', "ctrl+q": 'q',
	"ctrl+r": 'r', "ctrl+s": 's', "ctrl+t": 't', "ctrl+u": 'u', "ctrl+v": 'v',
	"ctrl+w": 'w', "ctrl+x": 'x', "ctrl+y": 'y', "ctrl+z": 'z',
}

// toKeyEvent translates a bubbletea key message into ptymgr's KeyEvent,
// the form write-to-pty needs. ok is false when the key carries no useful
// payload (a bare modifier, unrecognized sequence).
func toKeyEvent(msg tea.KeyMsg) (ptymgr.KeyEvent, bool) {
	s := msg.String()

	if s == "f12" {
		return ptymgr.KeyEvent{}, false
	}
	if special, ok := namedKeys[s]; ok {
		return ptymgr.KeyEvent{Special: special, Alt: msg.Alt}, true
	}
	if r, ok := ctrlLetters[s]; ok {
		return ptymgr.KeyEvent{Runes: []rune{r}, Ctrl: true, Alt: msg.Alt}, true
	}
	if s == "esc" {
		return ptymgr.KeyEvent{Runes: []rune{0x1b}}, true
	}
	if s == "space" {
		return ptymgr.KeyEvent{Runes: []rune{' '}, Alt: msg.Alt}, true
	}
	if len(msg.Runes) > 0 {
		return ptymgr.KeyEvent{Runes: msg.Runes, Alt: msg.Alt}, true
	}
	return ptymgr.KeyEvent{}, false
}

// isFormScreen reports whether s is one of the dedicated form screens, where
// keys route to form events rather than dashboard/split navigation (spec.md
// §4.5 step 1).
func isFormScreen(s statemachine.Screen) bool {
	switch s {
	case statemachine.ScreenNewAgent, statemachine.ScreenNewRepository,
		statemachine.ScreenEditAgent, statemachine.ScreenEditRepository:
		return true
	}
	return false
}

// handleKey implements spec.md §4.5 step 1's key-routing rule: F12 is a
// pre-decode special case; forms route to form events; terminal focus routes
// to PTY bytes; everything else becomes an application event for the
// reducer.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()

	if s == "f12" {
		m.dispatch(statemachine.ToggleTerminalFocus{})
		return m, nil
	}

	if m.state.Modal == statemachine.ModalHelp {
		if s == "esc" || s == "?" || s == "q" {
			m.dispatch(statemachine.Back{})
		}
		return m, nil
	}

	if m.state.Modal == statemachine.ModalConfirmDeleteAgent || m.state.Modal == statemachine.ModalConfirmDeleteRepo {
		return m.handleConfirmDeleteKey(s)
	}

	if isFormScreen(m.state.Screen) {
		return m.handleFormKey(s)
	}

	if m.state.TerminalFocus {
		return m.forwardToPTY(msg)
	}

	if m.state.Screen == statemachine.ScreenSplit {
		return m.handleSplitKey(s)
	}
	return m.handleDashboardKey(s)
}

func (m *Model) forwardToPTY(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	slot, ok := m.mgr.AttachedSlot()
	if !ok {
		return m, nil
	}
	kev, ok := toKeyEvent(msg)
	if !ok {
		return m, nil
	}
	b, ok := m.mgr.KeyToBytes(kev)
	if !ok {
		return m, nil
	}
	if err := m.mgr.WriteInput(slot, b); err != nil {
		dispatchLog.Warn("write_input_failed", "slot", slot, "err", err)
	}
	return m, nil
}

func (m *Model) handleConfirmDeleteKey(s string) (tea.Model, tea.Cmd) {
	switch s {
	case "enter":
		m.dispatch(statemachine.ConfirmDelete{})
	case "esc":
		m.dispatch(statemachine.CancelDelete{})
	case "up", "down", "left", "right", " ", "d":
		m.dispatch(statemachine.MoveUp{})
	}
	return m, nil
}

func (m *Model) handleFormKey(s string) (tea.Model, tea.Cmd) {
	switch s {
	case "tab", "down":
		m.dispatch(statemachine.NextField{})
	case "shift+tab", "up":
		m.dispatch(statemachine.PrevField{})
	case "enter":
		m.dispatch(statemachine.SubmitForm{})
	case "esc":
		m.dispatch(statemachine.Back{})
	case "backspace":
		m.dispatch(statemachine.Backspace{})
	case " ":
		m.dispatch(statemachine.ToggleCheckbox{Name: m.state.FocusedFieldName()})
	default:
		if r := []rune(s); len(r) == 1 {
			m.dispatch(statemachine.EditChar{Ch: r[0]})
		}
	}
	return m, nil
}

func (m *Model) handleSplitKey(s string) (tea.Model, tea.Cmd) {
	switch s {
	case "up":
		m.dispatch(statemachine.MoveUp{})
	case "down":
		m.dispatch(statemachine.MoveDown{})
	case "left":
		m.dispatch(statemachine.MoveLeft{})
	case "right":
		m.dispatch(statemachine.MoveRight{})
	case "enter":
		m.dispatch(statemachine.ToggleGrab{})
	case "m":
		m.dispatch(statemachine.Back{})
		m.dispatch(statemachine.ToggleTerminalFocus{})
	case "esc":
		m.dispatch(statemachine.Back{})
	case "/":
		m.dispatch(statemachine.OpenSearch{})
	default:
		if r := []rune(s); len(r) == 1 {
			m.dispatch(statemachine.SetRepoFilter{Query: m.state.Split.RepoFilter + string(r)})
		}
	}
	return m, nil
}

func (m *Model) handleDashboardKey(s string) (tea.Model, tea.Cmd) {
	switch s {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?", "h", "f1":
		m.dispatch(statemachine.OpenHelp{})
	case "1":
		m.dispatch(statemachine.SetTheme{Slug: "green-screen"})
	case "2":
		m.dispatch(statemachine.SetTheme{Slug: "solarized"})
	case "3":
		m.dispatch(statemachine.SetTheme{Slug: "midnight"})
	case "up":
		m.dispatch(statemachine.MoveUp{})
	case "down":
		m.dispatch(statemachine.MoveDown{})
	case "left":
		m.dispatch(statemachine.MoveLeft{})
	case "right":
		m.dispatch(statemachine.MoveRight{})
	case "r":
		m.dispatch(statemachine.FocusSidebar{})
	case "a":
		m.dispatch(statemachine.FocusAgentList{})
	case "t":
		m.dispatch(statemachine.FocusTerminal{})
	case "n":
		m.dispatch(statemachine.OpenNewAgent{})
	case "N":
		m.dispatch(statemachine.OpenNewRepository{})
	case "e", "enter":
		m.dispatch(statemachine.OpenEdit{})
	case "d":
		m.dispatch(statemachine.RequestDelete{})
	case "k":
		m.dispatch(statemachine.KillAgent{})
	case "l":
		m.dispatch(statemachine.RelaunchAgent{})
	case "s":
		m.dispatch(statemachine.OpenSplit{})
	case "/":
		m.dispatch(statemachine.OpenSearch{})
	case "esc":
		m.dispatch(statemachine.Back{})
	default:
		if r := []rune(s); len(r) == 1 {
			m.dispatch(statemachine.CharInput{Ch: r[0]})
		}
	}
	return m, nil
}
