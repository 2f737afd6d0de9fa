package dispatch

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jefe-cli/jefe/internal/ptymgr"
)

// previewOrigin is set by the renderer each frame so mouse events (reported
// in full-screen coordinates) can be translated to viewport-local cell
// coordinates (spec.md §4.5: "translated to viewport-local cell coordinates
// and encoded as SGR mouse bytes").
type previewOrigin struct {
	x, y          int
	width, height int
}

// handleMouse implements spec.md §4.5's mouse-gating rule: events are only
// forwarded to the PTY when terminal focus is on and the pointer is inside
// the terminal viewport; everything else is dropped on the floor.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.state.TerminalFocus {
		return m, nil
	}
	slot, ok := m.mgr.AttachedSlot()
	if !ok {
		return m, nil
	}

	localCol := msg.X - m.preview.x
	localRow := msg.Y - m.preview.y
	if localCol < 0 || localRow < 0 || localCol >= m.preview.width || localRow >= m.preview.height {
		return m, nil
	}

	ev, ok := toMouseEvent(msg, localRow, localCol)
	if !ok {
		return m, nil
	}
	b, ok := m.mgr.MouseToBytes(slot, ev)
	if !ok {
		return m, nil
	}
	if err := m.mgr.WriteInput(slot, b); err != nil {
		dispatchLog.Warn("write_mouse_input_failed", "slot", slot, "err", err)
	}
	return m, nil
}

func toMouseEvent(msg tea.MouseMsg, row, col int) (ptymgr.MouseEvent, bool) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return ptymgr.MouseEvent{Row: row, Col: col, Button: ptymgr.MouseWheelUp, Action: ptymgr.MousePress}, true
	case tea.MouseButtonWheelDown:
		return ptymgr.MouseEvent{Row: row, Col: col, Button: ptymgr.MouseWheelDown, Action: ptymgr.MousePress}, true
	case tea.MouseButtonMiddle:
		return ptymgr.MouseEvent{Row: row, Col: col, Button: ptymgr.MouseMiddle}, false
	case tea.MouseButtonRight:
		return ptymgr.MouseEvent{Row: row, Col: col, Button: ptymgr.MouseRight}, false
	case tea.MouseButtonLeft:
		// handled below
	default:
		return ptymgr.MouseEvent{}, false
	}

	var action ptymgr.MouseAction
	switch msg.Action {
	case tea.MouseActionPress:
		action = ptymgr.MousePress
	case tea.MouseActionRelease:
		action = ptymgr.MouseRelease
	case tea.MouseActionMotion:
		action = ptymgr.MouseDrag
	default:
		return ptymgr.MouseEvent{}, false
	}

	return ptymgr.MouseEvent{Row: row, Col: col, Button: ptymgr.MouseLeft, Action: action}, true
}
