package dispatch

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/jefe-cli/jefe/internal/ptymgr"
)

func TestToMouseEventLeftPress(t *testing.T) {
	ev, ok := toMouseEvent(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}, 3, 5)
	assert.True(t, ok)
	assert.Equal(t, ptymgr.MouseEvent{Row: 3, Col: 5, Button: ptymgr.MouseLeft, Action: ptymgr.MousePress}, ev)
}

func TestToMouseEventWheelUp(t *testing.T) {
	ev, ok := toMouseEvent(tea.MouseMsg{Button: tea.MouseButtonWheelUp}, 0, 0)
	assert.True(t, ok)
	assert.Equal(t, ptymgr.MouseWheelUp, ev.Button)
}

func TestToMouseEventMiddleIsDropped(t *testing.T) {
	_, ok := toMouseEvent(tea.MouseMsg{Button: tea.MouseButtonMiddle}, 0, 0)
	assert.False(t, ok)
}

func TestToMouseEventMotionIsDrag(t *testing.T) {
	ev, ok := toMouseEvent(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion}, 1, 1)
	assert.True(t, ok)
	assert.Equal(t, ptymgr.MouseDrag, ev.Action)
}
