package dispatch

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/jefe-cli/jefe/internal/statemachine"
)

func TestToKeyEventF12IsSwallowed(t *testing.T) {
	_, ok := toKeyEvent(tea.KeyMsg{Type: tea.KeyF12})
	assert.False(t, ok)
}

func TestToKeyEventNamedKey(t *testing.T) {
	ev, ok := toKeyEvent(tea.KeyMsg{Type: tea.KeyUp})
	assert.True(t, ok)
	assert.Equal(t, "up", ev.Special)
}

func TestToKeyEventCtrlLetter(t *testing.T) {
	ev, ok := toKeyEvent(tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.True(t, ok)
	assert.Equal(t, []rune{'a'}, ev.Runes)
	assert.True(t, ev.Ctrl)
}

func TestToKeyEventEsc(t *testing.T) {
	ev, ok := toKeyEvent(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, ok)
	assert.Equal(t, []rune{0x1b}, ev.Runes)
}

func TestToKeyEventPrintableRune(t *testing.T) {
	ev, ok := toKeyEvent(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.True(t, ok)
	assert.Equal(t, []rune{'x'}, ev.Runes)
}

func TestToKeyEventUnmappedKeyIsRejected(t *testing.T) {
	_, ok := toKeyEvent(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.False(t, ok)
}

func TestIsFormScreen(t *testing.T) {
	assert.True(t, isFormScreen(statemachine.ScreenNewAgent))
	assert.True(t, isFormScreen(statemachine.ScreenEditRepository))
	assert.False(t, isFormScreen(statemachine.ScreenDashboard))
	assert.False(t, isFormScreen(statemachine.ScreenSplit))
}
