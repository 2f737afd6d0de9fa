package ptymgr

import (
	"fmt"
	"log/slog"

	"github.com/jefe-cli/jefe/internal/logging"
)

// EnsureAttached implements spec.md §4.3's attach algorithm. If already
// attached to slot and the viewer is alive, it returns immediately;
// otherwise it tears down any current viewer, verifies (and if necessary
// recreates) the target session, and spawns a fresh viewer.
func (m *Manager) EnsureAttached(slot int) error {
	m.mu.Lock()
	if _, err := m.sessionAtLocked(slot); err != nil {
		m.mu.Unlock()
		return err
	}
	if m.viewer != nil && m.viewer.slot == slot && m.viewer.alive() {
		m.mu.Unlock()
		return nil
	}
	current := m.viewer
	m.viewer = nil
	rows, cols := 24, 80
	if current != nil {
		rows, cols = current.rows, current.cols
	}
	m.mu.Unlock()

	if current != nil {
		current.teardown()
	}

	name := SessionName(slot)
	if !tmuxHasSession(name) {
		sess, err := m.sessionAt(slot)
		if err != nil {
			return err
		}
		args := sessionArgs(sess.Profile, sess.Mode)
		if err := tmuxNewSession(name, sess.WorkDir, m.agentBinary, args); err != nil {
			return fmt.Errorf("ptymgr: ensure_attached recreate slot %d: %w", slot, err)
		}
	}

	v, err := attach(slot, name, rows, cols)
	if err != nil {
		ptyLog.Warn("attach_failed", "slot", slot, "err", err)
		return err
	}

	m.mu.Lock()
	m.viewer = v
	m.mu.Unlock()
	return nil
}

func (m *Manager) sessionAtLocked(slot int) (AgentSession, error) {
	if slot < 0 || slot >= len(m.sessions) {
		return AgentSession{}, ErrNoSuchSlot
	}
	return m.sessions[slot], nil
}

// alive reports whether the viewer's reader goroutine is still running.
func (v *attachedViewer) alive() bool {
	select {
	case <-v.done:
		return false
	default:
		return true
	}
}

// WriteInput writes already-encoded bytes to the attached viewer's PTY
// master; errors if slot is not currently attached (spec.md §4.3
// write_input).
func (m *Manager) WriteInput(slot int, data []byte) error {
	m.mu.Lock()
	v := m.viewer
	m.mu.Unlock()
	if v == nil || v.slot != slot {
		return fmt.Errorf("ptymgr: write_input: slot %d not attached", slot)
	}
	return v.write(data)
}

// ResizeAll resizes the attached viewer's PTY master and terminal model
// (spec.md §4.3 resize_all). Non-fatal: errors are logged, not returned, per
// spec.md §4.3's table ("non-fatal; errors are logged"). A terminal emulator
// dragging its window can fire a resize on every pixel of motion, so repeat
// failures go through the aggregator rather than one Warn line per frame.
func (m *Manager) ResizeAll(rows, cols int) {
	m.mu.Lock()
	v := m.viewer
	m.mu.Unlock()
	if v == nil {
		return
	}
	if err := v.resize(rows, cols); err != nil {
		logging.Aggregate(logging.CompPTY, "resize_failed",
			slog.Int("slot", v.slot), slog.String("err", err.Error()))
	}
}

// AttachedSlot returns the slot of the current viewer and whether one
// exists.
func (m *Manager) AttachedSlot() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.viewer == nil {
		return 0, false
	}
	return m.viewer.slot, true
}

// KeyToBytes encodes key into the byte sequence written to the attached
// viewer, or (nil, false) when no encoding applies (spec.md §4.3
// key_to_bytes). F12 is never encoded; callers must intercept it upstream
// as the focus-toggle escape key (spec.md §4.4 key policies).
func (m *Manager) KeyToBytes(k KeyEvent) ([]byte, bool) {
	return KeyToBytes(k)
}

// MouseToBytes encodes ev in SGR mouse format, gated on whether the
// attached viewer's child has enabled mouse reporting (spec.md §4.3
// mouse_to_bytes).
func (m *Manager) MouseToBytes(slot int, ev MouseEvent) ([]byte, bool) {
	m.mu.Lock()
	v := m.viewer
	m.mu.Unlock()
	if v == nil || v.slot != slot {
		return nil, false
	}
	if !v.mouse.enabled() {
		return nil, false
	}
	return MouseToBytes(ev)
}
