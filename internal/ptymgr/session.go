// Package ptymgr owns every live agent terminal: creating and naming
// multiplexer sessions, attaching a single viewer at a time, extracting
// themed cell-grid snapshots, and encoding keyboard/mouse input. It is the
// PTY Session Manager of spec.md §4.3.
package ptymgr

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jefe-cli/jefe/internal/logging"
	"github.com/jefe-cli/jefe/internal/theme"
)

var ptyLog = logging.ForComponent(logging.CompPTY)

// ErrNoSuchSlot is returned by any Manager operation given a slot index that
// was never allocated.
var ErrNoSuchSlot = errors.New("ptymgr: no such slot")

// AgentSession is one entry in the manager's session vector: the metadata
// needed to (re)create the multiplexer session at any time.
type AgentSession struct {
	WorkDir string
	Profile string
	Mode    string
	killed  bool
}

// DefaultAgentBinary is the root command every session runs (spec.md §6:
// "the agent CLI"). Grounded on the teacher's hardcoded default tool name
// (internal/session/tooloptions.go's ToolName returning "claude").
const DefaultAgentBinary = "claude"

// Manager owns the session vector and at most one attached viewer. All
// exported methods are safe for concurrent use; per spec.md §5, every entry
// point is expected to be called from the single main-loop goroutine, with
// contention only against the one reader goroutine of an attached viewer.
type Manager struct {
	mu          sync.Mutex
	sessions    []AgentSession
	viewer      *attachedViewer
	defaults    theme.Defaults
	agentBinary string
	sf          singleflight.Group
}

// NewManager returns an empty Manager. binary overrides DefaultAgentBinary
// when non-empty (used by tests to avoid spawning a real agent CLI).
func NewManager(binary string) *Manager {
	if binary == "" {
		binary = DefaultAgentBinary
	}
	return &Manager{agentBinary: binary}
}

func splitMode(mode string) []string {
	fields := strings.Fields(mode)
	return fields
}

func sessionArgs(profile, mode string) []string {
	var args []string
	if profile != "" {
		args = append(args, "--profile-load", profile)
	}
	args = append(args, splitMode(mode)...)
	return args
}

// AddSession allocates a new slot, appends its metadata, and starts the
// external multiplexer session running the agent CLI in workDir (spec.md
// §4.3 add_session). On spawn failure the slot is still allocated (its
// metadata is retained) but the caller sees a non-nil error and must not
// treat the agent as having a usable pty_slot.
func (m *Manager) AddSession(workDir, profile, mode string) (int, error) {
	m.mu.Lock()
	slot := len(m.sessions)
	m.sessions = append(m.sessions, AgentSession{WorkDir: workDir, Profile: profile, Mode: mode})
	binary := m.agentBinary
	m.mu.Unlock()

	name := SessionName(slot)
	if tmuxHasSession(name) {
		_ = tmuxKillSession(name)
	}

	// workDir may be created on demand (spec.md §4.3 add_session): tmux
	// refuses to start a session with -c pointed at a directory that
	// doesn't exist yet, so it must exist before the first spawn attempt.
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return slot, fmt.Errorf("ptymgr: add_session slot %d: create work dir: %w", slot, err)
	}

	args := sessionArgs(profile, mode)
	err := tmuxNewSession(name, workDir, binary, args)
	if err != nil {
		// Single spawn-failure retry against a clean server (spec.md §4.3/§5).
		ptyLog.Warn("session_spawn_failed_retrying", "slot", slot, "err", err)
		tmuxKillServer()
		err = tmuxNewSession(name, workDir, binary, args)
	}
	if err != nil {
		ptyLog.Warn("session_spawn_failed", "slot", slot, "err", err)
		return slot, fmt.Errorf("ptymgr: add_session slot %d: %w", slot, err)
	}
	return slot, nil
}

// RestoreSession re-registers a slot's metadata at startup from a loaded
// catalog, without spawning anything: the multiplexer session named for
// this slot either already exists (spawned by a previous process) or is
// already gone, and liveness reconciliation (spec.md §4.1) is what decides
// which. Slots must be restored in ascending order starting from 0 so the
// returned index matches the slot the catalog already recorded.
func (m *Manager) RestoreSession(workDir, profile, mode string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	slot := len(m.sessions)
	m.sessions = append(m.sessions, AgentSession{WorkDir: workDir, Profile: profile, Mode: mode})
	return slot
}

func (m *Manager) sessionAt(slot int) (AgentSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slot < 0 || slot >= len(m.sessions) {
		return AgentSession{}, ErrNoSuchSlot
	}
	return m.sessions[slot], nil
}

// IsAlive conservatively returns false on lookup error (spec.md §4.3).
// Concurrent calls for the same slot are collapsed via singleflight so a
// liveness probe already in flight is shared rather than re-invoked (the
// attach algorithm's own has-session check does not go through here),
// mirroring the teacher's
// RefreshSessionCache single-flighting (internal/tmux/tmux.go).
func (m *Manager) IsAlive(slot int) bool {
	if _, err := m.sessionAt(slot); err != nil {
		return false
	}
	name := SessionName(slot)
	v, _, _ := m.sf.Do(name, func() (interface{}, error) {
		return tmuxHasSession(name), nil
	})
	alive, _ := v.(bool)
	return alive
}

// KillSession terminates the multiplexer session and tears down the viewer
// if it is currently attached to slot. Idempotent: killing an already-dead
// session succeeds as a no-op (spec.md §4.3).
func (m *Manager) KillSession(slot int) error {
	if _, err := m.sessionAt(slot); err != nil {
		return err
	}

	m.mu.Lock()
	if m.viewer != nil && m.viewer.slot == slot {
		v := m.viewer
		m.viewer = nil
		m.mu.Unlock()
		v.teardown()
	} else {
		m.mu.Unlock()
	}

	name := SessionName(slot)
	if err := tmuxKillSession(name); err != nil {
		ptyLog.Warn("kill_session_failed", "slot", slot, "err", err)
		return err
	}

	m.mu.Lock()
	m.sessions[slot].killed = true
	m.mu.Unlock()
	return nil
}

// RelaunchSession destroys and re-creates the session from its stored
// (work_dir, profile, mode) metadata (spec.md §4.3 relaunch_session).
func (m *Manager) RelaunchSession(slot int) error {
	sess, err := m.sessionAt(slot)
	if err != nil {
		return err
	}

	_ = m.KillSession(slot)

	name := SessionName(slot)
	binary := m.agentBinary
	args := sessionArgs(sess.Profile, sess.Mode)
	if err := tmuxNewSession(name, sess.WorkDir, binary, args); err != nil {
		ptyLog.Warn("relaunch_failed", "slot", slot, "err", err)
		return fmt.Errorf("ptymgr: relaunch_session slot %d: %w", slot, err)
	}

	m.mu.Lock()
	m.sessions[slot].killed = false
	m.mu.Unlock()
	return nil
}

// SetColorDefaults installs theme-derived RGB defaults; subsequent
// snapshots use them (spec.md §4.3 set_color_defaults).
func (m *Manager) SetColorDefaults(d theme.Defaults) {
	m.mu.Lock()
	m.defaults = d
	m.mu.Unlock()
}

// Close terminates the attached viewer and every managed session (spec.md
// §5: "Dropping the manager terminates the viewer and all managed
// sessions").
func (m *Manager) Close() {
	m.mu.Lock()
	v := m.viewer
	m.viewer = nil
	n := len(m.sessions)
	m.mu.Unlock()

	if v != nil {
		v.teardown()
	}
	for slot := 0; slot < n; slot++ {
		_ = tmuxKillSession(SessionName(slot))
	}
}
