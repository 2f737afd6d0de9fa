// Package dispatch wires the Application State Machine (internal/statemachine)
// to a live terminal: it drains bubbletea host events, translates them into
// state-machine events or raw PTY bytes, executes the effects the reducer
// returns, reconciles liveness once a tick, and renders. This is the Event
// Dispatch / Main Loop of spec.md §4.5, grounded on the teacher's
// cmd/agent-deck/main.go bubbletea program assembly and internal/ui/home.go's
// Update/tick structure, generalized from a 2-second status-poll cadence to
// the ~30 Hz PTY poll cadence spec.md §4.5 requires.
package dispatch

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jefe-cli/jefe/internal/domain"
	"github.com/jefe-cli/jefe/internal/logging"
	"github.com/jefe-cli/jefe/internal/ptymgr"
	"github.com/jefe-cli/jefe/internal/statemachine"
	"github.com/jefe-cli/jefe/internal/theme"
)

var dispatchLog = logging.ForComponent(logging.CompDispatch)

// pollInterval is the PTY poll cadence spec.md §4.5 fixes at ~30 Hz.
const pollInterval = 33 * time.Millisecond

// tickMsg drives one cycle of liveness reconciliation + snapshot + render.
type tickMsg time.Time

// Model is the bubbletea adapter around the pure state machine. It owns
// everything the reducer itself is forbidden from touching: the PTY
// manager, the theme registry, and persistence.
type Model struct {
	state    *statemachine.State
	mgr      *ptymgr.Manager
	registry *theme.Registry
	settings *domain.Settings

	width, height int

	statusMessage string
	preview       previewOrigin
}

// New constructs the dispatch model from an already-loaded catalog and
// settings document (cmd/jefe loads these at startup so a malformed file can
// surface its warning before the bubbletea program takes over the screen).
func New(cat *domain.Catalog, settings *domain.Settings, registry *theme.Registry, mgr *ptymgr.Manager) *Model {
	mgr.SetColorDefaults(registry.Get(settings.ActiveTheme).ToDefaults())
	return &Model{
		state:    statemachine.NewState(cat),
		mgr:      mgr,
		registry: registry,
		settings: settings,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(tick(), tea.EnterAltScreen)
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update is the single bubbletea entry point: it routes to the key/mouse
// translator, the tick handler, or a resize, never touching application
// state directly (spec.md §4.5 step 1: "translate to an application event
// and invoke the reducer").
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.mgr.ResizeAll(msg.Height, msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tickMsg:
		m.runTick()
		return m, tick()
	}
	return m, nil
}

// runTick implements spec.md §4.5 steps 2-3: perform effects from the
// preceding transition is actually done inline at dispatch time (see
// handleKey), so a tick only reconciles liveness — step 4 (snapshot + render)
// is bubbletea's own View() call following this Update.
func (m *Model) runTick() {
	if m.state.ReconcileLiveness(m.mgr.IsAlive) {
		dispatchLog.Debug("liveness_transitioned")
	}
}

// dispatch feeds ev through the reducer and executes every effect it
// returns, in order, on the calling goroutine (spec.md §5: "synchronous
// system calls ... run on the main thread because the measured worst case is
// well under a frame's worth of time").
func (m *Model) dispatch(ev statemachine.Event) {
	effects := m.state.Handle(ev)
	for _, eff := range effects {
		m.perform(eff)
	}
}
