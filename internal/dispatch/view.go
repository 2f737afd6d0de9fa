package dispatch

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jefe-cli/jefe/internal/domain"
	"github.com/jefe-cli/jefe/internal/presenter"
	"github.com/jefe-cli/jefe/internal/statemachine"
	"github.com/jefe-cli/jefe/internal/theme"
)

func rgbColor(c theme.RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// View implements spec.md §4.5 step 4: read a fresh terminal snapshot for
// the active agent, pass the state + snapshot to the render step. Rendering
// itself follows the teacher's three-pane dashboard layout (internal/ui's
// sidebar/list/preview split), generalized from sessions-in-a-flat-list to
// repositories-with-nested-agents.
func (m *Model) View() string {
	th := m.registry.Get(m.settings.ActiveTheme)

	switch {
	case m.state.Modal == statemachine.ModalHelp:
		return m.renderHelp(th)
	case m.state.Modal == statemachine.ModalConfirmDeleteAgent, m.state.Modal == statemachine.ModalConfirmDeleteRepo:
		return m.renderConfirmDelete(th)
	case isFormScreen(m.state.Screen):
		return m.renderForm(th)
	case m.state.Screen == statemachine.ScreenSplit:
		return m.renderSplit(th)
	default:
		return m.renderDashboard(th)
	}
}

func (m *Model) renderDashboard(th theme.Theme) string {
	sidebarWidth := m.width / 4
	if sidebarWidth < 20 {
		sidebarWidth = 20
	}
	listWidth := m.width / 4
	previewWidth := m.width - sidebarWidth - listWidth - 4
	if previewWidth < 10 {
		previewWidth = 10
	}
	bodyHeight := m.height - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	sidebar := m.renderSidebar(th, sidebarWidth, bodyHeight)
	list := m.renderAgentList(th, listWidth, bodyHeight)
	preview := m.renderPreview(th, previewWidth, bodyHeight)

	m.preview = previewOrigin{x: sidebarWidth + listWidth + 2, y: 1, width: previewWidth, height: bodyHeight - 2}

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, list, preview)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar(th))
}

func borderStyle(th theme.Theme, focused bool) lipgloss.Style {
	c := th.BorderDefault
	if focused {
		c = th.BorderFocused
	}
	return lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(rgbColor(c))
}

func (m *Model) renderSidebar(th theme.Theme, width, height int) string {
	style := borderStyle(th, m.state.Pane == statemachine.PaneSidebar).Width(width).Height(height)
	var b strings.Builder
	for i, r := range m.state.Catalog.Repositories {
		line := presenter.Truncate(r.Name, width-2)
		if i == m.state.SelectedRepo {
			line = lipgloss.NewStyle().Foreground(rgbColor(th.SelectionFG)).Background(rgbColor(th.SelectionBG)).Render(line)
		}
		b.WriteString(line + "\n")
	}
	return style.Render(b.String())
}

func (m *Model) renderAgentList(th theme.Theme, width, height int) string {
	style := borderStyle(th, m.state.Pane == statemachine.PaneAgentList).Width(width).Height(height)
	var b strings.Builder
	if repo := m.selectedRepo(); repo != nil {
		for i, a := range repo.Agents {
			line := fmt.Sprintf("%s #%d %s", presenter.StatusIcon(a.Status), a.DisplayID, presenter.Truncate(a.Name, width-8))
			line = lipgloss.NewStyle().Foreground(rgbColor(statusColor(th, a.Status))).Render(line)
			if i == m.state.SelectedAgent {
				line = lipgloss.NewStyle().Foreground(rgbColor(th.SelectionFG)).Background(rgbColor(th.SelectionBG)).Render(
					fmt.Sprintf("%s #%d %s", presenter.StatusIcon(a.Status), a.DisplayID, presenter.Truncate(a.Name, width-8)))
			}
			b.WriteString(line + "\n")
		}
	}
	return style.Render(b.String())
}

func (m *Model) selectedRepo() *domain.Repository {
	if m.state.SelectedRepo < 0 || m.state.SelectedRepo >= len(m.state.Catalog.Repositories) {
		return nil
	}
	return m.state.Catalog.Repositories[m.state.SelectedRepo]
}

func (m *Model) selectedAgent() *domain.Agent {
	repo := m.selectedRepo()
	if repo == nil || m.state.SelectedAgent < 0 || m.state.SelectedAgent >= len(repo.Agents) {
		return nil
	}
	return repo.Agents[m.state.SelectedAgent]
}

func statusColor(th theme.Theme, s domain.AgentStatus) theme.RGB {
	switch s {
	case domain.StatusRunning:
		return th.StatusRunning
	case domain.StatusCompleted:
		return th.StatusCompleted
	case domain.StatusErrored:
		return th.StatusErrored
	case domain.StatusWaiting:
		return th.StatusWaiting
	case domain.StatusPaused:
		return th.StatusPaused
	case domain.StatusQueued:
		return th.StatusQueued
	default:
		return th.StatusDead
	}
}

// renderPreview draws the live terminal grid for the selected agent's PTY
// slot, ensuring it is attached first (spec.md §4.3 ensure_attached is
// called lazily from the render path since attaching is what "viewing"
// means).
func (m *Model) renderPreview(th theme.Theme, width, height int) string {
	style := borderStyle(th, m.state.Pane == statemachine.PanePreview).Width(width).Height(height)
	agent := m.selectedAgent()
	if agent == nil || agent.PTYSlot == nil {
		return style.Render("no agent selected")
	}
	if err := m.mgr.EnsureAttached(*agent.PTYSlot); err != nil {
		return style.Render("attach failed: " + err.Error())
	}
	snap := m.mgr.TerminalSnapshot(*agent.PTYSlot)
	return style.Render(renderSnapshot(snap))
}

func (m *Model) renderStatusBar(th theme.Theme) string {
	style := lipgloss.NewStyle().Foreground(rgbColor(th.ForegroundDim))
	msg := m.statusMessage
	if msg == "" {
		msg = "q quit · ? help · / search · n new agent · N new repo · s split"
	}
	return style.Render(msg)
}
