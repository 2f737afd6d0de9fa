package dispatch

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jefe-cli/jefe/internal/presenter"
	"github.com/jefe-cli/jefe/internal/statemachine"
	"github.com/jefe-cli/jefe/internal/theme"
)

var fieldLabels = map[string]string{
	"name":            "Name",
	"description":     "Description",
	"work_dir":        "Work dir",
	"base_dir":        "Base dir",
	"profile":         "Profile",
	"default_profile": "Default profile",
	"mode":            "Mode",
}

func fieldLabel(name string) string {
	if l, ok := fieldLabels[name]; ok {
		return l
	}
	return name
}

func formTitle(s statemachine.Screen) string {
	switch s {
	case statemachine.ScreenNewAgent:
		return "New Agent"
	case statemachine.ScreenNewRepository:
		return "New Repository"
	case statemachine.ScreenEditAgent:
		return "Edit Agent"
	case statemachine.ScreenEditRepository:
		return "Edit Repository"
	}
	return ""
}

func (m *Model) renderForm(th theme.Theme) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(rgbColor(th.Accent)).Render(formTitle(m.state.Screen)))
	b.WriteString("\n\n")

	for _, f := range m.state.FormFields() {
		label := fieldLabel(f.Name) + ":"
		value := f.Value
		if f.Focused {
			label = lipgloss.NewStyle().Foreground(rgbColor(th.BorderFocused)).Render(label)
			value = lipgloss.NewStyle().Background(rgbColor(th.InputField)).Render(value + "█")
		}
		fmt.Fprintf(&b, "%-18s %s\n", label, value)
	}

	b.WriteString("\nTab/Shift-Tab move · Enter submit · Esc cancel\n")
	return borderStyle(th, true).Width(m.width - 2).Height(m.height - 2).Render(b.String())
}

func (m *Model) renderSplit(th theme.Theme) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Split View") + "\n\n")

	for _, r := range m.state.Catalog.Repositories {
		line := r.Name
		b.WriteString(line + "\n")
		for _, a := range r.Agents {
			icon := presenter.StatusIcon(a.Status)
			line := fmt.Sprintf("  %s %s", icon, a.Name)
			b.WriteString(lipgloss.NewStyle().Foreground(rgbColor(statusColor(th, a.Status))).Render(line) + "\n")
		}
	}

	b.WriteString("\nEnter grab/ungrab · m main+focus · Esc back · / filter\n")
	return borderStyle(th, true).Width(m.width - 2).Height(m.height - 2).Render(b.String())
}

func (m *Model) renderHelp(th theme.Theme) string {
	lines := []string{
		"q            quit",
		"? h F1       help",
		"1 2 3        switch theme",
		"F12          toggle terminal focus",
		"arrows       navigate / switch pane",
		"r a t        focus repo list / agent list / terminal",
		"n N          new agent / new repository",
		"e Enter      edit",
		"d            delete",
		"k l          kill / relaunch",
		"s            split view",
		"/            search",
		"",
		"Esc or ? to close this screen",
	}
	return borderStyle(th, true).Width(m.width - 2).Height(m.height - 2).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderConfirmDelete(th theme.Theme) string {
	var msg, hint string
	switch m.state.Pending.Kind {
	case statemachine.DeleteRepository:
		msg = "Delete this repository and all its agents?"
	default:
		msg = "Delete this agent?"
		if m.state.Pending.DeleteWorkDir {
			msg += " (work dir will be removed)"
		} else {
			msg += " (work dir kept)"
		}
		hint = " · arrows toggle work-dir removal"
	}
	body := msg + "\n\nEnter confirm · Esc cancel" + hint
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		borderStyle(th, true).Padding(1, 2).Render(body))
}
