// Package presenter holds pure, allocation-light formatting helpers shared
// by the UI layer and its tests. Nothing here performs I/O, touches a
// global, or can throw; the point is that UI components and test assertions
// can agree on display strings without coupling to a widget tree.
package presenter

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/jefe-cli/jefe/internal/domain"
)

// StatusIcon returns the glyph rendered next to an agent of the given status.
func StatusIcon(s domain.AgentStatus) string {
	switch s {
	case domain.StatusRunning:
		return "●"
	case domain.StatusCompleted:
		return "✓"
	case domain.StatusErrored:
		return "✗"
	case domain.StatusWaiting:
		return "◌"
	case domain.StatusPaused:
		return "❚❚"
	case domain.StatusQueued:
		return "…"
	case domain.StatusDead:
		return "○"
	default:
		return "?"
	}
}

// StatusLabel returns a short human-readable label for an agent status.
func StatusLabel(s domain.AgentStatus) string {
	switch s {
	case domain.StatusRunning:
		return "Running"
	case domain.StatusCompleted:
		return "Completed"
	case domain.StatusErrored:
		return "Errored"
	case domain.StatusWaiting:
		return "Waiting"
	case domain.StatusPaused:
		return "Paused"
	case domain.StatusQueued:
		return "Queued"
	case domain.StatusDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// TodoIcon returns the glyph rendered next to a todo item of the given
// status.
func TodoIcon(s domain.TodoStatus) string {
	switch s {
	case domain.TodoPending:
		return "☐"
	case domain.TodoInProgress:
		return "◐"
	case domain.TodoCompleted:
		return "☑"
	default:
		return "?"
	}
}

// FormatElapsed renders a non-negative second count as HH:MM:SS with
// zero-padding. There is no day rollover: an elapsed time past 99 hours
// still renders with a two-digit (or wider) hour field rather than wrapping.
func FormatElapsed(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Truncate shortens s to at most max display columns, appending an ellipsis
// when truncation occurs. It never splits a grapheme cluster: go-runewidth's
// Truncate already measures display width rather than byte or rune count,
// which is what keeps wide (e.g. CJK) characters from being cut in half.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return runewidth.Truncate(s, max-1, "") + "…"
}

// TruncateMiddle is like Truncate but keeps a prefix and suffix, eliding the
// middle — useful for long absolute paths where the trailing component
// matters most (e.g. a work_dir field in a form).
func TruncateMiddle(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	half := (max - 1) / 2
	head := runewidth.Truncate(s, half, "")
	tailWidth := max - 1 - runewidth.StringWidth(head)
	tail := []rune(s)
	for runewidth.StringWidth(string(tail)) > tailWidth {
		tail = tail[1:]
	}
	return head + "…" + string(tail)
}
