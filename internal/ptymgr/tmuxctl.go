package ptymgr

import (
	"fmt"
	"os"
	"os/exec"
)

// SessionPrefix names every session this process creates; generalizes the
// teacher's agentdeck_ prefix (internal/tmux/tmux.go's SessionPrefix) to a
// fixed per-slot name instead of a name+random-suffix pair, since spec.md §6
// requires deterministic "jefe-{slot}" naming rather than collision-avoidance
// suffixes.
const SessionPrefix = "jefe-"

// SessionName returns the external multiplexer session name for slot.
func SessionName(slot int) string {
	return fmt.Sprintf("%s%d", SessionPrefix, slot)
}

func tmuxHasSession(name string) bool {
	cmd := exec.Command("tmux", "has-session", "-t", name)
	return cmd.Run() == nil
}

func tmuxNewSession(name, workDir, binary string, args []string) error {
	if workDir == "" {
		workDir = os.Getenv("HOME")
	}
	cmdArgs := append([]string{"new-session", "-d", "-s", name, "-c", workDir, "--", binary}, args...)
	cmd := exec.Command("tmux", cmdArgs...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ptymgr: tmux new-session %s: %w (%s)", name, err, string(out))
	}
	return nil
}

func tmuxKillSession(name string) error {
	cmd := exec.Command("tmux", "kill-session", "-t", name)
	if err := cmd.Run(); err != nil {
		if !tmuxHasSession(name) {
			return nil // already gone: idempotent per spec.md §4.3
		}
		return fmt.Errorf("ptymgr: tmux kill-session %s: %w", name, err)
	}
	return nil
}

// tmuxKillServer resets the whole tmux server; used for the single
// spawn-failure retry spec.md §4.3/§5 describes ("a single spawn-failure
// retry is attempted against a clean multiplexer server").
func tmuxKillServer() {
	_ = exec.Command("tmux", "kill-server").Run()
}
