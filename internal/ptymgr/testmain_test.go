package ptymgr

import (
	"os"
	"os/exec"
	"strings"
	"testing"
)

// skipIfNoTmux skips the test if the tmux binary is missing or no server is
// reachable, mirroring the teacher's skipIfNoTmuxServer
// (internal/session/testmain_test.go) so this package's lifecycle tests
// degrade gracefully in CI images without tmux.
func skipIfNoTmux(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tmux"); err != nil {
		t.Skip("tmux not available")
	}
	if err := exec.Command("tmux", "list-sessions").Run(); err != nil {
		// tmux exits non-zero both when no server is running and when a
		// server is running with zero sessions; start one to distinguish.
		if startErr := exec.Command("tmux", "start-server").Run(); startErr != nil {
			t.Skip("tmux server unavailable")
		}
	}
}

func cleanupTestSessions(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		_ = exec.Command("tmux", "kill-session", "-t", name).Run()
	}
}

func TestMain(m *testing.M) {
	code := m.Run()
	out, err := exec.Command("tmux", "list-sessions", "-F", "#{session_name}").Output()
	if err == nil {
		for _, sess := range strings.Split(strings.TrimSpace(string(out)), "\n") {
			if strings.HasPrefix(sess, SessionPrefix) {
				_ = exec.Command("tmux", "kill-session", "-t", sess).Run()
			}
		}
	}
	os.Exit(code)
}
