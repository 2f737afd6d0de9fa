// Command jefe is a terminal-native orchestrator for many long-running
// agent coding sessions spread across many repositories.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jefe-cli/jefe/internal/dispatch"
	"github.com/jefe-cli/jefe/internal/logging"
	"github.com/jefe-cli/jefe/internal/persistence"
	"github.com/jefe-cli/jefe/internal/ptymgr"
	"github.com/jefe-cli/jefe/internal/theme"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "--version", "-v":
			fmt.Printf("jefe v%s\n", Version)
			return
		case "help", "--help", "-h":
			printHelp()
			return
		}
	}

	if _, err := exec.LookPath("tmux"); err != nil {
		fmt.Println("Error: tmux not found in PATH")
		fmt.Println("\nJefe requires tmux. Install with:")
		fmt.Println("  brew install tmux")
		os.Exit(1)
	}

	settingsResult := persistence.LoadOrDefaultSettings()
	if settingsResult.Notice != "" {
		fmt.Fprintln(os.Stderr, "jefe:", settingsResult.Notice)
	}
	catalogResult := persistence.LoadOrDefaultCatalog()
	if catalogResult.Notice != "" {
		fmt.Fprintln(os.Stderr, "jefe:", catalogResult.Notice)
	}

	debugMode := os.Getenv("JEFE_DEBUG") != ""
	if baseDir, err := configDir(); err == nil {
		logCfg := logging.Config{
			Debug:                 debugMode,
			LogDir:                baseDir,
			Level:                 "debug",
			Format:                "json",
			MaxSizeMB:             10,
			MaxBackups:            5,
			MaxAgeDays:            10,
			Compress:              true,
			RingBufferSize:        10 * 1024 * 1024,
			AggregateIntervalSecs: 30,
		}
		logging.Init(logCfg)
		defer logging.Shutdown()

		usr1Chan := make(chan os.Signal, 1)
		signal.Notify(usr1Chan, syscall.SIGUSR1)
		go func() {
			for range usr1Chan {
				dumpPath := filepath.Join(baseDir, fmt.Sprintf("crash-dump-%d.jsonl", timeNowUnix()))
				if err := logging.DumpRingBuffer(dumpPath); err != nil {
					logging.ForComponent(logging.CompDispatch).Error("crash_dump_failed", "err", err)
				}
			}
		}()
	}

	mgr := ptymgr.NewManager("")
	dispatch.RestoreManagerSessions(mgr, catalogResult.Catalog)
	persistence.ReconcileLiveness(catalogResult.Catalog, ptymgr.SessionName, isAliveByName(mgr))

	registry := theme.NewRegistry()
	var watcher *theme.Watcher
	if themeDir := os.Getenv("JEFE_THEME_DIR"); themeDir != "" {
		watcher = theme.NewWatcher(themeDir, registry)
	}
	if watcher != nil {
		defer watcher.Close()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		mgr.Close()
		logging.Shutdown()
		os.Exit(0)
	}()

	initColorProfile()

	model := dispatch.New(catalogResult.Catalog, settingsResult.Settings, registry, mgr)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	mgr.Close()
}

// isAliveByName adapts the slot-keyed Manager.IsAlive to the name-keyed
// shape persistence.ReconcileLiveness expects, parsing the slot back out of
// a session name built by ptymgr.SessionName.
func isAliveByName(mgr *ptymgr.Manager) func(name string) bool {
	return func(name string) bool {
		raw := strings.TrimPrefix(name, ptymgr.SessionPrefix)
		slot, err := strconv.Atoi(raw)
		if err != nil {
			return false
		}
		return mgr.IsAlive(slot)
	}
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "jefe")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func timeNowUnix() int64 {
	return time.Now().Unix()
}

func printHelp() {
	fmt.Println("jefe — terminal orchestrator for many coding agents")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  jefe                launch the dashboard")
	fmt.Println("  jefe version        print the version")
	fmt.Println("  jefe help           print this message")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  JEFE_DEBUG          enable debug logging")
	fmt.Println("  JEFE_COLOR          force a color profile (truecolor|256|16|none)")
	fmt.Println("  JEFE_THEME_DIR      directory of additional theme files to watch")
	fmt.Println("  JEFE_SETTINGS_PATH  override the settings file path")
	fmt.Println("  JEFE_CATALOG_PATH   override the catalog file path")
}
