package ptymgr

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/hinshun/vt10x"
)

// teardownTimeout bounds how long EnsureAttached waits for the outgoing
// reader goroutine to observe EOF and exit before abandoning it (spec.md §5:
// "joined ... with a bounded wait (≤500 ms)... If the wait expires, the
// handle is dropped without joining").
const teardownTimeout = 500 * time.Millisecond

// readChunkSize is the PTY read buffer size (spec.md §4.3 attach algorithm:
// "reads raw bytes ... in chunks (~4 KiB)").
const readChunkSize = 4096

// attachedViewer is the single live viewer a Manager may host at a time:
// the spawned `tmux attach-session` child, its PTY master, the shared
// terminal model the reader goroutine advances, and the mouse-mode tracker
// gating mouse_to_bytes. vt10x.Terminal already combines the "terminal
// model" and "ANSI parser" spec.md §4.3 describes as separate fields behind
// one mutex-guarded type, which this struct simply wraps.
type attachedViewer struct {
	slot   int
	cmd    *exec.Cmd
	cancel context.CancelFunc
	ptmx   *os.File
	term   vt10x.Terminal
	mouse  *mouseModeTracker
	rows   int
	cols   int

	selMu     sync.RWMutex
	selection *Selection

	done      chan struct{}
	closeOnce sync.Once
}

// attach spawns `tmux attach-session -t name` under a PTY sized rows x cols,
// starts the reader goroutine, and returns the new viewer. It never blocks
// past process-spawn time; the reader loop runs independently.
func attach(slot int, name string, rows, cols int) (*attachedViewer, error) {
	if rows <= 0 {
		rows = 24
	}
	if cols <= 0 {
		cols = 80
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, "tmux", "attach-session", "-t", name)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("ptymgr: spawn viewer for %s: %w", name, err)
	}

	mouse := newMouseModeTracker()
	term := vt10x.New(vt10x.WithWriter(ptmx), vt10x.WithSize(cols, rows))

	v := &attachedViewer{
		slot:   slot,
		cmd:    cmd,
		cancel: cancel,
		ptmx:   ptmx,
		term:   term,
		mouse:  mouse,
		rows:   rows,
		cols:   cols,
		done:   make(chan struct{}),
	}

	go v.readLoop()
	return v, nil
}

// readLoop is the single OS reader thread spec.md §5 permits: it reads raw
// bytes from the PTY master and advances the terminal model/mouse-mode
// tracker until EOF or an unrecoverable read error.
func (v *attachedViewer) readLoop() {
	defer close(v.done)
	buf := make([]byte, readChunkSize)
	for {
		n, err := v.ptmx.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			v.mouse.observe(chunk)
			v.term.Lock()
			_, _ = v.term.Write(chunk)
			v.term.Unlock()
		}
		if err != nil {
			if err != io.EOF {
				ptyLog.Debug("viewer_read_error", "slot", v.slot, "err", err)
			}
			return
		}
	}
}

func (v *attachedViewer) write(p []byte) error {
	_, err := v.ptmx.Write(p)
	return err
}

func (v *attachedViewer) resize(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("ptymgr: invalid resize %dx%d", rows, cols)
	}
	v.rows, v.cols = rows, cols
	if err := pty.Setsize(v.ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)}); err != nil {
		return err
	}
	v.term.Lock()
	v.term.Resize(cols, rows)
	v.term.Unlock()
	return nil
}

// teardown kills the child, closes the PTY master (the reader observes EOF
// on its next read), and joins the reader goroutine with a bounded wait.
// On timeout the goroutine is abandoned per spec.md §5's documented leak.
func (v *attachedViewer) teardown() {
	v.closeOnce.Do(func() {
		v.cancel()
		_ = v.cmd.Process.Kill()
		_ = v.ptmx.Close()

		select {
		case <-v.done:
		case <-time.After(teardownTimeout):
			ptyLog.Warn("viewer_teardown_timeout", "slot", v.slot)
		}
	})
}
