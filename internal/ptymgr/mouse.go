package ptymgr

import (
	"bytes"
	"fmt"
	"sync"
)

// MouseEvent is a host mouse action translated into the fields
// mouse_to_bytes needs (spec.md §4.3 mouse_to_bytes). Row/Col are 0-based
// cell coordinates within the attached viewer's grid.
type MouseEvent struct {
	Row, Col int
	Button   MouseButton
	Action   MouseAction
}

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseDrag
)

// mouseSet sequences: DECSET/DECRST for the xterm mouse-tracking modes a
// well-behaved child enables before it wants mouse input (1000 = normal
// tracking, 1002 = button-event tracking, 1003 = any-event tracking, 1006 =
// SGR extended coordinate encoding).
var mouseSetSeqs = [][]byte{
	[]byte("\x1b[?1000h"), []byte("\x1b[?1002h"), []byte("\x1b[?1003h"), []byte("\x1b[?1006h"),
}
var mouseResetSeqs = [][]byte{
	[]byte("\x1b[?1000l"), []byte("\x1b[?1002l"), []byte("\x1b[?1003l"), []byte("\x1b[?1006l"),
}

// mouseModeTracker scans raw PTY output for the standard mouse-tracking
// DECSET/DECRST escape sequences and records whether any tracking mode is
// currently enabled. spec.md §4.3: "Encoding is suppressed entirely unless
// the child has enabled at least one of the mouse-reporting terminal
// modes." vt10x exposes no query for this, so Jefe tracks it itself by
// observing the same bytes the terminal model consumes.
type mouseModeTracker struct {
	mu      sync.Mutex
	active  map[int]bool
	carry   []byte
}

func newMouseModeTracker() *mouseModeTracker {
	return &mouseModeTracker{active: make(map[int]bool)}
}

// observe scans chunk for mouse-mode DECSET/DECRST sequences, carrying over
// a short tail across calls in case a sequence is split across two reads.
func (t *mouseModeTracker) observe(chunk []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	buf := chunk
	if len(t.carry) > 0 {
		buf = append(append([]byte{}, t.carry...), chunk...)
	}

	for i, seq := range mouseSetSeqs {
		if bytes.Contains(buf, seq) {
			t.active[modeFor(i)] = true
		}
	}
	for i, seq := range mouseResetSeqs {
		if bytes.Contains(buf, seq) {
			t.active[modeFor(i)] = false
		}
	}

	if n := len(buf); n > 16 {
		t.carry = append([]byte{}, buf[n-16:]...)
	} else {
		t.carry = append([]byte{}, buf...)
	}
}

func modeFor(i int) int {
	return []int{1000, 1002, 1003, 1006}[i]
}

// enabled reports whether any mouse-tracking mode is currently on.
func (t *mouseModeTracker) enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, on := range t.active {
		if on {
			return true
		}
	}
	return false
}

// MouseToBytes encodes ev in SGR extended mouse format (CSI < Cb ; Cx ; Cy
// M/m), the format gated on mode 1006 being the only one Jefe emits per
// spec.md §4.3. Middle and right buttons are dropped ("left-button only");
// wheel events use the conventional 64/65 button codes.
func MouseToBytes(ev MouseEvent) ([]byte, bool) {
	var cb int
	switch ev.Button {
	case MouseLeft:
		cb = 0
	case MouseWheelUp:
		cb = 64
	case MouseWheelDown:
		cb = 65
	default:
		return nil, false
	}

	final := byte('M')
	if ev.Action == MouseRelease {
		final = 'm'
	}
	if ev.Action == MouseDrag {
		cb |= 32
	}

	return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", cb, ev.Col+1, ev.Row+1, final)), true
}
