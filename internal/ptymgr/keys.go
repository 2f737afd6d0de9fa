package ptymgr

import "fmt"

// KeyEvent is a host keystroke translated from the bubbletea key message
// into the fields key_to_bytes needs (spec.md §4.3 key_to_bytes).
type KeyEvent struct {
	// Runes holds the decoded characters for a printable key press.
	Runes []rune
	// Special names a non-printable key ("up", "down", "left", "right",
	// "home", "end", "pgup", "pgdown", "insert", "delete", "enter", "tab",
	// "backspace", "f1".."f12", or "" when Runes carries a printable key).
	Special string
	Ctrl    bool
	Alt     bool
}

// csiArrow maps the four arrow keys to their CSI final byte.
var csiArrow = map[string]byte{
	"up": 'A', "down": 'B', "right": 'C', "left": 'D',
}

// csiNamed maps named navigation keys to full CSI sequences (vt220-style,
// the sequences a default xterm-compatible terminal emits).
var csiNamed = map[string]string{
	"home":    "\x1b[H",
	"end":     "\x1b[F",
	"pgup":    "\x1b[5~",
	"pgdown":  "\x1b[6~",
	"insert":  "\x1b[2~",
	"delete":  "\x1b[3~",
}

// ss3Function maps F1-F4 to their SS3 sequences; F5 and above use CSI ~
// sequences instead (xterm convention).
var ss3Function = map[string]byte{
	"f1": 'P', "f2": 'Q', "f3": 'R', "f4": 'S',
}

var csiFunction = map[string]string{
	"f5": "\x1b[15~", "f6": "\x1b[17~", "f7": "\x1b[18~", "f8": "\x1b[19~",
	"f9": "\x1b[20~", "f10": "\x1b[21~", "f11": "\x1b[23~",
}

// ctrlLetterByte encodes Ctrl+letter as its ASCII control code (A=1..Z=26),
// the standard terminal convention.
func ctrlLetterByte(r rune) (byte, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return byte(r-'a') + 1, true
	case r >= 'A' && r <= 'Z':
		return byte(r-'A') + 1, true
	}
	return 0, false
}

// KeyToBytes encodes a host key event into the byte sequence written to an
// attached viewer's PTY master, per spec.md §4.3's key-encoding table. F12
// is never encoded here; it is reserved upstream as the focus-toggle key
// (spec.md §4.4) and callers must intercept it before reaching this
// function.
func KeyToBytes(k KeyEvent) ([]byte, bool) {
	if k.Special == "f12" {
		return nil, false
	}

	switch k.Special {
	case "enter":
		return escPrefix(k.Alt, []byte("\r")), true
	case "tab":
		return escPrefix(k.Alt, []byte("\t")), true
	case "backspace":
		return escPrefix(k.Alt, []byte{0x7f}), true
	case "up", "down", "left", "right":
		final := csiArrow[k.Special]
		return []byte(fmt.Sprintf("\x1b[%c", final)), true
	case "home", "end", "pgup", "pgdown", "insert", "delete":
		return []byte(csiNamed[k.Special]), true
	case "f1", "f2", "f3", "f4":
		return []byte(fmt.Sprintf("\x1bO%c", ss3Function[k.Special])), true
	case "f5", "f6", "f7", "f8", "f9", "f10", "f11":
		return []byte(csiFunction[k.Special]), true
	}

	if len(k.Runes) == 0 {
		return nil, false
	}

	if k.Ctrl && len(k.Runes) == 1 {
		if b, ok := ctrlLetterByte(k.Runes[0]); ok {
			return escPrefix(k.Alt, []byte{b}), true
		}
	}

	return escPrefix(k.Alt, []byte(string(k.Runes))), true
}

// escPrefix prepends ESC when the Alt modifier is set, the standard
// terminal convention for "meta" keys.
func escPrefix(alt bool, b []byte) []byte {
	if !alt {
		return b
	}
	out := make([]byte, 0, len(b)+1)
	out = append(out, 0x1b)
	return append(out, b...)
}
