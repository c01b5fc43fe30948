package menukit

// Key identifies a decoded keyboard key. Printable input arrives as KeyRune
// events with the rune attached; KeySpace also carries its rune so line
// editors can insert it without special-casing.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyEsc
	KeySpace
	KeyTab
	KeyShiftTab
	KeyBackspace
	KeyAltBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlLeft
	KeyCtrlRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyCtrlA
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlK
	KeyCtrlL
	KeyCtrlU
	KeyCtrlW
)

// KeyEvent is a single decoded keyboard event.
type KeyEvent struct {
	Key  Key
	Rune rune
}

var keyNames = map[Key]string{
	KeyNone:         "none",
	KeyRune:         "rune",
	KeyEnter:        "enter",
	KeyEsc:          "esc",
	KeySpace:        "space",
	KeyTab:          "tab",
	KeyShiftTab:     "shift+tab",
	KeyBackspace:    "backspace",
	KeyAltBackspace: "alt+backspace",
	KeyDelete:       "delete",
	KeyUp:           "up",
	KeyDown:         "down",
	KeyLeft:         "left",
	KeyRight:        "right",
	KeyCtrlLeft:     "ctrl+left",
	KeyCtrlRight:    "ctrl+right",
	KeyHome:         "home",
	KeyEnd:          "end",
	KeyPageUp:       "pgup",
	KeyPageDown:     "pgdn",
	KeyCtrlA:        "ctrl+a",
	KeyCtrlC:        "ctrl+c",
	KeyCtrlD:        "ctrl+d",
	KeyCtrlE:        "ctrl+e",
	KeyCtrlK:        "ctrl+k",
	KeyCtrlL:        "ctrl+l",
	KeyCtrlU:        "ctrl+u",
	KeyCtrlW:        "ctrl+w",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "unknown"
}

// csiSequences maps the body of a CSI sequence (everything after the ESC,
// including the leading '[') to its key. Both the xterm letter finals and
// the vt220 tilde numbers are listed since terminals disagree.
var csiSequences = map[string]Key{
	"[A":    KeyUp,
	"[B":    KeyDown,
	"[C":    KeyRight,
	"[D":    KeyLeft,
	"[H":    KeyHome,
	"[F":    KeyEnd,
	"[Z":    KeyShiftTab,
	"[1~":   KeyHome,
	"[3~":   KeyDelete,
	"[4~":   KeyEnd,
	"[5~":   KeyPageUp,
	"[6~":   KeyPageDown,
	"[7~":   KeyHome,
	"[8~":   KeyEnd,
	"[1;5C": KeyCtrlRight,
	"[1;5D": KeyCtrlLeft,
	"[1;3C": KeyCtrlRight, // alt+right, same editing gesture
	"[1;3D": KeyCtrlLeft,  // alt+left
}

// ss3Sequences maps ESC O finals sent in application-cursor mode.
var ss3Sequences = map[string]Key{
	"OA": KeyUp,
	"OB": KeyDown,
	"OC": KeyRight,
	"OD": KeyLeft,
	"OH": KeyHome,
	"OF": KeyEnd,
}

// controlKeys maps bare C0 bytes to keys. CR, LF, TAB, DEL and space are
// handled inline by the decoder.
var controlKeys = map[byte]Key{
	0x01: KeyCtrlA,
	0x03: KeyCtrlC,
	0x04: KeyCtrlD,
	0x05: KeyCtrlE,
	0x0b: KeyCtrlK,
	0x0c: KeyCtrlL,
	0x15: KeyCtrlU,
	0x17: KeyCtrlW,
}
