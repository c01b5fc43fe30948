package menukit

import (
	"sync"
	"time"
	"unicode/utf8"
)

// escTimeout is how long a lone ESC may sit in the decode buffer before it
// is delivered as a bare Esc key rather than the start of a sequence.
const escTimeout = 50 * time.Millisecond

// eventBuffer is the capacity of the decoded-event channel. Input beyond
// this (a runaway paste with nobody reading) is dropped, never blocked on.
const eventBuffer = 256

// maxCSILen bounds how many bytes a CSI sequence may span before the
// decoder gives up on it as malformed.
const maxCSILen = 32

// decoder turns a raw terminal byte stream into KeyEvents. It keeps an
// internal buffer so escape sequences split across read chunks decode
// correctly. The decoder itself never waits; lone-ESC disambiguation is the
// reader's job.
type decoder struct {
	pending []byte
}

// Feed appends data to the pending buffer and decodes as many complete
// events as possible. A trailing incomplete sequence stays buffered for the
// next chunk.
func (d *decoder) Feed(data []byte) []KeyEvent {
	d.pending = append(d.pending, data...)
	var evs []KeyEvent
	for len(d.pending) > 0 {
		ev, n := d.next()
		if n == 0 {
			break
		}
		d.pending = d.pending[n:]
		if ev.Key != KeyNone {
			evs = append(evs, ev)
		}
	}
	if len(d.pending) == 0 {
		d.pending = nil
	}
	return evs
}

// next decodes one event from the front of the buffer. A consumed count of
// zero means the buffer holds an incomplete sequence.
func (d *decoder) next() (KeyEvent, int) {
	b := d.pending[0]
	switch {
	case b == 0x1b:
		return d.escape()
	case b == '\r' || b == '\n':
		return KeyEvent{Key: KeyEnter}, 1
	case b == '\t':
		return KeyEvent{Key: KeyTab}, 1
	case b == 0x7f:
		return KeyEvent{Key: KeyBackspace}, 1
	case b == ' ':
		return KeyEvent{Key: KeySpace, Rune: ' '}, 1
	case b < 0x20:
		if k, ok := controlKeys[b]; ok {
			return KeyEvent{Key: k}, 1
		}
		return KeyEvent{}, 1
	default:
		r, size := utf8.DecodeRune(d.pending)
		if r == utf8.RuneError {
			if !utf8.FullRune(d.pending) {
				return KeyEvent{}, 0
			}
			return KeyEvent{}, size
		}
		return KeyEvent{Key: KeyRune, Rune: r}, size
	}
}

func (d *decoder) escape() (KeyEvent, int) {
	if len(d.pending) == 1 {
		// Could be a bare Esc or the start of a sequence; the reader's
		// timer decides.
		return KeyEvent{}, 0
	}
	switch d.pending[1] {
	case '[':
		return d.csi()
	case 'O':
		if len(d.pending) < 3 {
			return KeyEvent{}, 0
		}
		if k, ok := ss3Sequences[string(d.pending[1:3])]; ok {
			return KeyEvent{Key: k}, 3
		}
		return KeyEvent{}, 3
	case 0x1b:
		return KeyEvent{Key: KeyEsc}, 2
	case 0x7f:
		return KeyEvent{Key: KeyAltBackspace}, 2
	case 'b':
		return KeyEvent{Key: KeyCtrlLeft}, 2 // emacs alt+b, same gesture
	case 'f':
		return KeyEvent{Key: KeyCtrlRight}, 2 // emacs alt+f
	default:
		// Unrecognized alt pair: report the Esc, reprocess the second byte.
		return KeyEvent{Key: KeyEsc}, 1
	}
}

// csi scans ESC '[' params (0x30-0x3F) intermediates (0x20-0x2F) final
// (0x40-0x7E) and resolves the sequence against the table. Recognized shape
// with an unknown key decodes to nothing.
func (d *decoder) csi() (KeyEvent, int) {
	for i := 2; i < len(d.pending); i++ {
		b := d.pending[i]
		if b >= 0x40 && b <= 0x7e {
			if k, ok := csiSequences[string(d.pending[1:i+1])]; ok {
				return KeyEvent{Key: k}, i + 1
			}
			return KeyEvent{}, i + 1
		}
		if i > maxCSILen {
			return KeyEvent{}, 2
		}
	}
	return KeyEvent{}, 0
}

// pendingEsc reports whether the buffer holds exactly one unresolved ESC.
func (d *decoder) pendingEsc() bool {
	return len(d.pending) == 1 && d.pending[0] == 0x1b
}

// flushEsc resolves a buffered lone ESC as a bare Esc key.
func (d *decoder) flushEsc() (KeyEvent, bool) {
	if !d.pendingEsc() {
		return KeyEvent{}, false
	}
	d.pending = nil
	return KeyEvent{Key: KeyEsc}, true
}

// reader adapts Terminal input callbacks into a buffered KeyEvent channel
// and owns the lone-ESC disambiguation timer.
type reader struct {
	mu     sync.Mutex
	dec    decoder
	timer  *time.Timer
	events chan KeyEvent
}

func newReader() *reader {
	return &reader{events: make(chan KeyEvent, eventBuffer)}
}

// HandleInput is the Terminal onInput callback; it runs on the terminal's
// read goroutine.
func (r *reader) HandleInput(data []byte) {
	r.mu.Lock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	evs := r.dec.Feed(data)
	if r.dec.pendingEsc() {
		r.timer = time.AfterFunc(escTimeout, r.timedFlush)
	}
	r.mu.Unlock()
	for _, ev := range evs {
		r.deliver(ev)
	}
}

func (r *reader) timedFlush() {
	r.mu.Lock()
	ev, ok := r.dec.flushEsc()
	r.timer = nil
	r.mu.Unlock()
	if ok {
		r.deliver(ev)
	}
}

// deliver drops the event when the buffer is full rather than blocking the
// terminal goroutine.
func (r *reader) deliver(ev KeyEvent) {
	select {
	case r.events <- ev:
	default:
	}
}
