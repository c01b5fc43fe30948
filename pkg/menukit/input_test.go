package menukit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(chunks ...string) []KeyEvent {
	var d decoder
	var evs []KeyEvent
	for _, c := range chunks {
		evs = append(evs, d.Feed([]byte(c))...)
	}
	return evs
}

func keysOf(evs []KeyEvent) []Key {
	ks := make([]Key, len(evs))
	for i, ev := range evs {
		ks[i] = ev.Key
	}
	return ks
}

func TestDecodePlainRunes(t *testing.T) {
	evs := decode("abc")
	require.Len(t, evs, 3)
	assert.Equal(t, KeyEvent{Key: KeyRune, Rune: 'a'}, evs[0])
	assert.Equal(t, KeyEvent{Key: KeyRune, Rune: 'b'}, evs[1])
	assert.Equal(t, KeyEvent{Key: KeyRune, Rune: 'c'}, evs[2])
}

func TestDecodeEditingBytes(t *testing.T) {
	evs := decode("\r\n\t \x7f")
	assert.Equal(t, []Key{KeyEnter, KeyEnter, KeyTab, KeySpace, KeyBackspace}, keysOf(evs))
	// Space carries its rune for line editors.
	assert.Equal(t, ' ', evs[3].Rune)
}

func TestDecodeControlKeys(t *testing.T) {
	evs := decode("\x01\x03\x05\x0b\x15\x17")
	assert.Equal(t, []Key{KeyCtrlA, KeyCtrlC, KeyCtrlE, KeyCtrlK, KeyCtrlU, KeyCtrlW}, keysOf(evs))

	// Unmapped control bytes are swallowed, not surfaced as runes.
	evs = decode("\x02x")
	assert.Equal(t, []Key{KeyRune}, keysOf(evs))
	assert.Equal(t, 'x', evs[0].Rune)
}

func TestDecodeArrowAndNavKeys(t *testing.T) {
	evs := decode("\x1b[A\x1b[B\x1b[C\x1b[D")
	assert.Equal(t, []Key{KeyUp, KeyDown, KeyRight, KeyLeft}, keysOf(evs))

	evs = decode("\x1b[H\x1b[F\x1b[1~\x1b[4~\x1b[5~\x1b[6~\x1b[3~\x1b[Z")
	assert.Equal(t, []Key{KeyHome, KeyEnd, KeyHome, KeyEnd, KeyPageUp, KeyPageDown, KeyDelete, KeyShiftTab}, keysOf(evs))
}

func TestDecodeModifiedArrows(t *testing.T) {
	evs := decode("\x1b[1;5C\x1b[1;5D\x1b[1;3C\x1b[1;3D")
	assert.Equal(t, []Key{KeyCtrlRight, KeyCtrlLeft, KeyCtrlRight, KeyCtrlLeft}, keysOf(evs))
}

func TestDecodeSS3Keys(t *testing.T) {
	evs := decode("\x1bOA\x1bOB\x1bOH\x1bOF")
	assert.Equal(t, []Key{KeyUp, KeyDown, KeyHome, KeyEnd}, keysOf(evs))
}

func TestDecodeAltPairs(t *testing.T) {
	assert.Equal(t, []Key{KeyAltBackspace}, keysOf(decode("\x1b\x7f")))
	assert.Equal(t, []Key{KeyCtrlLeft}, keysOf(decode("\x1bb")))
	assert.Equal(t, []Key{KeyCtrlRight}, keysOf(decode("\x1bf")))
	assert.Equal(t, []Key{KeyEsc}, keysOf(decode("\x1b\x1b")))

	// Unknown alt pair: the Esc surfaces and the second byte is
	// reprocessed on its own.
	evs := decode("\x1bq")
	assert.Equal(t, []Key{KeyEsc, KeyRune}, keysOf(evs))
	assert.Equal(t, 'q', evs[1].Rune)
}

func TestDecodeSequencesSplitAcrossReads(t *testing.T) {
	// CSI split at every point still decodes once complete.
	assert.Equal(t, []Key{KeyUp}, keysOf(decode("\x1b", "[", "A")))
	assert.Equal(t, []Key{KeyCtrlRight}, keysOf(decode("\x1b[1;5", "C")))
	assert.Equal(t, []Key{KeyEnd}, keysOf(decode("\x1bO", "F")))

	// Multi-byte runes likewise.
	b := []byte("日")
	var d decoder
	assert.Empty(t, d.Feed(b[:1]))
	evs := d.Feed(b[1:])
	require.Len(t, evs, 1)
	assert.Equal(t, KeyEvent{Key: KeyRune, Rune: '日'}, evs[0])
}

func TestDecodeUnknownCSIDropped(t *testing.T) {
	// Recognized shape, unknown meaning: consumed silently.
	evs := decode("\x1b[9Xz")
	assert.Equal(t, []Key{KeyRune}, keysOf(evs))
	assert.Equal(t, 'z', evs[0].Rune)

	// Kitty-style CSI u reports fall through the same path.
	assert.Empty(t, decode("\x1b[27u"))
}

func TestDecodeInterleavedBurst(t *testing.T) {
	evs := decode("ab\x1b[Acd")
	assert.Equal(t, []Key{KeyRune, KeyRune, KeyUp, KeyRune, KeyRune}, keysOf(evs))
}

func TestDecodeLoneEscHeld(t *testing.T) {
	var d decoder
	assert.Empty(t, d.Feed([]byte{0x1b}))
	assert.True(t, d.pendingEsc())

	ev, ok := d.flushEsc()
	require.True(t, ok)
	assert.Equal(t, KeyEsc, ev.Key)
	assert.False(t, d.pendingEsc())

	_, ok = d.flushEsc()
	assert.False(t, ok)
}

func TestReaderDeliversDecodedEvents(t *testing.T) {
	r := newReader()
	r.HandleInput([]byte("x\x1b[B"))

	assert.Equal(t, KeyEvent{Key: KeyRune, Rune: 'x'}, <-r.events)
	assert.Equal(t, KeyEvent{Key: KeyDown}, <-r.events)
	select {
	case ev := <-r.events:
		t.Fatalf("unexpected event %v", ev)
	default:
	}
}

func TestReaderFlushesLoneEscAfterTimeout(t *testing.T) {
	r := newReader()
	r.HandleInput([]byte{0x1b})

	select {
	case ev := <-r.events:
		t.Fatalf("esc delivered too early: %v", ev)
	case <-time.After(10 * time.Millisecond):
	}

	select {
	case ev := <-r.events:
		assert.Equal(t, KeyEsc, ev.Key)
	case <-time.After(time.Second):
		t.Fatal("lone esc never flushed")
	}
}

func TestReaderCompletionCancelsEscTimer(t *testing.T) {
	r := newReader()
	r.HandleInput([]byte{0x1b})
	r.HandleInput([]byte("[A"))

	assert.Equal(t, KeyEvent{Key: KeyUp}, <-r.events)

	// No stray Esc after the timeout window.
	select {
	case ev := <-r.events:
		t.Fatalf("unexpected event %v", ev)
	case <-time.After(2 * escTimeout):
	}
}

func TestReaderDropsWhenBufferFull(t *testing.T) {
	r := newReader()
	for i := 0; i < eventBuffer+50; i++ {
		r.HandleInput([]byte("a"))
	}

	n := 0
	for {
		select {
		case <-r.events:
			n++
		default:
			assert.Equal(t, eventBuffer, n)
			return
		}
	}
}
