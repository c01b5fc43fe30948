package menukit

import (
	"context"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextInputTyping(t *testing.T) {
	in := NewTextInput("name:", PlainTheme())
	_, err := runWidget(t, in, "gopher\r")
	require.NoError(t, err)
	assert.Equal(t, "gopher", in.Value())
	assert.True(t, in.Done())
}

func TestTextInputEditing(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"backspace", "abcd\x7f\r", "abc"},
		{"insert in middle", "helo\x1b[D\x1b[Dl\r", "hello"},
		{"ctrl-a and ctrl-e", "bc\x01a\x05d\r", "abcd"},
		{"home and end keys", "bc\x1b[Ha\x1b[Fd\r", "abcd"},
		{"kill to start", "abcd\x15xy\r", "xy"},
		{"kill to end", "abcd\x01\x0bz\r", "z"},
		{"word kill", "foo bar\x17\r", "foo "},
		{"alt backspace kills word", "foo bar\x1b\x7f\r", "foo "},
		{"delete forward", "abc\x01\x1b[3~\r", "bc"},
		{"ctrl-d deletes forward", "abc\x01\x04\r", "bc"},
		{"ctrl-left then insert", "foo bar\x1b[1;5DX\r", "foo Xbar"},
		{"ctrl-right then insert", "foo bar\x01\x1b[1;5CX\r", "foo Xbar"},
		{"arrows stop at edges", "\x1b[D\x1b[Cab\r", "ab"},
		{"spaces insert", "a b\r", "a b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := NewTextInput(">", PlainTheme())
			_, err := runWidget(t, in, tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, in.Value())
		})
	}
}

func TestTextInputBack(t *testing.T) {
	in := NewTextInput(">", PlainTheme())
	_, err := runWidget(t, in, "half\x1b\x1b")
	require.ErrorIs(t, err, ErrBack)
	assert.False(t, in.Done())
	assert.Equal(t, "half", in.Value())
}

func TestTextInputValidator(t *testing.T) {
	in := NewTextInput("id:", PlainTheme())
	in.SetValidator(func(s string) error {
		if len(s) < 3 {
			return pkgerrors.New("need at least 3 characters")
		}
		return nil
	})

	term, err := runWidget(t, in, "ab\rc\r")
	require.NoError(t, err)
	assert.Equal(t, "abc", in.Value())
	assert.True(t, in.Done())
	// The rejection was shown under the input before the fix-up.
	assert.Contains(t, term.written.String(), "need at least 3 characters")
}

func TestTextInputMask(t *testing.T) {
	in := NewTextInput("pw:", PlainTheme())
	in.SetMask('*')

	term, err := runWidget(t, in, "secret\r")
	require.NoError(t, err)
	assert.Equal(t, "secret", in.Value())

	out := term.written.String()
	assert.Contains(t, out, "******")
	assert.NotContains(t, out, "secret")

	g := newReplayGrid(40, 10)
	g.apply(out)
	assert.Equal(t, "pw: ******", g.line(1)[:10])
}

func TestTextInputPlaceholder(t *testing.T) {
	in := NewTextInput("name:", PlainTheme())
	in.SetPlaceholder("anonymous")

	lines := in.Render(Rect{Top: 1, Left: 1, Width: 30, Height: 2})
	require.Len(t, lines, 1)
	assert.Equal(t, "name: anonymous", lines[0])

	in.SetValue("x")
	lines = in.Render(Rect{Top: 1, Left: 1, Width: 30, Height: 2})
	assert.Equal(t, "name: x", lines[0])
}

func TestTextInputSetValueMovesCursorToEnd(t *testing.T) {
	in := NewTextInput(">", PlainTheme())
	in.SetValue("hi")
	_, err := runWidget(t, in, "!\r")
	require.NoError(t, err)
	assert.Equal(t, "hi!", in.Value())
}

func TestTextInputHorizontalScroll(t *testing.T) {
	s, term := newTestSession(t, 12, 5, WithLayoutConfig(LayoutConfig{}))
	in := NewTextInput("key:", PlainTheme())
	term.feed("abcdefghij\r")

	require.NoError(t, s.Run(context.Background(), &Page{Main: []Component{in}}))
	assert.Equal(t, "abcdefghij", in.Value())

	out := term.written.String()
	g := newReplayGrid(12, 5)
	g.apply(out)
	// Five label columns leave seven for the value; the window slides so
	// the cursor stays visible, showing the tail.
	assert.Equal(t, "key: efghij ", g.line(1))
	assert.False(t, strings.Contains(g.line(1), "abcd"))
	// The hardware cursor parked past the last rune.
	assert.Contains(t, out, "\x1b[1;12H\x1b[?25h")
}

func TestTextInputScrollBackToStart(t *testing.T) {
	s, term := newTestSession(t, 12, 5, WithLayoutConfig(LayoutConfig{}))
	in := NewTextInput("key:", PlainTheme())
	term.feed("abcdefghij\x01\r")

	require.NoError(t, s.Run(context.Background(), &Page{Main: []Component{in}}))

	g := newReplayGrid(12, 5)
	g.apply(term.written.String())
	assert.Equal(t, "key: abcdefg", g.line(1))
	assert.Contains(t, term.written.String(), "\x1b[1;6H\x1b[?25h")
}

func TestNumberInputAcceptsInteger(t *testing.T) {
	in := NewNumberInput("count:", PlainTheme())
	_, err := runWidget(t, in, "42\r")
	require.NoError(t, err)
	assert.Equal(t, 42, in.Int())
	assert.True(t, in.Done())
}

func TestNumberInputRejectsNonNumeric(t *testing.T) {
	in := NewNumberInput("count:", PlainTheme())
	term, err := runWidget(t, in, "abc\r\x157\r")
	require.NoError(t, err)
	assert.Equal(t, 7, in.Int())
	assert.Contains(t, term.written.String(), "enter a whole number")
}

func TestNumberInputRange(t *testing.T) {
	in := NewNumberInput("count:", PlainTheme())
	in.SetRange(1, 9)

	term, err := runWidget(t, in, "12\r\x7f\r")
	require.NoError(t, err)
	assert.Equal(t, 1, in.Int())
	assert.Contains(t, term.written.String(), "enter a number between 1 and 9")
}
