package menukit

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const hintInputKeys = "input.keys"

// TextInput is a single-line editor with emacs-style bindings, optional
// masking for secrets and an accept-time validator. It draws no cursor
// glyph; the hardware cursor is parked at the edit point instead, which
// is why the prompt band is where it belongs.
type TextInput struct {
	Label       string
	Placeholder string

	theme    Theme
	value    []rune
	cursor   int
	offset   int // first visible rune, for horizontal scroll
	mask     rune
	validate func(string) error
	errMsg   string
	done     bool
}

func NewTextInput(label string, th Theme) *TextInput {
	return &TextInput{Label: label, theme: th}
}

// Value returns the current input string.
func (t *TextInput) Value() string { return string(t.value) }

// SetValue replaces the input and moves the cursor to the end.
func (t *TextInput) SetValue(s string) {
	t.value = []rune(s)
	t.cursor = len(t.value)
}

// SetMask hides the typed value behind r, for password prompts. Zero
// shows the value.
func (t *TextInput) SetMask(r rune) { t.mask = r }

// SetPlaceholder sets the dim text shown while the input is empty.
func (t *TextInput) SetPlaceholder(s string) { t.Placeholder = s }

// SetValidator installs a check run when Enter is pressed. A non-nil
// error keeps the input active and shows the message under it.
func (t *TextInput) SetValidator(fn func(string) error) { t.validate = fn }

// Done reports whether the input was accepted.
func (t *TextInput) Done() bool { return t.done }

func (t *TextInput) HeightHint(width int) int { return 2 }

func (t *TextInput) Render(r Rect) []string {
	if r.Empty() {
		return nil
	}
	label := t.theme.Accent.Render(t.Label) + " "
	avail := max(r.Width-VisibleWidth(label), 1)
	t.scrollTo(avail)

	var body string
	switch {
	case len(t.value) == 0 && t.Placeholder != "":
		body = t.theme.Dim.Render(Truncate(t.Placeholder, avail, ""))
	default:
		body = Truncate(t.display(t.offset, len(t.value)), avail, "")
	}

	lines := []string{label + body}
	if t.errMsg != "" && r.Height > 1 {
		lines = append(lines, t.theme.Danger.Render(t.errMsg))
	}
	return lines
}

// display returns the value runes in [from, to) as shown, applying the
// mask.
func (t *TextInput) display(from, to int) string {
	runes := t.value[from:to]
	if t.mask == 0 {
		return string(runes)
	}
	masked := make([]rune, len(runes))
	for i := range masked {
		masked[i] = t.mask
	}
	return string(masked)
}

// scrollTo slides the visible window so the cursor fits within avail
// columns.
func (t *TextInput) scrollTo(avail int) {
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	for t.offset < t.cursor && VisibleWidth(t.display(t.offset, t.cursor)) >= avail {
		t.offset++
	}
}

// cursorCol is the 0-based column of the edit point within r.
func (t *TextInput) cursorCol(r Rect) int {
	labelW := VisibleWidth(t.theme.Accent.Render(t.Label) + " ")
	avail := max(r.Width-labelW, 1)
	t.scrollTo(avail)
	col := labelW + VisibleWidth(t.display(t.offset, t.cursor))
	return min(col, r.Width-1)
}

func (t *TextInput) Interact(ctx context.Context, ix *Interaction) error {
	hints := ix.Hints()
	hints.Set(hintInputKeys, "enter accept   esc back", PriorityInfo)
	defer hints.Clear(hintInputKeys)
	defer ix.HideCursor()

	for {
		ix.ShowCursorAt(0, t.cursorCol(ix.Rect()))
		ev, err := ix.ReadKey()
		if err != nil {
			return err
		}
		before := string(t.value)
		switch ev.Key {
		case KeyEnter:
			if t.validate != nil {
				if verr := t.validate(t.Value()); verr != nil {
					t.errMsg = verr.Error()
					if err := ix.Repaint(t.Render(ix.Rect())); err != nil {
						return err
					}
					continue
				}
			}
			t.done = true
			return nil
		case KeyEsc:
			return ErrBack
		case KeyLeft:
			if t.cursor > 0 {
				t.cursor--
			}
		case KeyRight:
			if t.cursor < len(t.value) {
				t.cursor++
			}
		case KeyHome, KeyCtrlA:
			t.cursor = 0
		case KeyEnd, KeyCtrlE:
			t.cursor = len(t.value)
		case KeyCtrlLeft:
			t.cursor = t.wordLeft()
		case KeyCtrlRight:
			t.cursor = t.wordRight()
		case KeyBackspace:
			if t.cursor > 0 {
				t.value = append(t.value[:t.cursor-1], t.value[t.cursor:]...)
				t.cursor--
			}
		case KeyDelete, KeyCtrlD:
			if t.cursor < len(t.value) {
				t.value = append(t.value[:t.cursor], t.value[t.cursor+1:]...)
			}
		case KeyCtrlU:
			t.value = append([]rune(nil), t.value[t.cursor:]...)
			t.cursor = 0
		case KeyCtrlK:
			t.value = t.value[:t.cursor]
		case KeyCtrlW, KeyAltBackspace:
			start := t.wordLeft()
			t.value = append(t.value[:start], t.value[t.cursor:]...)
			t.cursor = start
		case KeyRune, KeySpace:
			if ev.Rune != 0 {
				t.value = append(t.value[:t.cursor], append([]rune{ev.Rune}, t.value[t.cursor:]...)...)
				t.cursor++
			}
		}
		if string(t.value) != before {
			t.errMsg = ""
		}
		if err := ix.Repaint(t.Render(ix.Rect())); err != nil {
			return err
		}
	}
}

func (t *TextInput) wordLeft() int {
	i := t.cursor
	for i > 0 && isWordSpace(t.value[i-1]) {
		i--
	}
	for i > 0 && !isWordSpace(t.value[i-1]) {
		i--
	}
	return i
}

func (t *TextInput) wordRight() int {
	i := t.cursor
	for i < len(t.value) && !isWordSpace(t.value[i]) {
		i++
	}
	for i < len(t.value) && isWordSpace(t.value[i]) {
		i++
	}
	return i
}

func isWordSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// NumberInput is a TextInput that only accepts whole numbers, optionally
// bounded to an inclusive range.
type NumberInput struct {
	TextInput

	lo, hi  int
	bounded bool
}

func NewNumberInput(label string, th Theme) *NumberInput {
	n := &NumberInput{TextInput: *NewTextInput(label, th)}
	n.SetValidator(n.check)
	return n
}

// SetRange bounds accepted values to [lo, hi].
func (n *NumberInput) SetRange(lo, hi int) {
	n.lo, n.hi = lo, hi
	n.bounded = true
}

// Int returns the accepted value. Zero before a successful Interact.
func (n *NumberInput) Int() int {
	v, err := strconv.Atoi(strings.TrimSpace(n.Value()))
	if err != nil {
		return 0
	}
	return v
}

func (n *NumberInput) check(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number")
	}
	if n.bounded && (v < n.lo || v > n.hi) {
		return errors.Errorf("enter a number between %d and %d", n.lo, n.hi)
	}
	return nil
}
