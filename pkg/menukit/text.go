package menukit

// Text is a static block of pre-styled lines. Handy for prompt-band
// captions and header status lines; changes via SetLines are picked up
// by the next repaint.
type Text struct {
	lines []string
}

func NewText(lines ...string) *Text {
	return &Text{lines: lines}
}

func (t *Text) SetLines(lines ...string) {
	t.lines = lines
}

func (t *Text) Render(r Rect) []string {
	return t.lines
}

func (t *Text) HeightHint(width int) int {
	return len(t.lines)
}
