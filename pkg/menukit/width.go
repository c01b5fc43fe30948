package menukit

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VisibleWidth returns the terminal display width of a string, ignoring ANSI
// escape sequences and accounting for wide characters.
func VisibleWidth(s string) int {
	return ansi.StringWidth(s)
}

// Truncate truncates s to at most maxWidth visible columns, appending tail
// (e.g. "…") if truncation occurred. Escape sequences before the cut are
// preserved.
func Truncate(s string, maxWidth int, tail string) string {
	return ansi.Truncate(s, maxWidth, tail)
}

// PadRight pads s with spaces to exactly width visible columns. Strings at
// or beyond width are returned unchanged.
func PadRight(s string, width int) string {
	gap := width - VisibleWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// styleReset closes any open SGR run so a styled line cannot bleed into its
// padding or into the cells that follow the region on the same row.
const styleReset = "\x1b[0m"

// fitLine normalizes a line to exactly width visible columns. Longer lines
// are truncated, keeping the escape sequences that precede the cut; shorter
// lines are right-padded with spaces. A line carrying escapes gets a reset
// appended before the padding so the pad cells stay unstyled.
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := VisibleWidth(s)
	if w > width {
		// A wide rune at the boundary can leave the cut short of width,
		// so measure again rather than assuming the cut landed exactly.
		s = ansi.Truncate(s, width, "")
		w = VisibleWidth(s)
	}
	if strings.ContainsRune(s, '\x1b') && !strings.HasSuffix(s, styleReset) {
		s += styleReset
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
