package menukit

// LayoutConfig fixes the heights of the three framing bands. Main is not
// configured; it absorbs whatever the terminal has left.
type LayoutConfig struct {
	HeaderHeight int
	HintsHeight  int
	PromptHeight int
}

// DefaultLayoutConfig returns the stock frame: a six-line header, two hint
// lines and a two-line prompt band.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		HeaderHeight: 6,
		HintsHeight:  2,
		PromptHeight: 2,
	}
}

// Layout is the screen split into its four horizontal bands, top to
// bottom: Header, Main, Hints, Prompt. Bands never overlap; a band whose
// height came out zero is empty but keeps a meaningful position.
type Layout struct {
	Header Rect
	Main   Rect
	Hints  Rect
	Prompt Rect
}

// Compute splits a cols x rows terminal into the four bands. The fixed
// bands get their configured heights and Main takes the remainder, never
// less than one line. When the terminal is too short for that, the fixed
// bands give up lines in order header, hints, prompt until Main's one
// line fits.
func (c LayoutConfig) Compute(cols, rows int) Layout {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	hh := max(c.HeaderHeight, 0)
	nh := max(c.HintsHeight, 0)
	ph := max(c.PromptHeight, 0)

	main := rows - hh - nh - ph
	if main < 1 {
		deficit := 1 - main
		for _, band := range []*int{&hh, &nh, &ph} {
			give := min(*band, deficit)
			*band -= give
			deficit -= give
			if deficit == 0 {
				break
			}
		}
		main = min(rows, 1)
	}

	full := Rect{Top: 1, Left: 1, Width: cols, Height: rows}
	var l Layout
	l.Header, full = full.splitTop(hh)
	l.Main, full = full.splitTop(main)
	l.Hints, full = full.splitTop(nh)
	l.Prompt, _ = full.splitTop(ph)
	return l
}
