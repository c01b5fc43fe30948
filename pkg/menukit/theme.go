package menukit

import "charm.land/lipgloss/v2"

// Theme bundles the styles and glyphs the stock widgets draw with. Widgets
// take a Theme at construction; sharing one across a page keeps it
// coherent.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Accent   lipgloss.Style
	Dim      lipgloss.Style
	Danger   lipgloss.Style
	Success  lipgloss.Style
	Heading  lipgloss.Style

	CursorPrefix  string
	PadPrefix     string
	CheckedBox    string
	UncheckedBox  string
	MoreUp        string
	MoreDown      string
	DoneMark      string
	FailMark      string
	RuleChar      string
	SpinnerFrames []string
}

// DefaultTheme is the colored, unicode-glyph look.
func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Accent:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Danger:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Heading:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),

		CursorPrefix: "▸ ",
		PadPrefix:    "  ",
		CheckedBox:   "[x] ",
		UncheckedBox: "[ ] ",
		MoreUp:       "↑ more",
		MoreDown:     "↓ more",
		DoneMark:     "✓",
		FailMark:     "✗",
		RuleChar:     "─",
		SpinnerFrames: []string{
			"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷",
		},
	}
}

// PlainTheme is uncolored ASCII for dumb terminals and log-friendly runs.
func PlainTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Title:    plain,
		Subtitle: plain,
		Accent:   plain,
		Dim:      plain,
		Danger:   plain,
		Success:  plain,
		Heading:  plain,

		CursorPrefix:  "> ",
		PadPrefix:     "  ",
		CheckedBox:    "[x] ",
		UncheckedBox:  "[ ] ",
		MoreUp:        "^ more",
		MoreDown:      "v more",
		DoneMark:      "+",
		FailMark:      "x",
		RuleChar:      "-",
		SpinnerFrames: []string{"|", "/", "-", "\\"},
	}
}

// WithAccent recolors the title and accent styles, keeping everything else.
func (t Theme) WithAccent(color string) Theme {
	c := lipgloss.Color(color)
	t.Title = t.Title.Foreground(c)
	t.Accent = t.Accent.Foreground(c)
	return t
}

// WithDim recolors the subdued styles.
func (t Theme) WithDim(color string) Theme {
	c := lipgloss.Color(color)
	t.Subtitle = t.Subtitle.Foreground(c)
	t.Dim = t.Dim.Foreground(c)
	return t
}

// ASCII swaps every glyph for its ASCII fallback, keeping colors.
func (t Theme) ASCII() Theme {
	t.CursorPrefix = "> "
	t.MoreUp = "^ more"
	t.MoreDown = "v more"
	t.DoneMark = "+"
	t.FailMark = "x"
	t.RuleChar = "-"
	t.SpinnerFrames = []string{"|", "/", "-", "\\"}
	return t
}
