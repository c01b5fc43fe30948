package menukit

import "strings"

// Banner is the standard header: title, optional subtitle, an optional
// right-aligned version tag on the title line, and a rule separating the
// header band from the rest of the page. It adapts to whatever height
// the band gives it, dropping the breathing room first and the rule
// last.
type Banner struct {
	Title    string
	Subtitle string
	Version  string

	theme Theme
}

func NewBanner(title, subtitle string, th Theme) *Banner {
	return &Banner{Title: title, Subtitle: subtitle, theme: th}
}

func (b *Banner) Render(r Rect) []string {
	if r.Empty() {
		return nil
	}
	lines := make([]string, 0, r.Height)
	if r.Height >= 5 {
		lines = append(lines, "")
	}
	lines = append(lines, b.titleLine(r.Width))
	if b.Subtitle != "" && len(lines) < r.Height {
		lines = append(lines, b.theme.Subtitle.Render(b.Subtitle))
	}
	if r.Height-len(lines) >= 2 {
		lines = append(lines, "")
	}
	if len(lines) < r.Height {
		lines = append(lines, b.theme.Dim.Render(strings.Repeat(b.theme.RuleChar, r.Width)))
	}
	return lines
}

// titleLine right-aligns the version tag next to the title when the
// width allows at least two cells of separation.
func (b *Banner) titleLine(width int) string {
	line := b.theme.Title.Render(b.Title)
	if b.Version == "" {
		return line
	}
	pad := width - VisibleWidth(line) - VisibleWidth(b.Version)
	if pad < 2 {
		return line
	}
	return line + strings.Repeat(" ", pad) + b.theme.Dim.Render(b.Version)
}
