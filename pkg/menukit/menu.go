package menukit

import (
	"context"
	"fmt"
	"unicode"
	"unicode/utf8"
)

const (
	hintMenuKeys = "menu.keys"
	hintMenuWarn = "menu.warn"
)

// MenuItem is one row of a Menu or MultiSelect. A non-empty Heading opens
// a new section above the item, which costs extra lines and is priced
// into the scroll window. Disabled items are shown dimmed and the cursor
// steps over them.
type MenuItem struct {
	Label    string
	Detail   string
	Heading  string
	Disabled bool
}

// Menu is a single-choice list with cursor movement, sections, type-ahead
// and virtual scrolling. After a successful Interact, Choice reports the
// selected index.
type Menu struct {
	theme  Theme
	items  []MenuItem
	cursor int
	choice int
	done   bool
}

func NewMenu(items []MenuItem, th Theme) *Menu {
	m := &Menu{theme: th, items: items, choice: -1}
	m.cursor = m.firstEnabled()
	return m
}

// Choice returns the selected index, or -1 before a selection was made.
func (m *Menu) Choice() int { return m.choice }

// Done reports whether the user confirmed a selection.
func (m *Menu) Done() bool { return m.done }

// SetCursor moves the cursor to i, settling on the nearest enabled item
// at or after it.
func (m *Menu) SetCursor(i int) {
	if len(m.items) == 0 {
		return
	}
	m.cursor = min(max(i, 0), len(m.items)-1)
	if m.items[m.cursor].Disabled {
		if !m.move(1) {
			m.move(-1)
		}
	}
}

func (m *Menu) firstEnabled() int {
	for i, it := range m.items {
		if !it.Disabled {
			return i
		}
	}
	return 0
}

// lineCost prices item i for the scroll window: one line for the item,
// three with a section heading (blank, heading, item).
func (m *Menu) lineCost(i int) int {
	if m.items[i].Heading != "" {
		return 3
	}
	return 1
}

func (m *Menu) Render(r Rect) []string {
	return m.renderList(r, m.renderItem)
}

// renderList draws the visible window with scroll markers, delegating the
// item line itself so MultiSelect can reuse the machinery.
func (m *Menu) renderList(r Rect, renderItem func(i int) string) []string {
	if r.Empty() {
		return nil
	}
	if len(m.items) == 0 {
		return []string{m.theme.Dim.Render("(no entries)")}
	}
	win, err := ComputeScrollWindow(len(m.items), m.cursor, r.Height, m.lineCost)
	if err != nil {
		return nil
	}
	if win.Scrolled {
		// Give the top and bottom marker lines back to the window.
		win, _ = ComputeScrollWindow(len(m.items), m.cursor, max(r.Height-2, 1), m.lineCost)
	}

	lines := make([]string, 0, r.Height)
	if win.Scrolled {
		if win.ItemsBefore > 0 {
			lines = append(lines, m.theme.Dim.Render(fmt.Sprintf("%s (%d)", m.theme.MoreUp, win.ItemsBefore)))
		} else {
			lines = append(lines, "")
		}
	}
	top := len(lines)
	for i := win.Start; i < win.End; i++ {
		if m.items[i].Heading != "" {
			if len(lines) > top {
				lines = append(lines, "")
			}
			lines = append(lines, m.theme.Heading.Render(m.items[i].Heading))
		}
		lines = append(lines, renderItem(i))
	}
	if win.Scrolled {
		for len(lines) < r.Height-1 {
			lines = append(lines, "")
		}
		if win.ItemsAfter > 0 {
			lines = append(lines, m.theme.Dim.Render(fmt.Sprintf("%s (%d)", m.theme.MoreDown, win.ItemsAfter)))
		} else {
			lines = append(lines, "")
		}
	}
	return lines
}

func (m *Menu) renderItem(i int) string {
	it := m.items[i]
	prefix := m.theme.PadPrefix
	if i == m.cursor {
		prefix = m.theme.CursorPrefix
	}
	if it.Disabled {
		return m.theme.Dim.Render(prefix + it.Label)
	}
	var line string
	if i == m.cursor {
		line = m.theme.Accent.Render(prefix + it.Label)
	} else {
		line = prefix + it.Label
	}
	if it.Detail != "" {
		line += "  " + m.theme.Dim.Render(it.Detail)
	}
	return line
}

// move steps the cursor by delta, skipping disabled items. Reports
// whether the cursor moved.
func (m *Menu) move(delta int) bool {
	for i := m.cursor + delta; i >= 0 && i < len(m.items); i += delta {
		if !m.items[i].Disabled {
			m.cursor = i
			return true
		}
	}
	return false
}

// jump moves the cursor by n items, settling on an enabled item in the
// jump direction first, then backtracking.
func (m *Menu) jump(n int) bool {
	if len(m.items) == 0 || n == 0 {
		return false
	}
	was := m.cursor
	i := min(max(m.cursor+n, 0), len(m.items)-1)
	dir := 1
	if n < 0 {
		dir = -1
	}
	for j := i; j >= 0 && j < len(m.items); j += dir {
		if !m.items[j].Disabled {
			m.cursor = j
			return m.cursor != was
		}
	}
	for j := i; j >= 0 && j < len(m.items); j -= dir {
		if !m.items[j].Disabled {
			m.cursor = j
			return m.cursor != was
		}
	}
	return false
}

func (m *Menu) home() bool {
	for i := range m.items {
		if !m.items[i].Disabled {
			moved := i != m.cursor
			m.cursor = i
			return moved
		}
	}
	return false
}

func (m *Menu) end() bool {
	for i := len(m.items) - 1; i >= 0; i-- {
		if !m.items[i].Disabled {
			moved := i != m.cursor
			m.cursor = i
			return moved
		}
	}
	return false
}

// seek jumps to the next enabled item whose label starts with r,
// searching forward from the cursor and wrapping once.
func (m *Menu) seek(r rune) bool {
	n := len(m.items)
	if n == 0 {
		return false
	}
	want := unicode.ToLower(r)
	for off := 1; off <= n; off++ {
		i := (m.cursor + off) % n
		it := m.items[i]
		if it.Disabled || it.Label == "" {
			continue
		}
		first, _ := utf8.DecodeRuneInString(it.Label)
		if unicode.ToLower(first) == want {
			m.cursor = i
			return true
		}
	}
	return false
}

func (m *Menu) Interact(ctx context.Context, ix *Interaction) error {
	hints := ix.Hints()
	hints.Set(hintMenuKeys, "↑/↓ move   enter select   esc back", PriorityInfo)
	defer hints.Clear(hintMenuKeys)
	defer hints.Clear(hintMenuWarn)

	for {
		ev, err := ix.ReadKey()
		if err != nil {
			return err
		}
		changed := false
		switch ev.Key {
		case KeyUp:
			changed = m.move(-1)
		case KeyDown:
			changed = m.move(1)
		case KeyHome:
			changed = m.home()
		case KeyEnd:
			changed = m.end()
		case KeyPageUp:
			changed = m.jump(-pageStep(ix))
		case KeyPageDown:
			changed = m.jump(pageStep(ix))
		case KeyEnter:
			if len(m.items) == 0 || m.items[m.cursor].Disabled {
				hints.Set(hintMenuWarn, "that entry is unavailable", PriorityWarn)
				continue
			}
			m.choice = m.cursor
			m.done = true
			return nil
		case KeyEsc:
			return ErrBack
		case KeyRune:
			switch ev.Rune {
			case 'j':
				changed = m.move(1)
			case 'k':
				changed = m.move(-1)
			case 'g':
				changed = m.home()
			case 'G':
				changed = m.end()
			default:
				changed = m.seek(ev.Rune)
			}
		}
		if changed {
			hints.Clear(hintMenuWarn)
			if err := ix.Repaint(m.Render(ix.Rect())); err != nil {
				return err
			}
		}
	}
}

// pageStep is the cursor distance for PageUp/PageDown: the region height,
// floor one.
func pageStep(ix *Interaction) int {
	return max(ix.Rect().Height, 1)
}
