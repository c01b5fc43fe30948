package menukit

import (
	"context"
	"maps"
	"slices"
)

// MultiSelect is a checkbox list. It shares the Menu's cursor, sections
// and scrolling; Space toggles the item under the cursor and Enter
// confirms the whole set, which may be empty.
type MultiSelect struct {
	list    Menu
	checked map[int]bool
	done    bool
}

func NewMultiSelect(items []MenuItem, th Theme) *MultiSelect {
	return &MultiSelect{
		list:    *NewMenu(items, th),
		checked: make(map[int]bool),
	}
}

// Selected returns the checked indexes in list order.
func (ms *MultiSelect) Selected() []int {
	return slices.Sorted(maps.Keys(ms.checked))
}

// Done reports whether the user confirmed the set.
func (ms *MultiSelect) Done() bool { return ms.done }

// SetChecked pre-checks or unchecks an item, for defaults.
func (ms *MultiSelect) SetChecked(i int, on bool) {
	if i < 0 || i >= len(ms.list.items) {
		return
	}
	if on {
		ms.checked[i] = true
	} else {
		delete(ms.checked, i)
	}
}

func (ms *MultiSelect) Render(r Rect) []string {
	return ms.list.renderList(r, ms.renderItem)
}

func (ms *MultiSelect) renderItem(i int) string {
	it := ms.list.items[i]
	th := ms.list.theme
	box := th.UncheckedBox
	if ms.checked[i] {
		box = th.CheckedBox
	}
	prefix := th.PadPrefix
	if i == ms.list.cursor {
		prefix = th.CursorPrefix
	}
	if it.Disabled {
		return th.Dim.Render(prefix + box + it.Label)
	}
	var line string
	if i == ms.list.cursor {
		line = th.Accent.Render(prefix + box + it.Label)
	} else {
		line = prefix + box + it.Label
	}
	if it.Detail != "" {
		line += "  " + th.Dim.Render(it.Detail)
	}
	return line
}

// toggleAll checks every enabled item, or clears the set when everything
// enabled is already checked.
func (ms *MultiSelect) toggleAll() {
	all := true
	for i, it := range ms.list.items {
		if !it.Disabled && !ms.checked[i] {
			all = false
			break
		}
	}
	if all {
		ms.checked = make(map[int]bool)
		return
	}
	for i, it := range ms.list.items {
		if !it.Disabled {
			ms.checked[i] = true
		}
	}
}

func (ms *MultiSelect) Interact(ctx context.Context, ix *Interaction) error {
	hints := ix.Hints()
	hints.Set(hintMenuKeys, "space toggle   a all   n none   enter confirm   esc back", PriorityInfo)
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
			changed = ms.list.move(-1)
		case KeyDown:
			changed = ms.list.move(1)
		case KeyHome:
			changed = ms.list.home()
		case KeyEnd:
			changed = ms.list.end()
		case KeyPageUp:
			changed = ms.list.jump(-pageStep(ix))
		case KeyPageDown:
			changed = ms.list.jump(pageStep(ix))
		case KeySpace:
			if len(ms.list.items) == 0 || ms.list.items[ms.list.cursor].Disabled {
				hints.Set(hintMenuWarn, "that entry is unavailable", PriorityWarn)
				continue
			}
			i := ms.list.cursor
			if ms.checked[i] {
				delete(ms.checked, i)
			} else {
				ms.checked[i] = true
			}
			changed = true
		case KeyEnter:
			ms.done = true
			return nil
		case KeyEsc:
			return ErrBack
		case KeyRune:
			switch ev.Rune {
			case 'j':
				changed = ms.list.move(1)
			case 'k':
				changed = ms.list.move(-1)
			case 'a':
				ms.toggleAll()
				changed = true
			case 'n':
				if len(ms.checked) > 0 {
					ms.checked = make(map[int]bool)
					changed = true
				}
			default:
				changed = ms.list.seek(ev.Rune)
			}
		}
		if changed {
			hints.Clear(hintMenuWarn)
			if err := ix.Repaint(ms.Render(ix.Rect())); err != nil {
				return err
			}
		}
	}
}
