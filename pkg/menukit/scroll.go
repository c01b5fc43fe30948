package menukit

// ScrollWindow is the contiguous slice of a list chosen for display.
// Start is inclusive, End exclusive. Lines is the total line cost of the
// window, which can exceed the target when the cursor item alone does.
type ScrollWindow struct {
	Start       int
	End         int
	Lines       int
	Scrolled    bool // some items fell outside the window
	ItemsBefore int
	ItemsAfter  int
}

// ComputeScrollWindow picks which items of a list to show so that the
// cursor item is always visible and the window's total line cost stays
// within targetLines. lineCost reports the height of item i in lines; nil
// means every item is one line tall.
//
// The window grows greedily from the cursor: first downward, then upward,
// then downward again with whatever budget is left after hitting the top.
// Near the end of the list this fills the window with earlier items
// instead of leaving dead space under the cursor; near the start it fills
// downward the way a list naturally reads.
//
// An empty list yields the zero window. A cursor outside [0, itemCount)
// is a caller bug and returns a *CursorError.
func ComputeScrollWindow(itemCount, cursor, targetLines int, lineCost func(int) int) (ScrollWindow, error) {
	if itemCount == 0 {
		return ScrollWindow{}, nil
	}
	if cursor < 0 || cursor >= itemCount {
		return ScrollWindow{}, &CursorError{Cursor: cursor, ItemCount: itemCount}
	}
	if lineCost == nil {
		lineCost = func(int) int { return 1 }
	}

	// The cursor item is in the window no matter what it costs.
	start, end := cursor, cursor+1
	lines := lineCost(cursor)

	for end < itemCount && lines+lineCost(end) <= targetLines {
		lines += lineCost(end)
		end++
	}
	for start > 0 && lines+lineCost(start-1) <= targetLines {
		lines += lineCost(start - 1)
		start--
	}
	for end < itemCount && lines+lineCost(end) <= targetLines {
		lines += lineCost(end)
		end++
	}

	return ScrollWindow{
		Start:       start,
		End:         end,
		Lines:       lines,
		Scrolled:    start > 0 || end < itemCount,
		ItemsBefore: start,
		ItemsAfter:  itemCount - end,
	}, nil
}
