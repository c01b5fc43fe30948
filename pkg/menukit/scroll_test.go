package menukit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrollCursorNearEndFillsUpward(t *testing.T) {
	win, err := ComputeScrollWindow(40, 35, 10, nil)
	require.NoError(t, err)

	assert.Equal(t, 30, win.Start)
	assert.Equal(t, 40, win.End)
	assert.Equal(t, 10, win.Lines)
	assert.True(t, win.Scrolled)
	assert.Equal(t, 30, win.ItemsBefore)
	assert.Equal(t, 0, win.ItemsAfter)
}

func TestScrollCursorAtTop(t *testing.T) {
	win, err := ComputeScrollWindow(40, 0, 10, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, win.Start)
	assert.Equal(t, 10, win.End)
	assert.True(t, win.Scrolled)
	assert.Equal(t, 30, win.ItemsAfter)
}

func TestScrollEverythingFits(t *testing.T) {
	win, err := ComputeScrollWindow(5, 3, 10, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, win.Start)
	assert.Equal(t, 5, win.End)
	assert.Equal(t, 5, win.Lines)
	assert.False(t, win.Scrolled)
	assert.Equal(t, 0, win.ItemsBefore)
	assert.Equal(t, 0, win.ItemsAfter)
}

func TestScrollEmptyList(t *testing.T) {
	win, err := ComputeScrollWindow(0, 0, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, ScrollWindow{}, win)
}

func TestScrollCursorOutOfRange(t *testing.T) {
	_, err := ComputeScrollWindow(40, 40, 10, nil)
	var ce *CursorError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 40, ce.Cursor)
	assert.Equal(t, 40, ce.ItemCount)

	_, err = ComputeScrollWindow(40, -1, 10, nil)
	require.ErrorAs(t, err, &ce)
}

func TestScrollVariableCosts(t *testing.T) {
	costs := []int{2, 1, 3, 1, 1, 2}
	costOf := func(i int) int { return costs[i] }

	// Anchored on the 3-line item: grows down while budget lasts, then
	// tries up and stops.
	win, err := ComputeScrollWindow(len(costs), 2, 5, costOf)
	require.NoError(t, err)
	assert.Equal(t, 2, win.Start)
	assert.Equal(t, 5, win.End)
	assert.Equal(t, 5, win.Lines)
	assert.True(t, win.Scrolled)
	assert.Equal(t, 2, win.ItemsBefore)
	assert.Equal(t, 1, win.ItemsAfter)
}

func TestScrollOversizedCursorItemStaysVisible(t *testing.T) {
	win, err := ComputeScrollWindow(10, 3, 5, func(int) int { return 7 })
	require.NoError(t, err)

	assert.Equal(t, 3, win.Start)
	assert.Equal(t, 4, win.End)
	assert.Equal(t, 7, win.Lines) // exceeds the target, caller truncates
	assert.True(t, win.Scrolled)
}

func TestScrollZeroTarget(t *testing.T) {
	win, err := ComputeScrollWindow(10, 5, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, win.Start)
	assert.Equal(t, 6, win.End)
	assert.Equal(t, 1, win.Lines)
}

func TestScrollCursorAlwaysInWindow(t *testing.T) {
	for cursor := 0; cursor < 40; cursor++ {
		win, err := ComputeScrollWindow(40, cursor, 10, nil)
		require.NoError(t, err)

		assert.LessOrEqual(t, win.Start, cursor)
		assert.Greater(t, win.End, cursor)
		assert.GreaterOrEqual(t, win.Start, 0)
		assert.LessOrEqual(t, win.End, 40)
		assert.Equal(t, 10, win.Lines, "cursor %d", cursor)
		assert.Equal(t, win.Start, win.ItemsBefore)
		assert.Equal(t, 40-win.End, win.ItemsAfter)
	}
}
