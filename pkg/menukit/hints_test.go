package menukit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHintsEmptyRegistry(t *testing.T) {
	reg := NewHintRegistry()
	_, ok := reg.Current()
	assert.False(t, ok)
}

func TestHintsHighestPriorityWins(t *testing.T) {
	reg := NewHintRegistry()
	reg.Set("nav", "arrows move", 5)
	reg.Set("warn", "cannot do that", 10)

	h, ok := reg.Current()
	require.True(t, ok)
	assert.Equal(t, "warn", h.Token)
	assert.Equal(t, "cannot do that", h.Text)

	// Clearing the winner reveals the runner-up.
	reg.Clear("warn")
	h, ok = reg.Current()
	require.True(t, ok)
	assert.Equal(t, "nav", h.Token)
}

func TestHintsTieBreaksByRecency(t *testing.T) {
	reg := NewHintRegistry()
	reg.Set("a", "first", 5)
	reg.Set("b", "second", 5)

	h, _ := reg.Current()
	assert.Equal(t, "b", h.Token)

	// Re-setting refreshes recency, so a speaks last and wins.
	reg.Set("a", "first again", 5)
	h, _ = reg.Current()
	assert.Equal(t, "a", h.Token)
	assert.Equal(t, "first again", h.Text)
}

func TestHintsUpsertByToken(t *testing.T) {
	reg := NewHintRegistry()
	reg.Set("nav", "old", 5)
	reg.Set("nav", "new", 7)

	h, _ := reg.Current()
	assert.Equal(t, "new", h.Text)
	assert.Equal(t, 7, h.Priority)

	reg.Clear("nav")
	_, ok := reg.Current()
	assert.False(t, ok)
}

func TestHintsClearAll(t *testing.T) {
	reg := NewHintRegistry()
	reg.Set("a", "x", 1)
	reg.Set("b", "y", 2)
	reg.ClearAll()

	_, ok := reg.Current()
	assert.False(t, ok)
}

func TestHintsNotifyOnChangeOnly(t *testing.T) {
	reg := NewHintRegistry()
	fired := 0
	reg.Notify(func() { fired++ })

	reg.Set("a", "x", 1)
	assert.Equal(t, 1, fired)
	reg.Set("a", "x", 1) // recency refresh is a change
	assert.Equal(t, 2, fired)

	reg.Clear("absent")
	assert.Equal(t, 2, fired)
	reg.Clear("a")
	assert.Equal(t, 3, fired)

	reg.ClearAll() // already empty
	assert.Equal(t, 3, fired)
	reg.Set("b", "y", 1)
	reg.ClearAll()
	assert.Equal(t, 5, fired)
}
