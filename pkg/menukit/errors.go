package menukit

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrTerminated is returned when the user interrupts the session (Ctrl+C).
// By the time it propagates out of Session.Run the screen has been
// restored: cursor visible, alternate buffer left.
var ErrTerminated = errors.New("terminated by user")

// ErrCanceled is returned when a whole flow was dismissed without a
// result, e.g. backing out of a wizard's first step.
var ErrCanceled = errors.New("canceled")

// ErrBack is returned by widgets when the user backs out (Esc). A wizard
// treats it as "previous step"; a plain page just propagates it.
var ErrBack = errors.New("back")

// RegionError reports a render or clear against a region id that was never
// defined. This is a contract violation by the caller, not a runtime
// condition, so it is surfaced rather than clamped.
type RegionError struct {
	ID string
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("region %q is not defined", e.ID)
}

// CursorError reports a scroll cursor outside [0, ItemCount). Callers are
// expected to clamp before computing a window.
type CursorError struct {
	Cursor    int
	ItemCount int
}

func (e *CursorError) Error() string {
	return fmt.Sprintf("cursor %d out of range for %d items", e.Cursor, e.ItemCount)
}
