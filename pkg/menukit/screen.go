// Package menukit implements a region-based differential terminal renderer
// for interactive text menus. Named rectangular regions on the alternate
// screen are painted independently and diffed line-by-line against their
// previously painted content, so a repaint costs only the lines that
// changed. On top of the renderer sit a fixed header/main/footer layout, a
// priority-ordered hint line, a virtual scroll window for long lists, and a
// set of widgets driven by a paint-then-interact component lifecycle.
package menukit

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Escape pairs owned by the screen. Region content itself never moves the
// cursor; every positioning write goes through here.
const (
	altScreenOn  = "\x1b[?1049h"
	altScreenOff = "\x1b[?1049l"
	clearHome    = "\x1b[2J\x1b[H"
	syncStart    = "\x1b[?2026h"
	syncEnd      = "\x1b[?2026l"
)

// RenderStats counts screen activity since creation.
type RenderStats struct {
	Renders       int // Render and Clear calls that reached the diff
	LinesPainted  int // lines actually written
	LinesSkipped  int // lines left alone because the cache matched
	Clears        int // Clear calls
	Dropped       int // renders dropped because the rect no longer fits
	Invalidations int // InvalidateAll calls
}

// region is one registered paint target: its rectangle plus the lines last
// painted into it. A nil cache means unknown content (never painted, or
// invalidated) and forces every line to be written on the next render.
type region struct {
	rect  Rect
	cache []string
}

// Screen owns the terminal surface for a session: the registry of named
// regions, each region's diff cache, and the alternate-screen and
// cursor-visibility pair toggled by Enter/Exit.
//
// Methods are safe for concurrent use. The mutex exists for ticker-driven
// repaints (spinners, progress) and the input goroutine; region content
// correctness still relies on the Session's paint-before-interact phase
// ordering, not on locking.
type Screen struct {
	mu      sync.Mutex
	term    Terminal
	regions map[string]*region
	entered bool
	stats   RenderStats
	debugW  io.Writer
}

func NewScreen(term Terminal) *Screen {
	return &Screen{term: term, regions: make(map[string]*region)}
}

// Define registers id with the given rectangle, or moves an existing
// region. A geometry change drops the region's cache, since the cached
// lines no longer describe what is on screen at the new position.
func (s *Screen) Define(id string, r Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.regions[id]
	if !ok {
		s.regions[id] = &region{rect: r}
		return
	}
	if reg.rect != r {
		reg.rect = r
		reg.cache = nil
	}
}

// Rect returns the rectangle registered for id.
func (s *Screen) Rect(id string) (Rect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.regions[id]
	if !ok {
		return Rect{}, false
	}
	return reg.rect, true
}

// Render paints lines into the region registered as id. Content is
// normalized to the region's exact dimensions (missing trailing lines
// blank, every line padded or truncated to the width in visible columns),
// then diffed line-by-line against the cache: only changed lines are
// written, each positioned at (rect.Top+offset, rect.Left). The cache is
// replaced with the normalized content either way.
//
// Rendering an id that was never defined is a contract violation and
// returns a *RegionError. A region whose rect no longer fits the terminal
// (shrunk by a resize the layout has not caught up with) is dropped
// silently; the resize path repaints everything anyway.
//
// Lines must not contain newline characters.
func (s *Screen) Render(id string, lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.regions[id]
	if !ok {
		return &RegionError{ID: id}
	}
	return s.paintLocked("render", id, reg, lines)
}

// Clear fills every line of the region with spaces, erasing prior content,
// and leaves the cache all-blank. It goes through the same diff path as
// Render, so clearing an already-blank region writes nothing.
func (s *Screen) Clear(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.regions[id]
	if !ok {
		return &RegionError{ID: id}
	}
	s.stats.Clears++
	return s.paintLocked("clear", id, reg, nil)
}

func (s *Screen) paintLocked(op, id string, reg *region, lines []string) error {
	start := time.Now()
	r := reg.rect

	if s.rectClipped(r) {
		s.stats.Dropped++
		s.debugLocked(op, id, 0, 0, 0, true, time.Since(start))
		return nil
	}

	norm := make([]string, r.Height)
	for i := range norm {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		norm[i] = fitLine(line, r.Width)
	}

	var buf strings.Builder
	painted, skipped := 0, 0
	for i, line := range norm {
		if reg.cache != nil && i < len(reg.cache) && reg.cache[i] == line {
			skipped++
			continue
		}
		fmt.Fprintf(&buf, "\x1b[%d;%dH", r.Top+i, r.Left)
		buf.WriteString(line)
		painted++
	}
	reg.cache = norm

	if painted > 0 {
		s.term.WriteString(syncStart + buf.String() + syncEnd)
	}

	s.stats.Renders++
	s.stats.LinesPainted += painted
	s.stats.LinesSkipped += skipped
	s.debugLocked(op, id, painted, skipped, buf.Len(), false, time.Since(start))
	return nil
}

// rectClipped reports whether r extends beyond the terminal as it is now.
func (s *Screen) rectClipped(r Rect) bool {
	if r.Empty() {
		return false
	}
	return r.Top+r.Height-1 > s.term.Rows() || r.Left+r.Width-1 > s.term.Columns()
}

// InvalidateAll drops every region's cache so the next render writes every
// line. Rectangles stay registered. Called after a resize, when the cache
// no longer corresponds to anything reliably on screen.
func (s *Screen) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, reg := range s.regions {
		reg.cache = nil
	}
	s.stats.Invalidations++
}

// Reset forgets every region entirely. Used between pages, whose region
// sets need not match.
func (s *Screen) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regions = make(map[string]*region)
}

// Enter switches to the alternate screen buffer, clears it, homes the
// cursor and hides it. No-op when already entered.
func (s *Screen) Enter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entered {
		return
	}
	s.entered = true
	s.term.WriteString(altScreenOn + clearHome)
	s.term.HideCursor()
}

// Exit restores the cursor and leaves the alternate screen buffer. No-op
// when not entered. Enter and Exit are a strict pair: whichever state the
// screen is in, calling both in either order ends with the terminal
// restored.
func (s *Screen) Exit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.entered {
		return
	}
	s.entered = false
	s.term.ShowCursor()
	s.term.WriteString(altScreenOff)
}

// Erase clears the whole screen and homes the cursor. The resize path
// uses it before repainting, since reflowed content outside any region
// would otherwise linger.
func (s *Screen) Erase() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.term.WriteString(clearHome)
}

// Entered reports whether the alternate screen is active.
func (s *Screen) Entered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entered
}

// MoveCursorTo positions the hardware cursor at the absolute 1-based cell.
func (s *Screen) MoveCursorTo(row, col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.term.WriteString(fmt.Sprintf("\x1b[%d;%dH", row, col))
}

// ShowCursorAt moves the hardware cursor and makes it visible. Prompts use
// it to park the cursor at the edit point.
func (s *Screen) ShowCursorAt(row, col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.term.WriteString(fmt.Sprintf("\x1b[%d;%dH", row, col))
	s.term.ShowCursor()
}

// HideCursor hides the hardware cursor.
func (s *Screen) HideCursor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.term.HideCursor()
}

// Size returns the terminal dimensions as cached by the Terminal.
func (s *Screen) Size() (cols, rows int) {
	return s.term.Columns(), s.term.Rows()
}

// Stats returns a copy of the cumulative counters.
func (s *Screen) Stats() RenderStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// SetDebugWriter emits one JSONL record per render to w. Pass nil to
// disable. The writer must not also be the terminal.
func (s *Screen) SetDebugWriter(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debugW = w
}

type renderRecord struct {
	Ts      int64  `json:"ts"`
	Op      string `json:"op"`
	Region  string `json:"region"`
	Painted int    `json:"painted"`
	Skipped int    `json:"skipped"`
	Bytes   int    `json:"bytes"`
	Dropped bool   `json:"dropped,omitempty"`
	Us      int64  `json:"us"`
}

func (s *Screen) debugLocked(op, id string, painted, skipped, bytes int, dropped bool, took time.Duration) {
	if s.debugW == nil {
		return
	}
	rec := renderRecord{
		Ts:      time.Now().UnixMilli(),
		Op:      op,
		Region:  id,
		Painted: painted,
		Skipped: skipped,
		Bytes:   bytes,
		Dropped: dropped,
		Us:      took.Microseconds(),
	}
	data, _ := json.Marshal(rec)
	data = append(data, '\n')
	s.debugW.Write(data) //nolint:errcheck
}
