package menukit

import (
	"context"
	"errors"
	"fmt"
	"io"

	pkgerrors "github.com/pkg/errors"
)

// Component is anything that can paint itself into a rectangle. Render
// returns the lines to show, top to bottom; the screen normalizes them to
// the rect's exact dimensions, so returning fewer lines leaves the rest
// blank and long lines are truncated. Render must tolerate an empty rect
// and may simply return nil for it.
type Component interface {
	Render(r Rect) []string
}

// Interactive marks a component that takes the keyboard for a while. The
// session calls Interact after everything on the page is painted; the
// component blocks reading keys through ix, repaints its own region as its
// state changes, and returns when the user confirms or backs out.
type Interactive interface {
	Component
	Interact(ctx context.Context, ix *Interaction) error
}

// HeightHinter lets a component claim a fixed number of lines within its
// band. Components without it, or returning 0, are flexible and split
// whatever the band has left.
type HeightHinter interface {
	HeightHint(width int) int
}

// Page is one screenful of components, grouped by band. Interactive
// components run in band order, header first, then top to bottom within
// each band.
type Page struct {
	Header []Component
	Main   []Component
	Hints  []Component
	Prompt []Component
}

const (
	bandHeader = "header"
	bandMain   = "main"
	bandHints  = "hints"
	bandPrompt = "prompt"
)

// placement binds one component to its region for the current layout.
type placement struct {
	id   string
	band string
	comp Component
	rect Rect
}

// Session drives pages through their lifecycle on one terminal: enter the
// alternate screen, lay the page out, paint every component, then hand
// the keyboard to each interactive component in order. Everything runs on
// the goroutine that called Run; input and resize arrive over channels
// and are consumed inside ReadKey, so components never see concurrency.
type Session struct {
	term      Terminal
	screen    *Screen
	hints     *HintRegistry
	reader    *reader
	layoutCfg LayoutConfig

	layout     Layout
	page       *Page
	placements []placement
	resizeCh   chan struct{}
	started    bool
	closed     bool
}

// SessionOption configures a Session at construction.
type SessionOption func(*Session)

// WithLayoutConfig overrides the band heights used to lay pages out.
func WithLayoutConfig(cfg LayoutConfig) SessionOption {
	return func(s *Session) { s.layoutCfg = cfg }
}

// WithDebugWriter streams per-render JSONL stats to w, typically a log
// file. See Screen.SetDebugWriter.
func WithDebugWriter(w io.Writer) SessionOption {
	return func(s *Session) { s.screen.SetDebugWriter(w) }
}

func NewSession(term Terminal, opts ...SessionOption) *Session {
	s := &Session{
		term:      term,
		screen:    NewScreen(term),
		hints:     NewHintRegistry(),
		reader:    newReader(),
		layoutCfg: DefaultLayoutConfig(),
		resizeCh:  make(chan struct{}, 1),
	}
	s.hints.Notify(s.repaintHints)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Screen returns the session's screen, mainly for stats and tests.
func (s *Session) Screen() *Screen { return s.screen }

// Hints returns the hint registry shared by every page on this session.
func (s *Session) Hints() *HintRegistry { return s.hints }

// Layout returns the band layout computed for the current page.
func (s *Session) Layout() Layout { return s.layout }

// Run shows page and drives it to completion: paint every component, then
// run each interactive component's Interact in order. The first Interact
// error stops the page and is returned as-is, so callers can pick out
// ErrBack or ErrCanceled and decide what to show next.
//
// On success the screen stays entered, ready for the next Run. On
// ErrTerminated or context cancellation the session restores the terminal
// before returning, so the process can exit from any depth without
// leaving the user on a dead alternate screen.
func (s *Session) Run(ctx context.Context, page *Page) error {
	if s.closed {
		return pkgerrors.New("session is closed")
	}
	if err := s.start(); err != nil {
		return err
	}
	s.screen.Enter()
	s.page = page
	s.mount()
	if err := s.paintAll(); err != nil {
		return err
	}
	for _, p := range s.placements {
		iv, ok := p.comp.(Interactive)
		if !ok {
			continue
		}
		ix := &Interaction{s: s, ctx: ctx, id: p.id}
		err := iv.Interact(ctx, ix)
		s.screen.HideCursor()
		if err != nil {
			if errors.Is(err, ErrTerminated) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				s.Close()
			}
			return err
		}
	}
	return nil
}

// Close restores the terminal: leave the alternate screen, show the
// cursor, put the tty back in cooked mode. Safe to call more than once
// and safe to defer alongside a Run that already closed on termination.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.screen.Exit()
	if s.started {
		s.term.Stop()
	}
}

func (s *Session) start() error {
	if s.started {
		return nil
	}
	if err := s.term.Start(s.handleInput, s.handleResize); err != nil {
		return pkgerrors.Wrap(err, "start terminal")
	}
	s.started = true
	return nil
}

func (s *Session) handleInput(data []byte) {
	s.reader.HandleInput(data)
}

func (s *Session) handleResize() {
	select {
	case s.resizeCh <- struct{}{}:
	default:
	}
}

// mount computes the layout for the current terminal size, places the
// page's components into it and registers their regions. All caches start
// cold, so the next paint writes everything.
func (s *Session) mount() {
	cols, rows := s.term.Columns(), s.term.Rows()
	s.layout = s.layoutCfg.Compute(cols, rows)
	s.placements = s.placements[:0]
	s.placeBand(bandHeader, s.page.Header, s.layout.Header)
	s.placeBand(bandMain, s.page.Main, s.layout.Main)
	s.placeBand(bandHints, s.page.Hints, s.layout.Hints)
	s.placeBand(bandPrompt, s.page.Prompt, s.layout.Prompt)
	s.screen.Reset()
	for _, p := range s.placements {
		s.screen.Define(p.id, p.rect)
	}
}

// placeBand stacks comps top to bottom within r. Fixed-height components
// take their hinted height, flexible ones split the remainder evenly with
// the earlier ones getting any leftover line. Heights degrade top-down
// when the band is too short; a component squeezed to nothing gets an
// empty rect.
func (s *Session) placeBand(band string, comps []Component, r Rect) {
	if len(comps) == 0 {
		return
	}
	heights := make([]int, len(comps))
	used, flex := 0, 0
	for i, c := range comps {
		h := 0
		if hh, ok := c.(HeightHinter); ok {
			h = hh.HeightHint(r.Width)
		}
		if h > 0 {
			heights[i] = h
			used += h
		} else {
			heights[i] = -1
			flex++
		}
	}
	per, extra := 0, 0
	if flex > 0 {
		avail := max(r.Height-used, 0)
		per, extra = avail/flex, avail%flex
	}
	rest := r
	for i, c := range comps {
		h := heights[i]
		if h < 0 {
			h = per
			if extra > 0 {
				h++
				extra--
			}
		}
		var cr Rect
		cr, rest = rest.splitTop(h)
		s.placements = append(s.placements, placement{
			id:   fmt.Sprintf("%s[%d]", band, i),
			band: band,
			comp: c,
			rect: cr,
		})
	}
}

func (s *Session) paintAll() error {
	for _, p := range s.placements {
		if err := s.screen.Render(p.id, p.comp.Render(p.rect)); err != nil {
			return err
		}
	}
	return nil
}

// relayout is the resize path: recompute everything, wipe the screen and
// repaint. Called from within ReadKey so it runs on the session goroutine.
func (s *Session) relayout() error {
	s.mount()
	s.screen.Erase()
	return s.paintAll()
}

func (s *Session) repaintHints() {
	if s.page == nil {
		return
	}
	for _, p := range s.placements {
		if p.band != bandHints {
			continue
		}
		s.screen.Render(p.id, p.comp.Render(p.rect)) //nolint:errcheck
	}
}

// Interaction is the handle a component holds while it owns the keyboard.
// It scopes everything to the component's own region: repaints land in the
// region, cursor parking is region-relative, and keys arrive one decoded
// event at a time.
type Interaction struct {
	s   *Session
	ctx context.Context
	id  string
}

// ReadKey blocks until the next key event. Resizes are absorbed here: the
// session relays out and repaints the whole page, then goes back to
// waiting, so components never handle resize themselves. A resize that
// raced a key is always applied first, so the key lands on the fresh
// layout. Ctrl+C surfaces as ErrTerminated and should be returned up
// unchanged.
func (ix *Interaction) ReadKey() (KeyEvent, error) {
	for {
		select {
		case <-ix.s.resizeCh:
			if err := ix.s.relayout(); err != nil {
				return KeyEvent{}, err
			}
			continue
		default:
		}
		select {
		case <-ix.ctx.Done():
			return KeyEvent{}, ix.ctx.Err()
		case <-ix.s.resizeCh:
			if err := ix.s.relayout(); err != nil {
				return KeyEvent{}, err
			}
		case ev := <-ix.s.reader.events:
			if ev.Key == KeyCtrlC {
				return KeyEvent{}, ErrTerminated
			}
			return ev, nil
		}
	}
}

// Repaint replaces the component's region content. Only changed lines hit
// the terminal.
func (ix *Interaction) Repaint(lines []string) error {
	return ix.s.screen.Render(ix.id, lines)
}

// Rect returns the component's current rectangle, tracking resizes.
func (ix *Interaction) Rect() Rect {
	r, _ := ix.s.screen.Rect(ix.id)
	return r
}

// Hints returns the session's hint registry.
func (ix *Interaction) Hints() *HintRegistry {
	return ix.s.hints
}

// ShowCursorAt parks the visible hardware cursor at the 0-based offset
// within the component's region, clamped to it. Text prompts use this to
// put the cursor at the edit point.
func (ix *Interaction) ShowCursorAt(row, col int) {
	r := ix.Rect()
	if r.Empty() {
		return
	}
	row = min(max(row, 0), r.Height-1)
	col = min(max(col, 0), r.Width-1)
	ix.s.screen.ShowCursorAt(r.Top+row, r.Left+col)
}

// HideCursor hides the hardware cursor again after ShowCursorAt.
func (ix *Interaction) HideCursor() {
	ix.s.screen.HideCursor()
}

// events exposes the decoded key stream for widgets that animate while
// working and cannot block in ReadKey. Such widgets must also watch
// resized and call relayout themselves, which ReadKey otherwise does.
func (ix *Interaction) events() <-chan KeyEvent { return ix.s.reader.events }

func (ix *Interaction) resized() <-chan struct{} { return ix.s.resizeCh }

func (ix *Interaction) relayout() error { return ix.s.relayout() }
