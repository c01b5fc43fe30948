// Command render-stress is an interactive stress test for the menukit
// screen renderer. It drives the region diff directly, below the session
// layer, with hotkeys to exercise every rendering code path. Per-render
// JSONL debug output is enabled automatically.
//
// Usage:
//
//	go run ./cmd/render-stress
//	go run ./cmd/render-stress -lines 500
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/daniellee2015/cli-menu-kit/pkg/menukit"
)

func main() {
	lines := flag.Int("lines", 200, "initial number of log lines")
	flag.Parse()

	if err := run(*lines); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(initialLines int) error {
	logPath := "/tmp/menukit_render_debug.log"
	debugFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	defer debugFile.Close() //nolint:errcheck // best-effort close of debug log

	term := menukit.NewProcessTerminal()
	s := &stress{
		term:    term,
		screen:  menukit.NewScreen(term),
		entries: seedEntries(initialLines),
		status:  "c=color a/A=append d=delete j/k=scroll x=clear r=redraw 1-9/0=churn q=quit",
		quit:    make(chan struct{}),
	}
	s.screen.SetDebugWriter(debugFile)

	if err := term.Start(s.handleInput, s.handleResize); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	s.screen.Enter()
	s.mu.Lock()
	s.layout()
	s.paint()
	s.mu.Unlock()

	fmt.Fprintf(os.Stderr, "Render debug → %s\n", logPath)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-s.quit:
	case <-sigCh:
	}

	signal.Stop(sigCh)
	s.mu.Lock()
	s.stopChurn()
	s.mu.Unlock()
	s.screen.Exit()
	term.Stop()

	st := s.screen.Stats()
	fmt.Printf("renders=%d painted=%d skipped=%d clears=%d dropped=%d invalidations=%d\n",
		st.Renders, st.LinesPainted, st.LinesSkipped, st.Clears, st.Dropped, st.Invalidations)
	return nil
}

type entry struct {
	ts      time.Time
	level   string
	message string
}

// stress owns the whole tool state. One mutex serializes the three entry
// points: stdin bytes, the resize signal and the churn ticker.
type stress struct {
	mu       sync.Mutex
	term     *menukit.ProcessTerminal
	screen   *menukit.Screen
	entries  []entry
	colorize bool
	offset   int
	status   string

	churnTick *time.Ticker
	churnDone chan struct{}

	quit     chan struct{}
	quitOnce sync.Once
}

func (s *stress) handleInput(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range data {
		s.handleByte(b)
	}
}

func (s *stress) handleResize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout()
	s.status = fmt.Sprintf("resized to %dx%d", s.term.Columns(), s.term.Rows())
	s.paint()
}

func (s *stress) handleByte(b byte) {
	switch {
	case b == 'q' || b == 0x03:
		s.doQuit()
		return

	case b == 'c':
		s.colorize = !s.colorize
		if s.colorize {
			s.status = "COLOR ON, every line's bytes change"
		} else {
			s.status = "COLOR OFF, plain text"
		}

	case b == 'a':
		s.appendEntries(10)
		s.status = "+10 lines appended"

	case b == 'A':
		s.appendEntries(100)
		s.status = "+100 lines appended"

	case b == 'd':
		if len(s.entries) > 10 {
			s.entries = s.entries[:len(s.entries)-10]
		} else {
			s.entries = nil
		}
		s.status = fmt.Sprintf("deleted 10 lines (now %d)", len(s.entries))

	case b == 'j':
		s.offset++
		s.status = "scrolled down"

	case b == 'k':
		s.offset--
		s.status = "scrolled up"

	case b == 'x':
		s.screen.Clear("log") //nolint:errcheck
		s.status = "log region cleared (paint restores it)"

	case b == 'r':
		s.screen.InvalidateAll()
		s.status = "caches invalidated, full rewrite"

	case b >= '1' && b <= '9':
		target := int(b-'0') * 10
		s.startChurn(target)
		s.status = fmt.Sprintf("churning line %d every 50ms (0 stops)", target)

	case b == '0':
		s.stopChurn()
		s.status = "churn stopped"

	default:
		return
	}
	s.paint()
}

// layout carves the screen into the scrolling log and a one-line status
// bar. Caches are dropped so the next paint rewrites everything.
func (s *stress) layout() {
	cols, rows := s.term.Columns(), s.term.Rows()
	s.screen.Reset()
	s.screen.Define("log", menukit.Rect{Top: 1, Left: 1, Width: cols, Height: max(rows-1, 1)})
	if rows > 1 {
		s.screen.Define("status", menukit.Rect{Top: rows, Left: 1, Width: cols, Height: 1})
	}
	s.screen.Erase()
}

func (s *stress) paint() {
	r, ok := s.screen.Rect("log")
	if !ok {
		return
	}
	maxOffset := max(len(s.entries)-r.Height, 0)
	s.offset = min(max(s.offset, 0), maxOffset)

	lines := make([]string, 0, r.Height)
	for i := s.offset; i < len(s.entries) && len(lines) < r.Height; i++ {
		lines = append(lines, s.renderEntry(s.entries[i]))
	}
	s.screen.Render("log", lines) //nolint:errcheck

	st := s.screen.Stats()
	bar := fmt.Sprintf(" %s | renders=%d painted=%d skipped=%d dropped=%d",
		s.status, st.Renders, st.LinesPainted, st.LinesSkipped, st.Dropped)
	cols := s.term.Columns()
	s.screen.Render("status", []string{"\x1b[7m" + menukit.PadRight(bar, cols) + "\x1b[0m"}) //nolint:errcheck
}

func (s *stress) renderEntry(e entry) string {
	level := e.level
	if s.colorize {
		switch e.level {
		case "ERROR":
			level = "\x1b[31m" + e.level + "\x1b[0m"
		case "WARN":
			level = "\x1b[33m" + e.level + "\x1b[0m"
		case "DEBUG":
			level = "\x1b[36m" + e.level + "\x1b[0m"
		default:
			level = "\x1b[32m" + e.level + "\x1b[0m"
		}
	}
	return fmt.Sprintf("%s %-5s %s", e.ts.Format("15:04:05.000"), level, e.message)
}

func (s *stress) appendEntries(n int) {
	levels := []string{"INFO", "DEBUG", "WARN"}
	for range n {
		s.entries = append(s.entries, entry{
			ts:      time.Now(),
			level:   levels[rand.Intn(len(levels))],
			message: fmt.Sprintf("[append] new line %d val=%d", len(s.entries), rand.Intn(99999)),
		})
	}
}

func (s *stress) startChurn(target int) {
	s.stopChurn()
	s.churnDone = make(chan struct{})
	s.churnTick = time.NewTicker(50 * time.Millisecond)
	tick, done := s.churnTick, s.churnDone
	go func() {
		for {
			select {
			case <-done:
				return
			case <-tick.C:
				s.mu.Lock()
				if target < len(s.entries) {
					s.entries[target].message = fmt.Sprintf("[churn] tick %d latency=%dµs",
						time.Now().UnixMicro()%100000, rand.Intn(5000))
					s.paint()
				}
				s.mu.Unlock()
			}
		}
	}()
}

func (s *stress) stopChurn() {
	if s.churnTick != nil {
		s.churnTick.Stop()
		close(s.churnDone)
		s.churnTick = nil
	}
}

func (s *stress) doQuit() {
	s.quitOnce.Do(func() { close(s.quit) })
}

func seedEntries(n int) []entry {
	levels := []string{"INFO", "DEBUG", "WARN", "ERROR", "TRACE"}
	modules := []string{
		"menukit.render", "menukit.diff", "menukit.layout", "menukit.input",
		"menukit.hints", "menukit.scroll", "demo.setup", "demo.progress",
	}
	messages := []string{
		"processing request",
		"cache miss for key",
		"rendering frame",
		"differential update applied",
		"escape sequence generated",
		"viewport scrolled",
		"cursor repositioned",
		"hint registry notified",
		"scroll window recomputed",
		"width calculation for line",
		"ANSI truncation applied",
	}

	entries := make([]entry, n)
	base := time.Now().Add(-time.Duration(n) * 100 * time.Millisecond)
	for i := range entries {
		entries[i] = entry{
			ts:    base.Add(time.Duration(i) * 100 * time.Millisecond),
			level: levels[rand.Intn(len(levels))],
			message: fmt.Sprintf("[%s] %s id=%d latency=%dµs",
				modules[rand.Intn(len(modules))], messages[rand.Intn(len(messages))],
				rand.Intn(10000), rand.Intn(5000)),
		}
	}
	return entries
}
