package menukit

// Hint priorities used by the stock widgets. Anything higher than
// PriorityWarn preempts them both.
const (
	PriorityInfo = 0
	PriorityWarn = 10
)

// Hint is one line of guidance offered to the hint bar, keyed by Token so
// the owning widget can update or retract it.
type Hint struct {
	Token    string
	Text     string
	Priority int

	seq uint64
}

// HintRegistry is a token-keyed store of candidate hints. At most one hint
// is visible at a time: the highest-priority entry, ties broken in favor
// of the most recently set. Widgets set and clear freely; whoever draws
// the hint bar asks Current.
//
// The registry is not locked. It lives on the session's single goroutine,
// like everything else that runs between key events.
type HintRegistry struct {
	hints   map[string]Hint
	nextSeq uint64
	watch   []func()
}

func NewHintRegistry() *HintRegistry {
	return &HintRegistry{hints: make(map[string]Hint)}
}

// Set inserts or replaces the hint stored under token. Re-setting an
// existing token refreshes its recency, so equal priorities resolve to
// whichever spoke last.
func (r *HintRegistry) Set(token, text string, priority int) {
	r.nextSeq++
	r.hints[token] = Hint{
		Token:    token,
		Text:     text,
		Priority: priority,
		seq:      r.nextSeq,
	}
	r.notify()
}

// Clear removes the hint stored under token, if any.
func (r *HintRegistry) Clear(token string) {
	if _, ok := r.hints[token]; !ok {
		return
	}
	delete(r.hints, token)
	r.notify()
}

// ClearAll empties the registry.
func (r *HintRegistry) ClearAll() {
	if len(r.hints) == 0 {
		return
	}
	r.hints = make(map[string]Hint)
	r.notify()
}

// Current returns the winning hint, or ok=false when the registry is
// empty.
func (r *HintRegistry) Current() (Hint, bool) {
	var best Hint
	found := false
	for _, h := range r.hints {
		if !found || h.Priority > best.Priority ||
			(h.Priority == best.Priority && h.seq > best.seq) {
			best = h
			found = true
		}
	}
	return best, found
}

// Notify registers fn to be called synchronously after every change to
// the registry. The session uses this to repaint the hint bar.
func (r *HintRegistry) Notify(fn func()) {
	r.watch = append(r.watch, fn)
}

func (r *HintRegistry) notify() {
	for _, fn := range r.watch {
		fn()
	}
}
