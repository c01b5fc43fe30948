package menukit

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const spinnerInterval = 80 * time.Millisecond

// Task is one unit of work shown by Progress.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

type taskState int

const (
	taskPending taskState = iota
	taskRunning
	taskDone
	taskFailed
)

// Progress runs tasks one after another, spinning on the current one and
// marking each as it finishes. The first failure stops the run and is
// returned from Interact; Ctrl+C cancels the task context and returns
// ErrTerminated once the running task has wound down.
type Progress struct {
	theme Theme
	tasks []Task
	start time.Time

	mu    sync.Mutex
	state []taskState
	fails []string
	done  bool
}

func NewProgress(tasks []Task, th Theme) *Progress {
	return &Progress{
		theme: th,
		tasks: tasks,
		state: make([]taskState, len(tasks)),
		fails: make([]string, len(tasks)),
	}
}

// Done reports whether every task finished successfully.
func (p *Progress) Done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

func (p *Progress) setState(i int, st taskState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state[i] = st
}

func (p *Progress) setFailed(i int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state[i] = taskFailed
	p.fails[i] = err.Error()
}

func (p *Progress) setDone() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done = true
}

func (p *Progress) Render(r Rect) []string {
	if r.Empty() {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	frame := ""
	if len(p.theme.SpinnerFrames) > 0 {
		idx := int(time.Since(p.start)/spinnerInterval) % len(p.theme.SpinnerFrames)
		frame = p.theme.SpinnerFrames[idx]
	}
	lines := make([]string, 0, len(p.tasks))
	for i, t := range p.tasks {
		var line string
		switch p.state[i] {
		case taskRunning:
			line = p.theme.Accent.Render(frame) + " " + t.Name
		case taskDone:
			line = p.theme.Success.Render(p.theme.DoneMark) + " " + t.Name
		case taskFailed:
			line = p.theme.Danger.Render(p.theme.FailMark) + " " + t.Name
			if p.fails[i] != "" {
				line += "  " + p.theme.Danger.Render(p.fails[i])
			}
		default:
			line = "  " + p.theme.Dim.Render(t.Name)
		}
		lines = append(lines, line)
	}
	return lines
}

func (p *Progress) Interact(ctx context.Context, ix *Interaction) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p.start = time.Now()
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		for i := range p.tasks {
			p.setState(i, taskRunning)
			if err := p.tasks[i].Run(gctx); err != nil {
				p.setFailed(i, err)
				return errors.Wrapf(err, "task %q", p.tasks[i].Name)
			}
			p.setState(i, taskDone)
		}
		p.setDone()
		return nil
	})
	finished := make(chan error, 1)
	go func() { finished <- g.Wait() }()

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()
	terminated := false
	for {
		select {
		case <-ticker.C:
			ix.Repaint(p.Render(ix.Rect())) //nolint:errcheck
		case ev := <-ix.events():
			if ev.Key == KeyCtrlC {
				terminated = true
				cancel()
			}
		case <-ix.resized():
			if err := ix.relayout(); err != nil {
				return err
			}
		case err := <-finished:
			ix.Repaint(p.Render(ix.Rect())) //nolint:errcheck
			if terminated {
				return ErrTerminated
			}
			return err
		}
	}
}
