package menukit

import (
	"context"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressRunsTasksInOrder(t *testing.T) {
	var order []string
	task := func(name string) Task {
		return Task{Name: name, Run: func(ctx context.Context) error {
			order = append(order, name)
			return nil
		}}
	}

	p := NewProgress([]Task{task("fetch"), task("build"), task("link")}, PlainTheme())
	term, err := runWidget(t, p, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"fetch", "build", "link"}, order)
	assert.True(t, p.Done())

	// The final repaint shows every task checked off.
	out := term.written.String()
	assert.Contains(t, out, "+ fetch")
	assert.Contains(t, out, "+ build")
	assert.Contains(t, out, "+ link")
}

func TestProgressStopsOnFailure(t *testing.T) {
	boom := pkgerrors.New("disk full")
	var ran []string
	p := NewProgress([]Task{
		{Name: "fetch", Run: func(ctx context.Context) error {
			ran = append(ran, "fetch")
			return nil
		}},
		{Name: "build", Run: func(ctx context.Context) error {
			ran = append(ran, "build")
			return boom
		}},
		{Name: "deploy", Run: func(ctx context.Context) error {
			ran = append(ran, "deploy")
			return nil
		}},
	}, PlainTheme())

	term, err := runWidget(t, p, "")
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, `task "build"`)

	assert.Equal(t, []string{"fetch", "build"}, ran)
	assert.False(t, p.Done())

	out := term.written.String()
	assert.Contains(t, out, "x build  disk full")
	assert.Contains(t, out, "  deploy")
}

func TestProgressCtrlCCancelsTasks(t *testing.T) {
	p := NewProgress([]Task{{Name: "wait", Run: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}}, PlainTheme())

	s, term := newTestSession(t, 40, 10, WithLayoutConfig(LayoutConfig{}))
	term.feed("\x03")
	err := s.Run(context.Background(), &Page{Main: []Component{p}})
	require.ErrorIs(t, err, ErrTerminated)

	assert.False(t, p.Done())
	assert.False(t, s.Screen().Entered())
}

func TestProgressRenderStates(t *testing.T) {
	p := NewProgress([]Task{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}}, PlainTheme())
	p.start = time.Now()
	p.state[0] = taskDone
	p.state[1] = taskRunning
	p.state[2] = taskFailed
	p.fails[2] = "exploded"

	lines := p.Render(Rect{Top: 1, Left: 1, Width: 30, Height: 6})
	require.Len(t, lines, 4)
	assert.Equal(t, "+ a", lines[0])
	assert.Contains(t, []string{"| b", "/ b", "- b", "\\ b"}, lines[1])
	assert.Equal(t, "x c  exploded", lines[2])
	assert.Equal(t, "  d", lines[3])
}
