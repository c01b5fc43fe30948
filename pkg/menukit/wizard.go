package menukit

import (
	"context"

	"github.com/pkg/errors"
)

// Step is one stage of a Wizard. Run typically builds a Page around the
// step's widgets and drives it with session.Run, then reads the results
// out of the widgets.
type Step struct {
	Name string
	Run  func(ctx context.Context, s *Session) error
}

// Wizard chains steps on one session. A step returning ErrBack rewinds to
// the previous step; backing out of the first step cancels the whole
// wizard with ErrCanceled. Any other error aborts and propagates.
type Wizard struct {
	steps []Step
}

func NewWizard(steps ...Step) *Wizard {
	return &Wizard{steps: steps}
}

func (w *Wizard) Run(ctx context.Context, s *Session) error {
	i := 0
	for i < len(w.steps) {
		err := w.steps[i].Run(ctx, s)
		switch {
		case err == nil:
			i++
		case errors.Is(err, ErrBack):
			if i == 0 {
				return ErrCanceled
			}
			i--
		default:
			return errors.Wrapf(err, "step %q", w.steps[i].Name)
		}
	}
	return nil
}
