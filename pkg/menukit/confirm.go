package menukit

import "context"

const hintConfirmKeys = "confirm.keys"

// Confirm is a yes/no question answered with y/n directly or by moving
// the highlight and pressing Enter.
type Confirm struct {
	Question string

	theme Theme
	value bool
	done  bool
}

// NewConfirm creates the question with def as the highlighted answer.
func NewConfirm(question string, def bool, th Theme) *Confirm {
	return &Confirm{Question: question, value: def, theme: th}
}

// Value returns the chosen answer, meaningful once Done reports true.
func (c *Confirm) Value() bool { return c.value }

// Done reports whether the question was answered.
func (c *Confirm) Done() bool { return c.done }

func (c *Confirm) HeightHint(width int) int { return 1 }

func (c *Confirm) Render(r Rect) []string {
	if r.Empty() {
		return nil
	}
	yes, no := "[ yes ]", "[ no ]"
	if c.value {
		yes = c.theme.Accent.Render(yes)
		no = c.theme.Dim.Render(no)
	} else {
		yes = c.theme.Dim.Render(yes)
		no = c.theme.Accent.Render(no)
	}
	return []string{c.Question + "  " + yes + " " + no}
}

func (c *Confirm) Interact(ctx context.Context, ix *Interaction) error {
	hints := ix.Hints()
	hints.Set(hintConfirmKeys, "y/n answer   enter confirm   esc back", PriorityInfo)
	defer hints.Clear(hintConfirmKeys)

	for {
		ev, err := ix.ReadKey()
		if err != nil {
			return err
		}
		switch ev.Key {
		case KeyLeft, KeyRight, KeyTab, KeyUp, KeyDown:
			c.value = !c.value
			if err := ix.Repaint(c.Render(ix.Rect())); err != nil {
				return err
			}
		case KeyEnter:
			c.done = true
			return nil
		case KeyEsc:
			return ErrBack
		case KeyRune:
			switch ev.Rune {
			case 'y', 'Y':
				c.value = true
				c.done = true
				return nil
			case 'n', 'N':
				c.value = false
				c.done = true
				return nil
			case 'h', 'l':
				c.value = !c.value
				if err := ix.Repaint(c.Render(ix.Rect())); err != nil {
					return err
				}
			}
		}
	}
}
