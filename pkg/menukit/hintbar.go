package menukit

// HintBar shows the hint registry's winning entry. It polls Current on
// every render, so placing it in the hints band and letting the session's
// registry callback repaint that band is all the wiring it needs.
type HintBar struct {
	reg   *HintRegistry
	theme Theme
}

func NewHintBar(reg *HintRegistry, th Theme) *HintBar {
	return &HintBar{reg: reg, theme: th}
}

func (h *HintBar) Render(r Rect) []string {
	if r.Empty() {
		return nil
	}
	hint, ok := h.reg.Current()
	if !ok {
		return nil
	}
	style := h.theme.Dim
	if hint.Priority >= PriorityWarn {
		style = h.theme.Danger
	}
	return []string{style.Render(hint.Text)}
}
