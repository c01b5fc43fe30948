package menukit

// Rect is an axis-aligned rectangle in 1-based terminal cell coordinates.
// Top and Left name the first cell of the rectangle; Width and Height are
// its extent. A zero-height Rect is legal and paints nothing.
type Rect struct {
	Top    int
	Left   int
	Width  int
	Height int
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Bottom returns the first row below the rect.
func (r Rect) Bottom() int { return r.Top + r.Height }

// splitTop carves n rows off the top of r and returns the carved rect plus
// the remainder. n is clamped to the available height.
func (r Rect) splitTop(n int) (Rect, Rect) {
	if n < 0 {
		n = 0
	}
	if n > r.Height {
		n = r.Height
	}
	top := Rect{Top: r.Top, Left: r.Left, Width: r.Width, Height: n}
	rest := Rect{Top: r.Top + n, Left: r.Left, Width: r.Width, Height: r.Height - n}
	return top, rest
}
