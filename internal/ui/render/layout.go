package render

// Layout places the page area between the header row and the status line.
// Each cell of the page area shows two vertically stacked pixels.
type Layout struct {
	Width    int
	PageTop  int
	PageRows int
}

// ComputeLayout returns the layout for a w x h screen.
func ComputeLayout(w, h int) Layout {
	rows := h - 2
	if rows < 0 {
		rows = 0
	}
	if w < 0 {
		w = 0
	}
	return Layout{Width: w, PageTop: 1, PageRows: rows}
}

// PixelSize is the page area size in pixels.
func (l Layout) PixelSize() (width, height float64) {
	return float64(l.Width), float64(2 * l.PageRows)
}

// ToPixel maps a screen cell to page-area pixel coordinates. ok is false for
// cells outside the page area.
func (l Layout) ToPixel(x, y int) (px, py float64, ok bool) {
	row := y - l.PageTop
	if x < 0 || x >= l.Width || row < 0 || row >= l.PageRows {
		return 0, 0, false
	}
	return float64(x), float64(2 * row), true
}
