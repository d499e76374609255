package view

import (
	"math"
	"sync"
)

const (
	// WrapperClass tags the preview container.
	WrapperClass = "pdf-previewer-wrapper"
	// PageGap is the vertical space between two page items, in pixels.
	PageGap = 2
)

// PageItem is one entry of the page list, tagged with its page number.
type PageItem struct {
	PageNumber int
	Canvas     *Canvas
}

// Wrapper is the mounted preview: a scrollable box holding the page list.
// An error wrapper has no page list.
type Wrapper struct {
	EventTarget

	Class string

	mu           sync.Mutex
	items        []*PageItem
	hasPageList  bool
	scrollTop    float64
	scrollLeft   float64
	clientWidth  float64
	clientHeight float64
}

// NewWrapper builds a wrapper with items for pages 1..numPages.
func NewWrapper(numPages int) *Wrapper {
	w := &Wrapper{Class: WrapperClass, hasPageList: true}
	w.items = make([]*PageItem, 0, numPages)
	for n := 1; n <= numPages; n++ {
		w.items = append(w.items, &PageItem{PageNumber: n, Canvas: NewCanvas()})
	}
	return w
}

// NewErrorWrapper returns the placeholder shown when nothing can be rendered.
func NewErrorWrapper() *Wrapper {
	return &Wrapper{Class: WrapperClass}
}

// HasPageList reports whether the wrapper carries a page list.
func (w *Wrapper) HasPageList() bool {
	return w.hasPageList
}

// Items returns the page items in order.
func (w *Wrapper) Items() []*PageItem {
	return w.items
}

// Item finds the item tagged with page n.
func (w *Wrapper) Item(n int) *PageItem {
	for _, it := range w.items {
		if it.PageNumber == n {
			return it
		}
	}
	return nil
}

// OffsetTop is the distance from the top of the page list to item.
func (w *Wrapper) OffsetTop(item *PageItem) float64 {
	y := 0.0
	for _, it := range w.items {
		if it == item {
			return y
		}
		y += float64(it.Canvas.Height() + PageGap)
	}
	return y
}

// ScrollHeight is the full height of the page list.
func (w *Wrapper) ScrollHeight() float64 {
	if len(w.items) == 0 {
		return 0
	}
	h := 0.0
	for _, it := range w.items {
		h += float64(it.Canvas.Height())
	}
	return h + float64(PageGap*(len(w.items)-1))
}

// ScrollWidth is the width of the widest page.
func (w *Wrapper) ScrollWidth() float64 {
	width := 0
	for _, it := range w.items {
		if cw := it.Canvas.Width(); cw > width {
			width = cw
		}
	}
	return float64(width)
}

// PageAt returns the item covering content offset y, or the nearest
// preceding one when y falls into a gap.
func (w *Wrapper) PageAt(y float64) *PageItem {
	var found *PageItem
	top := 0.0
	for _, it := range w.items {
		if y < top {
			break
		}
		found = it
		top += float64(it.Canvas.Height() + PageGap)
	}
	return found
}

// SetClientSize records the visible size, which bounds scrolling.
func (w *Wrapper) SetClientSize(width, height float64) {
	w.mu.Lock()
	w.clientWidth = math.Max(0, width)
	w.clientHeight = math.Max(0, height)
	w.mu.Unlock()
	w.SetScrollTop(w.ScrollTop())
	w.SetScrollLeft(w.ScrollLeft())
}

// ClientSize returns the visible size.
func (w *Wrapper) ClientSize() (float64, float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clientWidth, w.clientHeight
}

func (w *Wrapper) ScrollTop() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scrollTop
}

func (w *Wrapper) ScrollLeft() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scrollLeft
}

// SetScrollTop scrolls vertically, clamped to the scrollable range.
func (w *Wrapper) SetScrollTop(v float64) {
	limit := w.ScrollHeight()
	w.mu.Lock()
	w.scrollTop = clampScroll(v, limit-w.clientHeight)
	w.mu.Unlock()
}

// SetScrollLeft scrolls horizontally, clamped to the scrollable range.
func (w *Wrapper) SetScrollLeft(v float64) {
	limit := w.ScrollWidth()
	w.mu.Lock()
	w.scrollLeft = clampScroll(v, limit-w.clientWidth)
	w.mu.Unlock()
}

func clampScroll(v, max float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if max < 0 {
		max = 0
	}
	if v > max {
		return max
	}
	return v
}
