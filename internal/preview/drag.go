package preview

import "github.com/kk-code-lab/pdfview/internal/view"

// dragState is captured on pointer-down and valid until pointer-up.
type dragState struct {
	anchorX     float64
	anchorY     float64
	scrollTop0  float64
	scrollLeft0 float64
}

func (c *Controller) onPointerDown(ev view.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w := c.boundOn
	if w == nil {
		return
	}
	// A press without a matching release must not leave its pair behind.
	c.endDragLocked()

	c.dragging = true
	c.drag = dragState{
		anchorX:     ev.X,
		anchorY:     ev.Y,
		scrollTop0:  w.ScrollTop(),
		scrollLeft0: w.ScrollLeft(),
	}
	c.moveID = w.On(view.PointerMove, c.onPointerMove)
	c.upID = w.On(view.PointerUp, c.onPointerUp)
}

func (c *Controller) onPointerMove(ev view.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dragging || c.boundOn == nil {
		return
	}
	c.boundOn.SetScrollLeft(c.drag.scrollLeft0 + (c.drag.anchorX - ev.X))
	c.boundOn.SetScrollTop(c.drag.scrollTop0 + (c.drag.anchorY - ev.Y))
}

func (c *Controller) onPointerUp(view.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endDragLocked()
}

// endDragLocked clears the dragging flag and removes exactly the session's
// move/up listeners.
func (c *Controller) endDragLocked() {
	c.dragging = false
	c.drag = dragState{}
	if c.boundOn != nil {
		c.boundOn.Off(c.moveID)
		c.boundOn.Off(c.upID)
	}
	c.moveID, c.upID = 0, 0
}

// Dragging reports whether a drag session is active.
func (c *Controller) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging
}

// ScrollBy pans the mounted wrapper by dx, dy pixels. It reports false when
// nothing with a page list is mounted.
func (c *Controller) ScrollBy(dx, dy float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.wrapper == nil || !c.wrapper.HasPageList() {
		return false
	}
	c.wrapper.SetScrollLeft(c.wrapper.ScrollLeft() + dx)
	c.wrapper.SetScrollTop(c.wrapper.ScrollTop() + dy)
	return true
}
