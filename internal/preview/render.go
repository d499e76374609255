package preview

import (
	"errors"
	"fmt"

	"github.com/kk-code-lab/pdfview/internal/engine"
	"github.com/kk-code-lab/pdfview/internal/geometry"
	"github.com/kk-code-lab/pdfview/internal/view"
)

// Refresh repaints every mounted page at the current scale. It does nothing
// when no valid document is loaded.
func (c *Controller) Refresh() error {
	return c.refresh(0, false)
}

// RefreshScale repaints every page at scale s (clamped), which becomes the
// current scale.
func (c *Controller) RefreshScale(s float64) error {
	return c.refresh(s, true)
}

// Enlarge zooms in one step. A smaller nominal scale means a narrower
// provisional viewport and therefore a larger fit-to-width draw scale.
func (c *Controller) Enlarge() error {
	return c.zoom(-geometry.ZoomStep)
}

// Narrow zooms out one step.
func (c *Controller) Narrow() error {
	return c.zoom(geometry.ZoomStep)
}

// zoom steps the scale and repaints under one lock so concurrent steps
// all land.
func (c *Controller) zoom(delta float64) error {
	c.mu.Lock()
	valid := c.isValidLocked()
	err := c.refreshAllLocked(c.scale+delta, true)
	c.mu.Unlock()
	if valid && err == nil {
		c.opts.OnRender()
	}
	return err
}

func (c *Controller) refresh(s float64, override bool) error {
	c.mu.Lock()
	valid := c.isValidLocked()
	err := c.refreshAllLocked(s, override)
	c.mu.Unlock()
	if valid && err == nil {
		c.opts.OnRender()
	}
	return err
}

func (c *Controller) refreshAllLocked(s float64, override bool) error {
	if !c.isValidLocked() || c.wrapper == nil {
		return nil
	}
	var errs []error
	for _, item := range c.wrapper.Items() {
		page, ok := c.doc.Pages[item.PageNumber]
		if !ok {
			continue
		}
		if err := c.renderPageLocked(page, item.Canvas, s, override); err != nil {
			errs = append(errs, fmt.Errorf("rendering page %d: %w", item.PageNumber, err))
		}
	}
	// Canvas sizes changed; re-clamp the scroll position against them.
	c.wrapper.SetScrollTop(c.wrapper.ScrollTop())
	c.wrapper.SetScrollLeft(c.wrapper.ScrollLeft())
	return errors.Join(errs...)
}

// renderPageLocked paints page into target. The nominal scale only sizes a
// provisional viewport; the draw scale is re-derived so the page spans the
// container's current width.
func (c *Controller) renderPageLocked(page engine.Page, target *view.Canvas, s float64, override bool) error {
	if !override {
		s = c.scale
	}
	s = geometry.ClampScale(s)
	c.scale = s

	width := geometry.Dimension(c.opts.Container.Style("width"))
	provisional := page.Viewport(s)
	real := geometry.RealScale(width, provisional.Width)
	c.realScale = real
	if real <= 0 {
		target.Resize(0, 0)
		return nil
	}

	vp := page.Viewport(real)
	target.Resize(int(vp.Width), int(vp.Height))
	return page.Render(target.Context(), vp)
}
