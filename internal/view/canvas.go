package view

import (
	"image"
	"image/draw"
	"sync"
)

// Canvas is a page's render target: a pixel buffer sized to the last
// viewport drawn into it.
type Canvas struct {
	mu  sync.RWMutex
	img *image.RGBA
}

// NewCanvas returns an empty 0x0 canvas.
func NewCanvas() *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rectangle{})}
}

// Resize replaces the buffer with a cleared one of w x h pixels.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	c.mu.Lock()
	c.img = img
	c.mu.Unlock()
}

func (c *Canvas) Width() int  { return c.Image().Bounds().Dx() }
func (c *Canvas) Height() int { return c.Image().Bounds().Dy() }

// Context is the drawing surface handed to the engine.
func (c *Canvas) Context() draw.Image { return c.Image() }

// Image exposes the buffer for display and export.
func (c *Canvas) Image() *image.RGBA {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.img
}
