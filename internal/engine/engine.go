// Package engine describes the document rendering engine the previewer
// drives: something that opens a locator into a multi-page document whose
// pages know their geometry and can paint themselves into a pixel buffer.
package engine

import (
	"context"
	"image/draw"
)

// Viewport is a page's pixel-space box at a given scale.
type Viewport struct {
	Width  float64
	Height float64
	Scale  float64
}

// Engine opens documents.
type Engine interface {
	Open(ctx context.Context, locator string) (Document, error)
}

// Document is an opened multi-page document handle.
type Document interface {
	NumPages() int
	// Page fetches the 1-based page n. Implementations must allow concurrent calls.
	Page(ctx context.Context, n int) (Page, error)
	// Close releases the engine resources held by the document.
	Close(ctx context.Context) error
}

// Page is one loaded page.
type Page interface {
	Number() int
	Viewport(scale float64) Viewport
	// Render paints the page at vp into dst, which is sized to vp.
	Render(dst draw.Image, vp Viewport) error
}
