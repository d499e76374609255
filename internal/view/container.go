package view

import (
	"strconv"
	"sync"
)

// Container is the mount point a previewer attaches its wrapper to.
type Container interface {
	// Style returns a computed style value such as "640px" for "width".
	Style(name string) string
	Append(w *Wrapper)
	Remove(w *Wrapper) bool
	Clear()
	Children() []*Wrapper
}

// Box is a sized Container. Its size is the live layout read by the render
// pipeline; mounted wrappers get it as their client size.
type Box struct {
	mu       sync.Mutex
	width    float64
	height   float64
	children []*Wrapper
}

// NewBox returns an empty box of the given pixel size.
func NewBox(width, height float64) *Box {
	return &Box{width: width, height: height}
}

// SetSize changes the box size and propagates it to mounted wrappers.
func (b *Box) SetSize(width, height float64) {
	b.mu.Lock()
	b.width, b.height = width, height
	children := append([]*Wrapper(nil), b.children...)
	b.mu.Unlock()
	for _, w := range children {
		w.SetClientSize(width, height)
	}
}

// Size returns the box size in pixels.
func (b *Box) Size() (float64, float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *Box) Style(name string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch name {
	case "width":
		return formatPx(b.width)
	case "height":
		return formatPx(b.height)
	default:
		return ""
	}
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

func (b *Box) Append(w *Wrapper) {
	b.mu.Lock()
	b.children = append(b.children, w)
	width, height := b.width, b.height
	b.mu.Unlock()
	w.SetClientSize(width, height)
}

func (b *Box) Remove(w *Wrapper) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, c := range b.children {
		if c == w {
			b.children = append(b.children[:i:i], b.children[i+1:]...)
			return true
		}
	}
	return false
}

func (b *Box) Clear() {
	b.mu.Lock()
	b.children = nil
	b.mu.Unlock()
}

func (b *Box) Children() []*Wrapper {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Wrapper(nil), b.children...)
}
