// Package enginetest provides an in-memory engine.Engine for tests.
package enginetest

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kk-code-lab/pdfview/internal/engine"
)

// PageSpec describes one fake page.
type PageSpec struct {
	Width  float64
	Height float64
	Color  color.RGBA
	Err    error         // returned by Document.Page
	Delay  time.Duration // before Document.Page resolves
	Draw   error         // returned by Page.Render
}

// Engine serves documents registered by locator.
type Engine struct {
	mu       sync.Mutex
	docs     map[string][]PageSpec
	openErr  map[string]error
	gates    map[string]chan struct{}
	opened   []*Document
	OpenHook func(locator string)
}

// New returns an empty fake engine.
func New() *Engine {
	return &Engine{
		docs:    make(map[string][]PageSpec),
		openErr: make(map[string]error),
		gates:   make(map[string]chan struct{}),
	}
}

// Add registers a document.
func (e *Engine) Add(locator string, pages ...PageSpec) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.docs[locator] = pages
	return e
}

// AddUniform registers a document of n identical pages.
func (e *Engine) AddUniform(locator string, n int, width, height float64) *Engine {
	pages := make([]PageSpec, n)
	for i := range pages {
		pages[i] = PageSpec{Width: width, Height: height, Color: color.RGBA{R: uint8(40 * (i + 1)), A: 255}}
	}
	return e.Add(locator, pages...)
}

// FailOpen makes Open fail for locator.
func (e *Engine) FailOpen(locator string, err error) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.openErr[locator] = err
	return e
}

// Gate blocks Open for locator until the returned function is called.
func (e *Engine) Gate(locator string) (release func()) {
	ch := make(chan struct{})
	e.mu.Lock()
	e.gates[locator] = ch
	e.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// Opened returns every document handed out so far.
func (e *Engine) Opened() []*Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Document(nil), e.opened...)
}

// Open implements engine.Engine.
func (e *Engine) Open(ctx context.Context, locator string) (engine.Document, error) {
	if e.OpenHook != nil {
		e.OpenHook(locator)
	}
	e.mu.Lock()
	gate := e.gates[locator]
	e.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.openErr[locator]; err != nil {
		return nil, err
	}
	specs, ok := e.docs[locator]
	if !ok {
		return nil, fmt.Errorf("no such document: %s", locator)
	}
	doc := &Document{Locator: locator, specs: specs}
	e.opened = append(e.opened, doc)
	return doc, nil
}

// Document is a fake engine.Document.
type Document struct {
	Locator string
	specs   []PageSpec

	closes   atomic.Int32
	inFlight atomic.Int32
	maxLive  atomic.Int32
}

// Closes reports how many times Close was called.
func (d *Document) Closes() int { return int(d.closes.Load()) }

// MaxInFlight reports the highest number of concurrent Page calls observed.
func (d *Document) MaxInFlight() int { return int(d.maxLive.Load()) }

func (d *Document) NumPages() int { return len(d.specs) }

func (d *Document) Page(ctx context.Context, n int) (engine.Page, error) {
	live := d.inFlight.Add(1)
	defer d.inFlight.Add(-1)
	for {
		prev := d.maxLive.Load()
		if live <= prev || d.maxLive.CompareAndSwap(prev, live) {
			break
		}
	}

	if n < 1 || n > len(d.specs) {
		return nil, fmt.Errorf("page %d out of range", n)
	}
	spec := d.specs[n-1]
	if spec.Delay > 0 {
		select {
		case <-time.After(spec.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if spec.Err != nil {
		return nil, spec.Err
	}
	return &Page{number: n, spec: spec}, nil
}

func (d *Document) Close(context.Context) error {
	d.closes.Add(1)
	return nil
}

// Page is a fake engine.Page that paints a solid colour.
type Page struct {
	number  int
	spec    PageSpec
	renders atomic.Int32
}

// Renders reports how many times Render ran.
func (p *Page) Renders() int { return int(p.renders.Load()) }

func (p *Page) Number() int { return p.number }

func (p *Page) Viewport(scale float64) engine.Viewport {
	return engine.Viewport{Width: p.spec.Width * scale, Height: p.spec.Height * scale, Scale: scale}
}

func (p *Page) Render(dst draw.Image, _ engine.Viewport) error {
	p.renders.Add(1)
	if p.spec.Draw != nil {
		return p.spec.Draw
	}
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: p.spec.Color}, image.Point{}, draw.Src)
	return nil
}
