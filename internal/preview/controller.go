// Package preview drives a multi-page document preview: it loads the
// document, mounts one canvas per page into a container, keeps the canvases
// painted at the current zoom, and handles drag-to-pan and resize.
package preview

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/kk-code-lab/pdfview/internal/document"
	"github.com/kk-code-lab/pdfview/internal/engine"
	"github.com/kk-code-lab/pdfview/internal/throttle"
	"github.com/kk-code-lab/pdfview/internal/view"
)

var (
	// ErrDestroyed is returned by loads requested after Destroy.
	ErrDestroyed = errors.New("preview: controller destroyed")
	// ErrSuperseded is returned by a load whose result was dropped because a
	// newer load or Destroy started after it.
	ErrSuperseded = errors.New("preview: load superseded")

	errNoEngine = errors.New("no rendering engine configured")
)

// Phase is the controller lifecycle state.
type Phase int

const (
	PhaseUnloaded Phase = iota
	PhaseLoading
	PhaseReady
	PhaseDestroyed
)

func (p Phase) String() string {
	switch p {
	case PhaseUnloaded:
		return "unloaded"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Controller owns the document state, the current scale and the mounted
// wrapper. It is safe for concurrent use; callbacks run without the
// controller lock held, so they may call back into it.
type Controller struct {
	opts   Options
	loader *document.Loader
	logger *slog.Logger
	resize *throttle.Limiter

	mu         sync.Mutex
	phase      Phase
	source     string
	scale      float64
	realScale  float64
	doc        *document.State
	loaded     bool
	wrapper    *view.Wrapper
	generation uint64

	eventsBound bool
	boundOn     *view.Wrapper
	downID      view.ListenerID
	resizeID    view.ListenerID

	dragging bool
	drag     dragState
	moveID   view.ListenerID
	upID     view.ListenerID
}

// New builds a controller. Nothing is loaded until Init.
func New(opts Options) *Controller {
	opts = opts.withDefaults()
	var eng engine.Engine = missingEngine{}
	if opts.Engine != nil {
		eng = opts.Engine
	}
	c := &Controller{
		opts:   opts,
		logger: opts.Logger,
		source: opts.Source,
		scale:  opts.InitialScale,
	}
	c.loader = document.NewLoader(eng, opts.PageConcurrency, opts.OnProgress, opts.Logger)
	c.resize = throttle.New(c.handleResize, opts.ResizeCooldown, false)
	return c
}

// Init loads the configured source and, on success, mounts and paints it.
func (c *Controller) Init(ctx context.Context) error {
	c.mu.Lock()
	if c.phase == PhaseDestroyed {
		c.mu.Unlock()
		return ErrDestroyed
	}
	src := c.source
	c.mu.Unlock()
	return c.load(ctx, src)
}

// ChangeSource replaces the source and reloads. The current document stays
// mounted until the new one has loaded; on failure it is left as it was.
func (c *Controller) ChangeSource(ctx context.Context, locator string) error {
	c.mu.Lock()
	if c.phase == PhaseDestroyed {
		c.mu.Unlock()
		return ErrDestroyed
	}
	c.source = locator
	c.mu.Unlock()
	return c.load(ctx, locator)
}

func (c *Controller) load(ctx context.Context, src string) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.phase = PhaseLoading
	c.mu.Unlock()

	c.logger.Info("loading document", "source", src)
	state, err := c.loader.Load(ctx, src)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		c.logger.Debug("dropping stale load", "source", src)
		if state != nil {
			_ = state.Info.Close(context.WithoutCancel(ctx))
		}
		return ErrSuperseded
	}

	if err != nil {
		if c.loaded {
			c.phase = PhaseReady
		} else {
			c.phase = PhaseUnloaded
			if c.wrapper == nil {
				c.mountLocked(false)
			}
		}
		c.mu.Unlock()
		c.logger.Error("document load failed", "source", src, "err", err)
		c.opts.OnError(err)
		return err
	}

	previous := c.doc
	c.doc = state
	c.loaded = true
	c.phase = PhaseReady
	if c.wrapper != nil {
		c.unbindEventsLocked()
		c.opts.Container.Remove(c.wrapper)
		c.wrapper = nil
	}
	c.mountLocked(false)
	c.bindEventsLocked()
	renderErr := c.refreshAllLocked(0, false)
	c.mu.Unlock()

	if previous != nil && previous.Info != nil && previous.Info != state.Info {
		if err := previous.Info.Close(context.WithoutCancel(ctx)); err != nil {
			c.logger.Warn("releasing previous document", "source", previous.Source, "err", err)
		}
	}

	if renderErr != nil {
		c.opts.OnError(renderErr)
		return renderErr
	}
	c.logger.Info("document ready", "source", src, "pages", state.NumPages())
	c.opts.OnRender()
	c.opts.OnLoadAll(c)
	return nil
}

// IsValid reports whether a paintable document is loaded.
func (c *Controller) IsValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isValidLocked()
}

func (c *Controller) isValidLocked() bool {
	return c.loaded && c.doc.Valid()
}

// RenderedDocument builds a fresh wrapper for the current state: one page
// item per page when valid, an empty placeholder otherwise.
func (c *Controller) RenderedDocument() *view.Wrapper {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderedLocked()
}

func (c *Controller) renderedLocked() *view.Wrapper {
	if !c.isValidLocked() {
		return view.NewErrorWrapper()
	}
	return view.NewWrapper(c.doc.NumPages())
}

// Mount appends a freshly built wrapper to the container, clearing the
// container first when replace is set, and returns it.
func (c *Controller) Mount(replace bool) *view.Wrapper {
	c.mu.Lock()
	defer c.mu.Unlock()
	rebind := c.eventsBound
	if rebind {
		c.unbindEventsLocked()
	}
	w := c.mountLocked(replace)
	if rebind {
		c.bindEventsLocked()
	}
	return w
}

func (c *Controller) mountLocked(replace bool) *view.Wrapper {
	if replace {
		c.opts.Container.Clear()
	}
	w := c.renderedLocked()
	c.opts.Container.Append(w)
	c.wrapper = w
	return w
}

// Navigate scrolls the wrapper so page n sits at the top. It reports false
// and does nothing when no document is loaded or n is out of range.
func (c *Controller) Navigate(n int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isValidLocked() || c.wrapper == nil {
		return false
	}
	if n < 1 || n > c.doc.NumPages() {
		return false
	}
	item := c.wrapper.Item(n)
	if item == nil {
		return false
	}
	c.wrapper.SetScrollTop(c.wrapper.OffsetTop(item))
	return true
}

// Destroy unbinds listeners, unmounts the wrapper, releases the document and
// clears state. Calling it again is a no-op.
func (c *Controller) Destroy(ctx context.Context) error {
	c.mu.Lock()
	if c.phase == PhaseDestroyed {
		c.mu.Unlock()
		return nil
	}
	c.generation++
	c.unbindEventsLocked()
	if c.wrapper != nil {
		c.opts.Container.Remove(c.wrapper)
		c.wrapper = nil
	}
	doc := c.doc
	c.doc = nil
	c.loaded = false
	c.phase = PhaseDestroyed
	c.mu.Unlock()

	if doc == nil || doc.Info == nil {
		return nil
	}
	c.logger.Debug("releasing document", "source", doc.Source)
	return doc.Info.Close(ctx)
}

// Snapshot is a consistent read-only view handed to Inspect.
type Snapshot struct {
	Phase     Phase
	Source    string
	Scale     float64
	RealScale float64
	NumPages  int
	Valid     bool
	Dragging  bool
	// Wrapper is the mounted wrapper, nil before the first mount or after Destroy.
	Wrapper *view.Wrapper
}

// Inspect calls fn with the controller locked. fn must not call back into
// the controller.
func (c *Controller) Inspect(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(Snapshot{
		Phase:     c.phase,
		Source:    c.source,
		Scale:     c.scale,
		RealScale: c.realScale,
		NumPages:  c.doc.NumPages(),
		Valid:     c.isValidLocked(),
		Dragging:  c.dragging,
		Wrapper:   c.wrapper,
	})
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Controller) Source() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.source
}

// Scale is the nominal zoom, always within [geometry.MinScale, geometry.MaxScale]
// once a render has run.
func (c *Controller) Scale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scale
}

// RealScale is the fit-to-width scale used by the last draw.
func (c *Controller) RealScale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.realScale
}

// Wrapper returns the mounted wrapper.
func (c *Controller) Wrapper() *view.Wrapper {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wrapper
}

// Pages returns a copy of the loaded page map, nil when nothing is loaded.
func (c *Controller) Pages() map[int]engine.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil {
		return nil
	}
	pages := make(map[int]engine.Page, len(c.doc.Pages))
	for n, p := range c.doc.Pages {
		pages[n] = p
	}
	return pages
}

func (c *Controller) bindEventsLocked() {
	c.unbindEventsLocked()
	if c.wrapper != nil {
		c.boundOn = c.wrapper
		c.downID = c.wrapper.On(view.PointerDown, c.onPointerDown)
	}
	if *c.opts.AutoBindResize {
		c.resizeID = c.opts.Window.On(view.Resize, func(view.Event) { c.resize.Call() })
	}
	c.eventsBound = true
	c.logger.Debug("listeners bound", "resize", *c.opts.AutoBindResize)
}

func (c *Controller) unbindEventsLocked() {
	c.endDragLocked()
	if c.boundOn != nil {
		c.boundOn.Off(c.downID)
		c.boundOn = nil
		c.downID = 0
	}
	if c.resizeID != 0 {
		c.opts.Window.Off(c.resizeID)
		c.resizeID = 0
	}
	c.resize.Stop()
	c.eventsBound = false
}

func (c *Controller) handleResize() {
	if err := c.Refresh(); err != nil {
		c.opts.OnError(err)
	}
}

type missingEngine struct{}

func (missingEngine) Open(context.Context, string) (engine.Document, error) {
	return nil, errNoEngine
}
