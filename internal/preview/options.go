package preview

import (
	"log/slog"
	"time"

	"github.com/kk-code-lab/pdfview/internal/document"
	"github.com/kk-code-lab/pdfview/internal/engine"
	"github.com/kk-code-lab/pdfview/internal/logging"
	"github.com/kk-code-lab/pdfview/internal/view"
)

const (
	DefaultSource         = "compressed.tracemonkey-pldi-09.pdf"
	DefaultWidth          = 612
	DefaultHeight         = 792
	DefaultInitialScale   = 1.0
	DefaultResizeCooldown = 200 * time.Millisecond
)

// Options configures a Controller. Zero fields take the defaults above.
type Options struct {
	// Container is the mount point. Defaults to a DefaultWidth x DefaultHeight box.
	Container view.Container
	Source    string
	// AutoBindResize re-renders on Window resize events. Nil means true.
	AutoBindResize *bool
	OnLoadAll      func(*Controller)
	OnError        func(error)
	InitialScale   float64

	Engine engine.Engine
	// Window delivers resize events. Defaults to a window owned by the controller.
	Window          *view.Window
	ResizeCooldown  time.Duration
	PageConcurrency int
	OnProgress      document.ProgressFunc
	// OnRender runs after every completed repaint of the page canvases.
	OnRender func()
	Logger   *slog.Logger
}

// Bool returns a pointer to v, for Options.AutoBindResize.
func Bool(v bool) *bool {
	return &v
}

func (o Options) withDefaults() Options {
	if o.Container == nil {
		o.Container = view.NewBox(DefaultWidth, DefaultHeight)
	}
	if o.Source == "" {
		o.Source = DefaultSource
	}
	if o.AutoBindResize == nil {
		o.AutoBindResize = Bool(true)
	}
	if o.OnLoadAll == nil {
		o.OnLoadAll = func(*Controller) {}
	}
	if o.OnError == nil {
		o.OnError = func(error) {}
	}
	if o.InitialScale == 0 {
		o.InitialScale = DefaultInitialScale
	}
	if o.Window == nil {
		o.Window = view.NewWindow()
	}
	if o.ResizeCooldown <= 0 {
		o.ResizeCooldown = DefaultResizeCooldown
	}
	if o.OnRender == nil {
		o.OnRender = func() {}
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	return o
}
