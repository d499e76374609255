package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/pdfview/internal/config"
	"github.com/kk-code-lab/pdfview/internal/engine"
	"github.com/kk-code-lab/pdfview/internal/logging"
	"github.com/kk-code-lab/pdfview/internal/preview"
	"github.com/kk-code-lab/pdfview/internal/sources"
	statepkg "github.com/kk-code-lab/pdfview/internal/state"
	inputui "github.com/kk-code-lab/pdfview/internal/ui/input"
	renderui "github.com/kk-code-lab/pdfview/internal/ui/render"
	"github.com/kk-code-lab/pdfview/internal/view"
	"github.com/kk-code-lab/pdfview/internal/watch"
)

// Options configures NewApplication.
type Options struct {
	// Sources are expanded locators, previewed in order.
	Sources []string
	Config  *config.Config
	Engine  engine.Engine
	Logger  *slog.Logger
	// Screen replaces the terminal screen, for tests.
	Screen tcell.Screen
}

// Application represents the running app.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	shouldQuit bool

	ctrl       *preview.Controller
	box        *view.Box
	window     *view.Window
	sources    *sources.List
	watcher    *watch.Watcher
	logger     *slog.Logger
	fixedWidth float64
	firstLoad  bool

	ctx    context.Context
	cancel context.CancelFunc
	loads  sync.WaitGroup

	clipboardCmd   []string
	clipboardAvail bool
	openerCmd      []string

	mouseDown bool
	closeOnce sync.Once
	closeErr  error
}

var errNoSources = errors.New("no document to preview")

// Close cancels pending loads, releases the document and restores the terminal.
func (app *Application) Close() error {
	app.closeOnce.Do(func() {
		app.cancel()
		app.loads.Wait()
		var errs []error
		if app.watcher != nil {
			errs = append(errs, app.watcher.Close())
		}
		errs = append(errs, app.ctrl.Destroy(context.Background()))
		app.screen.Fini()
		app.closeErr = errors.Join(errs...)
	})
	return app.closeErr
}

// Controller exposes the preview controller driving the page area.
func (app *Application) Controller() *preview.Controller {
	return app.ctrl
}

func newInitialState(list *sources.List, clipboardAvail, openerAvail, watching bool) *statepkg.AppState {
	return &statepkg.AppState{
		Sources:            list.Items(),
		SourceIndex:        list.Index(),
		Source:             list.Current(),
		Watching:           watching,
		ClipboardAvailable: clipboardAvail,
		OpenerAvailable:    openerAvail,
	}
}

func discardIfNil(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return logging.Discard()
	}
	return logger
}
