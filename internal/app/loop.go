package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/pdfview/internal/config"
	"github.com/kk-code-lab/pdfview/internal/preview"
	"github.com/kk-code-lab/pdfview/internal/sources"
	statepkg "github.com/kk-code-lab/pdfview/internal/state"
	"github.com/kk-code-lab/pdfview/internal/ui/input"
	renderui "github.com/kk-code-lab/pdfview/internal/ui/render"
	"github.com/kk-code-lab/pdfview/internal/view"
	"github.com/kk-code-lab/pdfview/internal/watch"
)

// wheelStep is the pixel distance of one mouse wheel notch.
const wheelStep = 6

func NewApplication(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := discardIfNil(opts.Logger)

	list := sources.NewList(opts.Sources)
	if list.Len() == 0 {
		return nil, errNoSources
	}
	fixedWidth, fixed, err := cfg.Width()
	if err != nil {
		return nil, err
	}
	if !fixed {
		fixedWidth = 0
	}

	screen := opts.Screen
	if screen == nil {
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, err
		}
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	clipboardCmd, clipboardAvail := detectClipboard()
	openerCmd, openerAvail := detectOpener()

	actionCh := make(chan statepkg.Action, 32)
	ctx, cancel := context.WithCancel(context.Background())

	app := &Application{
		screen:         screen,
		reducer:        statepkg.NewStateReducer(),
		renderer:       renderui.NewRenderer(screen),
		input:          input.NewInputHandler(actionCh),
		actionCh:       actionCh,
		box:            view.NewBox(0, 0),
		window:         view.NewWindow(),
		sources:        list,
		logger:         logger,
		fixedWidth:     fixedWidth,
		firstLoad:      true,
		ctx:            ctx,
		cancel:         cancel,
		clipboardCmd:   clipboardCmd,
		clipboardAvail: clipboardAvail,
		openerCmd:      openerCmd,
	}

	if cfg.Watch && !sources.IsRemote(list.Current()) {
		w, err := watch.New(list.Current(), cfg.ResizeCooldown, func() {
			app.state.Dispatch(statepkg.SourceChangedAction{})
		}, logger)
		if err != nil {
			logger.Warn("file watching disabled", "err", err)
		} else {
			app.watcher = w
		}
	}

	state := newInitialState(list, clipboardAvail, openerAvail, app.watcher != nil)
	state.SetDispatch(func(action statepkg.Action) {
		select {
		case actionCh <- action:
		default:
			go func() { actionCh <- action }()
		}
	})
	app.state = state
	app.input.SetState(state)

	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h
	app.resizeViewport(w, h, false)

	app.ctrl = preview.New(preview.Options{
		Container:       app.box,
		Source:          list.Current(),
		AutoBindResize:  preview.Bool(cfg.AutoBindResize),
		InitialScale:    cfg.InitialScale,
		Engine:          opts.Engine,
		Window:          app.window,
		ResizeCooldown:  cfg.ResizeCooldown,
		PageConcurrency: cfg.PageConcurrency,
		OnProgress: func(settled, total int) {
			state.Dispatch(statepkg.LoadProgressAction{Settled: settled, Total: total})
		},
		OnRender: func() { state.Dispatch(statepkg.RenderedAction{}) },
		OnError: func(err error) {
			state.Dispatch(statepkg.ErrorAction{Err: err})
		},
		Logger: logger,
	})
	return app, nil
}

func (app *Application) Run() {
	if app.watcher != nil {
		go func() {
			if err := app.watcher.Run(app.ctx); err != nil && !errors.Is(err, context.Canceled) {
				app.state.Dispatch(statepkg.ErrorAction{Err: err})
			}
		}()
	}
	app.startLoad()

	app.render()
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	const animationInterval = 250 * time.Millisecond
	var animationTimer *time.Timer
	var animationCh <-chan time.Time

	startAnimation := func() {
		if animationTimer == nil {
			animationTimer = time.NewTimer(animationInterval)
		} else {
			if !animationTimer.Stop() {
				select {
				case <-animationTimer.C:
				default:
				}
			}
			animationTimer.Reset(animationInterval)
		}
		animationCh = animationTimer.C
	}

	stopAnimation := func() {
		if animationTimer == nil {
			return
		}
		if !animationTimer.Stop() {
			select {
			case <-animationTimer.C:
			default:
			}
		}
		animationCh = nil
	}

	for !app.shouldQuit {
		if renderPending {
			app.render()
			renderPending = false
		}

		if app.shouldAnimate() {
			startAnimation()
		} else {
			stopAnimation()
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-animationCh:
			renderPending = true
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}

	stopAnimation()
}

// render draws one frame from a consistent controller snapshot.
func (app *Application) render() {
	app.ctrl.Inspect(func(snap preview.Snapshot) {
		app.renderer.Render(app.state, snap)
	})
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventResize:
		app.screen.Sync()
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventMouse:
		return app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse turns primary-button drags into pointer events on the mounted
// wrapper and the wheel into scrolling.
func (app *Application) handleMouse(ev *tcell.EventMouse) bool {
	if app.state == nil || app.state.HelpVisible {
		return false
	}
	layout, ok := app.renderer.LastLayout()
	if !ok {
		return false
	}

	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		return app.ctrl.ScrollBy(0, -wheelStep)
	case buttons&tcell.WheelDown != 0:
		return app.ctrl.ScrollBy(0, wheelStep)
	case buttons&tcell.WheelLeft != 0:
		return app.ctrl.ScrollBy(-wheelStep, 0)
	case buttons&tcell.WheelRight != 0:
		return app.ctrl.ScrollBy(wheelStep, 0)
	}

	wrapper := app.ctrl.Wrapper()
	if wrapper == nil {
		app.mouseDown = false
		return false
	}

	x, y := ev.Position()
	if buttons&tcell.Button1 == 0 {
		if !app.mouseDown {
			return false
		}
		app.mouseDown = false
		wrapper.Dispatch(view.Event{Type: view.PointerUp, X: float64(x), Y: float64(2 * (y - layout.PageTop))})
		return true
	}

	if !app.mouseDown {
		px, py, inside := layout.ToPixel(x, y)
		if !inside {
			return false
		}
		app.mouseDown = true
		wrapper.Dispatch(view.Event{Type: view.PointerDown, X: px, Y: py})
		return true
	}

	// Moves keep reporting outside the page area so a drag can overshoot.
	wrapper.Dispatch(view.Event{Type: view.PointerMove, X: float64(x), Y: float64(2 * (y - layout.PageTop))})
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

// shouldAnimate keeps frames coming until the copy flash has expired.
func (app *Application) shouldAnimate() bool {
	if app.state == nil || app.state.LastYankTime.IsZero() {
		return false
	}
	return time.Since(app.state.LastYankTime) < renderui.YankFlashDuration+time.Second
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	}

	return app.handleAppAction(action)
}

func (app *Application) handleAppAction(action statepkg.Action) bool {
	switch a := action.(type) {
	case statepkg.ZoomInAction:
		app.runAsync(app.ctrl.Enlarge)
		return false
	case statepkg.ZoomOutAction:
		app.runAsync(app.ctrl.Narrow)
		return false
	case statepkg.ReloadAction, statepkg.SourceChangedAction:
		app.startLoad()
		return true
	case statepkg.NextSourceAction:
		if app.sources.Len() < 2 {
			return false
		}
		app.sources.Next()
		app.startLoad()
		return true
	case statepkg.PrevSourceAction:
		if app.sources.Len() < 2 {
			return false
		}
		app.sources.Prev()
		app.startLoad()
		return true
	case statepkg.GoToPageAction:
		return app.goToPage(a.Page)
	case statepkg.FirstPageAction:
		return app.ctrl.Navigate(1)
	case statepkg.LastPageAction:
		n := 0
		app.ctrl.Inspect(func(snap preview.Snapshot) { n = snap.NumPages })
		return app.ctrl.Navigate(n)
	case statepkg.ScrollAction:
		return app.ctrl.ScrollBy(float64(a.Cols), float64(2*a.Rows))
	case statepkg.ScrollPageAction:
		rows := app.state.PageAreaRows() - 1
		if rows < 1 {
			rows = 1
		}
		return app.ctrl.ScrollBy(0, float64(2*rows*a.Direction))
	case statepkg.PageInputSubmitAction:
		n, ok := app.state.PendingPage()
		app.state.PageInput = ""
		if ok {
			app.goToPage(n)
		}
		return true
	case statepkg.YankSourceAction:
		return app.handleClipboard()
	case statepkg.OpenExternalAction:
		return app.handleOpenExternal()
	case statepkg.ResizeAction:
		if _, err := app.reducer.Reduce(app.state, action); err != nil {
			app.state.LastError = err
			return true
		}
		app.resizeViewport(a.Width, a.Height, true)
		return true
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
	}
	return true
}

func (app *Application) goToPage(n int) bool {
	if !app.ctrl.IsValid() {
		return false
	}
	if !app.ctrl.Navigate(n) {
		app.state.LastError = fmt.Errorf("no page %d", n)
	}
	return true
}

// resizeViewport sizes the container to the page area and, when notify is
// set, lets the controller know through a window resize event.
func (app *Application) resizeViewport(w, h int, notify bool) {
	pw, ph := renderui.ComputeLayout(w, h).PixelSize()
	if app.fixedWidth > 0 {
		pw = app.fixedWidth
	}
	app.box.SetSize(pw, ph)
	if notify {
		app.window.Dispatch(view.Event{Type: view.Resize, Width: pw, Height: ph})
	}
}

// startLoad (re)loads the current source in the background. The result comes
// back as a LoadFinishedAction unless a newer load superseded it.
func (app *Application) startLoad() {
	src := app.sources.Current()
	first := app.firstLoad
	app.firstLoad = false

	if _, err := app.reducer.Reduce(app.state, statepkg.LoadStartedAction{Source: src, Index: app.sources.Index()}); err != nil {
		app.state.LastError = err
		return
	}
	if app.watcher != nil && !sources.IsRemote(src) && !sameFile(app.watcher.Target(), src) {
		if err := app.watcher.Retarget(src); err != nil {
			app.logger.Warn("watch retarget failed", "source", src, "err", err)
		}
	}

	app.loads.Add(1)
	go func() {
		defer app.loads.Done()
		var err error
		if first {
			err = app.ctrl.Init(app.ctx)
		} else {
			err = app.ctrl.ChangeSource(app.ctx, src)
		}
		if errors.Is(err, preview.ErrSuperseded) || errors.Is(err, preview.ErrDestroyed) {
			return
		}
		app.state.Dispatch(statepkg.LoadFinishedAction{Source: src, Err: err})
	}()
}

func sameFile(abs, path string) bool {
	p, err := filepath.Abs(path)
	return err == nil && p == abs
}

// runAsync runs a repaint off the event loop; errors land in the status line.
func (app *Application) runAsync(fn func() error) {
	app.loads.Add(1)
	go func() {
		defer app.loads.Done()
		if err := fn(); err != nil {
			app.state.Dispatch(statepkg.ErrorAction{Err: err})
		}
	}()
}
