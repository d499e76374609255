package app

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/pdfview/internal/config"
	"github.com/kk-code-lab/pdfview/internal/engine/enginetest"
	statepkg "github.com/kk-code-lab/pdfview/internal/state"
)

// newLoopTestApp builds an application on an 80x25 simulation screen. Each
// page is 10px wide, so pages fit the 80px container at a draw scale of 8.
func newLoopTestApp(t *testing.T, eng *enginetest.Engine, srcs ...string) *Application {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ResizeCooldown = 10 * time.Millisecond
	cfg.Watch = false

	app, err := NewApplication(Options{
		Sources: srcs,
		Config:  cfg,
		Engine:  eng,
		Screen:  tcell.NewSimulationScreen(""),
	})
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

// waitForAction feeds dispatched actions through the loop until one of type T
// has been handled.
func waitForAction[T statepkg.Action](t *testing.T, app *Application) T {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case action := <-app.actionCh:
			app.handleAction(action)
			if a, ok := action.(T); ok {
				return a
			}
		case <-deadline:
			var zero T
			t.Fatalf("timed out waiting for %T", zero)
			return zero
		}
	}
}

func loadedApp(t *testing.T) *Application {
	t.Helper()
	eng := enginetest.New().AddUniform("a.pdf", 3, 10, 10).AddUniform("b.pdf", 2, 20, 10)
	app := newLoopTestApp(t, eng, "a.pdf", "b.pdf")
	app.startLoad()
	if a := waitForAction[statepkg.LoadFinishedAction](t, app); a.Err != nil {
		t.Fatalf("initial load failed: %v", a.Err)
	}
	return app
}

func nearly(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewApplicationRequiresSources(t *testing.T) {
	_, err := NewApplication(Options{Screen: tcell.NewSimulationScreen("")})
	if !errors.Is(err, errNoSources) {
		t.Fatalf("expected errNoSources, got %v", err)
	}
}

func TestNewApplicationRejectsBadWidth(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ContainerWidth = "wide"
	_, err := NewApplication(Options{Sources: []string{"a.pdf"}, Config: cfg, Screen: tcell.NewSimulationScreen("")})
	if err == nil {
		t.Fatal("expected container width error")
	}
}

func TestStartLoadMountsDocument(t *testing.T) {
	app := loadedApp(t)

	if app.state.Loading {
		t.Fatal("expected loading to finish")
	}
	if !app.ctrl.IsValid() {
		t.Fatal("expected a valid document")
	}
	if got := app.ctrl.RealScale(); got != 8 {
		t.Fatalf("expected fit scale 8, got %v", got)
	}
	w, h := app.box.Size()
	if w != 80 || h != 46 {
		t.Fatalf("expected 80x46 container, got %vx%v", w, h)
	}
}

func TestStartLoadReportsFailure(t *testing.T) {
	eng := enginetest.New().FailOpen("bad.pdf", errors.New("corrupt"))
	app := newLoopTestApp(t, eng, "bad.pdf")
	app.startLoad()

	a := waitForAction[statepkg.LoadFinishedAction](t, app)
	if a.Err == nil {
		t.Fatal("expected load error")
	}
	if app.state.LastError == nil || !strings.Contains(app.state.LastError.Error(), "corrupt") {
		t.Fatalf("expected load error in state, got %v", app.state.LastError)
	}
	if app.ctrl.IsValid() {
		t.Fatal("controller should not be valid after a failed load")
	}
}

func TestZoomActionsRepaintAsync(t *testing.T) {
	app := loadedApp(t)

	if app.handleAction(statepkg.ZoomInAction{}) {
		t.Fatal("zoom should redraw when the repaint lands, not immediately")
	}
	waitForAction[statepkg.RenderedAction](t, app)
	if !nearly(app.ctrl.Scale(), 0.8) {
		t.Fatalf("expected scale 0.8, got %v", app.ctrl.Scale())
	}

	app.handleAction(statepkg.ZoomOutAction{})
	waitForAction[statepkg.RenderedAction](t, app)
	if !nearly(app.ctrl.Scale(), 1) {
		t.Fatalf("expected scale 1, got %v", app.ctrl.Scale())
	}
}

func TestNextAndPrevSourceSwitchDocuments(t *testing.T) {
	app := loadedApp(t)

	app.handleAction(statepkg.NextSourceAction{})
	if !app.state.Loading || app.state.Source != "b.pdf" || app.state.SourceIndex != 1 {
		t.Fatalf("expected load of b.pdf to start, got %+v", app.state)
	}
	if a := waitForAction[statepkg.LoadFinishedAction](t, app); a.Source != "b.pdf" || a.Err != nil {
		t.Fatalf("unexpected load result %+v", a)
	}
	if got := app.ctrl.Source(); got != "b.pdf" {
		t.Fatalf("expected controller source b.pdf, got %q", got)
	}

	app.handleAction(statepkg.PrevSourceAction{})
	waitForAction[statepkg.LoadFinishedAction](t, app)
	if got := app.ctrl.Source(); got != "a.pdf" || app.state.SourceIndex != 0 {
		t.Fatalf("expected back on a.pdf, got %q (index %d)", got, app.state.SourceIndex)
	}
}

func TestSourceCyclingNeedsTwoSources(t *testing.T) {
	eng := enginetest.New().AddUniform("a.pdf", 1, 10, 10)
	app := newLoopTestApp(t, eng, "a.pdf")
	if app.handleAction(statepkg.NextSourceAction{}) {
		t.Fatal("expected no-op with a single source")
	}
}

func TestPageNavigationActions(t *testing.T) {
	app := loadedApp(t)
	w := app.ctrl.Wrapper()

	app.handleAction(statepkg.LastPageAction{})
	if got := w.ScrollTop(); got != 164 {
		t.Fatalf("expected last page at 164, got %v", got)
	}

	app.handleAction(statepkg.FirstPageAction{})
	if got := w.ScrollTop(); got != 0 {
		t.Fatalf("expected first page at 0, got %v", got)
	}

	app.state.PageInput = "2"
	app.handleAction(statepkg.PageInputSubmitAction{})
	if got := w.ScrollTop(); got != 82 {
		t.Fatalf("expected page 2 at 82, got %v", got)
	}
	if app.state.PageInput != "" {
		t.Fatalf("expected page input cleared, got %q", app.state.PageInput)
	}

	app.handleAction(statepkg.GoToPageAction{Page: 9})
	if app.state.LastError == nil || !strings.Contains(app.state.LastError.Error(), "no page 9") {
		t.Fatalf("expected out of range error, got %v", app.state.LastError)
	}
	if got := w.ScrollTop(); got != 82 {
		t.Fatalf("out of range navigation should not scroll, got %v", got)
	}
}

func TestScrollActions(t *testing.T) {
	app := loadedApp(t)
	w := app.ctrl.Wrapper()

	app.handleAction(statepkg.ScrollAction{Rows: 3})
	if got := w.ScrollTop(); got != 6 {
		t.Fatalf("expected 3 rows to scroll 6px, got %v", got)
	}

	app.handleAction(statepkg.ScrollPageAction{Direction: 1})
	if got := w.ScrollTop(); got != 50 {
		t.Fatalf("expected a page of 22 rows to scroll 44px more, got %v", got)
	}

	app.handleAction(statepkg.ScrollPageAction{Direction: -1})
	app.handleAction(statepkg.ScrollAction{Rows: -10})
	if got := w.ScrollTop(); got != 0 {
		t.Fatalf("expected scroll clamped at 0, got %v", got)
	}
}

func TestResizeActionRefitsPages(t *testing.T) {
	app := loadedApp(t)

	app.handleAction(statepkg.ResizeAction{Width: 40, Height: 12})
	if app.state.ScreenWidth != 40 || app.state.ScreenHeight != 12 {
		t.Fatalf("expected state size 40x12, got %dx%d", app.state.ScreenWidth, app.state.ScreenHeight)
	}
	waitForAction[statepkg.RenderedAction](t, app)

	if got := app.ctrl.RealScale(); got != 4 {
		t.Fatalf("expected fit scale 4 after resize, got %v", got)
	}
	if got := app.ctrl.Wrapper().Items()[0].Canvas.Width(); got != 40 {
		t.Fatalf("expected 40px canvas, got %d", got)
	}
}

func TestFixedContainerWidthIgnoresTerminalWidth(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ContainerWidth = "120px"
	cfg.Watch = false
	app, err := NewApplication(Options{
		Sources: []string{"a.pdf"},
		Config:  cfg,
		Engine:  enginetest.New().AddUniform("a.pdf", 1, 10, 10),
		Screen:  tcell.NewSimulationScreen(""),
	})
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	app.handleAction(statepkg.ResizeAction{Width: 30, Height: 10})
	if w, h := app.box.Size(); w != 120 || h != 16 {
		t.Fatalf("expected 120x16 container, got %vx%v", w, h)
	}
}

func TestQuitAction(t *testing.T) {
	app := loadedApp(t)
	if app.handleAction(statepkg.QuitAction{}) {
		t.Fatal("quit should not request a redraw")
	}
	if !app.shouldQuit {
		t.Fatal("expected shouldQuit")
	}
}

func TestUnknownActionSetsError(t *testing.T) {
	app := loadedApp(t)
	type bogus struct{}
	app.handleAction(bogus{})
	if app.state.LastError == nil {
		t.Fatal("expected unknown action error")
	}
}

func TestShouldAnimateDuringYankFlash(t *testing.T) {
	app := &Application{state: &statepkg.AppState{}}
	if app.shouldAnimate() {
		t.Fatal("expected no animation before a yank")
	}
	app.state.LastYankTime = time.Now()
	if !app.shouldAnimate() {
		t.Fatal("expected animation right after a yank")
	}
	app.state.LastYankTime = time.Now().Add(-time.Minute)
	if app.shouldAnimate() {
		t.Fatal("expected animation to stop once the flash expired")
	}
}
