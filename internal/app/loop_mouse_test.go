package app

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestHandleMouseDragPansPages(t *testing.T) {
	app := loadedApp(t)
	app.render()
	w := app.ctrl.Wrapper()
	w.SetScrollTop(20)

	if !app.handleMouse(tcell.NewEventMouse(5, 10, tcell.Button1, tcell.ModNone)) {
		t.Fatal("press inside the page area should start a drag")
	}
	if !app.ctrl.Dragging() {
		t.Fatal("expected drag session")
	}

	// Dragging up two rows moves content up by four pixels.
	app.handleMouse(tcell.NewEventMouse(5, 8, tcell.Button1, tcell.ModNone))
	if got := w.ScrollTop(); got != 24 {
		t.Fatalf("expected scrollTop 24, got %v", got)
	}

	// Moving back down past the anchor scrolls the other way.
	app.handleMouse(tcell.NewEventMouse(5, 12, tcell.Button1, tcell.ModNone))
	if got := w.ScrollTop(); got != 16 {
		t.Fatalf("expected scrollTop 16, got %v", got)
	}

	app.handleMouse(tcell.NewEventMouse(5, 12, tcell.ButtonNone, tcell.ModNone))
	if app.ctrl.Dragging() {
		t.Fatal("expected drag to end on release")
	}

	app.handleMouse(tcell.NewEventMouse(5, 2, tcell.ButtonNone, tcell.ModNone))
	if got := w.ScrollTop(); got != 16 {
		t.Fatalf("moves after release should not scroll, got %v", got)
	}
}

func TestHandleMouseIgnoresPressOutsidePages(t *testing.T) {
	app := loadedApp(t)
	app.render()

	for _, y := range []int{0, 24} {
		if app.handleMouse(tcell.NewEventMouse(5, y, tcell.Button1, tcell.ModNone)) {
			t.Fatalf("press on row %d should be ignored", y)
		}
		if app.ctrl.Dragging() {
			t.Fatalf("press on row %d started a drag", y)
		}
	}
}

func TestHandleMouseWheelScrolls(t *testing.T) {
	app := loadedApp(t)
	app.render()
	w := app.ctrl.Wrapper()

	app.handleMouse(tcell.NewEventMouse(5, 5, tcell.WheelDown, tcell.ModNone))
	app.handleMouse(tcell.NewEventMouse(5, 5, tcell.WheelDown, tcell.ModNone))
	if got := w.ScrollTop(); got != 2*wheelStep {
		t.Fatalf("expected scrollTop %d, got %v", 2*wheelStep, got)
	}
	app.handleMouse(tcell.NewEventMouse(5, 5, tcell.WheelUp, tcell.ModNone))
	if got := w.ScrollTop(); got != wheelStep {
		t.Fatalf("expected scrollTop %d, got %v", wheelStep, got)
	}
}

func TestHandleMouseIgnoredWhileHelpVisible(t *testing.T) {
	app := loadedApp(t)
	app.render()
	app.state.HelpVisible = true

	if app.handleMouse(tcell.NewEventMouse(5, 10, tcell.Button1, tcell.ModNone)) {
		t.Fatal("expected mouse to be ignored under the help overlay")
	}
	if app.ctrl.Dragging() {
		t.Fatal("help overlay should block drags")
	}
}
