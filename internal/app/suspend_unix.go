//go:build !windows

package app

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/pdfview/internal/state"
	"golang.org/x/sys/unix"
)

func (app *Application) suspendToShell() {
	// Return terminal control to the shell before stopping the process.
	_ = app.screen.Suspend()
	// Stop only this process, not the group: a wrapper shell in the same
	// group would lose `fg`.
	_ = unix.Kill(unix.Getpid(), unix.SIGTSTP)
}

func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		return false
	}
	app.screen.EnableMouse()
	app.screen.Sync()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		app.handleAppAction(statepkg.ResizeAction{Width: w, Height: h})
	}
	return true
}
