package app

import (
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/kk-code-lab/pdfview/internal/sources"
)

var commandBuilder = exec.Command

func (app *Application) handleClipboard() bool {
	if !app.clipboardAvail || len(app.clipboardCmd) == 0 {
		return false
	}
	text := clipboardText(app.state.Source, runtime.GOOS)
	cmd := commandBuilder(app.clipboardCmd[0], app.clipboardCmd[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		app.state.LastError = fmt.Errorf("clipboard command %s failed: %w", app.clipboardCmd[0], err)
		return true
	}
	app.state.LastYankTime = time.Now()
	return true
}

// clipboardText is what a yank copies: URLs verbatim, local paths made
// absolute in the platform's separator style.
func clipboardText(source string, goos string) string {
	if sources.IsRemote(source) {
		return source
	}
	if abs, err := filepath.Abs(source); err == nil {
		source = abs
	}
	return normalizeClipboardPath(source, goos)
}

func normalizeClipboardPath(inputPath string, goos string) string {
	if strings.EqualFold(goos, "windows") {
		cleaned := filepath.Clean(inputPath)
		return strings.ReplaceAll(cleaned, "/", `\`)
	}
	return path.Clean(filepath.ToSlash(inputPath))
}

func (app *Application) handleOpenExternal() bool {
	if !app.state.OpenerAvailable || len(app.openerCmd) == 0 {
		return false
	}
	if err := app.openInViewer(app.viewerArgs(app.state.Source)); err != nil {
		app.state.LastError = err
	}
	return true
}

func (app *Application) viewerArgs(source string) []string {
	args := make([]string, len(app.openerCmd)+1)
	copy(args, app.openerCmd)
	args[len(app.openerCmd)] = source
	return args
}

// openInViewer hands the terminal to the viewer until it exits. GUI openers
// such as xdg-open return at once.
func (app *Application) openInViewer(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no viewer command available")
	}
	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}
	defer func() {
		_ = flushConsoleInput()
		_ = app.screen.Resume()
		app.screen.Sync()
	}()

	app.logger.Debug("opening external viewer", "cmd", args[0])
	cmd := commandBuilder(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("viewer %s failed: %w", args[0], err)
	}
	return nil
}
