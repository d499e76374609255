package render

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/pdfview/internal/preview"
	statepkg "github.com/kk-code-lab/pdfview/internal/state"
	textutil "github.com/kk-code-lab/pdfview/internal/textutil"
)

// YankFlashDuration is how long the status line confirms a copy.
const YankFlashDuration = 1500 * time.Millisecond

const headerTitle = "pdfview"

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes

	layoutMu   sync.Mutex
	lastLayout Layout
	haveLayout bool
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// LastLayout returns the layout of the previous frame.
func (r *Renderer) LastLayout() (Layout, bool) {
	r.layoutMu.Lock()
	defer r.layoutMu.Unlock()
	return r.lastLayout, r.haveLayout
}

// Render draws the entire UI. snap must stay consistent for the duration of
// the call, so callers render from inside preview.Controller.Inspect.
func (r *Renderer) Render(state *statepkg.AppState, snap preview.Snapshot) {
	r.screen.Clear()
	w, h := r.screen.Size()

	layout := ComputeLayout(w, h)
	r.layoutMu.Lock()
	r.lastLayout, r.haveLayout = layout, true
	r.layoutMu.Unlock()

	if state != nil && state.HelpVisible {
		r.drawHelpOverlay(state, w, h)
		r.screen.Show()
		return
	}

	r.drawHeader(state, snap, w)
	r.drawPages(snap, layout)
	if h > 1 {
		r.drawStatusLine(state, snap, w, h)
	}
	r.screen.Show()
}

// drawHeader renders the top bar: title, then the current source.
func (r *Renderer) drawHeader(state *statepkg.AppState, snap preview.Snapshot, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	endX := r.drawTextLine(0, 0, w, headerTitle, headerStyle)

	source := snap.Source
	if state != nil && state.Source != "" {
		source = state.Source
	}
	if name := textutil.DisplayName(source); name != "" && endX < w {
		endX = r.drawTextLine(endX, 0, w-endX, " › ", headerStyle)
		if endX < w {
			name = r.truncateTextToWidth(name, w-endX)
			endX = r.drawTextLine(endX, 0, w-endX, name, headerStyle.Bold(true))
		}
	}

	for x := endX; x < w; x++ {
		r.screen.SetContent(x, 0, ' ', nil, headerStyle)
	}
}

func (r *Renderer) drawStatusLine(state *statepkg.AppState, snap preview.Snapshot, w, h int) {
	y := h - 1
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}

	hint := " ? help "
	hintWidth := r.measureTextWidth(hint)
	available := w - hintWidth
	if available < 0 {
		available = w
		hint = ""
	}

	x := 0
	if state != nil && !state.LastYankTime.IsZero() && time.Since(state.LastYankTime) < YankFlashDuration {
		flash := tcell.StyleDefault.Background(r.theme.FlashBg).Foreground(r.theme.FlashFg)
		x = r.drawTextLine(x, y, available, " copied ", flash)
		x = r.drawTextLine(x, y, available-x, " ", style)
	}

	if state != nil && state.LastError != nil {
		msg := "error: " + textutil.SanitizeTerminalText(state.LastError.Error())
		msg = r.truncateTextToWidth(msg, available-x)
		r.drawTextLine(x, y, available-x, msg, style.Foreground(r.theme.ErrorFg))
	} else {
		text := r.truncateTextToWidth(formatStatus(state, snap), available-x)
		r.drawTextLine(x, y, available-x, text, style)
	}

	if hint != "" {
		r.drawTextLine(w-hintWidth, y, hintWidth, hint, style.Foreground(r.theme.AccentFg))
	}
}
