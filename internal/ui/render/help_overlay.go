package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/pdfview/internal/state"
	textutil "github.com/kk-code-lab/pdfview/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(state *statepkg.AppState) []string {
	documents := []helpOverlayEntry{
		{keys: "r", desc: "Reload document"},
		{keys: "y", desc: "Yank source to clipboard"},
	}
	if state != nil && len(state.Sources) > 1 {
		documents = append([]helpOverlayEntry{
			{keys: "n / p", desc: "Next / previous document"},
		}, documents...)
	}
	if state == nil || state.OpenerAvailable {
		documents = append(documents, helpOverlayEntry{keys: "o", desc: "Open in external viewer ($PDFVIEWER)"})
	}

	sections := []helpOverlaySection{
		{
			title: "Navigation",
			entries: []helpOverlayEntry{
				{keys: "↑/↓ or k/j", desc: "Scroll"},
				{keys: "←/→ or h/l", desc: "Pan sideways"},
				{keys: "Space / b", desc: "Page down / up"},
				{keys: "g / G", desc: "First / last page"},
				{keys: "123 ↵", desc: "Go to page"},
			},
		},
		{
			title: "Zoom",
			entries: []helpOverlayEntry{
				{keys: "+", desc: "Enlarge"},
				{keys: "-", desc: "Narrow"},
			},
		},
		{
			title:   "Documents",
			entries: documents,
		},
		{
			title: "Mouse",
			entries: []helpOverlayEntry{
				{keys: "Drag", desc: "Pan the page"},
				{keys: "Wheel", desc: "Scroll"},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "q", desc: "Quit"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 32)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-14s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(state *statepkg.AppState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, y, ' ', nil, baseStyle)
		}
	}

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Bold(true)
	titleStart := 0
	if titleWidth := r.measureTextWidth(title); w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	row := 2
	for _, line := range buildHelpOverlayLines(state) {
		if row >= h-1 {
			break
		}
		text := r.truncateTextToWidth(strings.TrimRight(line, " "), w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	if h > 0 {
		footer := r.truncateTextToWidth("? toggle · Esc/q close", w)
		r.drawTextLine(0, h-1, w, footer, headerStyle)
	}
}
