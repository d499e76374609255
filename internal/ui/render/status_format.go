package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kk-code-lab/pdfview/internal/preview"
	statepkg "github.com/kk-code-lab/pdfview/internal/state"
)

// formatStatus builds the status line, e.g.
// "page 2/14 · scale 1 (fit 1.62) · loading 9/14 · source 1/3".
func formatStatus(state *statepkg.AppState, snap preview.Snapshot) string {
	var parts []string

	if snap.Valid {
		parts = append(parts, fmt.Sprintf("page %d/%d", CurrentPage(snap), snap.NumPages))
		parts = append(parts, fmt.Sprintf("scale %s (fit %s)", formatScale(snap.Scale), formatScale(snap.RealScale)))
	} else if snap.Phase != preview.PhaseLoading {
		parts = append(parts, snap.Phase.String())
	}

	if state != nil {
		if state.Loading {
			if state.LoadTotal > 0 {
				parts = append(parts, fmt.Sprintf("loading %d/%d", state.LoadSettled, state.LoadTotal))
			} else {
				parts = append(parts, "loading…")
			}
		}
		if len(state.Sources) > 1 {
			parts = append(parts, fmt.Sprintf("source %d/%d", state.SourceIndex+1, len(state.Sources)))
		}
		if state.Watching {
			parts = append(parts, "watching")
		}
		if state.PageInput != "" {
			parts = append(parts, "go to "+state.PageInput+"_")
		}
	}

	return " " + strings.Join(parts, " · ")
}

// formatScale prints up to two decimals without trailing zeros.
func formatScale(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
