package render

import (
	"strings"
	"testing"

	statepkg "github.com/kk-code-lab/pdfview/internal/state"
)

func containsLine(lines []string, substr string) bool {
	for _, line := range lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func TestBuildHelpOverlayLinesIncludesSections(t *testing.T) {
	state := &statepkg.AppState{
		Sources:         []string{"a.pdf", "b.pdf"},
		OpenerAvailable: true,
	}

	lines := buildHelpOverlayLines(state)

	for _, want := range []string{"Navigation", "Zoom", "Documents", "Mouse", "Exit", "Next / previous document", "external viewer"} {
		if !containsLine(lines, want) {
			t.Fatalf("expected lines to contain %q, got %v", want, lines)
		}
	}
}

func TestBuildHelpOverlayLinesHidesUnavailableActions(t *testing.T) {
	state := &statepkg.AppState{Sources: []string{"a.pdf"}}
	lines := buildHelpOverlayLines(state)

	if containsLine(lines, "Next / previous document") {
		t.Fatal("source cycling should be hidden with a single source")
	}
	if containsLine(lines, "external viewer") {
		t.Fatal("open action should be hidden without an opener")
	}
}
