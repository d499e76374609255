// Package textutil prepares untrusted strings, such as locators and error
// messages, for display in the terminal.
package textutil

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// formattingRuneLabels makes bidi and zero-width runes visible instead of
// letting them reorder or hide parts of a name.
var formattingRuneLabels = map[rune]string{
	0x061C: "⟪ALM⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0xFEFF: "⟪BOM⟫",
}

// SanitizeTerminalText replaces control characters so user-controlled text
// cannot inject terminal escape sequences when rendered. Line breaks and tabs
// become spaces.
func SanitizeTerminalText(text string) string {
	clean := true
	for _, r := range text {
		if needsRewrite(r) {
			clean = false
			break
		}
	}
	if clean {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if label, ok := formattingRuneLabels[r]; ok {
			b.WriteString(label)
			continue
		}
		switch {
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsRewrite(r rune) bool {
	if _, ok := formattingRuneLabels[r]; ok {
		return true
	}
	return r < 0x20 || r == 0x7f
}

// DisplayName shortens a locator for the header: the file name for local
// paths, host plus last path segment for URLs. The result is sanitized.
func DisplayName(locator string) string {
	if locator == "" {
		return ""
	}
	if u, err := url.Parse(locator); err == nil && u.Host != "" && (u.Scheme == "http" || u.Scheme == "https") {
		name := path.Base(u.Path)
		if name == "." || name == "/" {
			return SanitizeTerminalText(u.Host)
		}
		return SanitizeTerminalText(u.Host + " › " + name)
	}
	return SanitizeTerminalText(filepath.Base(locator))
}
