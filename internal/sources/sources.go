// Package sources turns command-line arguments and configured glob patterns
// into the ordered list of documents the previewer cycles through.
package sources

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/unicode/norm"

	fsutil "github.com/kk-code-lab/pdfview/internal/fs"
)

// IsRemote reports whether loc is an http(s) URL.
func IsRemote(loc string) bool {
	l := strings.ToLower(loc)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

func hasMeta(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// Expand resolves entries in order. URLs and plain paths are kept as given
// (paths NFC-normalised and cleaned); glob patterns, which may use **, are
// replaced by the PDF files they match in lexical order, hidden files
// excluded. Duplicates are dropped.
// A pattern that matches nothing is not an error.
func Expand(entries ...string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(loc string) {
		if loc == "" || seen[loc] {
			return
		}
		seen[loc] = true
		out = append(out, loc)
	}

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		switch {
		case entry == "":
		case IsRemote(entry):
			add(entry)
		case hasMeta(entry):
			pattern := filepath.ToSlash(norm.NFC.String(entry))
			if !doublestar.ValidatePattern(pattern) {
				return nil, fmt.Errorf("invalid source pattern %q", entry)
			}
			matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("expanding %q: %w", entry, err)
			}
			sort.Strings(matches)
			for _, m := range matches {
				if !globCandidate(m) {
					continue
				}
				add(filepath.Clean(norm.NFC.String(m)))
			}
		default:
			add(filepath.Clean(norm.NFC.String(entry)))
		}
	}
	return out, nil
}

// globCandidate filters glob matches: hidden files and files that are not
// PDFs are skipped. Explicit paths are never filtered.
func globCandidate(path string) bool {
	if fsutil.IsHidden(path, filepath.Base(path)) {
		return false
	}
	ok, err := fsutil.IsPDF(path)
	return err == nil && ok
}

// List is a cursor over expanded sources. Moving past either end wraps.
type List struct {
	items []string
	index int
}

// NewList returns a list positioned on the first item.
func NewList(items []string) *List {
	return &List{items: append([]string(nil), items...)}
}

func (l *List) Len() int   { return len(l.items) }
func (l *List) Index() int { return l.index }

// Current returns the selected source, or "" for an empty list.
func (l *List) Current() string {
	if len(l.items) == 0 {
		return ""
	}
	return l.items[l.index]
}

// Next advances and returns the new current source.
func (l *List) Next() string {
	return l.move(1)
}

// Prev steps back and returns the new current source.
func (l *List) Prev() string {
	return l.move(-1)
}

func (l *List) move(delta int) string {
	n := len(l.items)
	if n == 0 {
		return ""
	}
	l.index = ((l.index+delta)%n + n) % n
	return l.items[l.index]
}

// Items returns a copy of the sources.
func (l *List) Items() []string {
	return append([]string(nil), l.items...)
}
