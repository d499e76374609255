// Package fs holds the file checks used when expanding document globs.
package fs

import (
	"bytes"
	"io"
	"os"
)

// pdfHeaderWindow is how far into a file readers accept the %PDF- marker.
const pdfHeaderWindow = 1024

var pdfMagic = []byte("%PDF-")

// ReadFileHead returns up to limit bytes from the beginning of path.
func ReadFileHead(path string, limit int64) ([]byte, error) {
	if limit <= 0 {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	return io.ReadAll(io.LimitReader(f, limit))
}

// LooksLikePDF reports whether content carries a PDF header. Leading junk
// before the marker is tolerated.
func LooksLikePDF(content []byte) bool {
	if len(content) > pdfHeaderWindow {
		content = content[:pdfHeaderWindow]
	}
	return bytes.Contains(content, pdfMagic)
}

// IsPDF sniffs the head of path.
func IsPDF(path string) (bool, error) {
	head, err := ReadFileHead(path, pdfHeaderWindow)
	if err != nil {
		return false, err
	}
	return LooksLikePDF(head), nil
}
