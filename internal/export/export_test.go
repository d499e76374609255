package export

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kk-code-lab/pdfview/internal/document"
	"github.com/kk-code-lab/pdfview/internal/engine/enginetest"
)

func TestRunWritesOnePNGPerPage(t *testing.T) {
	eng := enginetest.New().AddUniform("doc.pdf", 3, 100, 50)
	out := filepath.Join(t.TempDir(), "pages")
	var progress bytes.Buffer

	paths, err := Run(context.Background(), Options{
		Source:   "doc.pdf",
		OutDir:   out,
		Width:    200,
		Engine:   eng,
		Progress: &progress,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 files, got %v", paths)
	}
	if filepath.Base(paths[2]) != "page-003.png" {
		t.Fatalf("unexpected name %q", paths[2])
	}

	f, err := os.Open(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("page size %dx%d, want 200x100", b.Dx(), b.Dy())
	}

	if !strings.Contains(progress.String(), "[3/3] page-003.png") {
		t.Fatalf("progress output missing: %q", progress.String())
	}
	if docs := eng.Opened(); docs[0].Closes() != 1 {
		t.Fatalf("document should be released after export")
	}
}

func TestRunReportsLoadFailure(t *testing.T) {
	eng := enginetest.New().Add("bad.pdf",
		enginetest.PageSpec{Width: 10, Height: 10},
		enginetest.PageSpec{Width: 10, Height: 10, Err: errors.New("corrupt")},
	)
	out := t.TempDir()
	_, err := Run(context.Background(), Options{Source: "bad.pdf", OutDir: out, Engine: eng})
	var agg *document.AggregateError
	if !errors.As(err, &agg) {
		t.Fatalf("expected aggregate error, got %v", err)
	}
	entries, _ := os.ReadDir(out)
	if len(entries) != 0 {
		t.Fatalf("no files should be written on failure")
	}
}

func TestRunRejectsEmptyDocument(t *testing.T) {
	eng := enginetest.New().AddUniform("empty.pdf", 0, 10, 10)
	out := t.TempDir()
	paths, err := Run(context.Background(), Options{Source: "empty.pdf", OutDir: out, Engine: eng})
	if err == nil || !strings.Contains(err.Error(), "no pages") {
		t.Fatalf("expected no pages error, got %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("unexpected paths %v", paths)
	}
	entries, _ := os.ReadDir(out)
	if len(entries) != 0 {
		t.Fatalf("nothing should be written for an empty document")
	}
	if docs := eng.Opened(); len(docs) != 1 || docs[0].Closes() != 1 {
		t.Fatalf("empty document should still be released")
	}
}

func TestRunRequiresEngine(t *testing.T) {
	if _, err := Run(context.Background(), Options{Source: "x.pdf"}); err == nil {
		t.Fatalf("expected error without an engine")
	}
}
