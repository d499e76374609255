// Package export renders every page of a document headlessly and writes
// each page canvas to a PNG file.
package export

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kk-code-lab/pdfview/internal/engine"
	"github.com/kk-code-lab/pdfview/internal/logging"
	"github.com/kk-code-lab/pdfview/internal/preview"
	"github.com/kk-code-lab/pdfview/internal/view"
)

// DefaultWidth is the page width in pixels when none is given.
const DefaultWidth = 1240

// Options configures one export run.
type Options struct {
	Source          string
	OutDir          string
	Width           float64
	InitialScale    float64
	PageConcurrency int
	Engine          engine.Engine
	// Progress receives the progress bar or progress lines.
	Progress io.Writer
	Logger   *slog.Logger
}

// Run loads Source, renders it at Width and writes page-NNN.png files into
// OutDir. It returns the written paths in page order.
func Run(ctx context.Context, opts Options) ([]string, error) {
	if opts.Engine == nil {
		return nil, errors.New("export: no rendering engine configured")
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", opts.OutDir, err)
	}

	box := view.NewBox(opts.Width, opts.Width)
	ctrl := preview.New(preview.Options{
		Container:       box,
		Source:          opts.Source,
		AutoBindResize:  preview.Bool(false),
		InitialScale:    opts.InitialScale,
		Engine:          opts.Engine,
		PageConcurrency: opts.PageConcurrency,
		Logger:          opts.Logger,
	})
	defer func() {
		if err := ctrl.Destroy(context.WithoutCancel(ctx)); err != nil {
			opts.Logger.Warn("releasing document", "source", opts.Source, "err", err)
		}
	}()

	if err := ctrl.Init(ctx); err != nil {
		return nil, err
	}
	if !ctrl.IsValid() {
		return nil, fmt.Errorf("export: %s has no pages", opts.Source)
	}

	items := ctrl.Wrapper().Items()
	reporter := NewReporter(opts.Progress)
	reporter.Start(len(items))
	defer reporter.Finish()

	written := make([]string, 0, len(items))
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		name := filepath.Join(opts.OutDir, fmt.Sprintf("page-%03d.png", item.PageNumber))
		if err := writePNG(name, item.Canvas); err != nil {
			return written, err
		}
		written = append(written, name)
		reporter.Update(i+1, filepath.Base(name))
		opts.Logger.Debug("page exported", "page", item.PageNumber, "path", name)
	}
	return written, nil
}

func writePNG(path string, canvas *view.Canvas) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, canvas.Image()); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
