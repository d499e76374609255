// Package fitz implements engine.Engine on top of MuPDF via go-fitz.
package fitz

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"net/http"
	"os"
	"time"

	gofitz "github.com/gen2brain/go-fitz"
	xdraw "golang.org/x/image/draw"

	"github.com/kk-code-lab/pdfview/internal/engine"
	"github.com/kk-code-lab/pdfview/internal/sources"
)

// pointsPerInch is the PDF user-space resolution; a viewport at scale 1 is
// the page box in points.
const pointsPerInch = 72.0

const defaultMaxDownload = 256 << 20

// Engine opens local files and http(s) URLs.
type Engine struct {
	Client      *http.Client
	MaxDownload int64
}

// New returns an engine with a default HTTP client.
func New() *Engine {
	return &Engine{
		Client:      &http.Client{Timeout: 60 * time.Second},
		MaxDownload: defaultMaxDownload,
	}
}

// Open implements engine.Engine.
func (e *Engine) Open(ctx context.Context, locator string) (engine.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sources.IsRemote(locator) {
		data, err := e.download(ctx, locator)
		if err != nil {
			return nil, err
		}
		doc, err := gofitz.NewFromMemory(data)
		if err != nil {
			return nil, fmt.Errorf("unable to open document: %w", err)
		}
		return &document{doc: doc}, nil
	}

	info, err := os.Stat(locator)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", locator)
	}
	doc, err := gofitz.New(locator)
	if err != nil {
		return nil, fmt.Errorf("unable to open document: %w", err)
	}
	return &document{doc: doc}, nil
}

func (e *Engine) download(ctx context.Context, url string) ([]byte, error) {
	client := e.Client
	if client == nil {
		client = http.DefaultClient
	}
	limit := e.MaxDownload
	if limit <= 0 {
		limit = defaultMaxDownload
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("fetching %s: document exceeds %d bytes", url, limit)
	}
	return data, nil
}

// document wraps a go-fitz document. go-fitz serialises access to the
// underlying MuPDF context, so concurrent Page calls are safe.
type document struct {
	doc *gofitz.Document
}

func (d *document) NumPages() int {
	return d.doc.NumPage()
}

func (d *document) Page(ctx context.Context, n int) (engine.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n < 1 || n > d.doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range 1..%d", n, d.doc.NumPage())
	}
	bounds, err := d.doc.Bound(n - 1)
	if err != nil {
		return nil, err
	}
	return &page{doc: d.doc, number: n, bounds: bounds}, nil
}

func (d *document) Close(context.Context) error {
	return d.doc.Close()
}

type page struct {
	doc    *gofitz.Document
	number int
	bounds image.Rectangle
}

func (p *page) Number() int {
	return p.number
}

func (p *page) Viewport(scale float64) engine.Viewport {
	return engine.Viewport{
		Width:  float64(p.bounds.Dx()) * scale,
		Height: float64(p.bounds.Dy()) * scale,
		Scale:  scale,
	}
}

func (p *page) Render(dst draw.Image, vp engine.Viewport) error {
	target := dst.Bounds()
	if target.Empty() || vp.Scale <= 0 {
		return nil
	}
	img, err := p.doc.ImageDPI(p.number-1, pointsPerInch*vp.Scale)
	if err != nil {
		return fmt.Errorf("rasterizing page %d: %w", p.number, err)
	}
	// MuPDF rounds the pixmap outward, so fit it onto the exact target box.
	xdraw.ApproxBiLinear.Scale(dst, target, img, img.Bounds(), xdraw.Src, nil)
	return nil
}
