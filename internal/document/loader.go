// Package document loads every page of a document concurrently and reports
// one all-or-nothing outcome.
package document

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kk-code-lab/pdfview/internal/engine"
	"github.com/kk-code-lab/pdfview/internal/logging"
)

// State is a fully loaded document: the engine handle plus every page keyed
// by its 1-based number.
type State struct {
	Source string
	Info   engine.Document
	Pages  map[int]engine.Page
}

// NumPages returns the handle's page count, or 0 without a handle.
func (s *State) NumPages() int {
	if s == nil || s.Info == nil {
		return 0
	}
	return s.Info.NumPages()
}

// Valid reports whether the state can be painted.
func (s *State) Valid() bool {
	return s != nil && s.Info != nil && s.Pages != nil && s.Info.NumPages() > 0
}

// ProgressFunc is called after each page settles.
type ProgressFunc func(settled, total int)

// Loader fetches documents from an engine.
type Loader struct {
	engine      engine.Engine
	concurrency int
	onProgress  ProgressFunc
	logger      *slog.Logger
}

// NewLoader returns a loader. concurrency <= 0 puts every page fetch in flight at once.
func NewLoader(e engine.Engine, concurrency int, onProgress ProgressFunc, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Loader{
		engine:      e,
		concurrency: concurrency,
		onProgress:  onProgress,
		logger:      logger,
	}
}

// Load opens locator and loads all of its pages.
func (l *Loader) Load(ctx context.Context, locator string) (*State, error) {
	doc, err := l.Fetch(ctx, locator)
	if err != nil {
		return nil, err
	}
	return l.LoadPages(ctx, locator, doc)
}

// Fetch asks the engine for a document handle.
func (l *Loader) Fetch(ctx context.Context, locator string) (engine.Document, error) {
	doc, err := l.engine.Open(ctx, locator)
	if err != nil {
		l.logger.Warn("document open failed", "source", locator, "err", err)
		return nil, &DocumentLoadError{Source: locator, Err: err}
	}
	return doc, nil
}

// LoadPages fetches pages 1..N of doc concurrently and waits for all of them.
// If any page fails the whole load fails with an *AggregateError, the loaded
// pages are dropped and doc is closed.
func (l *Loader) LoadPages(ctx context.Context, locator string, doc engine.Document) (*State, error) {
	total := doc.NumPages()
	start := time.Now()
	state := &State{Source: locator, Info: doc, Pages: make(map[int]engine.Page, total)}
	if total <= 0 {
		l.logger.Debug("document has no pages", "source", locator)
		return state, nil
	}

	limit := l.concurrency
	if limit <= 0 || limit > total {
		limit = total
	}
	sem := make(chan struct{}, limit)

	var (
		mu      sync.Mutex
		errs    []*PageLoadError
		settled atomic.Int64
		wg      sync.WaitGroup
	)
	for n := 1; n <= total; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			page, err := doc.Page(ctx, n)
			mu.Lock()
			if err != nil {
				errs = append(errs, &PageLoadError{Page: n, Err: err})
			} else {
				state.Pages[n] = page
			}
			mu.Unlock()

			done := settled.Add(1)
			if l.onProgress != nil {
				l.onProgress(int(done), total)
			}
		}(n)
	}
	wg.Wait()

	if len(errs) > 0 {
		sort.Slice(errs, func(i, j int) bool { return errs[i].Page < errs[j].Page })
		l.logger.Warn("page load failed", "source", locator, "failed", len(errs), "pages", total)
		if err := doc.Close(context.WithoutCancel(ctx)); err != nil {
			l.logger.Debug("closing failed document", "source", locator, "err", err)
		}
		return nil, &AggregateError{Source: locator, Errors: errs}
	}

	l.logger.Debug("document loaded", "source", locator, "pages", total, "elapsed", time.Since(start))
	return state, nil
}
