package document

import (
	"fmt"
	"strings"
)

// DocumentLoadError reports that the engine could not open a source.
type DocumentLoadError struct {
	Source string
	Err    error
}

func (e *DocumentLoadError) Error() string {
	return fmt.Sprintf("loading document %s: %v", e.Source, e.Err)
}

func (e *DocumentLoadError) Unwrap() error { return e.Err }

// PageLoadError reports a single page that failed to load.
type PageLoadError struct {
	Page int
	Err  error
}

func (e *PageLoadError) Error() string {
	return fmt.Sprintf("loading page %d: %v", e.Page, e.Err)
}

func (e *PageLoadError) Unwrap() error { return e.Err }

// AggregateError collects every page failure of one load, ordered by page.
type AggregateError struct {
	Source string
	Errors []*PageLoadError
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("%s: %v", e.Source, e.Errors[0])
	}
	pages := make([]string, len(e.Errors))
	for i, pe := range e.Errors {
		pages[i] = fmt.Sprint(pe.Page)
	}
	return fmt.Sprintf("%s: %d pages failed to load (%s)", e.Source, len(e.Errors), strings.Join(pages, ", "))
}

// Unwrap exposes the page errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, pe := range e.Errors {
		errs[i] = pe
	}
	return errs
}
