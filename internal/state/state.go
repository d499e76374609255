package state

import (
	"strconv"
	"time"
)

// AppState is the UI state around the preview controller. Document state
// itself lives in the controller; this tracks what the chrome shows.
type AppState struct {
	// Sources
	Sources     []string
	SourceIndex int
	Source      string

	// Loading
	Loading     bool
	LoadSettled int
	LoadTotal   int

	// Page number typed before Enter
	PageInput string

	HelpVisible bool
	Watching    bool

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Status line
	ClipboardAvailable bool
	OpenerAvailable    bool
	LastYankTime       time.Time

	// Error state
	LastError error

	dispatchAction func(Action)
}

// SetDispatch installs the hook used to post actions from other goroutines.
func (s *AppState) SetDispatch(fn func(Action)) {
	s.dispatchAction = fn
}

// Dispatch posts an action through the installed hook. It is a no-op until
// SetDispatch has been called.
func (s *AppState) Dispatch(action Action) {
	if s.dispatchAction != nil {
		s.dispatchAction(action)
	}
}

// PendingPage parses PageInput. ok is false when nothing valid was typed.
func (s *AppState) PendingPage() (int, bool) {
	if s.PageInput == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s.PageInput)
	if err != nil {
		return 0, false
	}
	return n, true
}

// PageAreaRows is the number of terminal rows available to pages, between
// the header and the status line.
func (s *AppState) PageAreaRows() int {
	rows := s.ScreenHeight - 2
	if rows < 0 {
		return 0
	}
	return rows
}
