package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== DOCUMENT ACTIONS =====

type ZoomInAction struct{}
type ZoomOutAction struct{}
type ReloadAction struct{}
type NextSourceAction struct{}
type PrevSourceAction struct{}

// ===== NAVIGATION ACTIONS =====

type GoToPageAction struct {
	Page int
}
type FirstPageAction struct{}
type LastPageAction struct{}

// ScrollAction pans by a number of terminal cells.
type ScrollAction struct {
	Cols int
	Rows int
}

// ScrollPageAction pans by one screen; Direction is -1 or 1.
type ScrollPageAction struct {
	Direction int
}

// ===== PAGE NUMBER INPUT =====

type PageInputCharAction struct {
	Char rune
}
type PageInputBackspaceAction struct{}
type PageInputClearAction struct{}
type PageInputSubmitAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type HelpToggleAction struct{}
type HelpHideAction struct{}
type YankSourceAction struct{}
type OpenExternalAction struct{}

// ===== ASYNC RESULTS =====

// LoadStartedAction marks the start of a load of Source.
type LoadStartedAction struct {
	Source string
	Index  int
}

// LoadProgressAction reports settled page fetches of the running load.
type LoadProgressAction struct {
	Settled int
	Total   int
}

// LoadFinishedAction ends a load. Err is nil on success.
type LoadFinishedAction struct {
	Source string
	Err    error
}

// RenderedAction signals that the page canvases were repainted.
type RenderedAction struct{}

// ErrorAction surfaces an error in the status line.
type ErrorAction struct {
	Err error
}

// SourceChangedAction reports that the file behind the current source changed on disk.
type SourceChangedAction struct{}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
type SuspendAction struct{}
