package state

import (
	"errors"
	"fmt"
	"unicode"
)

// maxPageInputDigits bounds the typed page number.
const maxPageInputDigits = 6

// StateReducer applies the actions that only touch AppState. Actions that
// drive the controller are handled by the application and reported back as
// async results.
type StateReducer struct{}

// NewStateReducer creates a reducer.
func NewStateReducer() *StateReducer {
	return &StateReducer{}
}

// Reduce applies action to state.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== PAGE NUMBER INPUT =====

	case PageInputCharAction:
		if !unicode.IsDigit(a.Char) || a.Char > unicode.MaxASCII {
			return state, nil
		}
		if len(state.PageInput) >= maxPageInputDigits {
			return state, nil
		}
		if state.PageInput == "" && a.Char == '0' {
			return state, nil
		}
		state.PageInput += string(a.Char)
		return state, nil

	case PageInputBackspaceAction:
		if n := len(state.PageInput); n > 0 {
			state.PageInput = state.PageInput[:n-1]
		}
		return state, nil

	case PageInputClearAction:
		state.PageInput = ""
		return state, nil

	// ===== LOADING =====

	case LoadStartedAction:
		state.Source = a.Source
		state.SourceIndex = a.Index
		state.Loading = true
		state.LoadSettled = 0
		state.LoadTotal = 0
		state.LastError = nil
		return state, nil

	case LoadProgressAction:
		if !state.Loading {
			return state, nil
		}
		if a.Settled > state.LoadSettled {
			state.LoadSettled = a.Settled
		}
		state.LoadTotal = a.Total
		return state, nil

	case LoadFinishedAction:
		if a.Source != state.Source {
			// A newer load owns the status line.
			return state, nil
		}
		state.Loading = false
		state.LastError = a.Err
		return state, nil

	case RenderedAction:
		return state, nil

	case ErrorAction:
		state.LastError = a.Err
		return state, nil

	// ===== VIEW =====

	case ResizeAction:
		if a.Width < 0 || a.Height < 0 {
			return state, errors.New("invalid screen size")
		}
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		return state, nil

	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
		return state, nil

	case HelpHideAction:
		if state.HelpVisible {
			state.HelpVisible = false
		}
		return state, nil

	default:
		return state, fmt.Errorf("unknown action: %T", action)
	}
}
