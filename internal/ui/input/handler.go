package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/pdfview/internal/state"
)

// Scroll steps in terminal cells.
const (
	lineStep   = 1
	columnStep = 4
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the event asks the application to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	helpVisible := ih.state != nil && ih.state.HelpVisible
	typingPage := ih.state != nil && ih.state.PageInput != ""

	if helpVisible {
		switch ev.Key() {
		case tcell.KeyCtrlC:
			ih.actionChan <- statepkg.QuitAction{}
			return false
		case tcell.KeyEscape:
			ih.actionChan <- statepkg.HelpHideAction{}
			return true
		case tcell.KeyRune:
			r := ev.Rune()
			if r == '?' || r == 'q' || r == 'Q' {
				ih.actionChan <- statepkg.HelpHideAction{}
			}
			return true
		default:
			return true
		}
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.actionChan <- statepkg.QuitAction{}
		return false

	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true

	case tcell.KeyEscape:
		if typingPage {
			ih.actionChan <- statepkg.PageInputClearAction{}
		}
		return true

	case tcell.KeyEnter:
		if typingPage {
			ih.actionChan <- statepkg.PageInputSubmitAction{}
		}
		return true

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if typingPage {
			ih.actionChan <- statepkg.PageInputBackspaceAction{}
		}
		return true

	case tcell.KeyUp:
		ih.actionChan <- statepkg.ScrollAction{Rows: -lineStep}
		return true

	case tcell.KeyDown:
		ih.actionChan <- statepkg.ScrollAction{Rows: lineStep}
		return true

	case tcell.KeyLeft:
		ih.actionChan <- statepkg.ScrollAction{Cols: -columnStep}
		return true

	case tcell.KeyRight:
		ih.actionChan <- statepkg.ScrollAction{Cols: columnStep}
		return true

	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.ScrollPageAction{Direction: -1}
		return true

	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.ScrollPageAction{Direction: 1}
		return true

	case tcell.KeyHome:
		ih.actionChan <- statepkg.FirstPageAction{}
		return true

	case tcell.KeyEnd:
		ih.actionChan <- statepkg.LastPageAction{}
		return true

	case tcell.KeyRune:
		r := ev.Rune()
		if r >= '0' && r <= '9' {
			ih.actionChan <- statepkg.PageInputCharAction{Char: r}
			return true
		}

		switch r {
		case 'q', 'Q':
			ih.actionChan <- statepkg.QuitAction{}
			return false

		case '?':
			ih.actionChan <- statepkg.HelpToggleAction{}

		case '+', '=':
			ih.actionChan <- statepkg.ZoomInAction{}

		case '-', '_':
			ih.actionChan <- statepkg.ZoomOutAction{}

		case 'g':
			ih.actionChan <- statepkg.FirstPageAction{}

		case 'G':
			ih.actionChan <- statepkg.LastPageAction{}

		case 'k':
			ih.actionChan <- statepkg.ScrollAction{Rows: -lineStep}

		case 'j':
			ih.actionChan <- statepkg.ScrollAction{Rows: lineStep}

		case 'h':
			ih.actionChan <- statepkg.ScrollAction{Cols: -columnStep}

		case 'l':
			ih.actionChan <- statepkg.ScrollAction{Cols: columnStep}

		case ' ':
			ih.actionChan <- statepkg.ScrollPageAction{Direction: 1}

		case 'b':
			ih.actionChan <- statepkg.ScrollPageAction{Direction: -1}

		case 'n':
			ih.actionChan <- statepkg.NextSourceAction{}

		case 'p':
			ih.actionChan <- statepkg.PrevSourceAction{}

		case 'r', 'R':
			ih.actionChan <- statepkg.ReloadAction{}

		case 'y':
			ih.actionChan <- statepkg.YankSourceAction{}

		case 'o':
			if ih.state != nil && ih.state.OpenerAvailable {
				ih.actionChan <- statepkg.OpenExternalAction{}
			}
		}
		return true

	default:
		return true
	}
}
