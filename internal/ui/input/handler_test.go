package input

import (
	"fmt"
	"testing"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/pdfview/internal/state"
)

func expectAction(t *testing.T, ch chan statepkg.Action) statepkg.Action {
	t.Helper()
	select {
	case action := <-ch:
		return action
	default:
		t.Fatal("Expected an action to be emitted")
		return nil
	}
}

func expectNoAction(t *testing.T, ch chan statepkg.Action) {
	t.Helper()
	select {
	case action := <-ch:
		t.Fatalf("Expected no action, got %T", action)
	default:
	}
}

func TestQuestionMarkTogglesHelpInNormalMode(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)
	handler.SetState(&statepkg.AppState{})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, '?', 0))

	if _, ok := expectAction(t, actionChan).(statepkg.HelpToggleAction); !ok {
		t.Fatal("Expected HelpToggleAction for '?'")
	}
}

func TestEscapeHidesHelpBeforeOtherModes(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)
	handler.SetState(&statepkg.AppState{HelpVisible: true, PageInput: "3"})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyEscape, 0, 0))

	if _, ok := expectAction(t, actionChan).(statepkg.HelpHideAction); !ok {
		t.Fatal("Expected HelpHideAction when help is visible")
	}
}

func TestQClosesHelpWithoutQuitting(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)
	handler.SetState(&statepkg.AppState{HelpVisible: true})

	if !handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0)) {
		t.Fatal("q should not quit while help is visible")
	}
	if _, ok := expectAction(t, actionChan).(statepkg.HelpHideAction); !ok {
		t.Fatal("Expected HelpHideAction")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', 0),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	} {
		actionChan := make(chan statepkg.Action, 1)
		handler := NewInputHandler(actionChan)
		if handler.ProcessEvent(ev) {
			t.Fatalf("%v should quit", ev.Name())
		}
		if _, ok := expectAction(t, actionChan).(statepkg.QuitAction); !ok {
			t.Fatalf("Expected QuitAction for %v", ev.Name())
		}
	}
}

func TestRuneBindings(t *testing.T) {
	cases := []struct {
		r    rune
		want statepkg.Action
	}{
		{'+', statepkg.ZoomInAction{}},
		{'=', statepkg.ZoomInAction{}},
		{'-', statepkg.ZoomOutAction{}},
		{'g', statepkg.FirstPageAction{}},
		{'G', statepkg.LastPageAction{}},
		{'j', statepkg.ScrollAction{Rows: lineStep}},
		{'k', statepkg.ScrollAction{Rows: -lineStep}},
		{'h', statepkg.ScrollAction{Cols: -columnStep}},
		{'l', statepkg.ScrollAction{Cols: columnStep}},
		{' ', statepkg.ScrollPageAction{Direction: 1}},
		{'b', statepkg.ScrollPageAction{Direction: -1}},
		{'n', statepkg.NextSourceAction{}},
		{'p', statepkg.PrevSourceAction{}},
		{'r', statepkg.ReloadAction{}},
		{'y', statepkg.YankSourceAction{}},
		{'7', statepkg.PageInputCharAction{Char: '7'}},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%q", tc.r), func(t *testing.T) {
			actionChan := make(chan statepkg.Action, 1)
			handler := NewInputHandler(actionChan)
			handler.SetState(&statepkg.AppState{})

			handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, tc.r, 0))
			if got := expectAction(t, actionChan); got != tc.want {
				t.Fatalf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestEnterSubmitsOnlyWhileTyping(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)
	state := &statepkg.AppState{}
	handler.SetState(state)

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyEnter, 0, 0))
	expectNoAction(t, actionChan)

	state.PageInput = "12"
	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyEnter, 0, 0))
	if _, ok := expectAction(t, actionChan).(statepkg.PageInputSubmitAction); !ok {
		t.Fatal("Expected PageInputSubmitAction")
	}

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, 0))
	if _, ok := expectAction(t, actionChan).(statepkg.PageInputBackspaceAction); !ok {
		t.Fatal("Expected PageInputBackspaceAction")
	}

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyEscape, 0, 0))
	if _, ok := expectAction(t, actionChan).(statepkg.PageInputClearAction); !ok {
		t.Fatal("Expected PageInputClearAction")
	}
}

func TestOpenRequiresOpener(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)
	state := &statepkg.AppState{}
	handler.SetState(state)

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'o', 0))
	expectNoAction(t, actionChan)

	state.OpenerAvailable = true
	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'o', 0))
	if _, ok := expectAction(t, actionChan).(statepkg.OpenExternalAction); !ok {
		t.Fatal("Expected OpenExternalAction")
	}
}

func TestNavigationKeys(t *testing.T) {
	cases := []struct {
		key  tcell.Key
		want statepkg.Action
	}{
		{tcell.KeyUp, statepkg.ScrollAction{Rows: -lineStep}},
		{tcell.KeyDown, statepkg.ScrollAction{Rows: lineStep}},
		{tcell.KeyLeft, statepkg.ScrollAction{Cols: -columnStep}},
		{tcell.KeyRight, statepkg.ScrollAction{Cols: columnStep}},
		{tcell.KeyPgUp, statepkg.ScrollPageAction{Direction: -1}},
		{tcell.KeyPgDn, statepkg.ScrollPageAction{Direction: 1}},
		{tcell.KeyHome, statepkg.FirstPageAction{}},
		{tcell.KeyEnd, statepkg.LastPageAction{}},
		{tcell.KeyCtrlZ, statepkg.SuspendAction{}},
	}
	for _, tc := range cases {
		actionChan := make(chan statepkg.Action, 1)
		handler := NewInputHandler(actionChan)
		handler.ProcessEvent(tcell.NewEventKey(tc.key, 0, 0))
		if got := expectAction(t, actionChan); got != tc.want {
			t.Fatalf("key %v: got %#v, want %#v", tc.key, got, tc.want)
		}
	}
}

func TestResizeEmitsResizeAction(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)
	handler.ProcessEvent(tcell.NewEventResize(100, 40))
	if got := expectAction(t, actionChan); got != (statepkg.ResizeAction{Width: 100, Height: 40}) {
		t.Fatalf("got %#v", got)
	}
}
