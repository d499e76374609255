package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background tcell.Color
	Foreground tcell.Color
	FooterBg   tcell.Color
	FooterFg   tcell.Color
	// PageGapBg fills the space around and between pages.
	PageGapBg tcell.Color
	ErrorFg   tcell.Color
	AccentFg  tcell.Color
	FlashBg   tcell.Color
	FlashFg   tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background: tcell.ColorDefault,
		Foreground: tcell.ColorDefault,
		FooterBg:   tcell.ColorDefault,
		FooterFg:   tcell.ColorDefault,
		PageGapBg:  tcell.Color236,
		ErrorFg:    tcell.ColorRed,
		AccentFg:   tcell.Color33,
		FlashBg:    tcell.Color33,
		FlashFg:    tcell.ColorWhite,
	}
}
