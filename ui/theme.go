package ui

import "github.com/gdamore/tcell/v2"

// Theme defines semantic styles for widgets
type Theme struct {
	Background    tcell.Style
	Border        tcell.Style
	FocusBorder   tcell.Style
	Title         tcell.Style
	Text          tcell.Style
	Hint          tcell.Style
	Error         tcell.Style
	Warning       tcell.Style
	Button        tcell.Style
	ButtonFocus   tcell.Style
	ButtonPressed tcell.Style
	ButtonOff     tcell.Style
	Input         tcell.Style
	Cursor        tcell.Style
	Selected      tcell.Style
}

func rgb(r, g, b int32) tcell.Color {
	return tcell.NewRGBColor(r, g, b)
}

// DefaultTheme provides reasonable defaults on a dark background
var DefaultTheme = Theme{
	Background:    tcell.StyleDefault.Background(rgb(20, 20, 30)).Foreground(rgb(200, 200, 200)),
	Border:        tcell.StyleDefault.Background(rgb(20, 20, 30)).Foreground(rgb(60, 80, 100)),
	FocusBorder:   tcell.StyleDefault.Background(rgb(20, 20, 30)).Foreground(rgb(100, 180, 200)),
	Title:         tcell.StyleDefault.Background(rgb(40, 60, 90)).Foreground(rgb(255, 255, 255)).Bold(true),
	Text:          tcell.StyleDefault.Background(rgb(20, 20, 30)).Foreground(rgb(200, 200, 200)),
	Hint:          tcell.StyleDefault.Background(rgb(20, 20, 30)).Foreground(rgb(140, 140, 140)),
	Error:         tcell.StyleDefault.Background(rgb(20, 20, 30)).Foreground(rgb(255, 80, 80)),
	Warning:       tcell.StyleDefault.Background(rgb(20, 20, 30)).Foreground(rgb(255, 200, 80)),
	Button:        tcell.StyleDefault.Background(rgb(50, 50, 70)).Foreground(rgb(220, 220, 220)),
	ButtonFocus:   tcell.StyleDefault.Background(rgb(80, 120, 180)).Foreground(rgb(255, 255, 255)),
	ButtonPressed: tcell.StyleDefault.Background(rgb(80, 200, 80)).Foreground(rgb(0, 0, 0)),
	ButtonOff:     tcell.StyleDefault.Background(rgb(40, 40, 40)).Foreground(rgb(100, 100, 100)),
	Input:         tcell.StyleDefault.Background(rgb(30, 30, 50)).Foreground(rgb(220, 220, 220)),
	Cursor:        tcell.StyleDefault.Background(rgb(200, 200, 200)).Foreground(rgb(0, 0, 0)),
	Selected:      tcell.StyleDefault.Background(rgb(50, 50, 70)).Foreground(rgb(80, 200, 80)),
}
