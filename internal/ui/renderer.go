package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

var (
	styleNormal = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleMuted  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCursor = tcell.StyleDefault.Reverse(true)
)

// Line is one row of text inside a panel.
type Line struct {
	Text  string
	Style tcell.Style
}

// Renderer handles drawing panels to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// RenderPanel clears the screen and draws a bordered panel with a title and
// the given rows, with a footer hint below the frame.
func (r *Renderer) RenderPanel(title string, lines []Line, footer string) {
	r.screen.Clear()

	width, height := r.screen.Size()
	inner := uniseg.StringWidth(title) + 2
	for _, l := range lines {
		if w := uniseg.StringWidth(l.Text); w > inner {
			inner = w
		}
	}
	if w := uniseg.StringWidth(footer); w > inner {
		inner = w
	}
	if inner > width-4 {
		inner = width - 4
	}
	if inner < 1 {
		inner = 1
	}

	r.box(0, 0, inner+4, len(lines)+4)
	r.text(2, 0, " "+title+" ", styleTitle, inner)
	for i, l := range lines {
		if 2+i >= height-1 {
			break
		}
		r.text(2, 2+i, l.Text, l.Style, inner)
	}
	r.text(2, len(lines)+4, footer, styleMuted, inner)

	r.screen.Show()
}

// box draws a border of w by h cells at (x, y).
func (r *Renderer) box(x, y, w, h int) {
	for i := x + 1; i < x+w-1; i++ {
		r.screen.SetContent(i, y, tcell.RuneHLine, styleBorder)
		r.screen.SetContent(i, y+h-1, tcell.RuneHLine, styleBorder)
	}
	for j := y + 1; j < y+h-1; j++ {
		r.screen.SetContent(x, j, tcell.RuneVLine, styleBorder)
		r.screen.SetContent(x+w-1, j, tcell.RuneVLine, styleBorder)
	}
	r.screen.SetContent(x, y, tcell.RuneULCorner, styleBorder)
	r.screen.SetContent(x+w-1, y, tcell.RuneURCorner, styleBorder)
	r.screen.SetContent(x, y+h-1, tcell.RuneLLCorner, styleBorder)
	r.screen.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, styleBorder)
}

// text writes s at (x, y), clipped to limit columns.
func (r *Renderer) text(x, y int, s string, style tcell.Style, limit int) {
	col := 0
	for _, ch := range s {
		w := uniseg.StringWidth(string(ch))
		if col+w > limit {
			return
		}
		r.screen.SetContent(x+col, y, ch, style)
		col += w
	}
}
