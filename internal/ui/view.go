package ui

import (
	"context"
	"html"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/microcosm-cc/bluemonday"
)

// view is a full-screen panel driven by key presses.
type view interface {
	title() string
	lines() []Line
	footer() string
	handleKey(ctx context.Context, key tcell.Key, ch rune)
	finished() bool
}

// run renders v and feeds it key events until it finishes or ctx is done.
func run(ctx context.Context, screen *Screen, v view) error {
	renderer := NewRenderer(screen)
	for !v.finished() {
		if err := ctx.Err(); err != nil {
			return err
		}
		renderer.RenderPanel(v.title(), v.lines(), v.footer())

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			v.handleKey(ctx, ev.Key(), ev.Rune())
		case *tcell.EventResize:
			screen.Sync()
		case nil:
			// Screen finalized.
			return nil
		}
	}
	return nil
}

var (
	textPolicy     *bluemonday.Policy
	textPolicyOnce sync.Once
)

// plainText strips markup from content text so it can be shown in a
// terminal. Entities are decoded and whitespace runs collapsed.
func plainText(s string) string {
	if s == "" {
		return ""
	}
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.Join(strings.Fields(html.UnescapeString(textPolicy.Sanitize(s))), " ")
}

func isQuit(key tcell.Key, ch rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ch == 'q' || ch == 'Q'
	}
	return false
}
