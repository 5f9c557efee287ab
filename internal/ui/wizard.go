package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/hexref/internal/wizard"
)

// wizardRow is a selectable option: its choice group and option index.
type wizardRow struct {
	choice int
	option int
}

// WizardView presents a wizard: the items granted outright, then each
// choice group with one row per option.
type WizardView struct {
	wizard    *wizard.Wizard
	rows      []wizardRow
	cursor    int
	confirmed bool
	cancelled bool
	status    string
}

// NewWizardView creates a view over w.
func NewWizardView(w *wizard.Wizard) *WizardView {
	v := &WizardView{wizard: w}
	for ci, g := range w.Choices() {
		for oi := range g.Options {
			v.rows = append(v.rows, wizardRow{choice: ci, option: oi})
		}
	}
	return v
}

// Result returns the collected selections, or wizard.ErrCancelled when the
// user dismissed the wizard.
func (v *WizardView) Result() ([]wizard.Selection, error) {
	if v.cancelled || !v.confirmed {
		return nil, wizard.ErrCancelled
	}
	return v.wizard.Collect(), nil
}

// Run shows the wizard until it is confirmed or cancelled.
func (v *WizardView) Run(ctx context.Context, screen *Screen) ([]wizard.Selection, error) {
	if err := run(ctx, screen, v); err != nil {
		return nil, err
	}
	return v.Result()
}

func (v *WizardView) title() string { return plainText(v.wizard.Title()) }

func (v *WizardView) footer() string {
	return "↑/↓ move  space select  enter OK  esc cancel"
}

func (v *WizardView) lines() []Line {
	var lines []Line

	if auto := v.wizard.AutoItems(); len(auto) > 0 {
		lines = append(lines, Line{Text: "You will receive:", Style: styleTitle})
		for _, opt := range auto {
			lines = append(lines, Line{Text: "  • " + plainText(opt.Item), Style: styleNormal})
		}
		lines = append(lines, Line{})
	}

	row := 0
	for ci, g := range v.wizard.Choices() {
		lines = append(lines, Line{Text: plainText(g.DisplayTitle()), Style: styleTitle})
		for oi, opt := range g.Options {
			mark := "[ ]"
			if v.wizard.Selected(ci, oi) {
				mark = "[x]"
			}
			if g.Type == wizard.PickOne {
				mark = "( )"
				if v.wizard.Selected(ci, oi) {
					mark = "(•)"
				}
			}

			style := styleNormal
			if row == v.cursor {
				style = styleCursor
			}
			lines = append(lines, Line{Text: "  " + mark + " " + plainText(opt.Item), Style: style})
			row++
		}
	}

	if len(lines) == 0 {
		lines = append(lines, Line{Text: "Nothing to choose.", Style: styleMuted})
	}
	if v.status != "" {
		lines = append(lines, Line{}, Line{Text: v.status, Style: styleMuted})
	}
	return lines
}

func (v *WizardView) finished() bool { return v.confirmed || v.cancelled }

func (v *WizardView) handleKey(_ context.Context, key tcell.Key, ch rune) {
	if isQuit(key, ch) {
		v.cancelled = true
		return
	}

	switch key {
	case tcell.KeyUp:
		v.move(-1)
	case tcell.KeyDown:
		v.move(1)
	case tcell.KeyEnter:
		v.confirmed = true
	case tcell.KeyRune:
		switch ch {
		case ' ':
			v.toggle()
		case 'k':
			v.move(-1)
		case 'j':
			v.move(1)
		}
	}
}

func (v *WizardView) move(delta int) {
	if len(v.rows) == 0 {
		return
	}
	v.cursor = (v.cursor + delta + len(v.rows)) % len(v.rows)
}

func (v *WizardView) toggle() {
	if len(v.rows) == 0 {
		return
	}
	r := v.rows[v.cursor]
	if err := v.wizard.Toggle(r.choice, r.option); err != nil {
		v.status = err.Error()
		return
	}
	v.status = ""
}
