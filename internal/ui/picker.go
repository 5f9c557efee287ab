package ui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/hexref/internal/gamedata"
	"github.com/samdwyer/hexref/internal/locale"
)

// ReloadFunc reloads all game data with the given parameters.
type ReloadFunc func(ctx context.Context, params locale.Params) error

// ModulePicker lists the optional modules with a checkbox each. Toggling a
// module rewrites the module_<id> parameters and asks for a full reload.
type ModulePicker struct {
	modules []gamedata.Module
	params  locale.Params
	reload  ReloadFunc
	cursor  int
	status  string
	closed  bool
}

// NewModulePicker creates a picker over the registry. Checked state comes
// from params; reload may be nil.
func NewModulePicker(registry *gamedata.ModuleRegistry, params locale.Params, reload ReloadFunc) *ModulePicker {
	all := registry.All()
	modules := make([]gamedata.Module, 0, len(all))
	for _, m := range all {
		m.Name = plainText(m.Name)
		m.Description = plainText(m.Description)
		modules = append(modules, m)
	}
	return &ModulePicker{
		modules: modules,
		params:  params,
		reload:  reload,
	}
}

// Params returns the parameters reflecting the current checkbox state.
func (p *ModulePicker) Params() locale.Params {
	return p.params
}

// Checked reports whether the module is enabled.
func (p *ModulePicker) Checked(id string) bool {
	return locale.IsToggled(p.params, id)
}

// Status returns the outcome of the last reload, if any.
func (p *ModulePicker) Status() string {
	return p.status
}

// Run shows the picker until the user closes it and returns the final
// parameters.
func (p *ModulePicker) Run(ctx context.Context, screen *Screen) (locale.Params, error) {
	if err := run(ctx, screen, p); err != nil {
		return p.params, err
	}
	return p.params, nil
}

func (p *ModulePicker) title() string { return "Modules" }

func (p *ModulePicker) footer() string {
	return "↑/↓ move  space toggle  q close"
}

func (p *ModulePicker) lines() []Line {
	if len(p.modules) == 0 {
		return []Line{{Text: "No modules available.", Style: styleMuted}}
	}

	lines := make([]Line, 0, len(p.modules)+2)
	for i, m := range p.modules {
		box := "[ ]"
		if p.Checked(m.ID) {
			box = "[x]"
		}
		text := box + " " + m.Name
		if m.Description != "" {
			text += " - " + m.Description
		}

		style := styleNormal
		if i == p.cursor {
			style = styleCursor
		}
		lines = append(lines, Line{Text: text, Style: style})
	}

	if p.status != "" {
		lines = append(lines, Line{}, Line{Text: p.status, Style: styleMuted})
	}
	return lines
}

func (p *ModulePicker) finished() bool { return p.closed }

func (p *ModulePicker) handleKey(ctx context.Context, key tcell.Key, ch rune) {
	if isQuit(key, ch) {
		p.closed = true
		return
	}

	switch key {
	case tcell.KeyUp:
		p.move(-1)
	case tcell.KeyDown:
		p.move(1)
	case tcell.KeyEnter:
		p.toggle(ctx)
	case tcell.KeyRune:
		switch ch {
		case ' ':
			p.toggle(ctx)
		case 'k':
			p.move(-1)
		case 'j':
			p.move(1)
		}
	}
}

func (p *ModulePicker) move(delta int) {
	if len(p.modules) == 0 {
		return
	}
	p.cursor = (p.cursor + delta + len(p.modules)) % len(p.modules)
}

// toggle flips the module under the cursor and writes every checkbox back
// into the parameters before reloading.
func (p *ModulePicker) toggle(ctx context.Context) {
	if len(p.modules) == 0 {
		return
	}

	states := make(map[string]bool, len(p.modules))
	for _, m := range p.modules {
		states[m.ID] = p.Checked(m.ID)
	}
	current := p.modules[p.cursor].ID
	states[current] = !states[current]
	p.params = locale.ApplyToggles(p.params, states)

	if p.reload == nil {
		return
	}
	if err := p.reload(ctx, p.params); err != nil {
		p.status = fmt.Sprintf("Reload failed: %v", err)
		return
	}
	p.status = "Reloaded with ?" + p.params.Encode()
}
