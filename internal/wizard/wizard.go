// Package wizard models a choice wizard: grouped options where some items
// are granted outright, some groups allow exactly one pick and some allow
// any number. The terminal view in internal/ui drives it.
package wizard

import (
	"errors"
	"fmt"

	"github.com/samdwyer/hexref/internal/gamedata"
)

// GroupType is the kind of a wizard group.
type GroupType string

const (
	// Get grants every option without a choice.
	Get GroupType = "get"
	// PickOne allows exactly one option to be selected.
	PickOne GroupType = "pickOne"
	// Pick allows any number of options to be selected.
	Pick GroupType = "pick"
)

const (
	DefaultTitle      = "Make Your Selections"
	DefaultGroupTitle = "Choose:"
)

var (
	// ErrCancelled is returned when the user dismisses the wizard.
	ErrCancelled = errors.New("wizard cancelled")

	// ErrNoSuchOption is returned by Toggle for an out-of-range position.
	ErrNoSuchOption = errors.New("no such option")
)

// Option is one item offered by a group.
type Option struct {
	Item   string  `json:"item"`
	Weight float64 `json:"weight,omitempty"`
}

// Group is one entry of the wizard document.
type Group struct {
	Type    GroupType `json:"type"`
	Title   string    `json:"title,omitempty"`
	Options []Option  `json:"options"`
}

// DisplayTitle returns the group title, or DefaultGroupTitle when unset.
func (g Group) DisplayTitle() string {
	if g.Title == "" {
		return DefaultGroupTitle
	}
	return g.Title
}

// Selection is one collected item.
type Selection struct {
	Item   string  `json:"item"`
	Weight float64 `json:"weight"`
}

// ParseGroups decodes a wizard document: a JSON list of groups.
func ParseGroups(source string, content []byte) ([]Group, error) {
	return gamedata.Decode[[]Group](source, content)
}

// Wizard holds the groups and the current selection state.
type Wizard struct {
	title    string
	groups   []Group
	choices  []int    // indices into groups of pickOne/pick groups
	selected [][]bool // per choice, per option
}

// New creates a wizard. An empty title uses DefaultTitle. Groups of an
// unknown type are ignored.
func New(title string, groups []Group) *Wizard {
	if title == "" {
		title = DefaultTitle
	}
	w := &Wizard{title: title, groups: groups}
	for i, g := range groups {
		if g.Type == PickOne || g.Type == Pick {
			w.choices = append(w.choices, i)
			w.selected = append(w.selected, make([]bool, len(g.Options)))
		}
	}
	return w
}

// Title returns the wizard title.
func (w *Wizard) Title() string {
	return w.title
}

// AutoItems returns every option of every get group, in document order.
func (w *Wizard) AutoItems() []Option {
	var items []Option
	for _, g := range w.groups {
		if g.Type == Get {
			items = append(items, g.Options...)
		}
	}
	return items
}

// Choices returns the pickOne and pick groups in document order. Positions
// in this list are the choice indices used by Toggle and Selected.
func (w *Wizard) Choices() []Group {
	out := make([]Group, len(w.choices))
	for i, gi := range w.choices {
		out[i] = w.groups[gi]
	}
	return out
}

// Toggle changes the selection of option in choice group choice. In a
// pickOne group the option becomes the only selected one; in a pick group
// it flips.
func (w *Wizard) Toggle(choice, option int) error {
	if choice < 0 || choice >= len(w.choices) {
		return fmt.Errorf("%w: group %d", ErrNoSuchOption, choice)
	}
	state := w.selected[choice]
	if option < 0 || option >= len(state) {
		return fmt.Errorf("%w: option %d in group %d", ErrNoSuchOption, option, choice)
	}

	if w.groups[w.choices[choice]].Type == PickOne {
		for i := range state {
			state[i] = i == option
		}
		return nil
	}
	state[option] = !state[option]
	return nil
}

// Selected reports whether option in choice group choice is selected.
func (w *Wizard) Selected(choice, option int) bool {
	if choice < 0 || choice >= len(w.selected) {
		return false
	}
	state := w.selected[choice]
	return option >= 0 && option < len(state) && state[option]
}

// Collect returns the selections in document order: every get option, the
// selected option of each pickOne group, and every checked option of each
// pick group.
func (w *Wizard) Collect() []Selection {
	results := []Selection{}
	choice := 0
	for _, g := range w.groups {
		switch g.Type {
		case Get:
			for _, opt := range g.Options {
				results = append(results, Selection{Item: opt.Item, Weight: opt.Weight})
			}
		case PickOne, Pick:
			for i, opt := range g.Options {
				if w.selected[choice][i] {
					results = append(results, Selection{Item: opt.Item, Weight: opt.Weight})
				}
			}
			choice++
		}
	}
	return results
}
