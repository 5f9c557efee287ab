package gamedata

import "github.com/samdwyer/hexref/internal/jsonvalue"

// RoleMerge records what a module did to one role.
type RoleMerge struct {
	Module string
	Role   string
	Added  bool // true when the module introduced the role
}

// MergeModuleAvailability folds a module's availability fragment into base
// and returns the result. Neither input is modified.
//
// A role the module introduces is inserted as is. For a role base already
// has, the module's fields are laid over the existing ones, move files are
// accumulated into _movesFiles (existing list, existing _movesFile, then the
// module's _movesFile and _movesFiles, each path once), cards are unioned in
// first-seen order, and base's own _movesFile is kept.
func MergeModuleAvailability(base, module *AvailabilityMap, moduleID string) (*AvailabilityMap, []RoleMerge) {
	out := base.root.Clone()
	changes := make([]RoleMerge, 0, module.Len())

	for _, name := range module.root.Keys() {
		contributed, _ := module.root.Get(name)

		current, exists := out.Get(name)
		if !exists || jsonvalue.IsNull(current) {
			out.Set(name, contributed)
			changes = append(changes, RoleMerge{Module: moduleID, Role: name, Added: true})
			continue
		}

		out.Set(name, mergeRole(newRole(name, current), newRole(name, contributed)))
		changes = append(changes, RoleMerge{Module: moduleID, Role: name})
	}

	return &AvailabilityMap{root: out}, changes
}

func mergeRole(existing, contributed Role) *jsonvalue.Object {
	var files orderedSet
	files.add(existing.MovesFiles()...)
	files.add(existing.MovesFile())
	files.add(contributed.MovesFile())
	files.add(contributed.MovesFiles()...)

	var cards orderedSet
	cards.add(existing.Cards()...)
	cards.add(contributed.Cards()...)

	merged := existing.Fields.Clone()
	for _, key := range contributed.Fields.Keys() {
		v, _ := contributed.Fields.Get(key)
		merged.Set(key, v)
	}

	setOrDelete(merged, MovesFilesKey, files.items)
	setOrDelete(merged, CardsKey, cards.items)

	if original := existing.MovesFile(); original != "" {
		merged.Set(MovesFileKey, jsonvalue.String(original))
	}
	return merged
}

func setOrDelete(obj *jsonvalue.Object, key string, items []string) {
	if len(items) == 0 {
		obj.Delete(key)
		return
	}
	obj.Set(key, jsonvalue.Strings(items))
}

// orderedSet collects non-empty strings once each, in insertion order.
type orderedSet struct {
	items []string
	seen  map[string]bool
}

func (s *orderedSet) add(values ...string) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	for _, v := range values {
		if v == "" || s.seen[v] {
			continue
		}
		s.seen[v] = true
		s.items = append(s.items, v)
	}
}
