package locale

import (
	"regexp"
	"sort"
	"strings"
)

const (
	// Default is the canonical language. Its files have no locale prefix.
	Default = "en"

	// ContentDir is the directory under the content root holding all data.
	ContentDir = "data"

	// LangParam selects the active language.
	LangParam = "lang"

	// ModuleParam is the legacy comma-separated module list parameter.
	ModuleParam = "module"

	// modulePrefix starts checkbox-style module parameters (module_<id>=1).
	modulePrefix = "module_"
)

// localePrefix matches an existing two-letter locale segment, e.g. "data/es/".
var localePrefix = regexp.MustCompile(`^` + ContentDir + `/[a-z]{2}/`)

// Language returns the lang parameter, or Default when it is missing or
// empty. Unknown codes are returned verbatim.
func Language(p Params) string {
	if lang := p.Get(LangParam); lang != "" {
		return lang
	}
	return Default
}

// EnabledModules returns the enabled module ids in first-seen order.
// Checkbox params (module_<id>=1) are scanned first, then the first legacy
// module= list is appended.
func EnabledModules(p Params) []string {
	var ids []string
	seen := make(map[string]bool)
	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}

	for _, pair := range p.pairs {
		if strings.HasPrefix(pair.Key, modulePrefix) && pair.Value == "1" {
			add(strings.TrimPrefix(pair.Key, modulePrefix))
		}
	}

	if legacy := p.Get(ModuleParam); legacy != "" {
		for _, id := range strings.Split(legacy, ",") {
			add(strings.TrimSpace(id))
		}
	}

	return ids
}

// ToggleKey returns the checkbox parameter name for a module id.
func ToggleKey(moduleID string) string {
	return modulePrefix + moduleID
}

// IsToggled reports whether the checkbox parameter for moduleID is set to "1".
func IsToggled(p Params, moduleID string) bool {
	return p.Get(ToggleKey(moduleID)) == "1"
}

// ApplyToggles writes module picker state back into params: checked modules
// get module_<id>=1, unchecked ones lose the parameter. Newly checked
// modules are appended in id order.
func ApplyToggles(p Params, toggles map[string]bool) Params {
	ids := make([]string, 0, len(toggles))
	for id := range toggles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if toggles[id] {
			p = p.Set(ToggleKey(id), "1")
		} else {
			p = p.Del(ToggleKey(id))
		}
	}
	return p
}

// BasePath strips a leading locale segment: "data/es/x.json" -> "data/x.json".
func BasePath(path string) string {
	return localePrefix.ReplaceAllString(path, ContentDir+"/")
}

// LocalizedPath rewrites a base path into the lang directory:
// "data/x.json" -> "data/es/x.json". Paths outside the content directory and
// the default language are returned unchanged.
func LocalizedPath(path, lang string) string {
	if lang == Default || lang == "" {
		return path
	}
	prefix := ContentDir + "/"
	if !strings.HasPrefix(path, prefix) {
		return path
	}
	return prefix + lang + "/" + strings.TrimPrefix(path, prefix)
}
