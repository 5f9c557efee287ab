// Package gamedata holds the content model shared by the loader and the
// terminal views: the optional-module registry, the role availability map,
// move records and their provenance.
package gamedata

// ModulesPath is the content path of the module registry.
const ModulesPath = "data/modules.json"

// AvailabilityFile is the file every module directory must contain.
const AvailabilityFile = "availability.json"

// Module describes an optional content module.
type Module struct {
	ID          string `json:"id"`                    // Unique identifier (e.g., "salvage")
	Name        string `json:"name"`                  // Display name
	Description string `json:"description,omitempty"` // Optional one-line summary
	Path        string `json:"path"`                  // Directory holding availability.json
}

// AvailabilityPath returns the path of the module's availability fragment.
func (m *Module) AvailabilityPath() string {
	return m.Path + "/" + AvailabilityFile
}

// ModulesConfig is the document stored at ModulesPath.
type ModulesConfig struct {
	Modules []Module `json:"modules"`
}
