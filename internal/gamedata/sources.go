package gamedata

import (
	"encoding/json"

	"github.com/samdwyer/hexref/internal/jsonvalue"
)

// MoveSource is one file that contributed a move.
type MoveSource struct {
	File string `json:"file"`
	Role string `json:"role"`
}

// SourceMap records which files contributed each move id. Ids keep the
// order they were first seen; a move defined by several files keeps every
// contribution.
type SourceMap struct {
	ids     []string
	sources map[string][]MoveSource
}

// NewSourceMap returns an empty source map.
func NewSourceMap() *SourceMap {
	return &SourceMap{sources: make(map[string][]MoveSource)}
}

// Add records that src contributed the move id.
func (m *SourceMap) Add(id string, src MoveSource) {
	if _, ok := m.sources[id]; !ok {
		m.ids = append(m.ids, id)
	}
	m.sources[id] = append(m.sources[id], src)
}

// Sources returns the contributions for id.
func (m *SourceMap) Sources(id string) []MoveSource {
	return m.sources[id]
}

// IDs returns every recorded id in first-seen order.
func (m *SourceMap) IDs() []string {
	out := make([]string, len(m.ids))
	copy(out, m.ids)
	return out
}

// Len returns the number of distinct ids.
func (m *SourceMap) Len() int {
	return len(m.ids)
}

// Collisions returns the ids contributed by more than one file.
func (m *SourceMap) Collisions() []string {
	var out []string
	for _, id := range m.ids {
		if len(m.sources[id]) > 1 {
			out = append(out, id)
		}
	}
	return out
}

// Value returns the map as a JSON object of id to source list.
func (m *SourceMap) Value() *jsonvalue.Object {
	obj := jsonvalue.NewObject()
	for _, id := range m.ids {
		list := make(jsonvalue.Array, 0, len(m.sources[id]))
		for _, src := range m.sources[id] {
			entry := jsonvalue.NewObject()
			entry.Set("file", jsonvalue.String(src.File))
			entry.Set("role", jsonvalue.String(src.Role))
			list = append(list, entry)
		}
		obj.Set(id, list)
	}
	return obj
}

// MarshalJSON implements json.Marshaler.
func (m *SourceMap) MarshalJSON() ([]byte, error) {
	return jsonvalue.Marshal(m.Value())
}

var _ json.Marshaler = (*SourceMap)(nil)
