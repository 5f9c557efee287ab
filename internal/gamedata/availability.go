package gamedata

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samdwyer/hexref/internal/jsonvalue"
)

// AvailabilityPath is the content path of the base availability map.
const AvailabilityPath = "data/availability.json"

// Reserved role fields.
const (
	MovesFileKey  = "_movesFile"
	MovesFilesKey = "_movesFiles"
	CardsKey      = "cards"
)

// ErrNotObject is returned when an availability document is not a JSON object.
var ErrNotObject = errors.New("availability map must be a JSON object")

// AvailabilityMap maps role names to role descriptors. Roles keep the order
// they appear in the document.
type AvailabilityMap struct {
	root *jsonvalue.Object
}

// NewAvailabilityMap wraps a parsed availability document.
func NewAvailabilityMap(v jsonvalue.Value) (*AvailabilityMap, error) {
	obj, ok := v.(*jsonvalue.Object)
	if !ok {
		kind := "null"
		if v != nil {
			kind = v.Kind().String()
		}
		return nil, fmt.Errorf("%w, got %s", ErrNotObject, kind)
	}
	return &AvailabilityMap{root: obj}, nil
}

// Value returns the underlying document.
func (m *AvailabilityMap) Value() *jsonvalue.Object {
	return m.root
}

// Len returns the number of roles.
func (m *AvailabilityMap) Len() int {
	return m.root.Len()
}

// Role returns the descriptor for name.
func (m *AvailabilityMap) Role(name string) (Role, bool) {
	v, ok := m.root.Get(name)
	if !ok {
		return Role{}, false
	}
	return newRole(name, v), true
}

// Roles returns every role in document order.
func (m *AvailabilityMap) Roles() []Role {
	keys := m.root.Keys()
	roles := make([]Role, 0, len(keys))
	for _, name := range keys {
		v, _ := m.root.Get(name)
		roles = append(roles, newRole(name, v))
	}
	return roles
}

// MarshalJSON implements json.Marshaler.
func (m *AvailabilityMap) MarshalJSON() ([]byte, error) {
	return jsonvalue.Marshal(m.root)
}

var _ json.Marshaler = (*AvailabilityMap)(nil)

// Role is one entry of an availability map. Fields is empty when the
// descriptor is not an object.
type Role struct {
	Name   string
	Fields *jsonvalue.Object
}

func newRole(name string, v jsonvalue.Value) Role {
	obj, ok := v.(*jsonvalue.Object)
	if !ok {
		obj = jsonvalue.NewObject()
	}
	return Role{Name: name, Fields: obj}
}

// MovesFile returns the role's primary move file, or "" if it has none.
func (r Role) MovesFile() string {
	s, _ := r.Fields.GetString(MovesFileKey)
	return s
}

// MovesFiles returns the accumulated move files contributed by modules.
func (r Role) MovesFiles() []string {
	return r.Fields.GetStrings(MovesFilesKey)
}

// Cards returns the card ids granted to the role.
func (r Role) Cards() []string {
	return r.Fields.GetStrings(CardsKey)
}
