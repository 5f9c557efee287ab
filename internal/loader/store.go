package loader

import (
	"sort"
	"sync"

	"github.com/samdwyer/hexref/internal/jsonvalue"
)

// Published dataset names.
const (
	DatasetStats        = "stats"
	DatasetAvailability = "availability"
	DatasetCategories   = "categories"
	DatasetTerms        = "terms"
	DatasetAliases      = "aliases"
	DatasetMoves        = "moves"
	DatasetMoveSources  = "moveSources"
)

// store holds the datasets published by a session. Writers to different
// names never conflict; the last writer to a name wins.
type store struct {
	mu     sync.RWMutex
	values map[string]jsonvalue.Value
}

func newStore() *store {
	return &store{values: make(map[string]jsonvalue.Value)}
}

func (s *store) put(name string, v jsonvalue.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = v
}

func (s *store) get(name string) (jsonvalue.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}

func (s *store) names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.values))
	for name := range s.values {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
