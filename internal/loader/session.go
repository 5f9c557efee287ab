// Package loader orchestrates a load session: it fetches the content files
// for one language and set of enabled modules, merges translations and
// module fragments, and publishes the resulting datasets by name.
package loader

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/samdwyer/hexref/internal/gamedata"
	"github.com/samdwyer/hexref/internal/jsonvalue"
	"github.com/samdwyer/hexref/internal/locale"
	"github.com/samdwyer/hexref/internal/telemetry"
	"github.com/samdwyer/hexref/internal/transport"
)

// Fetcher retrieves content files. *transport.Fetcher implements it.
type Fetcher interface {
	CanFetch() bool
	FetchWithRetry(ctx context.Context, path string) (*transport.Response, error)
	FetchWithTranslations(ctx context.Context, lang, path string) (*transport.Response, error)
}

var _ Fetcher = (*transport.Fetcher)(nil)

// Session is one load of the game data for a fixed set of parameters.
// Datasets it publishes stay visible for the life of the session, including
// those published before a later step failed. Sessions share nothing.
type Session struct {
	id      string
	fetcher Fetcher
	params  locale.Params
	lang    string
	modules []string
	logger  *slog.Logger
	tracer  trace.Tracer

	store  *store
	flight singleflight.Group

	mu       sync.RWMutex
	registry *gamedata.ModuleRegistry
	sources  *gamedata.SourceMap
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithTracer sets the tracer used for load spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Session) { s.tracer = t }
}

// NewSession creates a session that loads content through f. The language
// and enabled modules are read from params once, here.
func NewSession(f Fetcher, params locale.Params, opts ...Option) *Session {
	s := &Session{
		id:      uuid.NewString(),
		fetcher: f,
		params:  params,
		lang:    locale.Language(params),
		modules: locale.EnabledModules(params),
		logger:  slog.Default(),
		tracer:  telemetry.Tracer("loader"),
		store:   newStore(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(
		slog.String("component", "loader"),
		slog.String("session", s.id),
	)
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Params returns the parameters the session was created with.
func (s *Session) Params() locale.Params {
	return s.params
}

// Language returns the active language code.
func (s *Session) Language() string {
	return s.lang
}

// EnabledModules returns the enabled module ids in processing order.
func (s *Session) EnabledModules() []string {
	out := make([]string, len(s.modules))
	copy(out, s.modules)
	return out
}

// Published returns the dataset published under name.
func (s *Session) Published(name string) (jsonvalue.Value, bool) {
	return s.store.get(name)
}

// PublishedNames returns the names of every published dataset, sorted.
func (s *Session) PublishedNames() []string {
	return s.store.names()
}

// Stats returns the published stats list.
func (s *Session) Stats() (jsonvalue.Value, bool) {
	return s.store.get(DatasetStats)
}

// Categories returns the published categories document.
func (s *Session) Categories() (jsonvalue.Value, bool) {
	return s.store.get(DatasetCategories)
}

// Terms returns the published terms glossary.
func (s *Session) Terms() (jsonvalue.Value, bool) {
	return s.store.get(DatasetTerms)
}

// Aliases returns the published aliases list.
func (s *Session) Aliases() (jsonvalue.Value, bool) {
	return s.store.get(DatasetAliases)
}

// AvailabilityMap returns the published availability map.
func (s *Session) AvailabilityMap() (*gamedata.AvailabilityMap, bool) {
	v, ok := s.store.get(DatasetAvailability)
	if !ok {
		return nil, false
	}
	m, err := gamedata.NewAvailabilityMap(v)
	if err != nil {
		return nil, false
	}
	return m, true
}

// Moves returns the combined move list.
func (s *Session) Moves() (jsonvalue.Array, bool) {
	v, ok := s.store.get(DatasetMoves)
	if !ok {
		return nil, false
	}
	moves, ok := v.(jsonvalue.Array)
	return moves, ok
}

// MoveSources returns the provenance of every loaded move, or nil before
// moves have been loaded.
func (s *Session) MoveSources() *gamedata.SourceMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sources
}

func (s *Session) publish(name string, v jsonvalue.Value) {
	s.store.put(name, v)
}
