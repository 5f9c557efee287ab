package loader

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/hexref/internal/gamedata"
	"github.com/samdwyer/hexref/internal/jsonvalue"
)

// ModulesConfig returns the module registry, fetching it on first use. A
// registry that cannot be fetched or parsed is treated as empty, and that
// empty result is cached too. Concurrent first calls share one fetch.
func (s *Session) ModulesConfig(ctx context.Context) *gamedata.ModuleRegistry {
	if r := s.cachedRegistry(); r != nil {
		return r
	}

	v, _, _ := s.flight.Do("modules", func() (any, error) {
		if r := s.cachedRegistry(); r != nil {
			return r, nil
		}
		r, err := s.fetchRegistry(ctx)
		if err != nil {
			s.logger.Info("no modules registry found or failed to load", slog.Any("error", err))
			r = gamedata.EmptyModuleRegistry()
			// A cancelled load says nothing about the registry; leave it uncached.
			if ctx.Err() != nil {
				return r, nil
			}
		}
		s.mu.Lock()
		s.registry = r
		s.mu.Unlock()
		return r, nil
	})
	return v.(*gamedata.ModuleRegistry)
}

func (s *Session) cachedRegistry() *gamedata.ModuleRegistry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry
}

func (s *Session) fetchRegistry(ctx context.Context) (*gamedata.ModuleRegistry, error) {
	resp, err := s.fetcher.FetchWithTranslations(ctx, s.lang, gamedata.ModulesPath)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &LoadError{Path: gamedata.ModulesPath, Status: resp.StatusCode}
	}

	cfg, err := gamedata.Decode[gamedata.ModulesConfig](gamedata.ModulesPath, resp.Body)
	if err != nil {
		return nil, err
	}

	s.logger.Info("loaded modules registry", slog.Int("modules", len(cfg.Modules)))
	return gamedata.NewModuleRegistry(cfg.Modules), nil
}

// LoadAvailabilityMap loads the role availability map, replaced wholesale
// by its translation, and folds in the availability fragment of every
// enabled module in order. Unknown module ids and modules that fail to load
// are logged and skipped.
func (s *Session) LoadAvailabilityMap(ctx context.Context) (*gamedata.AvailabilityMap, error) {
	ctx, span := s.tracer.Start(ctx, "loader.load_availability",
		trace.WithAttributes(
			attribute.String("session.id", s.id),
			attribute.StringSlice("modules.enabled", s.modules),
		))
	defer span.End()

	data, err := s.LoadJSONWithTranslations(ctx, gamedata.AvailabilityPath, DatasetAvailability, false)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "availability load failed")
		return nil, err
	}

	merged, err := gamedata.NewAvailabilityMap(data)
	if err != nil {
		loadErr := &LoadError{Path: gamedata.AvailabilityPath, Err: err}
		span.RecordError(loadErr)
		span.SetStatus(codes.Error, "availability is not an object")
		return nil, loadErr
	}

	if len(s.modules) == 0 {
		return merged, nil
	}

	registry := s.ModulesConfig(ctx)
	if registry.Count() == 0 {
		s.logger.Warn("modules requested but no modules registry found", slog.Any("modules", s.modules))
		return merged, nil
	}

	applied := 0
	for _, id := range s.modules {
		module := registry.GetByID(id)
		if module == nil {
			s.logger.Warn("module not found", slog.String("module", id))
			continue
		}

		fragment, err := s.loadModuleAvailability(ctx, module)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			s.logger.Warn("failed to load module", slog.String("module", id), slog.Any("error", err))
			continue
		}

		var changes []gamedata.RoleMerge
		merged, changes = gamedata.MergeModuleAvailability(merged, fragment, id)
		for _, c := range changes {
			if c.Added {
				s.logger.Debug("added role from module", slog.String("module", c.Module), slog.String("role", c.Role))
			} else {
				s.logger.Debug("merged module into role", slog.String("module", c.Module), slog.String("role", c.Role))
			}
		}
		applied++
		s.logger.Info("loaded module", slog.String("module", id))
	}

	span.SetAttributes(attribute.Int("modules.applied", applied))
	s.publish(DatasetAvailability, merged.Value())
	return merged, nil
}

func (s *Session) loadModuleAvailability(ctx context.Context, module *gamedata.Module) (*gamedata.AvailabilityMap, error) {
	path := module.AvailabilityPath()

	resp, err := s.fetcher.FetchWithTranslations(ctx, s.lang, path)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &LoadError{Path: path, Status: resp.StatusCode}
	}

	v, err := jsonvalue.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON from %s: %w", path, err)
	}
	fragment, err := gamedata.NewAvailabilityMap(v)
	if err != nil {
		return nil, fmt.Errorf("module %s: %w", module.ID, err)
	}
	return fragment, nil
}
