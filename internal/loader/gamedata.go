package loader

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/hexref/internal/jsonvalue"
)

// LoadAllGameData loads stats, availability, categories, terms and aliases
// concurrently, then the role moves, and returns the combined move list.
// The first failure is returned; datasets published before it stay visible.
//
// Overlapping calls on one session share a single load, run with the
// context of the call that started it.
func (s *Session) LoadAllGameData(ctx context.Context) (jsonvalue.Array, error) {
	v, err, shared := s.flight.Do("all", func() (any, error) {
		return s.loadAllGameData(ctx)
	})
	if shared {
		s.logger.Debug("joined in-flight load")
	}
	if err != nil {
		return nil, err
	}
	return v.(jsonvalue.Array), nil
}

func (s *Session) loadAllGameData(ctx context.Context) (jsonvalue.Array, error) {
	ctx, span := s.tracer.Start(ctx, "loader.load_all",
		trace.WithAttributes(
			attribute.String("session.id", s.id),
			attribute.String("lang", s.lang),
			attribute.StringSlice("modules.enabled", s.modules),
		))
	defer span.End()

	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.LoadStatsData(gctx)
		return err
	})
	g.Go(func() error {
		_, err := s.LoadAvailabilityMap(gctx)
		return err
	})
	g.Go(func() error {
		_, err := s.LoadCategoriesData(gctx)
		return err
	})
	g.Go(func() error {
		_, err := s.LoadTermsData(gctx)
		return err
	})
	g.Go(func() error {
		_, err := s.LoadAliasesData(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dataset load failed")
		s.logger.Error("failed to load game data", slog.Any("error", err))
		return nil, err
	}

	moves, err := s.LoadAllRoleMoves(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "move load failed")
		s.logger.Error("failed to load game data", slog.Any("error", err))
		return nil, err
	}

	s.logger.Info("all game data loaded",
		slog.Int("moves", len(moves)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return moves, nil
}
