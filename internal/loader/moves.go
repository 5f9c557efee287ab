package loader

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/hexref/internal/gamedata"
	"github.com/samdwyer/hexref/internal/jsonvalue"
	"github.com/samdwyer/hexref/internal/locale"
)

// LoadAllRoleMoves loads every move file referenced by the published
// availability map and returns the combined move list. Files load
// concurrently; translations are then merged by id one file at a time.
// Every move gets a category, and each move id records which files
// contributed it. The combined list and the provenance map are published as
// "moves" and "moveSources", and each file's list under its own name.
func (s *Session) LoadAllRoleMoves(ctx context.Context) (jsonvalue.Array, error) {
	availability, ok := s.AvailabilityMap()
	if !ok {
		return nil, ErrAvailabilityMissing
	}

	files := availability.MoveFiles()

	ctx, span := s.tracer.Start(ctx, "loader.load_moves",
		trace.WithAttributes(
			attribute.String("session.id", s.id),
			attribute.Int("moves.files", len(files)),
		))
	defer span.End()

	if len(files) == 0 {
		s.logger.Warn("no move files specified in availability map")
		moves := jsonvalue.Array{}
		s.publishMoves(moves, gamedata.NewSourceMap())
		return moves, nil
	}

	s.logger.Info("loading move files from availability map", slog.Int("files", len(files)))

	requests := make([]DatasetFile, len(files))
	for i, file := range files {
		requests[i] = DatasetFile{Path: file.Path, Name: file.Name}
	}
	lists, err := s.LoadMultiple(ctx, requests)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "move file load failed")
		return nil, err
	}

	if s.lang != locale.Default {
		for i, file := range files {
			lists[i] = s.translateMoves(ctx, file, lists[i])
		}
	}

	moves := jsonvalue.Array{}
	sources := gamedata.NewSourceMap()
	for i, file := range files {
		list, ok := lists[i].(jsonvalue.Array)
		if !ok {
			s.logger.Warn("move file is not a list, skipping", slog.String("path", file.Path))
			continue
		}
		for _, item := range list {
			move, ok := item.(*jsonvalue.Object)
			if !ok {
				s.logger.Warn("skipping move that is not an object",
					slog.String("path", file.Path),
					slog.String("kind", item.Kind().String()),
				)
				continue
			}
			if id, ok := jsonvalue.ID(move); ok {
				sources.Add(id, gamedata.MoveSource{File: file.Path, Role: file.Role})
			}
			moves = append(moves, gamedata.NormalizeMove(move))
		}
	}

	s.publishMoves(moves, sources)

	collisions := sources.Collisions()
	span.SetAttributes(
		attribute.Int("moves.count", len(moves)),
		attribute.Int("moves.collisions", len(collisions)),
	)
	s.logger.Info("combined moves",
		slog.Int("moves", len(moves)),
		slog.Int("collisions", len(collisions)),
	)
	return moves, nil
}

// translateMoves merges the localized copy of a move file into its list and
// republishes it. The base list is kept when there is no usable translation.
func (s *Session) translateMoves(ctx context.Context, file gamedata.MoveFile, base jsonvalue.Value) jsonvalue.Value {
	path := locale.LocalizedPath(file.Path, s.lang)
	translation, ok := s.fetchTranslation(ctx, path)
	if !ok {
		return base
	}

	baseList, baseIsList := base.(jsonvalue.Array)
	trList, trIsList := translation.(jsonvalue.Array)
	if !baseIsList || !trIsList {
		s.logger.Debug("translation not mergeable, using base", slog.String("path", path))
		return base
	}

	merged := jsonvalue.MergeByID(baseList, trList)
	s.publish(file.Name, merged)
	s.logger.Debug("loaded translation", slog.String("path", path), slog.String("dataset", file.Name))
	return merged
}

func (s *Session) publishMoves(moves jsonvalue.Array, sources *gamedata.SourceMap) {
	s.publish(DatasetMoves, moves)
	s.publish(DatasetMoveSources, sources.Value())

	s.mu.Lock()
	s.sources = sources
	s.mu.Unlock()
}
