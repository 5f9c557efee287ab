package loader

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/hexref/internal/jsonvalue"
	"github.com/samdwyer/hexref/internal/locale"
)

// Content paths of the base datasets.
const (
	StatsPath      = "data/stats.json"
	CategoriesPath = "data/categories.json"
	TermsPath      = "data/terms.json"
	AliasesPath    = "data/aliases.json"
)

// LoadJSON fetches path, parses it and publishes it under name. A response
// other than 2xx, including 404, is a fatal *LoadError.
func (s *Session) LoadJSON(ctx context.Context, path, name string) (jsonvalue.Value, error) {
	ctx, span := s.tracer.Start(ctx, "loader.load_json",
		trace.WithAttributes(
			attribute.String("session.id", s.id),
			attribute.String("dataset", name),
			attribute.String("path", path),
		))
	defer span.End()

	if !s.fetcher.CanFetch() {
		err := &LoadError{Path: path, Err: ErrNoFetchCapability}
		span.RecordError(err)
		span.SetStatus(codes.Error, "no fetch capability")
		return nil, err
	}

	resp, err := s.fetcher.FetchWithRetry(ctx, path)
	if err != nil {
		loadErr := &LoadError{Path: path, Err: err}
		span.RecordError(loadErr)
		span.SetStatus(codes.Error, "fetch failed")
		s.logger.Error("error loading dataset", slog.String("path", path), slog.Any("error", err))
		return nil, loadErr
	}
	if !resp.OK() {
		loadErr := &LoadError{Path: path, Status: resp.StatusCode}
		span.SetStatus(codes.Error, "unexpected status")
		s.logger.Error("error loading dataset", slog.String("path", path), slog.Int("status", resp.StatusCode))
		return nil, loadErr
	}

	data, err := jsonvalue.Parse(resp.Body)
	if err != nil {
		loadErr := &LoadError{Path: path, Status: resp.StatusCode, Err: err}
		span.RecordError(loadErr)
		span.SetStatus(codes.Error, "invalid JSON")
		s.logger.Error("error parsing dataset", slog.String("path", path), slog.Any("error", err))
		return nil, loadErr
	}

	s.publish(name, data)
	s.logger.Debug("loaded dataset",
		slog.String("dataset", name),
		slog.String("path", path),
		slog.String("kind", data.Kind().String()),
		slog.Int("size", size(data)),
	)
	return data, nil
}

// DatasetFile names a content file and the dataset it is published as.
type DatasetFile struct {
	Path string
	Name string
}

// LoadMultiple loads files concurrently with LoadJSON and returns their
// values in the order given. The first failure cancels the rest and is
// returned.
func (s *Session) LoadMultiple(ctx context.Context, files []DatasetFile) ([]jsonvalue.Value, error) {
	values := make([]jsonvalue.Value, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			v, err := s.LoadJSON(gctx, file.Path, file.Name)
			if err != nil {
				return err
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return values, nil
}

// LoadJSONWithTranslations loads path like LoadJSON and then, for a language
// other than the default, overlays the localized copy. With mergeByID and
// two lists the translation is merged item by item; otherwise it replaces
// the base value. A missing or broken translation keeps the base value.
func (s *Session) LoadJSONWithTranslations(ctx context.Context, path, name string, mergeByID bool) (jsonvalue.Value, error) {
	data, err := s.LoadJSON(ctx, path, name)
	if err != nil {
		return nil, err
	}
	if s.lang == locale.Default {
		return data, nil
	}

	translationPath := locale.LocalizedPath(path, s.lang)
	translation, ok := s.fetchTranslation(ctx, translationPath)
	if !ok {
		return data, nil
	}

	base, baseIsList := data.(jsonvalue.Array)
	tr, trIsList := translation.(jsonvalue.Array)
	if mergeByID && baseIsList && trIsList {
		data = jsonvalue.MergeByID(base, tr)
	} else {
		data = translation
	}

	s.publish(name, data)
	s.logger.Debug("loaded translation", slog.String("path", translationPath), slog.String("dataset", name))
	return data, nil
}

// fetchTranslation fetches and parses a localized file. Every failure is
// reported as absence.
func (s *Session) fetchTranslation(ctx context.Context, path string) (jsonvalue.Value, bool) {
	resp, err := s.fetcher.FetchWithRetry(ctx, path)
	if err != nil {
		s.logger.Debug("translation not available, using base", slog.String("path", path), slog.Any("error", err))
		return nil, false
	}
	if !resp.OK() {
		s.logger.Debug("translation not found, using base", slog.String("path", path), slog.Int("status", resp.StatusCode))
		return nil, false
	}
	v, err := jsonvalue.Parse(resp.Body)
	if err != nil {
		s.logger.Debug("translation not readable, using base", slog.String("path", path), slog.Any("error", err))
		return nil, false
	}
	return v, true
}

// LoadStatsData loads the stats list, merging translations by id.
func (s *Session) LoadStatsData(ctx context.Context) (jsonvalue.Value, error) {
	return s.LoadJSONWithTranslations(ctx, StatsPath, DatasetStats, true)
}

// LoadCategoriesData loads the categories document; translations replace it.
func (s *Session) LoadCategoriesData(ctx context.Context) (jsonvalue.Value, error) {
	return s.LoadJSONWithTranslations(ctx, CategoriesPath, DatasetCategories, false)
}

// LoadTermsData loads the terms glossary; translations replace it.
func (s *Session) LoadTermsData(ctx context.Context) (jsonvalue.Value, error) {
	return s.LoadJSONWithTranslations(ctx, TermsPath, DatasetTerms, false)
}

// LoadAliasesData loads the optional aliases list. A failed load publishes
// an empty list instead; a cancelled context is returned as is.
func (s *Session) LoadAliasesData(ctx context.Context) (jsonvalue.Value, error) {
	data, err := s.LoadJSONWithTranslations(ctx, AliasesPath, DatasetAliases, false)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn("aliases file not found, using empty aliases", slog.Any("error", err))
		empty := jsonvalue.Array{}
		s.publish(DatasetAliases, empty)
		return empty, nil
	}
	return data, nil
}

func size(v jsonvalue.Value) int {
	switch x := v.(type) {
	case jsonvalue.Array:
		return len(x)
	case *jsonvalue.Object:
		return x.Len()
	default:
		return 1
	}
}
