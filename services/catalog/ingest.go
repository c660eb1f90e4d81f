package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("modelwatch.services.catalog")

// Extraction is what a site scraper yields for one model page.
type Extraction struct {
	Avatar string
	Videos []Video
}

// Source fetches and parses one model's page. Implemented by
// lib/scrapers/jable.
type Source interface {
	Scrape(ctx context.Context, model Model) (Extraction, error)
}

// Ingestor runs the incremental ingestion pass: scrape every known
// model, upsert the results, never duplicate a row.
type Ingestor struct {
	store  Store
	source Source
}

func NewIngestor(store Store, source Source) Ingestor {
	return Ingestor{store: store, source: source}
}

// SyncModel inserts the model if its name is unknown and reports
// whether it did. For known models a newly observed avatar is stored
// only when it differs from both the stored value and the placeholder;
// the return value still reflects insertion only, not avatar updates.
func (in Ingestor) SyncModel(model Model) (bool, error) {
	exists, err := in.store.Models.Contains(ModelNamed(model.Name))
	if err != nil {
		return false, err
	}
	if !exists {
		err = in.store.Models.Insert(model)
		if err != nil {
			return false, err
		}
		return true, nil
	}

	stored, err := in.store.Models.Search(ModelNamed(model.Name))
	if err != nil {
		return false, err
	}
	if model.Avatar != stored[0].Avatar && model.Avatar != DefaultAvatar {
		_, err = in.store.Models.Update(func(m *Model) {
			m.Avatar = model.Avatar
		}, ModelNamed(model.Name))
		if err != nil {
			return false, err
		}
	}
	return false, nil
}

// SyncVideos upserts candidate videos by their (id, link) key and
// reports whether at least one insert happened. A repeat observation
// refreshes views only; likes, tags and name intentionally keep their
// first-observed values.
func (in Ingestor) SyncVideos(videos []Video) (bool, error) {
	anyNew := false
	for _, video := range videos {
		key := video.Key()
		exists, err := in.store.Videos.Contains(key.Match)
		if err != nil {
			return anyNew, err
		}
		if !exists {
			err = in.store.Videos.Insert(video)
			if err != nil {
				return anyNew, err
			}
			anyNew = true
			continue
		}

		views := video.Views
		_, err = in.store.Videos.Update(func(v *Video) {
			v.Views = views
		}, key.Match)
		if err != nil {
			return anyNew, err
		}
	}
	return anyNew, nil
}

// Cleanup deletes every video whose model is not in the active set.
// This is the only point where the model to video reference is
// enforced; deletion is immediate, there are no tombstones.
func (in Ingestor) Cleanup(active map[string]Model) error {
	removed, err := in.store.Videos.Remove(func(v Video) bool {
		_, ok := active[v.Model]
		return !ok
	})
	if err != nil {
		return err
	}
	if removed > 0 {
		slog.Info("removed orphaned videos", "count", removed)
	}
	return nil
}

// Run performs one full ingestion pass over every known model. A
// failure on one model is logged and skipped so the rest of the pass
// still lands; the joined errors are returned once the pass finishes.
func (in Ingestor) Run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "ingest.Run")
	defer span.End()

	models, err := in.store.Models.All()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list models")
		return err
	}
	span.SetAttributes(attribute.Int("models", len(models)))

	var errlist []error
	for _, model := range models {
		err := in.runOne(ctx, model)
		if err != nil {
			slog.ErrorContext(ctx, "model ingestion failed", "model", model.Name, "err", err)
			errlist = append(errlist, fmt.Errorf("model %s: %w", model.Name, err))
		}
	}

	err = errors.Join(errlist...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "ingestion pass finished with failures")
	}
	return err
}

func (in Ingestor) runOne(ctx context.Context, model Model) error {
	ctx, span := tracer.Start(ctx, "ingest.runOne")
	defer span.End()
	span.SetAttributes(attribute.String("model", model.Name))

	extraction, err := in.source.Scrape(ctx, model)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scrape failed")
		return err
	}

	observed := Model{Name: model.Name, Link: model.Link, Avatar: extraction.Avatar}
	inserted, err := in.SyncModel(observed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "model sync failed")
		return err
	}

	anyNew, err := in.SyncVideos(extraction.Videos)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "video sync failed")
		return err
	}

	slog.InfoContext(ctx, "model ingested",
		"model", model.Name,
		"inserted", inserted,
		"videos", len(extraction.Videos),
		"new_videos", anyNew,
	)
	return nil
}
