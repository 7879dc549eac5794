package newsfeed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pzwatch/go-pizza-index/internal/broadcast"
	"github.com/pzwatch/go-pizza-index/internal/metrics"
	"github.com/pzwatch/go-pizza-index/internal/models"
	"github.com/pzwatch/go-pizza-index/internal/repository"
)

// feedSize is how many articles the feed surfaces to callers.
const feedSize = 4

// Collector orchestrates the configured sources: fetch everything, persist
// what hasn't been seen before, and hand back the freshest slice.
type Collector struct {
	sources     []Source
	repo        repository.EventRepository
	broadcaster *broadcast.Broadcaster
}

func NewCollector(repo repository.EventRepository, broadcaster *broadcast.Broadcaster, sources ...Source) *Collector {
	return &Collector{
		sources:     sources,
		repo:        repo,
		broadcaster: broadcaster,
	}
}

// Collect fetches from every source, persists unseen articles in one
// transaction, and returns up to feedSize articles from the fetched batch.
// The return value is "latest known", not "newly inserted": an article the
// store already had still counts toward the slice. Source failures are
// contained here; only store failures propagate.
func (c *Collector) Collect(ctx context.Context) ([]models.NewsEvent, error) {
	var fetched []*models.NewsEvent
	for _, src := range c.sources {
		events, err := src.Fetch(ctx)
		if err != nil {
			var fetchErr *FetchError
			if errors.As(err, &fetchErr) && !fetchErr.Transport() {
				slog.Warn("news source rejected request", "source", src.Name(), "status", fetchErr.StatusCode)
			} else {
				slog.Warn("news source unreachable", "source", src.Name(), "error", err)
			}
			continue
		}
		slog.Debug("fetched articles", "source", src.Name(), "count", len(events))
		fetched = append(fetched, events...)
	}

	fresh, err := c.persistNew(ctx, fetched)
	if err != nil {
		return nil, err
	}
	for _, e := range fresh {
		metrics.EventsIngested.WithLabelValues(e.Source).Inc()
		if c.broadcaster != nil {
			c.broadcaster.Broadcast(e)
		}
	}
	if len(fresh) > 0 {
		slog.Info("persisted news events", "count", len(fresh))
	}

	feed := make([]models.NewsEvent, 0, feedSize)
	for _, e := range fetched {
		if len(feed) == feedSize {
			break
		}
		feed = append(feed, *e)
	}
	return feed, nil
}

// persistNew inserts the articles whose URL has never been stored, committing
// the batch as one transaction.
func (c *Collector) persistNew(ctx context.Context, fetched []*models.NewsEvent) ([]*models.NewsEvent, error) {
	seen := make(map[string]struct{}, len(fetched))
	var fresh []*models.NewsEvent

	for _, e := range fetched {
		if _, dup := seen[e.URL]; dup {
			continue
		}
		seen[e.URL] = struct{}{}

		existing, err := c.repo.GetEventByURL(ctx, e.URL)
		if err != nil {
			return nil, fmt.Errorf("error checking existing event: %w", err)
		}
		if existing != nil {
			continue
		}
		fresh = append(fresh, e)
	}

	if len(fresh) == 0 {
		return nil, nil
	}
	if err := c.repo.AddEvents(ctx, fresh); err != nil {
		return nil, fmt.Errorf("error persisting news events: %w", err)
	}
	return fresh, nil
}

// Latest is the read path behind the news feed endpoint: fresh articles when
// any source responds, the stored top articles otherwise, and the built-in
// sample list when the store has nothing to give.
func (c *Collector) Latest(ctx context.Context) []models.NewsEvent {
	fetched, err := c.Collect(ctx)
	if err != nil {
		slog.Error("news collection failed", "error", err)
	} else if len(fetched) > 0 {
		return fetched
	}

	stored, err := c.repo.ListEvents(ctx, feedSize)
	if err != nil {
		slog.Error("error reading stored events", "error", err)
		return SampleEvents()
	}
	if len(stored) == 0 {
		return SampleEvents()
	}
	return stored
}
