// Package tracker runs the venue collection pipeline: make sure the venue
// table is seeded, fetch one activity reading per active venue, persist the
// batch, and report display records for the web layer.
package tracker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pzwatch/go-pizza-index/internal/metrics"
	"github.com/pzwatch/go-pizza-index/internal/models"
	"github.com/pzwatch/go-pizza-index/internal/repository"
	"github.com/pzwatch/go-pizza-index/internal/worker"
)

// ActivityFetcher is the per-venue adapter. It never fails: every call
// returns a reading, synthesized if the provider is unusable.
type ActivityFetcher interface {
	FetchActivity(ctx context.Context, venue *models.Venue) *models.ActivityReading
}

// DisplayReading is the per-venue summary handed to the web layer.
type DisplayReading struct {
	Outlet        string  `json:"outlet"`
	Address       string  `json:"address"`
	BusyLevel     string  `json:"busy_level"`
	Timestamp     string  `json:"timestamp"` // local clock time, e.g. "6:15 PM"
	ActivityScore float64 `json:"activity_score"`
}

type Collector struct {
	repo    repository.VenueRepository
	fetcher ActivityFetcher
	workers int
}

func NewCollector(repo repository.VenueRepository, fetcher ActivityFetcher, workers int) *Collector {
	if workers < 1 {
		workers = 1
	}
	return &Collector{
		repo:    repo,
		fetcher: fetcher,
		workers: workers,
	}
}

// Collect fetches a reading for every active venue and commits the batch in
// one transaction. Per-venue failures are absorbed by the fetcher; only store
// failures propagate.
func (c *Collector) Collect(ctx context.Context) ([]DisplayReading, error) {
	if err := c.ensureSeeded(ctx); err != nil {
		return nil, err
	}

	venues, err := c.repo.ListActiveVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing venues: %w", err)
	}

	byID := make(map[int64]*models.Venue, len(venues))
	pool := worker.NewFetchPool(c.workers, len(venues)+1, c.fetcher.FetchActivity)
	pool.Start(ctx)
	for i := range venues {
		v := &venues[i]
		byID[v.ID] = v
		pool.Submit(v)
	}
	readings := pool.Wait()

	if len(readings) == 0 {
		slog.Warn("no readings collected this run")
		return nil, nil
	}

	if err := c.repo.AddReadings(ctx, readings); err != nil {
		return nil, fmt.Errorf("error persisting readings: %w", err)
	}
	metrics.ReadingsRecorded.Add(float64(len(readings)))

	display := make([]DisplayReading, 0, len(readings))
	for _, r := range readings {
		venue := byID[r.VenueID]
		if venue == nil {
			continue
		}
		display = append(display, DisplayReading{
			Outlet:        venue.Name,
			Address:       venue.Address,
			BusyLevel:     string(r.BusyLevel),
			Timestamp:     r.Timestamp.Format("3:04 PM"),
			ActivityScore: r.Score,
		})
	}

	slog.Info("venue collection complete", "venues", len(venues), "readings", len(readings))
	return display, nil
}

// ensureSeeded populates the venue table from the built-in list exactly once.
// The count guard makes it idempotent: any existing venue skips seeding.
func (c *Collector) ensureSeeded(ctx context.Context) error {
	count, err := c.repo.CountVenues(ctx)
	if err != nil {
		return fmt.Errorf("error counting venues: %w", err)
	}
	if count > 0 {
		return nil
	}

	venues := seedVenues()
	if err := c.repo.AddVenues(ctx, venues); err != nil {
		return fmt.Errorf("error seeding venues: %w", err)
	}

	slog.Info("seeded pizza venues", "count", len(venues))
	return nil
}
