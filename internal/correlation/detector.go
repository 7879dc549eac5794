// Package correlation watches the live news feed for high-significance
// events and checks whether venue activity in the hours before the event sat
// above its off-peak baseline. A large enough spike is recorded as a
// Correlation for the web layer to feature.
package correlation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pzwatch/go-pizza-index/internal/broadcast"
	"github.com/pzwatch/go-pizza-index/internal/models"
	"github.com/pzwatch/go-pizza-index/internal/repository"
)

// baselineScore is the off-peak activity level; spikes are measured against it.
const baselineScore = 30

// featuredSpikePct marks a correlation prominent enough for the front page.
const featuredSpikePct = 50

type Store interface {
	repository.CorrelationRepository
	ReadingsBetween(ctx context.Context, from, to time.Time) ([]models.ActivityReading, error)
}

type Detector struct {
	store    Store
	events   *broadcast.Broadcaster
	minScore int
	window   time.Duration
	now      func() time.Time

	subID uint64
	wg    sync.WaitGroup
}

func NewDetector(store Store, events *broadcast.Broadcaster, minScore int, window time.Duration) *Detector {
	return &Detector{
		store:    store,
		events:   events,
		minScore: minScore,
		window:   window,
		now:      time.Now,
	}
}

// Start subscribes to the event feed and processes events until the context
// is cancelled or the broadcaster closes.
func (d *Detector) Start(ctx context.Context) {
	id, ch := d.events.Subscribe()
	d.subID = id

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-ch:
				if !ok {
					return
				}
				if err := d.inspect(ctx, event); err != nil {
					slog.Error("correlation check failed", "url", event.URL, "error", err)
				}
			}
		}
	}()
}

func (d *Detector) Stop() {
	d.events.Unsubscribe(d.subID)
	d.wg.Wait()
}

// inspect compares venue activity in the window before the event against the
// off-peak baseline and records a correlation when it spiked.
func (d *Detector) inspect(ctx context.Context, event *models.NewsEvent) error {
	if event.SignificanceScore < d.minScore {
		return nil
	}

	end := event.PublishedDate
	if end.After(d.now()) {
		end = d.now()
	}
	readings, err := d.store.ReadingsBetween(ctx, end.Add(-d.window), end)
	if err != nil {
		return fmt.Errorf("error reading activity window: %w", err)
	}
	if len(readings) == 0 {
		return nil
	}

	var sum float64
	for _, r := range readings {
		sum += r.Score
	}
	avg := sum / float64(len(readings))
	if avg <= baselineScore {
		return nil
	}

	spike := (avg - baselineScore) / baselineScore * 100

	c := &models.Correlation{
		EventID:         event.ID,
		Date:            event.PublishedDate,
		SpikePercentage: spike,
		Description: fmt.Sprintf("Pizza activity averaged %.0f (%.0f%% above baseline) in the %s before %q",
			avg, spike, d.window, event.Title),
		IsFeatured: spike >= featuredSpikePct,
		CreatedAt:  d.now().UTC(),
	}
	if err := d.store.AddCorrelation(ctx, c); err != nil {
		return fmt.Errorf("error persisting correlation: %w", err)
	}

	slog.Info("recorded correlation", "event_id", event.ID, "spike_pct", spike, "featured", c.IsFeatured)
	return nil
}
