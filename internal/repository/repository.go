package repository

import (
	"context"
	"time"

	"github.com/pzwatch/go-pizza-index/internal/models"
)

type VenueRepository interface {
	AddVenues(ctx context.Context, venues []*models.Venue) error
	CountVenues(ctx context.Context) (int, error)
	ListActiveVenues(ctx context.Context) ([]models.Venue, error)
	AddReadings(ctx context.Context, readings []*models.ActivityReading) error
	LatestReadings(ctx context.Context, limit int) ([]models.ActivityReading, error)
	ReadingsBetween(ctx context.Context, from, to time.Time) ([]models.ActivityReading, error)
}

type EventRepository interface {
	AddEvents(ctx context.Context, events []*models.NewsEvent) error
	GetEventByURL(ctx context.Context, url string) (*models.NewsEvent, error)
	ListEvents(ctx context.Context, limit int) ([]models.NewsEvent, error)
}

type CorrelationRepository interface {
	AddCorrelation(ctx context.Context, c *models.Correlation) error
	ListFeaturedCorrelations(ctx context.Context, limit int) ([]models.Correlation, error)
}
