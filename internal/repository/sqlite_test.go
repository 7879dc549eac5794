package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pzwatch/go-pizza-index/internal/models"
)

func setupTestDB(t *testing.T) *SQLiteDB {
	db, err := NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	return db
}

func TestSQLiteDB_AddAndListVenues(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	venues := []*models.Venue{
		{Name: "Extreme Pizza", Address: "1419 S Fern St, Arlington, VA", Latitude: 38.8625, Longitude: -77.0647, PlaceID: "place_1", Rating: 4.2, IsActive: true, CreatedAt: time.Now()},
		{Name: "We, The Pizza", Address: "2100 Crystal Dr, Arlington, VA", Latitude: 38.8583, Longitude: -77.0492, PlaceID: "place_2", Rating: 4.5, IsActive: true, CreatedAt: time.Now()},
		{Name: "Closed Pizza", Address: "0 Nowhere Rd", Latitude: 0, Longitude: 0, PlaceID: "place_3", IsActive: false, CreatedAt: time.Now()},
	}

	if err := db.AddVenues(ctx, venues); err != nil {
		t.Fatalf("AddVenues failed: %v", err)
	}
	for i, v := range venues {
		if v.ID == 0 {
			t.Errorf("venue %d did not get an ID back", i)
		}
	}

	count, err := db.CountVenues(ctx)
	if err != nil {
		t.Fatalf("CountVenues failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 venues, got %d", count)
	}

	active, err := db.ListActiveVenues(ctx)
	if err != nil {
		t.Fatalf("ListActiveVenues failed: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active venues, got %d", len(active))
	}
	if active[0].Name != "Extreme Pizza" {
		t.Errorf("expected 'Extreme Pizza' first, got %q", active[0].Name)
	}
}

func TestSQLiteDB_AddAndQueryReadings(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	venue := &models.Venue{Name: "Test Pizza", Address: "x", PlaceID: "p", IsActive: true, CreatedAt: time.Now()}
	if err := db.AddVenues(ctx, []*models.Venue{venue}); err != nil {
		t.Fatalf("AddVenues failed: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	readings := []*models.ActivityReading{
		{VenueID: venue.ID, BusyLevel: models.BusyLevelLessBusy, Score: 30, Raw: []byte(`{"score":30}`), Timestamp: now.Add(-2 * time.Hour)},
		{VenueID: venue.ID, BusyLevel: models.BusyLevelBusier, Score: 85, Raw: []byte(`{"score":85}`), Timestamp: now.Add(-time.Hour)},
		{VenueID: venue.ID, BusyLevel: models.BusyLevelBitBusier, Score: 65, Raw: []byte(`{"score":65}`), Timestamp: now},
	}
	if err := db.AddReadings(ctx, readings); err != nil {
		t.Fatalf("AddReadings failed: %v", err)
	}

	latest, err := db.LatestReadings(ctx, 2)
	if err != nil {
		t.Fatalf("LatestReadings failed: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(latest))
	}
	if latest[0].Score != 65 {
		t.Errorf("expected newest reading first (score 65), got %v", latest[0].Score)
	}

	window, err := db.ReadingsBetween(ctx, now.Add(-90*time.Minute), now.Add(-30*time.Minute))
	if err != nil {
		t.Fatalf("ReadingsBetween failed: %v", err)
	}
	if len(window) != 1 {
		t.Fatalf("expected 1 reading in window, got %d", len(window))
	}
	if window[0].BusyLevel != models.BusyLevelBusier {
		t.Errorf("expected busy level %q, got %q", models.BusyLevelBusier, window[0].BusyLevel)
	}
}

func TestSQLiteDB_AddAndGetEvent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	event := &models.NewsEvent{
		Title:             "Military strike hits pentagon",
		Description:       "desc",
		Source:            "News API",
		URL:               "http://x/1",
		PublishedDate:     time.Now().UTC(),
		SignificanceScore: 100,
		EventType:         models.EventTypeMilitary,
		CreatedAt:         time.Now().UTC(),
	}

	if err := db.AddEvents(ctx, []*models.NewsEvent{event}); err != nil {
		t.Fatalf("AddEvents failed: %v", err)
	}

	got, err := db.GetEventByURL(ctx, "http://x/1")
	if err != nil {
		t.Fatalf("GetEventByURL failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected event, got nil")
	}
	if got.Title != "Military strike hits pentagon" {
		t.Errorf("unexpected title %q", got.Title)
	}
	if got.EventType != models.EventTypeMilitary {
		t.Errorf("unexpected event type %q", got.EventType)
	}

	missing, err := db.GetEventByURL(ctx, "http://x/none")
	if err != nil {
		t.Fatalf("GetEventByURL failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown url, got %+v", missing)
	}
}

func TestSQLiteDB_ListEvents_OrderedByPublished(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now().UTC()
	events := []*models.NewsEvent{
		{Title: "old", Source: "t", URL: "http://x/old", PublishedDate: now.Add(-48 * time.Hour), EventType: models.EventTypeGeneral, CreatedAt: now},
		{Title: "new", Source: "t", URL: "http://x/new", PublishedDate: now, EventType: models.EventTypeGeneral, CreatedAt: now},
		{Title: "mid", Source: "t", URL: "http://x/mid", PublishedDate: now.Add(-24 * time.Hour), EventType: models.EventTypeGeneral, CreatedAt: now},
	}
	if err := db.AddEvents(ctx, events); err != nil {
		t.Fatalf("AddEvents failed: %v", err)
	}

	got, err := db.ListEvents(ctx, 2)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Title != "new" || got[1].Title != "mid" {
		t.Errorf("expected [new mid], got [%s %s]", got[0].Title, got[1].Title)
	}
}

func TestSQLiteDB_Correlations(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now().UTC()

	event := &models.NewsEvent{Title: "t", Source: "t", URL: "http://x/c", PublishedDate: now, EventType: models.EventTypeConflict, CreatedAt: now}
	if err := db.AddEvents(ctx, []*models.NewsEvent{event}); err != nil {
		t.Fatalf("AddEvents failed: %v", err)
	}

	featured := &models.Correlation{EventID: event.ID, Date: now, SpikePercentage: 62.5, Description: "spike", IsFeatured: true, CreatedAt: now}
	plain := &models.Correlation{EventID: event.ID, Date: now, SpikePercentage: 12.0, CreatedAt: now}
	if err := db.AddCorrelation(ctx, featured); err != nil {
		t.Fatalf("AddCorrelation failed: %v", err)
	}
	if err := db.AddCorrelation(ctx, plain); err != nil {
		t.Fatalf("AddCorrelation failed: %v", err)
	}

	got, err := db.ListFeaturedCorrelations(ctx, 5)
	if err != nil {
		t.Fatalf("ListFeaturedCorrelations failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 featured correlation, got %d", len(got))
	}
	if got[0].SpikePercentage != 62.5 {
		t.Errorf("expected spike 62.5, got %v", got[0].SpikePercentage)
	}
}
