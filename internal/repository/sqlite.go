package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pzwatch/go-pizza-index/internal/models"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS venues (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			place_id TEXT NOT NULL,
			phone TEXT,
			rating REAL,
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS activity_readings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			venue_id INTEGER NOT NULL,
			busy_level TEXT NOT NULL,
			score REAL NOT NULL,
			raw BLOB,
			timestamp DATETIME NOT NULL,
			FOREIGN KEY (venue_id) REFERENCES venues(id)
		);

		CREATE TABLE IF NOT EXISTS news_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT,
			source TEXT NOT NULL,
			url TEXT NOT NULL,
			published_date DATETIME NOT NULL,
			significance_score INTEGER NOT NULL,
			event_type TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS correlations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id INTEGER NOT NULL,
			date DATETIME NOT NULL,
			spike_percentage REAL NOT NULL,
			description TEXT,
			is_featured INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (event_id) REFERENCES news_events(id)
		);

		CREATE INDEX IF NOT EXISTS idx_readings_venue_id ON activity_readings(venue_id);
		CREATE INDEX IF NOT EXISTS idx_readings_timestamp ON activity_readings(timestamp);
		CREATE INDEX IF NOT EXISTS idx_events_url ON news_events(url);
		CREATE INDEX IF NOT EXISTS idx_events_published ON news_events(published_date);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func (s *SQLiteDB) AddVenues(ctx context.Context, venues []*models.Venue) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, v := range venues {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO venues (name, address, latitude, longitude, place_id, phone, rating, is_active, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			v.Name, v.Address, v.Latitude, v.Longitude, v.PlaceID, v.Phone, v.Rating, v.IsActive, v.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("error inserting venue %q: %w", v.Name, err)
		}
		if id, err := res.LastInsertId(); err == nil {
			v.ID = id
		}
	}

	return tx.Commit()
}

func (s *SQLiteDB) CountVenues(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM venues`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting venues: %w", err)
	}
	return count, nil
}

func (s *SQLiteDB) ListActiveVenues(ctx context.Context) ([]models.Venue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, address, latitude, longitude, place_id, COALESCE(phone, ''), COALESCE(rating, 0), is_active, created_at
		FROM venues
		WHERE is_active = 1
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying venues: %w", err)
	}
	defer rows.Close()

	var venues []models.Venue
	for rows.Next() {
		var v models.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.Latitude, &v.Longitude, &v.PlaceID, &v.Phone, &v.Rating, &v.IsActive, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning venue: %w", err)
		}
		venues = append(venues, v)
	}

	return venues, rows.Err()
}

func (s *SQLiteDB) AddReadings(ctx context.Context, readings []*models.ActivityReading) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, r := range readings {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO activity_readings (venue_id, busy_level, score, raw, timestamp)
			VALUES (?, ?, ?, ?, ?)`,
			r.VenueID, string(r.BusyLevel), r.Score, r.Raw, r.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("error inserting reading for venue %d: %w", r.VenueID, err)
		}
		if id, err := res.LastInsertId(); err == nil {
			r.ID = id
		}
	}

	return tx.Commit()
}

func (s *SQLiteDB) LatestReadings(ctx context.Context, limit int) ([]models.ActivityReading, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, venue_id, busy_level, score, raw, timestamp
		FROM activity_readings
		ORDER BY timestamp DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying readings: %w", err)
	}
	defer rows.Close()

	return scanReadings(rows)
}

func (s *SQLiteDB) ReadingsBetween(ctx context.Context, from, to time.Time) ([]models.ActivityReading, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, venue_id, busy_level, score, raw, timestamp
		FROM activity_readings
		WHERE timestamp >= ? AND timestamp <= ?
		ORDER BY timestamp DESC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying readings by window: %w", err)
	}
	defer rows.Close()

	return scanReadings(rows)
}

func scanReadings(rows *sql.Rows) ([]models.ActivityReading, error) {
	var readings []models.ActivityReading
	for rows.Next() {
		var r models.ActivityReading
		var level string
		if err := rows.Scan(&r.ID, &r.VenueID, &level, &r.Score, &r.Raw, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("error scanning reading: %w", err)
		}
		r.BusyLevel = models.BusyLevel(level)
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

func (s *SQLiteDB) AddEvents(ctx context.Context, events []*models.NewsEvent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, e := range events {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO news_events (title, description, source, url, published_date, significance_score, event_type, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.Title, e.Description, e.Source, e.URL, e.PublishedDate, e.SignificanceScore, string(e.EventType), e.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("error inserting event %q: %w", e.URL, err)
		}
		if id, err := res.LastInsertId(); err == nil {
			e.ID = id
		}
	}

	return tx.Commit()
}

func (s *SQLiteDB) GetEventByURL(ctx context.Context, url string) (*models.NewsEvent, error) {
	var e models.NewsEvent
	var eventType string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, COALESCE(description, ''), source, url, published_date, significance_score, event_type, created_at
		FROM news_events
		WHERE url = ?`, url,
	).Scan(&e.ID, &e.Title, &e.Description, &e.Source, &e.URL, &e.PublishedDate, &e.SignificanceScore, &eventType, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying event by url: %w", err)
	}
	e.EventType = models.EventType(eventType)
	return &e, nil
}

func (s *SQLiteDB) ListEvents(ctx context.Context, limit int) ([]models.NewsEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, COALESCE(description, ''), source, url, published_date, significance_score, event_type, created_at
		FROM news_events
		ORDER BY published_date DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying events: %w", err)
	}
	defer rows.Close()

	var events []models.NewsEvent
	for rows.Next() {
		var e models.NewsEvent
		var eventType string
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Source, &e.URL, &e.PublishedDate, &e.SignificanceScore, &eventType, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning event: %w", err)
		}
		e.EventType = models.EventType(eventType)
		events = append(events, e)
	}

	return events, rows.Err()
}

func (s *SQLiteDB) AddCorrelation(ctx context.Context, c *models.Correlation) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO correlations (event_id, date, spike_percentage, description, is_featured, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.EventID, c.Date, c.SpikePercentage, c.Description, c.IsFeatured, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting correlation: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		c.ID = id
	}
	return nil
}

func (s *SQLiteDB) ListFeaturedCorrelations(ctx context.Context, limit int) ([]models.Correlation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, event_id, date, spike_percentage, COALESCE(description, ''), is_featured, created_at
		FROM correlations
		WHERE is_featured = 1
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying correlations: %w", err)
	}
	defer rows.Close()

	var correlations []models.Correlation
	for rows.Next() {
		var c models.Correlation
		if err := rows.Scan(&c.ID, &c.EventID, &c.Date, &c.SpikePercentage, &c.Description, &c.IsFeatured, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning correlation: %w", err)
		}
		correlations = append(correlations, c)
	}

	return correlations, rows.Err()
}
