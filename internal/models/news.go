package models

import "time"

type EventType string

const (
	EventTypeMilitary   EventType = "military"
	EventTypeDiplomatic EventType = "diplomatic"
	EventTypeConflict   EventType = "conflict"
	EventTypeGeneral    EventType = "general"
)

type NewsEvent struct {
	ID                int64
	Title             string
	Description       string
	Source            string // "News API", "NY Times", "BBC"
	URL               string // canonical dedup key, unique across all time
	PublishedDate     time.Time
	SignificanceScore int // 0-100 relevance to military/pentagon activity
	EventType         EventType
	CreatedAt         time.Time // when we ingested it
}

type Correlation struct {
	ID              int64
	EventID         int64
	Date            time.Time
	SpikePercentage float64
	Description     string
	IsFeatured      bool
	CreatedAt       time.Time
}
