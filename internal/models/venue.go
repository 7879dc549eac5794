package models

import "time"

type BusyLevel string

const (
	BusyLevelNotBusy   BusyLevel = "not busy"
	BusyLevelLessBusy  BusyLevel = "less busy than usual"
	BusyLevelBitBusier BusyLevel = "a bit busier than usual"
	BusyLevelBusier    BusyLevel = "busier than usual"
)

type Venue struct {
	ID        int64
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
	PlaceID   string // unique key into the places API
	Phone     string
	Rating    float64
	IsActive  bool
	CreatedAt time.Time
}

type ActivityReading struct {
	ID        int64
	VenueID   int64
	BusyLevel BusyLevel
	Score     float64 // normalized 0-100
	Raw       []byte  // original API response (or synthesized payload) for audit
	Timestamp time.Time
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

func (v *Venue) Coordinates() Coordinates {
	return Coordinates{
		Latitude:  v.Latitude,
		Longitude: v.Longitude,
	}
}
