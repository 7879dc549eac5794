package tracker

import (
	"time"

	"github.com/pzwatch/go-pizza-index/internal/models"
)

// seedVenues is the fixed set of pizza outlets around the Pentagon the
// tracker observes. Seeded once; venues are only ever deactivated, never
// removed.
func seedVenues() []*models.Venue {
	now := time.Now().UTC()

	venues := []*models.Venue{
		{
			Name:      "Extreme Pizza",
			Address:   "1419 S Fern St, Arlington, VA",
			Latitude:  38.8625,
			Longitude: -77.0647,
			PlaceID:   "ChIJcYireCe3t4kR4d9trEbGYjc",
			Rating:    4.2,
		},
		{
			Name:      "We, The Pizza",
			Address:   "2100 Crystal Dr, Arlington, VA",
			Latitude:  38.8583,
			Longitude: -77.0492,
			PlaceID:   "ChIJ42QeLXu3t4kRnArvcaz2o3A",
			Rating:    4.5,
		},
		{
			Name:      "District Pizza Palace",
			Address:   "2325 S Eads St, Arlington, VA",
			Latitude:  38.8542,
			Longitude: -77.0575,
			PlaceID:   "ChIJ42QeLXu3t4kRnArvcaz2o3A",
			Rating:    4.0,
		},
		{
			Name:      "California Pizza Kitchen at Pentagon",
			Address:   "1201 S Hayes St, Arlington, VA",
			Latitude:  38.8653,
			Longitude: -77.0603,
			PlaceID:   "ChIJ7y7tKd-2t4kRVQLgS4v63A4",
			Rating:    3.8,
		},
		{
			Name:      "Domino's Pizza - S Ball St",
			Address:   "3535 S Ball St, Arlington, VA",
			Latitude:  38.8456,
			Longitude: -77.0789,
			PlaceID:   "ChIJiRsMcTKxt4kRb9rj3ZyTt-M",
			Rating:    3.5,
		},
		{
			Name:      "Domino's Pizza - K St NW",
			Address:   "2029 K St NW, Washington, DC",
			Latitude:  38.9026,
			Longitude: -77.0459,
			PlaceID:   "ChIJlWlFSLe3t4kRz6T5efpRbus",
			Rating:    3.3,
		},
	}

	for _, v := range venues {
		v.IsActive = true
		v.CreatedAt = now
	}
	return venues
}
