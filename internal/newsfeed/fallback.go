package newsfeed

import (
	"time"

	"github.com/pzwatch/go-pizza-index/internal/models"
)

// SampleEvents is the built-in feed shown when no provider responds and the
// store has nothing to serve. The records mirror real coverage so the
// user-facing feed is never empty.
func SampleEvents() []models.NewsEvent {
	published := time.Date(2025, time.August, 30, 0, 0, 0, 0, time.UTC)

	return []models.NewsEvent{
		{
			Title:             "Russia Distracts Its Citizens From Ukraine War With Nonstop Festivals",
			Description:       "This event is significant for global geopolitical stability and may influence regional policies.",
			Source:            "NY Times",
			URL:               "https://www.nytimes.com/2025/08/30/world/europe/russia-ukraine-war-summer-in-moscow.html",
			PublishedDate:     published,
			SignificanceScore: 75,
			EventType:         models.EventTypeConflict,
		},
		{
			Title:             "Over 15 Killed in Gaza City, One Day After Israel Ends Daily Pauses for Aid",
			Description:       "Key developments here could affect international relations and military strategies.",
			Source:            "NY Times",
			URL:               "https://www.nytimes.com/2025/08/30/world/middleeast/gaza-israel-deadly-strikes.html",
			PublishedDate:     published,
			SignificanceScore: 85,
			EventType:         models.EventTypeMilitary,
		},
		{
			Title:             "Houthis confirm their prime minister killed in Israeli strike",
			Description:       "This event is significant for global geopolitical stability and may influence regional policies.",
			Source:            "BBC",
			URL:               "https://www.bbc.com/news/articles/c620ykrxedwo?at_medium=RSS&at_campaign=rss",
			PublishedDate:     published,
			SignificanceScore: 90,
			EventType:         models.EventTypeMilitary,
		},
		{
			Title:             "Prominent Ukrainian politician Andriy Parubiy shot dead in Lviv",
			Description:       "Key developments here could affect international relations and military strategies.",
			Source:            "BBC",
			URL:               "https://www.bbc.com/news/articles/cjw6ep37469o?at_medium=RSS&at_campaign=rss",
			PublishedDate:     published,
			SignificanceScore: 80,
			EventType:         models.EventTypeConflict,
		},
	}
}
