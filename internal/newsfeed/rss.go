package newsfeed

import (
	"context"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/pzwatch/go-pizza-index/internal/models"
	"github.com/pzwatch/go-pizza-index/internal/scoring"
)

// RSSSource reads a public RSS/Atom feed. No API key, so it keeps producing
// articles when the keyed providers are running on placeholder credentials.
type RSSSource struct {
	name     string
	feedURL  string
	maxItems int
	parser   *gofeed.Parser
}

func NewRSSSource(name, feedURL string, maxItems int) *RSSSource {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{
		Timeout: fetchTimeout,
	}
	return &RSSSource{
		name:     name,
		feedURL:  feedURL,
		maxItems: maxItems,
		parser:   parser,
	}
}

func (s *RSSSource) Name() string {
	return s.name
}

func (s *RSSSource) Fetch(ctx context.Context) ([]*models.NewsEvent, error) {
	feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		if httpErr, ok := err.(gofeed.HTTPError); ok {
			return nil, &FetchError{Source: s.name, StatusCode: httpErr.StatusCode}
		}
		return nil, &FetchError{Source: s.name, Err: err}
	}

	events := make([]*models.NewsEvent, 0, len(feed.Items))
	for _, item := range feed.Items {
		if len(events) >= s.maxItems {
			break
		}
		if item.Title == "" || item.Link == "" || item.PublishedParsed == nil {
			continue
		}

		title := sanitizeText(item.Title)
		events = append(events, &models.NewsEvent{
			Title:             title,
			Description:       sanitizeText(item.Description),
			Source:            s.name,
			URL:               item.Link,
			PublishedDate:     *item.PublishedParsed,
			SignificanceScore: scoring.Score(title),
			EventType:         scoring.Classify(title),
			CreatedAt:         time.Now().UTC(),
		})
	}

	return events, nil
}
