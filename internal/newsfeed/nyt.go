package newsfeed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/pzwatch/go-pizza-index/internal/models"
	"github.com/pzwatch/go-pizza-index/internal/scoring"
)

type nytResponse struct {
	Response struct {
		Docs []nytDoc `json:"docs"`
	} `json:"response"`
}

type nytDoc struct {
	Headline struct {
		Main string `json:"main"`
	} `json:"headline"`
	Abstract string `json:"abstract"`
	WebURL   string `json:"web_url"`
	PubDate  string `json:"pub_date"`
}

// NYT pub_date carries a numeric zone offset instead of RFC3339's colon form.
const nytDateLayout = "2006-01-02T15:04:05Z0700"

// NYTSource queries the New York Times article search API.
type NYTSource struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewNYTSource(apiKey, baseURL string) *NYTSource {
	return &NYTSource{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: fetchTimeout,
		},
	}
}

func (s *NYTSource) Name() string {
	return "NY Times"
}

func (s *NYTSource) Fetch(ctx context.Context) ([]*models.NewsEvent, error) {
	params := url.Values{
		"q":       {geoQuery},
		"sort":    {"newest"},
		"api-key": {s.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &FetchError{Source: s.Name(), Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{Source: s.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Source: s.Name(), StatusCode: resp.StatusCode}
	}

	var data nytResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &FetchError{Source: s.Name(), Err: err}
	}

	events := make([]*models.NewsEvent, 0, len(data.Response.Docs))
	for _, doc := range data.Response.Docs {
		if doc.Headline.Main == "" || doc.WebURL == "" {
			continue
		}
		published, err := parseNYTDate(doc.PubDate)
		if err != nil {
			continue
		}

		title := sanitizeText(doc.Headline.Main)
		events = append(events, &models.NewsEvent{
			Title:             title,
			Description:       sanitizeText(doc.Abstract),
			Source:            s.Name(),
			URL:               doc.WebURL,
			PublishedDate:     published,
			SignificanceScore: scoring.Score(title),
			EventType:         scoring.Classify(title),
			CreatedAt:         time.Now().UTC(),
		})
	}

	return events, nil
}

func parseNYTDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(nytDateLayout, s)
}
