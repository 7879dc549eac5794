package newsfeed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pzwatch/go-pizza-index/internal/models"
	"github.com/pzwatch/go-pizza-index/internal/scoring"
)

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"` // RFC3339, 'Z'-terminated
}

// NewsAPISource queries the NewsAPI "everything" endpoint.
type NewsAPISource struct {
	apiKey   string
	baseURL  string
	pageSize int
	client   *http.Client
}

func NewNewsAPISource(apiKey, baseURL string, pageSize int) *NewsAPISource {
	return &NewsAPISource{
		apiKey:   apiKey,
		baseURL:  baseURL,
		pageSize: pageSize,
		client: &http.Client{
			Timeout: fetchTimeout,
		},
	}
}

func (s *NewsAPISource) Name() string {
	return "News API"
}

func (s *NewsAPISource) Fetch(ctx context.Context) ([]*models.NewsEvent, error) {
	params := url.Values{
		"q":        {geoQuery},
		"sortBy":   {"publishedAt"},
		"language": {"en"},
		"pageSize": {strconv.Itoa(s.pageSize)},
		"apiKey":   {s.apiKey},
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

	var data newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &FetchError{Source: s.Name(), Err: err}
	}

	events := make([]*models.NewsEvent, 0, len(data.Articles))
	for _, a := range data.Articles {
		if a.Title == "" || a.URL == "" {
			continue
		}
		published, err := time.Parse(time.RFC3339, a.PublishedAt)
		if err != nil {
			continue
		}

		title := sanitizeText(a.Title)
		events = append(events, &models.NewsEvent{
			Title:             title,
			Description:       sanitizeText(a.Description),
			Source:            s.Name(),
			URL:               a.URL,
			PublishedDate:     published,
			SignificanceScore: scoring.Score(title),
			EventType:         scoring.Classify(title),
			CreatedAt:         time.Now().UTC(),
		})
	}

	return events, nil
}
