// Package newsfeed collects geopolitical articles from external news
// providers, normalizes them into NewsEvent records, and persists only those
// not seen before (dedup by URL).
package newsfeed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pzwatch/go-pizza-index/internal/models"
)

// geoQuery is the shared OR-query over conflict/military keywords sent to
// every keyword-capable provider.
const geoQuery = "military OR pentagon OR ukraine OR israel OR iran OR russia OR war OR conflict"

const fetchTimeout = 10 * time.Second

// Source fetches raw articles from one provider and normalizes them. A failed
// fetch returns a *FetchError; partial records (missing title, URL, or date)
// are filtered out, not reported.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]*models.NewsEvent, error)
}

// FetchError distinguishes transport failures (StatusCode 0) from non-2xx
// provider responses.
type FetchError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status code: %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("%s: fetch failed: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Transport reports whether the failure happened before any HTTP status was
// received.
func (e *FetchError) Transport() bool {
	return e.StatusCode == 0
}

// sanitizeText trims whitespace and replaces undecodable bytes so malformed
// upstream encoding never reaches the store.
func sanitizeText(s string) string {
	return strings.TrimSpace(strings.ToValidUTF8(s, "�"))
}
