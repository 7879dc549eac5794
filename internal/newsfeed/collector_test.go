package newsfeed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pzwatch/go-pizza-index/internal/broadcast"
	"github.com/pzwatch/go-pizza-index/internal/models"
)

// mockEventRepo implements repository.EventRepository for testing
type mockEventRepo struct {
	mu       sync.Mutex
	events   map[string]*models.NewsEvent
	inserted int
	failAll  bool
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{
		events: make(map[string]*models.NewsEvent),
	}
}

func (m *mockEventRepo) AddEvents(ctx context.Context, events []*models.NewsEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return errors.New("store unavailable")
	}
	for _, e := range events {
		m.events[e.URL] = e
		m.inserted++
	}
	return nil
}

func (m *mockEventRepo) GetEventByURL(ctx context.Context, url string) (*models.NewsEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return nil, errors.New("store unavailable")
	}
	return m.events[url], nil
}

func (m *mockEventRepo) ListEvents(ctx context.Context, limit int) ([]models.NewsEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return nil, errors.New("store unavailable")
	}
	var out []models.NewsEvent
	for _, e := range m.events {
		if len(out) == limit {
			break
		}
		out = append(out, *e)
	}
	return out, nil
}

func (m *mockEventRepo) insertCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inserted
}

// stubSource returns a fixed batch or a fixed error.
type stubSource struct {
	name   string
	events []*models.NewsEvent
	err    error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(ctx context.Context) ([]*models.NewsEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	// Fresh copies: the collector hands pointers to the repo.
	out := make([]*models.NewsEvent, len(s.events))
	for i, e := range s.events {
		cp := *e
		out[i] = &cp
	}
	return out, nil
}

func makeEvent(n int) *models.NewsEvent {
	return &models.NewsEvent{
		Title:             fmt.Sprintf("Headline %d", n),
		Source:            "test",
		URL:               fmt.Sprintf("http://x/%d", n),
		PublishedDate:     time.Now().UTC(),
		SignificanceScore: 50,
		EventType:         models.EventTypeGeneral,
		CreatedAt:         time.Now().UTC(),
	}
}

func TestCollector_Collect_PersistsAndReturnsFeed(t *testing.T) {
	repo := newMockEventRepo()
	src := &stubSource{name: "test", events: []*models.NewsEvent{
		makeEvent(1), makeEvent(2), makeEvent(3), makeEvent(4), makeEvent(5),
	}}

	c := NewCollector(repo, nil, src)
	feed, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(feed) != 4 {
		t.Fatalf("expected feed of 4, got %d", len(feed))
	}
	if repo.insertCount() != 5 {
		t.Errorf("expected 5 inserts, got %d", repo.insertCount())
	}
}

func TestCollector_Collect_Idempotent(t *testing.T) {
	repo := newMockEventRepo()
	src := &stubSource{name: "test", events: []*models.NewsEvent{makeEvent(1), makeEvent(2)}}

	c := NewCollector(repo, nil, src)
	if _, err := c.Collect(context.Background()); err != nil {
		t.Fatalf("first Collect failed: %v", err)
	}
	first := repo.insertCount()

	feed, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("second Collect failed: %v", err)
	}

	if repo.insertCount() != first {
		t.Errorf("second run inserted %d new events, want 0", repo.insertCount()-first)
	}
	// The feed still reflects what was fetched, not what was inserted.
	if len(feed) != 2 {
		t.Errorf("expected feed of 2 on re-fetch, got %d", len(feed))
	}
}

func TestCollector_Collect_DuplicateURLAcrossSources(t *testing.T) {
	repo := newMockEventRepo()
	shared := makeEvent(1)
	a := &stubSource{name: "a", events: []*models.NewsEvent{shared}}
	b := &stubSource{name: "b", events: []*models.NewsEvent{shared}}

	c := NewCollector(repo, nil, a, b)
	if _, err := c.Collect(context.Background()); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if repo.insertCount() != 1 {
		t.Errorf("expected 1 insert for a URL shared by both sources, got %d", repo.insertCount())
	}
}

func TestCollector_Collect_SourceFailureIsolated(t *testing.T) {
	repo := newMockEventRepo()
	bad := &stubSource{name: "bad", err: &FetchError{Source: "bad", StatusCode: 500}}
	good := &stubSource{name: "good", events: []*models.NewsEvent{makeEvent(1)}}

	c := NewCollector(repo, nil, bad, good)
	feed, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(feed) != 1 {
		t.Errorf("expected 1 article from the healthy source, got %d", len(feed))
	}
	if repo.insertCount() != 1 {
		t.Errorf("expected 1 insert, got %d", repo.insertCount())
	}
}

func TestCollector_Collect_StoreFailurePropagates(t *testing.T) {
	repo := newMockEventRepo()
	repo.failAll = true
	src := &stubSource{name: "test", events: []*models.NewsEvent{makeEvent(1)}}

	c := NewCollector(repo, nil, src)
	if _, err := c.Collect(context.Background()); err == nil {
		t.Fatal("expected store failure to propagate")
	}
}

func TestCollector_Collect_BroadcastsFresh(t *testing.T) {
	repo := newMockEventRepo()
	b := broadcast.NewBroadcaster()
	id, ch := b.Subscribe()
	defer b.Unsubscribe(id)

	src := &stubSource{name: "test", events: []*models.NewsEvent{makeEvent(1)}}
	c := NewCollector(repo, b, src)

	if _, err := c.Collect(context.Background()); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	select {
	case e := <-ch:
		if e.URL != "http://x/1" {
			t.Errorf("unexpected broadcast URL %q", e.URL)
		}
	default:
		t.Error("expected a broadcast for the fresh event")
	}

	// A second run persists nothing and must broadcast nothing.
	if _, err := c.Collect(context.Background()); err != nil {
		t.Fatalf("second Collect failed: %v", err)
	}
	select {
	case e := <-ch:
		t.Errorf("unexpected broadcast %q on idempotent re-run", e.URL)
	default:
	}
}

func TestCollector_Latest_FreshWins(t *testing.T) {
	repo := newMockEventRepo()
	src := &stubSource{name: "test", events: []*models.NewsEvent{makeEvent(1)}}

	c := NewCollector(repo, nil, src)
	got := c.Latest(context.Background())

	if len(got) != 1 || got[0].URL != "http://x/1" {
		t.Errorf("expected the fetched article, got %+v", got)
	}
}

func TestCollector_Latest_StoredFallback(t *testing.T) {
	repo := newMockEventRepo()
	repo.events["http://x/stored"] = makeEvent(99)
	bad := &stubSource{name: "bad", err: &FetchError{Source: "bad", Err: errors.New("dial tcp: refused")}}

	c := NewCollector(repo, nil, bad)
	got := c.Latest(context.Background())

	if len(got) != 1 {
		t.Fatalf("expected 1 stored article, got %d", len(got))
	}
}

func TestCollector_Latest_SampleFallback(t *testing.T) {
	repo := newMockEventRepo()
	bad := &stubSource{name: "bad", err: &FetchError{Source: "bad", Err: errors.New("dial tcp: refused")}}

	c := NewCollector(repo, nil, bad)
	got := c.Latest(context.Background())

	want := SampleEvents()
	if len(got) != len(want) {
		t.Fatalf("expected the %d-item sample list, got %d items", len(want), len(got))
	}
	for i := range want {
		if got[i].URL != want[i].URL || got[i].Title != want[i].Title {
			t.Errorf("sample item %d mismatch: got %q", i, got[i].Title)
		}
	}
}

func TestCollector_Latest_SampleWhenStoreDown(t *testing.T) {
	repo := newMockEventRepo()
	repo.failAll = true
	src := &stubSource{name: "test", events: []*models.NewsEvent{makeEvent(1)}}

	c := NewCollector(repo, nil, src)
	got := c.Latest(context.Background())

	if len(got) != len(SampleEvents()) {
		t.Errorf("expected sample list when the store is down, got %d items", len(got))
	}
}
