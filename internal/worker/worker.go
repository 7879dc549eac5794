// Package worker fans venue activity fetches out over a small pool so one
// slow venue never serializes the whole collection run.
package worker

import (
	"context"
	"sync"

	"github.com/pzwatch/go-pizza-index/internal/models"
)

// FetchFunc produces a reading for one venue. A nil reading means the venue
// is skipped for this run.
type FetchFunc func(ctx context.Context, venue *models.Venue) *models.ActivityReading

type FetchPool struct {
	numWorkers int
	jobs       chan *models.Venue
	fetch      FetchFunc
	wg         sync.WaitGroup

	mu       sync.Mutex
	readings []*models.ActivityReading
}

func NewFetchPool(numWorkers int, bufferSize int, fetch FetchFunc) *FetchPool {
	return &FetchPool{
		numWorkers: numWorkers,
		jobs:       make(chan *models.Venue, bufferSize),
		fetch:      fetch,
	}
}

func (p *FetchPool) Start(ctx context.Context) {
	for i := 1; i <= p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *FetchPool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case venue, ok := <-p.jobs:
			if !ok {
				return
			}
			reading := p.fetch(ctx, venue)
			if reading == nil {
				continue
			}
			p.mu.Lock()
			p.readings = append(p.readings, reading)
			p.mu.Unlock()
		}
	}
}

func (p *FetchPool) Submit(venue *models.Venue) {
	p.jobs <- venue
}

// Wait closes the job channel, waits for in-flight fetches, and returns every
// reading collected this run.
func (p *FetchPool) Wait() []*models.ActivityReading {
	close(p.jobs)
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readings
}
