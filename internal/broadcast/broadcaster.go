// Package broadcast fans newly persisted news events out to in-process
// subscribers (the correlation detector, and anything else that wants a live
// feed). Broadcast never blocks: slow subscribers miss events.
package broadcast

import (
	"sync"
	"sync/atomic"

	"github.com/pzwatch/go-pizza-index/internal/models"
)

type Broadcaster struct {
	subscribers map[uint64]chan *models.NewsEvent
	nextID      atomic.Uint64
	mu          sync.RWMutex
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uint64]chan *models.NewsEvent),
	}
}

func (b *Broadcaster) Subscribe() (uint64, chan *models.NewsEvent) {
	id := b.nextID.Add(1)
	ch := make(chan *models.NewsEvent, 100)

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	return id, ch
}

func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

func (b *Broadcaster) Broadcast(e *models.NewsEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- e:
		default:
			// Skip slow subscribers
		}
	}
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close closes every subscriber channel and clears the registry.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
