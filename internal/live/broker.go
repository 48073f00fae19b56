// Package live fans out sync notices to open dashboards over SSE.
package live

import (
	"encoding/json"
	"sync"
	"time"
)

// SyncNotice announces that some session just ran the pipeline. It never
// carries queue data; each page only shows what its own run fetched.
type SyncNotice struct {
	Origin string    `json:"origin"`
	At     time.Time `json:"at"`
	OK     bool      `json:"ok"`
	Rows   int       `json:"rows"`
}

type Broker struct {
	mu      sync.RWMutex
	clients map[chan string]struct{}
}

func NewBroker() *Broker {
	return &Broker{clients: make(map[chan string]struct{})}
}

func (b *Broker) Subscribe() chan string {
	ch := make(chan string, 16)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(ch chan string) {
	b.mu.Lock()
	delete(b.clients, ch)
	b.mu.Unlock()
	close(ch)
}

// Clients returns the number of subscribers.
func (b *Broker) Clients() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Publish delivers n to every subscriber. Slow subscribers miss notices
// instead of blocking the publisher.
func (b *Broker) Publish(n SyncNotice) {
	msg, err := json.Marshal(n)
	if err != nil {
		return
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.clients {
		select {
		case ch <- string(msg):
		default:
		}
	}
}
