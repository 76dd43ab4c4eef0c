// Package events provides the in-process pub/sub bus carrying catalog
// mutation events to interested consumers, such as the websocket stream.
package events

import (
	"sync"
	"time"

	"github.com/voralis/catalogd/internal/logger"
)

// Catalog mutation event types.
const (
	TypeMovieCreated   = "movie.created"
	TypeMovieUpdated   = "movie.updated"
	TypeMovieDeleted   = "movie.deleted"
	TypeSeriesCreated  = "series.created"
	TypeSeriesUpdated  = "series.updated"
	TypeSeriesDeleted  = "series.deleted"
	TypeSeasonCreated  = "season.created"
	TypeSeasonUpdated  = "season.updated"
	TypeSeasonDeleted  = "season.deleted"
	TypeEpisodeCreated = "episode.created"
	TypeEpisodeUpdated = "episode.updated"
	TypeEpisodeDeleted = "episode.deleted"
)

// Event is one catalog mutation notification.
type Event struct {
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Bus fans events out to subscribers. Delivery is best-effort: a subscriber
// whose buffer is full loses the event rather than blocking publishers.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
	buffer int
	closed bool
}

// NewBus creates a bus whose subscriber channels buffer up to buffer events.
func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = 64
	}
	return &Bus{
		subs:   make(map[int]chan Event),
		buffer: buffer,
	}
}

// Publish delivers evt to all current subscribers. Timestamp is stamped here
// if the caller left it zero.
func (b *Bus) Publish(evt Event) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for id, ch := range b.subs {
		select {
		case ch <- evt:
		default:
			logger.Warn("event subscriber buffer full, dropping event",
				"subscriber", id, "type", evt.Type)
		}
	}
}

// Subscribe registers a new subscriber and returns its id and channel. The
// channel is closed on Unsubscribe or bus Close.
func (b *Bus) Subscribe() (int, <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, b.buffer)
	if b.closed {
		close(ch)
		return id, ch
	}
	b.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Bus) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Close shuts the bus down, closing all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
