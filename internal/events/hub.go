// Package events fans out entity changes to live feed subscribers.
package events

import (
	"sync"
	"time"

	"github.com/pandeptwidyaop/agents-rest/internal/metrics"
)

// Kind identifies the entity an event is about.
type Kind string

const (
	// KindAgent marks agent creation and movement.
	KindAgent Kind = "agent"
	// KindTarget marks target creation, movement and elimination.
	KindTarget Kind = "target"
	// KindMission marks mission proposal, assignment and completion.
	KindMission Kind = "mission"
)

// Event is a single change pushed to subscribers.
type Event struct {
	At     time.Time `json:"at"`
	Type   string    `json:"type"` // created, pinned, moved, proposed, assigned, completed
	Kind   Kind      `json:"kind"`
	Status string    `json:"status,omitempty"`
	ID     int64     `json:"id"`
	X      int       `json:"x"`
	Y      int       `json:"y"`
}

// Publisher is implemented by Hub. Stores depend on this so a nil-safe
// no-op can be used in tests.
type Publisher interface {
	Publish(Event)
}

// Hub broadcasts events to every subscriber. Publish never blocks: a
// subscriber whose buffer is full misses the event.
type Hub struct {
	subscribers map[chan Event]struct{}
	mu          sync.RWMutex
	buffer      int
}

// NewHub creates a hub whose subscriber channels hold up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 64
	}
	return &Hub{
		subscribers: make(map[chan Event]struct{}),
		buffer:      buffer,
	}
}

// Subscribe registers a new buffered channel that receives every event
// published from now on.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, h.buffer)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	metrics.FeedSubscribers.Inc()
	return ch
}

// Unsubscribe removes ch and closes it. Unknown channels are ignored.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subscribers[ch]; !ok {
		return
	}
	delete(h.subscribers, ch)
	close(ch)
	metrics.FeedSubscribers.Dec()
}

// Publish stamps e and delivers it to every subscriber with buffer room.
func (h *Hub) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers {
		select {
		case ch <- e:
		default:
		}
	}
}

// Len returns the number of current subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Discard is a Publisher that drops every event.
type Discard struct{}

func (Discard) Publish(Event) {}
