// Package events implements the in-process fan-out bus that keeps connected
// map clients live without polling. Delivery is best-effort to observers
// connected at the moment of publication; there is no replay and no durable
// queue.
package events

import (
	"sync"
)

// EventKind identifies what was created.
type EventKind string

const (
	MarkerAdded EventKind = "markerAdded"
	ZoneAdded   EventKind = "zoneAdded"
)

// Event carries the full representation of the newly created entity.
type Event struct {
	Kind    EventKind `json:"event"`
	Payload any       `json:"payload"`
}

// subscriberBuffer is how many events a slow observer can lag behind before
// it starts missing them.
const subscriberBuffer = 16

// Bus is a broadcast registry with explicit connect/disconnect lifecycle.
// Publish never blocks: an observer whose buffer is full simply misses the
// event.
type Bus struct {
	mu     sync.Mutex
	subs   map[int64]chan Event
	nextID int64
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int64]chan Event)}
}

// Subscribe registers an observer and returns its id together with the
// receive channel. The caller must Unsubscribe with the same id when done.
func (b *Bus) Subscribe() (int64, <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch
	return id, ch
}

// Unsubscribe removes the observer and closes its channel. Unknown ids are
// ignored so disconnect paths can call it unconditionally.
func (b *Bus) Unsubscribe(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish delivers the event to every observer currently subscribed.
func (b *Bus) Publish(evt Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- evt:
		default:
			// Observer is not keeping up; drop rather than block.
		}
	}
}

// SubscriberCount returns the number of connected observers.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
