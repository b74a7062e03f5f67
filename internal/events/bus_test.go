package events

import (
	"testing"
)

func TestPublishReachesAllConnectedObservers(t *testing.T) {
	bus := NewBus()

	id1, ch1 := bus.Subscribe()
	id2, ch2 := bus.Subscribe()
	defer bus.Unsubscribe(id1)
	defer bus.Unsubscribe(id2)

	bus.Publish(Event{Kind: ZoneAdded, Payload: "zone-1"})

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case evt := <-ch:
			if evt.Kind != ZoneAdded {
				t.Errorf("observer %d: expected zoneAdded, got %s", i+1, evt.Kind)
			}
			if evt.Payload != "zone-1" {
				t.Errorf("observer %d: unexpected payload %v", i+1, evt.Payload)
			}
		default:
			t.Fatalf("observer %d received nothing", i+1)
		}
	}
}

func TestLateSubscriberNeverSeesEarlierEvents(t *testing.T) {
	bus := NewBus()

	id1, ch1 := bus.Subscribe()
	defer bus.Unsubscribe(id1)

	bus.Publish(Event{Kind: MarkerAdded, Payload: "marker-1"})

	id3, ch3 := bus.Subscribe()
	defer bus.Unsubscribe(id3)

	if len(ch1) != 1 {
		t.Fatalf("expected the connected observer to hold 1 event, got %d", len(ch1))
	}
	if len(ch3) != 0 {
		t.Fatalf("late subscriber must not receive replayed events, got %d", len(ch3))
	}
}

func TestUnsubscribedObserverMissesEvents(t *testing.T) {
	bus := NewBus()

	id, ch := bus.Subscribe()
	bus.Unsubscribe(id)

	bus.Publish(Event{Kind: MarkerAdded})

	if _, open := <-ch; open {
		t.Fatal("expected channel to be closed after unsubscribe")
	}
	if bus.SubscriberCount() != 0 {
		t.Fatalf("expected 0 subscribers, got %d", bus.SubscriberCount())
	}
}

func TestSlowObserverDropsInsteadOfBlocking(t *testing.T) {
	bus := NewBus()

	id, ch := bus.Subscribe()
	defer bus.Unsubscribe(id)

	// Overfill the buffer; Publish must not block.
	for i := 0; i < subscriberBuffer+5; i++ {
		bus.Publish(Event{Kind: MarkerAdded, Payload: i})
	}

	if len(ch) != subscriberBuffer {
		t.Fatalf("expected buffer to cap at %d, got %d", subscriberBuffer, len(ch))
	}
}
