package bus

import (
	"sync"
	"testing"
	"time"
)

func TestSubscribeAndPublish(t *testing.T) {
	d := NewDispatcher()

	var got []string
	d.Subscribe("", func(ev Event) {
		got = append(got, ev.Name)
	})

	d.Publish(Event{Name: "HEARTBEAT", ReceivedAt: time.Now()})
	d.Publish(Event{Name: "DISTANCE_SENSOR", ReceivedAt: time.Now()})

	if len(got) != 2 || got[0] != "HEARTBEAT" || got[1] != "DISTANCE_SENSOR" {
		t.Errorf("delivered = %v, want [HEARTBEAT DISTANCE_SENSOR]", got)
	}
}

func TestFilteredSubscription(t *testing.T) {
	d := NewDispatcher()

	var got []string
	d.Subscribe("HEARTBEAT", func(ev Event) {
		got = append(got, ev.Name)
	})

	d.Publish(Event{Name: "HEARTBEAT"})
	d.Publish(Event{Name: "OPTICAL_FLOW"})
	d.Publish(Event{Name: "HEARTBEAT"})

	if len(got) != 2 {
		t.Fatalf("delivered %d events, want 2", len(got))
	}
	for _, name := range got {
		if name != "HEARTBEAT" {
			t.Errorf("filtered subscription received %q", name)
		}
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	d := NewDispatcher()

	count := 0
	h := d.Subscribe("", func(Event) { count++ })

	d.Publish(Event{Name: "HEARTBEAT"})
	d.Unsubscribe(h)
	d.Publish(Event{Name: "HEARTBEAT"})
	d.Publish(Event{Name: "HEARTBEAT"})

	if count != 1 {
		t.Errorf("count = %d after unsubscribe, want 1", count)
	}
}

func TestUnsubscribeIdempotent(t *testing.T) {
	d := NewDispatcher()
	h := d.Subscribe("", func(Event) {})

	d.Unsubscribe(h)
	d.Unsubscribe(h) // second call must be a no-op
	d.Unsubscribe(Handle("never-issued"))

	if got := d.SubscriberCount(); got != 0 {
		t.Errorf("SubscriberCount() = %d, want 0", got)
	}
}

func TestUniqueHandles(t *testing.T) {
	d := NewDispatcher()
	h1 := d.Subscribe("", func(Event) {})
	h2 := d.Subscribe("", func(Event) {})
	if h1 == h2 {
		t.Errorf("Subscribe returned duplicate handles: %q", h1)
	}
	if got := d.SubscriberCount(); got != 2 {
		t.Errorf("SubscriberCount() = %d, want 2", got)
	}
}

func TestHandlerMayUnsubscribeItself(t *testing.T) {
	d := NewDispatcher()

	count := 0
	var h Handle
	h = d.Subscribe("", func(Event) {
		count++
		d.Unsubscribe(h)
	})

	d.Publish(Event{Name: "HEARTBEAT"})
	d.Publish(Event{Name: "HEARTBEAT"})

	if count != 1 {
		t.Errorf("self-unsubscribing handler ran %d times, want 1", count)
	}
}

func TestConcurrentPublishAndSubscribe(t *testing.T) {
	d := NewDispatcher()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			h := d.Subscribe("", func(Event) {})
			d.Unsubscribe(h)
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				d.Publish(Event{Name: "HEARTBEAT"})
			}
		}()
	}
	wg.Wait()
}
