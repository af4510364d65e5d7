// Package subscriber connects the message bus to the stats store. It
// registers a single catch-all subscription, filters events against the
// monitored whitelist, and hands matches to a pump goroutine through a
// buffered channel so that bus delivery never waits on aggregation.
package subscriber

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/mavscope/mavscope/internal/bus"
	"github.com/mavscope/mavscope/internal/stats"
)

const eventBuffer = 256

// Subscriber filters bus events against a fixed whitelist and records
// matches into the stats store.
type Subscriber struct {
	feed  bus.Feed
	store *stats.Store
	watch map[string]struct{}

	events chan bus.Event
	handle bus.Handle
	done   chan struct{}

	mu          sync.Mutex
	dropped     int64
	lastDropLog time.Time
}

// New creates a subscriber tracking the given message names. The whitelist
// is immutable after construction.
func New(feed bus.Feed, store *stats.Store, names []string) *Subscriber {
	watch := make(map[string]struct{}, len(names))
	for _, name := range names {
		watch[name] = struct{}{}
	}
	return &Subscriber{
		feed:   feed,
		store:  store,
		watch:  watch,
		events: make(chan bus.Event, eventBuffer),
		done:   make(chan struct{}),
	}
}

// Run subscribes to the feed and pumps matched events into the store until
// ctx is cancelled. The unsubscribe always runs on the way out, so shutdown
// deterministically stops deliveries.
func (s *Subscriber) Run(ctx context.Context) error {
	s.handle = s.feed.Subscribe("", s.onEvent)
	defer close(s.done)
	defer s.feed.Unsubscribe(s.handle)

	for {
		select {
		case <-ctx.Done():
			// Unsubscribe first, then drain: events the bus already
			// handed off are recorded rather than dropped.
			s.feed.Unsubscribe(s.handle)
			for {
				select {
				case ev := <-s.events:
					s.store.Record(ev.Name, ev.ReceivedAt)
				default:
					return nil
				}
			}
		case ev := <-s.events:
			s.store.Record(ev.Name, ev.ReceivedAt)
		}
	}
}

// Done is closed once Run has returned and the subscription is removed.
func (s *Subscriber) Done() <-chan struct{} {
	return s.done
}

// onEvent runs on the bus delivery goroutine. Non-members are discarded;
// members are forwarded without blocking. A full channel drops the event,
// counted and logged at most every 10 seconds.
func (s *Subscriber) onEvent(ev bus.Event) {
	if _, ok := s.watch[ev.Name]; !ok {
		return
	}
	select {
	case s.events <- ev:
	default:
		s.mu.Lock()
		s.dropped++
		now := time.Now()
		if s.lastDropLog.IsZero() || now.Sub(s.lastDropLog) >= 10*time.Second {
			log.Printf("subscriber dropped %d events (channel full)", s.dropped)
			s.dropped = 0
			s.lastDropLog = now
		}
		s.mu.Unlock()
	}
}
