package bus

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"
)

// mockStream emits one message name at a fixed cadence with a little
// jitter so rates wander like a real link.
type mockStream struct {
	name     string
	interval time.Duration
	jitter   time.Duration
	next     time.Time
}

// Mock is a Feed that synthesizes telemetry without any device, for demos
// and development. Message cadences roughly match a small multirotor:
// heartbeat at 1 Hz, sensors at 10-15 Hz.
type Mock struct {
	*Dispatcher
	streams []*mockStream

	// connectAfter delays the connected latch to exercise the readiness
	// wait. Zero means connected as soon as Run starts.
	connectAfter time.Duration
	connectedAt  atomic.Int64
}

// NewMock creates a mock feed emitting the given message names. Cadence is
// assigned per name: the first name gets 1 Hz, later names get
// progressively faster sensor-like rates.
func NewMock(names []string) *Mock {
	m := &Mock{
		Dispatcher: NewDispatcher(),
	}
	intervals := []time.Duration{
		time.Second,
		100 * time.Millisecond,
		66 * time.Millisecond,
		200 * time.Millisecond,
	}
	for i, name := range names {
		interval := intervals[i%len(intervals)]
		m.streams = append(m.streams, &mockStream{
			name:     name,
			interval: interval,
			jitter:   interval / 5,
		})
	}
	return m
}

// Connected reports whether the simulated device has appeared.
func (m *Mock) Connected() bool {
	at := m.connectedAt.Load()
	return at != 0 && time.Now().UnixNano() >= at
}

// Run emits events until ctx is cancelled.
func (m *Mock) Run(ctx context.Context) error {
	now := time.Now()
	m.connectedAt.Store(now.Add(m.connectAfter).UnixNano())
	for _, s := range m.streams {
		s.next = now.Add(s.interval)
	}

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			for _, s := range m.streams {
				if now.Before(s.next) {
					continue
				}
				m.Publish(Event{Name: s.name, ReceivedAt: now})
				s.next = now.Add(s.interval + time.Duration(rand.Int63n(int64(s.jitter)+1)))
			}
		}
	}
}
