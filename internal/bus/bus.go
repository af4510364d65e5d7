// Package bus delivers decoded telemetry message events to subscribers.
// A Feed owns the connection and the delivery goroutine; the Dispatcher
// handles subscription bookkeeping and fan-out.
package bus

import (
	"context"
	"time"
)

// Event is one decoded message arrival. Events are ephemeral: handlers
// consume them immediately and must not retain references.
type Event struct {
	Name       string
	ReceivedAt time.Time
}

// Handler is invoked once per delivered event, on the feed's delivery
// goroutine. Handlers must not block; hand work off to a channel instead.
type Handler func(Event)

// Handle identifies one subscription.
type Handle string

// Feed is an asynchronous source of message events. Filter "" delivers
// every message; any other filter is an exact name match.
type Feed interface {
	// Subscribe registers a handler and returns its handle.
	Subscribe(filter string, fn Handler) Handle

	// Unsubscribe stops deliveries for the handle. Idempotent.
	Unsubscribe(h Handle)

	// Connected reports whether a device has been seen on the connection.
	// Absence of messages is a steady state, not an error, so this latches
	// true on the first decoded frame and never goes back.
	Connected() bool

	// Run drives the delivery loop until ctx is cancelled or the
	// underlying connection fails fatally.
	Run(ctx context.Context) error
}
