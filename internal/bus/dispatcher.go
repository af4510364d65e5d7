package bus

import (
	"sync"

	"github.com/google/uuid"
)

type subscription struct {
	filter string
	fn     Handler
}

// Dispatcher is a subscription registry with fan-out delivery. Feeds embed
// it to get the Subscribe/Unsubscribe half of the Feed contract.
type Dispatcher struct {
	mu   sync.RWMutex
	subs map[Handle]subscription
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		subs: make(map[Handle]subscription),
	}
}

// Subscribe registers fn for events matching filter ("" matches all).
func (d *Dispatcher) Subscribe(filter string, fn Handler) Handle {
	h := Handle(uuid.NewString())
	d.mu.Lock()
	d.subs[h] = subscription{filter: filter, fn: fn}
	d.mu.Unlock()
	return h
}

// Unsubscribe removes the subscription for h. Removing an unknown or
// already-removed handle is a no-op.
func (d *Dispatcher) Unsubscribe(h Handle) {
	d.mu.Lock()
	delete(d.subs, h)
	d.mu.Unlock()
}

// Publish delivers ev to every matching subscriber, on the caller's
// goroutine. Handlers are snapshotted under the read lock so a handler may
// unsubscribe itself without deadlocking.
func (d *Dispatcher) Publish(ev Event) {
	d.mu.RLock()
	handlers := make([]Handler, 0, len(d.subs))
	for _, sub := range d.subs {
		if sub.filter == "" || sub.filter == ev.Name {
			handlers = append(handlers, sub.fn)
		}
	}
	d.mu.RUnlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

// SubscriberCount returns the number of active subscriptions.
func (d *Dispatcher) SubscriberCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subs)
}
