// Package monitor runs the monitoring session: it waits for the device to
// appear on the connection, then supervises the feed delivery loop and the
// subscriber pump until the session is cancelled.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mavscope/mavscope/internal/bus"
	"github.com/mavscope/mavscope/internal/config"
	"github.com/mavscope/mavscope/internal/subscriber"
)

// ErrNoDevice is returned when no device appears within the readiness
// bound plus the grace window.
var ErrNoDevice = errors.New("no device detected")

// WaitReady polls the feed until a device has been seen. On hitting the
// timeout it reports that it will keep listening anyway — a missing
// handshake does not prevent message reception — and only fails after the
// additional grace window also passes with nothing heard. Status lines go
// to w (stdout during startup, before the dashboard takes the terminal).
func WaitReady(ctx context.Context, feed bus.Feed, cfg config.MonitorConfig, w io.Writer) error {
	fmt.Fprintln(w, "Waiting for system to connect...")

	if waitConnected(ctx, feed, cfg.ReadyPoll, cfg.ReadyTimeout) {
		fmt.Fprintln(w, "System connected!")
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	fmt.Fprintf(w, "Note: no system detected after %v.\n", cfg.ReadyTimeout)
	fmt.Fprintln(w, "Continuing to listen for messages anyway...")

	if waitConnected(ctx, feed, cfg.ReadyPoll, cfg.ReadyGrace) {
		fmt.Fprintln(w, "System connected!")
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	fmt.Fprintln(w, "Warning: no system detected. Make sure the device is sending messages.")
	return ErrNoDevice
}

// waitConnected polls feed.Connected every poll period for up to bound.
func waitConnected(ctx context.Context, feed bus.Feed, poll, bound time.Duration) bool {
	deadline := time.Now().Add(bound)
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		if feed.Connected() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
}

// Runner ties the feed and subscriber into one cancellable unit. Extra
// session-scoped loops (the broadcast server) register through Go before
// Run is called.
type Runner struct {
	feed bus.Feed
	sub  *subscriber.Subscriber
	aux  []func(context.Context) error
}

// NewRunner creates a runner for the feed and subscriber pair.
func NewRunner(feed bus.Feed, sub *subscriber.Subscriber) *Runner {
	return &Runner{feed: feed, sub: sub}
}

// Go adds an auxiliary loop to supervise alongside the core pair.
func (r *Runner) Go(fn func(context.Context) error) {
	r.aux = append(r.aux, fn)
}

// Run starts every loop and blocks until ctx is cancelled or one of them
// fails. All loops are torn down together; the subscriber's deferred
// unsubscribe makes shutdown reach the bus deterministically.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return r.feed.Run(ctx) })
	g.Go(func() error { return r.sub.Run(ctx) })
	for _, fn := range r.aux {
		fn := fn
		g.Go(func() error { return fn(ctx) })
	}

	err := g.Wait()
	log.Println("monitoring session stopped")
	return err
}
