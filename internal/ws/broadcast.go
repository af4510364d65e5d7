// Package ws exposes the live statistics over WebSocket so a remote viewer
// can watch the same numbers the console dashboard shows.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mavscope/mavscope/internal/stats"
)

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newClient(conn *websocket.Conn) *client {
	c := &client{
		conn: conn,
		send: make(chan []byte, 64),
		done: make(chan struct{}),
	}
	go c.writePump()
	return c
}

// writePump serializes writes onto the connection. Shutdown is signalled
// through done; the send channel is never closed, so a broadcast racing a
// disconnect cannot send on a closed channel.
func (c *client) writePump() {
	defer c.conn.Close()
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}
}

func (c *client) close() {
	c.once.Do(func() { close(c.done) })
}

// Broadcaster pushes a statistics snapshot to every connected client once
// per interval. Clients that cannot keep up are disconnected rather than
// allowed to stall the fan-out.
type Broadcaster struct {
	mu       sync.RWMutex
	clients  map[*client]bool
	store    *stats.Store
	watched  []string
	interval time.Duration
}

// NewBroadcaster creates a broadcaster over the store, reporting the
// watched names in the given fixed order.
func NewBroadcaster(store *stats.Store, watched []string, interval time.Duration) *Broadcaster {
	return &Broadcaster{
		clients:  make(map[*client]bool),
		store:    store,
		watched:  watched,
		interval: interval,
	}
}

// Run broadcasts snapshots until ctx is cancelled, then closes every
// remaining client.
func (b *Broadcaster) Run(ctx context.Context) error {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.closeAll()
			return nil
		case <-ticker.C:
			b.broadcast(b.snapshotMessage(time.Now()))
		}
	}
}

// AddClient registers conn and immediately sends it a snapshot so a new
// viewer does not wait a full interval for its first frame.
func (b *Broadcaster) AddClient(conn *websocket.Conn) *client {
	c := newClient(conn)

	b.mu.Lock()
	b.clients[c] = true
	b.mu.Unlock()

	data, err := json.Marshal(b.snapshotMessage(time.Now()))
	if err == nil {
		select {
		case c.send <- data:
		default:
		}
	}
	return c
}

// RemoveClient unregisters c and stops its write pump. Safe to call while
// a broadcast holds a reference to c.
func (b *Broadcaster) RemoveClient(c *client) {
	b.mu.Lock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		c.close()
	}
	b.mu.Unlock()
}

// ClientCount returns the number of connected clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Snapshot builds the current statistics payload.
func (b *Broadcaster) Snapshot(now time.Time) SnapshotPayload {
	snap := b.store.Snapshot()
	elapsed := b.store.Elapsed(now)

	rows := make([]StatRow, 0, len(b.watched))
	for _, name := range b.watched {
		e := snap[name]
		lastSeenMs := int64(-1)
		if !e.LastSeen.IsZero() {
			lastSeenMs = now.Sub(e.LastSeen).Milliseconds()
		}
		rows = append(rows, StatRow{
			Name:       name,
			Count:      e.Count,
			Rate:       stats.Rate(e.Count, elapsed),
			LastSeenMs: lastSeenMs,
		})
	}
	return SnapshotPayload{ElapsedSeconds: elapsed, Rows: rows}
}

func (b *Broadcaster) snapshotMessage(now time.Time) WSMessage {
	return WSMessage{Type: MsgSnapshot, Payload: b.Snapshot(now)}
}

func (b *Broadcaster) broadcast(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("broadcast marshal error: %v", err)
		return
	}

	b.mu.RLock()
	clients := make([]*client, 0, len(b.clients))
	for c := range b.clients {
		clients = append(clients, c)
	}
	b.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- data:
		default:
			log.Printf("ws client too slow, disconnecting")
			b.RemoveClient(c)
		}
	}
}

func (b *Broadcaster) closeAll() {
	b.mu.Lock()
	for c := range b.clients {
		delete(b.clients, c)
		c.close()
	}
	b.mu.Unlock()
}
