package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mavscope/mavscope/internal/stats"
)

// clearScreen moves the cursor home and wipes the previous frame.
const clearScreen = "\033[2J\033[H"

// PlainRenderer redraws a fixed-width box table on a ticker, with no
// terminal takeover. Suited to dumb terminals, CI logs, and piping.
type PlainRenderer struct {
	store    *stats.Store
	watched  []string
	interval time.Duration
	out      io.Writer
}

// NewPlainRenderer creates a renderer over the store for the watched names.
func NewPlainRenderer(store *stats.Store, watched []string, interval time.Duration, out io.Writer) *PlainRenderer {
	return &PlainRenderer{
		store:    store,
		watched:  watched,
		interval: interval,
		out:      out,
	}
}

// Run redraws once per interval until ctx is cancelled. Every frame is a
// full re-render; there is no diffing, so no stale rows can linger.
func (r *PlainRenderer) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			elapsed := r.store.Elapsed(now)
			rows := BuildRows(r.store.Snapshot(), r.watched, now, elapsed)
			fmt.Fprint(r.out, clearScreen)
			fmt.Fprint(r.out, RenderPlainTable(rows, elapsed, r.store.Empty(), r.watched))
		}
	}
}

// RenderPlainTable renders the full frame: header, one row per watched
// name, and the no-data warning when nothing has been received yet.
func RenderPlainTable(rows []Row, elapsed int64, empty bool, watched []string) string {
	var b strings.Builder

	b.WriteString("┌────────────────────────────────────────────────────────────────┐\n")
	b.WriteString("│ Sensor Message Rate Monitor                                    │\n")
	fmt.Fprintf(&b, "│ Runtime: %3d seconds                                           │\n", elapsed)
	b.WriteString("├────────────────────────────┬───────┬───────────┬──────────────┤\n")
	b.WriteString("│ Message Name               │ Total │ Rate (Hz) │ Last Seen    │\n")
	b.WriteString("├────────────────────────────┼───────┼───────────┼──────────────┤\n")

	for _, row := range rows {
		fmt.Fprintf(&b, "│ %-26s │ %5d │ %9s │ %-12s │\n",
			row.Name, row.Count, stats.FormatRate(row.Rate), row.LastSeen)
	}

	b.WriteString("└────────────────────────────┴───────┴───────────┴──────────────┘\n")

	if empty {
		b.WriteString("\n⚠ No monitored messages received yet.\n")
		fmt.Fprintf(&b, "  Waiting for: %s\n", strings.Join(watched, ", "))
	}

	return b.String()
}
