package ui

import (
	"time"

	"github.com/mavscope/mavscope/internal/stats"
)

// Row is one formatted dashboard line. Both front-ends render from Rows, so
// the display mechanism can change without touching aggregation logic.
type Row struct {
	Name     string
	Count    uint64
	Rate     float64
	LastSeen string
}

// BuildRows derives the display rows from a statistics snapshot, one per
// watched name in whitelist order regardless of discovery order.
func BuildRows(snap map[string]stats.Entry, watched []string, now time.Time, elapsed int64) []Row {
	rows := make([]Row, 0, len(watched))
	for _, name := range watched {
		e := snap[name]
		rows = append(rows, Row{
			Name:     name,
			Count:    e.Count,
			Rate:     stats.Rate(e.Count, elapsed),
			LastSeen: stats.FormatRecency(now, e.LastSeen),
		})
	}
	return rows
}
