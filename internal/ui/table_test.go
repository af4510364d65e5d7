package ui

import (
	"testing"
	"time"

	"github.com/mavscope/mavscope/internal/stats"
)

var watched = []string{"OPTICAL_FLOW", "OPTICAL_FLOW_RAD", "DISTANCE_SENSOR", "HEARTBEAT"}

func TestBuildRowsOrder(t *testing.T) {
	now := time.Now()
	snap := map[string]stats.Entry{
		// Discovery order differs from whitelist order.
		"HEARTBEAT":    {Count: 5, LastSeen: now.Add(-200 * time.Millisecond)},
		"OPTICAL_FLOW": {Count: 9, LastSeen: now.Add(-50 * time.Millisecond)},
	}

	rows := BuildRows(snap, watched, now, 10)
	if len(rows) != len(watched) {
		t.Fatalf("rows = %d, want %d", len(rows), len(watched))
	}
	for i, name := range watched {
		if rows[i].Name != name {
			t.Errorf("rows[%d].Name = %q, want %q (whitelist order)", i, rows[i].Name, name)
		}
	}
}

func TestBuildRowsValues(t *testing.T) {
	now := time.Now()
	snap := map[string]stats.Entry{
		"HEARTBEAT": {Count: 25, LastSeen: now.Add(-100 * time.Millisecond)},
	}

	rows := BuildRows(snap, []string{"HEARTBEAT", "DISTANCE_SENSOR"}, now, 10)

	hb := rows[0]
	if hb.Count != 25 {
		t.Errorf("Count = %d, want 25", hb.Count)
	}
	if hb.Rate != 2.5 {
		t.Errorf("Rate = %v, want 2.5", hb.Rate)
	}
	if hb.LastSeen != "100 ms ago" {
		t.Errorf("LastSeen = %q, want %q", hb.LastSeen, "100 ms ago")
	}

	ds := rows[1]
	if ds.Count != 0 || ds.Rate != 0.0 {
		t.Errorf("never-seen row = %+v, want zero count and rate", ds)
	}
	if ds.LastSeen != "Never" {
		t.Errorf("never-seen LastSeen = %q, want %q", ds.LastSeen, "Never")
	}
}

func TestBuildRowsZeroElapsed(t *testing.T) {
	now := time.Now()
	snap := map[string]stats.Entry{
		"HEARTBEAT": {Count: 100, LastSeen: now},
	}

	rows := BuildRows(snap, []string{"HEARTBEAT"}, now, 0)
	if rows[0].Rate != 0.0 {
		t.Errorf("Rate with zero elapsed = %v, want 0.0", rows[0].Rate)
	}
}
