package stats

import (
	"fmt"
	"time"
)

// Rate returns messages per second over the elapsed whole seconds. With no
// full second elapsed yet the rate is 0.0 rather than a division by zero.
func Rate(count uint64, elapsedSeconds int64) float64 {
	if elapsedSeconds <= 0 {
		return 0.0
	}
	return float64(count) / float64(elapsedSeconds)
}

// FormatRecency renders how long ago lastSeen was, relative to now.
// Never-seen entries (zero lastSeen) render as "Never". Deltas under one
// second render in milliseconds, everything else in whole seconds
// (truncating division, so 1999 ms is "1 s ago").
func FormatRecency(now, lastSeen time.Time) string {
	if lastSeen.IsZero() {
		return "Never"
	}
	ms := now.Sub(lastSeen).Milliseconds()
	if ms < 1000 {
		return fmt.Sprintf("%d ms ago", ms)
	}
	return fmt.Sprintf("%d s ago", ms/1000)
}

// FormatRate renders a rate with two decimal places, e.g. "2.50".
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.2f", rate)
}
