// Package ui renders the message-rate dashboard. The default front-end is a
// Bubble Tea program; a plain ANSI table mode is available for dumb
// terminals. Both share the same row-building logic so the numbers cannot
// diverge between presentations.
package ui

import "github.com/charmbracelet/lipgloss"

// Rate bar thresholds, as a fraction of the expected rate.
var (
	ColorRateGood = lipgloss.Color("#22c55e") // >= 75% of expected
	ColorRateLow  = lipgloss.Color("#d97706") // 25-75%
	ColorRateBad  = lipgloss.Color("#dc2626") // < 25%
)

// UI chrome colors.
var (
	ColorBorder  = lipgloss.Color("#4b5563")
	ColorDimmed  = lipgloss.Color("#6b7280")
	ColorBright  = lipgloss.Color("#f9fafb")
	ColorHealthy = lipgloss.Color("#22c55e")
	ColorWarning = lipgloss.Color("#d97706")
	ColorDanger  = lipgloss.Color("#dc2626")
)

// Reusable styles.
var (
	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)

	StyleDimmed = lipgloss.NewStyle().
			Foreground(ColorDimmed)

	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// RateBarColor returns the bar color for a rate fraction (actual/expected).
func RateBarColor(fraction float64) lipgloss.Color {
	switch {
	case fraction >= 0.75:
		return ColorRateGood
	case fraction >= 0.25:
		return ColorRateLow
	default:
		return ColorRateBad
	}
}
