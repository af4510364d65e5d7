package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mavscope/mavscope/internal/sysinfo"
)

// StatusBar shows connection state, session runtime, and the monitor's own
// resource usage.
type StatusBar struct {
	Width     int
	Connected bool
	Elapsed   int64
	Usage     sysinfo.Sample
	HasUsage  bool
}

// View renders the status bar.
func (s StatusBar) View() string {
	width := s.Width
	if width < 40 {
		width = 40
	}

	var connStr string
	if s.Connected {
		connStr = lipgloss.NewStyle().Foreground(ColorHealthy).Render("● Connected")
	} else {
		connStr = lipgloss.NewStyle().Foreground(ColorWarning).Render("○ Listening...")
	}

	runtime := fmt.Sprintf("Runtime: %ds", s.Elapsed)

	sep := lipgloss.NewStyle().Foreground(ColorBorder).Render(" | ")
	content := connStr + sep + runtime
	if s.HasUsage {
		usage := fmt.Sprintf("CPU %.1f%%  RSS %s", s.Usage.CPUPercent, formatBytes(s.Usage.RSSBytes))
		content += sep + StyleDimmed.Render(usage)
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(ColorBorder).
		Render(content)
}

// formatBytes formats byte counts with MiB/KiB suffixes.
func formatBytes(n uint64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
