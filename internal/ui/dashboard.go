package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/mavscope/mavscope/internal/stats"
)

// Column widths (fixed layout).
const (
	colName = 20
	colBar  = 16
	colTot  = 8
	colRate = 10
	colSeen = 14
)

// barState is the spring-animated fill fraction for one rate bar.
type barState struct {
	pos float64
	vel float64
}

// Dashboard renders the statistics table. Rate bars are animated with a
// spring toward rate/expected so a jittery link reads as motion, not
// flicker.
type Dashboard struct {
	Width int

	watched  []string
	expected func(string) float64

	spring harmonica.Spring
	bars   map[string]*barState

	rows  []Row
	empty bool
}

// NewDashboard creates a dashboard for the watched names. expected maps a
// name to its nominal rate in Hz for bar scaling.
func NewDashboard(watched []string, expected func(string) float64) *Dashboard {
	return &Dashboard{
		watched:  watched,
		expected: expected,
		spring:   harmonica.NewSpring(harmonica.FPS(1), 5.0, 0.9),
		bars:     make(map[string]*barState),
	}
}

// SetRows replaces the display rows and advances the bar springs one step.
func (d *Dashboard) SetRows(rows []Row, empty bool) {
	d.rows = rows
	d.empty = empty

	for _, row := range rows {
		target := 0.0
		if exp := d.expected(row.Name); exp > 0 {
			target = row.Rate / exp
			if target > 1 {
				target = 1
			}
		}
		bar, ok := d.bars[row.Name]
		if !ok {
			bar = &barState{}
			d.bars[row.Name] = bar
		}
		bar.pos, bar.vel = d.spring.Update(bar.pos, bar.vel, target)
	}
}

// View renders the table.
func (d *Dashboard) View() string {
	dimStyle := lipgloss.NewStyle().Foreground(ColorDimmed)
	brightStyle := lipgloss.NewStyle().Foreground(ColorBright)

	header := fmt.Sprintf("  %-*s %-*s %*s %*s  %-*s",
		colName, "Message Name",
		colBar, "Rate",
		colTot, "Total",
		colRate, "Rate (Hz)",
		colSeen, "Last Seen",
	)
	ruleWidth := colName + colBar + colTot + colRate + colSeen + 7
	lines := []string{
		dimStyle.Render(header),
		dimStyle.Render("  " + strings.Repeat("─", ruleWidth)),
	}

	for _, row := range d.rows {
		name := brightStyle.Render(fmt.Sprintf("%-*s", colName, row.Name))
		bar := d.renderBar(row.Name, colBar-1)
		total := fmt.Sprintf("%*d", colTot, row.Count)
		rate := fmt.Sprintf("%*s", colRate, stats.FormatRate(row.Rate))

		seenStyle := brightStyle
		if row.LastSeen == "Never" {
			seenStyle = dimStyle
		}
		seen := seenStyle.Render(fmt.Sprintf("%-*s", colSeen, row.LastSeen))

		lines = append(lines, fmt.Sprintf("  %s %s %s %s  %s", name, bar, total, rate, seen))
	}

	if d.empty {
		lines = append(lines,
			"",
			StyleWarning.Render("  ⚠ No monitored messages received yet."),
			StyleDimmed.Render("    Waiting for: "+strings.Join(d.watched, ", ")),
		)
	}

	table := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Render(table)
}

// renderBar draws the spring-smoothed fill for one name.
func (d *Dashboard) renderBar(name string, width int) string {
	fraction := 0.0
	if bar, ok := d.bars[name]; ok {
		fraction = bar.pos
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	empty := width - filled

	color := RateBarColor(fraction)
	out := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	out += lipgloss.NewStyle().Foreground(ColorBorder).Render(strings.Repeat("░", empty))
	return out + " "
}
