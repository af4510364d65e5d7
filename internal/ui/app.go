package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mavscope/mavscope/internal/bus"
	"github.com/mavscope/mavscope/internal/stats"
	"github.com/mavscope/mavscope/internal/sysinfo"
)

// tickMsg fires once per render period.
type tickMsg time.Time

// Model is the root Bubble Tea model for the dashboard.
type Model struct {
	store    *stats.Store
	feed     bus.Feed
	interval time.Duration
	cancel   context.CancelFunc

	keys   KeyMap
	width  int
	height int

	dashboard *Dashboard
	status    StatusBar
	sampler   *sysinfo.ProcSampler

	showHelp bool
	help     string
}

// New creates the root model. cancel is invoked on quit so the monitoring
// session shuts down with the UI.
func New(store *stats.Store, feed bus.Feed, watched []string, expected func(string) float64, interval time.Duration, cancel context.CancelFunc) Model {
	sampler, err := sysinfo.NewProcSampler()
	if err != nil {
		sampler = nil
	}
	return Model{
		store:     store,
		feed:      feed,
		interval:  interval,
		cancel:    cancel,
		keys:      DefaultKeyMap(),
		dashboard: NewDashboard(watched, expected),
		sampler:   sampler,
	}
}

// Init schedules the first tick.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.status.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.refresh(time.Time(msg))
		return m, m.tick()
	}

	return m, nil
}

// refresh recomputes the full frame state from a fresh snapshot. Every tick
// is a complete re-render; no partial state survives between frames.
func (m *Model) refresh(now time.Time) {
	elapsed := m.store.Elapsed(now)
	rows := BuildRows(m.store.Snapshot(), m.dashboard.watched, now, elapsed)
	m.dashboard.SetRows(rows, m.store.Empty())

	m.status.Connected = m.feed.Connected()
	m.status.Elapsed = elapsed
	if m.sampler != nil {
		if sample, err := m.sampler.Sample(); err == nil {
			m.status.Usage = sample
			m.status.HasUsage = true
		}
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Help) {
			m.showHelp = false
			return m, nil
		}
		if key.Matches(msg, m.keys.Quit) {
			m.cancel()
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.help == "" {
			m.help = RenderHelp(m.width - 4)
		}
		m.showHelp = true
		return m, nil
	}

	return m, nil
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.showHelp {
		return m.help
	}

	sections := []string{
		m.status.View(),
		m.dashboard.View(),
		StyleDimmed.Render("  ?:help  q:quit"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
