package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mavscope/mavscope/internal/bus"
	"github.com/mavscope/mavscope/internal/stats"
)

type fakeFeed struct {
	*bus.Dispatcher
	connected bool
}

func (f *fakeFeed) Connected() bool { return f.connected }

func (f *fakeFeed) Run(context.Context) error { return nil }

func defaultRate(string) float64 { return 10 }

func newTestModel(store *stats.Store, connected bool) Model {
	feed := &fakeFeed{Dispatcher: bus.NewDispatcher(), connected: connected}
	m := New(store, feed, watched, defaultRate, time.Second, func() {})
	m.width = 100
	m.height = 40
	return m
}

func TestViewInitializing(t *testing.T) {
	m := New(stats.NewStore(time.Now()), &fakeFeed{Dispatcher: bus.NewDispatcher()}, watched, defaultRate, time.Second, func() {})
	if v := m.View(); v != "Initializing..." {
		t.Errorf("View before first WindowSizeMsg = %q", v)
	}
}

func TestViewShowsAllWatchedNames(t *testing.T) {
	store := stats.NewStore(time.Now().Add(-10 * time.Second))
	store.Record("HEARTBEAT", time.Now())

	m := newTestModel(store, true)
	m.refresh(time.Now())

	v := m.View()
	for _, name := range watched {
		if !strings.Contains(v, name) {
			t.Errorf("view missing %q", name)
		}
	}
	if !strings.Contains(v, "● Connected") {
		t.Errorf("view missing connected indicator")
	}
	if strings.Contains(v, "No monitored messages") {
		t.Error("warning shown while store has data")
	}
}

func TestViewEmptyWarning(t *testing.T) {
	m := newTestModel(stats.NewStore(time.Now()), false)
	m.refresh(time.Now())

	v := m.View()
	if !strings.Contains(v, "No monitored messages received yet.") {
		t.Error("view missing empty warning")
	}
	if !strings.Contains(v, "○ Listening...") {
		t.Error("view missing listening indicator")
	}
	if !strings.Contains(v, "Never") {
		t.Error("view missing Never recency")
	}
}

func TestQuitCancelsSession(t *testing.T) {
	cancelled := false
	feed := &fakeFeed{Dispatcher: bus.NewDispatcher()}
	m := New(stats.NewStore(time.Now()), feed, watched, defaultRate, time.Second, func() { cancelled = true })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !cancelled {
		t.Error("quit did not cancel the session context")
	}
	if cmd == nil {
		t.Fatal("quit returned nil command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("quit command produced %T, want tea.QuitMsg", cmd())
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(stats.NewStore(time.Now()), false)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = next.(Model)
	if !m.showHelp {
		t.Fatal("? did not open help")
	}
	if m.View() == "" {
		t.Error("help view is empty")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.showHelp {
		t.Error("esc did not close help")
	}
}

func TestWindowSizePropagates(t *testing.T) {
	m := newTestModel(stats.NewStore(time.Now()), false)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	m = next.(Model)
	if m.width != 120 || m.status.Width != 120 {
		t.Errorf("width = %d, status width = %d, want 120", m.width, m.status.Width)
	}
}

func TestTickSchedulesNext(t *testing.T) {
	store := stats.NewStore(time.Now().Add(-time.Second))
	m := newTestModel(store, false)

	next, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick did not schedule a follow-up")
	}
	m = next.(Model)
	if m.status.Elapsed < 1 {
		t.Errorf("Elapsed = %d, want >= 1", m.status.Elapsed)
	}
}
