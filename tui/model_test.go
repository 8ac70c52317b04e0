package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskbroker/zbproto/inspector"
)

func TestModelAppendsIncomingEvent(t *testing.T) {
	t.Parallel()

	hub := inspector.NewHub()
	m := NewModel(hub)

	updated, cmd := m.Update(eventMsg(inspector.Event{Direction: "request", Label: "ExecuteCommandRequest"}))
	mm := updated.(Model)

	if len(mm.events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(mm.events))
	}
	if mm.events[0].Label != "ExecuteCommandRequest" {
		t.Fatalf("Label = %q", mm.events[0].Label)
	}
	if cmd == nil {
		t.Fatal("expected a follow-up command to keep listening for events")
	}
}

func TestModelFollowTracksCursor(t *testing.T) {
	t.Parallel()

	hub := inspector.NewHub()
	m := NewModel(hub)

	for i := 0; i < 3; i++ {
		updated, _ := m.Update(eventMsg(inspector.Event{Label: "e"}))
		m = updated.(Model)
	}
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2 (follow mode should track the latest event)", m.cursor)
	}
}

func TestModelNavigationStopsFollowing(t *testing.T) {
	t.Parallel()

	hub := inspector.NewHub()
	m := NewModel(hub)
	for i := 0; i < 3; i++ {
		updated, _ := m.Update(eventMsg(inspector.Event{Label: "e"}))
		m = updated.(Model)
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)

	if m.follow {
		t.Fatal("expected follow mode to be disabled after manual navigation")
	}
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
}

func TestModelEnterTogglesDetailView(t *testing.T) {
	t.Parallel()

	hub := inspector.NewHub()
	m := NewModel(hub)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.view != viewDetail {
		t.Fatal("expected enter to switch to detail view")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.view != viewList {
		t.Fatal("expected esc to switch back to list view")
	}
}

func TestWaitForEventReturnsNilOnClosedChannel(t *testing.T) {
	t.Parallel()

	ch := make(chan inspector.Event)
	close(ch)

	msg := waitForEvent(ch)()
	if msg != nil {
		t.Fatalf("msg = %v, want nil", msg)
	}
}
