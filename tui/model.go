// Package tui implements an interactive terminal browser over the decoded
// protocol events captured by the inspector package.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskbroker/zbproto/clipboard"
	"github.com/taskbroker/zbproto/detect"
	"github.com/taskbroker/zbproto/highlight"
	"github.com/taskbroker/zbproto/inspector"
)

type viewMode int

const (
	viewList viewMode = iota
	viewDetail
)

// capturedEvent is an inspector.Event annotated with the time it arrived
// and whether it is part of a detected request burst.
type capturedEvent struct {
	inspector.Event
	At      time.Time
	Bursted bool
}

// Model is the Bubble Tea model for the protocol event browser.
type Model struct {
	hub   *inspector.Hub
	sub   <-chan inspector.Event
	unsub func()

	events   []capturedEvent
	detector *detect.Detector
	cursor   int
	follow   bool
	width    int
	height   int
	err      error
	view     viewMode

	copyStatus string
}

// NewModel returns a Model that subscribes to hub for new events.
func NewModel(hub *inspector.Hub) Model {
	ch, unsub := hub.Subscribe()
	return Model{
		hub:      hub,
		sub:      ch,
		unsub:    unsub,
		follow:   true,
		detector: detect.New(5, time.Second, 10*time.Second),
	}
}

type eventMsg inspector.Event

func waitForEvent(sub <-chan inspector.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-sub
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.sub)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case eventMsg:
		now := time.Now()
		res := m.detector.Record(fmt.Sprintf("%s:%s", msg.Direction, msg.Label), now)
		m.events = append(m.events, capturedEvent{Event: inspector.Event(msg), At: now, Bursted: res.Matched})
		if m.follow {
			m.cursor = len(m.events) - 1
		}
		return m, waitForEvent(m.sub)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.unsub()
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.follow = false
		return m, nil

	case "down", "j":
		if m.cursor < len(m.events)-1 {
			m.cursor++
		}
		m.follow = m.cursor == len(m.events)-1
		return m, nil

	case "g":
		m.cursor = 0
		m.follow = false
		return m, nil

	case "G":
		if len(m.events) > 0 {
			m.cursor = len(m.events) - 1
		}
		m.follow = true
		return m, nil

	case "enter":
		if m.view == viewList {
			m.view = viewDetail
		} else {
			m.view = viewList
		}
		return m, nil

	case "esc":
		m.view = viewList
		return m, nil

	case "c":
		if m.cursor >= 0 && m.cursor < len(m.events) {
			text := string(m.events[m.cursor].Raw)
			if err := clipboard.Copy(context.Background(), text); err != nil {
				m.copyStatus = "copy failed: " + err.Error()
			} else {
				m.copyStatus = "copied payload to clipboard"
			}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "loading...\n"
	}

	var body string
	switch m.view {
	case viewDetail:
		body = m.renderDetail()
	default:
		body = m.renderList(m.height - 3)
	}

	help := "↑/↓ navigate · enter detail · c copy payload · q quit"
	if m.copyStatus != "" {
		help = m.copyStatus + " · " + help
	}
	return body + "\n" + help
}

func (m Model) renderDetail() string {
	if m.cursor < 0 || m.cursor >= len(m.events) {
		return "(no event selected)"
	}
	ev := m.events[m.cursor]

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s at %s\n\n", ev.Direction, ev.Label, formatTimeFull(ev.At))
	b.WriteString(highlight.Frame(fmt.Sprintf("template: %s\nstream_id: -\n", ev.Label)))
	b.WriteString("\n\n")
	b.WriteString(highlight.Payload(string(ev.Raw)))
	return b.String()
}
