// Package inspector relays decoded protocol events captured off a proxied
// connection to any number of live subscribers (an HTTP/SSE stream, a TUI),
// fanning out without ever blocking the capture path on a slow subscriber.
package inspector

import "sync"

// Event is a single decoded wire exchange, captured for display rather than
// for driving any protocol logic — the Hub never interprets it.
type Event struct {
	Session   string // id of the relayed connection this event belongs to
	Direction string // "request" or "response"
	Label     string // e.g. "ExecuteCommandRequest", "SubscribedEvent"
	Summary   string // short human-readable description
	Raw       []byte // the decoded SBE message body, for detail views
}

// Hub fans captured events out to subscribers. The zero value is not usable;
// construct with NewHub.
type Hub struct {
	mu     sync.Mutex
	subs   map[chan Event]struct{}
	closed bool
}

// NewHub returns a ready-to-use Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a new listener and returns its channel along with an
// unsubscribe function the caller must call exactly once, typically via
// defer.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 64)

	h.mu.Lock()
	if !h.closed {
		h.subs[ch] = struct{}{}
	}
	h.mu.Unlock()

	unsub := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, unsub
}

// Publish broadcasts ev to every current subscriber. A subscriber whose
// buffer is full is skipped rather than blocking the capture path.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close shuts the hub down, closing every subscriber channel. Publish and
// Subscribe become no-ops afterward.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subs {
		close(ch)
	}
	h.subs = nil
}
