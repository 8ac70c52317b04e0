package inspector_test

import (
	"bufio"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/taskbroker/zbproto/inspector"
)

func TestServerHandleSSE(t *testing.T) {
	t.Parallel()

	hub := inspector.NewHub()
	srv := inspector.NewServer(hub)

	req := httptest.NewRequest("GET", "/api/events", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		srv.Handler().ServeHTTP(rec, req)
		close(done)
	}()

	// Give the handler a moment to subscribe before publishing.
	time.Sleep(50 * time.Millisecond)
	hub.Publish(inspector.Event{Direction: "request", Label: "ExecuteCommandRequest", Summary: "19 bytes"})

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("handler did not return after context cancellation")
	}

	body := rec.Body.String()
	if !strings.Contains(body, "ExecuteCommandRequest") {
		t.Fatalf("body = %q, want it to contain the published event", body)
	}

	scanner := bufio.NewScanner(strings.NewReader(body))
	var sawData bool
	for scanner.Scan() {
		if strings.HasPrefix(scanner.Text(), "data: ") {
			sawData = true
		}
	}
	if !sawData {
		t.Fatal("expected at least one SSE \"data: \" line")
	}
}
