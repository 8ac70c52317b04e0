package inspector_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskbroker/zbproto/inspector"
)

func TestHubPublishSubscribe(t *testing.T) {
	t.Parallel()

	h := inspector.NewHub()
	ch, unsub := h.Subscribe()
	defer unsub()

	h.Publish(inspector.Event{Direction: "request", Label: "ExecuteCommandRequest"})

	select {
	case ev := <-ch:
		require.Equal(t, "ExecuteCommandRequest", ev.Label)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()

	h := inspector.NewHub()
	ch, unsub := h.Subscribe()
	unsub()

	h.Publish(inspector.Event{Label: "after unsubscribe"})

	_, ok := <-ch
	require.False(t, ok, "expected channel to be closed after unsubscribe")
}

func TestHubCloseClosesAllSubscribers(t *testing.T) {
	t.Parallel()

	h := inspector.NewHub()
	ch1, _ := h.Subscribe()
	ch2, _ := h.Subscribe()
	h.Close()

	for _, ch := range []<-chan inspector.Event{ch1, ch2} {
		select {
		case _, ok := <-ch:
			require.False(t, ok, "expected closed channel")
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for close")
		}
	}
}

func TestHubDoesNotBlockOnFullSubscriber(t *testing.T) {
	t.Parallel()

	h := inspector.NewHub()
	_, unsub := h.Subscribe()
	defer unsub()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			h.Publish(inspector.Event{Label: "spam"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full subscriber buffer")
	}
}
