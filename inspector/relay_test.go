package inspector_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/taskbroker/zbproto/inspector"
	"github.com/taskbroker/zbproto/sbe"
	"github.com/taskbroker/zbproto/transport"
)

// fakeBroker answers whatever it reads on upstreamSrv with a canned
// ControlMessageResponse, letting the test drive both relay directions.
func fakeBroker(upstreamSrv net.Conn) error {
	buf := make([]byte, 4096)
	if _, err := upstreamSrv.Read(buf); err != nil {
		return err
	}

	body, err := sbe.EncodeControlMessageResponse(sbe.ControlMessageResponse{Data: []byte{0x80}})
	if err != nil {
		return err
	}
	resp := transport.EncodeRequestResponse(0, 0, 0, 1, body)
	_, err = upstreamSrv.Write(resp)
	return err
}

func TestRelayForwardsAndPublishesBothDirections(t *testing.T) {
	t.Parallel()

	clientSrv, clientConn := net.Pipe()
	upstreamConn, upstreamSrv := net.Pipe()

	hub := inspector.NewHub()
	ch, unsub := hub.Subscribe()
	defer unsub()

	relay := inspector.NewRelay(clientConn, upstreamConn, hub)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- relay.Run(ctx) }()

	brokerDone := make(chan error, 1)
	go func() { brokerDone <- fakeBroker(upstreamSrv) }()

	body, err := sbe.EncodeControlMessageRequest(sbe.ControlMessageRequest{
		MessageType: sbe.ControlRequestTopology,
		PartitionID: sbe.ANYPartition,
		Data:        []byte{0x80},
	})
	if err != nil {
		t.Fatalf("encode control message request: %v", err)
	}
	req := transport.EncodeRequestResponse(0, 0, 0, 1, body)

	writeDone := make(chan error, 1)
	go func() { _, werr := clientSrv.Write(req); writeDone <- werr }()

	// Drain the relayed response back to the client side so the relay's
	// write to clientConn (a synchronous net.Pipe) does not block forever.
	go func() {
		buf := make([]byte, 4096)
		_, _ = clientSrv.Read(buf)
	}()

	var seenRequest, seenResponse bool
	for i := 0; i < 2; i++ {
		select {
		case ev := <-ch:
			if ev.Session == "" {
				t.Fatal("expected a non-empty session id")
			}
			switch ev.Direction {
			case "request":
				seenRequest = true
			case "response":
				seenResponse = true
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for relayed events")
		}
	}
	if !seenRequest || !seenResponse {
		t.Fatalf("seenRequest=%v seenResponse=%v", seenRequest, seenResponse)
	}

	_ = clientSrv.Close()
	_ = upstreamSrv.Close()
	<-done
	<-writeDone
	if err := <-brokerDone; err != nil {
		t.Fatalf("fakeBroker: %v", err)
	}
}
