package zbproto_test

import (
	"net"
	"testing"
	"time"

	zbproto "github.com/taskbroker/zbproto"
	"github.com/taskbroker/zbproto/frame"
)

func TestReadMessageSkipsPadding(t *testing.T) {
	t.Parallel()

	server, client := net.Pipe()
	defer func() { _ = client.Close() }()

	msg := frame.Encode(0, 0, 0, []byte("hello"))
	padding := frame.EncodePadding(0, 4)

	go func() {
		_, _ = server.Write(padding)
		_, _ = server.Write(msg)
		_ = server.Close()
	}()

	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	wireBytes, err := zbproto.ReadMessage(client)
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}

	got, _, err := frame.Decode(wireBytes)
	if err != nil {
		t.Fatalf("decode returned bytes: %v", err)
	}
	if string(got.Payload) != "hello" {
		t.Fatalf("Payload = %q", got.Payload)
	}
}

func TestReadMessageEOF(t *testing.T) {
	t.Parallel()

	server, client := net.Pipe()
	_ = server.Close()

	if _, err := zbproto.ReadMessage(client); err == nil {
		t.Fatal("expected an error on a closed connection")
	}
}
