package transport_test

import (
	"bytes"
	"testing"

	"github.com/taskbroker/zbproto/transport"
)

func TestEncodeDecodeRequestResponse(t *testing.T) {
	t.Parallel()

	body := []byte{1, 2, 3, 4, 5}
	buf := transport.EncodeRequestResponse(0, 0, 1, 257, body)

	env, consumed, err := transport.ReadEnvelope(buf)
	if err != nil {
		t.Fatal(err)
	}
	if consumed != len(buf) {
		t.Fatalf("consumed = %d, want %d", consumed, len(buf))
	}
	if env.Protocol != transport.ProtocolRequestResponse {
		t.Fatalf("Protocol = %v, want RequestResponse", env.Protocol)
	}
	if env.RequestID != 257 {
		t.Fatalf("RequestID = %d, want 257", env.RequestID)
	}
	if !bytes.Equal(env.Body, body) {
		t.Fatalf("Body = %v, want %v", env.Body, body)
	}
}

func TestEncodeDecodeFullDuplexSingleMessage(t *testing.T) {
	t.Parallel()

	body := []byte{9, 9, 9}
	buf := transport.EncodeFullDuplexSingleMessage(0, 0, 4, body)

	env, _, err := transport.ReadEnvelope(buf)
	if err != nil {
		t.Fatal(err)
	}
	if env.Protocol != transport.ProtocolFullDuplexSingleMessage {
		t.Fatalf("Protocol = %v, want FullDuplexSingleMessage", env.Protocol)
	}
	if !bytes.Equal(env.Body, body) {
		t.Fatalf("Body = %v, want %v", env.Body, body)
	}
}

func TestKeepAliveGoldenVector(t *testing.T) {
	t.Parallel()

	buf := transport.EncodeControlMessage(0, 0, 0, transport.ControlKeepAlive)
	want := []byte{
		6, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		2, 0,
		0, 0, 0, 0,
		0, 0, 0, 0, 0, 0,
	}
	if !bytes.Equal(buf, want) {
		t.Fatalf("keep-alive bytes = %v, want %v", buf, want)
	}

	env, consumed, err := transport.ReadEnvelope(buf)
	if err != nil {
		t.Fatal(err)
	}
	if consumed != len(buf) {
		t.Fatalf("consumed = %d, want %d", consumed, len(buf))
	}
	if env.Protocol != transport.ProtocolControlMessage || env.Control != transport.ControlKeepAlive {
		t.Fatalf("env = %+v, want ControlMessage/KeepAlive", env)
	}
}

func TestReadEnvelopePadding(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 16) // frame_type field (bytes 6-7) defaults to 0 (Message); build manually for padding
	// length=0, version=0, flags=0, frame_type=1 (Padding), stream_id=0
	buf[6] = 1

	env, consumed, err := transport.ReadEnvelope(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !env.IsPadding {
		t.Fatal("expected IsPadding = true")
	}
	if consumed != 16 {
		t.Fatalf("consumed = %d, want 16", consumed)
	}
}

func TestReadEnvelopeUnknownProtocol(t *testing.T) {
	t.Parallel()

	// A single-frame message whose transport header declares an unknown protocol (99).
	buf := transport.EncodeFullDuplexSingleMessage(0, 0, 0, nil)
	buf[12] = 99 // overwrite the low byte of the protocol discriminator

	_, _, err := transport.ReadEnvelope(buf)
	if err == nil {
		t.Fatal("expected error for unknown protocol")
	}
}
