package frame_test

import (
	"bytes"
	"testing"

	"github.com/taskbroker/zbproto/frame"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		version uint8
		flags   uint8
		stream  uint32
		payload []byte
	}{
		{"empty payload", 0, 0, 0, nil},
		{"short payload", 1, frame.FlagBatchBegin, 7, []byte{1, 2, 3}},
		{"exact multiple of 8", 0, 0, 1, bytes.Repeat([]byte{9}, 4)},
		{"long payload", 2, frame.FlagFailed, 99, bytes.Repeat([]byte{0xAB}, 137)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := frame.Encode(tt.version, tt.flags, tt.stream, tt.payload)
			if len(buf)%8 != 0 {
				t.Fatalf("encoded length %d is not 8-byte aligned", len(buf))
			}

			f, consumed, err := frame.Decode(buf)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if consumed != len(buf) {
				t.Fatalf("consumed = %d, want %d", consumed, len(buf))
			}
			if f.Header.Version != tt.version || f.Header.Flags != tt.flags || f.Header.StreamID != tt.stream {
				t.Fatalf("header mismatch: %+v", f.Header)
			}
			if f.Header.Type != frame.TypeMessage {
				t.Fatalf("type = %v, want Message", f.Header.Type)
			}
			if !bytes.Equal(f.Payload, tt.payload) && !(len(f.Payload) == 0 && len(tt.payload) == 0) {
				t.Fatalf("payload = %v, want %v", f.Payload, tt.payload)
			}

			padding := buf[len(buf)-f.Header.Padding():]
			for _, b := range padding {
				if b != 0 {
					t.Fatalf("padding byte = %d, want 0", b)
				}
			}
		})
	}
}

func TestHeaderAlignedLength(t *testing.T) {
	t.Parallel()

	// align_up(length+12, 8) for a handful of representative lengths.
	tests := []struct {
		length uint32
		want   int
	}{
		{0, 16},
		{1, 16},
		{4, 16},
		{5, 24},
		{12, 24},
		{178, 192},
	}
	for _, tt := range tests {
		h := frame.Header{Length: tt.length}
		if got := h.AlignedLength(); got != tt.want {
			t.Errorf("AlignedLength(length=%d) = %d, want %d", tt.length, got, tt.want)
		}
	}
}

func TestDecodePadding(t *testing.T) {
	t.Parallel()

	buf := frame.EncodePadding(5, 20)
	f, consumed, err := frame.Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if f.Header.Type != frame.TypePadding {
		t.Fatalf("type = %v, want Padding", f.Header.Type)
	}
	if f.Payload != nil {
		t.Fatalf("padding frame should have nil payload, got %v", f.Payload)
	}
	wantAligned := frame.Header{Length: 20, Type: frame.TypePadding}.AlignedLength()
	if consumed != wantAligned {
		t.Fatalf("consumed = %d, want %d", consumed, wantAligned)
	}
}

func TestDecodeNotEnoughBytes(t *testing.T) {
	t.Parallel()

	_, _, err := frame.Decode([]byte{1, 2, 3})
	if err == nil {
		t.Fatal("expected error decoding truncated header")
	}
}

func TestKeepAliveFrameByteLayout(t *testing.T) {
	t.Parallel()

	// Inner payload: TransportHeader(protocol=ControlMessage=2) + ControlFrameBody(KeepAlive=0).
	inner := []byte{2, 0, 0, 0, 0, 0}
	buf := frame.Encode(0, 0, 0, inner)

	want := []byte{
		6, 0, 0, 0, // length
		0,       // version
		0,       // flags
		0, 0,    // type
		0, 0, 0, 0, // stream_id
		2, 0, // protocol = ControlMessage
		0, 0, 0, 0, // KeepAlive
		0, 0, 0, 0, 0, 0, // padding to 24
	}
	if !bytes.Equal(buf, want) {
		t.Fatalf("keep-alive bytes = %v, want %v", buf, want)
	}
}
