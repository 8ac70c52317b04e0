// Package frame implements the outermost data-frame layer: a 12-byte
// little-endian header describing an 8-byte-aligned, zero-padded payload.
// It is the only layer that knows about alignment; everything above it
// deals in whole, unpadded payloads.
package frame

import (
	"fmt"

	"github.com/taskbroker/zbproto/protoerr"
	"github.com/taskbroker/zbproto/wire"
)

// Type distinguishes an ordinary message frame from a padding-only frame.
type Type uint16

const (
	TypeMessage Type = 0
	TypePadding Type = 1
)

func (t Type) String() string {
	switch t {
	case TypeMessage:
		return "Message"
	case TypePadding:
		return "Padding"
	default:
		return fmt.Sprintf("Type(%d)", uint16(t))
	}
}

// Reserved flag bits.
const (
	FlagBatchBegin uint8 = 0x80
	FlagBatchEnd   uint8 = 0x40
	FlagFailed     uint8 = 0x20
)

const headerSize = 12

// Header is the 12-byte DataFrameHeader.
type Header struct {
	Length   uint32 // payload bytes following the header, excluding padding
	Version  uint8
	Flags    uint8
	Type     Type
	StreamID uint32
}

// AlignedLength returns align_up(Length+12, 8), the total on-wire size of
// the frame including header and padding.
func (h Header) AlignedLength() int {
	return wire.AlignUp(int(h.Length)+headerSize, 8)
}

// Padding returns the number of zero padding bytes appended after the
// payload.
func (h Header) Padding() int {
	return h.AlignedLength() - int(h.Length) - headerSize
}

// Frame is a decoded data frame. Payload is nil for a padding frame.
type Frame struct {
	Header  Header
	Payload []byte
}

// Encode builds a complete, 8-byte-aligned, zero-padded frame around
// payload. stream_id/version/flags are caller-supplied; frame_type is
// always Message.
func Encode(version, flags uint8, streamID uint32, payload []byte) []byte {
	return encode(Header{
		Length:   uint32(len(payload)),
		Version:  version,
		Flags:    flags,
		Type:     TypeMessage,
		StreamID: streamID,
	}, payload)
}

// EncodePadding builds a padding frame declaring innerLength payload bytes,
// none of which are actually written (the whole frame beyond the header is
// zero). Used by callers that need to pad a stream to a boundary without
// transmitting a message.
func EncodePadding(streamID, innerLength uint32) []byte {
	return encode(Header{
		Length:   innerLength,
		Type:     TypePadding,
		StreamID: streamID,
	}, nil)
}

func encode(h Header, payload []byte) []byte {
	aligned := h.AlignedLength()
	buf := make([]byte, aligned)

	w := wire.NewWriter()
	w.WriteU32(h.Length)
	w.WriteU8(h.Version)
	w.WriteU8(h.Flags)
	w.WriteU16(uint16(h.Type))
	w.WriteU32(h.StreamID)
	copy(buf[:headerSize], w.Bytes())

	copy(buf[headerSize:headerSize+len(payload)], payload)
	return buf
}

// Decode reads one frame from the front of buf. It returns the frame and
// the number of bytes consumed (always AlignedLength()), so the caller can
// advance to the next frame. For a padding frame, Payload is nil and only
// the header is validated against buf's length.
func Decode(buf []byte) (Frame, int, error) {
	r := wire.NewReader(buf)

	length, err := r.ReadU32()
	if err != nil {
		return Frame{}, 0, fmt.Errorf("frame: decode header: %w", err)
	}
	version, err := r.ReadU8()
	if err != nil {
		return Frame{}, 0, fmt.Errorf("frame: decode header: %w", err)
	}
	flags, err := r.ReadU8()
	if err != nil {
		return Frame{}, 0, fmt.Errorf("frame: decode header: %w", err)
	}
	typ, err := r.ReadU16()
	if err != nil {
		return Frame{}, 0, fmt.Errorf("frame: decode header: %w", err)
	}
	streamID, err := r.ReadU32()
	if err != nil {
		return Frame{}, 0, fmt.Errorf("frame: decode header: %w", err)
	}

	h := Header{Length: length, Version: version, Flags: flags, Type: Type(typ), StreamID: streamID}
	aligned := h.AlignedLength()
	if len(buf) < aligned {
		return Frame{}, 0, fmt.Errorf("frame: decode: %w", &protoerr.NotEnoughBytes{Need: aligned, Have: len(buf)})
	}

	if h.Type == TypePadding {
		return Frame{Header: h}, aligned, nil
	}

	payload, err := r.ReadRaw(int(length))
	if err != nil {
		return Frame{}, 0, fmt.Errorf("frame: decode payload: %w", err)
	}
	return Frame{Header: h, Payload: payload}, aligned, nil
}
