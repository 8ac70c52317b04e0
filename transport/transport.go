// Package transport implements the transport sub-header that rides inside
// every non-padding data frame: a 2-byte protocol discriminator that routes
// the remaining bytes to the request-response, full-duplex single-message,
// or control-message branch, plus the helpers that compose outgoing frames
// for each branch.
package transport

import (
	"fmt"

	"github.com/taskbroker/zbproto/frame"
	"github.com/taskbroker/zbproto/protoerr"
	"github.com/taskbroker/zbproto/wire"
)

// Protocol is the 2-byte TransportHeader discriminator.
type Protocol uint16

const (
	ProtocolRequestResponse         Protocol = 0
	ProtocolFullDuplexSingleMessage Protocol = 1
	ProtocolControlMessage          Protocol = 2
)

func (p Protocol) String() string {
	switch p {
	case ProtocolRequestResponse:
		return "RequestResponse"
	case ProtocolFullDuplexSingleMessage:
		return "FullDuplexSingleMessage"
	case ProtocolControlMessage:
		return "ControlMessage"
	default:
		return fmt.Sprintf("Protocol(%d)", uint16(p))
	}
}

// ControlType is the 4-byte ControlFrameBody enum. KeepAlive is the only
// variant the protocol defines.
type ControlType uint32

const ControlKeepAlive ControlType = 0

func (c ControlType) String() string {
	if c == ControlKeepAlive {
		return "KeepAlive"
	}
	return fmt.Sprintf("ControlType(%d)", uint32(c))
}

// Envelope is the decoded transport sub-header plus whatever is left of the
// frame payload for the caller to hand to the sbe layer. IsPadding is set
// when the underlying frame was a padding frame, in which case every other
// field is the zero value.
type Envelope struct {
	IsPadding bool
	Protocol  Protocol
	RequestID uint64      // valid only when Protocol == ProtocolRequestResponse
	Control   ControlType // valid only when Protocol == ProtocolControlMessage
	Body      []byte      // SBE message bytes; empty for ControlMessage
}

// ReadEnvelope decodes one data frame from the front of buf and, if it
// carries a message, the transport sub-header inside it. It returns the
// number of bytes consumed so the caller can advance to the next frame.
func ReadEnvelope(buf []byte) (Envelope, int, error) {
	f, consumed, err := frame.Decode(buf)
	if err != nil {
		return Envelope{}, 0, fmt.Errorf("transport: read envelope: %w", err)
	}
	if f.Header.Type == frame.TypePadding {
		return Envelope{IsPadding: true}, consumed, nil
	}

	env, err := DecodeBody(f.Payload)
	if err != nil {
		return Envelope{}, 0, fmt.Errorf("transport: read envelope: %w", err)
	}
	return env, consumed, nil
}

// DecodeBody decodes the transport sub-header (and, for a request-response
// or control message, its correlation data) from a frame's payload. Callers
// that already have a decoded frame.Frame use this directly instead of
// ReadEnvelope, which re-decodes the frame layer too.
func DecodeBody(payload []byte) (Envelope, error) {
	r := wire.NewReader(payload)
	proto, err := r.ReadU16()
	if err != nil {
		return Envelope{}, fmt.Errorf("decode transport header: %w", err)
	}

	switch Protocol(proto) {
	case ProtocolRequestResponse:
		requestID, err := r.ReadU64()
		if err != nil {
			return Envelope{}, fmt.Errorf("decode request-response header: %w", err)
		}
		return Envelope{Protocol: ProtocolRequestResponse, RequestID: requestID, Body: r.Remaining()}, nil

	case ProtocolFullDuplexSingleMessage:
		return Envelope{Protocol: ProtocolFullDuplexSingleMessage, Body: r.Remaining()}, nil

	case ProtocolControlMessage:
		ctrl, err := r.ReadU32()
		if err != nil {
			return Envelope{}, fmt.Errorf("decode control frame body: %w", err)
		}
		return Envelope{Protocol: ProtocolControlMessage, Control: ControlType(ctrl)}, nil

	default:
		return Envelope{}, &protoerr.UnknownEnum{Kind: "transport.Protocol", Value: int(proto)}
	}
}

// EncodeRequestResponse composes a complete, framed request-response
// message: frame header, transport header, request-response header, then
// the caller's pre-encoded SBE message bytes.
func EncodeRequestResponse(version, flags uint8, streamID uint32, requestID uint64, sbeBody []byte) []byte {
	w := wire.NewWriter()
	w.WriteU16(uint16(ProtocolRequestResponse))
	w.WriteU64(requestID)
	inner := append(w.Bytes(), sbeBody...)
	return frame.Encode(version, flags, streamID, inner)
}

// EncodeFullDuplexSingleMessage composes a complete, framed single-message:
// frame header, transport header, then the caller's pre-encoded SBE message
// bytes. There is no correlation header on this branch.
func EncodeFullDuplexSingleMessage(version, flags uint8, streamID uint32, sbeBody []byte) []byte {
	w := wire.NewWriter()
	w.WriteU16(uint16(ProtocolFullDuplexSingleMessage))
	inner := append(w.Bytes(), sbeBody...)
	return frame.Encode(version, flags, streamID, inner)
}

// EncodeControlMessage composes a complete, framed control message: frame
// header, transport header, then the 4-byte control enum.
func EncodeControlMessage(version, flags uint8, streamID uint32, ctrl ControlType) []byte {
	w := wire.NewWriter()
	w.WriteU16(uint16(ProtocolControlMessage))
	w.WriteU32(uint32(ctrl))
	return frame.Encode(version, flags, streamID, w.Bytes())
}
