// Package sbe implements the structured binary encoding layer: the 8-byte
// MessageHeader, the fixed catalog of message templates that ride inside a
// transport envelope's Body, and the enums their fixed blocks carry.
package sbe

import (
	"fmt"

	"github.com/taskbroker/zbproto/protoerr"
	"github.com/taskbroker/zbproto/wire"
)

// MessageHeader is the 8-byte header that identifies an SBE template and
// the size of its fixed block.
type MessageHeader struct {
	BlockLength uint16
	TemplateID  uint16
	SchemaID    uint16
	Version     uint16
}

func (h MessageHeader) encode(w *wire.Writer) {
	w.WriteU16(h.BlockLength)
	w.WriteU16(h.TemplateID)
	w.WriteU16(h.SchemaID)
	w.WriteU16(h.Version)
}

func decodeMessageHeader(r *wire.Reader) (MessageHeader, error) {
	bl, err := r.ReadU16()
	if err != nil {
		return MessageHeader{}, err
	}
	tid, err := r.ReadU16()
	if err != nil {
		return MessageHeader{}, err
	}
	sid, err := r.ReadU16()
	if err != nil {
		return MessageHeader{}, err
	}
	ver, err := r.ReadU16()
	if err != nil {
		return MessageHeader{}, err
	}
	return MessageHeader{BlockLength: bl, TemplateID: tid, SchemaID: sid, Version: ver}, nil
}

// PeekHeader decodes just the 8-byte MessageHeader from the front of b,
// without validating it against any known template. Callers that only need
// to identify a message (an inspector, a router) use this instead of
// decoding the full message.
func PeekHeader(b []byte) (MessageHeader, error) {
	r := wire.NewReader(b)
	h, err := decodeMessageHeader(r)
	if err != nil {
		return MessageHeader{}, fmt.Errorf("sbe: peek header: %w", err)
	}
	return h, nil
}

// expectHeader reads a MessageHeader from r and asserts it matches want on
// (TemplateID, SchemaID, Version); BlockLength is the wire-declared value
// and is returned separately since it may legitimately exceed want's
// canonical block length (a forward-compatible encoder sent extra fields).
func expectHeader(r *wire.Reader, want MessageHeader) (declaredBlockLength uint16, err error) {
	h, err := decodeMessageHeader(r)
	if err != nil {
		return 0, fmt.Errorf("sbe: decode message header: %w", err)
	}
	if h.TemplateID != want.TemplateID || h.SchemaID != want.SchemaID || h.Version != want.Version {
		return 0, &protoerr.UnsupportedMessage{TemplateID: h.TemplateID, SchemaID: h.SchemaID, Version: h.Version}
	}
	return h.BlockLength, nil
}

// readBlockTail reads the remaining bytes of a fixed block beyond
// knownLength and discards them, per the forward-compatible skip-unknown-
// bytes rule: a declared block_length larger than this codec knows about is
// not an error.
func readBlockTail(r *wire.Reader, declared, known uint16) error {
	if declared < known {
		return &protoerr.NotEnoughBytes{Need: int(known), Have: int(declared)}
	}
	if declared > known {
		if err := r.Skip(int(declared - known)); err != nil {
			return fmt.Errorf("sbe: skip unknown block tail: %w", err)
		}
	}
	return nil
}
