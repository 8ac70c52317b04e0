// Package protoerr defines the error taxonomy shared by every layer of the
// broker wire codec: frame, transport, sbe, and payload all return these
// types (wrapped with fmt.Errorf's %w) instead of ad-hoc strings, so a
// caller can errors.As its way to the failure kind regardless of which
// layer produced it.
package protoerr

import "fmt"

// NotEnoughBytes means a decoder needed more input than it was given.
type NotEnoughBytes struct {
	Need int
	Have int
}

func (e *NotEnoughBytes) Error() string {
	return fmt.Sprintf("protoerr: not enough bytes: need %d, have %d", e.Need, e.Have)
}

// SliceTooLong means an encoder was asked to write a variable-length field
// longer than the SBE ceiling of 65534 bytes.
type SliceTooLong struct {
	Len int
}

func (e *SliceTooLong) Error() string {
	return fmt.Sprintf("protoerr: slice too long: %d bytes exceeds 65534-byte ceiling", e.Len)
}

// UnknownEnum means an integer on the wire did not match any known variant
// of the named enum.
type UnknownEnum struct {
	Kind  string
	Value int
}

func (e *UnknownEnum) Error() string {
	return fmt.Sprintf("protoerr: unknown %s value: %d", e.Kind, e.Value)
}

// UnsupportedMessage means the SBE (template_id, schema_id, version) triple
// read from the wire was not recognized in the branch the caller dispatched
// into.
type UnsupportedMessage struct {
	TemplateID uint16
	SchemaID   uint16
	Version    uint16
}

func (e *UnsupportedMessage) Error() string {
	return fmt.Sprintf("protoerr: unsupported message: template_id=%d schema_id=%d version=%d",
		e.TemplateID, e.SchemaID, e.Version)
}

// DecodeError means map/payload deserialization of an embedded business
// object failed.
type DecodeError struct {
	Text string
}

func (e *DecodeError) Error() string { return "protoerr: decode: " + e.Text }

// EncodeError means map/payload serialization of an embedded business
// object failed.
type EncodeError struct {
	Text string
}

func (e *EncodeError) Error() string { return "protoerr: encode: " + e.Text }

// InvalidUTF8 means a declared wire string was not valid UTF-8.
type InvalidUTF8 struct{}

func (e *InvalidUTF8) Error() string { return "protoerr: invalid utf-8 in string field" }

// UnknownState means a wire state string was not a member of the known
// vocabulary for the event kind that carried it.
type UnknownState struct {
	Kind  string
	Value string
}

func (e *UnknownState) Error() string {
	return fmt.Sprintf("protoerr: unknown %s state: %q", e.Kind, e.Value)
}
