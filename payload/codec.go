// Package payload implements the self-describing, MessagePack-compatible
// map encoding carried inside SBE variable-length fields, and the
// application object shapes (task events, topology, subscriptions, ...)
// that ride in it. Field names are camelCase on the wire regardless of the
// Go struct field names.
package payload

import (
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/taskbroker/zbproto/protoerr"
)

// Recognized leading bytes of a self-describing map payload.
const (
	EmptyMap   byte = 0x80
	EmptyArray byte = 0x90
	Nil        byte = 0xC0
)

// NilPayload is the one-byte encoding of an absent/unset payload.
var NilPayload = []byte{Nil}

// unsetInt64 is the decode-default for an absent TaskEvent.LockTime, meaning
// "unset". TaskHeaders' integer keys default to -1 instead.
const unsetInt64 = math.MinInt64

// Marshal encodes an arbitrary value as a self-describing map payload, for
// callers building a nested "payload" field (e.g. a task's business data)
// rather than one of this package's own typed objects.
func Marshal(v any) ([]byte, error) {
	return marshal(v)
}

func marshal(v any) ([]byte, error) {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return nil, &protoerr.EncodeError{Text: fmt.Sprintf("payload: marshal %T: %v", v, err)}
	}
	return b, nil
}

func unmarshal(data []byte, v any) error {
	if err := msgpack.Unmarshal(data, v); err != nil {
		return &protoerr.DecodeError{Text: fmt.Sprintf("payload: unmarshal %T: %v", v, err)}
	}
	return nil
}
