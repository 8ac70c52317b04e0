// Package wire implements the little-endian primitive codec shared by every
// higher layer of the broker protocol: fixed-width integers, length-prefixed
// strings and byte blobs, and repeated "group" fields. It is grounded on the
// same approach the rest of this codebase takes to binary wire formats
// elsewhere (encoding/binary over raw byte slices) rather than a
// third-party byte-order package.
package wire

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/taskbroker/zbproto/protoerr"
)

// maxVarLen is the largest length a variable-length field may declare; the
// all-ones value 65535 is reserved.
const maxVarLen = 65534

// Reader reads little-endian primitives from a byte slice it does not own.
// Fixed-width reads do not allocate; ReadRaw, ReadBytes and ReadString copy
// into freshly allocated memory so the result outlives the input slice.
type Reader struct {
	b   []byte
	off int
}

// NewReader wraps b for sequential reads starting at offset 0.
func NewReader(b []byte) *Reader {
	return &Reader{b: b}
}

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int { return len(r.b) - r.off }

// Offset returns the current read position.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the unread tail of the input, without copying.
func (r *Reader) Remaining() []byte { return r.b[r.off:] }

func (r *Reader) take(n int) ([]byte, error) {
	if r.Len() < n {
		return nil, &protoerr.NotEnoughBytes{Need: n, Have: r.Len()}
	}
	out := r.b[r.off : r.off+n]
	r.off += n
	return out, nil
}

// ReadRaw reads and returns an owned copy of the next n bytes without any
// length prefix, used by layers above wire that already know a field's
// length (e.g. the frame layer's declared payload length).
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// Skip advances the read position by n bytes without interpreting them,
// used when a declared block_length exceeds what this version of the codec
// knows how to parse.
func (r *Reader) Skip(n int) error {
	_, err := r.take(n)
	return err
}

func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadI8() (int8, error) {
	v, err := r.ReadU8()
	return int8(v), err
}

func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// ReadBytes reads a u16 length prefix followed by that many raw bytes,
// returning an owned copy.
func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	b, err := r.take(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// ReadString reads a u16 length prefix followed by that many UTF-8 bytes.
func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &protoerr.InvalidUTF8{}
	}
	return string(b), nil
}

// GroupHeader is the block_length/count pair preceding a repeated field.
type GroupHeader struct {
	BlockLength uint16
	Count       uint8
}

// ReadGroupHeader reads the block_length:u16, count:u8 pair that precedes a
// repeated field's items.
func (r *Reader) ReadGroupHeader() (GroupHeader, error) {
	bl, err := r.ReadU16()
	if err != nil {
		return GroupHeader{}, err
	}
	cnt, err := r.ReadU8()
	if err != nil {
		return GroupHeader{}, err
	}
	return GroupHeader{BlockLength: bl, Count: cnt}, nil
}

// Writer accumulates little-endian primitives into an in-memory buffer.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated output. The returned slice aliases the
// Writer's internal buffer and must not be mutated by the caller.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

func (w *Writer) WriteU8(v uint8) { w.buf = append(w.buf, v) }

func (w *Writer) WriteI8(v int8) { w.WriteU8(uint8(v)) }

func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteI16(v int16) { w.WriteU16(uint16(v)) }

func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteI32(v int32) { w.WriteU32(uint32(v)) }

func (w *Writer) WriteU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteI64(v int64) { w.WriteU64(uint64(v)) }

// WriteBytes writes a u16 length prefix followed by b. It fails if len(b)
// exceeds the 65534-byte ceiling.
func (w *Writer) WriteBytes(b []byte) error {
	if len(b) > maxVarLen {
		return &protoerr.SliceTooLong{Len: len(b)}
	}
	w.WriteU16(uint16(len(b)))
	w.buf = append(w.buf, b...)
	return nil
}

// WriteString writes a u16 length prefix followed by the UTF-8 bytes of s.
func (w *Writer) WriteString(s string) error {
	return w.WriteBytes([]byte(s))
}

// WriteGroupHeader writes the block_length:u16, count:u8 pair preceding a
// repeated field's items.
func (w *Writer) WriteGroupHeader(h GroupHeader) {
	w.WriteU16(h.BlockLength)
	w.WriteU8(h.Count)
}

// AlignUp rounds n up to the next multiple of align, which must be a power
// of two. It is the only alignment helper the protocol uses, applied with
// align=8 by the frame layer.
func AlignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// DebugHex renders a raw payload as space-separated hex bytes for display;
// it is not part of the wire contract.
func DebugHex(b []byte) string {
	return fmt.Sprintf("% x", b)
}
