package wire

import (
	"encoding/binary"
	"fmt"
)

// Wire-format limits imposed by the 16-bit length and count prefixes.
const (
	// MaxStringLen is the longest encodable string in bytes. The length
	// prefix counts the NUL terminator, so one byte of the range is lost.
	MaxStringLen = 65534

	// MaxArrayLen is the largest encodable element count.
	MaxArrayLen = 65535
)

// stringSize returns the encoded size of a string: length prefix, text
// bytes, NUL terminator.
func stringSize(s string) uint32 {
	return 2 + uint32(len(s)) + 1
}

// colorArraySize returns the encoded size of a color array: count
// prefix plus four bytes per color.
func colorArraySize(n int) uint32 {
	return 2 + 4*uint32(n)
}

// Writer accumulates the little-endian encoding of a value. The zero
// value is ready to use. Writes cannot fail; length and count limits
// are enforced by the Validate step that precedes serialization.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer with capacity for size bytes, typically
// the value's computed encoded size.
func NewWriter(size int) *Writer {
	return &Writer{buf: make([]byte, 0, size)}
}

// Bytes returns the accumulated encoding.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// PutUint8 appends one byte.
func (w *Writer) PutUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// PutUint16 appends a little-endian 16-bit integer.
func (w *Writer) PutUint16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// PutUint32 appends a little-endian 32-bit integer.
func (w *Writer) PutUint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// PutString appends the string encoding: 16-bit length covering the
// text plus one NUL terminator, then the text, then the terminator.
func (w *Writer) PutString(s string) {
	w.PutUint16(uint16(len(s) + 1))
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, 0)
}

// PutColor appends the four-byte color layout: R, G, B, padding.
func (w *Writer) PutColor(c Color) {
	w.buf = append(w.buf, c.R, c.G, c.B, 0)
}

// PutColors appends a count-prefixed color array.
func (w *Writer) PutColors(colors []Color) {
	w.PutUint16(uint16(len(colors)))
	for _, c := range colors {
		w.PutColor(c)
	}
}

// PutUint32Array appends a count-prefixed array of 32-bit integers.
func (w *Writer) PutUint32Array(vs []uint32) {
	w.PutUint16(uint16(len(vs)))
	for _, v := range vs {
		w.PutUint32(v)
	}
}

// Reader is a cursor over an encoded buffer. Each accessor consumes
// its field and fails with ErrTruncatedInput when fewer bytes remain
// than the field requires.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader over buf. The Reader does not copy buf;
// decoded strings and slices are copied out of it.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Remaining returns the number of unconsumed bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// take consumes n bytes and returns them, or fails with
// ErrTruncatedInput.
func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, fmt.Errorf("need %d bytes, have %d: %w", n, r.Remaining(), ErrTruncatedInput)
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Uint8 consumes one byte.
func (r *Reader) Uint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 consumes a little-endian 16-bit integer.
func (r *Reader) Uint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint32 consumes a little-endian 32-bit integer.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// String consumes a string field and strips the NUL terminator the
// declared length includes.
func (r *Reader) String() (string, error) {
	length, err := r.Uint16()
	if err != nil {
		return "", err
	}
	if length == 0 {
		return "", fmt.Errorf("string length 0 leaves no room for the terminator: %w", ErrInvalidElement)
	}
	b, err := r.take(int(length))
	if err != nil {
		return "", err
	}
	return string(b[:length-1]), nil
}

// Color consumes the four-byte color layout. The padding byte is
// discarded.
func (r *Reader) Color() (Color, error) {
	b, err := r.take(4)
	if err != nil {
		return Color{}, err
	}
	return Color{R: b[0], G: b[1], B: b[2]}, nil
}

// Colors consumes a count-prefixed color array. A zero count yields a
// nil slice.
func (r *Reader) Colors() ([]Color, error) {
	count, err := r.Uint16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	colors := make([]Color, count)
	for i := range colors {
		colors[i], err = r.Color()
		if err != nil {
			return nil, fmt.Errorf("color %d of %d: %w", i, count, err)
		}
	}
	return colors, nil
}

// Uint32Array consumes a count-prefixed array of 32-bit integers. A
// zero count yields a nil slice.
func (r *Reader) Uint32Array() ([]uint32, error) {
	count, err := r.Uint16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	vs := make([]uint32, count)
	for i := range vs {
		vs[i], err = r.Uint32()
		if err != nil {
			return nil, fmt.Errorf("element %d of %d: %w", i, count, err)
		}
	}
	return vs, nil
}
