package wire

import (
	"bytes"
	"fmt"
)

// HeaderSize is the fixed length of the frame header.
const HeaderSize = 16

// ImplementedProtocolVersion is the daemon protocol version this
// package speaks. Version negotiation never adapts the encoded field
// sets; peers below this version are rejected by the session layer.
const ImplementedProtocolVersion uint32 = 1

// magic opens every frame.
var magic = [4]byte{'O', 'R', 'G', 'B'}

// Header is the fixed prefix of every frame: the target device index
// (0 when no device is addressed), the message type tag, and the byte
// length of the body that follows.
type Header struct {
	DeviceIndex uint32
	Type        MessageType
	BodySize    uint32
}

// encodeTo writes the magic tag and the three header fields.
func (h Header) encodeTo(w *Writer) {
	w.buf = append(w.buf, magic[:]...)
	w.PutUint32(h.DeviceIndex)
	w.PutUint32(uint32(h.Type))
	w.PutUint32(h.BodySize)
}

// DecodeHeader parses the fixed frame prefix. It fails with
// ErrBadMagic when the magic tag does not match, with
// ErrTruncatedInput when buf is shorter than HeaderSize, and with
// ErrUnknownMessageType when the tag is outside the closed set. In the
// unknown-type case the returned header still carries the device index
// and body size, so a caller that wants to stay on the stream can skip
// BodySize bytes and continue; after ErrBadMagic the stream position is
// meaningless and the connection must be torn down.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("header needs %d bytes, have %d: %w", HeaderSize, len(buf), ErrTruncatedInput)
	}
	if !bytes.Equal(buf[:4], magic[:]) {
		return Header{}, fmt.Errorf("got % X: %w", buf[:4], ErrBadMagic)
	}
	r := NewReader(buf[4:HeaderSize])
	var h Header
	h.DeviceIndex, _ = r.Uint32()
	rawType, _ := r.Uint32()
	h.Type = MessageType(rawType)
	h.BodySize, _ = r.Uint32()
	if !h.Type.IsValid() {
		return h, fmt.Errorf("type tag %d: %w", rawType, ErrUnknownMessageType)
	}
	return h, nil
}
