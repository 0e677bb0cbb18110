// Package wire implements the OpenRGB SDK network protocol: the fixed
// 16-byte frame header, the closed set of typed request and reply
// messages, and the nested device/zone/mode/LED description records
// those messages carry.
//
// Every frame starts with the ASCII magic "ORGB" followed by a device
// index, a message type tag, and the byte length of the body. All
// multi-byte integers are little-endian. Strings travel as a 16-bit
// length (which counts one mandatory NUL terminator) followed by the
// text and the terminator; homogeneous collections travel as a 16-bit
// element count followed by the elements back to back.
//
// # Encoding and decoding
//
// Outgoing messages are built with their New* constructors and encoded
// with Serialize, which computes the exact body size before writing a
// single byte. Incoming frames are decoded in two steps: DecodeHeader
// parses and validates the fixed prefix, then DecodeServerMessage (for
// traffic arriving at a client) or DecodeClientMessage (for traffic
// arriving at a daemon) picks the body decoder for the type tag. The
// two entry points exist because reply tags alias their request tags
// on the wire.
//
// All operations are pure transformations between values and byte
// slices; nothing in this package performs I/O or retains state, so
// concurrent use is safe as long as each call works on its own value.
//
// # Errors
//
// Decode failures wrap one of the package sentinels (ErrBadMagic,
// ErrUnknownMessageType, ErrTruncatedInput, ErrInvalidElement,
// ErrInconsistentLength) with context naming the offending field;
// match them with errors.Is. A failed decode never returns a partial
// value.
package wire
