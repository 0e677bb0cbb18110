package wire

import "errors"

// Codec errors. Failures wrap one of these sentinels with context
// naming the field that was being read or written; use errors.Is to
// classify them.
var (
	// ErrBadMagic indicates a frame that does not begin with the "ORGB"
	// tag. The stream is desynchronized; the caller should reconnect.
	ErrBadMagic = errors.New("bad magic")

	// ErrUnknownMessageType indicates a type tag outside the closed
	// message set, or a known tag arriving from the wrong direction.
	ErrUnknownMessageType = errors.New("unknown message type")

	// ErrTruncatedInput indicates fewer bytes remained than a declared
	// length or element count requires.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrInvalidElement indicates an out-of-range enumeration value or a
	// violated cross-field invariant, such as a matrix values array whose
	// length is not height*width.
	ErrInvalidElement = errors.New("invalid element")

	// ErrInconsistentLength indicates a body whose embedded duplicate
	// length disagrees with the header's body size, or a body with
	// trailing bytes after a complete decode.
	ErrInconsistentLength = errors.New("inconsistent length")
)
