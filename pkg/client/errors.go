package client

import "errors"

// Session errors.
var (
	ErrNotConnected               = errors.New("not connected")
	ErrAlreadyConnected           = errors.New("already connected")
	ErrUnsupportedProtocolVersion = errors.New("unsupported protocol version")
	ErrUnexpectedReply            = errors.New("unexpected reply type")
	ErrInvalidConfig              = errors.New("invalid configuration")
)
