// Package transport provides the OpenRGB SDK transport layer.
//
// The transport layer handles:
//   - Plain TCP connections to the daemon (default port 6742)
//   - Fixed-header packet framing ("ORGB" magic, 16-byte prefix)
//   - Daemon-side accept loop with per-connection read goroutines
//   - Connection state events for protocol capture
//
// # Protocol Stack
//
//	┌────────────────────────────────┐
//	│       Typed Messages           │
//	├────────────────────────────────┤
//	│  ORGB Header Framing (16B)     │
//	├────────────────────────────────┤
//	│           TCP                  │
//	└────────────────────────────────┘
//
// # Framing
//
// Every packet opens with the four magic bytes "ORGB" followed by the
// device index, the message type tag, and the body length, each a
// little-endian uint32. The reader trusts the announced length only up
// to a configurable bound (DefaultMaxMessageSize); anything larger is
// treated as a corrupt header.
//
// A packet with an unrecognized type tag is drained and reported
// without closing the connection, so one unknown message never stalls
// the stream. A bad magic tag is unrecoverable: resynchronizing an
// unframed byte stream is not possible, and the connection must be
// torn down.
//
// # No liveness layer
//
// The SDK protocol has no ping/pong. Liveness is observed through
// request timeouts, and reconnection policy lives in pkg/connection.
package transport
