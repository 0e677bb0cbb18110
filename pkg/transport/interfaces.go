package transport

import (
	"context"
	"net"
	"time"

	"github.com/orgb-protocol/orgb-go/pkg/wire"
)

// DaemonConnection represents a daemon-side connection to a client.
// Implemented by ServerConn.
type DaemonConnection interface {
	// RemoteAddr returns the remote network address of the client.
	RemoteAddr() net.Addr

	// ConnID returns the unique connection identifier.
	ConnID() string

	// Send sends a message to the client.
	Send(msg wire.Message) error

	// Close closes the connection.
	Close() error
}

// ClientConnection represents a client-side connection to a daemon.
// Implemented by ClientConn.
type ClientConnection interface {
	// ConnID returns the unique connection identifier.
	ConnID() string

	// LocalAddr returns the local network address.
	LocalAddr() net.Addr

	// RemoteAddr returns the remote network address.
	RemoteAddr() net.Addr

	// Send sends a message to the daemon.
	Send(msg wire.Message) error

	// Receive reads one packet with the specified timeout.
	Receive(timeout time.Duration) (wire.Header, []byte, error)

	// Close closes the connection.
	Close() error
}

// TransportServer represents a daemon-side TCP server.
// Implemented by Server.
type TransportServer interface {
	// Start begins accepting connections.
	Start(ctx context.Context) error

	// Stop gracefully stops the server.
	Stop() error

	// Addr returns the server's listen address.
	Addr() net.Addr

	// ConnectionCount returns the number of active connections.
	ConnectionCount() int
}

// FrameReadWriter provides packet-level I/O.
// Implemented by Framer.
type FrameReadWriter interface {
	// ReadFrame reads one packet, returning its header and body.
	ReadFrame() (wire.Header, []byte, error)

	// WriteFrame writes an already-encoded packet.
	WriteFrame(packet []byte) error
}

// Compile-time interface satisfaction checks.
var (
	_ DaemonConnection = (*ServerConn)(nil)
	_ ClientConnection = (*ClientConn)(nil)
	_ TransportServer  = (*Server)(nil)
	_ FrameReadWriter  = (*Framer)(nil)
)
