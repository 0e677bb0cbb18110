package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orgb-protocol/orgb-go/pkg/log"
	"github.com/orgb-protocol/orgb-go/pkg/wire"
)

// DefaultPort is the TCP port OpenRGB daemons listen on.
const DefaultPort = 6742

// Connection errors.
var (
	// ErrNotConnected indicates the operation needs an open connection.
	ErrNotConnected = errors.New("not connected")

	// ErrConnectionClosed indicates the connection has been closed.
	ErrConnectionClosed = errors.New("connection closed")
)

// ClientConfig configures a client.
type ClientConfig struct {
	// MaxMessageSize is the maximum body size (default: 16MB).
	MaxMessageSize uint32

	// ConnectTimeout is the connection timeout (default: 30s).
	ConnectTimeout time.Duration

	// Logger for protocol logging (optional).
	Logger log.Logger
}

// Client dials TCP connections to OpenRGB daemons.
// The SDK protocol runs over plain TCP; there is no handshake below
// the message layer.
type Client struct {
	config ClientConfig
}

// NewClient creates a new client.
func NewClient(config ClientConfig) *Client {
	if config.MaxMessageSize == 0 {
		config.MaxMessageSize = DefaultMaxMessageSize
	}
	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = 30 * time.Second
	}
	return &Client{config: config}
}

// Connect establishes a connection to the specified address.
func (c *Client) Connect(ctx context.Context, address string) (*ClientConn, error) {
	// Apply timeout from config if context doesn't have one
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.ConnectTimeout)
		defer cancel()
	}

	// Dial TCP connection
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("dial failed: %w", err)
	}

	// Generate unique connection ID
	connID := uuid.New().String()

	framer := NewFramerWithMaxSize(conn, c.config.MaxMessageSize)
	if c.config.Logger != nil {
		framer.SetLogger(c.config.Logger, connID)
	}

	clientConn := &ClientConn{
		conn:    conn,
		framer:  framer,
		logger:  c.config.Logger,
		connID:  connID,
		closeCh: make(chan struct{}),
	}

	clientConn.logStateChange(log.StateChangeEvent{
		Entity:   log.StateEntityConnection,
		NewState: "CONNECTED",
	})

	return clientConn, nil
}

// ClientConn represents a connection from client to daemon.
type ClientConn struct {
	conn    net.Conn
	framer  *Framer
	logger  log.Logger
	connID  string // Unique connection identifier
	closeCh chan struct{}

	closeOnce sync.Once
	writeMu   sync.Mutex
	readMu    sync.Mutex
}

// ConnID returns the unique connection identifier.
func (c *ClientConn) ConnID() string {
	return c.connID
}

// LocalAddr returns the local network address.
func (c *ClientConn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// RemoteAddr returns the remote network address.
func (c *ClientConn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Send sends a message to the daemon.
func (c *ClientConn) Send(msg wire.Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	select {
	case <-c.closeCh:
		return ErrConnectionClosed
	default:
	}

	return c.framer.WriteMessage(msg)
}

// Receive reads one packet from the daemon with timeout.
// It returns the packet header and body; decoding the body is the
// caller's business (a client decodes via wire.DecodeServerMessage).
func (c *ClientConn) Receive(timeout time.Duration) (wire.Header, []byte, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()

	select {
	case <-c.closeCh:
		return wire.Header{}, nil, ErrConnectionClosed
	default:
	}

	if timeout > 0 {
		c.conn.SetReadDeadline(time.Now().Add(timeout))
		defer c.conn.SetReadDeadline(time.Time{})
	}

	return c.framer.ReadFrame()
}

// Close closes the connection.
func (c *ClientConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closeCh)
		err = c.conn.Close()
		c.logStateChange(log.StateChangeEvent{
			Entity:   log.StateEntityConnection,
			OldState: "CONNECTED",
			NewState: "DISCONNECTED",
		})
	})
	return err
}

// logStateChange emits a connection state event to the protocol logger.
func (c *ClientConn) logStateChange(change log.StateChangeEvent) {
	if c.logger == nil {
		return
	}
	event := log.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.connID,
		Layer:        log.LayerTransport,
		Category:     log.CategoryState,
		StateChange:  &change,
	}
	if addr := c.conn.RemoteAddr(); addr != nil {
		event.RemoteAddr = addr.String()
	}
	c.logger.Log(event)
}
