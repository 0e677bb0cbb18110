package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/orgb-protocol/orgb-go/pkg/log"
	"github.com/orgb-protocol/orgb-go/pkg/wire"
)

// ServerConfig configures a daemon-side server.
type ServerConfig struct {
	// Address to listen on (e.g., ":6742" or "127.0.0.1:6742").
	Address string

	// MaxMessageSize is the maximum body size (default: 16MB).
	MaxMessageSize uint32

	// Logger for protocol logging (optional).
	Logger log.Logger

	// OnConnect is called when a new connection is established.
	OnConnect func(conn *ServerConn)

	// OnDisconnect is called when a connection is closed.
	OnDisconnect func(conn *ServerConn)

	// OnMessage is called when a client request is received.
	OnMessage func(conn *ServerConn, msg wire.Message)

	// OnError is called when an error occurs. The connection is nil
	// for accept errors.
	OnError func(conn *ServerConn, err error)
}

// Server accepts SDK connections the way the OpenRGB daemon does:
// plain TCP, one read loop per client.
type Server struct {
	config   ServerConfig
	listener net.Listener

	// Active connections
	conns   map[*ServerConn]struct{}
	connsMu sync.RWMutex

	// State
	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewServer creates a new server.
func NewServer(config ServerConfig) *Server {
	if config.Address == "" {
		config.Address = fmt.Sprintf(":%d", DefaultPort)
	}
	if config.MaxMessageSize == 0 {
		config.MaxMessageSize = DefaultMaxMessageSize
	}

	return &Server{
		config: config,
		conns:  make(map[*ServerConn]struct{}),
	}
}

// Start starts the server and begins accepting connections.
func (s *Server) Start(ctx context.Context) error {
	if s.running.Load() {
		return fmt.Errorf("server already running")
	}

	s.ctx, s.cancel = context.WithCancel(ctx)

	// Create listener
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.listener = listener

	s.running.Store(true)

	// Start accept loop
	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Stop stops the server and closes all connections.
func (s *Server) Stop() error {
	if !s.running.Load() {
		return nil
	}

	s.running.Store(false)
	s.cancel()

	// Close listener to stop accept loop
	if s.listener != nil {
		s.listener.Close()
	}

	// Close all connections
	s.connsMu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.connsMu.Unlock()

	// Wait for goroutines
	s.wg.Wait()

	return nil
}

// Addr returns the server's listen address.
func (s *Server) Addr() net.Addr {
	if s.listener != nil {
		return s.listener.Addr()
	}
	return nil
}

// ConnectionCount returns the number of active connections.
func (s *Server) ConnectionCount() int {
	s.connsMu.RLock()
	defer s.connsMu.RUnlock()
	return len(s.conns)
}

// Broadcast sends a message to every connected client.
// Used for DeviceListUpdated notifications.
func (s *Server) Broadcast(msg wire.Message) {
	s.connsMu.RLock()
	conns := make([]*ServerConn, 0, len(s.conns))
	for conn := range s.conns {
		conns = append(conns, conn)
	}
	s.connsMu.RUnlock()

	for _, conn := range conns {
		if err := conn.Send(msg); err != nil && s.config.OnError != nil {
			s.config.OnError(conn, fmt.Errorf("broadcast failed: %w", err))
		}
	}
}

// acceptLoop accepts incoming connections.
func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for s.running.Load() {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.running.Load() {
				// Real error
				if s.config.OnError != nil {
					s.config.OnError(nil, fmt.Errorf("accept error: %w", err))
				}
			}
			continue
		}

		// Handle connection in goroutine
		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

// handleConnection processes a single connection.
func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()

	// Generate unique connection ID
	connID := uuid.New().String()

	framer := NewFramerWithMaxSize(conn, s.config.MaxMessageSize)
	if s.config.Logger != nil {
		framer.SetLogger(s.config.Logger, connID)
	}

	sconn := &ServerConn{
		conn:       conn,
		framer:     framer,
		server:     s,
		closeCh:    make(chan struct{}),
		remoteAddr: conn.RemoteAddr(),
		connID:     connID,
	}

	// Log connected state
	if s.config.Logger != nil {
		s.config.Logger.Log(log.Event{
			Timestamp:    time.Now(),
			ConnectionID: connID,
			Layer:        log.LayerTransport,
			Category:     log.CategoryState,
			RemoteAddr:   conn.RemoteAddr().String(),
			StateChange: &log.StateChangeEvent{
				Entity:   log.StateEntityConnection,
				NewState: "CONNECTED",
			},
		})
	}

	// Register connection
	s.connsMu.Lock()
	s.conns[sconn] = struct{}{}
	s.connsMu.Unlock()

	// Notify connect
	if s.config.OnConnect != nil {
		s.config.OnConnect(sconn)
	}

	// Read loop
	sconn.readLoop()

	// Unregister connection
	s.connsMu.Lock()
	delete(s.conns, sconn)
	s.connsMu.Unlock()

	// Log disconnected state
	if s.config.Logger != nil {
		s.config.Logger.Log(log.Event{
			Timestamp:    time.Now(),
			ConnectionID: sconn.connID,
			Layer:        log.LayerTransport,
			Category:     log.CategoryState,
			RemoteAddr:   conn.RemoteAddr().String(),
			StateChange: &log.StateChangeEvent{
				Entity:   log.StateEntityConnection,
				OldState: "CONNECTED",
				NewState: "DISCONNECTED",
			},
		})
	}

	// Notify disconnect
	if s.config.OnDisconnect != nil {
		s.config.OnDisconnect(sconn)
	}
}

// ServerConn represents a client connection to the server.
type ServerConn struct {
	conn       net.Conn
	framer     *Framer
	server     *Server
	closeCh    chan struct{}
	closeOnce  sync.Once
	remoteAddr net.Addr
	connID     string // Unique connection identifier

	// Synchronization
	writeMu sync.Mutex
}

// RemoteAddr returns the remote address of the client.
func (c *ServerConn) RemoteAddr() net.Addr {
	return c.remoteAddr
}

// ConnID returns the unique connection identifier.
func (c *ServerConn) ConnID() string {
	return c.connID
}

// Send sends a message to the client.
func (c *ServerConn) Send(msg wire.Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	select {
	case <-c.closeCh:
		return ErrConnectionClosed
	default:
	}

	return c.framer.WriteMessage(msg)
}

// Close closes the connection.
func (c *ServerConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closeCh)
		err = c.conn.Close()
	})
	return err
}

// readLoop reads client requests from the connection.
func (c *ServerConn) readLoop() {
	for {
		select {
		case <-c.closeCh:
			return
		case <-c.server.ctx.Done():
			return
		default:
		}

		h, body, err := c.framer.ReadFrame()
		if err != nil {
			// An unknown tag is survivable: the body was drained, the
			// stream stays aligned. Report and keep reading.
			if errors.Is(err, wire.ErrUnknownMessageType) {
				c.reportError(err)
				continue
			}
			// Connection closed or unrecoverable framing error
			if err != io.EOF && c.server.running.Load() {
				select {
				case <-c.closeCh:
					// Already closing, don't report
				default:
					c.reportError(err)
				}
			}
			return
		}

		msg, err := wire.DecodeClientMessage(h, body)
		if err != nil {
			// The packet was framed correctly, so the stream is still
			// aligned; reject the message and keep the connection.
			c.reportError(err)
			continue
		}

		// Pass to handler
		if c.server.config.OnMessage != nil {
			c.server.config.OnMessage(c, msg)
		}
	}
}

// reportError forwards an error to the configured handler.
func (c *ServerConn) reportError(err error) {
	if c.server.config.OnError != nil {
		c.server.config.OnError(c, err)
	}
}
