package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/orgb-protocol/orgb-go/pkg/log"
	"github.com/orgb-protocol/orgb-go/pkg/transport"
	"github.com/orgb-protocol/orgb-go/pkg/wire"
)

// DefaultClientName is announced to the daemon when Config.ClientName
// is empty.
const DefaultClientName = "orgb-go"

// notificationPollTimeout bounds each socket poll in CheckForUpdates.
const notificationPollTimeout = 50 * time.Millisecond

// Config holds client configuration.
type Config struct {
	// Address of the daemon ("host:port"). Defaults to 127.0.0.1 on
	// the standard SDK port.
	Address string

	// ClientName is announced after connecting and shows up in the
	// daemon's client list. Defaults to DefaultClientName.
	ClientName string

	// RequestTimeout bounds each request/reply round trip. A request
	// honors the earlier of this and the caller's context deadline.
	// Defaults to 5 seconds.
	RequestTimeout time.Duration

	// Logger for application logging. If nil, logging is disabled.
	Logger *slog.Logger

	// ProtocolLogger captures protocol events (optional).
	ProtocolLogger log.Logger

	// OnDeviceListUpdated is called from its own goroutine whenever the
	// daemon announces a device list change.
	OnDeviceListUpdated func()
}

// DefaultConfig returns a config with the default address, client
// name, and request timeout.
func DefaultConfig() Config {
	return Config{
		Address:        fmt.Sprintf("127.0.0.1:%d", transport.DefaultPort),
		ClientName:     DefaultClientName,
		RequestTimeout: 5 * time.Second,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if len(c.ClientName) > wire.MaxStringLen {
		return ErrInvalidConfig
	}
	if c.RequestTimeout < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// Client is a synchronous OpenRGB SDK client: one connection, one
// request in flight at a time, replies matched by the request's own
// type tag. DeviceListUpdated notifications interleaved with replies
// are absorbed on the read path; they set a stale flag and fire the
// configured callback.
type Client struct {
	mu sync.Mutex

	config    Config
	transport *transport.Client

	// Connection state (nil conn when disconnected)
	conn          *transport.ClientConn
	daemonVersion uint32

	// Set when the daemon announces a device list change, cleared by
	// DeviceList.
	stale atomic.Bool
}

// NewClient creates a client. Call Connect to establish the session.
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Address == "" {
		config.Address = fmt.Sprintf("127.0.0.1:%d", transport.DefaultPort)
	}
	if config.ClientName == "" {
		config.ClientName = DefaultClientName
	}
	if config.RequestTimeout == 0 {
		config.RequestTimeout = 5 * time.Second
	}

	return &Client{
		config:    config,
		transport: transport.NewClient(transport.ClientConfig{Logger: config.ProtocolLogger}),
	}, nil
}

// Connect dials the daemon, negotiates the protocol version, and
// announces the client name. It fails with
// ErrUnsupportedProtocolVersion when the daemon's version is older
// than this SDK implements.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return ErrAlreadyConnected
	}

	conn, err := c.transport.Connect(ctx, c.config.Address)
	if err != nil {
		return err
	}

	version, err := c.negotiateVersion(ctx, conn)
	if err != nil {
		_ = conn.Close()
		return err
	}

	name := wire.NewSetClientName(c.config.ClientName)
	if err := conn.Send(name); err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to announce client name: %w", err)
	}
	c.logMessage(conn, log.DirectionOut, name)

	c.conn = conn
	c.daemonVersion = version
	c.stale.Store(false)

	c.logSessionState(conn, "disconnected", "ready", "")
	if c.config.Logger != nil {
		c.config.Logger.Info("connected to daemon",
			"address", c.config.Address,
			"daemonVersion", version,
			"connID", conn.ConnID())
	}
	return nil
}

// negotiateVersion runs the protocol version handshake on a not yet
// published connection.
func (c *Client) negotiateVersion(ctx context.Context, conn *transport.ClientConn) (uint32, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	req := wire.NewRequestProtocolVersion()
	if err := conn.Send(req); err != nil {
		return 0, fmt.Errorf("version request failed: %w", err)
	}
	c.logMessage(conn, log.DirectionOut, req)

	msg, err := c.awaitReply(ctx, conn, wire.MessageTypeRequestProtocolVersion)
	if err != nil {
		return 0, fmt.Errorf("version handshake failed: %w", err)
	}
	reply, ok := msg.(*wire.ReplyProtocolVersion)
	if !ok {
		return 0, ErrUnexpectedReply
	}
	if reply.Version < wire.ImplementedProtocolVersion {
		return 0, fmt.Errorf("daemon protocol version %d: %w",
			reply.Version, ErrUnsupportedProtocolVersion)
	}
	return reply.Version, nil
}

// Close shuts the session down.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNotConnected
	}
	conn := c.conn
	err := conn.Close()
	c.conn = nil
	c.daemonVersion = 0

	c.logSessionState(conn, "ready", "disconnected", "closed by client")
	if c.config.Logger != nil {
		c.config.Logger.Info("disconnected from daemon", "address", c.config.Address)
	}
	return err
}

// Connected reports whether a session is established.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// DaemonProtocolVersion returns the version the daemon announced in
// the handshake, or 0 when disconnected.
func (c *Client) DaemonProtocolVersion() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.daemonVersion
}

// DeviceListStale reports whether a DeviceListUpdated notification has
// arrived since the last DeviceList call.
func (c *Client) DeviceListStale() bool {
	return c.stale.Load()
}

// CheckForUpdates drains pending DeviceListUpdated notifications from
// the socket and reports whether the device list is now stale.
// Notifications are otherwise only noticed while a request is waiting
// for its reply, so pollers should call this between requests.
func (c *Client) CheckForUpdates() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return false, ErrNotConnected
	}

	for {
		h, body, err := c.conn.Receive(notificationPollTimeout)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return c.stale.Load(), nil
			}
			return c.stale.Load(), err
		}

		msg, err := wire.DecodeServerMessage(h, body)
		if err != nil {
			if errors.Is(err, wire.ErrUnknownMessageType) {
				continue
			}
			return c.stale.Load(), err
		}
		c.logMessage(c.conn, log.DirectionIn, msg)

		if h.Type != wire.MessageTypeDeviceListUpdated {
			return c.stale.Load(), fmt.Errorf("%s with no request pending: %w", h.Type, ErrUnexpectedReply)
		}
		c.noteDeviceListUpdated()
	}
}

// query sends a request and waits for its reply. Replies carry the
// request's own type tag.
func (c *Client) query(ctx context.Context, req wire.Message) (wire.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, ErrNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	if err := c.conn.Send(req); err != nil {
		return nil, err
	}
	c.logMessage(c.conn, log.DirectionOut, req)

	return c.awaitReply(ctx, c.conn, req.Type())
}

// command sends a request that gets no reply on the wire.
func (c *Client) command(msg wire.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNotConnected
	}
	if err := c.conn.Send(msg); err != nil {
		return err
	}
	c.logMessage(c.conn, log.DirectionOut, msg)
	return nil
}

// awaitReply reads frames until the wanted reply arrives. Unknown tags
// are skipped (their bodies are already drained, so the stream stays
// aligned) and DeviceListUpdated notifications are absorbed.
func (c *Client) awaitReply(ctx context.Context, conn *transport.ClientConn, want wire.MessageType) (wire.Message, error) {
	deadline, _ := ctx.Deadline()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		h, body, err := conn.Receive(time.Until(deadline))
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return nil, context.DeadlineExceeded
			}
			return nil, err
		}

		msg, err := wire.DecodeServerMessage(h, body)
		if err != nil {
			if errors.Is(err, wire.ErrUnknownMessageType) {
				continue
			}
			return nil, err
		}
		c.logMessage(conn, log.DirectionIn, msg)

		if h.Type == wire.MessageTypeDeviceListUpdated {
			c.noteDeviceListUpdated()
			continue
		}
		if h.Type != want {
			return nil, fmt.Errorf("%s while waiting for %s: %w", h.Type, want, ErrUnexpectedReply)
		}
		return msg, nil
	}
}

func (c *Client) noteDeviceListUpdated() {
	c.stale.Store(true)
	if c.config.Logger != nil {
		c.config.Logger.Debug("device list updated notification")
	}
	if cb := c.config.OnDeviceListUpdated; cb != nil {
		go cb()
	}
}

func (c *Client) logMessage(conn *transport.ClientConn, direction log.Direction, msg wire.Message) {
	if c.config.ProtocolLogger == nil {
		return
	}
	h := msg.Header()
	c.config.ProtocolLogger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: conn.ConnID(),
		Direction:    direction,
		Layer:        log.LayerWire,
		Category:     log.CategoryMessage,
		Message: &log.MessageEvent{
			Tag:         h.Type,
			DeviceIndex: h.DeviceIndex,
			BodySize:    h.BodySize,
			Summary:     summarize(msg),
		},
	})
}

func (c *Client) logSessionState(conn *transport.ClientConn, oldState, newState, reason string) {
	if c.config.ProtocolLogger == nil {
		return
	}
	c.config.ProtocolLogger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: conn.ConnID(),
		Direction:    log.DirectionOut,
		Layer:        log.LayerClient,
		Category:     log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityClient,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

// summarize renders the interesting body fields of a message for
// protocol log events.
func summarize(msg wire.Message) string {
	switch m := msg.(type) {
	case *wire.ReplyControllerCount:
		return fmt.Sprintf("count=%d", m.Count)
	case *wire.RequestControllerData:
		return fmt.Sprintf("version=%d", m.ProtocolVersion)
	case *wire.ReplyControllerData:
		return fmt.Sprintf("device=%q leds=%d", m.Device.Name, m.Device.TotalLEDCount())
	case *wire.RequestProtocolVersion:
		return fmt.Sprintf("version=%d", m.Version)
	case *wire.ReplyProtocolVersion:
		return fmt.Sprintf("version=%d", m.Version)
	case *wire.SetClientName:
		return fmt.Sprintf("name=%q", m.Name)
	case *wire.ResizeZone:
		return fmt.Sprintf("zone=%d size=%d", m.ZoneIndex, m.NewSize)
	case *wire.UpdateLEDs:
		return fmt.Sprintf("leds=%d", len(m.Colors))
	case *wire.UpdateZoneLEDs:
		return fmt.Sprintf("zone=%d leds=%d", m.ZoneIndex, len(m.Colors))
	case *wire.UpdateSingleLED:
		return fmt.Sprintf("led=%d", m.LEDIndex)
	case *wire.UpdateMode:
		return fmt.Sprintf("mode=%d %q", m.ModeIndex, m.Mode.Name)
	default:
		return ""
	}
}
