package transport_test

import (
	"context"
	"encoding/binary"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/orgb-protocol/orgb-go/pkg/transport"
	"github.com/orgb-protocol/orgb-go/pkg/wire"
)

// startTestServer starts a server on an ephemeral loopback port and
// stops it when the test ends.
func startTestServer(t *testing.T, config transport.ServerConfig) *transport.Server {
	t.Helper()

	if config.Address == "" {
		config.Address = "127.0.0.1:0"
	}

	server := transport.NewServer(config)
	if err := server.Start(context.Background()); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	t.Cleanup(func() {
		_ = server.Stop()
	})
	return server
}

func dialTestServer(t *testing.T, server *transport.Server) *transport.ClientConn {
	t.Helper()

	client := transport.NewClient(transport.ClientConfig{})
	conn, err := client.Connect(context.Background(), server.Addr().String())
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func waitForConnections(t *testing.T, server *transport.Server, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for server.ConnectionCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d connections, got %d", want, server.ConnectionCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestServerAcceptAndDispatch(t *testing.T) {
	received := make(chan wire.Message, 1)

	server := startTestServer(t, transport.ServerConfig{
		OnMessage: func(conn *transport.ServerConn, msg wire.Message) {
			received <- msg
			if msg.Type() == wire.MessageTypeRequestProtocolVersion {
				if err := conn.Send(wire.NewReplyProtocolVersion(4)); err != nil {
					t.Errorf("failed to send reply: %v", err)
				}
			}
		},
	})

	conn := dialTestServer(t, server)

	if err := conn.Send(wire.NewRequestProtocolVersion()); err != nil {
		t.Fatalf("failed to send request: %v", err)
	}

	select {
	case msg := <-received:
		req, ok := msg.(*wire.RequestProtocolVersion)
		if !ok {
			t.Fatalf("expected *wire.RequestProtocolVersion, got %T", msg)
		}
		if req.Version != wire.ImplementedProtocolVersion {
			t.Errorf("expected announced version %d, got %d", wire.ImplementedProtocolVersion, req.Version)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for server to dispatch message")
	}

	header, body, err := conn.Receive(2 * time.Second)
	if err != nil {
		t.Fatalf("failed to receive reply: %v", err)
	}
	reply, err := wire.DecodeServerMessage(header, body)
	if err != nil {
		t.Fatalf("failed to decode reply: %v", err)
	}
	version, ok := reply.(*wire.ReplyProtocolVersion)
	if !ok {
		t.Fatalf("expected *wire.ReplyProtocolVersion, got %T", reply)
	}
	if version.Version != 4 {
		t.Errorf("expected version 4, got %d", version.Version)
	}
}

func TestServerConnectCallbacks(t *testing.T) {
	connected := make(chan string, 1)
	disconnected := make(chan string, 1)

	server := startTestServer(t, transport.ServerConfig{
		OnConnect: func(conn *transport.ServerConn) {
			connected <- conn.ConnID()
		},
		OnDisconnect: func(conn *transport.ServerConn) {
			disconnected <- conn.ConnID()
		},
	})

	conn := dialTestServer(t, server)

	var connID string
	select {
	case connID = <-connected:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for OnConnect")
	}
	if connID == "" {
		t.Error("expected non-empty connection ID")
	}

	if err := conn.Close(); err != nil {
		t.Fatalf("failed to close connection: %v", err)
	}

	select {
	case gotID := <-disconnected:
		if gotID != connID {
			t.Errorf("expected disconnect for conn %q, got %q", connID, gotID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for OnDisconnect")
	}
}

func TestServerUnknownTagKeepsConnection(t *testing.T) {
	received := make(chan wire.Message, 1)
	errCh := make(chan error, 1)

	server := startTestServer(t, transport.ServerConfig{
		OnMessage: func(conn *transport.ServerConn, msg wire.Message) {
			received <- msg
		},
		OnError: func(conn *transport.ServerConn, err error) {
			select {
			case errCh <- err:
			default:
			}
		},
	})

	raw, err := net.Dial("tcp", server.Addr().String())
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer raw.Close()

	// Hand-build a frame with an unrecognized tag and a body the
	// server has to skip to stay aligned on the stream.
	packet := make([]byte, wire.HeaderSize+8)
	copy(packet[0:4], "ORGB")
	binary.LittleEndian.PutUint32(packet[4:8], 0)
	binary.LittleEndian.PutUint32(packet[8:12], 9999)
	binary.LittleEndian.PutUint32(packet[12:16], 8)

	if _, err := raw.Write(packet); err != nil {
		t.Fatalf("failed to write unknown-tag frame: %v", err)
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, wire.ErrUnknownMessageType) {
			t.Errorf("expected ErrUnknownMessageType, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for unknown-tag error")
	}

	// The connection must survive: a valid message on the same
	// stream is still dispatched.
	valid, err := wire.NewSetClientName("resync test").Serialize()
	if err != nil {
		t.Fatalf("failed to serialize: %v", err)
	}
	if _, err := raw.Write(valid); err != nil {
		t.Fatalf("failed to send after unknown tag: %v", err)
	}

	select {
	case msg := <-received:
		name, ok := msg.(*wire.SetClientName)
		if !ok {
			t.Fatalf("expected *wire.SetClientName, got %T", msg)
		}
		if name.Name != "resync test" {
			t.Errorf("expected name %q, got %q", "resync test", name.Name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for message after unknown tag")
	}
}

func TestServerRejectsMalformedBody(t *testing.T) {
	received := make(chan wire.Message, 1)
	errCh := make(chan error, 1)

	server := startTestServer(t, transport.ServerConfig{
		OnMessage: func(conn *transport.ServerConn, msg wire.Message) {
			received <- msg
		},
		OnError: func(conn *transport.ServerConn, err error) {
			select {
			case errCh <- err:
			default:
			}
		},
	})

	raw, err := net.Dial("tcp", server.Addr().String())
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer raw.Close()

	// A SetClientName frame whose declared string length exceeds the
	// body. Decoding fails but the connection stays up, since the
	// full body was already consumed.
	packet := make([]byte, wire.HeaderSize+2)
	copy(packet[0:4], "ORGB")
	binary.LittleEndian.PutUint32(packet[4:8], 0)
	binary.LittleEndian.PutUint32(packet[8:12], uint32(wire.MessageTypeSetClientName))
	binary.LittleEndian.PutUint32(packet[12:16], 2)
	binary.LittleEndian.PutUint16(packet[16:18], 500)

	if _, err := raw.Write(packet); err != nil {
		t.Fatalf("failed to write malformed frame: %v", err)
	}

	select {
	case err := <-errCh:
		if err == nil {
			t.Error("expected decode error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for decode error")
	}

	valid, err := wire.NewRequestControllerCount().Serialize()
	if err != nil {
		t.Fatalf("failed to serialize: %v", err)
	}
	if _, err := raw.Write(valid); err != nil {
		t.Fatalf("failed to send after malformed frame: %v", err)
	}

	select {
	case msg := <-received:
		if msg.Type() != wire.MessageTypeRequestControllerCount {
			t.Errorf("expected RequestControllerCount, got %v", msg.Type())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for message after malformed frame")
	}
}

func TestServerBroadcast(t *testing.T) {
	server := startTestServer(t, transport.ServerConfig{})

	conn1 := dialTestServer(t, server)
	conn2 := dialTestServer(t, server)

	waitForConnections(t, server, 2)

	server.Broadcast(wire.NewDeviceListUpdated())

	for i, conn := range []*transport.ClientConn{conn1, conn2} {
		header, body, err := conn.Receive(2 * time.Second)
		if err != nil {
			t.Fatalf("conn %d: failed to receive broadcast: %v", i, err)
		}
		msg, err := wire.DecodeServerMessage(header, body)
		if err != nil {
			t.Fatalf("conn %d: failed to decode broadcast: %v", i, err)
		}
		if msg.Type() != wire.MessageTypeDeviceListUpdated {
			t.Errorf("conn %d: expected DeviceListUpdated, got %v", i, msg.Type())
		}
	}
}

func TestServerConnectionCount(t *testing.T) {
	server := startTestServer(t, transport.ServerConfig{})

	if count := server.ConnectionCount(); count != 0 {
		t.Errorf("expected 0 connections, got %d", count)
	}

	conn := dialTestServer(t, server)
	waitForConnections(t, server, 1)

	if err := conn.Close(); err != nil {
		t.Fatalf("failed to close connection: %v", err)
	}
	waitForConnections(t, server, 0)
}

func TestServerStopClosesConnections(t *testing.T) {
	var mu sync.Mutex
	disconnects := 0

	server := startTestServer(t, transport.ServerConfig{
		OnDisconnect: func(conn *transport.ServerConn) {
			mu.Lock()
			disconnects++
			mu.Unlock()
		},
	})

	conn := dialTestServer(t, server)
	waitForConnections(t, server, 1)

	if err := server.Stop(); err != nil {
		t.Fatalf("failed to stop server: %v", err)
	}

	// The client observes the shutdown as a read error.
	if _, _, err := conn.Receive(2 * time.Second); err == nil {
		t.Error("expected receive error after server stop")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := disconnects
		mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected 1 disconnect callback, got %d", n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestServerStartTwice(t *testing.T) {
	server := startTestServer(t, transport.ServerConfig{})

	if err := server.Start(context.Background()); err == nil {
		t.Error("expected error starting server twice")
	}
}
