// Package daemontest provides an in-process mock OpenRGB daemon for
// tests and the orgb-mockd simulator. The daemon serves the server side
// of the SDK protocol from a set of wire.DeviceDescription fixtures,
// tracks the name each client announces, and records every
// state-changing request it receives so tests can assert on them.
package daemontest

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/orgb-protocol/orgb-go/pkg/log"
	"github.com/orgb-protocol/orgb-go/pkg/transport"
	"github.com/orgb-protocol/orgb-go/pkg/wire"
)

// Config configures a mock daemon.
type Config struct {
	// Address to listen on. Defaults to "127.0.0.1:0" (ephemeral port).
	Address string

	// Version is the protocol version the daemon announces.
	// Defaults to wire.ImplementedProtocolVersion.
	Version uint32

	// Devices is the initial device list. Defaults to DefaultDevices().
	Devices []wire.DeviceDescription

	// Logger for protocol logging (optional).
	Logger log.Logger
}

// Daemon is a mock OpenRGB daemon backed by a transport.Server.
//
// Requests for a device index past the end of the list get no reply,
// matching the real daemon, so client timeout paths can be exercised.
type Daemon struct {
	config Config
	server *transport.Server

	mu          sync.RWMutex
	devices     []wire.DeviceDescription
	clientNames map[string]string
	commands    []Command
}

// NewDaemon creates a mock daemon. Call Start to begin listening.
func NewDaemon(config Config) *Daemon {
	if config.Address == "" {
		config.Address = "127.0.0.1:0"
	}
	if config.Version == 0 {
		config.Version = wire.ImplementedProtocolVersion
	}
	if config.Devices == nil {
		config.Devices = DefaultDevices()
	}

	d := &Daemon{
		config:      config,
		devices:     cloneDevices(config.Devices),
		clientNames: make(map[string]string),
	}
	d.server = transport.NewServer(transport.ServerConfig{
		Address:   config.Address,
		Logger:    config.Logger,
		OnMessage: d.handleMessage,
	})
	return d
}

// Start begins accepting connections.
func (d *Daemon) Start(ctx context.Context) error {
	return d.server.Start(ctx)
}

// Stop shuts the daemon down and closes all client connections.
func (d *Daemon) Stop() error {
	return d.server.Stop()
}

// Addr returns the daemon's listen address, or nil before Start.
func (d *Daemon) Addr() net.Addr {
	return d.server.Addr()
}

// ConnectionCount returns the number of connected clients.
func (d *Daemon) ConnectionCount() int {
	return d.server.ConnectionCount()
}

// Devices returns a deep copy of the current device list.
func (d *Daemon) Devices() []wire.DeviceDescription {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return cloneDevices(d.devices)
}

// SetDevices replaces the device list. Callers that want connected
// clients to refetch should follow up with NotifyDeviceListChanged.
func (d *Daemon) SetDevices(devices []wire.DeviceDescription) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.devices = cloneDevices(devices)
}

// AddDevice appends a device to the list and returns its index.
func (d *Daemon) AddDevice(device wire.DeviceDescription) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.devices = append(d.devices, cloneDevice(device))
	return uint32(len(d.devices) - 1)
}

// NotifyDeviceListChanged pushes a DeviceListUpdated frame to every
// connected client.
func (d *Daemon) NotifyDeviceListChanged() {
	d.server.Broadcast(wire.NewDeviceListUpdated())
}

// ClientName returns the name announced on the given connection.
// Names survive disconnects so tests can assert after a client closes.
func (d *Daemon) ClientName(connID string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	name, ok := d.clientNames[connID]
	return name, ok
}

// ClientNames returns a copy of all announced names keyed by
// connection ID.
func (d *Daemon) ClientNames() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make(map[string]string, len(d.clientNames))
	for id, name := range d.clientNames {
		names[id] = name
	}
	return names
}

func (d *Daemon) handleMessage(conn *transport.ServerConn, msg wire.Message) {
	switch m := msg.(type) {
	case *wire.RequestControllerCount:
		d.mu.RLock()
		count := uint32(len(d.devices))
		d.mu.RUnlock()
		d.send(conn, wire.NewReplyControllerCount(count))

	case *wire.RequestControllerData:
		d.mu.RLock()
		var reply *wire.ReplyControllerData
		if int(m.DeviceIndex) < len(d.devices) {
			reply = wire.NewReplyControllerData(m.DeviceIndex, cloneDevice(d.devices[m.DeviceIndex]))
		}
		d.mu.RUnlock()
		if reply == nil {
			return
		}
		d.send(conn, reply)

	case *wire.RequestProtocolVersion:
		d.send(conn, wire.NewReplyProtocolVersion(d.config.Version))

	case *wire.SetClientName:
		d.mu.Lock()
		d.clientNames[conn.ConnID()] = m.Name
		d.mu.Unlock()

	// State is applied before the command is recorded so that a test
	// waiting on WaitForCommands sees the effect on the next fetch.
	case *wire.ResizeZone:
		d.applyResizeZone(m)
		d.record(conn, msg)

	case *wire.UpdateLEDs:
		d.applyColors(m.DeviceIndex, 0, m.Colors, true)
		d.record(conn, msg)

	case *wire.UpdateZoneLEDs:
		d.applyZoneColors(m)
		d.record(conn, msg)

	case *wire.UpdateSingleLED:
		d.applyColors(m.DeviceIndex, m.LEDIndex, []wire.Color{m.Color}, false)
		d.record(conn, msg)

	case *wire.SetCustomMode:
		d.applySetCustomMode(m)
		d.record(conn, msg)

	case *wire.UpdateMode:
		d.applyUpdateMode(m)
		d.record(conn, msg)
	}
}

func (d *Daemon) send(conn *transport.ServerConn, msg wire.Message) {
	// Send failures surface through the server's error callback and
	// protocol log; the handler has nowhere better to put them.
	_ = conn.Send(msg)
}

// applyColors writes colors into a device's color buffer starting at
// offset. When wholeDevice is set the write is clamped to the buffer;
// otherwise an out-of-range offset is ignored.
func (d *Daemon) applyColors(deviceIndex, offset uint32, colors []wire.Color, wholeDevice bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if int(deviceIndex) >= len(d.devices) {
		return
	}
	dev := &d.devices[deviceIndex]
	if !wholeDevice && int(offset)+len(colors) > len(dev.Colors) {
		return
	}
	for i, c := range colors {
		pos := int(offset) + i
		if pos >= len(dev.Colors) {
			break
		}
		dev.Colors[pos] = c
	}
}

func (d *Daemon) applyZoneColors(m *wire.UpdateZoneLEDs) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if int(m.DeviceIndex) >= len(d.devices) {
		return
	}
	dev := &d.devices[m.DeviceIndex]
	if int(m.ZoneIndex) >= len(dev.Zones) {
		return
	}

	// LEDs are laid out zone by zone in declaration order.
	var offset uint32
	for i := uint32(0); i < m.ZoneIndex; i++ {
		offset += dev.Zones[i].LEDsCount
	}
	for i, c := range m.Colors {
		pos := int(offset) + i
		if pos >= len(dev.Colors) || uint32(i) >= dev.Zones[m.ZoneIndex].LEDsCount {
			break
		}
		dev.Colors[pos] = c
	}
}

func (d *Daemon) applyResizeZone(m *wire.ResizeZone) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if int(m.DeviceIndex) >= len(d.devices) {
		return
	}
	dev := &d.devices[m.DeviceIndex]
	if int(m.ZoneIndex) >= len(dev.Zones) {
		return
	}
	zone := &dev.Zones[m.ZoneIndex]
	if m.NewSize < zone.LEDsMin || m.NewSize > zone.LEDsMax || m.NewSize == zone.LEDsCount {
		return
	}

	var offset uint32
	for i := uint32(0); i < m.ZoneIndex; i++ {
		offset += dev.Zones[i].LEDsCount
	}
	oldSize := zone.LEDsCount
	zone.LEDsCount = m.NewSize

	dev.LEDs = resizeRange(dev.LEDs, offset, oldSize, m.NewSize, func(i uint32) wire.LEDDescription {
		return wire.LEDDescription{Name: fmt.Sprintf("%s LED %d", zone.Name, i+1)}
	})
	dev.Colors = resizeRange(dev.Colors, offset, oldSize, m.NewSize, func(uint32) wire.Color {
		return wire.Color{}
	})
}

func (d *Daemon) applySetCustomMode(m *wire.SetCustomMode) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if int(m.DeviceIndex) >= len(d.devices) {
		return
	}
	dev := &d.devices[m.DeviceIndex]
	for i := range dev.Modes {
		if dev.Modes[i].Flags.Has(wire.ModeFlagHasPerLEDColor) {
			dev.ActiveMode = uint32(i)
			return
		}
	}
	dev.ActiveMode = 0
}

func (d *Daemon) applyUpdateMode(m *wire.UpdateMode) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if int(m.DeviceIndex) >= len(d.devices) {
		return
	}
	dev := &d.devices[m.DeviceIndex]
	if int(m.ModeIndex) >= len(dev.Modes) {
		return
	}
	dev.Modes[m.ModeIndex] = cloneMode(m.Mode)
	dev.ActiveMode = m.ModeIndex
}

// resizeRange replaces the in-zone slice [offset, offset+oldSize) with
// newSize elements, keeping the surviving prefix and filling grown
// positions via fill (called with the zone-local index).
func resizeRange[T any](s []T, offset, oldSize, newSize uint32, fill func(uint32) T) []T {
	if int(offset+oldSize) > len(s) {
		return s
	}
	result := make([]T, 0, len(s)-int(oldSize)+int(newSize))
	result = append(result, s[:offset]...)

	keep := oldSize
	if newSize < keep {
		keep = newSize
	}
	result = append(result, s[offset:offset+keep]...)
	for i := keep; i < newSize; i++ {
		result = append(result, fill(i))
	}
	return append(result, s[offset+oldSize:]...)
}

func cloneDevices(devices []wire.DeviceDescription) []wire.DeviceDescription {
	result := make([]wire.DeviceDescription, len(devices))
	for i := range devices {
		result[i] = cloneDevice(devices[i])
	}
	return result
}

// cloneDevice deep-copies a device so replies serialized outside the
// daemon lock never share slices with state an update may mutate.
// Empty collections stay nil, matching what the wire decoder produces.
func cloneDevice(d wire.DeviceDescription) wire.DeviceDescription {
	c := d
	if len(d.Modes) > 0 {
		c.Modes = make([]wire.ModeDescription, len(d.Modes))
		for i := range d.Modes {
			c.Modes[i] = cloneMode(d.Modes[i])
		}
	}
	if len(d.Zones) > 0 {
		c.Zones = make([]wire.ZoneDescription, len(d.Zones))
		for i := range d.Zones {
			c.Zones[i] = cloneZone(d.Zones[i])
		}
	}
	c.LEDs = append([]wire.LEDDescription(nil), d.LEDs...)
	c.Colors = append([]wire.Color(nil), d.Colors...)
	return c
}

func cloneMode(m wire.ModeDescription) wire.ModeDescription {
	c := m
	c.Colors = append([]wire.Color(nil), m.Colors...)
	return c
}

func cloneZone(z wire.ZoneDescription) wire.ZoneDescription {
	c := z
	if z.Matrix != nil {
		c.Matrix = &wire.MatrixMap{
			Height: z.Matrix.Height,
			Width:  z.Matrix.Width,
			Values: append([]uint32(nil), z.Matrix.Values...),
		}
	}
	return c
}
