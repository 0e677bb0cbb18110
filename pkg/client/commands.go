package client

import (
	"github.com/orgb-protocol/orgb-go/pkg/wire"
)

// Update commands get no reply on the wire. An error return means the
// command could not be sent; a nil return does not confirm the daemon
// applied it.

// UpdateLEDs sets every LED of a device in one write.
func (c *Client) UpdateLEDs(deviceIndex uint32, colors []wire.Color) error {
	return c.command(wire.NewUpdateLEDs(deviceIndex, colors))
}

// UpdateZoneLEDs sets every LED of one zone.
func (c *Client) UpdateZoneLEDs(deviceIndex, zoneIndex uint32, colors []wire.Color) error {
	return c.command(wire.NewUpdateZoneLEDs(deviceIndex, zoneIndex, colors))
}

// UpdateSingleLED sets one LED by device-wide index.
func (c *Client) UpdateSingleLED(deviceIndex, ledIndex uint32, color wire.Color) error {
	return c.command(wire.NewUpdateSingleLED(deviceIndex, ledIndex, color))
}

// SetCustomMode switches a device to its direct-control mode so that
// LED updates are visible.
func (c *Client) SetCustomMode(deviceIndex uint32) error {
	return c.command(wire.NewSetCustomMode(deviceIndex))
}

// UpdateMode activates and reconfigures a device mode.
func (c *Client) UpdateMode(deviceIndex, modeIndex uint32, mode wire.ModeDescription) error {
	return c.command(wire.NewUpdateMode(deviceIndex, modeIndex, mode))
}

// ResizeZone changes the LED count of a resizable zone.
func (c *Client) ResizeZone(deviceIndex, zoneIndex, newSize uint32) error {
	return c.command(wire.NewResizeZone(deviceIndex, zoneIndex, newSize))
}

// SetName announces a new client name for this connection.
func (c *Client) SetName(name string) error {
	return c.command(wire.NewSetClientName(name))
}
