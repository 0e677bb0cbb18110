package client

import (
	"context"
	"fmt"

	"github.com/orgb-protocol/orgb-go/pkg/wire"
)

// ControllerCount returns the number of devices the daemon manages.
func (c *Client) ControllerCount(ctx context.Context) (uint32, error) {
	msg, err := c.query(ctx, wire.NewRequestControllerCount())
	if err != nil {
		return 0, err
	}
	reply, ok := msg.(*wire.ReplyControllerCount)
	if !ok {
		return 0, ErrUnexpectedReply
	}
	return reply.Count, nil
}

// ControllerData returns the full description of one device.
func (c *Client) ControllerData(ctx context.Context, deviceIndex uint32) (wire.DeviceDescription, error) {
	msg, err := c.query(ctx, wire.NewRequestControllerData(deviceIndex))
	if err != nil {
		return wire.DeviceDescription{}, fmt.Errorf("device %d: %w", deviceIndex, err)
	}
	reply, ok := msg.(*wire.ReplyControllerData)
	if !ok {
		return wire.DeviceDescription{}, ErrUnexpectedReply
	}
	return reply.Device, nil
}

// DeviceList fetches the device count and every device description.
// It clears the stale flag up front, so a change arriving while the
// list is being fetched marks it stale again.
func (c *Client) DeviceList(ctx context.Context) ([]wire.DeviceDescription, error) {
	c.stale.Store(false)

	count, err := c.ControllerCount(ctx)
	if err != nil {
		return nil, err
	}

	devices := make([]wire.DeviceDescription, 0, count)
	for i := uint32(0); i < count; i++ {
		device, err := c.ControllerData(ctx, i)
		if err != nil {
			return nil, err
		}
		devices = append(devices, device)
	}
	return devices, nil
}
