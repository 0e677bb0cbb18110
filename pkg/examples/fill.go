package examples

import (
	"context"
	"fmt"

	"github.com/orgb-protocol/orgb-go/pkg/client"
	"github.com/orgb-protocol/orgb-go/pkg/wire"
)

// Fill sets every LED of every device to one color. Each device is
// switched to direct control first so the color is not overridden by
// the active effect mode.
func Fill(ctx context.Context, c *client.Client, color wire.Color) error {
	devices, err := c.DeviceList(ctx)
	if err != nil {
		return fmt.Errorf("failed to list devices: %w", err)
	}

	for i := range devices {
		if err := FillDevice(ctx, c, uint32(i), &devices[i], color); err != nil {
			return err
		}
	}
	return nil
}

// FillDevice sets every LED of one device to one color. The device
// description supplies the LED count; pass nil to fetch it fresh.
func FillDevice(ctx context.Context, c *client.Client, deviceIndex uint32, device *wire.DeviceDescription, color wire.Color) error {
	if device == nil {
		fetched, err := c.ControllerData(ctx, deviceIndex)
		if err != nil {
			return fmt.Errorf("failed to fetch device %d: %w", deviceIndex, err)
		}
		device = &fetched
	}

	n := int(device.TotalLEDCount())
	if n == 0 {
		return nil
	}

	if err := c.SetCustomMode(deviceIndex); err != nil {
		return fmt.Errorf("failed to switch device %d to direct control: %w", deviceIndex, err)
	}

	colors := make([]wire.Color, n)
	for j := range colors {
		colors[j] = color
	}
	if err := c.UpdateLEDs(deviceIndex, colors); err != nil {
		return fmt.Errorf("failed to update device %d: %w", deviceIndex, err)
	}
	return nil
}
