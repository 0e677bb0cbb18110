package examples

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/orgb-protocol/orgb-go/pkg/client"
	"github.com/orgb-protocol/orgb-go/pkg/wire"
)

// RainbowConfig configures a Rainbow animator.
type RainbowConfig struct {
	// FrameInterval is the delay between frames. Defaults to 50ms.
	FrameInterval time.Duration

	// CycleTime is how long one full hue rotation takes. Defaults to 3s.
	CycleTime time.Duration

	// Spread is the fraction of the hue wheel stretched across one
	// device's LEDs. Defaults to 1.0 (the full wheel).
	Spread float64
}

// Rainbow animates a moving rainbow across every LED of the devices it
// was built with. It demonstrates frame-paced direct-control updates:
// one UpdateLEDs per device per frame, no reply to wait for.
type Rainbow struct {
	client  *client.Client
	config  RainbowConfig
	targets []rainbowTarget

	// Hue offset in degrees, advanced each frame
	offset float64
}

type rainbowTarget struct {
	index uint32
	leds  int
}

// NewRainbow snapshots the daemon's device list and switches every
// device with LEDs to direct control.
func NewRainbow(ctx context.Context, c *client.Client, config RainbowConfig) (*Rainbow, error) {
	if config.FrameInterval <= 0 {
		config.FrameInterval = 50 * time.Millisecond
	}
	if config.CycleTime <= 0 {
		config.CycleTime = 3 * time.Second
	}
	if config.Spread <= 0 {
		config.Spread = 1.0
	}

	devices, err := c.DeviceList(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	r := &Rainbow{client: c, config: config}
	for i, dev := range devices {
		n := int(dev.TotalLEDCount())
		if n == 0 {
			continue
		}
		if err := c.SetCustomMode(uint32(i)); err != nil {
			return nil, fmt.Errorf("failed to switch device %d to direct control: %w", i, err)
		}
		r.targets = append(r.targets, rainbowTarget{index: uint32(i), leds: n})
	}
	return r, nil
}

// Step renders one frame and pushes it to every target device.
func (r *Rainbow) Step() error {
	for _, tgt := range r.targets {
		colors := make([]wire.Color, tgt.leds)
		for j := range colors {
			hue := r.offset + r.config.Spread*360*float64(j)/float64(tgt.leds)
			colors[j] = HSVColor(hue, 1, 1)
		}
		if err := r.client.UpdateLEDs(tgt.index, colors); err != nil {
			return fmt.Errorf("failed to update device %d: %w", tgt.index, err)
		}
	}

	r.offset += 360 * float64(r.config.FrameInterval) / float64(r.config.CycleTime)
	for r.offset >= 360 {
		r.offset -= 360
	}
	return nil
}

// Run pushes frames at the configured interval until ctx is done.
// The returned error is ctx.Err() on a clean stop.
func (r *Rainbow) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.config.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.Step(); err != nil {
				return err
			}
		}
	}
}

// HSVColor converts a hue in degrees (wrapped into [0,360)) plus
// saturation and value in [0,1] to an RGB color.
func HSVColor(h, s, v float64) wire.Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return wire.Color{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
	}
}
