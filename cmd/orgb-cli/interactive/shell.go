// Package interactive provides the interactive command-line interface
// for the OpenRGB SDK client.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/orgb-protocol/orgb-go/pkg/client"
	"github.com/orgb-protocol/orgb-go/pkg/connection"
	"github.com/orgb-protocol/orgb-go/pkg/discovery"
	"github.com/orgb-protocol/orgb-go/pkg/wire"
)

// Shell handles interactive mode for orgb-cli.
type Shell struct {
	client *client.Client
	rl     *readline.Instance

	// Tracks whether the stale-list hint was already shown so it is
	// printed once per notification, not after every command.
	staleNotified bool
}

// New creates a new interactive shell around a connected client.
func New(c *client.Client) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "orgb> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Shell{
		client: c,
		rl:     rl,
	}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
func (s *Shell) Stderr() io.Writer {
	return s.rl.Stderr()
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "list", "ls":
			s.cmdList(ctx)

		case "info", "i":
			s.cmdInfo(ctx, args)

		case "color", "c":
			s.cmdColor(ctx, args)

		case "zone", "z":
			s.cmdZone(ctx, args)

		case "led":
			s.cmdLED(args)

		case "mode", "m":
			s.cmdMode(ctx, args)

		case "custom":
			s.cmdCustom(args)

		case "resize":
			s.cmdResize(args)

		case "name":
			s.cmdName(args)

		case "version", "v":
			s.cmdVersion()

		case "status":
			s.cmdStatus()

		case "watch":
			s.cmdWatch(ctx, args)

		case "discover":
			s.cmdDiscover(ctx, args)

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}

		s.checkStale()
	}
}

// checkStale prints a one-time hint when the daemon announced a device
// list change that has not been refetched yet.
func (s *Shell) checkStale() {
	if s.client.Connected() && s.client.DeviceListStale() {
		if !s.staleNotified {
			fmt.Fprintln(s.rl.Stdout(), "Device list changed on the daemon (run 'list' to refresh)")
			s.staleNotified = true
		}
		return
	}
	s.staleNotified = false
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
OpenRGB Client Commands:
  Devices:
    list                         - List devices
    info <device>                - Show modes, zones, and LEDs of a device

  Lighting:
    color <device> <color>       - Set every LED of a device to a color
    zone <device> <zone> <color> - Set every LED of a zone to a color
    led <device> <led> <color>   - Set a single LED to a color
    mode <device> <mode> [speed] - Activate a mode (index or name, partial ok)
    custom <device>              - Switch the device to direct control
    resize <device> <zone> <n>   - Resize a resizable zone to n LEDs

  Session:
    name <text>                  - Rename this client on the daemon
    version                      - Show protocol versions
    status                       - Show session status
    watch [seconds]              - Watch for device list changes, reconnecting
                                   if the daemon restarts (default 30s)
    discover [seconds]           - Browse for daemons via mDNS (default 5s)

  General:
    help                         - Show this help
    quit                         - Exit

  Color Format:
    Hex with optional '#' (ff4000, #00ff00) or a name:
    red, green, blue, white, black, off, yellow, cyan, magenta, orange, purple`)
}

// cmdList handles the list command.
func (s *Shell) cmdList(ctx context.Context) {
	devices, err := s.client.DeviceList(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	if len(devices) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "No devices")
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "\nDevices (%d):\n", len(devices))
	fmt.Fprintln(s.rl.Stdout(), "-------------------------------------------")
	for i := range devices {
		dev := &devices[i]
		active := "?"
		if int(dev.ActiveMode) < len(dev.Modes) {
			active = dev.Modes[dev.ActiveMode].Name
		}
		fmt.Fprintf(s.rl.Stdout(), "  %2d  %-28s %-12s %3d LEDs, %d zones, mode %s\n",
			i, dev.Name, dev.Type, dev.TotalLEDCount(), len(dev.Zones), active)
	}
	fmt.Fprintln(s.rl.Stdout())
}

// cmdInfo handles the info command.
func (s *Shell) cmdInfo(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: info <device>")
		return
	}

	idx, err := parseIndex(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid device index: %v\n", err)
		return
	}

	dev, err := s.client.ControllerData(ctx, idx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}

	out := s.rl.Stdout()
	fmt.Fprintf(out, "\nDevice %d: %s\n", idx, dev.Name)
	fmt.Fprintln(out, "-------------------------------------------")
	fmt.Fprintf(out, "  Type:        %s\n", dev.Type)
	if dev.Vendor != "" {
		fmt.Fprintf(out, "  Vendor:      %s\n", dev.Vendor)
	}
	if dev.Description != "" {
		fmt.Fprintf(out, "  Description: %s\n", dev.Description)
	}
	if dev.Version != "" {
		fmt.Fprintf(out, "  Version:     %s\n", dev.Version)
	}
	if dev.Serial != "" {
		fmt.Fprintf(out, "  Serial:      %s\n", dev.Serial)
	}
	if dev.Location != "" {
		fmt.Fprintf(out, "  Location:    %s\n", dev.Location)
	}

	fmt.Fprintf(out, "\n  Modes (%d, * = active):\n", len(dev.Modes))
	for i := range dev.Modes {
		m := &dev.Modes[i]
		marker := " "
		if uint32(i) == dev.ActiveMode {
			marker = "*"
		}
		fmt.Fprintf(out, "  %s %2d  %-20s %s\n", marker, i, m.Name, m.Flags)
		if m.Flags.Has(wire.ModeFlagHasSpeed) {
			fmt.Fprintf(out, "          speed %d (range %d-%d)\n", m.Speed, m.SpeedMin, m.SpeedMax)
		}
		if m.Flags.HasDirection() {
			fmt.Fprintf(out, "          direction %s\n", m.Direction)
		}
		if m.ColorMode != wire.ColorModeNone {
			fmt.Fprintf(out, "          colors %s", m.ColorMode)
			if len(m.Colors) > 0 {
				fmt.Fprintf(out, " [%s]", joinColors(m.Colors))
			}
			fmt.Fprintln(out)
		}
	}

	fmt.Fprintf(out, "\n  Zones (%d):\n", len(dev.Zones))
	for i := range dev.Zones {
		z := &dev.Zones[i]
		fmt.Fprintf(out, "    %2d  %-20s %-7s %d LEDs (min %d, max %d)\n",
			i, z.Name, z.Type, z.LEDsCount, z.LEDsMin, z.LEDsMax)
		if z.Matrix != nil {
			fmt.Fprintf(out, "        matrix %dx%d\n", z.Matrix.Height, z.Matrix.Width)
		}
	}

	fmt.Fprintf(out, "\n  LEDs (%d):\n", len(dev.LEDs))
	for i := range dev.LEDs {
		color := ""
		if i < len(dev.Colors) {
			color = "  " + formatColor(dev.Colors[i])
		}
		fmt.Fprintf(out, "    %2d  %-24s%s\n", i, dev.LEDs[i].Name, color)
	}
	fmt.Fprintln(out)
}

// cmdColor handles the color command.
func (s *Shell) cmdColor(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: color <device> <color>")
		fmt.Fprintln(s.rl.Stdout(), "  Example: color 0 ff4000")
		return
	}

	idx, err := parseIndex(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid device index: %v\n", err)
		return
	}
	color, err := parseColor(args[1])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "%v\n", err)
		return
	}

	dev, err := s.client.ControllerData(ctx, idx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}

	// Static colors only take effect in direct control
	if err := s.client.SetCustomMode(idx); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed to set custom mode: %v\n", err)
		return
	}

	colors := make([]wire.Color, dev.TotalLEDCount())
	for i := range colors {
		colors[i] = color
	}
	if err := s.client.UpdateLEDs(idx, colors); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed to update LEDs: %v\n", err)
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "Set %d LEDs on %q to %s\n", len(colors), dev.Name, formatColor(color))
}

// cmdZone handles the zone command.
func (s *Shell) cmdZone(ctx context.Context, args []string) {
	if len(args) < 3 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: zone <device> <zone> <color>")
		fmt.Fprintln(s.rl.Stdout(), "  Example: zone 0 1 00ff00")
		return
	}

	idx, err := parseIndex(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid device index: %v\n", err)
		return
	}
	zoneIdx, err := parseIndex(args[1])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid zone index: %v\n", err)
		return
	}
	color, err := parseColor(args[2])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "%v\n", err)
		return
	}

	dev, err := s.client.ControllerData(ctx, idx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	if int(zoneIdx) >= len(dev.Zones) {
		fmt.Fprintf(s.rl.Stdout(), "Device %q has %d zones\n", dev.Name, len(dev.Zones))
		return
	}
	zone := &dev.Zones[zoneIdx]

	if err := s.client.SetCustomMode(idx); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed to set custom mode: %v\n", err)
		return
	}

	colors := make([]wire.Color, zone.LEDsCount)
	for i := range colors {
		colors[i] = color
	}
	if err := s.client.UpdateZoneLEDs(idx, zoneIdx, colors); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed to update zone: %v\n", err)
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "Set %d LEDs in zone %q of %q to %s\n",
		len(colors), zone.Name, dev.Name, formatColor(color))
}

// cmdLED handles the led command.
func (s *Shell) cmdLED(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: led <device> <led> <color>")
		fmt.Fprintln(s.rl.Stdout(), "  Example: led 0 3 ffffff")
		return
	}

	idx, err := parseIndex(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid device index: %v\n", err)
		return
	}
	ledIdx, err := parseIndex(args[1])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid LED index: %v\n", err)
		return
	}
	color, err := parseColor(args[2])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "%v\n", err)
		return
	}

	if err := s.client.UpdateSingleLED(idx, ledIdx, color); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed to update LED: %v\n", err)
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "Set LED %d on device %d to %s\n", ledIdx, idx, formatColor(color))
}

// cmdMode handles the mode command.
func (s *Shell) cmdMode(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: mode <device> <mode> [speed]")
		fmt.Fprintln(s.rl.Stdout(), "  Mode is an index or a name; partial names match")
		return
	}

	idx, err := parseIndex(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid device index: %v\n", err)
		return
	}

	dev, err := s.client.ControllerData(ctx, idx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}

	modeIdx, err := resolveMode(&dev, args[1])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "%v\n", err)
		return
	}
	mode := dev.Modes[modeIdx]

	if len(args) >= 3 {
		speed, err := parseIndex(args[2])
		if err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Invalid speed: %v\n", err)
			return
		}
		if !mode.Flags.Has(wire.ModeFlagHasSpeed) {
			fmt.Fprintf(s.rl.Stdout(), "Mode %q has no speed control\n", mode.Name)
			return
		}
		if speed < mode.SpeedMin || speed > mode.SpeedMax {
			fmt.Fprintf(s.rl.Stdout(), "Speed %d out of range %d-%d\n", speed, mode.SpeedMin, mode.SpeedMax)
			return
		}
		mode.Speed = speed
	}

	if err := s.client.UpdateMode(idx, modeIdx, mode); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed to update mode: %v\n", err)
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "Activated mode %q on %q\n", mode.Name, dev.Name)
}

// cmdCustom handles the custom command.
func (s *Shell) cmdCustom(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: custom <device>")
		return
	}

	idx, err := parseIndex(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid device index: %v\n", err)
		return
	}

	if err := s.client.SetCustomMode(idx); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed to set custom mode: %v\n", err)
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "Direct control enabled for device %d\n", idx)
}

// cmdResize handles the resize command.
func (s *Shell) cmdResize(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: resize <device> <zone> <size>")
		return
	}

	idx, err := parseIndex(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid device index: %v\n", err)
		return
	}
	zoneIdx, err := parseIndex(args[1])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid zone index: %v\n", err)
		return
	}
	size, err := parseIndex(args[2])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid size: %v\n", err)
		return
	}

	if err := s.client.ResizeZone(idx, zoneIdx, size); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed to resize zone: %v\n", err)
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "Resized zone %d on device %d to %d LEDs\n", zoneIdx, idx, size)
}

// cmdName handles the name command.
func (s *Shell) cmdName(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: name <text>")
		return
	}

	name := strings.Join(args, " ")
	if err := s.client.SetName(name); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed to set name: %v\n", err)
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "Client name set to %q\n", name)
}

// cmdVersion shows the protocol versions of both sides.
func (s *Shell) cmdVersion() {
	fmt.Fprintf(s.rl.Stdout(), "  Client implements: %d\n", wire.ImplementedProtocolVersion)
	fmt.Fprintf(s.rl.Stdout(), "  Daemon negotiated: %d\n", s.client.DaemonProtocolVersion())
}

// cmdStatus shows the session status.
func (s *Shell) cmdStatus() {
	out := s.rl.Stdout()
	fmt.Fprintln(out, "\nSession Status")
	fmt.Fprintln(out, "-------------------------------------------")

	connected := s.client.Connected()
	fmt.Fprintf(out, "  Connected:      %t\n", connected)
	if connected {
		fmt.Fprintf(out, "  Daemon Version: %d\n", s.client.DaemonProtocolVersion())
		listState := "up to date"
		if s.client.DeviceListStale() {
			listState = "stale (run 'list' to refresh)"
		}
		fmt.Fprintf(out, "  Device List:    %s\n", listState)
	}
	fmt.Fprintln(out)
}

// cmdWatch polls for device list change notifications.
func (s *Shell) cmdWatch(ctx context.Context, args []string) {
	seconds := 30
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Fprintln(s.rl.Stdout(), "Usage: watch [seconds]")
			return
		}
		seconds = n
	}

	// The connect function doubles as a health probe: a live session
	// is left alone, a dead one is torn down and redialed.
	manager := connection.NewManager(func(ctx context.Context) error {
		if s.client.Connected() {
			if _, err := s.client.CheckForUpdates(); err == nil {
				return nil
			}
			_ = s.client.Close()
		}
		return s.client.Connect(ctx)
	})
	manager.OnReconnecting(func(attempt int, delay time.Duration) {
		fmt.Fprintf(s.rl.Stdout(), "Connection lost; retrying in %s (attempt %d)\n",
			delay.Round(time.Millisecond), attempt)
		s.rl.Refresh()
	})
	manager.OnConnected(func() {
		fmt.Fprintln(s.rl.Stdout(), "Reconnected to daemon")
		s.rl.Refresh()
	})
	manager.StartReconnectLoop()
	defer manager.Close()

	if err := manager.Connect(ctx); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Watch error: %v\n", err)
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "Watching for device list changes for %ds...\n", seconds)

	deadline := time.NewTimer(time.Duration(seconds) * time.Second)
	defer deadline.Stop()
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			fmt.Fprintln(s.rl.Stdout(), "Watch finished")
			return
		case <-ticker.C:
		}

		if !manager.IsConnected() {
			continue
		}

		stale, err := s.client.CheckForUpdates()
		if err != nil {
			manager.NotifyConnectionLost()
			continue
		}
		if !stale {
			continue
		}
		devices, err := s.client.DeviceList(ctx)
		if err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Refresh failed: %v\n", err)
			continue
		}
		fmt.Fprintf(s.rl.Stdout(), "[%s] Device list updated: %d device(s)\n",
			time.Now().Format("15:04:05"), len(devices))
	}
}

// cmdDiscover browses for daemons via mDNS.
func (s *Shell) cmdDiscover(ctx context.Context, args []string) {
	timeout := 5 * time.Second
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Fprintln(s.rl.Stdout(), "Usage: discover [seconds]")
			return
		}
		timeout = time.Duration(n) * time.Second
	}

	browser, err := discovery.NewMDNSBrowser(discovery.DefaultBrowserConfig())
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	defer browser.Stop()

	browseCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	services, err := browser.Browse(browseCtx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "Browsing for %s...\n", timeout)
	count := 0
	for svc := range services {
		count++
		line := fmt.Sprintf("  %d. %s at %s", count, svc.InstanceName, svc.Addr())
		if svc.Version != "" {
			line += fmt.Sprintf(" (protocol %s)", svc.Version)
		}
		fmt.Fprintln(s.rl.Stdout(), line)
	}
	if count == 0 {
		fmt.Fprintln(s.rl.Stdout(), "No daemons found")
	}
}

// resolveMode finds a mode by index, exact name, or partial name.
func resolveMode(dev *wire.DeviceDescription, arg string) (uint32, error) {
	if n, err := strconv.ParseUint(arg, 10, 32); err == nil {
		if int(n) >= len(dev.Modes) {
			return 0, fmt.Errorf("device has %d modes", len(dev.Modes))
		}
		return uint32(n), nil
	}

	for i := range dev.Modes {
		if strings.EqualFold(dev.Modes[i].Name, arg) {
			return uint32(i), nil
		}
	}
	for i := range dev.Modes {
		if strings.Contains(strings.ToLower(dev.Modes[i].Name), strings.ToLower(arg)) {
			return uint32(i), nil
		}
	}
	return 0, fmt.Errorf("no mode matching %q (use 'info' to list modes)", arg)
}

// namedColors maps common color names to their RGB values.
var namedColors = map[string]wire.Color{
	"red":     {R: 255},
	"green":   {G: 255},
	"blue":    {B: 255},
	"white":   {R: 255, G: 255, B: 255},
	"black":   {},
	"off":     {},
	"yellow":  {R: 255, G: 255},
	"cyan":    {G: 255, B: 255},
	"magenta": {R: 255, B: 255},
	"orange":  {R: 255, G: 128},
	"purple":  {R: 128, B: 255},
}

// parseColor parses a color name or a 6-digit hex value.
func parseColor(arg string) (wire.Color, error) {
	if c, ok := namedColors[strings.ToLower(arg)]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(arg, "#")
	if len(hex) != 6 {
		return wire.Color{}, fmt.Errorf("invalid color %q (use 6 hex digits or a color name)", arg)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return wire.Color{}, fmt.Errorf("invalid color %q (use 6 hex digits or a color name)", arg)
	}
	return wire.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// parseIndex parses a non-negative 32-bit index.
func parseIndex(arg string) (uint32, error) {
	n, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid index", arg)
	}
	return uint32(n), nil
}

// formatColor renders a color as a hex string.
func formatColor(c wire.Color) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// joinColors renders a color list as space-separated hex strings.
func joinColors(colors []wire.Color) string {
	parts := make([]string, len(colors))
	for i, c := range colors {
		parts[i] = formatColor(c)
	}
	return strings.Join(parts, " ")
}
