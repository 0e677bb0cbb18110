// Package client implements an OpenRGB SDK client session.
//
// A Client owns one TCP connection to a daemon. Connect negotiates the
// protocol version and announces the client name; after that, queries
// (ControllerCount, ControllerData, DeviceList) run synchronously with
// one request in flight at a time, and update commands (UpdateLEDs,
// UpdateMode, ResizeZone, ...) are sent fire-and-forget, exactly as the
// protocol defines them.
//
// The daemon pushes DeviceListUpdated notifications on the same
// connection. The client absorbs them wherever it reads: while a query
// waits for its reply, and in CheckForUpdates, which polls the socket
// between requests. A notification sets the stale flag (DeviceListStale)
// and fires the OnDeviceListUpdated callback; DeviceList clears the
// flag.
//
//	c, err := client.NewClient(client.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	if err := c.Connect(ctx); err != nil {
//		return err
//	}
//	defer c.Close()
//
//	devices, err := c.DeviceList(ctx)
//	if err != nil {
//		return err
//	}
//	for i := range devices {
//		colors := make([]wire.Color, devices[i].TotalLEDCount())
//		for j := range colors {
//			colors[j] = wire.Color{R: 255}
//		}
//		_ = c.SetCustomMode(uint32(i))
//		_ = c.UpdateLEDs(uint32(i), colors)
//	}
package client
