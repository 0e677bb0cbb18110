// Package discovery implements mDNS/DNS-SD discovery for OpenRGB daemons.
//
// Daemons advertise the service type _openrgb._tcp in the local domain.
// The instance name is free-form (commonly "OpenRGB on <host>") and the
// TXT records may carry a "version" key with the daemon's version string.
//
// # Browsing
//
// Browser finds daemons on the local network. Results from multiple
// network interfaces are aggregated per instance name, so callers see
// each daemon once with all of its resolved addresses:
//
//	browser, _ := discovery.NewMDNSBrowser(discovery.DefaultBrowserConfig())
//	services, _ := browser.Browse(ctx)
//	for svc := range services {
//		fmt.Println(svc.InstanceName, svc.Addr())
//	}
//
// # Advertising
//
// Advertiser announces a daemon. It is used by the mock daemon binary
// so clients can find simulated daemons the same way as real ones:
//
//	adv, _ := discovery.NewMDNSAdvertiser(discovery.DefaultAdvertiserConfig())
//	_ = adv.Register(ctx, &discovery.DaemonInfo{InstanceName: "OpenRGB Mock", Port: 6742})
//	defer adv.Shutdown()
package discovery
