package discovery

import (
	"context"
	"time"
)

// Advertiser provides mDNS service advertising capabilities.
type Advertiser interface {
	// Register starts advertising a daemon service. A previous
	// registration is replaced.
	Register(ctx context.Context, info *DaemonInfo) error

	// UpdateTXT updates the TXT records of the registered service.
	UpdateTXT(info *DaemonInfo) error

	// Shutdown stops advertising and releases the registration.
	Shutdown()
}

// AdvertiserConfig configures advertiser behavior.
type AdvertiserConfig struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL.
	// Default: 120 seconds.
	TTL time.Duration
}

// DefaultAdvertiserConfig returns the default advertiser configuration.
func DefaultAdvertiserConfig() AdvertiserConfig {
	return AdvertiserConfig{
		Interface: "",
		TTL:       120 * time.Second,
	}
}
