package discovery

import (
	"context"
	"time"
)

// Browser provides mDNS service browsing capabilities.
type Browser interface {
	// Browse searches for OpenRGB daemons on the local network.
	// The channel delivers each daemon once; addresses seen on
	// multiple interfaces are aggregated into the same entry. The
	// channel is closed when the context is cancelled or browsing
	// completes.
	Browse(ctx context.Context) (<-chan *Service, error)

	// FindFirst returns the first daemon found on the local network.
	// Returns when found or when the context is cancelled/timeout.
	FindFirst(ctx context.Context) (*Service, error)

	// Stop stops all active browsing operations.
	Stop()
}

// BrowserConfig configures browser behavior.
type BrowserConfig struct {
	// BrowseTimeout is the default timeout for browse operations.
	// Default: 10 seconds.
	BrowseTimeout time.Duration

	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string
}

// DefaultBrowserConfig returns the default browser configuration.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		BrowseTimeout: BrowseTimeout,
		Interface:     "",
	}
}
