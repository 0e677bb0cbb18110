package discovery

import (
	"errors"
	"net"
	"strconv"
	"time"
)

// Service type constants for mDNS.
const (
	// ServiceTypeDaemon is the service type announced by OpenRGB daemons.
	ServiceTypeDaemon = "_openrgb._tcp"

	// Domain is the mDNS domain.
	Domain = "local"

	// DefaultPort is the default OpenRGB SDK port.
	DefaultPort = 6742
)

// TXT record key constants.
const (
	// TXTKeyVersion carries the daemon's version string (optional).
	TXTKeyVersion = "version"
)

// Timing constants.
const (
	// BrowseTimeout is the default timeout for mDNS browsing.
	BrowseTimeout = 10 * time.Second

	// MDNSUpdateDelay is the maximum delay for mDNS updates.
	MDNSUpdateDelay = 1 * time.Second
)

// Limits.
const (
	// MaxInstanceNameLen is the DNS label limit.
	MaxInstanceNameLen = 63

	// MaxTXTRecordSize is the maximum total TXT record size.
	MaxTXTRecordSize = 400
)

// Discovery errors.
var (
	ErrMissingRequired     = errors.New("missing required field")
	ErrInstanceNameTooLong = errors.New("instance name exceeds 63 characters")
	ErrNotFound            = errors.New("service not found")
)

// Service represents an OpenRGB daemon found via mDNS.
type Service struct {
	// InstanceName is the mDNS instance name (e.g., "OpenRGB on office-pc").
	InstanceName string

	// Host is the hostname (e.g., "office-pc.local").
	Host string

	// Port is the SDK port.
	Port uint16

	// Addresses contains resolved IP addresses.
	Addresses []string

	// Version is the daemon's version string (from TXT "version"),
	// empty when the daemon does not announce one.
	Version string
}

// Addr returns a dialable "host:port" address for the service,
// preferring a resolved IP over the hostname.
func (s *Service) Addr() string {
	host := s.Host
	if len(s.Addresses) > 0 {
		host = s.Addresses[0]
	}
	return net.JoinHostPort(host, strconv.FormatUint(uint64(s.Port), 10))
}

// DaemonInfo contains information for advertising a daemon.
type DaemonInfo struct {
	// InstanceName is the mDNS instance name to announce.
	InstanceName string

	// Port is the SDK port. Zero means DefaultPort.
	Port uint16

	// Version is an optional daemon version string.
	Version string

	// Host is the hostname to advertise. Empty uses the system hostname.
	Host string
}

// Validate checks if the DaemonInfo is valid.
func (d *DaemonInfo) Validate() error {
	if d.InstanceName == "" {
		return ErrMissingRequired
	}
	if len(d.InstanceName) > MaxInstanceNameLen {
		return ErrInstanceNameTooLong
	}
	return nil
}
