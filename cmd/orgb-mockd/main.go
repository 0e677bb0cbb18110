// Command orgb-mockd is a mock OpenRGB daemon.
//
// It serves the SDK protocol from a set of simulated devices so that
// clients can be developed and tested without real RGB hardware or a
// running OpenRGB instance. Devices are either built-in defaults or
// loaded from YAML fixture files.
//
// Usage:
//
//	orgb-mockd [flags]
//
// Flags:
//
//	-listen string        Listen address (default ":6742")
//	-devices string       YAML fixture file or directory with simulated devices
//	-version uint         Protocol version to announce (default 1)
//	-advertise            Advertise the daemon via mDNS
//	-instance-name string mDNS instance name (default "OpenRGB Mock on <hostname>")
//	-protocol-log string  File path for protocol event logging (CBOR format)
//	-log-level string     Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Serve the built-in mock devices on the standard port
//	orgb-mockd
//
//	# Serve devices from a fixture directory, discoverable via mDNS
//	orgb-mockd -devices ./fixtures -advertise
//
//	# Record all protocol traffic for later analysis with orgb-log
//	orgb-mockd -listen 127.0.0.1:7000 -protocol-log session.orlog
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/orgb-protocol/orgb-go/internal/daemontest"
	"github.com/orgb-protocol/orgb-go/pkg/discovery"
	orgblog "github.com/orgb-protocol/orgb-go/pkg/log"
	"github.com/orgb-protocol/orgb-go/pkg/wire"
)

// Config holds the mock daemon configuration.
type Config struct {
	Listen       string
	Devices      string
	Version      uint
	Advertise    bool
	InstanceName string
	ProtocolLog  string
	LogLevel     string
}

var config Config

func init() {
	flag.StringVar(&config.Listen, "listen", ":6742", "Listen address")
	flag.StringVar(&config.Devices, "devices", "", "YAML fixture file or directory with simulated devices")
	flag.UintVar(&config.Version, "version", uint(wire.ImplementedProtocolVersion), "Protocol version to announce")
	flag.BoolVar(&config.Advertise, "advertise", false, "Advertise the daemon via mDNS")
	flag.StringVar(&config.InstanceName, "instance-name", "", "mDNS instance name (default \"OpenRGB Mock on <hostname>\")")
	flag.StringVar(&config.ProtocolLog, "protocol-log", "", "File path for protocol event logging (CBOR format)")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	setupLogging(config.LogLevel)

	log.Println("OpenRGB Mock Daemon")
	log.Println("===================")

	devices, err := loadDevices()
	if err != nil {
		log.Fatalf("Failed to load devices: %v", err)
	}

	// Set up protocol logging if requested
	var protocolLogger *orgblog.FileLogger
	if config.ProtocolLog != "" {
		protocolLogger, err = orgblog.NewFileLogger(config.ProtocolLog)
		if err != nil {
			log.Fatalf("Failed to create protocol logger: %v", err)
		}
		log.Printf("Protocol logging to: %s", config.ProtocolLog)
	}

	daemonConfig := daemontest.Config{
		Address: config.Listen,
		Version: uint32(config.Version),
		Devices: devices,
	}
	// Only set logger when non-nil to avoid typed-nil interface issue.
	if protocolLogger != nil {
		daemonConfig.Logger = protocolLogger
	}

	daemon := daemontest.NewDaemon(daemonConfig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := daemon.Start(ctx); err != nil {
		log.Fatalf("Failed to start daemon: %v", err)
	}

	log.Printf("Listening on %s (protocol version %d)", daemon.Addr(), config.Version)
	for i, dev := range daemon.Devices() {
		log.Printf("  device %d: %s (%s, %d LEDs, %d zones, %d modes)",
			i, dev.Name, dev.Type, dev.TotalLEDCount(), len(dev.Zones), len(dev.Modes))
	}

	// Advertise via mDNS if requested
	var advertiser *discovery.MDNSAdvertiser
	if config.Advertise {
		advertiser, err = startAdvertising(ctx, daemon.Addr())
		if err != nil {
			log.Printf("Warning: mDNS advertising failed: %v", err)
		}
	}

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	log.Printf("Received signal: %v", sig)
	log.Println("Shutting down...")

	if advertiser != nil {
		advertiser.Shutdown()
	}
	if err := daemon.Stop(); err != nil {
		log.Printf("Error stopping daemon: %v", err)
	}
	if protocolLogger != nil {
		protocolLogger.Close()
	}

	log.Println("Goodbye!")
}

func setupLogging(level string) {
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	switch level {
	case "debug":
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	case "warn", "error":
		log.SetFlags(log.Ltime)
	}
}

// loadDevices returns the simulated device list: fixtures from the
// -devices path when set, the built-in defaults otherwise.
func loadDevices() ([]wire.DeviceDescription, error) {
	if config.Devices == "" {
		log.Println("Using built-in mock devices")
		return daemontest.DefaultDevices(), nil
	}

	info, err := os.Stat(config.Devices)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		log.Printf("Loading device fixtures from directory: %s", config.Devices)
		return daemontest.LoadFixtureDirectory(config.Devices)
	}
	log.Printf("Loading device fixtures from: %s", config.Devices)
	return daemontest.LoadFixtures(config.Devices)
}

// startAdvertising registers the daemon with mDNS so orgb-cli's
// discover command can find it.
func startAdvertising(ctx context.Context, addr net.Addr) (*discovery.MDNSAdvertiser, error) {
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok {
		return nil, fmt.Errorf("unexpected listen address type %T", addr)
	}

	instanceName := config.InstanceName
	if instanceName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "localhost"
		}
		instanceName = "OpenRGB Mock on " + hostname
	}

	advertiser, err := discovery.NewMDNSAdvertiser(discovery.DefaultAdvertiserConfig())
	if err != nil {
		return nil, err
	}

	info := &discovery.DaemonInfo{
		InstanceName: instanceName,
		Port:         uint16(tcpAddr.Port),
		Version:      strconv.FormatUint(uint64(config.Version), 10),
	}
	if err := advertiser.Register(ctx, info); err != nil {
		advertiser.Shutdown()
		return nil, err
	}

	log.Printf("Advertising %q on port %d via mDNS", instanceName, tcpAddr.Port)
	return advertiser, nil
}
