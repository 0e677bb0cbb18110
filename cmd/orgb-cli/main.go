// Command orgb-cli is an interactive OpenRGB SDK client.
//
// It connects to a running OpenRGB daemon (or orgb-mockd) and provides
// a command shell for inspecting devices and driving their lighting.
//
// Usage:
//
//	orgb-cli [flags]
//
// Flags:
//
//	-server string       Daemon address (default "127.0.0.1:6742")
//	-discover            Find a daemon via mDNS instead of -server
//	-name string         Client name announced to the daemon (default "orgb-cli")
//	-timeout duration    Request timeout (default 5s)
//	-protocol-log string File path for protocol event logging (CBOR format)
//	-log-level string    Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Connect to the local daemon
//	orgb-cli
//
//	# Find a daemon on the network and record the session
//	orgb-cli -discover -protocol-log session.orlog
//
// Interactive Commands:
//
//	list                        - List devices
//	info <device>               - Show full device details
//	color <device> <hex>        - Set every LED to a color
//	zone <device> <zone> <hex>  - Set one zone to a color
//	led <device> <led> <hex>    - Set a single LED
//	mode <device> <mode> [speed] - Activate a mode
//	custom <device>             - Switch to direct-control mode
//	resize <device> <zone> <n>  - Resize a zone
//	name <text>                 - Rename this client
//	version                     - Show protocol versions
//	status                      - Show session status
//	watch [seconds]             - Watch for device list changes
//	discover [seconds]          - Browse for daemons via mDNS
//	quit                        - Exit
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/orgb-protocol/orgb-go/cmd/orgb-cli/interactive"
	"github.com/orgb-protocol/orgb-go/pkg/client"
	"github.com/orgb-protocol/orgb-go/pkg/discovery"
	orgblog "github.com/orgb-protocol/orgb-go/pkg/log"
)

// Config holds the CLI configuration.
type Config struct {
	Server      string
	Discover    bool
	Name        string
	Timeout     time.Duration
	ProtocolLog string
	LogLevel    string
}

var config Config

func init() {
	flag.StringVar(&config.Server, "server", "", "Daemon address (default \"127.0.0.1:6742\")")
	flag.BoolVar(&config.Discover, "discover", false, "Find a daemon via mDNS instead of -server")
	flag.StringVar(&config.Name, "name", "orgb-cli", "Client name announced to the daemon")
	flag.DurationVar(&config.Timeout, "timeout", 5*time.Second, "Request timeout")
	flag.StringVar(&config.ProtocolLog, "protocol-log", "", "File path for protocol event logging (CBOR format)")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	setupLogging(config.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	address := config.Server
	if config.Discover {
		found, err := discoverDaemon(ctx)
		if err != nil {
			log.Fatalf("Discovery failed: %v", err)
		}
		log.Printf("Discovered daemon %q at %s", found.InstanceName, found.Addr())
		address = found.Addr()
	}

	// Set up protocol logging if requested
	var protocolLogger *orgblog.FileLogger
	if config.ProtocolLog != "" {
		var err error
		protocolLogger, err = orgblog.NewFileLogger(config.ProtocolLog)
		if err != nil {
			log.Fatalf("Failed to create protocol logger: %v", err)
		}
		log.Printf("Protocol logging to: %s", config.ProtocolLog)
	}

	clientConfig := client.DefaultConfig()
	if address != "" {
		clientConfig.Address = address
	}
	clientConfig.ClientName = config.Name
	clientConfig.RequestTimeout = config.Timeout
	// Only set logger when non-nil to avoid typed-nil interface issue.
	if protocolLogger != nil {
		clientConfig.ProtocolLogger = protocolLogger
	}

	c, err := client.NewClient(clientConfig)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Printf("Connecting to %s...", clientConfig.Address)
	if err := c.Connect(ctx); err != nil {
		log.Fatalf("Connect failed: %v", err)
	}
	log.Printf("Connected (daemon protocol version %d)", c.DaemonProtocolVersion())

	sh, err := interactive.New(c)
	if err != nil {
		log.Fatalf("Failed to create shell: %v", err)
	}
	// Redirect log output through readline to avoid interfering with input
	log.SetOutput(sh.Stdout())
	go sh.Run(ctx, cancel)

	// Wait for shutdown signal or quit command
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("Received signal: %v", sig)
	case <-ctx.Done():
		// Context was cancelled by the quit command
	}

	if c.Connected() {
		if err := c.Close(); err != nil {
			log.Printf("Error closing session: %v", err)
		}
	}
	if protocolLogger != nil {
		protocolLogger.Close()
	}
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

// discoverDaemon finds the first OpenRGB daemon announced via mDNS.
func discoverDaemon(ctx context.Context) (*discovery.Service, error) {
	browser, err := discovery.NewMDNSBrowser(discovery.DefaultBrowserConfig())
	if err != nil {
		return nil, err
	}
	defer browser.Stop()

	log.Println("Browsing for OpenRGB daemons...")
	return browser.FindFirst(ctx)
}
