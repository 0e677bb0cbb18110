// Package log provides structured protocol logging for OpenRGB connections.
//
// This package defines the Logger interface and Event types for capturing
// protocol-level events at multiple layers (transport, wire, client).
// It is separate from operational logging (slog) - protocol capture provides
// a complete machine-readable event trace for debugging and analysis.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/var/log/orgb/client.orlog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    log.NewFileLogger("/var/log/orgb/client.orlog"),
//	)
//
// # Event Types
//
// Events are captured at multiple layers:
//   - Transport: Raw packet bytes (FrameEvent)
//   - Wire: Decoded messages (MessageEvent)
//   - Client: State changes (StateChangeEvent)
//
// Errors have a dedicated event type (ErrorEventData).
//
// # File Format
//
// Log files use CBOR encoding with .orlog extension. The orgb-log CLI tool
// provides viewing, filtering, and export capabilities.
package log
