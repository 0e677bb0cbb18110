package transport

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/orgb-protocol/orgb-go/pkg/log"
	"github.com/orgb-protocol/orgb-go/pkg/wire"
)

// Framing constants.
const (
	// DefaultMaxMessageSize is the default maximum body size (16 MB).
	// A direct-mode update for even a very large LED matrix stays far
	// below this; a bigger announced body means a corrupt header.
	DefaultMaxMessageSize = 16 * 1024 * 1024

	// MaxLogFrameDataSize is the maximum frame data size to include in logs (4 KB).
	// Larger frames are truncated in log events to avoid excessive memory usage.
	MaxLogFrameDataSize = 4096
)

// Framing errors.
var (
	// ErrMessageTooLarge indicates the announced body exceeds the maximum size.
	ErrMessageTooLarge = errors.New("message too large")

	// ErrMessageEmpty indicates a packet shorter than the fixed header.
	ErrMessageEmpty = errors.New("packet shorter than header")

	// ErrFrameTruncated indicates the stream ended inside a packet.
	ErrFrameTruncated = errors.New("frame truncated")
)

// FrameWriter writes protocol packets to an underlying writer.
type FrameWriter struct {
	w              io.Writer
	maxMessageSize uint32
	mu             sync.Mutex

	// Logging support (optional)
	logger log.Logger
	connID string
}

// NewFrameWriter creates a new frame writer.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{
		w:              w,
		maxMessageSize: DefaultMaxMessageSize,
	}
}

// NewFrameWriterWithMaxSize creates a frame writer with a custom max body size.
func NewFrameWriterWithMaxSize(w io.Writer, maxSize uint32) *FrameWriter {
	return &FrameWriter{
		w:              w,
		maxMessageSize: maxSize,
	}
}

// SetLogger configures logging for this writer.
// Pass nil to disable logging.
func (fw *FrameWriter) SetLogger(logger log.Logger, connID string) {
	fw.logger = logger
	fw.connID = connID
}

// WriteMessage serializes msg and writes it as one packet.
// Thread-safe: can be called from multiple goroutines.
func (fw *FrameWriter) WriteMessage(msg wire.Message) error {
	if msg.BodySize() > fw.maxMessageSize {
		return fmt.Errorf("%w: %d > %d", ErrMessageTooLarge, msg.BodySize(), fw.maxMessageSize)
	}
	packet, err := msg.Serialize()
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", msg.Type(), err)
	}
	return fw.WriteFrame(packet)
}

// WriteFrame writes an already-encoded packet (header plus body).
// Used by WriteMessage and for replaying captured traffic.
// Thread-safe: can be called from multiple goroutines.
func (fw *FrameWriter) WriteFrame(packet []byte) error {
	if len(packet) < wire.HeaderSize {
		return ErrMessageEmpty
	}
	if uint32(len(packet)-wire.HeaderSize) > fw.maxMessageSize {
		return fmt.Errorf("%w: %d > %d", ErrMessageTooLarge, len(packet)-wire.HeaderSize, fw.maxMessageSize)
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, err := fw.w.Write(packet); err != nil {
		return fmt.Errorf("failed to write packet: %w", err)
	}

	// Log the frame if logger is configured
	if fw.logger != nil {
		fw.logger.Log(makeFrameEvent(fw.connID, packet[wire.HeaderSize:], log.DirectionOut))
	}

	return nil
}

// FrameReader reads protocol packets from an underlying reader.
type FrameReader struct {
	r              io.Reader
	maxMessageSize uint32
	headerBuf      [wire.HeaderSize]byte

	// Logging support (optional)
	logger log.Logger
	connID string
}

// NewFrameReader creates a new frame reader.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{
		r:              r,
		maxMessageSize: DefaultMaxMessageSize,
	}
}

// NewFrameReaderWithMaxSize creates a frame reader with a custom max body size.
func NewFrameReaderWithMaxSize(r io.Reader, maxSize uint32) *FrameReader {
	return &FrameReader{
		r:              r,
		maxMessageSize: maxSize,
	}
}

// SetLogger configures logging for this reader.
// Pass nil to disable logging.
func (fr *FrameReader) SetLogger(logger log.Logger, connID string) {
	fr.logger = logger
	fr.connID = connID
}

// ReadFrame reads one packet and returns its header and body.
//
// On an unrecognized type tag the body is drained before the error is
// returned, so the caller can keep reading the stream; the returned
// header carries the offending tag and its body size. A bad magic tag
// is fatal: the stream position is meaningless afterwards and the
// caller must close the connection.
func (fr *FrameReader) ReadFrame() (wire.Header, []byte, error) {
	// Read fixed header
	if _, err := io.ReadFull(fr.r, fr.headerBuf[:]); err != nil {
		if err == io.EOF {
			return wire.Header{}, nil, err
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return wire.Header{}, nil, ErrFrameTruncated
		}
		return wire.Header{}, nil, fmt.Errorf("failed to read header: %w", err)
	}

	h, herr := wire.DecodeHeader(fr.headerBuf[:])
	if herr != nil && !errors.Is(herr, wire.ErrUnknownMessageType) {
		return wire.Header{}, nil, herr
	}

	// Validate announced body size, even for unknown tags
	if h.BodySize > fr.maxMessageSize {
		return wire.Header{}, nil, fmt.Errorf("%w: %d > %d", ErrMessageTooLarge, h.BodySize, fr.maxMessageSize)
	}

	if herr != nil {
		// Unknown tag: skip the body to keep the stream aligned.
		if _, err := io.CopyN(io.Discard, fr.r, int64(h.BodySize)); err != nil {
			if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
				return wire.Header{}, nil, ErrFrameTruncated
			}
			return wire.Header{}, nil, fmt.Errorf("failed to skip body: %w", err)
		}
		return h, nil, herr
	}

	// Read body
	body := make([]byte, h.BodySize)
	if _, err := io.ReadFull(fr.r, body); err != nil {
		if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
			return wire.Header{}, nil, ErrFrameTruncated
		}
		return wire.Header{}, nil, fmt.Errorf("failed to read body: %w", err)
	}

	// Log the frame if logger is configured
	if fr.logger != nil {
		fr.logger.Log(makeFrameEvent(fr.connID, body, log.DirectionIn))
	}

	return h, body, nil
}

// SetMaxMessageSize updates the maximum body size.
func (fr *FrameReader) SetMaxMessageSize(size uint32) {
	fr.maxMessageSize = size
}

// makeFrameEvent creates a transport-layer log event for a packet body.
func makeFrameEvent(connID string, body []byte, direction log.Direction) log.Event {
	frameSize := wire.HeaderSize + len(body)
	frameData := body
	truncated := false

	if len(body) > MaxLogFrameDataSize {
		frameData = body[:MaxLogFrameDataSize]
		truncated = true
	}

	return log.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    direction,
		Layer:        log.LayerTransport,
		Category:     log.CategoryMessage,
		Frame: &log.FrameEvent{
			Size:      frameSize,
			Data:      frameData,
			Truncated: truncated,
		},
	}
}

// Framer combines frame reading and writing.
type Framer struct {
	*FrameReader
	*FrameWriter
}

// NewFramer creates a new framer for bidirectional communication.
func NewFramer(rw io.ReadWriter) *Framer {
	return &Framer{
		FrameReader: NewFrameReader(rw),
		FrameWriter: NewFrameWriter(rw),
	}
}

// NewFramerWithMaxSize creates a framer with a custom max body size.
func NewFramerWithMaxSize(rw io.ReadWriter, maxSize uint32) *Framer {
	return &Framer{
		FrameReader: NewFrameReaderWithMaxSize(rw, maxSize),
		FrameWriter: NewFrameWriterWithMaxSize(rw, maxSize),
	}
}

// SetLogger configures logging for both reader and writer.
// Pass nil to disable logging.
func (f *Framer) SetLogger(logger log.Logger, connID string) {
	f.FrameReader.SetLogger(logger, connID)
	f.FrameWriter.SetLogger(logger, connID)
}

// FrameSize returns the total packet size including the fixed header.
func FrameSize(bodySize int) int {
	return wire.HeaderSize + bodySize
}
