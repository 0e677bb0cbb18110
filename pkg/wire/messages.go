package wire

import "fmt"

// Message is one complete protocol message: a frame header plus a
// typed body. The implementation set is closed; incoming frames are
// decoded through DecodeServerMessage or DecodeClientMessage, which
// pick the implementation for the header's type tag and direction.
//
// The header is derived, never stored: BodySize computes the encoded
// body length from the current field values, and Header assembles the
// frame prefix from it, so the size written to the wire (and the
// duplicate size fields some bodies carry) always match the body that
// follows them.
type Message interface {
	// Type returns the message's wire type tag.
	Type() MessageType

	// BodySize returns the byte length of the encoded body.
	BodySize() uint32

	// Header returns the frame prefix with the computed body size.
	Header() Header

	// Serialize encodes the header and body as one frame. It validates
	// the value first and fails with ErrInvalidElement rather than
	// writing a malformed frame.
	Serialize() ([]byte, error)

	// decodeBody reads the body from r, whose contents are exactly
	// h.BodySize bytes. It also closes the interface to this package.
	decodeBody(h Header, r *Reader) error
}

// serializeFrame encodes the header and the body written by writeBody,
// which must emit exactly m.BodySize() bytes. Validation happens in
// the caller before any byte is written.
func serializeFrame(m Message, writeBody func(*Writer)) []byte {
	h := m.Header()
	w := NewWriter(HeaderSize + int(h.BodySize))
	h.encodeTo(w)
	if writeBody != nil {
		writeBody(w)
	}
	return w.Bytes()
}

// RequestControllerCount asks the daemon how many devices it manages.
type RequestControllerCount struct {
	DeviceIndex uint32
}

// NewRequestControllerCount returns the request. No device is
// addressed; the device index stays zero.
func NewRequestControllerCount() *RequestControllerCount {
	return &RequestControllerCount{}
}

func (m *RequestControllerCount) Type() MessageType { return MessageTypeRequestControllerCount }

func (m *RequestControllerCount) BodySize() uint32 { return 0 }

func (m *RequestControllerCount) Header() Header {
	return Header{DeviceIndex: m.DeviceIndex, Type: m.Type(), BodySize: 0}
}

func (m *RequestControllerCount) Serialize() ([]byte, error) {
	return serializeFrame(m, nil), nil
}

func (m *RequestControllerCount) decodeBody(h Header, r *Reader) error {
	m.DeviceIndex = h.DeviceIndex
	return nil
}

// ReplyControllerCount answers RequestControllerCount with the number
// of devices the daemon manages.
type ReplyControllerCount struct {
	DeviceIndex uint32
	Count       uint32
}

// NewReplyControllerCount returns the reply.
func NewReplyControllerCount(count uint32) *ReplyControllerCount {
	return &ReplyControllerCount{Count: count}
}

func (m *ReplyControllerCount) Type() MessageType { return MessageTypeRequestControllerCount }

func (m *ReplyControllerCount) BodySize() uint32 { return 4 }

func (m *ReplyControllerCount) Header() Header {
	return Header{DeviceIndex: m.DeviceIndex, Type: m.Type(), BodySize: m.BodySize()}
}

func (m *ReplyControllerCount) Serialize() ([]byte, error) {
	return serializeFrame(m, func(w *Writer) {
		w.PutUint32(m.Count)
	}), nil
}

func (m *ReplyControllerCount) decodeBody(h Header, r *Reader) error {
	m.DeviceIndex = h.DeviceIndex
	var err error
	if m.Count, err = r.Uint32(); err != nil {
		return fmt.Errorf("device count: %w", err)
	}
	return nil
}

// RequestControllerData asks for the full description of one device.
// The body carries the protocol version the client speaks, so the
// daemon can shape the reply for it.
type RequestControllerData struct {
	DeviceIndex     uint32
	ProtocolVersion uint32
}

// NewRequestControllerData returns the request for the given device,
// announcing ImplementedProtocolVersion.
func NewRequestControllerData(deviceIndex uint32) *RequestControllerData {
	return &RequestControllerData{DeviceIndex: deviceIndex, ProtocolVersion: ImplementedProtocolVersion}
}

func (m *RequestControllerData) Type() MessageType { return MessageTypeRequestControllerData }

func (m *RequestControllerData) BodySize() uint32 { return 4 }

func (m *RequestControllerData) Header() Header {
	return Header{DeviceIndex: m.DeviceIndex, Type: m.Type(), BodySize: m.BodySize()}
}

func (m *RequestControllerData) Serialize() ([]byte, error) {
	return serializeFrame(m, func(w *Writer) {
		w.PutUint32(m.ProtocolVersion)
	}), nil
}

func (m *RequestControllerData) decodeBody(h Header, r *Reader) error {
	m.DeviceIndex = h.DeviceIndex
	var err error
	if m.ProtocolVersion, err = r.Uint32(); err != nil {
		return fmt.Errorf("protocol version: %w", err)
	}
	return nil
}

// ReplyControllerData answers RequestControllerData with the device's
// full description. The body opens with a duplicate of the header's
// body size, a redundancy the daemon's wire format requires.
type ReplyControllerData struct {
	DeviceIndex uint32
	Device      DeviceDescription
}

// NewReplyControllerData returns the reply for the given device.
func NewReplyControllerData(deviceIndex uint32, device DeviceDescription) *ReplyControllerData {
	return &ReplyControllerData{DeviceIndex: deviceIndex, Device: device}
}

func (m *ReplyControllerData) Type() MessageType { return MessageTypeRequestControllerData }

func (m *ReplyControllerData) BodySize() uint32 { return 4 + m.Device.Size() }

func (m *ReplyControllerData) Header() Header {
	return Header{DeviceIndex: m.DeviceIndex, Type: m.Type(), BodySize: m.BodySize()}
}

func (m *ReplyControllerData) Serialize() ([]byte, error) {
	if err := m.Device.Validate(); err != nil {
		return nil, err
	}
	return serializeFrame(m, func(w *Writer) {
		w.PutUint32(m.BodySize())
		m.Device.serializeTo(w)
	}), nil
}

func (m *ReplyControllerData) decodeBody(h Header, r *Reader) error {
	m.DeviceIndex = h.DeviceIndex
	dataSize, err := r.Uint32()
	if err != nil {
		return fmt.Errorf("data size: %w", err)
	}
	if dataSize != h.BodySize {
		return fmt.Errorf("data size %d, header says %d: %w", dataSize, h.BodySize, ErrInconsistentLength)
	}
	if m.Device, err = decodeDeviceDescription(r); err != nil {
		return err
	}
	return nil
}

// RequestProtocolVersion announces the client's protocol version and
// asks for the daemon's.
type RequestProtocolVersion struct {
	DeviceIndex uint32
	Version     uint32
}

// NewRequestProtocolVersion returns the request announcing
// ImplementedProtocolVersion.
func NewRequestProtocolVersion() *RequestProtocolVersion {
	return &RequestProtocolVersion{Version: ImplementedProtocolVersion}
}

func (m *RequestProtocolVersion) Type() MessageType { return MessageTypeRequestProtocolVersion }

func (m *RequestProtocolVersion) BodySize() uint32 { return 4 }

func (m *RequestProtocolVersion) Header() Header {
	return Header{DeviceIndex: m.DeviceIndex, Type: m.Type(), BodySize: m.BodySize()}
}

func (m *RequestProtocolVersion) Serialize() ([]byte, error) {
	return serializeFrame(m, func(w *Writer) {
		w.PutUint32(m.Version)
	}), nil
}

func (m *RequestProtocolVersion) decodeBody(h Header, r *Reader) error {
	m.DeviceIndex = h.DeviceIndex
	var err error
	if m.Version, err = r.Uint32(); err != nil {
		return fmt.Errorf("protocol version: %w", err)
	}
	return nil
}

// ReplyProtocolVersion answers RequestProtocolVersion with the highest
// protocol version the daemon supports.
type ReplyProtocolVersion struct {
	DeviceIndex uint32
	Version     uint32
}

// NewReplyProtocolVersion returns the reply.
func NewReplyProtocolVersion(version uint32) *ReplyProtocolVersion {
	return &ReplyProtocolVersion{Version: version}
}

func (m *ReplyProtocolVersion) Type() MessageType { return MessageTypeRequestProtocolVersion }

func (m *ReplyProtocolVersion) BodySize() uint32 { return 4 }

func (m *ReplyProtocolVersion) Header() Header {
	return Header{DeviceIndex: m.DeviceIndex, Type: m.Type(), BodySize: m.BodySize()}
}

func (m *ReplyProtocolVersion) Serialize() ([]byte, error) {
	return serializeFrame(m, func(w *Writer) {
		w.PutUint32(m.Version)
	}), nil
}

func (m *ReplyProtocolVersion) decodeBody(h Header, r *Reader) error {
	m.DeviceIndex = h.DeviceIndex
	var err error
	if m.Version, err = r.Uint32(); err != nil {
		return fmt.Errorf("protocol version: %w", err)
	}
	return nil
}

// SetClientName announces a human-readable name the daemon shows for
// this connection.
type SetClientName struct {
	DeviceIndex uint32
	Name        string
}

// NewSetClientName returns the request.
func NewSetClientName(name string) *SetClientName {
	return &SetClientName{Name: name}
}

func (m *SetClientName) Type() MessageType { return MessageTypeSetClientName }

func (m *SetClientName) BodySize() uint32 { return stringSize(m.Name) }

func (m *SetClientName) Header() Header {
	return Header{DeviceIndex: m.DeviceIndex, Type: m.Type(), BodySize: m.BodySize()}
}

func (m *SetClientName) Serialize() ([]byte, error) {
	if len(m.Name) > MaxStringLen {
		return nil, fmt.Errorf("client name of %d bytes: %w", len(m.Name), ErrInvalidElement)
	}
	return serializeFrame(m, func(w *Writer) {
		w.PutString(m.Name)
	}), nil
}

func (m *SetClientName) decodeBody(h Header, r *Reader) error {
	m.DeviceIndex = h.DeviceIndex
	var err error
	if m.Name, err = r.String(); err != nil {
		return fmt.Errorf("client name: %w", err)
	}
	return nil
}

// DeviceListUpdated is the daemon's unsolicited notice that its device
// list changed; the client should re-query counts and descriptions.
type DeviceListUpdated struct {
	DeviceIndex uint32
}

// NewDeviceListUpdated returns the notification.
func NewDeviceListUpdated() *DeviceListUpdated {
	return &DeviceListUpdated{}
}

func (m *DeviceListUpdated) Type() MessageType { return MessageTypeDeviceListUpdated }

func (m *DeviceListUpdated) BodySize() uint32 { return 0 }

func (m *DeviceListUpdated) Header() Header {
	return Header{DeviceIndex: m.DeviceIndex, Type: m.Type(), BodySize: 0}
}

func (m *DeviceListUpdated) Serialize() ([]byte, error) {
	return serializeFrame(m, nil), nil
}

func (m *DeviceListUpdated) decodeBody(h Header, r *Reader) error {
	m.DeviceIndex = h.DeviceIndex
	return nil
}

// ResizeZone asks the daemon to change the LED count of a resizable
// zone.
type ResizeZone struct {
	DeviceIndex uint32
	ZoneIndex   uint32
	NewSize     uint32
}

// NewResizeZone returns the request.
func NewResizeZone(deviceIndex, zoneIndex, newSize uint32) *ResizeZone {
	return &ResizeZone{DeviceIndex: deviceIndex, ZoneIndex: zoneIndex, NewSize: newSize}
}

func (m *ResizeZone) Type() MessageType { return MessageTypeResizeZone }

func (m *ResizeZone) BodySize() uint32 { return 8 }

func (m *ResizeZone) Header() Header {
	return Header{DeviceIndex: m.DeviceIndex, Type: m.Type(), BodySize: m.BodySize()}
}

func (m *ResizeZone) Serialize() ([]byte, error) {
	return serializeFrame(m, func(w *Writer) {
		w.PutUint32(m.ZoneIndex)
		w.PutUint32(m.NewSize)
	}), nil
}

func (m *ResizeZone) decodeBody(h Header, r *Reader) error {
	m.DeviceIndex = h.DeviceIndex
	var err error
	if m.ZoneIndex, err = r.Uint32(); err != nil {
		return fmt.Errorf("zone index: %w", err)
	}
	if m.NewSize, err = r.Uint32(); err != nil {
		return fmt.Errorf("new size: %w", err)
	}
	return nil
}

// UpdateLEDs sets the colors of every LED on a device in one shot.
// Colors must hold one entry per LED in device order. The body opens
// with a duplicate of the header's body size.
type UpdateLEDs struct {
	DeviceIndex uint32
	Colors      []Color
}

// NewUpdateLEDs returns the request.
func NewUpdateLEDs(deviceIndex uint32, colors []Color) *UpdateLEDs {
	return &UpdateLEDs{DeviceIndex: deviceIndex, Colors: colors}
}

func (m *UpdateLEDs) Type() MessageType { return MessageTypeUpdateLEDs }

func (m *UpdateLEDs) BodySize() uint32 { return 4 + colorArraySize(len(m.Colors)) }

func (m *UpdateLEDs) Header() Header {
	return Header{DeviceIndex: m.DeviceIndex, Type: m.Type(), BodySize: m.BodySize()}
}

func (m *UpdateLEDs) Serialize() ([]byte, error) {
	if len(m.Colors) > MaxArrayLen {
		return nil, fmt.Errorf("%d colors: %w", len(m.Colors), ErrInvalidElement)
	}
	return serializeFrame(m, func(w *Writer) {
		w.PutUint32(m.BodySize())
		w.PutColors(m.Colors)
	}), nil
}

func (m *UpdateLEDs) decodeBody(h Header, r *Reader) error {
	m.DeviceIndex = h.DeviceIndex
	dataSize, err := r.Uint32()
	if err != nil {
		return fmt.Errorf("data size: %w", err)
	}
	if dataSize != h.BodySize {
		return fmt.Errorf("data size %d, header says %d: %w", dataSize, h.BodySize, ErrInconsistentLength)
	}
	if m.Colors, err = r.Colors(); err != nil {
		return fmt.Errorf("colors: %w", err)
	}
	return nil
}

// UpdateZoneLEDs sets the colors of one zone's LEDs. Colors must hold
// one entry per LED in zone order. The body opens with a duplicate of
// the header's body size.
type UpdateZoneLEDs struct {
	DeviceIndex uint32
	ZoneIndex   uint32
	Colors      []Color
}

// NewUpdateZoneLEDs returns the request.
func NewUpdateZoneLEDs(deviceIndex, zoneIndex uint32, colors []Color) *UpdateZoneLEDs {
	return &UpdateZoneLEDs{DeviceIndex: deviceIndex, ZoneIndex: zoneIndex, Colors: colors}
}

func (m *UpdateZoneLEDs) Type() MessageType { return MessageTypeUpdateZoneLEDs }

func (m *UpdateZoneLEDs) BodySize() uint32 { return 4 + 4 + colorArraySize(len(m.Colors)) }

func (m *UpdateZoneLEDs) Header() Header {
	return Header{DeviceIndex: m.DeviceIndex, Type: m.Type(), BodySize: m.BodySize()}
}

func (m *UpdateZoneLEDs) Serialize() ([]byte, error) {
	if len(m.Colors) > MaxArrayLen {
		return nil, fmt.Errorf("%d colors: %w", len(m.Colors), ErrInvalidElement)
	}
	return serializeFrame(m, func(w *Writer) {
		w.PutUint32(m.BodySize())
		w.PutUint32(m.ZoneIndex)
		w.PutColors(m.Colors)
	}), nil
}

func (m *UpdateZoneLEDs) decodeBody(h Header, r *Reader) error {
	m.DeviceIndex = h.DeviceIndex
	dataSize, err := r.Uint32()
	if err != nil {
		return fmt.Errorf("data size: %w", err)
	}
	if dataSize != h.BodySize {
		return fmt.Errorf("data size %d, header says %d: %w", dataSize, h.BodySize, ErrInconsistentLength)
	}
	if m.ZoneIndex, err = r.Uint32(); err != nil {
		return fmt.Errorf("zone index: %w", err)
	}
	if m.Colors, err = r.Colors(); err != nil {
		return fmt.Errorf("colors: %w", err)
	}
	return nil
}

// UpdateSingleLED sets the color of one LED, addressed by its index in
// the device's LED table.
type UpdateSingleLED struct {
	DeviceIndex uint32
	LEDIndex    uint32
	Color       Color
}

// NewUpdateSingleLED returns the request.
func NewUpdateSingleLED(deviceIndex, ledIndex uint32, color Color) *UpdateSingleLED {
	return &UpdateSingleLED{DeviceIndex: deviceIndex, LEDIndex: ledIndex, Color: color}
}

func (m *UpdateSingleLED) Type() MessageType { return MessageTypeUpdateSingleLED }

func (m *UpdateSingleLED) BodySize() uint32 { return 8 }

func (m *UpdateSingleLED) Header() Header {
	return Header{DeviceIndex: m.DeviceIndex, Type: m.Type(), BodySize: m.BodySize()}
}

func (m *UpdateSingleLED) Serialize() ([]byte, error) {
	return serializeFrame(m, func(w *Writer) {
		w.PutUint32(m.LEDIndex)
		w.PutColor(m.Color)
	}), nil
}

func (m *UpdateSingleLED) decodeBody(h Header, r *Reader) error {
	m.DeviceIndex = h.DeviceIndex
	var err error
	if m.LEDIndex, err = r.Uint32(); err != nil {
		return fmt.Errorf("led index: %w", err)
	}
	if m.Color, err = r.Color(); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	return nil
}

// SetCustomMode switches a device into its direct-control mode, the
// mode in which LED update messages drive the hardware.
type SetCustomMode struct {
	DeviceIndex uint32
}

// NewSetCustomMode returns the request.
func NewSetCustomMode(deviceIndex uint32) *SetCustomMode {
	return &SetCustomMode{DeviceIndex: deviceIndex}
}

func (m *SetCustomMode) Type() MessageType { return MessageTypeSetCustomMode }

func (m *SetCustomMode) BodySize() uint32 { return 0 }

func (m *SetCustomMode) Header() Header {
	return Header{DeviceIndex: m.DeviceIndex, Type: m.Type(), BodySize: 0}
}

func (m *SetCustomMode) Serialize() ([]byte, error) {
	return serializeFrame(m, nil), nil
}

func (m *SetCustomMode) decodeBody(h Header, r *Reader) error {
	m.DeviceIndex = h.DeviceIndex
	return nil
}

// UpdateMode activates and reconfigures the mode at ModeIndex in the
// device's mode table. The body opens with a duplicate of the header's
// body size. How daemons apply the carried description (in particular
// whether fields beyond the current speed, direction, and colors are
// honored) varies by device and is not pinned down here; the encoding
// is exact, the semantics belong to the daemon.
type UpdateMode struct {
	DeviceIndex uint32
	ModeIndex   uint32
	Mode        ModeDescription
}

// NewUpdateMode returns the request.
func NewUpdateMode(deviceIndex, modeIndex uint32, mode ModeDescription) *UpdateMode {
	return &UpdateMode{DeviceIndex: deviceIndex, ModeIndex: modeIndex, Mode: mode}
}

func (m *UpdateMode) Type() MessageType { return MessageTypeUpdateMode }

func (m *UpdateMode) BodySize() uint32 { return 4 + 4 + m.Mode.Size() }

func (m *UpdateMode) Header() Header {
	return Header{DeviceIndex: m.DeviceIndex, Type: m.Type(), BodySize: m.BodySize()}
}

func (m *UpdateMode) Serialize() ([]byte, error) {
	if err := m.Mode.Validate(); err != nil {
		return nil, err
	}
	return serializeFrame(m, func(w *Writer) {
		w.PutUint32(m.BodySize())
		w.PutUint32(m.ModeIndex)
		m.Mode.serializeTo(w)
	}), nil
}

func (m *UpdateMode) decodeBody(h Header, r *Reader) error {
	m.DeviceIndex = h.DeviceIndex
	dataSize, err := r.Uint32()
	if err != nil {
		return fmt.Errorf("data size: %w", err)
	}
	if dataSize != h.BodySize {
		return fmt.Errorf("data size %d, header says %d: %w", dataSize, h.BodySize, ErrInconsistentLength)
	}
	if m.ModeIndex, err = r.Uint32(); err != nil {
		return fmt.Errorf("mode index: %w", err)
	}
	if m.Mode, err = decodeModeDescription(r); err != nil {
		return err
	}
	return nil
}
