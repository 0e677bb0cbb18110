package wire

import "fmt"

// Color is one RGB triple. The wire layout is R, G, B, one padding
// byte; the padding is written as zero and ignored on decode.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// LEDDescription names a single LED and carries its device-specific
// identifier value.
type LEDDescription struct {
	Name  string
	Value uint32
}

// Size returns the encoded byte length.
func (d *LEDDescription) Size() uint32 {
	return stringSize(d.Name) + 4
}

// Validate checks the encodability limits.
func (d *LEDDescription) Validate() error {
	if len(d.Name) > MaxStringLen {
		return fmt.Errorf("led name of %d bytes: %w", len(d.Name), ErrInvalidElement)
	}
	return nil
}

func (d *LEDDescription) serializeTo(w *Writer) {
	w.PutString(d.Name)
	w.PutUint32(d.Value)
}

func decodeLEDDescription(r *Reader) (LEDDescription, error) {
	var d LEDDescription
	var err error
	if d.Name, err = r.String(); err != nil {
		return LEDDescription{}, fmt.Errorf("led name: %w", err)
	}
	if d.Value, err = r.Uint32(); err != nil {
		return LEDDescription{}, fmt.Errorf("led value: %w", err)
	}
	return d, nil
}

// MatrixMap is the cell-to-LED mapping of a matrix zone. Values is
// row-major with exactly Height*Width entries; a cell without an LED
// holds 0xFFFFFFFF.
type MatrixMap struct {
	Height uint32
	Width  uint32
	Values []uint32
}

// ZoneDescription describes one addressable LED group of a device.
// Matrix is set if and only if Type is ZoneTypeMatrix; this pairing is
// enforced on both encode and decode so that matrix data can never
// appear on a linear or single zone.
type ZoneDescription struct {
	Name      string
	Type      ZoneType
	LEDsMin   uint32
	LEDsMax   uint32
	LEDsCount uint32
	Matrix    *MatrixMap
}

// Size returns the encoded byte length, including the matrix block for
// matrix zones.
func (d *ZoneDescription) Size() uint32 {
	size := stringSize(d.Name) + 4 + 4 + 4 + 4
	if d.Matrix != nil {
		size += 4 + 4 + 2 + 4*uint32(len(d.Matrix.Values))
	}
	return size
}

// Validate checks the matrix pairing invariant, the matrix dimensions,
// and the encodability limits.
func (d *ZoneDescription) Validate() error {
	if len(d.Name) > MaxStringLen {
		return fmt.Errorf("zone name of %d bytes: %w", len(d.Name), ErrInvalidElement)
	}
	if !d.Type.IsValid() {
		return fmt.Errorf("zone type %d: %w", uint32(d.Type), ErrInvalidElement)
	}
	if d.Type == ZoneTypeMatrix {
		if d.Matrix == nil {
			return fmt.Errorf("matrix zone without matrix map: %w", ErrInvalidElement)
		}
		if len(d.Matrix.Values) > MaxArrayLen {
			return fmt.Errorf("matrix of %d values: %w", len(d.Matrix.Values), ErrInvalidElement)
		}
		if uint64(len(d.Matrix.Values)) != uint64(d.Matrix.Height)*uint64(d.Matrix.Width) {
			return fmt.Errorf("matrix of %d values for %dx%d: %w",
				len(d.Matrix.Values), d.Matrix.Height, d.Matrix.Width, ErrInvalidElement)
		}
	} else if d.Matrix != nil {
		return fmt.Errorf("matrix map on %s zone: %w", d.Type, ErrInvalidElement)
	}
	return nil
}

func (d *ZoneDescription) serializeTo(w *Writer) {
	w.PutString(d.Name)
	w.PutUint32(uint32(d.Type))
	w.PutUint32(d.LEDsMin)
	w.PutUint32(d.LEDsMax)
	w.PutUint32(d.LEDsCount)
	if d.Matrix != nil {
		w.PutUint32(d.Matrix.Height)
		w.PutUint32(d.Matrix.Width)
		w.PutUint32Array(d.Matrix.Values)
	}
}

func decodeZoneDescription(r *Reader) (ZoneDescription, error) {
	var d ZoneDescription
	var err error
	if d.Name, err = r.String(); err != nil {
		return ZoneDescription{}, fmt.Errorf("zone name: %w", err)
	}
	rawType, err := r.Uint32()
	if err != nil {
		return ZoneDescription{}, fmt.Errorf("zone type: %w", err)
	}
	d.Type = ZoneType(rawType)
	if !d.Type.IsValid() {
		return ZoneDescription{}, fmt.Errorf("zone type %d: %w", rawType, ErrInvalidElement)
	}
	if d.LEDsMin, err = r.Uint32(); err != nil {
		return ZoneDescription{}, fmt.Errorf("zone leds min: %w", err)
	}
	if d.LEDsMax, err = r.Uint32(); err != nil {
		return ZoneDescription{}, fmt.Errorf("zone leds max: %w", err)
	}
	if d.LEDsCount, err = r.Uint32(); err != nil {
		return ZoneDescription{}, fmt.Errorf("zone leds count: %w", err)
	}
	if d.Type != ZoneTypeMatrix {
		return d, nil
	}
	var m MatrixMap
	if m.Height, err = r.Uint32(); err != nil {
		return ZoneDescription{}, fmt.Errorf("matrix height: %w", err)
	}
	if m.Width, err = r.Uint32(); err != nil {
		return ZoneDescription{}, fmt.Errorf("matrix width: %w", err)
	}
	if m.Values, err = r.Uint32Array(); err != nil {
		return ZoneDescription{}, fmt.Errorf("matrix values: %w", err)
	}
	if uint64(len(m.Values)) != uint64(m.Height)*uint64(m.Width) {
		return ZoneDescription{}, fmt.Errorf("matrix of %d values for %dx%d: %w",
			len(m.Values), m.Height, m.Width, ErrInvalidElement)
	}
	d.Matrix = &m
	return d, nil
}

// ModeDescription describes one lighting effect a device can run: its
// capability flags, the speed and color-count ranges, and the current
// speed, direction, color mode, and color set.
type ModeDescription struct {
	Name      string
	Value     uint32
	Flags     ModeFlags
	SpeedMin  uint32
	SpeedMax  uint32
	ColorsMin uint32
	ColorsMax uint32
	Speed     uint32
	Direction Direction
	ColorMode ColorMode
	Colors    []Color
}

// Size returns the encoded byte length.
func (d *ModeDescription) Size() uint32 {
	return stringSize(d.Name) + 9*4 + colorArraySize(len(d.Colors))
}

// Validate checks the enumeration values and encodability limits.
func (d *ModeDescription) Validate() error {
	if len(d.Name) > MaxStringLen {
		return fmt.Errorf("mode name of %d bytes: %w", len(d.Name), ErrInvalidElement)
	}
	if !d.Direction.IsValid() {
		return fmt.Errorf("mode direction %d: %w", uint32(d.Direction), ErrInvalidElement)
	}
	if !d.ColorMode.IsValid() {
		return fmt.Errorf("mode color mode %d: %w", uint32(d.ColorMode), ErrInvalidElement)
	}
	if len(d.Colors) > MaxArrayLen {
		return fmt.Errorf("mode with %d colors: %w", len(d.Colors), ErrInvalidElement)
	}
	return nil
}

func (d *ModeDescription) serializeTo(w *Writer) {
	w.PutString(d.Name)
	w.PutUint32(d.Value)
	w.PutUint32(uint32(d.Flags))
	w.PutUint32(d.SpeedMin)
	w.PutUint32(d.SpeedMax)
	w.PutUint32(d.ColorsMin)
	w.PutUint32(d.ColorsMax)
	w.PutUint32(d.Speed)
	w.PutUint32(uint32(d.Direction))
	w.PutUint32(uint32(d.ColorMode))
	w.PutColors(d.Colors)
}

func decodeModeDescription(r *Reader) (ModeDescription, error) {
	var d ModeDescription
	var err error
	if d.Name, err = r.String(); err != nil {
		return ModeDescription{}, fmt.Errorf("mode name: %w", err)
	}
	if d.Value, err = r.Uint32(); err != nil {
		return ModeDescription{}, fmt.Errorf("mode value: %w", err)
	}
	rawFlags, err := r.Uint32()
	if err != nil {
		return ModeDescription{}, fmt.Errorf("mode flags: %w", err)
	}
	d.Flags = ModeFlags(rawFlags)
	if d.SpeedMin, err = r.Uint32(); err != nil {
		return ModeDescription{}, fmt.Errorf("mode speed min: %w", err)
	}
	if d.SpeedMax, err = r.Uint32(); err != nil {
		return ModeDescription{}, fmt.Errorf("mode speed max: %w", err)
	}
	if d.ColorsMin, err = r.Uint32(); err != nil {
		return ModeDescription{}, fmt.Errorf("mode colors min: %w", err)
	}
	if d.ColorsMax, err = r.Uint32(); err != nil {
		return ModeDescription{}, fmt.Errorf("mode colors max: %w", err)
	}
	if d.Speed, err = r.Uint32(); err != nil {
		return ModeDescription{}, fmt.Errorf("mode speed: %w", err)
	}
	rawDir, err := r.Uint32()
	if err != nil {
		return ModeDescription{}, fmt.Errorf("mode direction: %w", err)
	}
	d.Direction = Direction(rawDir)
	if !d.Direction.IsValid() {
		return ModeDescription{}, fmt.Errorf("mode direction %d: %w", rawDir, ErrInvalidElement)
	}
	rawColorMode, err := r.Uint32()
	if err != nil {
		return ModeDescription{}, fmt.Errorf("mode color mode: %w", err)
	}
	d.ColorMode = ColorMode(rawColorMode)
	if !d.ColorMode.IsValid() {
		return ModeDescription{}, fmt.Errorf("mode color mode %d: %w", rawColorMode, ErrInvalidElement)
	}
	if d.Colors, err = r.Colors(); err != nil {
		return ModeDescription{}, fmt.Errorf("mode colors: %w", err)
	}
	return d, nil
}

// DeviceDescription is the complete snapshot of one device: identity
// strings, the active mode index, and the mode, zone, and LED tables
// plus the flat per-LED color array. Collection order is meaningful;
// other messages address modes, zones, and LEDs by index into these
// tables. Decoded descriptions are snapshots; the daemon signals
// changes with DeviceListUpdated rather than patching them.
type DeviceDescription struct {
	Type        DeviceType
	Name        string
	Vendor      string
	Description string
	Version     string
	Serial      string
	Location    string
	ActiveMode  uint32
	Modes       []ModeDescription
	Zones       []ZoneDescription
	LEDs        []LEDDescription
	Colors      []Color
}

// Size returns the encoded byte length: the scalar and string fields
// plus the recursively computed sizes of every mode, zone, and LED
// record and the color array.
func (d *DeviceDescription) Size() uint32 {
	size := 4 +
		stringSize(d.Name) +
		stringSize(d.Vendor) +
		stringSize(d.Description) +
		stringSize(d.Version) +
		stringSize(d.Serial) +
		stringSize(d.Location) +
		4
	size += 2
	for i := range d.Modes {
		size += d.Modes[i].Size()
	}
	size += 2
	for i := range d.Zones {
		size += d.Zones[i].Size()
	}
	size += 2
	for i := range d.LEDs {
		size += d.LEDs[i].Size()
	}
	size += colorArraySize(len(d.Colors))
	return size
}

// TotalLEDCount sums the current LED counts of all zones, which is the
// length the daemon expects for a whole-device color array.
func (d *DeviceDescription) TotalLEDCount() uint32 {
	var n uint32
	for i := range d.Zones {
		n += d.Zones[i].LEDsCount
	}
	return n
}

// Validate checks the device's own fields and every nested record.
func (d *DeviceDescription) Validate() error {
	if !d.Type.IsValid() {
		return fmt.Errorf("device type %d: %w", uint32(d.Type), ErrInvalidElement)
	}
	for _, s := range []struct {
		name  string
		value string
	}{
		{"device name", d.Name},
		{"device vendor", d.Vendor},
		{"device description", d.Description},
		{"device version", d.Version},
		{"device serial", d.Serial},
		{"device location", d.Location},
	} {
		if len(s.value) > MaxStringLen {
			return fmt.Errorf("%s of %d bytes: %w", s.name, len(s.value), ErrInvalidElement)
		}
	}
	if len(d.Modes) > MaxArrayLen {
		return fmt.Errorf("device with %d modes: %w", len(d.Modes), ErrInvalidElement)
	}
	if len(d.Zones) > MaxArrayLen {
		return fmt.Errorf("device with %d zones: %w", len(d.Zones), ErrInvalidElement)
	}
	if len(d.LEDs) > MaxArrayLen {
		return fmt.Errorf("device with %d leds: %w", len(d.LEDs), ErrInvalidElement)
	}
	if len(d.Colors) > MaxArrayLen {
		return fmt.Errorf("device with %d colors: %w", len(d.Colors), ErrInvalidElement)
	}
	for i := range d.Modes {
		if err := d.Modes[i].Validate(); err != nil {
			return fmt.Errorf("mode %d: %w", i, err)
		}
	}
	for i := range d.Zones {
		if err := d.Zones[i].Validate(); err != nil {
			return fmt.Errorf("zone %d: %w", i, err)
		}
	}
	for i := range d.LEDs {
		if err := d.LEDs[i].Validate(); err != nil {
			return fmt.Errorf("led %d: %w", i, err)
		}
	}
	return nil
}

func (d *DeviceDescription) serializeTo(w *Writer) {
	w.PutUint32(uint32(d.Type))
	w.PutString(d.Name)
	w.PutString(d.Vendor)
	w.PutString(d.Description)
	w.PutString(d.Version)
	w.PutString(d.Serial)
	w.PutString(d.Location)
	w.PutUint32(d.ActiveMode)
	w.PutUint16(uint16(len(d.Modes)))
	for i := range d.Modes {
		d.Modes[i].serializeTo(w)
	}
	w.PutUint16(uint16(len(d.Zones)))
	for i := range d.Zones {
		d.Zones[i].serializeTo(w)
	}
	w.PutUint16(uint16(len(d.LEDs)))
	for i := range d.LEDs {
		d.LEDs[i].serializeTo(w)
	}
	w.PutColors(d.Colors)
}

func decodeDeviceDescription(r *Reader) (DeviceDescription, error) {
	var d DeviceDescription
	rawType, err := r.Uint32()
	if err != nil {
		return DeviceDescription{}, fmt.Errorf("device type: %w", err)
	}
	d.Type = DeviceType(rawType)
	if !d.Type.IsValid() {
		return DeviceDescription{}, fmt.Errorf("device type %d: %w", rawType, ErrInvalidElement)
	}
	for _, s := range []struct {
		name string
		dst  *string
	}{
		{"device name", &d.Name},
		{"device vendor", &d.Vendor},
		{"device description", &d.Description},
		{"device version", &d.Version},
		{"device serial", &d.Serial},
		{"device location", &d.Location},
	} {
		if *s.dst, err = r.String(); err != nil {
			return DeviceDescription{}, fmt.Errorf("%s: %w", s.name, err)
		}
	}
	if d.ActiveMode, err = r.Uint32(); err != nil {
		return DeviceDescription{}, fmt.Errorf("device active mode: %w", err)
	}

	modeCount, err := r.Uint16()
	if err != nil {
		return DeviceDescription{}, fmt.Errorf("mode count: %w", err)
	}
	if modeCount > 0 {
		d.Modes = make([]ModeDescription, modeCount)
		for i := range d.Modes {
			if d.Modes[i], err = decodeModeDescription(r); err != nil {
				return DeviceDescription{}, fmt.Errorf("mode %d: %w", i, err)
			}
		}
	}

	zoneCount, err := r.Uint16()
	if err != nil {
		return DeviceDescription{}, fmt.Errorf("zone count: %w", err)
	}
	if zoneCount > 0 {
		d.Zones = make([]ZoneDescription, zoneCount)
		for i := range d.Zones {
			if d.Zones[i], err = decodeZoneDescription(r); err != nil {
				return DeviceDescription{}, fmt.Errorf("zone %d: %w", i, err)
			}
		}
	}

	ledCount, err := r.Uint16()
	if err != nil {
		return DeviceDescription{}, fmt.Errorf("led count: %w", err)
	}
	if ledCount > 0 {
		d.LEDs = make([]LEDDescription, ledCount)
		for i := range d.LEDs {
			if d.LEDs[i], err = decodeLEDDescription(r); err != nil {
				return DeviceDescription{}, fmt.Errorf("led %d: %w", i, err)
			}
		}
	}

	if d.Colors, err = r.Colors(); err != nil {
		return DeviceDescription{}, fmt.Errorf("device colors: %w", err)
	}
	return d, nil
}
