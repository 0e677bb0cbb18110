package wire

import "strings"

// MessageType is the frame header's type tag. Reply messages reuse the
// tag of the request they answer, so a tag alone does not identify a
// message; the direction of travel disambiguates (see
// DecodeServerMessage and DecodeClientMessage).
type MessageType uint32

const (
	// MessageTypeRequestControllerCount asks how many devices the daemon
	// manages; the reply carries the count under the same tag.
	MessageTypeRequestControllerCount MessageType = 0

	// MessageTypeRequestControllerData asks for one device's full
	// description; the reply carries it under the same tag.
	MessageTypeRequestControllerData MessageType = 1

	// MessageTypeRequestProtocolVersion announces the client's protocol
	// version; the reply carries the daemon's maximum supported version.
	MessageTypeRequestProtocolVersion MessageType = 40

	// MessageTypeSetClientName announces a human-readable client name.
	MessageTypeSetClientName MessageType = 50

	// MessageTypeDeviceListUpdated is an unsolicited daemon notification
	// that the device list changed and should be re-queried.
	MessageTypeDeviceListUpdated MessageType = 100

	// MessageTypeResizeZone changes the LED count of a resizable zone.
	MessageTypeResizeZone MessageType = 1000

	// MessageTypeUpdateLEDs sets the colors of every LED on a device.
	MessageTypeUpdateLEDs MessageType = 1050

	// MessageTypeUpdateZoneLEDs sets the colors of one zone's LEDs.
	MessageTypeUpdateZoneLEDs MessageType = 1051

	// MessageTypeUpdateSingleLED sets the color of one LED.
	MessageTypeUpdateSingleLED MessageType = 1052

	// MessageTypeSetCustomMode switches a device to its direct-control
	// mode so that LED updates take effect.
	MessageTypeSetCustomMode MessageType = 1100

	// MessageTypeUpdateMode activates and reconfigures a device mode.
	MessageTypeUpdateMode MessageType = 1101
)

// IsValid reports whether t is a member of the closed message set.
func (t MessageType) IsValid() bool {
	switch t {
	case MessageTypeRequestControllerCount,
		MessageTypeRequestControllerData,
		MessageTypeRequestProtocolVersion,
		MessageTypeSetClientName,
		MessageTypeDeviceListUpdated,
		MessageTypeResizeZone,
		MessageTypeUpdateLEDs,
		MessageTypeUpdateZoneLEDs,
		MessageTypeUpdateSingleLED,
		MessageTypeSetCustomMode,
		MessageTypeUpdateMode:
		return true
	default:
		return false
	}
}

// String returns the daemon's name for the tag.
func (t MessageType) String() string {
	switch t {
	case MessageTypeRequestControllerCount:
		return "REQUEST_CONTROLLER_COUNT"
	case MessageTypeRequestControllerData:
		return "REQUEST_CONTROLLER_DATA"
	case MessageTypeRequestProtocolVersion:
		return "REQUEST_PROTOCOL_VERSION"
	case MessageTypeSetClientName:
		return "SET_CLIENT_NAME"
	case MessageTypeDeviceListUpdated:
		return "DEVICE_LIST_UPDATED"
	case MessageTypeResizeZone:
		return "RGBCONTROLLER_RESIZEZONE"
	case MessageTypeUpdateLEDs:
		return "RGBCONTROLLER_UPDATELEDS"
	case MessageTypeUpdateZoneLEDs:
		return "RGBCONTROLLER_UPDATEZONELEDS"
	case MessageTypeUpdateSingleLED:
		return "RGBCONTROLLER_UPDATESINGLELED"
	case MessageTypeSetCustomMode:
		return "RGBCONTROLLER_SETCUSTOMMODE"
	case MessageTypeUpdateMode:
		return "RGBCONTROLLER_UPDATEMODE"
	default:
		return "UNKNOWN"
	}
}

// DeviceType classifies the hardware a device description represents.
type DeviceType uint32

const (
	DeviceTypeMotherboard  DeviceType = 0
	DeviceTypeDRAM         DeviceType = 1
	DeviceTypeGPU          DeviceType = 2
	DeviceTypeCooler       DeviceType = 3
	DeviceTypeLEDStrip     DeviceType = 4
	DeviceTypeKeyboard     DeviceType = 5
	DeviceTypeMouse        DeviceType = 6
	DeviceTypeMouseMat     DeviceType = 7
	DeviceTypeHeadset      DeviceType = 8
	DeviceTypeHeadsetStand DeviceType = 9
	DeviceTypeGamepad      DeviceType = 10
	DeviceTypeUnknown      DeviceType = 11
)

// IsValid reports whether t is a known device type.
func (t DeviceType) IsValid() bool {
	return t <= DeviceTypeUnknown
}

// String returns the device type name.
func (t DeviceType) String() string {
	switch t {
	case DeviceTypeMotherboard:
		return "MOTHERBOARD"
	case DeviceTypeDRAM:
		return "DRAM"
	case DeviceTypeGPU:
		return "GPU"
	case DeviceTypeCooler:
		return "COOLER"
	case DeviceTypeLEDStrip:
		return "LEDSTRIP"
	case DeviceTypeKeyboard:
		return "KEYBOARD"
	case DeviceTypeMouse:
		return "MOUSE"
	case DeviceTypeMouseMat:
		return "MOUSEMAT"
	case DeviceTypeHeadset:
		return "HEADSET"
	case DeviceTypeHeadsetStand:
		return "HEADSET_STAND"
	case DeviceTypeGamepad:
		return "GAMEPAD"
	default:
		return "UNKNOWN"
	}
}

// ZoneType describes the physical arrangement of a zone's LEDs.
type ZoneType uint32

const (
	// ZoneTypeSingle is a zone with one logical LED.
	ZoneTypeSingle ZoneType = 0

	// ZoneTypeLinear is a one-dimensional strip of LEDs.
	ZoneTypeLinear ZoneType = 1

	// ZoneTypeMatrix is a two-dimensional grid of LEDs with a mapping
	// from grid cells to LED indices.
	ZoneTypeMatrix ZoneType = 2
)

// IsValid reports whether t is a known zone type.
func (t ZoneType) IsValid() bool {
	return t <= ZoneTypeMatrix
}

// String returns the zone type name.
func (t ZoneType) String() string {
	switch t {
	case ZoneTypeSingle:
		return "SINGLE"
	case ZoneTypeLinear:
		return "LINEAR"
	case ZoneTypeMatrix:
		return "MATRIX"
	default:
		return "UNKNOWN"
	}
}

// Direction is the travel direction of a directional mode effect.
type Direction uint32

const (
	DirectionLeft       Direction = 0
	DirectionRight      Direction = 1
	DirectionUp         Direction = 2
	DirectionDown       Direction = 3
	DirectionHorizontal Direction = 4
	DirectionVertical   Direction = 5
)

// IsValid reports whether d is a known direction.
func (d Direction) IsValid() bool {
	return d <= DirectionVertical
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "LEFT"
	case DirectionRight:
		return "RIGHT"
	case DirectionUp:
		return "UP"
	case DirectionDown:
		return "DOWN"
	case DirectionHorizontal:
		return "HORIZONTAL"
	case DirectionVertical:
		return "VERTICAL"
	default:
		return "UNKNOWN"
	}
}

// ColorMode describes how a mode sources its colors.
type ColorMode uint32

const (
	// ColorModeNone means the mode uses no colors.
	ColorModeNone ColorMode = 0

	// ColorModePerLED means every LED carries its own color.
	ColorModePerLED ColorMode = 1

	// ColorModeModeSpecific means the mode runs on a fixed set of colors.
	ColorModeModeSpecific ColorMode = 2

	// ColorModeRandom means the device picks colors itself.
	ColorModeRandom ColorMode = 3
)

// IsValid reports whether m is a known color mode.
func (m ColorMode) IsValid() bool {
	return m <= ColorModeRandom
}

// String returns the color mode name.
func (m ColorMode) String() string {
	switch m {
	case ColorModeNone:
		return "NONE"
	case ColorModePerLED:
		return "PER_LED"
	case ColorModeModeSpecific:
		return "MODE_SPECIFIC"
	case ColorModeRandom:
		return "RANDOM"
	default:
		return "UNKNOWN"
	}
}

// ModeFlags is the capability bit set of a mode. Unlike the
// enumerations above it is not range-validated on decode; devices are
// free to leave bits outside the defined set unused.
type ModeFlags uint32

const (
	// ModeFlagHasSpeed marks a mode with an adjustable effect speed.
	ModeFlagHasSpeed ModeFlags = 1 << 0

	// ModeFlagHasDirectionLR marks support for left/right direction.
	ModeFlagHasDirectionLR ModeFlags = 1 << 1

	// ModeFlagHasDirectionUD marks support for up/down direction.
	ModeFlagHasDirectionUD ModeFlags = 1 << 2

	// ModeFlagHasDirectionHV marks support for horizontal/vertical direction.
	ModeFlagHasDirectionHV ModeFlags = 1 << 3

	// ModeFlagHasBrightness marks a mode with adjustable brightness.
	ModeFlagHasBrightness ModeFlags = 1 << 4

	// ModeFlagHasPerLEDColor marks a mode driven by per-LED colors.
	ModeFlagHasPerLEDColor ModeFlags = 1 << 5

	// ModeFlagHasModeSpecificColor marks a mode driven by its own color set.
	ModeFlagHasModeSpecificColor ModeFlags = 1 << 6

	// ModeFlagHasRandomColor marks a mode that can pick colors randomly.
	ModeFlagHasRandomColor ModeFlags = 1 << 7
)

// Has reports whether all bits of flag are set.
func (f ModeFlags) Has(flag ModeFlags) bool {
	return f&flag == flag
}

// HasDirection reports whether the mode supports any effect direction.
func (f ModeFlags) HasDirection() bool {
	return f&(ModeFlagHasDirectionLR|ModeFlagHasDirectionUD|ModeFlagHasDirectionHV) != 0
}

// String returns the set flag names joined with "|", or "NONE".
func (f ModeFlags) String() string {
	if f == 0 {
		return "NONE"
	}
	names := []struct {
		flag ModeFlags
		name string
	}{
		{ModeFlagHasSpeed, "SPEED"},
		{ModeFlagHasDirectionLR, "DIRECTION_LR"},
		{ModeFlagHasDirectionUD, "DIRECTION_UD"},
		{ModeFlagHasDirectionHV, "DIRECTION_HV"},
		{ModeFlagHasBrightness, "BRIGHTNESS"},
		{ModeFlagHasPerLEDColor, "PER_LED_COLOR"},
		{ModeFlagHasModeSpecificColor, "MODE_SPECIFIC_COLOR"},
		{ModeFlagHasRandomColor, "RANDOM_COLOR"},
	}
	var parts []string
	for _, n := range names {
		if f.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if rest := f &^ (ModeFlagHasSpeed | ModeFlagHasDirectionLR | ModeFlagHasDirectionUD |
		ModeFlagHasDirectionHV | ModeFlagHasBrightness | ModeFlagHasPerLEDColor |
		ModeFlagHasModeSpecificColor | ModeFlagHasRandomColor); rest != 0 {
		parts = append(parts, "UNKNOWN")
	}
	return strings.Join(parts, "|")
}
