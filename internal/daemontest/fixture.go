package daemontest

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/orgb-protocol/orgb-go/pkg/wire"
)

// Fixture describes one simulated device in a YAML fixture file. A
// fixture file holds a list of them under a top-level "devices" key:
//
//	devices:
//	  - name: Demo Strip
//	    type: led_strip
//	    zones:
//	      - name: Strip
//	        leds: 8
//	        leds_min: 1
//	        leds_max: 60
//	    modes:
//	      - name: Direct
//	        flags: [per_led_color]
//	        color_mode: per_led
//
// LED names and colors are generated from the zone layout when
// omitted; when given, their count must match the zone LED total.
type Fixture struct {
	Name        string        `yaml:"name"`
	Type        string        `yaml:"type,omitempty"`
	Vendor      string        `yaml:"vendor,omitempty"`
	Description string        `yaml:"description,omitempty"`
	Version     string        `yaml:"version,omitempty"`
	Serial      string        `yaml:"serial,omitempty"`
	Location    string        `yaml:"location,omitempty"`
	ActiveMode  uint32        `yaml:"active_mode,omitempty"`
	Modes       []ModeFixture `yaml:"modes,omitempty"`
	Zones       []ZoneFixture `yaml:"zones,omitempty"`
	LEDs        []LEDFixture  `yaml:"leds,omitempty"`
	Colors      []string      `yaml:"colors,omitempty"`
}

// ModeFixture describes one lighting mode.
type ModeFixture struct {
	Name      string   `yaml:"name"`
	Value     uint32   `yaml:"value,omitempty"`
	Flags     []string `yaml:"flags,omitempty"`
	SpeedMin  uint32   `yaml:"speed_min,omitempty"`
	SpeedMax  uint32   `yaml:"speed_max,omitempty"`
	ColorsMin uint32   `yaml:"colors_min,omitempty"`
	ColorsMax uint32   `yaml:"colors_max,omitempty"`
	Speed     uint32   `yaml:"speed,omitempty"`
	Direction string   `yaml:"direction,omitempty"`
	ColorMode string   `yaml:"color_mode,omitempty"`
	Colors    []string `yaml:"colors,omitempty"`
}

// ZoneFixture describes one zone. "leds" is the current LED count;
// leds_min/leds_max default to it, making the zone fixed-size. The
// zone type defaults to linear, or matrix when a matrix map is given.
type ZoneFixture struct {
	Name    string         `yaml:"name"`
	Type    string         `yaml:"type,omitempty"`
	LEDs    uint32         `yaml:"leds,omitempty"`
	LEDsMin uint32         `yaml:"leds_min,omitempty"`
	LEDsMax uint32         `yaml:"leds_max,omitempty"`
	Matrix  *MatrixFixture `yaml:"matrix,omitempty"`
}

// MatrixFixture is a matrix zone's cell map as rows of zone-local LED
// indices. A negative cell marks a position without an LED.
type MatrixFixture struct {
	Height uint32    `yaml:"height"`
	Width  uint32    `yaml:"width"`
	Values [][]int64 `yaml:"values"`
}

// LEDFixture names one LED.
type LEDFixture struct {
	Name  string `yaml:"name"`
	Value uint32 `yaml:"value,omitempty"`
}

type fixtureFile struct {
	Devices []Fixture `yaml:"devices"`
}

// LoadError provides details about a fixture loading error.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ParseFixtures parses fixture devices from YAML bytes.
func ParseFixtures(data []byte) ([]wire.DeviceDescription, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &LoadError{
			Message: "failed to parse YAML",
			Cause:   err,
		}
	}

	if len(file.Devices) == 0 {
		return nil, &LoadError{
			Message: "fixture must define at least one device",
		}
	}

	devices := make([]wire.DeviceDescription, 0, len(file.Devices))
	for i, f := range file.Devices {
		dev, err := buildDevice(f)
		if err != nil {
			return nil, &LoadError{
				Message: fmt.Sprintf("device %d (%q)", i, f.Name),
				Cause:   err,
			}
		}
		devices = append(devices, dev)
	}
	return devices, nil
}

// LoadFixtures loads fixture devices from a file.
func LoadFixtures(path string) ([]wire.DeviceDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read fixture file",
			Cause:   err,
		}
	}

	devices, err := ParseFixtures(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	return devices, nil
}

// LoadFixtureDirectory loads fixture devices from every .yaml or .yml
// file in a directory, in file name order.
func LoadFixtureDirectory(dir string) ([]wire.DeviceDescription, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{
			File:    dir,
			Message: "failed to read directory",
			Cause:   err,
		}
	}

	var devices []wire.DeviceDescription
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		loaded, err := LoadFixtures(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		devices = append(devices, loaded...)
	}

	if len(devices) == 0 {
		return nil, &LoadError{
			File:    dir,
			Message: "no fixture files found",
		}
	}
	return devices, nil
}

func buildDevice(f Fixture) (wire.DeviceDescription, error) {
	if f.Name == "" {
		return wire.DeviceDescription{}, errors.New("device name is required")
	}
	devType, err := parseDeviceType(f.Type)
	if err != nil {
		return wire.DeviceDescription{}, err
	}

	dev := wire.DeviceDescription{
		Type:        devType,
		Name:        f.Name,
		Vendor:      f.Vendor,
		Description: f.Description,
		Version:     f.Version,
		Serial:      f.Serial,
		Location:    f.Location,
		ActiveMode:  f.ActiveMode,
	}
	if f.ActiveMode != 0 && int(f.ActiveMode) >= len(f.Modes) {
		return wire.DeviceDescription{}, fmt.Errorf("active_mode %d with %d modes", f.ActiveMode, len(f.Modes))
	}

	if len(f.Modes) > 0 {
		dev.Modes = make([]wire.ModeDescription, len(f.Modes))
		for i, mf := range f.Modes {
			mode, err := buildMode(mf)
			if err != nil {
				return wire.DeviceDescription{}, fmt.Errorf("mode %d (%q): %w", i, mf.Name, err)
			}
			dev.Modes[i] = mode
		}
	}

	if len(f.Zones) > 0 {
		dev.Zones = make([]wire.ZoneDescription, len(f.Zones))
		for i, zf := range f.Zones {
			zone, err := buildZone(zf)
			if err != nil {
				return wire.DeviceDescription{}, fmt.Errorf("zone %d (%q): %w", i, zf.Name, err)
			}
			dev.Zones[i] = zone
		}
	}

	total := dev.TotalLEDCount()
	switch {
	case len(f.LEDs) == 0:
		dev.LEDs = generateLEDs(dev.Zones)
	case uint32(len(f.LEDs)) == total:
		dev.LEDs = make([]wire.LEDDescription, len(f.LEDs))
		for i, lf := range f.LEDs {
			dev.LEDs[i] = wire.LEDDescription{Name: lf.Name, Value: lf.Value}
		}
	default:
		return wire.DeviceDescription{}, fmt.Errorf("%d leds listed for %d zone leds", len(f.LEDs), total)
	}

	switch {
	case len(f.Colors) == 0:
		if total > 0 {
			dev.Colors = make([]wire.Color, total)
		}
	case uint32(len(f.Colors)) == total:
		dev.Colors = make([]wire.Color, len(f.Colors))
		for i, s := range f.Colors {
			if dev.Colors[i], err = parseHexColor(s); err != nil {
				return wire.DeviceDescription{}, err
			}
		}
	default:
		return wire.DeviceDescription{}, fmt.Errorf("%d colors listed for %d leds", len(f.Colors), total)
	}

	if err := dev.Validate(); err != nil {
		return wire.DeviceDescription{}, err
	}
	return dev, nil
}

func buildMode(f ModeFixture) (wire.ModeDescription, error) {
	if f.Name == "" {
		return wire.ModeDescription{}, errors.New("mode name is required")
	}
	flags, err := parseModeFlags(f.Flags)
	if err != nil {
		return wire.ModeDescription{}, err
	}
	direction, err := parseDirection(f.Direction)
	if err != nil {
		return wire.ModeDescription{}, err
	}
	colorMode, err := parseColorMode(f.ColorMode)
	if err != nil {
		return wire.ModeDescription{}, err
	}

	mode := wire.ModeDescription{
		Name:      f.Name,
		Value:     f.Value,
		Flags:     flags,
		SpeedMin:  f.SpeedMin,
		SpeedMax:  f.SpeedMax,
		ColorsMin: f.ColorsMin,
		ColorsMax: f.ColorsMax,
		Speed:     f.Speed,
		Direction: direction,
		ColorMode: colorMode,
	}
	if len(f.Colors) > 0 {
		mode.Colors = make([]wire.Color, len(f.Colors))
		for i, s := range f.Colors {
			if mode.Colors[i], err = parseHexColor(s); err != nil {
				return wire.ModeDescription{}, err
			}
		}
	}
	return mode, nil
}

func buildZone(f ZoneFixture) (wire.ZoneDescription, error) {
	if f.Name == "" {
		return wire.ZoneDescription{}, errors.New("zone name is required")
	}
	typeName := f.Type
	if typeName == "" {
		if f.Matrix != nil {
			typeName = "matrix"
		} else {
			typeName = "linear"
		}
	}
	zoneType, err := parseZoneType(typeName)
	if err != nil {
		return wire.ZoneDescription{}, err
	}

	count := f.LEDs
	if count == 0 && zoneType == wire.ZoneTypeSingle {
		count = 1
	}
	minLEDs, maxLEDs := f.LEDsMin, f.LEDsMax
	if maxLEDs == 0 {
		minLEDs, maxLEDs = count, count
	}
	if count < minLEDs || count > maxLEDs {
		return wire.ZoneDescription{}, fmt.Errorf("%d leds outside [%d, %d]", count, minLEDs, maxLEDs)
	}

	zone := wire.ZoneDescription{
		Name:      f.Name,
		Type:      zoneType,
		LEDsMin:   minLEDs,
		LEDsMax:   maxLEDs,
		LEDsCount: count,
	}
	switch {
	case zoneType == wire.ZoneTypeMatrix:
		if f.Matrix == nil {
			return wire.ZoneDescription{}, errors.New("matrix zone needs a matrix map")
		}
		if zone.Matrix, err = buildMatrix(*f.Matrix); err != nil {
			return wire.ZoneDescription{}, err
		}
	case f.Matrix != nil:
		return wire.ZoneDescription{}, fmt.Errorf("matrix map on %s zone", zoneType)
	}
	return zone, nil
}

func buildMatrix(f MatrixFixture) (*wire.MatrixMap, error) {
	if uint32(len(f.Values)) != f.Height {
		return nil, fmt.Errorf("matrix has %d rows for height %d", len(f.Values), f.Height)
	}
	values := make([]uint32, 0, int(f.Height)*int(f.Width))
	for ri, row := range f.Values {
		if uint32(len(row)) != f.Width {
			return nil, fmt.Errorf("matrix row %d has %d cells for width %d", ri, len(row), f.Width)
		}
		for _, cell := range row {
			switch {
			case cell < 0:
				values = append(values, math.MaxUint32)
			case cell > math.MaxUint32:
				return nil, fmt.Errorf("matrix cell %d out of range", cell)
			default:
				values = append(values, uint32(cell))
			}
		}
	}
	return &wire.MatrixMap{Height: f.Height, Width: f.Width, Values: values}, nil
}

func generateLEDs(zones []wire.ZoneDescription) []wire.LEDDescription {
	var leds []wire.LEDDescription
	for zi := range zones {
		for i := uint32(0); i < zones[zi].LEDsCount; i++ {
			leds = append(leds, wire.LEDDescription{
				Name: fmt.Sprintf("%s LED %d", zones[zi].Name, i+1),
			})
		}
	}
	return leds
}

var deviceTypeNames = map[string]wire.DeviceType{
	"motherboard":   wire.DeviceTypeMotherboard,
	"dram":          wire.DeviceTypeDRAM,
	"gpu":           wire.DeviceTypeGPU,
	"cooler":        wire.DeviceTypeCooler,
	"led_strip":     wire.DeviceTypeLEDStrip,
	"keyboard":      wire.DeviceTypeKeyboard,
	"mouse":         wire.DeviceTypeMouse,
	"mousemat":      wire.DeviceTypeMouseMat,
	"headset":       wire.DeviceTypeHeadset,
	"headset_stand": wire.DeviceTypeHeadsetStand,
	"gamepad":       wire.DeviceTypeGamepad,
	"unknown":       wire.DeviceTypeUnknown,
}

func parseDeviceType(s string) (wire.DeviceType, error) {
	if s == "" {
		return wire.DeviceTypeUnknown, nil
	}
	if t, ok := deviceTypeNames[strings.ToLower(s)]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("unknown device type %q", s)
}

var zoneTypeNames = map[string]wire.ZoneType{
	"single": wire.ZoneTypeSingle,
	"linear": wire.ZoneTypeLinear,
	"matrix": wire.ZoneTypeMatrix,
}

func parseZoneType(s string) (wire.ZoneType, error) {
	if t, ok := zoneTypeNames[strings.ToLower(s)]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("unknown zone type %q", s)
}

var directionNames = map[string]wire.Direction{
	"left":       wire.DirectionLeft,
	"right":      wire.DirectionRight,
	"up":         wire.DirectionUp,
	"down":       wire.DirectionDown,
	"horizontal": wire.DirectionHorizontal,
	"vertical":   wire.DirectionVertical,
}

func parseDirection(s string) (wire.Direction, error) {
	if s == "" {
		return wire.DirectionLeft, nil
	}
	if d, ok := directionNames[strings.ToLower(s)]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

var colorModeNames = map[string]wire.ColorMode{
	"none":          wire.ColorModeNone,
	"per_led":       wire.ColorModePerLED,
	"mode_specific": wire.ColorModeModeSpecific,
	"random":        wire.ColorModeRandom,
}

func parseColorMode(s string) (wire.ColorMode, error) {
	if s == "" {
		return wire.ColorModeNone, nil
	}
	if m, ok := colorModeNames[strings.ToLower(s)]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("unknown color mode %q", s)
}

var modeFlagNames = map[string]wire.ModeFlags{
	"speed":               wire.ModeFlagHasSpeed,
	"direction_lr":        wire.ModeFlagHasDirectionLR,
	"direction_ud":        wire.ModeFlagHasDirectionUD,
	"direction_hv":        wire.ModeFlagHasDirectionHV,
	"brightness":          wire.ModeFlagHasBrightness,
	"per_led_color":       wire.ModeFlagHasPerLEDColor,
	"mode_specific_color": wire.ModeFlagHasModeSpecificColor,
	"random_color":        wire.ModeFlagHasRandomColor,
}

func parseModeFlags(names []string) (wire.ModeFlags, error) {
	var flags wire.ModeFlags
	for _, name := range names {
		f, ok := modeFlagNames[strings.ToLower(name)]
		if !ok {
			return 0, fmt.Errorf("unknown mode flag %q", name)
		}
		flags |= f
	}
	return flags, nil
}

func parseHexColor(s string) (wire.Color, error) {
	t := strings.TrimPrefix(s, "#")
	if len(t) != 6 {
		return wire.Color{}, fmt.Errorf("color %q: want RRGGBB hex", s)
	}
	v, err := strconv.ParseUint(t, 16, 32)
	if err != nil {
		return wire.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return wire.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// DefaultDevices returns the built-in fixture: a keyboard with a
// matrix zone and a resizable LED strip. Used when no fixture file is
// given.
func DefaultDevices() []wire.DeviceDescription {
	keyboard := wire.DeviceDescription{
		Type:        wire.DeviceTypeKeyboard,
		Name:        "Mock Keyboard",
		Vendor:      "OpenRGB",
		Description: "Six-key mock keyboard",
		Version:     "1.2",
		Serial:      "MOCK-KB-0001",
		Location:    "mock:keyboard/0",
		ActiveMode:  0,
		Modes: []wire.ModeDescription{
			{
				Name:      "Direct",
				Value:     0,
				Flags:     wire.ModeFlagHasPerLEDColor,
				ColorMode: wire.ColorModePerLED,
			},
			{
				Name:      "Static",
				Value:     1,
				Flags:     wire.ModeFlagHasModeSpecificColor,
				ColorsMin: 1,
				ColorsMax: 1,
				ColorMode: wire.ColorModeModeSpecific,
				Colors:    []wire.Color{{R: 255, G: 255, B: 255}},
			},
			{
				Name:      "Rainbow Wave",
				Value:     2,
				Flags:     wire.ModeFlagHasSpeed | wire.ModeFlagHasDirectionLR | wire.ModeFlagHasRandomColor,
				SpeedMin:  1,
				SpeedMax:  100,
				Speed:     50,
				Direction: wire.DirectionRight,
				ColorMode: wire.ColorModeRandom,
			},
		},
		Zones: []wire.ZoneDescription{
			{
				Name:      "Keys",
				Type:      wire.ZoneTypeMatrix,
				LEDsMin:   6,
				LEDsMax:   6,
				LEDsCount: 6,
				Matrix:    &wire.MatrixMap{Height: 2, Width: 3, Values: []uint32{0, 1, 2, 3, 4, 5}},
			},
			{
				Name:      "Logo",
				Type:      wire.ZoneTypeSingle,
				LEDsMin:   1,
				LEDsMax:   1,
				LEDsCount: 1,
			},
		},
	}
	keyboard.LEDs = generateLEDs(keyboard.Zones)
	keyboard.Colors = make([]wire.Color, keyboard.TotalLEDCount())

	strip := wire.DeviceDescription{
		Type:        wire.DeviceTypeLEDStrip,
		Name:        "Mock ARGB Strip",
		Vendor:      "OpenRGB",
		Description: "Resizable mock LED strip",
		Version:     "1.0",
		Serial:      "MOCK-LS-0002",
		Location:    "mock:strip/0",
		ActiveMode:  0,
		Modes: []wire.ModeDescription{
			{
				Name:      "Direct",
				Value:     0,
				Flags:     wire.ModeFlagHasPerLEDColor,
				ColorMode: wire.ColorModePerLED,
			},
			{
				Name:      "Breathing",
				Value:     1,
				Flags:     wire.ModeFlagHasSpeed | wire.ModeFlagHasModeSpecificColor,
				SpeedMin:  1,
				SpeedMax:  10,
				ColorsMin: 1,
				ColorsMax: 2,
				Speed:     5,
				ColorMode: wire.ColorModeModeSpecific,
				Colors:    []wire.Color{{R: 255}},
			},
		},
		Zones: []wire.ZoneDescription{
			{
				Name:      "Strip",
				Type:      wire.ZoneTypeLinear,
				LEDsMin:   1,
				LEDsMax:   60,
				LEDsCount: 8,
			},
		},
	}
	strip.LEDs = generateLEDs(strip.Zones)
	strip.Colors = make([]wire.Color, strip.TotalLEDCount())

	return []wire.DeviceDescription{keyboard, strip}
}
