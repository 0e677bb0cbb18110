package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/orgb-protocol/orgb-go/pkg/log"
	"github.com/orgb-protocol/orgb-go/pkg/wire"
)

func TestFormatFrameEvent(t *testing.T) {
	ts := time.Date(2026, 2, 10, 10, 15, 32, 123456000, time.UTC)
	event := log.Event{
		Timestamp:    ts,
		ConnectionID: "abc12345-6789-0123-4567-890abcdef012",
		Direction:    log.DirectionOut,
		Layer:        log.LayerTransport,
		Category:     log.CategoryMessage,
		Frame: &log.FrameEvent{
			Size:      54,
			Data:      []byte{0x4f, 0x52, 0x47, 0x42},
			Truncated: false,
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "2026-02-10T10:15:32.123456Z") {
		t.Errorf("expected microsecond timestamp, got: %s", output)
	}
	if !strings.Contains(output, "[conn:abc12345]") {
		t.Errorf("expected shortened connection ID, got: %s", output)
	}
	if !strings.Contains(output, "OUT") {
		t.Errorf("expected OUT direction, got: %s", output)
	}
	if !strings.Contains(output, "TRANSPORT") {
		t.Errorf("expected TRANSPORT layer, got: %s", output)
	}
	if !strings.Contains(output, "Frame") {
		t.Errorf("expected Frame label, got: %s", output)
	}
	if !strings.Contains(output, "54 bytes") {
		t.Errorf("expected frame size, got: %s", output)
	}
	if !strings.Contains(output, "4f524742") {
		t.Errorf("expected hex data, got: %s", output)
	}
}

func TestFormatFrameEventTruncated(t *testing.T) {
	event := log.Event{
		Timestamp: time.Now(),
		Layer:     log.LayerTransport,
		Frame: &log.FrameEvent{
			Size:      100000,
			Data:      []byte{0x4f, 0x52},
			Truncated: true,
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)

	if !strings.Contains(buf.String(), "(truncated)") {
		t.Errorf("expected truncation marker, got: %s", buf.String())
	}
}

func TestFormatMessageEvent(t *testing.T) {
	ts := time.Date(2026, 2, 10, 10, 15, 32, 0, time.UTC)
	event := log.Event{
		Timestamp:    ts,
		ConnectionID: "abc12345-6789",
		Direction:    log.DirectionIn,
		Layer:        log.LayerWire,
		Category:     log.CategoryMessage,
		Message: &log.MessageEvent{
			Tag:         wire.MessageTypeUpdateZoneLEDs,
			DeviceIndex: 3,
			BodySize:    42,
			Summary:     "zone=1 leds=8",
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "RGBCONTROLLER_UPDATEZONELEDS") {
		t.Errorf("expected tag name, got: %s", output)
	}
	if !strings.Contains(output, "Device: 3") {
		t.Errorf("expected device index, got: %s", output)
	}
	if !strings.Contains(output, "Body: 42 bytes") {
		t.Errorf("expected body size, got: %s", output)
	}
	if !strings.Contains(output, "zone=1 leds=8") {
		t.Errorf("expected summary, got: %s", output)
	}
}

func TestFormatStateChangeEvent(t *testing.T) {
	event := log.Event{
		Timestamp: time.Now(),
		Layer:     log.LayerClient,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityClient,
			OldState: "disconnected",
			NewState: "ready",
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "State") {
		t.Errorf("expected State label, got: %s", output)
	}
	if !strings.Contains(output, "Entity: CLIENT") {
		t.Errorf("expected entity, got: %s", output)
	}
	if !strings.Contains(output, "disconnected -> ready") {
		t.Errorf("expected transition, got: %s", output)
	}
}

func TestFormatErrorEvent(t *testing.T) {
	event := log.Event{
		Timestamp: time.Now(),
		Layer:     log.LayerTransport,
		Category:  log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   log.LayerTransport,
			Message: "connection reset",
			Context: "read",
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "Error") {
		t.Errorf("expected Error label, got: %s", output)
	}
	if !strings.Contains(output, "connection reset") {
		t.Errorf("expected error message, got: %s", output)
	}
	if !strings.Contains(output, "Context: read") {
		t.Errorf("expected context, got: %s", output)
	}
}

func TestRunViewWithLayerFilter(t *testing.T) {
	ts := time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		{
			Timestamp: ts,
			Layer:     log.LayerTransport,
			Frame:     &log.FrameEvent{Size: 20},
		},
		{
			Timestamp: ts,
			Layer:     log.LayerWire,
			Message:   &log.MessageEvent{Tag: wire.MessageTypeSetClientName, Summary: `name="test"`},
		},
	}

	path := createTestLogFile(t, events)

	layer := log.LayerWire
	var buf bytes.Buffer
	err := RunView(path, ViewFilter{Layer: &layer}, &buf)
	if err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "Frame") {
		t.Errorf("transport event should be filtered out, got:\n%s", output)
	}
	if !strings.Contains(output, "SET_CLIENT_NAME") {
		t.Errorf("expected wire event in output, got:\n%s", output)
	}
}

func TestParseLayerFlag(t *testing.T) {
	tests := []struct {
		input   string
		want    log.Layer
		wantErr bool
	}{
		{"transport", log.LayerTransport, false},
		{"WIRE", log.LayerWire, false},
		{"Client", log.LayerClient, false},
		{"service", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseLayerFlag(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLayerFlag(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLayerFlag(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLayerFlag(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseDirectionFlag(t *testing.T) {
	if d, err := ParseDirectionFlag("in"); err != nil || d != log.DirectionIn {
		t.Errorf("ParseDirectionFlag(in) = %v, %v", d, err)
	}
	if d, err := ParseDirectionFlag("OUT"); err != nil || d != log.DirectionOut {
		t.Errorf("ParseDirectionFlag(OUT) = %v, %v", d, err)
	}
	if _, err := ParseDirectionFlag("sideways"); err == nil {
		t.Error("expected error for invalid direction")
	}
}

func TestParseCategoryFlag(t *testing.T) {
	if c, err := ParseCategoryFlag("message"); err != nil || c != log.CategoryMessage {
		t.Errorf("ParseCategoryFlag(message) = %v, %v", c, err)
	}
	if c, err := ParseCategoryFlag("STATE"); err != nil || c != log.CategoryState {
		t.Errorf("ParseCategoryFlag(STATE) = %v, %v", c, err)
	}
	if _, err := ParseCategoryFlag("control"); err == nil {
		t.Error("expected error for unsupported category")
	}
}

func TestParseMessageTag(t *testing.T) {
	tests := []struct {
		input   string
		want    wire.MessageType
		wantErr bool
	}{
		{"RGBCONTROLLER_UPDATELEDS", wire.MessageTypeUpdateLEDs, false},
		{"updateleds", wire.MessageTypeUpdateLEDs, false},
		{"set_client_name", wire.MessageTypeSetClientName, false},
		{"1050", wire.MessageTypeUpdateLEDs, false},
		{"0", wire.MessageTypeRequestControllerCount, false},
		{"999", 0, true}, // numeric but not a known tag
		{"bogus", 0, true},
	}

	for _, tt := range tests {
		got, err := parseMessageTag(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseMessageTag(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseMessageTag(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseMessageTag(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
