package log

import (
	"testing"
	"time"

	"github.com/orgb-protocol/orgb-go/pkg/wire"
)

func TestEventCBORRoundTrip(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456789, time.UTC)
	original := Event{
		Timestamp:    ts,
		ConnectionID: "abc12345-def6-7890-abcd-ef1234567890",
		Direction:    DirectionOut,
		Layer:        LayerWire,
		Category:     CategoryMessage,
		RemoteAddr:   "192.168.1.100:6742",
	}

	data, err := EncodeEvent(original)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	// Compare fields
	if !decoded.Timestamp.Equal(original.Timestamp) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, original.Timestamp)
	}
	if decoded.ConnectionID != original.ConnectionID {
		t.Errorf("ConnectionID: got %q, want %q", decoded.ConnectionID, original.ConnectionID)
	}
	if decoded.Direction != original.Direction {
		t.Errorf("Direction: got %v, want %v", decoded.Direction, original.Direction)
	}
	if decoded.Layer != original.Layer {
		t.Errorf("Layer: got %v, want %v", decoded.Layer, original.Layer)
	}
	if decoded.Category != original.Category {
		t.Errorf("Category: got %v, want %v", decoded.Category, original.Category)
	}
	if decoded.RemoteAddr != original.RemoteAddr {
		t.Errorf("RemoteAddr: got %q, want %q", decoded.RemoteAddr, original.RemoteAddr)
	}
}

func TestFrameEventCBORRoundTrip(t *testing.T) {
	original := Event{
		Timestamp:    time.Now(),
		ConnectionID: "conn-123",
		Direction:    DirectionIn,
		Layer:        LayerTransport,
		Category:     CategoryMessage,
		Frame: &FrameEvent{
			Size:      256,
			Data:      []byte{0x4f, 0x52, 0x47, 0x42, 0x05},
			Truncated: true,
		},
	}

	data, err := EncodeEvent(original)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if decoded.Frame == nil {
		t.Fatal("Frame is nil")
	}
	if decoded.Frame.Size != original.Frame.Size {
		t.Errorf("Frame.Size: got %d, want %d", decoded.Frame.Size, original.Frame.Size)
	}
	if string(decoded.Frame.Data) != string(original.Frame.Data) {
		t.Errorf("Frame.Data: got %v, want %v", decoded.Frame.Data, original.Frame.Data)
	}
	if decoded.Frame.Truncated != original.Frame.Truncated {
		t.Errorf("Frame.Truncated: got %v, want %v", decoded.Frame.Truncated, original.Frame.Truncated)
	}
}

func TestMessageEventCBORRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  *MessageEvent
	}{
		{
			name: "request",
			msg: &MessageEvent{
				Tag:         wire.MessageTypeRequestControllerData,
				DeviceIndex: 2,
				BodySize:    0,
			},
		},
		{
			name: "reply",
			msg: &MessageEvent{
				Tag:         wire.MessageTypeRequestControllerCount,
				DeviceIndex: 0,
				BodySize:    4,
				Summary:     "count=3",
			},
		},
		{
			name: "update",
			msg: &MessageEvent{
				Tag:         wire.MessageTypeUpdateZoneLEDs,
				DeviceIndex: 1,
				BodySize:    82,
				Summary:     "zone=0 leds=18",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := Event{
				Timestamp:    time.Now(),
				ConnectionID: "conn-123",
				Direction:    DirectionOut,
				Layer:        LayerWire,
				Category:     CategoryMessage,
				Message:      tt.msg,
			}

			data, err := EncodeEvent(original)
			if err != nil {
				t.Fatalf("EncodeEvent failed: %v", err)
			}

			decoded, err := DecodeEvent(data)
			if err != nil {
				t.Fatalf("DecodeEvent failed: %v", err)
			}

			if decoded.Message == nil {
				t.Fatal("Message is nil")
			}
			if decoded.Message.Tag != tt.msg.Tag {
				t.Errorf("Message.Tag: got %v, want %v", decoded.Message.Tag, tt.msg.Tag)
			}
			if decoded.Message.DeviceIndex != tt.msg.DeviceIndex {
				t.Errorf("Message.DeviceIndex: got %d, want %d", decoded.Message.DeviceIndex, tt.msg.DeviceIndex)
			}
			if decoded.Message.BodySize != tt.msg.BodySize {
				t.Errorf("Message.BodySize: got %d, want %d", decoded.Message.BodySize, tt.msg.BodySize)
			}
			if decoded.Message.Summary != tt.msg.Summary {
				t.Errorf("Message.Summary: got %q, want %q", decoded.Message.Summary, tt.msg.Summary)
			}
		})
	}
}

func TestStateChangeEventCBORRoundTrip(t *testing.T) {
	original := Event{
		Timestamp:    time.Now(),
		ConnectionID: "conn-123",
		Direction:    DirectionIn,
		Layer:        LayerClient,
		Category:     CategoryState,
		StateChange: &StateChangeEvent{
			Entity:   StateEntityConnection,
			OldState: "connecting",
			NewState: "connected",
			Reason:   "handshake complete",
		},
	}

	data, err := EncodeEvent(original)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if decoded.StateChange == nil {
		t.Fatal("StateChange is nil")
	}
	if decoded.StateChange.Entity != original.StateChange.Entity {
		t.Errorf("StateChange.Entity: got %v, want %v", decoded.StateChange.Entity, original.StateChange.Entity)
	}
	if decoded.StateChange.OldState != original.StateChange.OldState {
		t.Errorf("StateChange.OldState: got %q, want %q", decoded.StateChange.OldState, original.StateChange.OldState)
	}
	if decoded.StateChange.NewState != original.StateChange.NewState {
		t.Errorf("StateChange.NewState: got %q, want %q", decoded.StateChange.NewState, original.StateChange.NewState)
	}
	if decoded.StateChange.Reason != original.StateChange.Reason {
		t.Errorf("StateChange.Reason: got %q, want %q", decoded.StateChange.Reason, original.StateChange.Reason)
	}
}

func TestErrorEventCBORRoundTrip(t *testing.T) {
	original := Event{
		Timestamp:    time.Now(),
		ConnectionID: "conn-123",
		Direction:    DirectionIn,
		Layer:        LayerWire,
		Category:     CategoryError,
		Error: &ErrorEventData{
			Layer:   LayerWire,
			Message: "failed to decode message",
			Context: "Receive",
		},
	}

	data, err := EncodeEvent(original)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if decoded.Error == nil {
		t.Fatal("Error is nil")
	}
	if decoded.Error.Layer != original.Error.Layer {
		t.Errorf("Error.Layer: got %v, want %v", decoded.Error.Layer, original.Error.Layer)
	}
	if decoded.Error.Message != original.Error.Message {
		t.Errorf("Error.Message: got %q, want %q", decoded.Error.Message, original.Error.Message)
	}
	if decoded.Error.Context != original.Error.Context {
		t.Errorf("Error.Context: got %q, want %q", decoded.Error.Context, original.Error.Context)
	}
}

func TestEventBackwardCompat(t *testing.T) {
	// Encode an event with a Message payload
	original := Event{
		Timestamp:    time.Now(),
		ConnectionID: "conn-compat-001",
		Direction:    DirectionOut,
		Layer:        LayerWire,
		Category:     CategoryMessage,
		Message: &MessageEvent{
			Tag:         wire.MessageTypeSetClientName,
			DeviceIndex: 0,
			BodySize:    12,
		},
	}

	data, err := EncodeEvent(original)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	// Decode into a struct without the Message field (simulating an older reader).
	// The CBOR decoder is configured with ExtraDecErrorNone, so unknown keys
	// are silently ignored.
	type OldEvent struct {
		Timestamp    time.Time `cbor:"1,keyasint"`
		ConnectionID string    `cbor:"2,keyasint"`
		Direction    Direction `cbor:"3,keyasint"`
		Layer        Layer     `cbor:"4,keyasint"`
		Category     Category  `cbor:"5,keyasint"`
		// No payload fields -- simulates older version
	}

	var old OldEvent
	if err := logDecMode.Unmarshal(data, &old); err != nil {
		t.Fatalf("decoding into OldEvent (without payloads) should succeed, got: %v", err)
	}

	if old.ConnectionID != "conn-compat-001" {
		t.Errorf("ConnectionID: got %q, want %q", old.ConnectionID, "conn-compat-001")
	}
	if old.Category != CategoryMessage {
		t.Errorf("Category: got %v, want %v", old.Category, CategoryMessage)
	}
}

func TestEventCBORUsesIntegerKeys(t *testing.T) {
	event := Event{
		Timestamp:    time.Now(),
		ConnectionID: "conn-123",
		Direction:    DirectionIn,
		Layer:        LayerTransport,
		Category:     CategoryMessage,
	}

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	// Decode to generic map and verify keys are integers
	var rawMap map[uint64]any
	if err := logDecMode.Unmarshal(data, &rawMap); err != nil {
		t.Fatalf("failed to decode as map: %v", err)
	}

	// Should have integer keys 1, 2, 3, 4, 5 etc.
	expectedKeys := []uint64{1, 2, 3, 4, 5}
	for _, key := range expectedKeys {
		if _, ok := rawMap[key]; !ok {
			t.Errorf("expected integer key %d not found in encoded data", key)
		}
	}

	// Verify no string keys
	var stringMap map[string]any
	if err := logDecMode.Unmarshal(data, &stringMap); err == nil && len(stringMap) > 0 {
		t.Error("encoded data contains string keys, expected integer keys only")
	}
}
