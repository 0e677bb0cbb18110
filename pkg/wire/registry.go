package wire

import "fmt"

// The decoder registries are keyed by type tag per direction of
// travel, because reply tags alias request tags: a frame tagged 0
// is RequestControllerCount when it arrives at a daemon and
// ReplyControllerCount when it arrives at a client.

// serverSent maps tags of daemon-to-client traffic: replies and the
// device list notification.
var serverSent = map[MessageType]func() Message{
	MessageTypeRequestControllerCount: func() Message { return new(ReplyControllerCount) },
	MessageTypeRequestControllerData:  func() Message { return new(ReplyControllerData) },
	MessageTypeRequestProtocolVersion: func() Message { return new(ReplyProtocolVersion) },
	MessageTypeDeviceListUpdated:      func() Message { return new(DeviceListUpdated) },
}

// clientSent maps tags of client-to-daemon traffic: every request.
var clientSent = map[MessageType]func() Message{
	MessageTypeRequestControllerCount: func() Message { return new(RequestControllerCount) },
	MessageTypeRequestControllerData:  func() Message { return new(RequestControllerData) },
	MessageTypeRequestProtocolVersion: func() Message { return new(RequestProtocolVersion) },
	MessageTypeSetClientName:          func() Message { return new(SetClientName) },
	MessageTypeResizeZone:             func() Message { return new(ResizeZone) },
	MessageTypeUpdateLEDs:             func() Message { return new(UpdateLEDs) },
	MessageTypeUpdateZoneLEDs:         func() Message { return new(UpdateZoneLEDs) },
	MessageTypeUpdateSingleLED:        func() Message { return new(UpdateSingleLED) },
	MessageTypeSetCustomMode:          func() Message { return new(SetCustomMode) },
	MessageTypeUpdateMode:             func() Message { return new(UpdateMode) },
}

// DecodeServerMessage decodes a frame sent by the daemon, as received
// by a client: a reply or a DeviceListUpdated notification. The header
// must come from DecodeHeader and body must be the h.BodySize bytes
// that followed it.
func DecodeServerMessage(h Header, body []byte) (Message, error) {
	return decodeMessage(h, body, serverSent, "server")
}

// DecodeClientMessage decodes a frame sent by a client, as received by
// a daemon: one of the requests.
func DecodeClientMessage(h Header, body []byte) (Message, error) {
	return decodeMessage(h, body, clientSent, "client")
}

func decodeMessage(h Header, body []byte, registry map[MessageType]func() Message, sender string) (Message, error) {
	construct, ok := registry[h.Type]
	if !ok {
		return nil, fmt.Errorf("%s does not send %s: %w", sender, h.Type, ErrUnknownMessageType)
	}
	if uint32(len(body)) < h.BodySize {
		return nil, fmt.Errorf("%s body needs %d bytes, have %d: %w", h.Type, h.BodySize, len(body), ErrTruncatedInput)
	}
	if uint32(len(body)) > h.BodySize {
		return nil, fmt.Errorf("%s body is %d bytes, header says %d: %w", h.Type, len(body), h.BodySize, ErrInconsistentLength)
	}
	msg := construct()
	r := NewReader(body)
	if err := msg.decodeBody(h, r); err != nil {
		return nil, fmt.Errorf("%s: %w", h.Type, err)
	}
	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%s left %d trailing bytes: %w", h.Type, r.Remaining(), ErrInconsistentLength)
	}
	return msg, nil
}
