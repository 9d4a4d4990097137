package websocket

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// Inbound event names accepted from clients.
const (
	EventCheckRoom   = "check_room"
	EventJoinRoom    = "join_room"
	EventSendMessage = "send_message"
	EventTyping      = "typing"
	EventLeaveRoom   = "leave_room"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Envelope is the wire frame for outbound events.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type inboundEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Per-event payload structures, decoded and validated once at the boundary.

type CheckRoomPayload struct {
	RoomID string `json:"roomId"`
}

type JoinRoomPayload struct {
	Username string `json:"username"`
	RoomID   string `json:"roomId"`
}

type SendMessagePayload struct {
	Message MessageBody `json:"message" validate:"required"`
	RoomID  string      `json:"roomId"`
}

type MessageBody struct {
	Sender    string `json:"sender" validate:"required"`
	Body      string `json:"body" validate:"required"`
	Timestamp int64  `json:"timestamp" validate:"required"`
}

type TypingPayload struct {
	RoomID string `json:"roomId"`
}

type LeaveRoomPayload struct {
	RoomID string `json:"roomId"`
}

type RoomCheckReply struct {
	Room string `json:"room"`
	Live bool   `json:"live"`
}

func decodePayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}
