package chat

type MessageKind string

const (
	KindChat   MessageKind = "chat"
	KindSystem MessageKind = "system"
)

// Message is a single history record, either a user chat message or a
// server-generated system notification. Records are immutable once appended.
type Message struct {
	ID        string      `json:"id"`
	Kind      MessageKind `json:"type"`
	Sender    string      `json:"sender,omitempty"`
	Body      string      `json:"body"`
	Timestamp int64       `json:"timestamp"`
	ConnID    string      `json:"-"`
}

// MessageData is the client-supplied part of a chat message.
type MessageData struct {
	Sender    string `json:"sender"`
	Body      string `json:"body"`
	Timestamp int64  `json:"timestamp"`
}

// Member is one room participant, keyed in the room by the standardized
// username. DisplayName keeps the original spelling for system messages.
type Member struct {
	ConnID      string
	Username    string
	DisplayName string
}

type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
