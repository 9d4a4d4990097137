package chat

// Outbound event names emitted by the Coordinator.
const (
	EventChatHistory    = "chat_history"
	EventUserList       = "user_list"
	EventSystemMessage  = "system_message"
	EventReceiveMessage = "receive_message"
	EventUserTyping     = "user_typing"
	EventJoinSuccess    = "join_success"
	EventJoinError      = "join_error"
	EventRoomCheck      = "room_check"
)

// Transport is the delivery layer the Coordinator instructs. Emission is
// fire-and-forget; the transport keeps its own room association for
// connections, which the Coordinator keeps in sync with the Registry.
type Transport interface {
	Join(connID, room string)
	Leave(connID, room string)
	ToConnection(connID, event string, payload any)
	ToRoom(room, event string, payload any)
	ToRoomExcept(room, exceptID, event string, payload any)
}

type JoinSuccessPayload struct {
	Room string `json:"room"`
}

type JoinErrorPayload struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

type TypingPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
