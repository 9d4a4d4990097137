package chat

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

// Session binds one live connection to one username within one room.
type Session struct {
	ConnID      string
	Username    string
	DisplayName string
	Room        string
}

// Coordinator validates and sequences the join/leave/message/typing protocol
// against the Registry and decides what the transport broadcasts. Events are
// processed one at a time: the mutex is held for the full sequence of every
// event, so the Registry and the reverse index never diverge.
type Coordinator struct {
	mu        sync.Mutex
	registry  *Registry
	sessions  map[string]*Session
	transport Transport
	ids       IDGenerator
	now       func() time.Time
}

func NewCoordinator(registry *Registry, transport Transport, ids IDGenerator) *Coordinator {
	return &Coordinator{
		registry:  registry,
		sessions:  make(map[string]*Session),
		transport: transport,
		ids:       ids,
		now:       time.Now,
	}
}

func (c *Coordinator) resolveRoom(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return c.registry.DefaultRoom()
	}
	return name
}

// CheckRoom reports whether the resolved room currently has anyone in it.
func (c *Coordinator) CheckRoom(room string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.RoomIsLive(c.resolveRoom(room))
}

// Join validates the username, registers the session and replays history to
// the joiner before the join broadcast, so the joiner sees its own join
// message only via the live broadcast, never inside the replayed history.
func (c *Coordinator) Join(connID, rawUsername, room string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	roomName := c.resolveRoom(room)
	display := strings.TrimSpace(rawUsername)
	username := Standardize(rawUsername)

	if err := ValidateUsername(username); err != nil {
		c.transport.ToConnection(connID, EventJoinError, JoinErrorPayload{Code: err.Code, Message: err.Message})
		return
	}
	if c.registry.HasMember(roomName, username) {
		taken := newError(ErrorCodeUsernameTaken, "Username is already taken.")
		c.transport.ToConnection(connID, EventJoinError, JoinErrorPayload{Code: taken.Code, Message: taken.Message})
		return
	}

	// A connection holds at most one session. Switching rooms retires the
	// old session first, with the same bookkeeping as an explicit leave.
	if sess, ok := c.sessions[connID]; ok {
		c.removeFromRoom(sess, sess.Room, true)
		delete(c.sessions, connID)
	}

	c.registry.EnsureRoom(roomName)
	c.transport.Join(connID, roomName)

	member := Member{ConnID: connID, Username: username, DisplayName: display}
	if err := c.registry.AddMember(roomName, username, member); err != nil {
		log.Printf("join: add member %q to room %q: %v", username, roomName, err)
		return
	}
	c.sessions[connID] = &Session{ConnID: connID, Username: username, DisplayName: display, Room: roomName}

	history := c.registry.History(roomName)
	joined := c.systemMessage(display + " joined the chat")
	c.registry.AppendMessage(roomName, joined)

	c.transport.ToConnection(connID, EventChatHistory, history)
	c.transport.ToRoom(roomName, EventUserList, c.memberList(roomName))
	c.transport.ToRoom(roomName, EventSystemMessage, joined)
	c.transport.ToConnection(connID, EventJoinSuccess, JoinSuccessPayload{Room: roomName})
}

// SendMessage appends a chat record and broadcasts it to the room. The sender
// does not need an active session in the target room; any connection may post
// into any existing room. Malformed data is dropped without a reply.
func (c *Coordinator) SendMessage(connID string, data MessageData, room string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if data.Sender == "" || data.Body == "" || data.Timestamp == 0 {
		log.Printf("send_message: dropping malformed message from %s", connID)
		return
	}

	roomName := c.resolveRoom(room)
	if !c.registry.roomExists(roomName) {
		log.Printf("send_message: dropping message from %s for unknown room %q", connID, roomName)
		return
	}

	msg := Message{
		ID:        c.ids.NewID(),
		Kind:      KindChat,
		Sender:    data.Sender,
		Body:      data.Body,
		Timestamp: data.Timestamp,
		ConnID:    connID,
	}
	c.registry.AppendMessage(roomName, msg)
	c.transport.ToRoom(roomName, EventReceiveMessage, msg)
}

// Typing notifies everyone else in the room. No-op without an active session
// or when the resolved room does not exist.
func (c *Coordinator) Typing(connID, room string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.sessions[connID]
	if !ok {
		return
	}
	roomName := c.resolveRoom(room)
	if !c.registry.roomExists(roomName) {
		return
	}
	c.transport.ToRoomExcept(roomName, connID, EventUserTyping, TypingPayload{ID: connID, Username: sess.DisplayName})
}

// Leave removes the session explicitly. The leaving connection still receives
// the system message; only the remaining members receive the refreshed list.
func (c *Coordinator) Leave(connID, room string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.sessions[connID]
	if !ok {
		return
	}
	roomName := c.resolveRoom(room)
	if !c.registry.HasMember(roomName, sess.Username) {
		return
	}

	c.removeFromRoom(sess, roomName, true)
	delete(c.sessions, connID)
}

// Disconnect handles abrupt connection loss. Same bookkeeping as Leave, but
// the system message only reaches the other members. The reverse-index entry
// is cleared even when the session's room is already gone.
func (c *Coordinator) Disconnect(connID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.sessions[connID]
	if ok && c.registry.HasMember(sess.Room, sess.Username) {
		c.removeFromRoom(sess, sess.Room, false)
	}
	delete(c.sessions, connID)
}

// removeFromRoom appends the departure record, broadcasts it, and drops the
// membership. When notifySelf is false the system message skips the departing
// connection; the member-list refresh reaches only whoever remains either way
// because the transport group no longer contains the connection.
func (c *Coordinator) removeFromRoom(sess *Session, room string, notifySelf bool) {
	left := c.systemMessage(sess.DisplayName + " left the chat")
	c.registry.AppendMessage(room, left)
	if notifySelf {
		c.transport.ToRoom(room, EventSystemMessage, left)
	} else {
		c.transport.ToRoomExcept(room, sess.ConnID, EventSystemMessage, left)
	}

	c.registry.RemoveMember(room, sess.Username)
	c.transport.Leave(sess.ConnID, room)
	c.transport.ToRoom(room, EventUserList, c.memberList(room))
}

func (c *Coordinator) systemMessage(text string) Message {
	return Message{
		ID:        c.ids.NewID(),
		Kind:      KindSystem,
		Body:      text,
		Timestamp: c.now().Unix(),
	}
}

func (c *Coordinator) memberList(room string) []UserInfo {
	return lo.Map(c.registry.ListMembers(room), func(m Member, _ int) UserInfo {
		return UserInfo{ID: m.ConnID, Username: m.DisplayName}
	})
}
