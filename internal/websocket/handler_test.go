package websocket

import (
	"testing"

	"chat-relay-backend/internal/chat"

	"github.com/stretchr/testify/require"
)

func newTestHandler() (*Handler, *Hub) {
	hub := NewHub()
	registry := chat.NewRegistry("general")
	coordinator := chat.NewCoordinator(registry, hub, chat.NewUUIDGenerator())
	return NewHandler(hub, coordinator, 8), hub
}

func connect(h *Handler, hub *Hub, id string) *Client {
	client := newTestClient(id)
	hub.Add(client)
	return client
}

func events(envs []*Envelope) []string {
	names := make([]string, len(envs))
	for i, env := range envs {
		names[i] = env.Event
	}
	return names
}

func TestDispatchJoinFlow(t *testing.T) {
	h, hub := newTestHandler()
	client := connect(h, hub, "c1")

	h.dispatch(client, []byte(`{"event":"join_room","data":{"username":"alice123!","roomId":"team"}}`))

	got := drain(client)
	require.Equal(t, []string{
		chat.EventChatHistory,
		chat.EventUserList,
		chat.EventSystemMessage,
		chat.EventJoinSuccess,
	}, events(got))
}

func TestDispatchJoinErrorForBadUsername(t *testing.T) {
	h, hub := newTestHandler()
	client := connect(h, hub, "c1")

	h.dispatch(client, []byte(`{"event":"join_room","data":{"username":"bo1","roomId":"team"}}`))

	got := drain(client)
	require.Equal(t, []string{chat.EventJoinError}, events(got))
	payload := got[0].Data.(chat.JoinErrorPayload)
	require.Equal(t, "Username must be at least 5 characters long.", payload.Message)
}

func TestDispatchCheckRoomReplies(t *testing.T) {
	h, hub := newTestHandler()
	asker := connect(h, hub, "asker")
	member := connect(h, hub, "member")

	h.dispatch(asker, []byte(`{"event":"check_room","data":{"roomId":"team"}}`))
	got := drain(asker)
	require.Equal(t, []string{chat.EventRoomCheck}, events(got))
	require.Equal(t, RoomCheckReply{Room: "team", Live: false}, got[0].Data)

	h.dispatch(member, []byte(`{"event":"join_room","data":{"username":"alice123!","roomId":"team"}}`))
	drain(member)

	h.dispatch(asker, []byte(`{"event":"check_room","data":{"roomId":"team"}}`))
	got = drain(asker)
	require.Len(t, got, 1)
	require.Equal(t, RoomCheckReply{Room: "team", Live: true}, got[0].Data)
}

func TestDispatchDropsMalformedSendMessage(t *testing.T) {
	h, hub := newTestHandler()
	client := connect(h, hub, "c1")
	h.dispatch(client, []byte(`{"event":"join_room","data":{"username":"alice123!","roomId":"team"}}`))
	drain(client)

	// Missing body: validation fails at the boundary, nothing comes back.
	h.dispatch(client, []byte(`{"event":"send_message","data":{"message":{"sender":"alice123!","timestamp":100},"roomId":"team"}}`))
	require.Empty(t, drain(client))

	h.dispatch(client, []byte(`{"event":"send_message","data":{"message":{"sender":"alice123!","body":"hi","timestamp":100},"roomId":"team"}}`))
	got := drain(client)
	require.Equal(t, []string{chat.EventReceiveMessage}, events(got))
	msg := got[0].Data.(chat.Message)
	require.Equal(t, "hi", msg.Body)
	require.Equal(t, chat.KindChat, msg.Kind)
}

func TestDispatchTypingExcludesSender(t *testing.T) {
	h, hub := newTestHandler()
	alice := connect(h, hub, "c1")
	bob := connect(h, hub, "c2")
	h.dispatch(alice, []byte(`{"event":"join_room","data":{"username":"alice123!","roomId":"team"}}`))
	h.dispatch(bob, []byte(`{"event":"join_room","data":{"username":"bob99#","roomId":"team"}}`))
	drain(alice)
	drain(bob)

	h.dispatch(alice, []byte(`{"event":"typing","data":{"roomId":"team"}}`))

	require.Empty(t, drain(alice))
	got := drain(bob)
	require.Equal(t, []string{chat.EventUserTyping}, events(got))
	require.Equal(t, chat.TypingPayload{ID: "c1", Username: "alice123!"}, got[0].Data)
}

func TestDispatchLeaveRoom(t *testing.T) {
	h, hub := newTestHandler()
	alice := connect(h, hub, "c1")
	bob := connect(h, hub, "c2")
	h.dispatch(alice, []byte(`{"event":"join_room","data":{"username":"alice123!","roomId":"team"}}`))
	h.dispatch(bob, []byte(`{"event":"join_room","data":{"username":"bob99#","roomId":"team"}}`))
	drain(alice)
	drain(bob)

	h.dispatch(alice, []byte(`{"event":"leave_room","data":{"roomId":"team"}}`))

	require.Equal(t, []string{chat.EventSystemMessage}, events(drain(alice)),
		"the leaver still hears the goodbye but not the new member list")
	require.Equal(t, []string{chat.EventSystemMessage, chat.EventUserList}, events(drain(bob)))
}

func TestDispatchIgnoresGarbage(t *testing.T) {
	h, hub := newTestHandler()
	client := connect(h, hub, "c1")

	h.dispatch(client, []byte(`not json`))
	h.dispatch(client, []byte(`{"event":"no_such_event","data":{}}`))
	h.dispatch(client, []byte(`{"event":"join_room","data":"not an object"}`))

	require.Empty(t, drain(client))
}
