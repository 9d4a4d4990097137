package websocket

import (
	"log"
	"net/http"

	"chat-relay-backend/internal/chat"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler accepts websocket connections and feeds decoded, validated events
// into the Coordinator. Payload shapes are checked here once; past this point
// the core only sees typed data.
type Handler struct {
	hub         *Hub
	coordinator *chat.Coordinator
	sendBuffer  int
}

func NewHandler(hub *Hub, coordinator *chat.Coordinator, sendBuffer int) *Handler {
	return &Handler{
		hub:         hub,
		coordinator: coordinator,
		sendBuffer:  sendBuffer,
	}
}

// Serve upgrades the request and starts the connection pumps. The read loop
// runs in its own goroutine so the HTTP handler returns immediately.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		log.Printf("websocket upgrade failed: %v", err)
		return nil
	}

	client := newClient(conn, uuid.NewString(), h.sendBuffer)
	h.hub.Add(client)

	go client.keepAlive()
	go client.writePump()
	go h.readLoop(client)
	return nil
}

func (h *Handler) readLoop(client *Client) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in read loop: %v", r)
		}

		client.shutdown()
		h.coordinator.Disconnect(client.ID)
		h.hub.Remove(client)
		log.Printf("Client %s disconnected", client.ID)
	}()

	client.conn.SetReadLimit(512 * 1024)

	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			if closeErr, ok := err.(*websocket.CloseError); ok {
				if closeErr.Code == websocket.CloseNormalClosure ||
					closeErr.Code == websocket.CloseGoingAway ||
					closeErr.Code == websocket.CloseNoStatusReceived {
					break
				}
			}
			log.Printf("Error reading from client %s: %v", client.ID, err)
			break
		}

		h.dispatch(client, data)
	}
}

func (h *Handler) dispatch(client *Client, data []byte) {
	var env inboundEnvelope
	if err := decodePayload(data, &env); err != nil {
		log.Printf("Client %s sent an unreadable frame: %v", client.ID, err)
		return
	}

	switch env.Event {
	case EventCheckRoom:
		var p CheckRoomPayload
		if err := decodePayload(env.Data, &p); err != nil {
			log.Printf("Client %s: bad check_room payload: %v", client.ID, err)
			return
		}
		live := h.coordinator.CheckRoom(p.RoomID)
		h.hub.ToConnection(client.ID, chat.EventRoomCheck, RoomCheckReply{Room: p.RoomID, Live: live})

	case EventJoinRoom:
		var p JoinRoomPayload
		if err := decodePayload(env.Data, &p); err != nil {
			log.Printf("Client %s: bad join_room payload: %v", client.ID, err)
			return
		}
		h.coordinator.Join(client.ID, p.Username, p.RoomID)

	case EventSendMessage:
		var p SendMessagePayload
		if err := decodePayload(env.Data, &p); err != nil {
			log.Printf("Client %s: bad send_message payload: %v", client.ID, err)
			return
		}
		// Malformed messages are dropped without a reply.
		if err := validate.Struct(&p); err != nil {
			log.Printf("Client %s: dropping invalid send_message: %v", client.ID, err)
			return
		}
		h.coordinator.SendMessage(client.ID, chat.MessageData{
			Sender:    p.Message.Sender,
			Body:      p.Message.Body,
			Timestamp: p.Message.Timestamp,
		}, p.RoomID)

	case EventTyping:
		var p TypingPayload
		if err := decodePayload(env.Data, &p); err != nil {
			log.Printf("Client %s: bad typing payload: %v", client.ID, err)
			return
		}
		h.coordinator.Typing(client.ID, p.RoomID)

	case EventLeaveRoom:
		var p LeaveRoomPayload
		if err := decodePayload(env.Data, &p); err != nil {
			log.Printf("Client %s: bad leave_room payload: %v", client.ID, err)
			return
		}
		h.coordinator.Leave(client.ID, p.RoomID)

	default:
		log.Printf("Client %s sent unknown event %q", client.ID, env.Event)
	}
}
