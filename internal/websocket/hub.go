package websocket

import (
	"log"
	"sync"
)

// Hub tracks every connected client and the room groups used for fan-out. It
// implements chat.Transport: the Coordinator decides what to emit, the Hub
// delivers it. Delivery is best-effort; a client whose send buffer is full is
// shut down rather than blocking the event sequence.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	rooms   map[string]map[string]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
	}
}

func (h *Hub) Add(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	incConnections()
}

// Remove drops the client from the connection set and every room group, and
// shuts it down. Safe to call more than once.
func (h *Hub) Remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	for room, group := range h.rooms {
		if _, ok := group[client.ID]; ok {
			delete(group, client.ID)
			if len(group) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	setRooms(len(h.rooms))
	decConnections()
	client.shutdown()
}

func (h *Hub) Join(connID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[connID]
	if !ok {
		return
	}
	group, ok := h.rooms[room]
	if !ok {
		group = make(map[string]*Client)
		h.rooms[room] = group
	}
	group[connID] = client
	setRooms(len(h.rooms))
}

func (h *Hub) Leave(connID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	group, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(group, connID)
	if len(group) == 0 {
		delete(h.rooms, room)
	}
	setRooms(len(h.rooms))
}

func (h *Hub) ToConnection(connID, event string, payload any) {
	h.mu.RLock()
	client, ok := h.clients[connID]
	h.mu.RUnlock()

	if !ok {
		return
	}
	if h.send(client, &Envelope{Event: event, Data: payload}) {
		addDelivered(1)
	}
}

func (h *Hub) ToRoom(room, event string, payload any) {
	h.broadcast(room, "", event, payload)
}

func (h *Hub) ToRoomExcept(room, exceptID, event string, payload any) {
	h.broadcast(room, exceptID, event, payload)
}

func (h *Hub) broadcast(room, exceptID, event string, payload any) {
	h.mu.RLock()
	group := h.rooms[room]
	targets := make([]*Client, 0, len(group))
	for id, client := range group {
		if id == exceptID {
			continue
		}
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	env := &Envelope{Event: event, Data: payload}
	delivered := 0
	for _, client := range targets {
		if h.send(client, env) {
			delivered++
		}
	}
	if delivered > 0 {
		addDelivered(delivered)
	}
}

func (h *Hub) send(client *Client, env *Envelope) bool {
	select {
	case client.Message <- env:
		return true
	default:
		log.Printf("Client %s send buffer full, dropping connection", client.ID)
		client.shutdown()
		return false
	}
}
