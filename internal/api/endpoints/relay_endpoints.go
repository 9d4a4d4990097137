package endpoints

import (
	"chat-relay-backend/internal/api"
	"net/http"
)

type RelayEndpoints interface {
	Websocket(http.ResponseWriter, *http.Request) error
}

type relayEndpoints struct {
	server *api.APIServer
}

func NewRelayEndpoints(s *api.APIServer) RelayEndpoints {
	return &relayEndpoints{server: s}
}

func (h *relayEndpoints) Websocket(w http.ResponseWriter, r *http.Request) error {
	return h.server.WebsocketHandler().Serve(w, r)
}
