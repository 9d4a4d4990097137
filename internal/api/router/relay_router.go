package router

import (
	"chat-relay-backend/internal/api"
	"chat-relay-backend/internal/api/endpoints"
	"net/http"
)

func RelayRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		relayEndpoints := endpoints.NewRelayEndpoints(s)
		mux.HandleFunc(prefix+"/ws", s.MakeHTTPHandleFunc(relayEndpoints.Websocket))
	}
}
