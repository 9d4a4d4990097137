package api

import (
	"chat-relay-backend/internal/api/middleware"
	"chat-relay-backend/internal/queue"
	"chat-relay-backend/internal/websocket"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

type RouteRegistrar func(mux *http.ServeMux, s *APIServer)

type APIServer struct {
	listenAddr          string
	requestQueueManager *queue.RequestQueueManager
	wsHandler           *websocket.Handler
	routeRegistrars     []RouteRegistrar
	corsConfig          middleware.CORSConfig
	metrics             *metrics
}

func NewAPIServer(listenAddr string, rqm *queue.RequestQueueManager, wsHandler *websocket.Handler, corsConfig middleware.CORSConfig, registrars ...RouteRegistrar) *APIServer {
	return &APIServer{
		listenAddr:          listenAddr,
		requestQueueManager: rqm,
		wsHandler:           wsHandler,
		routeRegistrars:     registrars,
		corsConfig:          corsConfig,
		metrics:             newMetrics(prometheus.DefaultRegisterer, listenAddr, rqm),
	}
}

func (s *APIServer) Run() {
	mux := http.NewServeMux()

	for _, reg := range s.routeRegistrars {
		reg(mux, s)
	}

	mux.Handle("/metrics", s.metrics.metricsHandler())

	fmt.Printf("Server listening on http://localhost%s\n", s.listenAddr)

	if err := http.ListenAndServe(s.listenAddr, s.metrics.instrument(mux)); err != nil {
		fmt.Printf("server stopped: %v\n", err)
	}
}

func (s *APIServer) WebsocketHandler() *websocket.Handler {
	return s.wsHandler
}
