package main

import (
	"chat-relay-backend/internal/api"
	"chat-relay-backend/internal/api/middleware"
	"chat-relay-backend/internal/api/router"
	"chat-relay-backend/internal/chat"
	"chat-relay-backend/internal/config"
	"chat-relay-backend/internal/queue"
	"chat-relay-backend/internal/websocket"
	"log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	queueManager := queue.NewRequestQueueManager(cfg.QueueSize, cfg.QueueWorkers)

	hub := websocket.NewHub()
	registry := chat.NewRegistry(cfg.DefaultRoom)
	coordinator := chat.NewCoordinator(registry, hub, chat.NewUUIDGenerator())
	handler := websocket.NewHandler(hub, coordinator, cfg.SendBuffer)

	corsConfig := middleware.CORSConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Requested-With", "Authorization"},
		AllowCredentials: true,
	}

	server := api.NewAPIServer(
		cfg.ListenAddr,
		queueManager,
		handler,
		corsConfig,
		router.UtilsRoutes("/api/relay/v1"),
		router.RelayRoutes("/api/relay/v1"),
	)

	server.Run()
}
