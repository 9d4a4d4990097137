package config

import "github.com/kelseyhightower/envconfig"

// Config is loaded from CHAT_RELAY_* environment variables. Every field has a
// default so the server runs with no environment at all.
type Config struct {
	ListenAddr     string   `envconfig:"LISTEN_ADDR" default:":8083"`
	DefaultRoom    string   `envconfig:"DEFAULT_ROOM" default:"general"`
	QueueSize      int      `envconfig:"QUEUE_SIZE" default:"10"`
	QueueWorkers   int      `envconfig:"QUEUE_WORKERS" default:"10"`
	SendBuffer     int      `envconfig:"SEND_BUFFER" default:"16"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("chat_relay", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
