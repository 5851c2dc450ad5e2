// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime knob for the service. Generative and catalog
// credentials are optional; the service degrades to fallbacks without them.
type Config struct {
	Addr string `env:"ADDR" envDefault:":8080"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`

	SpotifyClientID     string `env:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `env:"SPOTIFY_CLIENT_SECRET"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"moodorb.db"`
	PostgresDSN   string `env:"POSTGRES_DSN"`

	DebounceDelay     time.Duration `env:"DEBOUNCE_DELAY" envDefault:"5s"`
	SnapshotWorkers   int           `env:"SNAPSHOT_WORKERS" envDefault:"2"`
	SnapshotQueueSize int           `env:"SNAPSHOT_QUEUE_SIZE" envDefault:"100"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, nil
}

// HasOpenAI reports whether generative features can be enabled.
func (c Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

// HasSpotify reports whether catalog enrichment can be enabled.
func (c Config) HasSpotify() bool {
	return c.SpotifyClientID != "" && c.SpotifyClientSecret != ""
}
