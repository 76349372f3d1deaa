// Package config resolves process settings from flags, the environment,
// and an optional .env file.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultPort is used when neither the -port flag nor PORT is set.
const DefaultPort = 3000

// Config is everything the server process needs to start.
type Config struct {
	Port        int
	CatalogPath string
	LogPath     string
	WebDir      string
}

// Load builds the config. A .env file is loaded when present; flagPort wins
// over the PORT environment variable when non-zero.
func Load(flagPort int) Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:        DefaultPort,
		CatalogPath: "game_config.yaml",
		LogPath:     "server.log",
		WebDir:      "web",
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			cfg.Port = p
		}
	}
	if flagPort > 0 {
		cfg.Port = flagPort
	}
	if v := os.Getenv("GAME_CONFIG"); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("WEB_DIR"); v != "" {
		cfg.WebDir = v
	}
	return cfg
}
