// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config keeps the runtime settings for the server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// DBPath is the SQLite database file backing remote-mode lists.
	DBPath string

	// LocalStorePath is the JSON file backing local-mode lists.
	LocalStorePath string

	// JWTSecret signs/validates session tokens. Empty disables remote
	// sessions: requests can only run anonymously.
	JWTSecret string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first if present; real environment
// variables win over it.
func Load() (Config, error) {
	// Ignore a missing .env; it only exists in dev setups.
	_ = godotenv.Load()

	cfg := Config{
		Addr:           getEnv("ADDR", ":8080"),
		DBPath:         getEnv("DB_PATH", "./data/planner.db"),
		LocalStorePath: getEnv("LOCAL_STORE_PATH", "./data/local-store.json"),
		JWTSecret:      strings.TrimSpace(os.Getenv("JWT_SECRET")),
	}

	if !strings.Contains(cfg.Addr, ":") {
		return cfg, fmt.Errorf("ADDR %q must include a port", cfg.Addr)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
