package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTPAddr is the listen address for the combined HTTP/WebSocket server.
	HTTPAddr string
	// PublicURL is the externally reachable base URL, used for join links.
	PublicURL string
	// RoomCodeLen is the length of generated room codes.
	RoomCodeLen int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// Load reads configuration from the environment, with an optional .env
// file for local development.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		PublicURL:   getenv("PUBLIC_URL", "http://localhost:8080"),
		RoomCodeLen: getenvInt("ROOM_CODE_LEN", 4),
	}
}
