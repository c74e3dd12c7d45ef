// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config carries all environment-driven settings for the client runtime.
type Config struct {
	// ServerURL is the base URL of the game service, e.g. "http://localhost:8080".
	ServerURL string

	// WSURL is the websocket endpoint of the push broker. When empty it is
	// derived from ServerURL ("/ws/websocket", the broker's raw transport).
	WSURL string

	// Token is the bearer credential issued by the auth collaborator.
	Token string

	// RedisAddr enables the optional session journal when non-empty.
	RedisAddr string
	RedisDB   int
	QueueName string

	Verbose bool
}

// FromEnv builds a Config from environment variables:
//   - MATHIC_SERVER_URL (default "http://localhost:8080")
//   - MATHIC_WS_URL (optional, derived from the server URL when unset)
//   - MATHIC_TOKEN (optional)
//   - REDIS_ADDR, REDIS_DB, JOURNAL_QUEUE_NAME (optional journal settings)
//   - MATHIC_VERBOSE (optional)
func FromEnv() Config {
	cfg := Config{
		ServerURL: getEnv("MATHIC_SERVER_URL", "http://localhost:8080"),
		WSURL:     os.Getenv("MATHIC_WS_URL"),
		Token:     os.Getenv("MATHIC_TOKEN"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		QueueName: getEnv("JOURNAL_QUEUE_NAME", "mathic_session_log"),
		Verbose:   os.Getenv("MATHIC_VERBOSE") != "",
	}
	return cfg
}

// DeriveWSURL maps an http(s) base URL onto the broker's websocket endpoint.
func DeriveWSURL(serverURL string) string {
	ws := strings.TrimSuffix(serverURL, "/")
	switch {
	case strings.HasPrefix(ws, "https://"):
		ws = "wss://" + strings.TrimPrefix(ws, "https://")
	case strings.HasPrefix(ws, "http://"):
		ws = "ws://" + strings.TrimPrefix(ws, "http://")
	}
	return ws + "/ws/websocket"
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
