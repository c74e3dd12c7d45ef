// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveWSURL(t *testing.T) {
	assert.Equal(t, "ws://localhost:8080/ws/websocket", DeriveWSURL("http://localhost:8080"))
	assert.Equal(t, "ws://localhost:8080/ws/websocket", DeriveWSURL("http://localhost:8080/"))
	assert.Equal(t, "wss://mathic.example.com/ws/websocket", DeriveWSURL("https://mathic.example.com"))
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("MATHIC_SERVER_URL", "")
	t.Setenv("MATHIC_WS_URL", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("JOURNAL_QUEUE_NAME", "")

	cfg := FromEnv()
	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.Empty(t, cfg.WSURL)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "mathic_session_log", cfg.QueueName)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MATHIC_SERVER_URL", "https://mathic.example.com")
	t.Setenv("MATHIC_WS_URL", "wss://push.example.com/ws/websocket")
	t.Setenv("MATHIC_TOKEN", "tok")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("MATHIC_VERBOSE", "1")

	cfg := FromEnv()
	assert.Equal(t, "https://mathic.example.com", cfg.ServerURL)
	assert.Equal(t, "wss://push.example.com/ws/websocket", cfg.WSURL)
	assert.Equal(t, "tok", cfg.Token)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.Verbose)
}

func TestGetEnvIntBadValue(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	assert.Equal(t, 0, getEnvInt("REDIS_DB", 0))
}
