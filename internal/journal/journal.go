// internal/journal/journal.go
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Rdb is the global Redis client. Connect it once at application startup;
// while it is nil the journal is disabled and every publish is a no-op.
var Rdb *redis.Client

// DefaultQueueName is the Redis list (queue) name for session records.
var DefaultQueueName = "mathic_session_log"

// Record is one journal entry: an applied snapshot or a submitted intent,
// kept for replay and analysis tooling outside the client.
type Record struct {
	SessionID string                 `json:"session_id"`
	ActorID   int64                  `json:"actor_id"`
	Kind      string                 `json:"kind"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// Connect initializes the global Redis client and verifies the connection.
func Connect(addr string, db int) error {
	Rdb = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		Rdb = nil
		return fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return nil
}

// Enabled reports whether the journal has been connected.
func Enabled() bool {
	return Rdb != nil
}

// Publish serializes the record to JSON and pushes it onto the queue. A
// disabled journal ignores the record. Publish failures must never block or
// abort gameplay; callers log and move on.
func Publish(ctx context.Context, queueName string, rec Record) error {
	if Rdb == nil {
		return nil
	}
	if queueName == "" {
		queueName = DefaultQueueName
	}
	if rec.Timestamp == 0 {
		rec.Timestamp = time.Now().UnixMilli()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal journal record: %w", err)
	}
	if err := Rdb.RPush(ctx, queueName, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", queueName, err)
	}
	return nil
}
