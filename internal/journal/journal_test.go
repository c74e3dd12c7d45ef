// internal/journal/journal_test.go
package journal

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishPushesRecord(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, Connect(mr.Addr(), 0))
	t.Cleanup(func() { Rdb = nil })

	ctx := context.Background()
	rec := Record{
		SessionID: "3f0a1a52-4f8b-4c4e-9f2e-0d6a91a7c001",
		ActorID:   1,
		Kind:      "snapshot_applied",
		Payload:   map[string]interface{}{"status": "IN_PROGRESS"},
	}
	require.NoError(t, Publish(ctx, "test_queue", rec))

	vals, err := Rdb.LRange(ctx, "test_queue", 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, vals, 1)

	var got Record
	require.NoError(t, json.Unmarshal([]byte(vals[0]), &got))
	assert.Equal(t, rec.SessionID, got.SessionID)
	assert.Equal(t, "snapshot_applied", got.Kind)
	assert.NotZero(t, got.Timestamp, "publish must stamp records")
}

func TestPublishUsesDefaultQueue(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, Connect(mr.Addr(), 0))
	t.Cleanup(func() { Rdb = nil })

	ctx := context.Background()
	require.NoError(t, Publish(ctx, "", Record{SessionID: "s", Kind: "intent_sent"}))

	n, err := Rdb.LLen(ctx, DefaultQueueName).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPublishDisabledIsNoop(t *testing.T) {
	Rdb = nil
	assert.False(t, Enabled())
	assert.NoError(t, Publish(context.Background(), "q", Record{SessionID: "s"}))
}

func TestConnectFailure(t *testing.T) {
	err := Connect("127.0.0.1:1", 0)
	assert.Error(t, err)
	assert.Nil(t, Rdb)
	assert.False(t, Enabled())
}
