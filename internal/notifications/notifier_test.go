package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_Publish_NilRedisIsNoop(t *testing.T) {
	t.Parallel()
	assert.NoError(t, NewNotifier(nil).Publish(context.Background(), EventPostCreated, nil))

	var n *Notifier
	assert.NoError(t, n.Publish(context.Background(), EventPostCreated, nil))
}

func TestNotifier_PublishAndSubscribe(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return fixed }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan Event, 1)
	require.NoError(t, n.Subscribe(ctx, func(ev Event) { events <- ev }))

	require.NoError(t, n.Publish(ctx, EventPostLiked, map[string]string{"postId": "p-1", "username": "bob"}))

	select {
	case ev := <-events:
		assert.Equal(t, EventPostLiked, ev.Type)
		assert.True(t, ev.OccurredAt.Equal(fixed))
		payload, ok := ev.Payload.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "p-1", payload["postId"])
		assert.Equal(t, "bob", payload["username"])
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestNotifier_PublishWritesEnvelope(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	ctx := context.Background()
	sub := rdb.Subscribe(ctx, EventsChannel)
	defer func() { _ = sub.Close() }()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, NewNotifier(rdb).Publish(ctx, EventPostDeleted, map[string]string{"id": "p-9"}))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, EventsChannel, msg.Channel)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &raw))
	assert.Equal(t, EventPostDeleted, raw["type"])
	assert.Contains(t, raw, "occurredAt")
}

func TestNotifier_PublishError(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	mr.SetError("READONLY")
	assert.Error(t, NewNotifier(rdb).Publish(context.Background(), EventPostCreated, nil))
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	for _, addr := range []string{mr.Addr(), "redis://" + mr.Addr() + "/0"} {
		client, err := Connect(context.Background(), addr)
		require.NoError(t, err, addr)
		assert.NoError(t, client.Ping(context.Background()).Err())
		_ = client.Close()
	}

	_, err := Connect(context.Background(), "redis://%zz")
	assert.Error(t, err)

	addr := mr.Addr()
	mr.Close()
	_, err = Connect(context.Background(), addr)
	assert.Error(t, err)
}
