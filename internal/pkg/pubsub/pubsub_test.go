package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return client, cleanup
}

func TestPublishProgress_FillsStepDefaults(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	publisher := NewPublisher(client)
	subscriber := NewSubscriber(client)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan *ProgressMessage, 1)
	go func() {
		_ = subscriber.Subscribe(ctx, func(msg *ProgressMessage) {
			received <- msg
		})
	}()

	// Give the subscriber a moment to attach.
	time.Sleep(50 * time.Millisecond)

	err := publisher.PublishProgress(ctx, &ProgressMessage{
		UserID:     1,
		TripPlanID: 9,
		Status:     "processing",
		Step:       StepGenerating,
	})
	require.NoError(t, err)

	select {
	case msg := <-received:
		assert.Equal(t, "trip_progress", msg.Type)
		assert.Equal(t, int64(9), msg.TripPlanID)
		assert.Equal(t, StepProgress[StepGenerating], msg.Progress)
		assert.Equal(t, StepMessages[StepGenerating], msg.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for progress message")
	}
}
