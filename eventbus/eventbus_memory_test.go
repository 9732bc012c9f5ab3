package eventbus

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishDelivers(t *testing.T) {
	bus := NewMemoryBus(4)
	defer bus.Close()

	topic := NewTopic("test_events")
	received := make(chan Event, 1)
	err := bus.Subscribe(context.Background(), topic, func(ctx context.Context, e Event) error {
		received <- e
		return nil
	})
	require.NoError(t, err)

	evt, err := NewJSONEvent("", map[string]string{"k": "v"})
	require.NoError(t, err)
	require.NotEmpty(t, evt.ID)

	require.NoError(t, bus.Publish(context.Background(), topic.Base(), evt))

	select {
	case got := <-received:
		assert.Equal(t, evt.ID, got.ID)
		var payload map[string]string
		require.NoError(t, json.Unmarshal(got.Payload, &payload))
		assert.Equal(t, "v", payload["k"])
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestMemoryBus_FanOut(t *testing.T) {
	bus := NewMemoryBus(4)
	defer bus.Close()

	topic := NewTopic("test_events")
	a := make(chan Event, 1)
	b := make(chan Event, 1)
	require.NoError(t, bus.Subscribe(context.Background(), topic, func(ctx context.Context, e Event) error {
		a <- e
		return nil
	}))
	require.NoError(t, bus.Subscribe(context.Background(), topic, func(ctx context.Context, e Event) error {
		b <- e
		return nil
	}))

	evt, err := NewJSONEvent("evt-1", "payload")
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(), topic.Base(), evt))

	for _, ch := range []chan Event{a, b} {
		select {
		case got := <-ch:
			assert.Equal(t, "evt-1", got.ID)
		case <-time.After(2 * time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestMemoryBus_PublishAfterClose(t *testing.T) {
	bus := NewMemoryBus(4)
	bus.Close()

	evt, err := NewJSONEvent("", "x")
	require.NoError(t, err)
	assert.ErrorIs(t, bus.Publish(context.Background(), "test_events", evt), ErrBusClosed)
}

func TestMemoryBus_CloseWaitsForHandlers(t *testing.T) {
	bus := NewMemoryBus(4)
	topic := NewTopic("test_events")

	done := make(chan struct{})
	require.NoError(t, bus.Subscribe(context.Background(), topic, func(ctx context.Context, e Event) error {
		time.Sleep(50 * time.Millisecond)
		close(done)
		return nil
	}))

	evt, _ := NewJSONEvent("", "x")
	require.NoError(t, bus.Publish(context.Background(), topic.Base(), evt))

	bus.Close()
	select {
	case <-done:
	default:
		t.Fatal("Close returned before the in-flight handler finished")
	}
}
