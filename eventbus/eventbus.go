package eventbus

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// Topic names a stream of events on the bus.
type Topic struct {
	base string
}

func NewTopic(base string) Topic {
	return Topic{base: base}
}

func (t Topic) Base() string {
	return t.base
}

// Event is the payload envelope delivered to subscribers.
type Event struct {
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

// NewJSONEvent marshals the payload into an event envelope. An empty id
// gets a fresh uuid.
func NewJSONEvent(id string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	if id == "" {
		id = uuid.New().String()
	}
	return Event{ID: id, Payload: raw}, nil
}

// EventHandler is the signature of event processing functions.
type EventHandler func(ctx context.Context, event Event) error

// EventBus abstracts event publication and subscription.
type EventBus interface {
	Publish(ctx context.Context, topic string, event Event) error
	// Subscribe registers a handler for the topic. Delivery starts
	// immediately and continues until the context is cancelled or the
	// bus is closed.
	Subscribe(ctx context.Context, topic Topic, handler EventHandler) error
	Close()
}
