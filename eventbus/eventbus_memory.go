package eventbus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"text-summary/logger"
)

// MemoryBus is a channel-backed in-process EventBus. It replaces a
// brokered bus for single-process deployments: subscribers get their
// own buffered queue and a dispatch goroutine, publications fan out to
// every subscriber of the topic.
type MemoryBus struct {
	mu     sync.Mutex
	subs   map[string][]chan Event
	closed bool
	wg     sync.WaitGroup
	buffer int
}

var ErrBusClosed = errors.New("eventbus: bus is closed")

// NewMemoryBus creates a bus whose subscriber queues hold up to buffer
// undelivered events each.
func NewMemoryBus(buffer int) *MemoryBus {
	if buffer <= 0 {
		buffer = 64
	}
	return &MemoryBus{
		subs:   map[string][]chan Event{},
		buffer: buffer,
	}
}

func (b *MemoryBus) Publish(ctx context.Context, topic string, event Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBusClosed
	}
	for _, ch := range b.subs[topic] {
		select {
		case ch <- event:
		default:
			return fmt.Errorf("eventbus: subscriber queue full for topic %s", topic)
		}
	}
	return nil
}

func (b *MemoryBus) Subscribe(ctx context.Context, topic Topic, handler EventHandler) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBusClosed
	}
	ch := make(chan Event, b.buffer)
	b.subs[topic.Base()] = append(b.subs[topic.Base()], ch)
	b.wg.Add(1)
	b.mu.Unlock()

	go func() {
		defer b.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-ch:
				if !ok {
					return
				}
				if err := handler(ctx, event); err != nil {
					logger.Log.Errorf("event handler failed (topic=%s, id=%s): %v", topic.Base(), event.ID, err)
				}
			}
		}
	}()
	return nil
}

// Close stops delivery and waits for in-flight handlers to finish.
func (b *MemoryBus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for _, chans := range b.subs {
		for _, ch := range chans {
			close(ch)
		}
	}
	b.mu.Unlock()

	b.wg.Wait()
}
