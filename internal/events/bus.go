// Package events carries domain events to the surrounding application.
package events

import (
	"sync"

	"go.uber.org/zap"

	"github.com/jvorcak/este/internal/domain"
)

// Publisher is the sink components emit domain events into.
type Publisher interface {
	Publish(event domain.Event)
}

// Bus is an in-process fan-out of domain events. Delivery is non-blocking;
// events that would block a slow subscriber are dropped and counted.
type Bus struct {
	mu      sync.Mutex
	subs    map[int]chan domain.Event
	nextID  int
	buffer  int
	dropped int64
	logger  *zap.Logger
}

var _ Publisher = (*Bus)(nil)

// NewBus creates an event bus whose subscriber channels hold buffer events.
func NewBus(buffer int, logger *zap.Logger) *Bus {
	return &Bus{
		subs:   make(map[int]chan domain.Event),
		buffer: buffer,
		logger: logger,
	}
}

// Publish delivers event to every subscriber without blocking.
func (b *Bus) Publish(event domain.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.dropped++
			b.logger.Warn("event dropped, subscriber too slow", zap.String("type", string(event.Type)))
		}
	}
}

// Subscribe registers a new subscriber and returns its channel together with
// an unsubscribe func that closes it.
func (b *Bus) Subscribe() (<-chan domain.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan domain.Event, b.buffer)
	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	}
}

// Dropped reports how many events were discarded due to slow subscribers.
func (b *Bus) Dropped() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}
