// Package messaging provides a small in-process event bus. The execution
// model is single-threaded and event-driven (every operation runs to
// completion in response to one user action), so delivery is synchronous:
// Publish invokes every matching handler before returning.
package messaging

import (
	"context"
	"sync"

	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
	"github.com/aula-hub/libro-de-clases/pkg/logger"
)

// Handler processes a published domain event. Handlers must not panic;
// a panicking handler is recovered and logged, and delivery continues.
type Handler func(ctx context.Context, event shared.Event)

// EventBus routes domain events to subscribed handlers.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[shared.EventType][]Handler
	all      []Handler
	log      *logger.Logger
}

// NewEventBus creates an empty EventBus.
func NewEventBus(log *logger.Logger) *EventBus {
	return &EventBus{
		handlers: make(map[shared.EventType][]Handler),
		log:      log.With(logger.Component("eventbus")),
	}
}

// Subscribe registers a handler for one event type.
func (b *EventBus) Subscribe(eventType shared.EventType, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

// SubscribeAll registers a handler for every event type.
func (b *EventBus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, h)
}

// Publish delivers the event synchronously to all matching handlers.
// A nil bus is valid and drops events, which keeps handlers usable in
// tests without wiring.
func (b *EventBus) Publish(ctx context.Context, event shared.Event) {
	if b == nil || event == nil {
		return
	}

	b.mu.RLock()
	matched := make([]Handler, 0, len(b.handlers[event.EventType()])+len(b.all))
	matched = append(matched, b.handlers[event.EventType()]...)
	matched = append(matched, b.all...)
	b.mu.RUnlock()

	for _, h := range matched {
		b.deliver(ctx, event, h)
	}
}

func (b *EventBus) deliver(ctx context.Context, event shared.Event, h Handler) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panicked",
				logger.String("event_type", string(event.EventType())),
				logger.Any("panic", r),
			)
		}
	}()
	h(ctx, event)
}
