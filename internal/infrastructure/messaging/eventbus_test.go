package messaging

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aula-hub/libro-de-clases/internal/domain/shared"
	"github.com/aula-hub/libro-de-clases/pkg/logger"
)

func testBus() *EventBus {
	return NewEventBus(logger.New(logger.Options{Output: io.Discard, Level: logger.LevelError}))
}

func TestEventBusPublish(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to matching subscribers", func(t *testing.T) {
		bus := testBus()

		var created, rejected int
		bus.Subscribe(shared.EventRecordCreated, func(ctx context.Context, e shared.Event) {
			created++
		})
		bus.Subscribe(shared.EventRecordRejected, func(ctx context.Context, e shared.Event) {
			rejected++
		})

		bus.Publish(ctx, shared.NewRecordCreatedEvent("2024-03-15", 20, 2))

		assert.Equal(t, 1, created)
		assert.Equal(t, 0, rejected)
	})

	t.Run("subscribe-all sees every event", func(t *testing.T) {
		bus := testBus()

		var all int
		bus.SubscribeAll(func(ctx context.Context, e shared.Event) { all++ })

		bus.Publish(ctx, shared.NewRecordCreatedEvent("2024-03-15", 20, 2))
		bus.Publish(ctx, shared.NewRecordRejectedEvent("2024-03-15", "already_exists"))

		assert.Equal(t, 2, all)
	})

	t.Run("panicking handler does not stop delivery", func(t *testing.T) {
		bus := testBus()

		var delivered bool
		bus.Subscribe(shared.EventRecordCreated, func(ctx context.Context, e shared.Event) {
			panic("boom")
		})
		bus.Subscribe(shared.EventRecordCreated, func(ctx context.Context, e shared.Event) {
			delivered = true
		})

		assert.NotPanics(t, func() {
			bus.Publish(ctx, shared.NewRecordCreatedEvent("2024-03-15", 20, 2))
		})
		assert.True(t, delivered)
	})

	t.Run("nil bus drops events", func(t *testing.T) {
		var bus *EventBus
		assert.NotPanics(t, func() {
			bus.Publish(ctx, shared.NewRecordCreatedEvent("2024-03-15", 20, 2))
		})
	})
}
