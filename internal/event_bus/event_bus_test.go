package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_Publish(t *testing.T) {
	t.Run("should deliver to handlers in subscription order", func(t *testing.T) {
		// given
		bus := NewEventBus()
		var calls []string
		for _, name := range []string{"first", "second", "third"} {
			bus.Subscribe(NoticeEvent, func(e Event) error {
				calls = append(calls, name)
				return nil
			})
		}

		// when
		err := bus.Publish(NewEvent(context.Background(), NoticeEvent, Notice{Message: "hi"}))

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second", "third"}, calls)
	})

	t.Run("should collect handler errors and recover panics", func(t *testing.T) {
		// given
		bus := NewEventBus()
		called := false
		bus.Subscribe(NoticeEvent, func(e Event) error { return errors.New("boom") })
		bus.Subscribe(NoticeEvent, func(e Event) error { panic("oops") })
		bus.Subscribe(NoticeEvent, func(e Event) error {
			called = true
			return nil
		})

		// when
		err := bus.Publish(NewEvent(context.Background(), NoticeEvent, nil))

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "2 handler(s) failed")
		assert.True(t, called)
	})

	t.Run("should not deliver when context is cancelled", func(t *testing.T) {
		// given
		bus := NewEventBus()
		called := false
		bus.Subscribe(NoticeEvent, func(e Event) error {
			called = true
			return nil
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		err := bus.Publish(NewEvent(ctx, NoticeEvent, nil))

		// then
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}

func TestSubscribeTyped(t *testing.T) {
	t.Run("should only receive matching payloads", func(t *testing.T) {
		// given
		bus := NewEventBus()
		var received []CollectionChanged
		SubscribeTyped(bus, CollectionChangedEvent, func(e EventT[CollectionChanged]) error {
			received = append(received, e.Data)
			return nil
		})

		// when
		_ = bus.Publish(NewEvent(context.Background(), CollectionChangedEvent, "not a payload"))
		_ = bus.Publish(NewEvent(context.Background(), CollectionChangedEvent, CollectionChanged{Collection: "contests", Op: "create"}))

		// then
		require.Len(t, received, 1)
		assert.Equal(t, "contests", received[0].Collection)
	})

	t.Run("should stop receiving after unsubscribe", func(t *testing.T) {
		// given
		bus := NewEventBus()
		count := 0
		unsubscribe := SubscribeTyped(bus, NoticeEvent, func(e EventT[Notice]) error {
			count++
			return nil
		})

		// when
		_ = bus.Publish(NewEvent(context.Background(), NoticeEvent, Notice{}))
		unsubscribe()
		_ = bus.Publish(NewEvent(context.Background(), NoticeEvent, Notice{}))

		// then
		assert.Equal(t, 1, count)
	})
}
