package notice

import (
	"context"
	"testing"

	"github.com/kampung/agustusan/internal/event_bus"
	"github.com/kampung/agustusan/pkg/storage"
	"github.com/stretchr/testify/assert"
)

func TestBoard(t *testing.T) {
	ctx := context.Background()

	t.Run("should drain published notices in order", func(t *testing.T) {
		// given
		bus := event_bus.NewEventBus()
		board := NewBoard(bus)
		Success(ctx, bus, "Transaksi berhasil ditambahkan!")
		Error(ctx, bus, "Jumlah kupon tidak valid.")

		// when
		drained := board.Drain()

		// then
		assert.Equal(t, []event_bus.Notice{
			{Level: event_bus.NoticeSuccess, Message: "Transaksi berhasil ditambahkan!"},
			{Level: event_bus.NoticeError, Message: "Jumlah kupon tidak valid."},
		}, drained)
		assert.Empty(t, board.Drain())
	})

	t.Run("should turn storage failures into an error notice", func(t *testing.T) {
		// given
		bus := event_bus.NewEventBus()
		board := NewBoard(bus)
		store := storage.NewStore(storage.NewMemoryBackend(4), bus)

		// when
		store.Save(ctx, "contests", []string{"too large for the quota"})

		// then
		assert.Equal(t, []event_bus.Notice{{Level: event_bus.NoticeError, Message: SaveFailedMessage}}, board.Drain())
	})
}
