package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/kampung/agustusan/pkg/collection"
	"github.com/kampung/agustusan/pkg/storage"
	"github.com/kampung/agustusan/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var jakarta = time.FixedZone("WIB", 7*60*60)

func setupServiceTest(t *testing.T) (*ServiceImpl, *storage.Store) {
	t.Helper()
	store := storage.NewStore(storage.NewMemoryBackend(0), nil)
	return NewService(collection.Load[Schedule](ctx, CollectionKey, store, nil)), store
}

func TestServiceImpl(t *testing.T) {
	t.Run("should create, update and delete", func(t *testing.T) {
		// given
		service, store := setupServiceTest(t)

		// when
		created, err := service.Create(ctx, Input{Title: "Upacara", Description: "Upacara bendera", Date: "2025-08-17", Time: "07:00", Location: "Lapangan"})
		require.NoError(t, err)
		updated, err := service.Update(ctx, created.Id, Input{Title: "Upacara", Description: "Upacara bendera", Date: "2025-08-17", Time: "07:30"})
		require.NoError(t, err)

		// then
		assert.Equal(t, created.Id, updated.Id)
		assert.Equal(t, "07:30", updated.Time)
		assert.Empty(t, updated.Location)
		assert.Equal(t, []Schedule{updated}, storage.Load(ctx, store, CollectionKey, []Schedule{}))

		// when
		err = service.Delete(ctx, created.Id, view.Confirmed(true))

		// then
		require.NoError(t, err)
		assert.Empty(t, service.GetAll(ctx))
	})

	t.Run("should reject invalid input", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t)

		// when
		_, err := service.Create(ctx, Input{Title: "Upacara", Description: "", Date: "2025-08-17", Time: "07:00"})

		// then
		assert.ErrorIs(t, err, view.ErrValidation)
		assert.Empty(t, service.GetAll(ctx))
	})

	t.Run("should report unknown id on update", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t)

		// when
		_, err := service.Update(ctx, "missing", Input{Title: "A", Description: "B", Date: "2025-08-17", Time: "07:00"})

		// then
		assert.ErrorIs(t, err, ErrScheduleNotFound)
	})

	t.Run("should keep record when delete is declined", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t)
		created, _ := service.Create(ctx, Input{Title: "A", Description: "B", Date: "2025-08-17", Time: "07:00"})

		// when
		err := service.Delete(ctx, created.Id, view.Confirmed(false))

		// then
		assert.ErrorIs(t, err, view.ErrNotConfirmed)
		assert.Len(t, service.GetAll(ctx), 1)
	})
}

func TestNext(t *testing.T) {
	schedules := []Schedule{
		{Id: "tirakatan", Title: "Malam Tirakatan", Date: "2025-08-16", Time: "19:30"},
		{Id: "lomba", Title: "Lomba Anak", Date: "2025-08-17", Time: "13:00"},
		{Id: "upacara", Title: "Upacara", Date: "2025-08-17", Time: "07:00"},
	}

	t.Run("should pick the earliest schedule not yet started", func(t *testing.T) {
		// given
		now := time.Date(2025, 8, 17, 6, 0, 0, 0, jakarta)

		// when
		next, ok := Next(schedules, now)

		// then
		require.True(t, ok)
		assert.Equal(t, "upacara", next.Id)
	})

	t.Run("should still count a schedule starting this minute", func(t *testing.T) {
		// given
		now := time.Date(2025, 8, 17, 7, 0, 45, 0, jakarta)

		// when
		next, ok := Next(schedules, now)

		// then
		require.True(t, ok)
		assert.Equal(t, "upacara", next.Id)
	})

	t.Run("should keep a schedule that started earlier today", func(t *testing.T) {
		// given
		now := time.Date(2025, 8, 17, 9, 0, 0, 0, jakarta)

		// when
		next, ok := Next(schedules, now)

		// then
		require.True(t, ok)
		assert.Equal(t, "upacara", next.Id)
	})

	t.Run("should skip schedules of previous days", func(t *testing.T) {
		// given
		now := time.Date(2025, 8, 17, 0, 0, 0, 0, jakarta)

		// when
		next, ok := Next(schedules, now)

		// then
		require.True(t, ok)
		assert.Equal(t, "upacara", next.Id)
	})

	t.Run("should judge the day in the location of now", func(t *testing.T) {
		// given
		nowUTC := time.Date(2025, 8, 16, 20, 0, 0, 0, time.UTC)

		// when
		next, ok := Next(schedules, nowUTC.In(jakarta))

		// then
		require.True(t, ok)
		assert.Equal(t, "upacara", next.Id)
	})

	t.Run("should report none after the last schedule", func(t *testing.T) {
		// when
		_, ok := Next(schedules, time.Date(2025, 8, 18, 0, 0, 0, 0, jakarta))

		// then
		assert.False(t, ok)
	})
}

func TestRender(t *testing.T) {
	t.Run("should render all empty states", func(t *testing.T) {
		// when
		page := Render(nil, time.Now(), nil)

		// then
		assert.Nil(t, page.Next)
		assert.Equal(t, NextEmptyMessage, page.NextEmpty)
		assert.Equal(t, TimelineEmptyMessage, page.TimelineEmpty)
		assert.Equal(t, TableEmptyMessage, page.TableEmpty)
	})

	t.Run("should sort rows ascending and label missing location", func(t *testing.T) {
		// given
		schedules := []Schedule{
			{Id: "b", Title: "B", Date: "2025-08-17", Time: "13:00", Location: "Balai RW"},
			{Id: "a", Title: "A", Date: "2025-08-17", Time: "07:00"},
		}

		// when
		page := Render(schedules, time.Date(2025, 8, 20, 0, 0, 0, 0, jakarta), nil)

		// then
		require.Len(t, page.Rows, 2)
		assert.Equal(t, "a", page.Rows[0].Id)
		assert.Equal(t, "-", page.Rows[0].LocationLabel)
		assert.Equal(t, "Balai RW", page.Rows[1].LocationLabel)
		assert.Equal(t, NextEmptyMessage, page.NextEmpty)
		assert.Empty(t, page.TableEmpty)
	})
}
