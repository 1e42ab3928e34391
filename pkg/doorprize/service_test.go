package doorprize

import (
	"context"
	"math"
	"strconv"
	"testing"

	"github.com/kampung/agustusan/pkg/collection"
	"github.com/kampung/agustusan/pkg/storage"
	"github.com/kampung/agustusan/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func setupServiceTest(t *testing.T, rng Rand) (*ServiceImpl, *storage.Store) {
	t.Helper()
	store := storage.NewStore(storage.NewMemoryBackend(0), nil)
	doorprizes := collection.Load[Doorprize](ctx, CollectionKey, store, nil)
	return NewService(doorprizes, rng, DefaultPrizes), store
}

func numbers(doorprizes []Doorprize) []string {
	var result []string
	for _, d := range doorprizes {
		result = append(result, d.Number)
	}
	return result
}

func TestServiceImpl_Generate(t *testing.T) {
	t.Run("should generate 001 to 005 from an empty collection", func(t *testing.T) {
		// given
		service, store := setupServiceTest(t, nil)

		// when
		result, err := service.Generate(ctx, 5, 0)

		// then
		require.NoError(t, err)
		assert.Equal(t, 5, result.Requested)
		assert.Len(t, result.Created, 5)
		all := service.GetAll(ctx)
		assert.Equal(t, []string{"001", "002", "003", "004", "005"}, numbers(all))
		for _, d := range all {
			assert.Equal(t, StatusAvailable, d.Status)
			assert.Empty(t, d.Winner)
			assert.Empty(t, d.Detail)
		}
		assert.Equal(t, all, storage.Load(ctx, store, CollectionKey, []Doorprize{}))
	})

	t.Run("should continue after the highest number", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t, nil)
		_, err := service.Create(ctx, Input{Number: "010", Status: "available"})
		require.NoError(t, err)

		// when
		result, err := service.Generate(ctx, 2, 0)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"011", "012"}, numbers(result.Created))
	})

	t.Run("should skip colliding numbers and create N-M", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t, nil)
		_, err := service.Generate(ctx, 3, 0)
		require.NoError(t, err)

		// when
		result, err := service.Generate(ctx, 5, 2)

		// then
		require.NoError(t, err)
		assert.Equal(t, 5, result.Requested)
		assert.Equal(t, []string{"004", "005", "006"}, numbers(result.Created))
		all := numbers(service.GetAll(ctx))
		assert.Len(t, all, 6)
		seen := map[string]bool{}
		for _, n := range all {
			assert.False(t, seen[n], "duplicate number %s", n)
			seen[n] = true
		}
	})

	t.Run("should report zero created distinctly from an error", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t, nil)
		_, _ = service.Generate(ctx, 2, 0)

		// when
		result, err := service.Generate(ctx, 2, 1)

		// then
		require.NoError(t, err)
		assert.Empty(t, result.Created)
	})

	t.Run("should reject a non positive count", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t, nil)

		// when
		_, err := service.Generate(ctx, 0, 0)

		// then
		assert.ErrorIs(t, err, ErrInvalidCount)
		assert.Empty(t, service.GetAll(ctx))
	})

	t.Run("should reject a count above the limit", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t, nil)

		// when
		_, err := service.Generate(ctx, MaxGenerate+1, 0)

		// then
		assert.ErrorIs(t, err, ErrInvalidCount)
		assert.Empty(t, service.GetAll(ctx))
	})

	t.Run("should accept exactly the limit", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t, nil)

		// when
		result, err := service.Generate(ctx, MaxGenerate, 0)

		// then
		require.NoError(t, err)
		assert.Len(t, result.Created, MaxGenerate)
		assert.Equal(t, "999", result.Created[MaxGenerate-1].Number)
	})

	t.Run("should reject a start that would overflow", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t, nil)

		// when
		_, err := service.Generate(ctx, 5, math.MaxInt-2)

		// then
		assert.ErrorIs(t, err, ErrInvalidStart)
		assert.Empty(t, service.GetAll(ctx))
	})

	t.Run("should reject continuing after the largest possible number", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t, nil)
		_, err := service.Create(ctx, Input{Number: strconv.Itoa(math.MaxInt), Status: "available"})
		require.NoError(t, err)

		// when
		_, err = service.Generate(ctx, 1, 0)

		// then
		assert.ErrorIs(t, err, ErrInvalidStart)
		assert.Len(t, service.GetAll(ctx), 1)
	})
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should reject a duplicate number", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t, nil)
		_, err := service.Create(ctx, Input{Number: "001", Status: "available"})
		require.NoError(t, err)

		// when
		_, err = service.Create(ctx, Input{Number: "001", Status: "available"})

		// then
		assert.ErrorIs(t, err, ErrDuplicateNumber)
		assert.Len(t, service.GetAll(ctx), 1)
	})

	t.Run("should reject missing status", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t, nil)

		// when
		_, err := service.Create(ctx, Input{Number: "001"})

		// then
		assert.ErrorIs(t, err, view.ErrValidation)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should record the winner", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t, nil)
		created, _ := service.Create(ctx, Input{Number: "001", Status: "taken", Detail: "Payung"})

		// when
		updated, err := service.Update(ctx, created.Id, Input{Number: "001", Status: "taken", Winner: "Pak RT", Detail: "Payung"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "Pak RT", updated.Winner)
		found, _ := service.Get(ctx, created.Id)
		assert.Equal(t, updated, found)
	})

	t.Run("should refuse taken to available", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t, nil)
		created, _ := service.Create(ctx, Input{Number: "001", Status: "taken"})

		// when
		_, err := service.Update(ctx, created.Id, Input{Number: "001", Status: "available"})

		// then
		assert.ErrorIs(t, err, ErrInvalidTransition)
		found, _ := service.Get(ctx, created.Id)
		assert.Equal(t, StatusTaken, found.Status)
	})

	t.Run("should keep numbers unique", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t, nil)
		_, _ = service.Create(ctx, Input{Number: "001", Status: "available"})
		second, _ := service.Create(ctx, Input{Number: "002", Status: "available"})

		// when
		_, err := service.Update(ctx, second.Id, Input{Number: "001", Status: "available"})

		// then
		assert.ErrorIs(t, err, ErrDuplicateNumber)
	})

	t.Run("should report unknown id", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t, nil)

		// when
		_, err := service.Update(ctx, "missing", Input{Number: "001", Status: "available"})

		// then
		assert.ErrorIs(t, err, ErrDoorprizeNotFound)
	})
}

func TestServiceImpl_Draw(t *testing.T) {
	t.Run("should transition exactly one available coupon", func(t *testing.T) {
		// given
		service, store := setupServiceTest(t, &sequence{values: []int{1, 0}})
		_, _ = service.Generate(ctx, 3, 0)
		before := service.GetAll(ctx)

		// when
		result, err := service.Draw(ctx)

		// then
		require.NoError(t, err)
		assert.Equal(t, "002", result.Doorprize.Number)
		assert.Equal(t, DefaultPrizes[0], result.Doorprize.Detail)
		after := service.GetAll(ctx)
		changed := 0
		for i := range after {
			if after[i] != before[i] {
				changed++
				assert.Equal(t, StatusTaken, after[i].Status)
			}
		}
		assert.Equal(t, 1, changed)
		assert.Equal(t, after, storage.Load(ctx, store, CollectionKey, []Doorprize{}))
	})

	t.Run("should fail without state change when all are taken", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t, nil)
		_, _ = service.Create(ctx, Input{Number: "001", Status: "taken"})
		before := service.GetAll(ctx)

		// when
		_, err := service.Draw(ctx)

		// then
		assert.ErrorIs(t, err, ErrNothingToDraw)
		assert.Equal(t, before, service.GetAll(ctx))
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should remove only when confirmed", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t, nil)
		created, _ := service.Create(ctx, Input{Number: "001", Status: "available"})

		// when
		declined := service.Delete(ctx, created.Id, view.Confirmed(false))
		confirmed := service.Delete(ctx, created.Id, view.Confirmed(true))

		// then
		assert.ErrorIs(t, declined, view.ErrNotConfirmed)
		assert.NoError(t, confirmed)
		assert.Empty(t, service.GetAll(ctx))
	})
}
