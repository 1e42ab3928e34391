package storage

import (
	"testing"

	"github.com/kampung/agustusan/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresBackend(t *testing.T) {
	pool, _ := test_utils.TestWithDB(t)
	backend := NewPostgresBackend(pool)

	t.Run("should return ErrNotFound for absent key", func(t *testing.T) {
		// when
		_, err := backend.Get(ctx, "absent")

		// then
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should round trip through the store", func(t *testing.T) {
		// given
		store := NewStore(backend, nil)
		records := []record{{Id: "1", Name: "Lomba Balap Karung", Amount: 50000}}

		// when
		store.Save(ctx, "contests", records)
		store.Save(ctx, "contests", append(records, record{Id: "2"}))

		// then
		result := Load(ctx, store, "contests", []record{})
		assert.Len(t, result, 2)
		keys, err := backend.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"contests"}, keys)
	})
}
