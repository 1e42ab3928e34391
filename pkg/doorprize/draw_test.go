package doorprize

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequence returns its values in order, each reduced modulo n.
type sequence struct {
	values []int
	next   int
}

func (s *sequence) IntN(n int) int {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v % n
}

func TestDraw(t *testing.T) {
	records := []Doorprize{
		{Id: "a", Number: "001", Status: StatusTaken, Winner: "Siti", Detail: "Payung"},
		{Id: "b", Number: "002", Status: StatusAvailable},
		{Id: "c", Number: "003", Status: StatusAvailable, Detail: "Kipas Angin"},
	}

	t.Run("should pick among available only and assign a prize", func(t *testing.T) {
		// given
		rng := &sequence{values: []int{0, 2}}

		// when
		result, err := Draw(records, rng, DefaultPrizes)

		// then
		require.NoError(t, err)
		assert.Equal(t, "b", result.Doorprize.Id)
		assert.Equal(t, StatusTaken, result.Doorprize.Status)
		assert.Equal(t, DefaultPrizes[2], result.Doorprize.Detail)
		assert.True(t, result.PrizeAssigned)
		assert.Equal(t, StatusAvailable, records[1].Status)
	})

	t.Run("should keep an existing prize", func(t *testing.T) {
		// given
		rng := &sequence{values: []int{1}}

		// when
		result, err := Draw(records, rng, DefaultPrizes)

		// then
		require.NoError(t, err)
		assert.Equal(t, "c", result.Doorprize.Id)
		assert.Equal(t, "Kipas Angin", result.Doorprize.Detail)
		assert.False(t, result.PrizeAssigned)
	})

	t.Run("should never pick a taken coupon", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(1, 2))
		for range 200 {
			result, err := Draw(records, rng, DefaultPrizes)
			require.NoError(t, err)
			assert.NotEqual(t, "a", result.Doorprize.Id)
		}
	})

	t.Run("should fail when nothing is available", func(t *testing.T) {
		// when
		_, err := Draw(records[:1], &sequence{values: []int{0}}, DefaultPrizes)

		// then
		assert.ErrorIs(t, err, ErrNothingToDraw)
	})
}

func TestNextNumber(t *testing.T) {
	assert.Equal(t, 1, nextNumber(nil))
	assert.Equal(t, 13, nextNumber([]Doorprize{{Number: "007"}, {Number: "012"}, {Number: "VIP-1"}}))
}
