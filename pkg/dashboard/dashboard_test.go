package dashboard

import (
	"testing"

	"github.com/kampung/agustusan/pkg/contest"
	"github.com/kampung/agustusan/pkg/doorprize"
	"github.com/kampung/agustusan/pkg/finance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	t.Run("should count records and total income only", func(t *testing.T) {
		// given
		transactions := []finance.Transaction{
			{Id: "1", Type: finance.Income, Description: "Iuran", Amount: decimal.NewFromInt(1250000)},
			{Id: "2", Type: finance.Expense, Description: "Konsumsi", Amount: decimal.NewFromInt(400000)},
		}
		contests := []contest.Contest{{Id: "a"}, {Id: "b"}}
		doorprizes := []doorprize.Doorprize{{Id: "x"}}

		// when
		stats := Compute(transactions, contests, doorprizes, 48)

		// then
		assert.Equal(t, 48, stats.Families)
		assert.Equal(t, 2, stats.Contests)
		assert.Equal(t, 1, stats.Doorprizes)
		assert.True(t, decimal.NewFromInt(1250000).Equal(stats.Income))
		assert.Equal(t, "1.250.000", stats.IncomeLabel)
	})

	t.Run("should show zeros for empty collections", func(t *testing.T) {
		// when
		stats := Compute(nil, nil, nil, 48)

		// then
		assert.Zero(t, stats.Contests)
		assert.Zero(t, stats.Doorprizes)
		assert.Equal(t, "0", stats.IncomeLabel)
	})
}
