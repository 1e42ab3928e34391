package dashboard

import (
	"context"
	"net/url"

	"github.com/kampung/agustusan/pkg/contest"
	"github.com/kampung/agustusan/pkg/doorprize"
	"github.com/kampung/agustusan/pkg/finance"
	"github.com/kampung/agustusan/pkg/view"
	"github.com/shopspring/decimal"
)

const Page = "dashboard"

type Stats struct {
	Families    int
	Contests    int
	Income      decimal.Decimal
	Doorprizes  int
	IncomeLabel string
}

func Compute(transactions []finance.Transaction, contests []contest.Contest, doorprizes []doorprize.Doorprize, families int) Stats {
	income := finance.Summarize(transactions, families).Income
	return Stats{
		Families:    families,
		Contests:    len(contests),
		Income:      income,
		Doorprizes:  len(doorprizes),
		IncomeLabel: view.FormatNumber(income),
	}
}

type Handler struct {
	finance    finance.Service
	contests   contest.Service
	doorprizes doorprize.Service
	families   int
}

func NewHandler(financeService finance.Service, contestService contest.Service, doorprizeService doorprize.Service, families int) *Handler {
	return &Handler{finance: financeService, contests: contestService, doorprizes: doorprizeService, families: families}
}

func (h *Handler) PageData(ctx context.Context, params url.Values) (any, error) {
	return Compute(h.finance.GetAll(ctx), h.contests.GetAll(ctx), h.doorprizes.GetAll(ctx), h.families), nil
}
