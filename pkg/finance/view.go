package finance

import (
	"sort"
	"strings"
	"time"

	"github.com/kampung/agustusan/pkg/view"
	"github.com/shopspring/decimal"
)

const (
	EmptyMessage   = "Belum ada transaksi."
	DeleteQuestion = "Apakah Anda yakin ingin menghapus transaksi ini?"

	CategoryDecoration = "Dekorasi & Perlengkapan"
	CategoryPrizes     = "Hadiah Lomba"
	CategoryFood       = "Konsumsi"
	CategoryDoorprize  = "Doorprize"
	CategoryOther      = "Lain-lain"
)

// Categories lists the expense categories in display order.
var Categories = []string{CategoryDecoration, CategoryPrizes, CategoryFood, CategoryDoorprize, CategoryOther}

// Categorize maps an expense description to its category by keyword. The
// first matching rule wins.
func Categorize(description string) string {
	desc := strings.ToLower(description)
	switch {
	case strings.Contains(desc, "dekorasi") || strings.Contains(desc, "perlengkapan"):
		return CategoryDecoration
	case strings.Contains(desc, "hadiah") && strings.Contains(desc, "lomba"):
		return CategoryPrizes
	case strings.Contains(desc, "konsumsi"):
		return CategoryFood
	case strings.Contains(desc, "doorprize"):
		return CategoryDoorprize
	default:
		return CategoryOther
	}
}

type CategoryTotal struct {
	Name  string
	Total decimal.Decimal
}

type Bar struct {
	Label   string
	Amount  decimal.Decimal
	Percent int64
	Class   string
}

type Summary struct {
	Income           decimal.Decimal
	Expense          decimal.Decimal
	Balance          decimal.Decimal
	AveragePerFamily decimal.Decimal
	// Categories holds every non-zero category plus CategoryOther.
	Categories []CategoryTotal
	Chart      []Bar
}

// Summarize totals the transactions. families divides the income into the
// average contribution per family; zero or less yields a zero average.
func Summarize(transactions []Transaction, families int) Summary {
	s := Summary{Income: decimal.Zero, Expense: decimal.Zero, AveragePerFamily: decimal.Zero}
	byCategory := make(map[string]decimal.Decimal, len(Categories))
	for _, name := range Categories {
		byCategory[name] = decimal.Zero
	}

	for _, t := range transactions {
		switch t.Type {
		case Income:
			s.Income = s.Income.Add(t.Amount)
		case Expense:
			s.Expense = s.Expense.Add(t.Amount)
			category := Categorize(t.Description)
			byCategory[category] = byCategory[category].Add(t.Amount)
		}
	}
	s.Balance = s.Income.Sub(s.Expense)
	if families > 0 {
		s.AveragePerFamily = s.Income.Div(decimal.NewFromInt(int64(families)))
	}

	for _, name := range Categories {
		if total := byCategory[name]; !total.IsZero() || name == CategoryOther {
			s.Categories = append(s.Categories, CategoryTotal{Name: name, Total: total})
		}
	}
	s.Chart = chart(s, byCategory)
	return s
}

func chart(s Summary, byCategory map[string]decimal.Decimal) []Bar {
	bars := []Bar{
		{Label: "Pemasukan", Amount: s.Income, Class: "bar-income"},
		{Label: "Pengeluaran Total", Amount: s.Expense, Class: "bar-expense"},
		{Label: "Sisa Dana", Amount: s.Balance, Class: "bar-balance"},
	}
	for _, name := range Categories {
		bars = append(bars, Bar{Label: name, Amount: byCategory[name], Class: "bar-category"})
	}

	peak := decimal.Zero
	for _, b := range bars {
		if abs := b.Amount.Abs(); abs.GreaterThan(peak) {
			peak = abs
		}
	}
	if peak.IsZero() {
		return bars
	}
	hundred := decimal.NewFromInt(100)
	for i := range bars {
		bars[i].Percent = bars[i].Amount.Abs().Mul(hundred).Div(peak).Round(0).IntPart()
	}
	return bars
}

// SortByDateDesc returns the transactions newest first. Transactions on the
// same date keep their insertion order.
func SortByDateDesc(transactions []Transaction) []Transaction {
	sorted := append([]Transaction(nil), transactions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return parseDate(sorted[i].Date).After(parseDate(sorted[j].Date))
	})
	return sorted
}

func parseDate(s string) time.Time {
	t, err := time.Parse(view.DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

type Row struct {
	Transaction
	TypeLabel string
	TypeClass string
	Actions   []view.RowAction
}

// PageView is the data the keuangan fragment is rendered with.
type PageView struct {
	Summary
	Rows  []Row
	Empty string
	// Form prefills the transaction form; its Id is set while editing.
	Form Transaction
}

func Render(transactions []Transaction, families int, editing *Transaction) PageView {
	p := PageView{Summary: Summarize(transactions, families)}
	if len(transactions) == 0 {
		p.Empty = EmptyMessage
	}
	for _, t := range SortByDateDesc(transactions) {
		class := "text-muted"
		switch t.Type {
		case Income:
			class = "text-success"
		case Expense:
			class = "text-danger"
		}
		p.Rows = append(p.Rows, Row{
			Transaction: t,
			TypeLabel:   t.Type.Label(),
			TypeClass:   class,
			Actions:     view.RowActions(t.Id, DeleteQuestion),
		})
	}
	if editing != nil {
		p.Form = *editing
	} else {
		p.Form = Transaction{Type: Income}
	}
	return p
}
