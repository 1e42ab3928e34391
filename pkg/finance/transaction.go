package finance

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kampung/agustusan/pkg/collection"
	"github.com/shopspring/decimal"
)

const CollectionKey = "financialTransactions"

var ErrTransactionNotFound = fmt.Errorf("transaction %w", collection.ErrNotFound)

type Type string

const (
	Income  Type = "income"
	Expense Type = "expense"
)

// ParseType accepts the English names and the Indonesian ones older
// records were stored with.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "pemasukan":
		return Income, nil
	case "expense", "pengeluaran":
		return Expense, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// UnmarshalJSON maps legacy names and keeps any other stored value as is, so
// one unknown row never makes the whole collection unreadable. Such rows are
// listed but counted neither as income nor as expense.
func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if parsed, err := ParseType(s); err == nil {
		*t = parsed
		return nil
	}
	*t = Type(strings.TrimSpace(s))
	return nil
}

func (t Type) Label() string {
	switch t {
	case Income:
		return "Pemasukan"
	case Expense:
		return "Pengeluaran"
	default:
		return "-"
	}
}

type Transaction struct {
	Id          string          `json:"id"`
	Type        Type            `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
}

func (t Transaction) RecordId() string {
	return t.Id
}

// Input is a submitted transaction form.
type Input struct {
	Type        string
	Description string
	Amount      string
}
