package finance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kampung/agustusan/internal/utils"
	"github.com/kampung/agustusan/pkg/collection"
	"github.com/kampung/agustusan/pkg/view"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const invalidInputMessage = "Mohon lengkapi semua bidang transaksi yang valid."

var ErrRemoteDisabled = errors.New("remote transaction source is not configured")

type Service interface {
	GetAll(ctx context.Context) []Transaction
	Get(ctx context.Context, id string) (Transaction, error)
	Create(ctx context.Context, input Input) (Transaction, error)
	Update(ctx context.Context, id string, input Input) (Transaction, error)
	Delete(ctx context.Context, id string, confirm view.Confirmation) error
	ImportRemote(ctx context.Context) (int, error)
}

type ServiceImpl struct {
	transactions *collection.Collection[Transaction]
	remote       RemoteSource
	clock        utils.Clock
}

// NewService creates the finance service. remote may be nil, in which case
// ImportRemote returns ErrRemoteDisabled.
func NewService(transactions *collection.Collection[Transaction], remote RemoteSource, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{transactions: transactions, remote: remote, clock: clock}
}

func (s *ServiceImpl) GetAll(ctx context.Context) []Transaction {
	return s.transactions.All()
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Transaction, error) {
	t, ok := s.transactions.Find(id)
	if !ok {
		return Transaction{}, ErrTransactionNotFound
	}
	return t, nil
}

func (s *ServiceImpl) Create(ctx context.Context, input Input) (Transaction, error) {
	t, err := validate(input)
	if err != nil {
		return Transaction{}, err
	}
	t.Id = uuid.NewString()
	t.Date = utils.Today(s.clock)

	if err := s.transactions.Append(ctx, t); err != nil {
		return Transaction{}, err
	}
	log.Debugf("created transaction %s (%s %s)", t.Id, t.Type, t.Amount)
	return t, nil
}

// Update replaces type, description and amount. The date of the original
// entry is kept.
func (s *ServiceImpl) Update(ctx context.Context, id string, input Input) (Transaction, error) {
	changes, err := validate(input)
	if err != nil {
		return Transaction{}, err
	}
	updated, err := s.transactions.Update(ctx, id, func(t Transaction) (Transaction, error) {
		t.Type = changes.Type
		t.Description = changes.Description
		t.Amount = changes.Amount
		return t, nil
	})
	if errors.Is(err, collection.ErrNotFound) {
		log.Warnf("transaction not updated, it does not exist (%s)", id)
		return Transaction{}, ErrTransactionNotFound
	}
	return updated, err
}

func (s *ServiceImpl) Delete(ctx context.Context, id string, confirm view.Confirmation) error {
	if confirm == nil || !confirm() {
		return view.ErrNotConfirmed
	}
	if err := s.transactions.Remove(ctx, id); err != nil {
		if errors.Is(err, collection.ErrNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}
	return nil
}

// ImportRemote appends the rows of the remote source that were not imported
// before and returns how many were added. Rows that fail validation are
// skipped.
func (s *ServiceImpl) ImportRemote(ctx context.Context) (int, error) {
	if s.remote == nil {
		return 0, ErrRemoteDisabled
	}
	rows, err := s.remote.FetchTransactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch remote transactions: %w", err)
	}

	var imported int
	err = s.transactions.Mutate(ctx, "create", func(current []Transaction) ([]Transaction, []string, error) {
		known := make(map[string]bool, len(current))
		for _, t := range current {
			known[t.Id] = true
		}
		var ids []string
		for _, row := range rows {
			t, err := row.toTransaction()
			if err != nil {
				log.Warnf("skipping remote transaction %d: %v", row.Id, err)
				continue
			}
			if known[t.Id] {
				continue
			}
			known[t.Id] = true
			current = append(current, t)
			ids = append(ids, t.Id)
		}
		imported = len(ids)
		return current, ids, nil
	})
	if err != nil {
		return 0, err
	}
	log.Infof("imported %d of %d remote transaction(s)", imported, len(rows))
	return imported, nil
}

func validate(input Input) (Transaction, error) {
	txType, err := ParseType(input.Type)
	if err != nil {
		return Transaction{}, view.Invalid(invalidInputMessage)
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return Transaction{}, view.Invalid(invalidInputMessage)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(input.Amount))
	if err != nil || !amount.IsPositive() {
		return Transaction{}, view.Invalid(invalidInputMessage)
	}
	return Transaction{Type: txType, Description: description, Amount: amount}, nil
}
