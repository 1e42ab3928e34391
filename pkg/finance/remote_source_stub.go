package finance

import (
	"context"
	"sync"
)

type RemoteSourceStub struct {
	mu           sync.Mutex
	transactions []RemoteTransaction
	err          error
	calls        int
}

func NewRemoteSourceStub(transactions ...RemoteTransaction) *RemoteSourceStub {
	return &RemoteSourceStub{transactions: transactions}
}

func (s *RemoteSourceStub) FetchTransactions(ctx context.Context) ([]RemoteTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return append([]RemoteTransaction(nil), s.transactions...), nil
}

// GetAll lets the stub stand in for a RemoteRepository.
func (s *RemoteSourceStub) GetAll(ctx context.Context) ([]RemoteTransaction, error) {
	return s.FetchTransactions(ctx)
}

func (s *RemoteSourceStub) SetTransactions(transactions ...RemoteTransaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = transactions
}

func (s *RemoteSourceStub) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *RemoteSourceStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
