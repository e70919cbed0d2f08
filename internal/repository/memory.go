package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/anyulbade/card-reward-optimizer/internal/model"
)

// MemoryStore keeps the ledger and settings in process memory. It satisfies the
// same contracts as the PostgreSQL repositories and is safe for concurrent use.
type MemoryStore struct {
	mu          sync.RWMutex
	txns        []model.Transaction // recording order, oldest first
	ids         map[string]struct{}
	currency    model.Currency
	hasCurrency bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ids: make(map[string]struct{})}
}

func (s *MemoryStore) Insert(_ context.Context, txn *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.ids[txn.ID]; dup {
		return fmt.Errorf("insert transaction: duplicate id %s", txn.ID)
	}
	s.ids[txn.ID] = struct{}{}
	s.txns = append(s.txns, *txn)
	return nil
}

// InsertBatch is all-or-nothing, like the database version.
func (s *MemoryStore) InsertBatch(_ context.Context, txns []*model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(txns))
	for i, txn := range txns {
		_, dup := s.ids[txn.ID]
		_, dupBatch := seen[txn.ID]
		if dup || dupBatch {
			return fmt.Errorf("insert transaction %d: duplicate id %s", i, txn.ID)
		}
		seen[txn.ID] = struct{}{}
	}

	for _, txn := range txns {
		s.ids[txn.ID] = struct{}{}
		s.txns = append(s.txns, *txn)
	}
	return nil
}

// List returns a snapshot, newest-recorded first.
func (s *MemoryStore) List(_ context.Context) ([]model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := slices.Clone(s.txns)
	slices.Reverse(out)
	return out, nil
}

func (s *MemoryStore) DeleteAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.txns))
	s.txns = nil
	s.ids = make(map[string]struct{})
	return n, nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

func (s *MemoryStore) GetCurrency(_ context.Context) (model.Currency, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currency, s.hasCurrency, nil
}

func (s *MemoryStore) SetCurrency(_ context.Context, cur model.Currency) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currency = cur
	s.hasCurrency = true
	return nil
}

func (s *MemoryStore) ClearCurrency(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currency = model.Currency{}
	s.hasCurrency = false
	return nil
}
