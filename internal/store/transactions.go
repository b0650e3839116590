// Package store implements the persistent collections: transactions,
// budgets and goals, each living under one scoped storage key.
//
// Each store loads its collection once, keeps the in-memory copy
// authoritative and persists best-effort after every mutation. A failed
// write therefore never loses the mutation for the running process; it only
// means persisted state lags until the next successful write.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"cashflow/internal/core"
	"cashflow/internal/kvstore"
	"cashflow/internal/log"
	"cashflow/internal/session"
)

// TransactionStore is the ordered transaction collection. Duplicates by
// (date, description) are allowed by design; only ids are unique.
type TransactionStore struct {
	mu     sync.Mutex
	kv     *kvstore.Adapter
	key    string
	items  []core.Transaction
	logger *log.Logger
}

func NewTransactionStore(ctx context.Context, kv *kvstore.Adapter, scope session.Scope, logger *log.Logger) *TransactionStore {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	s := &TransactionStore{
		kv:     kv,
		key:    scope.Key(session.KeyTransactions),
		logger: logger.WithComponent(log.ComponentStore),
	}
	s.items = []core.Transaction{}
	kv.Get(ctx, s.key, &s.items)
	return s
}

// List returns a copy of the collection in insertion order.
func (s *TransactionStore) List() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...)
}

// Add validates tx, assigns a fresh id and appends it.
func (s *TransactionStore) Add(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	tx.ID = uuid.NewString()
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, tx)
	s.persist(ctx)
	return tx, nil
}

// Edit replaces every field of the matching record except its id.
// Returns core.ErrNotFound (leaving the collection untouched) for an
// unknown id.
func (s *TransactionStore) Edit(ctx context.Context, id string, fields core.Transaction) (core.Transaction, error) {
	fields.ID = id
	if err := fields.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.items {
		if t.ID == id {
			s.items[i] = fields
			s.persist(ctx)
			return fields, nil
		}
	}
	return core.Transaction{}, core.ErrNotFound
}

// Delete removes the matching record. Unknown ids report core.ErrNotFound
// and change nothing.
func (s *TransactionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.items {
		if t.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return core.ErrNotFound
}

// ImportMany appends a batch of already-validated records to the end,
// preserving their order. No de-duplication against existing records.
func (s *TransactionStore) ImportMany(ctx context.Context, records []core.Transaction) int {
	if len(records) == 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, records...)
	s.persist(ctx)
	s.logger.InfoContext(ctx, "Transactions imported",
		log.FieldOperation, log.OpImport, log.FieldCount, len(records))
	return len(records)
}

// ReplaceAll swaps the whole collection, used by snapshot restore.
func (s *TransactionStore) ReplaceAll(ctx context.Context, records []core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.Transaction(nil), records...)
	s.persist(ctx)
}

func (s *TransactionStore) persist(ctx context.Context) {
	s.kv.Set(ctx, s.key, s.items)
}
