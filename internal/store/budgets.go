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

// BudgetStore holds the per-category monthly limits. The composite key is
// (category, month): setting a budget for an existing pair replaces it.
// Budgets are never deleted individually, only replaced wholesale.
type BudgetStore struct {
	mu     sync.Mutex
	kv     *kvstore.Adapter
	key    string
	items  []core.Budget
	logger *log.Logger
}

func NewBudgetStore(ctx context.Context, kv *kvstore.Adapter, scope session.Scope, logger *log.Logger) *BudgetStore {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	s := &BudgetStore{
		kv:     kv,
		key:    scope.Key(session.KeyBudgets),
		logger: logger.WithComponent(log.ComponentStore),
	}
	s.items = []core.Budget{}
	kv.Get(ctx, s.key, &s.items)
	return s
}

// List returns a copy of all stored budgets, all months included.
func (s *BudgetStore) List() []core.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Budget(nil), s.items...)
}

// ForMonth returns the budgets whose month matches the given key.
func (s *BudgetStore) ForMonth(monthKey string) []core.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Budget, 0, len(s.items))
	for _, b := range s.items {
		if b.Month == monthKey {
			out = append(out, b)
		}
	}
	return out
}

// Set upserts the budget for (category, month). Any existing entry for the
// pair is dropped before the new one is appended. spent is the advisory
// snapshot of the category's spend at the time of setting.
func (s *BudgetStore) Set(ctx context.Context, category string, monthlyLimit float64, monthKey string, spent float64) (core.Budget, error) {
	budget := core.Budget{
		ID:           uuid.NewString(),
		Category:     category,
		MonthlyLimit: monthlyLimit,
		Spent:        spent,
		Month:        monthKey,
	}
	if err := budget.Validate(); err != nil {
		return core.Budget{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, b := range s.items {
		if b.Category == budget.Category && b.Month == budget.Month {
			continue
		}
		kept = append(kept, b)
	}
	s.items = append(kept, budget)
	s.persist(ctx)
	s.logger.InfoContext(ctx, "Budget set",
		log.FieldOperation, log.OpUpdate,
		log.FieldCategory, category,
		log.FieldMonth, monthKey,
		log.FieldAmount, monthlyLimit)
	return budget, nil
}

// ReplaceAll swaps the whole collection, used by snapshot restore.
func (s *BudgetStore) ReplaceAll(ctx context.Context, records []core.Budget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.Budget(nil), records...)
	s.persist(ctx)
}

func (s *BudgetStore) persist(ctx context.Context) {
	s.kv.Set(ctx, s.key, s.items)
}
