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

// seedGoals are the defaults a fresh install starts with. They are written
// only when the goals key has never been stored; an explicitly emptied list
// stays empty.
func seedGoals() []core.FinancialGoal {
	return []core.FinancialGoal{
		{
			ID:            "1",
			Title:         "Emergency Fund",
			TargetAmount:  50000000,
			CurrentAmount: 15000000,
			Deadline:      "2024-12-31",
			Category:      "Emergency Fund",
			Description:   "6 months of expenses",
		},
		{
			ID:            "2",
			Title:         "Vacation to Japan",
			TargetAmount:  25000000,
			CurrentAmount: 8000000,
			Deadline:      "2024-06-15",
			Category:      "Vacation",
			Description:   "Family trip to Japan",
		},
	}
}

// GoalStore holds the financial goals.
type GoalStore struct {
	mu     sync.Mutex
	kv     *kvstore.Adapter
	key    string
	items  []core.FinancialGoal
	logger *log.Logger
}

func NewGoalStore(ctx context.Context, kv *kvstore.Adapter, scope session.Scope, logger *log.Logger) *GoalStore {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	s := &GoalStore{
		kv:     kv,
		key:    scope.Key(session.KeyFinancialGoals),
		logger: logger.WithComponent(log.ComponentStore),
	}
	s.items = []core.FinancialGoal{}
	if res := kv.Get(ctx, s.key, &s.items); !res.Found {
		s.items = seedGoals()
	}
	return s
}

// List returns a copy of the goals in insertion order.
func (s *GoalStore) List() []core.FinancialGoal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.FinancialGoal(nil), s.items...)
}

// Add validates the goal, assigns a fresh id and appends it.
func (s *GoalStore) Add(ctx context.Context, goal core.FinancialGoal) (core.FinancialGoal, error) {
	goal.ID = uuid.NewString()
	if err := goal.Validate(); err != nil {
		return core.FinancialGoal{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, goal)
	s.persist(ctx)
	return goal, nil
}

// UpdateProgress sets the goal's current amount directly. The amount may
// exceed the target; progress past 100% is legitimate over-saving.
func (s *GoalStore) UpdateProgress(ctx context.Context, id string, currentAmount float64) (core.FinancialGoal, error) {
	if currentAmount < 0 {
		return core.FinancialGoal{}, core.ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.items {
		if g.ID == id {
			s.items[i].CurrentAmount = currentAmount
			s.persist(ctx)
			return s.items[i], nil
		}
	}
	return core.FinancialGoal{}, core.ErrNotFound
}

// Delete removes the matching goal; unknown ids report core.ErrNotFound.
func (s *GoalStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.items {
		if g.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return core.ErrNotFound
}

// ReplaceAll swaps the whole collection, used by snapshot restore.
func (s *GoalStore) ReplaceAll(ctx context.Context, records []core.FinancialGoal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.FinancialGoal(nil), records...)
	s.persist(ctx)
}

func (s *GoalStore) persist(ctx context.Context) {
	s.kv.Set(ctx, s.key, s.items)
}
