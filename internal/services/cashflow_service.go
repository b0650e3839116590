// Package services wires the session, stores and derivation engines into
// the operations the surfaces (CLI, HTTP) call.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cashflow/internal/codec"
	"cashflow/internal/core"
	"cashflow/internal/kvstore"
	"cashflow/internal/log"
	"cashflow/internal/session"
	"cashflow/internal/store"
)

// AppVersion is stamped into backups and stored under the version key.
const AppVersion = "0.2.0"

// ErrImportBlocked rejects a commit while the preview still carries row
// errors: the import gate is all-or-nothing.
var ErrImportBlocked = errors.New("import blocked: resolve row errors first")

// GoalWithStatus pairs a stored goal with its derived status.
type GoalWithStatus struct {
	Goal   core.FinancialGoal `json:"goal"`
	Status core.GoalStatus    `json:"status"`
}

// BudgetOverview is the monthly budget view: one row per known expense
// category plus the totals across them.
type BudgetOverview struct {
	Month  string              `json:"month"`
	Rows   []core.BudgetStatus `json:"rows"`
	Totals core.BudgetTotals   `json:"totals"`
}

// Service is the single entry point over one storage adapter. Stores are
// bound to the current user's scope and rebound whenever the slot changes.
type Service struct {
	mu       sync.Mutex
	kv       *kvstore.Adapter
	sessions *session.Manager
	logger   *log.Logger
	now      func() time.Time

	transactions *store.TransactionStore
	budgets      *store.BudgetStore
	goals        *store.GoalStore
}

func New(ctx context.Context, kv *kvstore.Adapter, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	s := &Service{
		kv:       kv,
		sessions: session.NewManager(kv, logger),
		logger:   logger.WithComponent(log.ComponentService),
		now:      time.Now,
	}

	version := ""
	if res := kv.Get(ctx, session.KeyAppVersion, &version); !res.Found || version == "" {
		kv.Set(ctx, session.KeyAppVersion, AppVersion)
	}

	s.rebind(ctx)
	return s
}

// rebind recreates the stores against the current scope. Called under no
// lock from New and with the lock held from the user mutations.
func (s *Service) rebind(ctx context.Context) {
	scope := s.sessions.Scope(ctx)
	s.transactions = store.NewTransactionStore(ctx, s.kv, scope, s.logger)
	s.budgets = store.NewBudgetStore(ctx, s.kv, scope, s.logger)
	s.goals = store.NewGoalStore(ctx, s.kv, scope, s.logger)
}

// stores snapshots the current store set under the lock. Every operation
// goes through it so a request never races a rebind, and multi-store
// operations (backup, restore) see one consistent scope.
func (s *Service) stores() (*store.TransactionStore, *store.BudgetStore, *store.GoalStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transactions, s.budgets, s.goals
}

// Close releases the storage backend.
func (s *Service) Close() error {
	return s.kv.Close()
}

// --- user slot ---

func (s *Service) CurrentUser(ctx context.Context) (core.User, bool) {
	return s.sessions.Current(ctx)
}

func (s *Service) CreateUser(ctx context.Context, name string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, err := s.sessions.CreateUser(ctx, name)
	if err != nil {
		return core.User{}, err
	}
	s.rebind(ctx)
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.DeleteUser(ctx, id)
	s.rebind(ctx)
}

func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.Logout(ctx)
	s.rebind(ctx)
}

// --- transactions ---

func (s *Service) Transactions() []core.Transaction {
	txs, _, _ := s.stores()
	return txs.List()
}

func (s *Service) AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	txs, _, _ := s.stores()
	return txs.Add(ctx, tx)
}

func (s *Service) EditTransaction(ctx context.Context, id string, fields core.Transaction) (core.Transaction, error) {
	txs, _, _ := s.stores()
	return txs.Edit(ctx, id, fields)
}

func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	txs, _, _ := s.stores()
	return txs.Delete(ctx, id)
}

// --- aggregation ---

// Summary recomputes the interval view from scratch on every call.
func (s *Service) Summary(start, end time.Time) core.Summary {
	txs, _, _ := s.stores()
	return core.SummarizeInterval(txs.List(), start, end)
}

// MonthSummary is Summary over one calendar month.
func (s *Service) MonthSummary(monthKey string) (core.Summary, error) {
	start, end, err := core.MonthInterval(monthKey)
	if err != nil {
		return core.Summary{}, err
	}
	return s.Summary(start, end), nil
}

func (s *Service) monthSpending(monthKey string) (map[string]float64, error) {
	start, end, err := core.MonthInterval(monthKey)
	if err != nil {
		return nil, err
	}
	txs, _, _ := s.stores()
	return core.SpendByCategory(core.FilterByInterval(txs.List(), start, end)), nil
}

// --- budgets ---

// BudgetStatus builds the live budget view for a month.
func (s *Service) BudgetStatus(monthKey string) (BudgetOverview, error) {
	spend, err := s.monthSpending(monthKey)
	if err != nil {
		return BudgetOverview{}, err
	}
	_, budgets, _ := s.stores()
	rows := core.BudgetStatuses(core.ExpenseCategories, budgets.List(), spend, monthKey)
	return BudgetOverview{
		Month:  monthKey,
		Rows:   rows,
		Totals: core.SumBudgetStatuses(rows),
	}, nil
}

// SetBudget upserts the limit for (category, month), snapshotting the
// category's current spend alongside it.
func (s *Service) SetBudget(ctx context.Context, category string, monthlyLimit float64, monthKey string) (core.Budget, error) {
	spend, err := s.monthSpending(monthKey)
	if err != nil {
		return core.Budget{}, err
	}
	_, budgets, _ := s.stores()
	return budgets.Set(ctx, category, monthlyLimit, monthKey, spend[category])
}

// --- goals ---

func (s *Service) Goals() []GoalWithStatus {
	_, _, goalStore := s.stores()
	goals := goalStore.List()
	now := s.now()
	out := make([]GoalWithStatus, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalWithStatus{Goal: g, Status: core.GoalStatusAt(g, now)})
	}
	return out
}

func (s *Service) OverallGoalProgress() float64 {
	_, _, goals := s.stores()
	return core.GoalOverallProgress(goals.List())
}

func (s *Service) AddGoal(ctx context.Context, goal core.FinancialGoal) (core.FinancialGoal, error) {
	_, _, goals := s.stores()
	return goals.Add(ctx, goal)
}

func (s *Service) UpdateGoalProgress(ctx context.Context, id string, currentAmount float64) (core.FinancialGoal, error) {
	_, _, goals := s.stores()
	return goals.UpdateProgress(ctx, id, currentAmount)
}

func (s *Service) DeleteGoal(ctx context.Context, id string) error {
	_, _, goals := s.stores()
	return goals.Delete(ctx, id)
}

// --- import / export ---

// PreviewImport parses delimited data without touching the store.
func (s *Service) PreviewImport(data string) codec.ImportResult {
	return codec.ParseCSV(data)
}

// CommitImport appends a previewed batch. Any row error blocks the whole
// commit; valid rows are never imported alongside failures.
func (s *Service) CommitImport(ctx context.Context, result codec.ImportResult) (int, error) {
	if result.HasErrors() {
		return 0, fmt.Errorf("%w (%d errors)", ErrImportBlocked, len(result.Errors))
	}
	txs, _, _ := s.stores()
	return txs.ImportMany(ctx, result.Preview), nil
}

// ExportCSV renders the transactions within [start, end] as a report.
func (s *Service) ExportCSV(start, end time.Time) string {
	txs, _, _ := s.stores()
	return codec.ExportCSV(core.FilterByInterval(txs.List(), start, end))
}

// Template returns the sample import file.
func (s *Service) Template() string {
	return codec.Template()
}

// --- backup / restore ---

// Backup captures all three collections of the active scope.
func (s *Service) Backup(ctx context.Context) ([]byte, error) {
	version := AppVersion
	s.kv.Get(ctx, session.KeyAppVersion, &version)
	txs, budgets, goals := s.stores()
	snapshot := codec.NewSnapshot(
		txs.List(),
		budgets.List(),
		goals.List(),
		s.now(),
		version,
	)
	return snapshot.Encode()
}

// RestoreBackup overwrites each collection present in the backup and leaves
// absent ones untouched. Malformed input fails before anything is applied.
func (s *Service) RestoreBackup(ctx context.Context, data []byte) error {
	restore, err := codec.DecodeRestore(data)
	if err != nil {
		return err
	}
	txs, budgets, goals := s.stores()
	if restore.Transactions != nil {
		txs.ReplaceAll(ctx, *restore.Transactions)
	}
	if restore.Budgets != nil {
		budgets.ReplaceAll(ctx, *restore.Budgets)
	}
	if restore.FinancialGoals != nil {
		goals.ReplaceAll(ctx, *restore.FinancialGoals)
	}
	s.logger.InfoContext(ctx, "Backup restored",
		log.FieldOperation, log.OpRestore,
		"transactions", restore.Transactions != nil,
		"budgets", restore.Budgets != nil,
		"goals", restore.FinancialGoals != nil)
	return nil
}
