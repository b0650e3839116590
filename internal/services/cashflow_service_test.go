package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"cashflow/internal/core"
	"cashflow/internal/kvstore"
	"cashflow/internal/session"
)

func newService(t *testing.T) *Service {
	t.Helper()
	kv := kvstore.NewAdapter(kvstore.NewMemoryStore(), nil)
	s := New(context.Background(), kv, nil)
	s.now = func() time.Time { return time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC) }
	return s
}

func addTx(t *testing.T, s *Service, date string, amount float64, tt core.TransactionType, category string) core.Transaction {
	t.Helper()
	tx, err := s.AddTransaction(context.Background(), core.Transaction{
		Date:        date,
		Description: "tx " + date,
		Amount:      amount,
		Type:        tt,
		Category:    category,
	})
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	return tx
}

func TestMonthSummary(t *testing.T) {
	s := newService(t)
	addTx(t, s, "2024-01-05", 5000000, core.Income, "Gaji")
	addTx(t, s, "2024-01-10", 180000, core.Expense, "Makanan")
	addTx(t, s, "2024-02-01", 99999, core.Expense, "Makanan") // outside month

	summary, err := s.MonthSummary("2024-01")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Income != 5000000 || summary.Expenses != 180000 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Net != summary.Income-summary.Expenses {
		t.Fatal("net invariant violated")
	}
	if len(summary.Transactions) != 2 {
		t.Fatalf("expected 2 filtered transactions, got %d", len(summary.Transactions))
	}
}

func TestBudgetStatusScenario(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	addTx(t, s, "2024-01-10", 180000, core.Expense, "Makanan")
	if _, err := s.SetBudget(ctx, "Makanan", 200000, "2024-01"); err != nil {
		t.Fatalf("set budget: %v", err)
	}

	overview, err := s.BudgetStatus("2024-01")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	var row core.BudgetStatus
	for _, r := range overview.Rows {
		if r.Category == "Makanan" {
			row = r
		}
	}
	if row.Percentage != 90 {
		t.Fatalf("percentage: expected 90, got %v", row.Percentage)
	}
	if !row.HasWarning || row.IsOverBudget {
		t.Fatalf("flags: hasWarning=%v isOverBudget=%v", row.HasWarning, row.IsOverBudget)
	}
}

func TestSetBudgetSnapshotsSpend(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	addTx(t, s, "2024-01-10", 120000, core.Expense, "Makanan")

	budget, err := s.SetBudget(ctx, "Makanan", 200000, "2024-01")
	if err != nil {
		t.Fatal(err)
	}
	if budget.Spent != 120000 {
		t.Fatalf("advisory spent snapshot: expected 120000, got %v", budget.Spent)
	}
}

func TestImportGate(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	dirty := s.PreviewImport(strings.Join([]string{
		"date,description,type,category,amount",
		"2024-01-15,Coffee,expense,Makanan,25000",
		"bad-date,Broken,expense,Makanan,100",
	}, "\n"))
	if len(dirty.Preview) != 1 || len(dirty.Errors) != 1 {
		t.Fatalf("unexpected preview: %+v", dirty)
	}

	// Any error blocks the whole batch, valid rows included.
	if _, err := s.CommitImport(ctx, dirty); !errors.Is(err, ErrImportBlocked) {
		t.Fatalf("expected ErrImportBlocked, got %v", err)
	}
	if len(s.Transactions()) != 0 {
		t.Fatal("blocked import leaked rows into the store")
	}

	clean := s.PreviewImport("date,description,type,category,amount\n2024-01-15,Coffee,expense,Makanan,25000")
	n, err := s.CommitImport(ctx, clean)
	if err != nil || n != 1 {
		t.Fatalf("commit: n=%d err=%v", n, err)
	}
	if len(s.Transactions()) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(s.Transactions()))
	}
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	addTx(t, s, "2024-01-10", 180000, core.Expense, "Makanan")
	s.SetBudget(ctx, "Makanan", 200000, "2024-01")
	wantTxs := s.Transactions()
	wantBudgets := s.budgets.List()
	wantGoals := s.goals.List()

	raw, err := s.Backup(ctx)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}

	// Wipe everything, then restore.
	s.transactions.ReplaceAll(ctx, nil)
	s.budgets.ReplaceAll(ctx, nil)
	s.goals.ReplaceAll(ctx, nil)
	if err := s.RestoreBackup(ctx, raw); err != nil {
		t.Fatalf("restore: %v", err)
	}

	if len(s.Transactions()) != len(wantTxs) || s.Transactions()[0].ID != wantTxs[0].ID {
		t.Fatalf("transactions did not round-trip")
	}
	if len(s.budgets.List()) != len(wantBudgets) {
		t.Fatal("budgets did not round-trip")
	}
	if len(s.goals.List()) != len(wantGoals) {
		t.Fatal("goals did not round-trip")
	}
}

func TestRestorePartialLeavesAbsentCollections(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	addTx(t, s, "2024-01-10", 180000, core.Expense, "Makanan")
	goalsBefore := s.goals.List()

	err := s.RestoreBackup(ctx, []byte(`{"transactions": []}`))
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if len(s.Transactions()) != 0 {
		t.Fatal("present collection should overwrite")
	}
	if len(s.goals.List()) != len(goalsBefore) {
		t.Fatal("absent collection must stay untouched")
	}
}

func TestRestoreMalformedAppliesNothing(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	addTx(t, s, "2024-01-10", 180000, core.Expense, "Makanan")

	if err := s.RestoreBackup(ctx, []byte(`{broken`)); err == nil {
		t.Fatal("expected error for malformed backup")
	}
	if len(s.Transactions()) != 1 {
		t.Fatal("malformed restore must apply nothing")
	}
}

func TestUserLifecycleRebindsStores(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	// Anonymous data lives under the unscoped keys.
	addTx(t, s, "2024-01-10", 100, core.Expense, "Makanan")

	bob, err := s.CreateUser(ctx, "Bob")
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Transactions()) != 0 {
		t.Fatal("new user must start with an empty scope")
	}
	addTx(t, s, "2024-01-11", 200, core.Expense, "Makanan")

	// Creating Alice purges Bob's data and rebinds to her empty scope.
	if _, err := s.CreateUser(ctx, "Alice"); err != nil {
		t.Fatal(err)
	}
	if len(s.Transactions()) != 0 {
		t.Fatal("Bob's data leaked into Alice's scope")
	}
	var leftover []core.Transaction
	bobKey := session.ScopeFor(bob.ID).Key(session.KeyTransactions)
	if res := s.kv.Get(ctx, bobKey, &leftover); res.Found {
		t.Fatalf("Bob's scoped key %s survived the purge", bobKey)
	}

	s.Logout(ctx)
	if _, ok := s.CurrentUser(ctx); ok {
		t.Fatal("logout should clear the slot")
	}
	// Anonymous data is visible again after logout.
	if len(s.Transactions()) != 1 {
		t.Fatalf("anonymous scope lost its data: %d", len(s.Transactions()))
	}
}

// Readers must never observe a half-swapped store set while the user slot
// changes underneath them.
func TestReadersDoNotRaceUserSwitch(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	addTx(t, s, "2024-01-10", 100, core.Expense, "Makanan")

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			s.Transactions()
			s.Goals()
			s.OverallGoalProgress()
		}
	}()

	for i := 0; i < 50; i++ {
		if _, err := s.CreateUser(ctx, "Bob"); err != nil {
			t.Errorf("create user: %v", err)
			break
		}
		s.Logout(ctx)
	}
	close(done)
	wg.Wait()
}

func TestGoalsWithStatus(t *testing.T) {
	s := newService(t)
	goals := s.Goals()
	if len(goals) != 2 {
		t.Fatalf("expected 2 seeded goals, got %d", len(goals))
	}
	// Seed goal 1: 15M of 50M.
	if goals[0].Status.Progress != 30 {
		t.Fatalf("progress: expected 30, got %v", goals[0].Status.Progress)
	}
	// Relative to the fixed clock (2024-01-20), the 2024-06-15 deadline is ahead.
	if goals[1].Status.IsOverdue {
		t.Fatal("future deadline flagged overdue")
	}
}
