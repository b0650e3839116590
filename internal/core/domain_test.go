package core

import (
	"errors"
	"testing"
)

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		ID:          "1",
		Date:        "2024-01-15",
		Description: "Coffee",
		Amount:      25000,
		Type:        Expense,
		Category:    "Makanan",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Transaction)
		want   error
	}{
		{"bad date", func(tr *Transaction) { tr.Date = "15/01/2024" }, ErrInvalidDate},
		{"empty description", func(tr *Transaction) { tr.Description = "  " }, ErrEmptyDescription},
		{"zero amount", func(tr *Transaction) { tr.Amount = 0 }, ErrInvalidAmount},
		{"negative amount", func(tr *Transaction) { tr.Amount = -5 }, ErrInvalidAmount},
		{"bad type", func(tr *Transaction) { tr.Type = "transfer" }, ErrInvalidType},
		{"empty category", func(tr *Transaction) { tr.Category = "" }, ErrEmptyCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := valid
			tc.mutate(&tr)
			if err := tr.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestTransactionValidateRecurring(t *testing.T) {
	tr := Transaction{
		ID: "1", Date: "2024-01-15", Description: "Rent", Amount: 2000000,
		Type: Expense, Category: "Rumah/Sewa",
		IsRecurring: true, RecurringFrequency: Monthly,
	}
	if err := tr.Validate(); err != nil {
		t.Fatalf("recurring transaction rejected: %v", err)
	}
	tr.RecurringFrequency = "daily"
	if err := tr.Validate(); err == nil {
		t.Fatal("expected error for unknown frequency")
	}
}

func TestBudgetValidate(t *testing.T) {
	b := Budget{ID: "1", Category: "Makanan", MonthlyLimit: 200000, Month: "2024-01"}
	if err := b.Validate(); err != nil {
		t.Fatalf("valid budget rejected: %v", err)
	}
	// A zero limit is a legal "untracked" budget.
	b.MonthlyLimit = 0
	if err := b.Validate(); err != nil {
		t.Fatalf("zero limit rejected: %v", err)
	}
	b.MonthlyLimit = -1
	if err := b.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	b = Budget{ID: "1", Category: "Makanan", MonthlyLimit: 100, Month: "January 2024"}
	if err := b.Validate(); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestFinancialGoalValidate(t *testing.T) {
	g := FinancialGoal{
		ID: "1", Title: "Emergency Fund", TargetAmount: 50000000,
		CurrentAmount: 15000000, Deadline: "2024-12-31", Category: "Emergency Fund",
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("valid goal rejected: %v", err)
	}
	// Over-saving past the target is allowed.
	g.CurrentAmount = 60000000
	if err := g.Validate(); err != nil {
		t.Fatalf("over-saved goal rejected: %v", err)
	}
	g.TargetAmount = 0
	if err := g.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestMonthInterval(t *testing.T) {
	start, end, err := MonthInterval("2024-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Format(DateLayout) != "2024-02-01" {
		t.Errorf("start: got %s", start.Format(DateLayout))
	}
	// 2024 is a leap year.
	if end.Format(DateLayout) != "2024-02-29" {
		t.Errorf("end: got %s", end.Format(DateLayout))
	}
	if _, _, err := MonthInterval("2024-2"); err == nil {
		t.Error("expected error for non-padded month key")
	}
}
