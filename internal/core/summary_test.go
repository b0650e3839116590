package core

import (
	"testing"
	"time"
)

func tx(id, date string, amount float64, tt TransactionType, category string) Transaction {
	return Transaction{
		ID:          id,
		Date:        date,
		Description: "test " + id,
		Amount:      amount,
		Type:        tt,
		Category:    category,
	}
}

func TestFilterByInterval(t *testing.T) {
	txs := []Transaction{
		tx("1", "2024-01-01", 100, Expense, "Makanan"),
		tx("2", "2024-01-15", 200, Income, "Gaji"),
		tx("3", "2024-01-31", 300, Expense, "Hiburan"),
		tx("4", "2024-02-01", 400, Expense, "Makanan"),
		tx("5", "not-a-date", 500, Expense, "Makanan"),
	}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	got := FilterByInterval(txs, start, end)
	if len(got) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(got))
	}
	// Both endpoints are inclusive and relative order is preserved.
	for i, want := range []string{"1", "2", "3"} {
		if got[i].ID != want {
			t.Errorf("position %d: expected id %s, got %s", i, want, got[i].ID)
		}
	}
	for _, tr := range got {
		d, err := ParseDate(tr.Date)
		if err != nil {
			t.Fatalf("filtered transaction has invalid date %q", tr.Date)
		}
		if d.Before(start) || d.After(end) {
			t.Errorf("transaction %s outside interval: %s", tr.ID, tr.Date)
		}
	}
}

func TestFilterByIntervalEmpty(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	if got := FilterByInterval(nil, start, end); len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestSummarize(t *testing.T) {
	cases := []struct {
		name     string
		txs      []Transaction
		income   float64
		expenses float64
	}{
		{"empty", nil, 0, 0},
		{
			"mixed",
			[]Transaction{
				tx("1", "2024-01-01", 5000000, Income, "Gaji"),
				tx("2", "2024-01-02", 150000, Expense, "Makanan"),
				tx("3", "2024-01-03", 250000, Expense, "Transportasi"),
				tx("4", "2024-01-04", 1000000, Income, "Freelance"),
			},
			6000000, 400000,
		},
		{
			"expenses only",
			[]Transaction{tx("1", "2024-01-01", 99.5, Expense, "Makanan")},
			0, 99.5,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Summarize(tc.txs)
			if s.Income != tc.income {
				t.Errorf("income: expected %v, got %v", tc.income, s.Income)
			}
			if s.Expenses != tc.expenses {
				t.Errorf("expenses: expected %v, got %v", tc.expenses, s.Expenses)
			}
			if s.Net != s.Income-s.Expenses {
				t.Errorf("net %v != income %v - expenses %v", s.Net, s.Income, s.Expenses)
			}
		})
	}
}

func TestSpendByCategory(t *testing.T) {
	txs := []Transaction{
		tx("1", "2024-01-01", 100000, Expense, "Makanan"),
		tx("2", "2024-01-02", 80000, Expense, "Makanan"),
		tx("3", "2024-01-03", 50000, Expense, "Transportasi"),
		tx("4", "2024-01-04", 5000000, Income, "Gaji"),
	}
	spend := SpendByCategory(txs)

	if spend["Makanan"] != 180000 {
		t.Errorf("Makanan: expected 180000, got %v", spend["Makanan"])
	}
	if spend["Transportasi"] != 50000 {
		t.Errorf("Transportasi: expected 50000, got %v", spend["Transportasi"])
	}
	// Income must not appear, and zero-spend categories must be absent.
	if _, ok := spend["Gaji"]; ok {
		t.Error("income category leaked into spend map")
	}
	if _, ok := spend["Hiburan"]; ok {
		t.Error("zero-spend category should be absent from the map")
	}
	if len(spend) != 2 {
		t.Errorf("expected 2 categories, got %d", len(spend))
	}
}
