// Package core holds the domain types and the pure derivation engines.
//
// This file contains the aggregation engine: interval filtering and
// income/expense summaries over a flat transaction list. Everything is
// recomputed on each call; collections are small enough that O(n) per read
// beats maintaining incremental sums.
package core

import "time"

// Summary is the derived income/expense/net view of a transaction subset.
type Summary struct {
	Income       float64       `json:"income"`
	Expenses     float64       `json:"expenses"`
	Net          float64       `json:"netCashflow"`
	Transactions []Transaction `json:"transactions"`
}

// FilterByInterval returns the transactions whose date falls within
// [start, end] inclusive, preserving the original relative order.
// Transactions with unparseable dates are excluded.
func FilterByInterval(transactions []Transaction, start, end time.Time) []Transaction {
	out := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		d, err := ParseDate(t.Date)
		if err != nil {
			continue
		}
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Summarize computes total income, total expenses and the net cashflow of
// the given transactions. Net is always income minus expenses.
func Summarize(transactions []Transaction) Summary {
	s := Summary{Transactions: transactions}
	for _, t := range transactions {
		switch t.Type {
		case Income:
			s.Income += t.Amount
		case Expense:
			s.Expenses += t.Amount
		}
	}
	s.Net = s.Income - s.Expenses
	return s
}

// SummarizeInterval filters by [start, end] and summarizes the result.
func SummarizeInterval(transactions []Transaction, start, end time.Time) Summary {
	return Summarize(FilterByInterval(transactions, start, end))
}

// SpendByCategory maps category to the sum of expense amounts in the given
// transactions. Income is ignored. Categories without expense spend are
// absent from the map rather than present with a zero value.
func SpendByCategory(transactions []Transaction) map[string]float64 {
	spend := make(map[string]float64)
	for _, t := range transactions {
		if t.Type != Expense {
			continue
		}
		spend[t.Category] += t.Amount
	}
	return spend
}
