package core

// BudgetStatus is one row of the monthly budget view: live spend merged
// with the configured limit for a single category.
type BudgetStatus struct {
	Category     string  `json:"category"`
	Limit        float64 `json:"limit"`
	Spent        float64 `json:"spent"`
	Percentage   float64 `json:"percentage"`
	Remaining    float64 `json:"remaining"`
	IsOverBudget bool    `json:"isOverBudget"`
	HasWarning   bool    `json:"hasWarning"`
}

// BudgetStatuses builds one status row per known category for the month
// identified by monthKey. spend is the live per-category expense total for
// that month (see SpendByCategory); budgets is the full stored budget list,
// filtered here to the month.
//
// A category with no budget (limit 0) is untracked: it never gets the
// over-budget or warning flag no matter how much was spent.
func BudgetStatuses(categories []string, budgets []Budget, spend map[string]float64, monthKey string) []BudgetStatus {
	byCategory := make(map[string]Budget, len(budgets))
	for _, b := range budgets {
		if b.Month == monthKey {
			byCategory[b.Category] = b
		}
	}

	rows := make([]BudgetStatus, 0, len(categories))
	for _, category := range categories {
		spent := spend[category]
		limit := byCategory[category].MonthlyLimit

		percentage := 0.0
		if limit > 0 {
			percentage = spent / limit * 100
		}
		remaining := limit - spent
		if remaining < 0 {
			remaining = 0
		}

		rows = append(rows, BudgetStatus{
			Category:     category,
			Limit:        limit,
			Spent:        spent,
			Percentage:   percentage,
			Remaining:    remaining,
			IsOverBudget: spent > limit && limit > 0,
			HasWarning:   percentage > 80 && percentage <= 100,
		})
	}
	return rows
}

// BudgetTotals sums limits and spend across status rows.
type BudgetTotals struct {
	Budget    float64 `json:"totalBudget"`
	Spent     float64 `json:"totalSpent"`
	Remaining float64 `json:"totalRemaining"`
}

func SumBudgetStatuses(rows []BudgetStatus) BudgetTotals {
	var t BudgetTotals
	for _, row := range rows {
		t.Budget += row.Limit
		t.Spent += row.Spent
	}
	t.Remaining = t.Budget - t.Spent
	return t
}
