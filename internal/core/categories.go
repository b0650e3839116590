package core

// Seed category lists. These match the original installation defaults and
// double as the fixed category set the budget view iterates over.

// IncomeCategories are the selectable income categories.
var IncomeCategories = []string{
	"Gaji",
	"Freelance",
	"Investasi",
	"Bisnis",
	"Pendapatan Lain",
}

// ExpenseCategories are the selectable expense categories. Budget status
// rows are produced for exactly this set.
var ExpenseCategories = []string{
	"Rumah/Sewa",
	"Makanan",
	"Transportasi",
	"Listrik/Air",
	"Kesehatan",
	"Hiburan",
	"Belanja",
	"Pengeluaran Lain",
}

// GoalCategories are the selectable goal categories.
var GoalCategories = []string{
	"Emergency Fund",
	"Vacation",
	"House Down Payment",
	"Car",
	"Education",
	"Investment",
	"Retirement",
	"Other",
}

// CategoriesFor returns the category list matching a transaction type.
func CategoriesFor(tt TransactionType) []string {
	if tt == Income {
		return IncomeCategories
	}
	return ExpenseCategories
}
