package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Weekly  RecurringFrequency = "weekly"
	Monthly RecurringFrequency = "monthly"
	Yearly  RecurringFrequency = "yearly"
)

// DateLayout is the wire format for calendar dates ("YYYY-MM-DD").
const DateLayout = "2006-01-02"

// MonthLayout is the wire format for month keys ("YYYY-MM").
const MonthLayout = "2006-01"

type (
	TransactionType    string
	RecurringFrequency string

	// Transaction is a single dated money movement, income or expense.
	// Amounts are plain float64 values; stored JSON carries them as ordinary
	// numbers and all sums use standard double-precision addition.
	Transaction struct {
		ID                 string             `json:"id"`
		Date               string             `json:"date"`
		Description        string             `json:"description"`
		Amount             float64            `json:"amount"`
		Type               TransactionType    `json:"type"`
		Category           string             `json:"category"`
		IsRecurring        bool               `json:"isRecurring,omitempty"`
		RecurringFrequency RecurringFrequency `json:"recurringFrequency,omitempty"`
		Tags               []string           `json:"tags,omitempty"`
	}

	// Budget is a per-category monthly spending limit. Spent is an advisory
	// snapshot taken when the budget was set; live status rows recompute it.
	Budget struct {
		ID           string  `json:"id"`
		Category     string  `json:"category"`
		MonthlyLimit float64 `json:"monthlyLimit"`
		Spent        float64 `json:"spent"`
		Month        string  `json:"month"`
	}

	// FinancialGoal is a savings target with a deadline. CurrentAmount may
	// exceed TargetAmount; progress above 100% signals over-saving.
	FinancialGoal struct {
		ID            string  `json:"id"`
		Title         string  `json:"title"`
		TargetAmount  float64 `json:"targetAmount"`
		CurrentAmount float64 `json:"currentAmount"`
		Deadline      string  `json:"deadline"`
		Category      string  `json:"category"`
		Description   string  `json:"description,omitempty"`
	}

	// User is the single local identity. At most one exists at a time.
	User struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"createdAt"`
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidMonth     = errors.New("invalid month key")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("type must be 'income' or 'expense'")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyTitle       = errors.New("empty title")
	ErrEmptyName        = errors.New("empty name")
	ErrNotFound         = errors.New("not found")
)

// ParseDate parses a "YYYY-MM-DD" string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// MonthKey returns the "YYYY-MM" key for t.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// MonthInterval returns the first and last day of the month identified by
// key ("YYYY-MM"), both at UTC midnight.
func MonthInterval(key string) (start, end time.Time, err error) {
	start, err = time.Parse(MonthLayout, strings.TrimSpace(key))
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	end = start.AddDate(0, 1, -1)
	return start, end, nil
}

func (tt TransactionType) Valid() bool {
	return tt == Income || tt == Expense
}

func (rf RecurringFrequency) Valid() bool {
	switch rf {
	case Weekly, Monthly, Yearly:
		return true
	default:
		return false
	}
}

func (t Transaction) Validate() error {
	if _, err := ParseDate(t.Date); err != nil {
		return err
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.IsRecurring && t.RecurringFrequency != "" && !t.RecurringFrequency.Valid() {
		return errors.New("invalid recurring frequency")
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.MonthlyLimit < 0 {
		return ErrInvalidAmount
	}
	if _, _, err := MonthInterval(b.Month); err != nil {
		return err
	}
	return nil
}

func (g FinancialGoal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return ErrEmptyTitle
	}
	if g.TargetAmount <= 0 {
		return ErrInvalidAmount
	}
	if g.CurrentAmount < 0 {
		return ErrInvalidAmount
	}
	if _, err := ParseDate(g.Deadline); err != nil {
		return err
	}
	if strings.TrimSpace(g.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
