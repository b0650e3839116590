package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"cashflow/internal/core"
)

// Snapshot is the full-state backup: all three collections of the active
// scope plus export metadata.
type Snapshot struct {
	Transactions   []core.Transaction   `json:"transactions"`
	Budgets        []core.Budget        `json:"budgets"`
	FinancialGoals []core.FinancialGoal `json:"financialGoals"`
	ExportDate     string               `json:"exportDate"`
	AppVersion     string               `json:"appVersion"`
}

// NewSnapshot assembles a snapshot stamped with the given time and version.
func NewSnapshot(transactions []core.Transaction, budgets []core.Budget, goals []core.FinancialGoal, exportedAt time.Time, appVersion string) Snapshot {
	if transactions == nil {
		transactions = []core.Transaction{}
	}
	if budgets == nil {
		budgets = []core.Budget{}
	}
	if goals == nil {
		goals = []core.FinancialGoal{}
	}
	return Snapshot{
		Transactions:   transactions,
		Budgets:        budgets,
		FinancialGoals: goals,
		ExportDate:     exportedAt.UTC().Format(time.RFC3339),
		AppVersion:     appVersion,
	}
}

// Encode renders the snapshot as indented JSON, the download format.
func (s Snapshot) Encode() ([]byte, error) {
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return raw, nil
}

// Restore is a decoded backup where each collection is optional: a nil
// pointer means the collection was absent from the input and the stored one
// must be left untouched. Restore is per-collection, never per-record.
type Restore struct {
	Transactions   *[]core.Transaction   `json:"transactions"`
	Budgets        *[]core.Budget        `json:"budgets"`
	FinancialGoals *[]core.FinancialGoal `json:"financialGoals"`
}

// DecodeRestore parses backup JSON. Malformed input fails as a whole;
// nothing is applied partially.
func DecodeRestore(data []byte) (Restore, error) {
	var r Restore
	if err := json.Unmarshal(data, &r); err != nil {
		return Restore{}, fmt.Errorf("decode backup: %w", err)
	}
	return r, nil
}
