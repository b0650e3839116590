// Package codec converts between stored collections and the two interchange
// formats: the comma-delimited transaction format and the full-state JSON
// snapshot.
//
// The delimited format is deliberately naive: fields are split and joined on
// bare commas with no quoting or escaping. A field containing a comma will
// corrupt a row. This is the frozen wire format; adding quoting would break
// compatibility with files produced by earlier versions.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"cashflow/internal/core"
)

// RequiredColumns are the header names an import file must carry, matched
// case-insensitively in any order.
var RequiredColumns = []string{"date", "description", "type", "category", "amount"}

// ExportHeader is the fixed column order of exported reports.
const ExportHeader = "Date,Description,Type,Category,Amount"

// ImportResult is the outcome of parsing an import file: the rows that
// passed validation and one message per row that failed. Both can be
// non-empty at once; committing is the caller's decision.
type ImportResult struct {
	Preview []core.Transaction `json:"preview"`
	Errors  []string           `json:"errors"`
}

// HasErrors reports whether any row or the header failed validation.
func (r ImportResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// ParseCSV parses delimited transaction data. The first non-empty line must
// be a header containing every required column; a missing column aborts the
// whole parse with a single error and an empty preview. Data rows are
// validated independently: each failing row contributes one error message
// numbered by its physical line in the file, and the batch continues.
func ParseCSV(data string) ImportResult {
	var result ImportResult

	lines := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")

	headerLine := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			headerLine = i
			break
		}
	}
	if headerLine == -1 {
		result.Errors = append(result.Errors, missingColumnsError(RequiredColumns))
		return result
	}

	index := make(map[string]int)
	for i, h := range strings.Split(lines[headerLine], ",") {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		result.Errors = append(result.Errors, missingColumnsError(missing))
		return result
	}

	for i := headerLine + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		rowNum := i + 1

		values := strings.Split(line, ",")
		field := func(name string) string {
			pos := index[name]
			if pos >= len(values) {
				return ""
			}
			return strings.TrimSpace(values[pos])
		}

		date := field("date")
		description := field("description")
		txType := field("type")
		category := field("category")
		amountRaw := field("amount")

		if date == "" || description == "" || txType == "" || category == "" || amountRaw == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Missing required data", rowNum))
			continue
		}
		if !core.TransactionType(txType).Valid() {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Type must be 'income' or 'expense'", rowNum))
			continue
		}
		amount, err := strconv.ParseFloat(amountRaw, 64)
		if err != nil || amount <= 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Amount must be positive", rowNum))
			continue
		}
		if _, err := core.ParseDate(date); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Invalid date format", rowNum))
			continue
		}

		result.Preview = append(result.Preview, core.Transaction{
			ID:          "import-" + uuid.NewString(),
			Date:        date,
			Description: description,
			Amount:      amount,
			Type:        core.TransactionType(txType),
			Category:    category,
		})
	}

	return result
}

func missingColumnsError(missing []string) string {
	return "Missing required columns: " + strings.Join(missing, ", ")
}

// ExportCSV renders transactions as a delimited report in their given
// order. Column order is fixed; values are joined on bare commas.
func ExportCSV(transactions []core.Transaction) string {
	rows := make([]string, 0, len(transactions)+1)
	rows = append(rows, ExportHeader)
	for _, t := range transactions {
		rows = append(rows, strings.Join([]string{
			t.Date,
			t.Description,
			string(t.Type),
			t.Category,
			formatAmount(t.Amount),
		}, ","))
	}
	return strings.Join(rows, "\n")
}

// Template returns a small sample file in the import format.
func Template() string {
	return strings.Join([]string{
		ExportHeader,
		"2024-01-15,Sample Income,income,Gaji,5000000",
		"2024-01-16,Sample Expense,expense,Makanan,150000",
	}, "\n")
}

// formatAmount renders an amount the way the stored JSON does: no exponent,
// no trailing zeros.
func formatAmount(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}
