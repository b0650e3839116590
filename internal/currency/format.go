// Package currency renders Rupiah amounts for terminal and report output.
package currency

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatIDR renders an amount as whole Rupiah with locale grouping,
// e.g. 1500000 -> "Rp 1.500.000".
func FormatIDR(amount float64) string {
	return printer.Sprintf("Rp %d", int64(amount+0.5))
}

// FormatIDRShort renders large amounts with compact unit suffixes:
// "M" for billions, "jt" for millions, "rb" for thousands.
func FormatIDRShort(amount float64) string {
	switch {
	case amount >= 1_000_000_000:
		return fmt.Sprintf("Rp %.1fM", amount/1_000_000_000)
	case amount >= 1_000_000:
		return fmt.Sprintf("Rp %.1fjt", amount/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("Rp %.0frb", amount/1_000)
	default:
		return printer.Sprintf("Rp %d", int64(amount+0.5))
	}
}
