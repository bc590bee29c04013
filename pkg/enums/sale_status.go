package enums

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SaleStatus is the canonical, upper-cased form of sales.sale_status_desc.
// Stored values vary in casing; queries compare UPPER(sale_status_desc)
// against these constants.
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

func (s SaleStatus) String() string {
	return string(s)
}

// NormalizeSaleStatus maps free-text status input onto its canonical form.
// Unknown statuses are kept (upper-cased) so callers can filter on them.
func NormalizeSaleStatus(value string) SaleStatus {
	// Casers carry state and are not shared across goroutines.
	return SaleStatus(cases.Upper(language.Und).String(strings.TrimSpace(value)))
}
