package dataprocessing

import (
	"fmt"
	"time"

	"glcli/internal/config"
)

// The financial year runs April through March. A date in April or later
// belongs to the year that starts in its own calendar year; January through
// March belong to the year that started the previous April.
const fiscalYearStartMonth = time.April

// FinancialYearLabel returns the fiscal-year label for a posting date,
// e.g. 2025-04-01 → "2025-26" and 2025-03-31 → "2024-25".
func FinancialYearLabel(date time.Time) string {
	year := date.Year()
	if date.Month() < fiscalYearStartMonth {
		return fmt.Sprintf("%d-%02d", year-1, year%100)
	}
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// MonthBucket returns the short display grouping label for a posting date,
// e.g. "Apr-25". It is distinct from the fiscal-year label and used purely
// for display grouping.
func MonthBucket(date time.Time) string {
	return date.Format(config.MonthBucketLayout)
}
