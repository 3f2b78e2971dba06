package dataprocessing

import (
	"strings"

	"glcli/pkg/contracts/domain"
)

// ApplyFilter narrows a normalized record set by the given spec. All
// supplied predicates are ANDed. The source slice is never mutated and the
// result preserves input order, so applying the same spec twice equals
// applying it once, and applying two specs composes in either order.
//
// When the spec names no financial years, the filter defaults to every
// distinct year present in the set, which excludes records whose posting
// date was unparseable.
func ApplyFilter(records []domain.TransactionRecord, spec domain.FilterSpec) []domain.TransactionRecord {
	years := make(map[string]bool, len(spec.FinancialYears))
	for _, y := range spec.FinancialYears {
		years[y] = true
	}
	defaultYears := len(years) == 0

	months := make(map[string]bool, len(spec.Months))
	for _, m := range spec.Months {
		months[m] = true
	}

	search := strings.ToLower(strings.TrimSpace(spec.SearchTerm))

	out := make([]domain.TransactionRecord, 0, len(records))
	for i := range records {
		r := &records[i]

		if defaultYears {
			if r.FinancialYear == "" {
				continue
			}
		} else if !years[r.FinancialYear] {
			continue
		}

		if len(months) > 0 && !months[r.MonthBucket] {
			continue
		}

		if spec.SelectedEntity != "" && r.AccountName != spec.SelectedEntity {
			continue
		}

		if search != "" &&
			!strings.Contains(strings.ToLower(r.AccountName), search) &&
			!strings.Contains(strings.ToLower(r.AccountNo), search) {
			continue
		}

		out = append(out, *r)
	}
	return out
}
