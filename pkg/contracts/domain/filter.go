package domain

// FilterSpec narrows a normalized record set. All supplied predicates are
// ANDed together; zero-valued fields impose no restriction beyond the
// default financial-year behavior described on FinancialYears.
type FilterSpec struct {
	// FinancialYears restricts records to the named fiscal years. When empty,
	// the filter defaults to every distinct year present in the batch, which
	// excludes records whose posting date was unparseable.
	FinancialYears []string `json:"financial_years,omitempty"`

	// Months restricts records to the named month buckets (e.g. "Apr-25").
	// Empty means no month restriction.
	Months []string `json:"months,omitempty"`

	// SelectedEntity restricts records to a single account name.
	SelectedEntity string `json:"selected_entity,omitempty"`

	// SearchTerm is matched case-insensitively as a substring against the
	// account name and the account number.
	SearchTerm string `json:"search_term,omitempty"`
}

// IsZero reports whether the spec imposes no explicit restriction.
func (s FilterSpec) IsZero() bool {
	return len(s.FinancialYears) == 0 && len(s.Months) == 0 &&
		s.SelectedEntity == "" && s.SearchTerm == ""
}
