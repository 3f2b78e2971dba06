package domain

import (
	"github.com/shopspring/decimal"
)

// SummaryRow is one group in a flat summary: the group key values in the
// order the keys were requested, plus the summed amount for the group.
type SummaryRow struct {
	Key    []string        `json:"key"`
	Amount decimal.Decimal `json:"amount"`
}

// FlatSummary is the result of grouping filtered records by one or more key
// attributes and summing the amount measure. Rows are sorted by amount
// descending, ties broken by the natural order of the group key.
type FlatSummary struct {
	KeyColumns []string        `json:"key_columns"`
	Rows       []SummaryRow    `json:"rows"`
	Total      decimal.Decimal `json:"total"`
}

// PivotTotalLabel is the label of the synthetic trailing total row.
const PivotTotalLabel = "Total"

// PivotTable is a two-dimensional aggregation: one row per resolved dimension
// value, one column per group key, a summed integer amount in each cell, and
// a trailing total row equal to the column-wise sum of all data rows. Absent
// (row, column) combinations are filled with 0.
type PivotTable struct {
	RowLabels []string  `json:"row_labels"`
	Columns   []string  `json:"columns"`
	Cells     [][]int64 `json:"cells"`
	Total     []int64   `json:"total"`
}

// KeyInsights carries the scalar summary metrics consumed by the presentation
// layer: total amount, distinct account count, distinct month count, and the
// top account by summed amount.
type KeyInsights struct {
	TotalAmount      decimal.Decimal `json:"total_amount"`
	UniqueAccounts   int             `json:"unique_accounts"`
	SelectedMonths   int             `json:"selected_months"`
	TopAccountName   string          `json:"top_account_name,omitempty"`
	TopAccountAmount decimal.Decimal `json:"top_account_amount"`
}

// HasTopAccount reports whether the filtered set produced any group at all.
func (k *KeyInsights) HasTopAccount() bool {
	return k.TopAccountName != ""
}
