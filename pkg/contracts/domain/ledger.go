package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord represents a single normalized general-ledger line item.
// Records are created once at load time, derived fields are attached
// immediately after creation, and the record is never mutated afterwards;
// filtering always produces a new view over the same backing records.
type TransactionRecord struct {
	PostingDate   *time.Time        `json:"posting_date,omitempty"`
	AccountNo     string            `json:"account_no"`
	AccountName   string            `json:"account_name" validate:"required"`
	Amount        decimal.Decimal   `json:"amount"`
	AmountNumeric bool              `json:"amount_numeric"`
	Dimensions    map[string]string `json:"dimensions,omitempty"`

	// Derived fields, consistent functions of PostingDate.
	// Both are empty iff PostingDate is nil.
	FinancialYear string `json:"financial_year,omitempty"`
	MonthBucket   string `json:"month_bucket,omitempty"`
}

// HasPostingDate reports whether the posting date parsed successfully.
func (r *TransactionRecord) HasPostingDate() bool {
	return r.PostingDate != nil
}

// Dimension returns the raw code stored for the named dimension column.
// A column the row did not carry yields the empty string.
func (r *TransactionRecord) Dimension(column string) string {
	return r.Dimensions[column]
}

// LedgerBatch is the immutable result of normalizing one uploaded table.
// ContentHash identifies the raw input the batch was built from and keys
// the memoization cache.
type LedgerBatch struct {
	Records     []TransactionRecord `json:"records"`
	ContentHash uint64              `json:"content_hash"`
	SourceRows  int                 `json:"source_rows"`
	DroppedRows int                 `json:"dropped_rows"`
	LoadedAt    time.Time           `json:"loaded_at"`
}

// FinancialYears returns the sorted distinct financial-year labels present
// in the batch. Records without a posting date contribute nothing.
func (b *LedgerBatch) FinancialYears() []string {
	return distinctSorted(b.Records, func(r *TransactionRecord) string { return r.FinancialYear })
}

// MonthBuckets returns the sorted distinct month buckets for records whose
// financial year is in the given set. An empty set means no restriction.
func (b *LedgerBatch) MonthBuckets(years map[string]bool) []string {
	var filtered []TransactionRecord
	for _, r := range b.Records {
		if len(years) == 0 || years[r.FinancialYear] {
			filtered = append(filtered, r)
		}
	}
	return distinctSorted(filtered, func(r *TransactionRecord) string { return r.MonthBucket })
}

func distinctSorted(records []TransactionRecord, key func(*TransactionRecord) string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range records {
		k := key(&records[i])
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// RawTable is an uploaded tabular section before normalization: one header
// row plus data rows, in the order the external reader produced them.
type RawTable struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// ColumnIndex returns the position of the named header column, or -1.
// Header matching trims surrounding whitespace but is case-sensitive,
// matching the source workbooks.
func (t *RawTable) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), or the empty string when the row is
// ragged and does not extend to col.
func (t *RawTable) Cell(row, col int) string {
	if col < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}
