package dataprocessing

import (
	"context"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"glcli/internal/errors"
	"glcli/pkg/contracts/domain"
)

// Aggregator computes grouped sums over filtered record sets. Grouping and
// pivoting are pure functions of the records they are given; they never
// consult unfiltered data, and they always operate on raw numeric values,
// never on formatted strings.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// checkMeasure enforces the EmptyMeasure contract: aggregation fails only
// when a non-empty record set carries no coercible amount at all. Records
// whose amount failed coercion otherwise contribute zero to their group.
func (a *Aggregator) checkMeasure(records []domain.TransactionRecord) error {
	if len(records) == 0 {
		return nil
	}
	for i := range records {
		if records[i].AmountNumeric {
			return nil
		}
	}
	return errors.NewEmptyMeasureError("amount")
}

// AccountSummary groups records by (account number, account name) and sums
// the amount per group, sorted descending by summed amount with ties broken
// by the group key.
func (a *Aggregator) AccountSummary(ctx context.Context, records []domain.TransactionRecord) (*domain.FlatSummary, error) {
	return a.flatSummary(ctx, records, []string{"Account No", "Account Name"},
		func(r *domain.TransactionRecord) []string {
			return []string{r.AccountNo, r.AccountName}
		})
}

// DimensionSummary groups records by the resolved display name of the given
// dimension column and sums the amount per group.
func (a *Aggregator) DimensionSummary(ctx context.Context, records []domain.TransactionRecord, dimension string, lookup *domain.DimensionLookup) (*domain.FlatSummary, error) {
	return a.flatSummary(ctx, records, []string{dimension},
		func(r *domain.TransactionRecord) []string {
			return []string{lookup.Resolve(r.Dimension(dimension))}
		})
}

func (a *Aggregator) flatSummary(ctx context.Context, records []domain.TransactionRecord, keyColumns []string, key func(*domain.TransactionRecord) []string) (*domain.FlatSummary, error) {
	if err := a.checkMeasure(records); err != nil {
		a.logger.ErrorContext(ctx, "aggregation failed, measure has no numeric values",
			slog.Int("records", len(records)))
		return nil, err
	}

	type group struct {
		key []string
		sum decimal.Decimal
	}
	groups := make(map[string]*group)
	total := decimal.Zero

	for i := range records {
		r := &records[i]
		k := key(r)
		id := joinKey(k)
		g, ok := groups[id]
		if !ok {
			g = &group{key: k}
			groups[id] = g
		}
		g.sum = g.sum.Add(r.Amount)
		total = total.Add(r.Amount)
	}

	summary := &domain.FlatSummary{
		KeyColumns: keyColumns,
		Rows:       make([]domain.SummaryRow, 0, len(groups)),
		Total:      total,
	}
	for _, g := range groups {
		summary.Rows = append(summary.Rows, domain.SummaryRow{Key: g.key, Amount: g.sum})
	}

	// Amount descending, group key ascending on ties, for deterministic
	// output regardless of map iteration order.
	sort.Slice(summary.Rows, func(i, j int) bool {
		cmp := summary.Rows[i].Amount.Cmp(summary.Rows[j].Amount)
		if cmp != 0 {
			return cmp > 0
		}
		return lessKey(summary.Rows[i].Key, summary.Rows[j].Key)
	})

	a.logger.InfoContext(ctx, "flat summary computed",
		slog.Int("records", len(records)),
		slog.Int("groups", len(summary.Rows)))

	return summary, nil
}

// Pivot builds a two-dimensional aggregation: rows are the resolved values
// of the given dimension column, columns are account names, and each cell is
// the summed amount for that pair, zero-filled where the pair is absent. A
// trailing Total row sums every column across the data rows.
func (a *Aggregator) Pivot(ctx context.Context, records []domain.TransactionRecord, dimension string, lookup *domain.DimensionLookup) (*domain.PivotTable, error) {
	if err := a.checkMeasure(records); err != nil {
		a.logger.ErrorContext(ctx, "pivot failed, measure has no numeric values",
			slog.Int("records", len(records)))
		return nil, err
	}

	rowSet := make(map[string]bool)
	colSet := make(map[string]bool)
	sums := make(map[[2]string]decimal.Decimal)

	for i := range records {
		r := &records[i]
		row := lookup.Resolve(r.Dimension(dimension))
		col := r.AccountName
		rowSet[row] = true
		colSet[col] = true
		cell := [2]string{row, col}
		sums[cell] = sums[cell].Add(r.Amount)
	}

	pivot := &domain.PivotTable{
		RowLabels: sortedKeys(rowSet),
		Columns:   sortedKeys(colSet),
	}

	pivot.Cells = make([][]int64, len(pivot.RowLabels))
	pivot.Total = make([]int64, len(pivot.Columns))
	for i, row := range pivot.RowLabels {
		pivot.Cells[i] = make([]int64, len(pivot.Columns))
		for j, col := range pivot.Columns {
			v := sums[[2]string{row, col}].IntPart()
			pivot.Cells[i][j] = v
			pivot.Total[j] += v
		}
	}

	a.logger.InfoContext(ctx, "pivot computed",
		slog.Int("records", len(records)),
		slog.Int("rows", len(pivot.RowLabels)),
		slog.Int("columns", len(pivot.Columns)))

	return pivot, nil
}

// Insights computes the scalar summary metrics for a filtered set: total
// amount, distinct account count, distinct month count, and the top account
// by summed amount. An empty set yields zero metrics without error.
func (a *Aggregator) Insights(ctx context.Context, records []domain.TransactionRecord) (*domain.KeyInsights, error) {
	if err := a.checkMeasure(records); err != nil {
		return nil, err
	}

	insights := &domain.KeyInsights{
		TotalAmount:      decimal.Zero,
		TopAccountAmount: decimal.Zero,
	}

	accounts := make(map[string]decimal.Decimal)
	monthSet := make(map[string]bool)

	for i := range records {
		r := &records[i]
		insights.TotalAmount = insights.TotalAmount.Add(r.Amount)
		accounts[r.AccountName] = accounts[r.AccountName].Add(r.Amount)
		if r.MonthBucket != "" {
			monthSet[r.MonthBucket] = true
		}
	}

	insights.UniqueAccounts = len(accounts)
	insights.SelectedMonths = len(monthSet)

	for _, name := range sortedKeys(accounts) {
		sum := accounts[name]
		if !insights.HasTopAccount() || sum.GreaterThan(insights.TopAccountAmount) {
			insights.TopAccountName = name
			insights.TopAccountAmount = sum
		}
	}

	return insights, nil
}

func joinKey(key []string) string {
	out := ""
	for _, k := range key {
		out += k + "\x1f"
	}
	return out
}

func lessKey(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
