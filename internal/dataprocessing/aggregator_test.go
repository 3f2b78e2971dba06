package dataprocessing

import (
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glcli/internal/errors"
	"glcli/pkg/contracts/domain"
)

func dimRecord(accountName string, dim string, amount int64) domain.TransactionRecord {
	return domain.TransactionRecord{
		AccountName:   accountName,
		Amount:        decimal.NewFromInt(amount),
		AmountNumeric: true,
		Dimensions:    map[string]string{"Dimension 1 Code": dim},
	}
}

func TestAggregator_AccountSummary(t *testing.T) {
	ctx := context.Background()
	aggregator := NewAggregator(slog.Default())

	records := []domain.TransactionRecord{
		filterRecord("2025-04-01", "4000", "Sales", 1000),
		filterRecord("2025-03-31", "5000", "Rent", 2000),
		filterRecord("2024-04-15", "5100", "Travel", -500),
		filterRecord("2025-04-02", "4000", "Sales", 500),
	}

	summary, err := aggregator.AccountSummary(ctx, records)
	require.NoError(t, err)

	assert.Equal(t, []string{"Account No", "Account Name"}, summary.KeyColumns)
	// Rent and the two Sales postings dominate; Travel is negative
	assert.Equal(t, "3000", summary.Total.String())

	require.Len(t, summary.Rows, 3)
	// Amount descending
	assert.Equal(t, []string{"5000", "Rent"}, summary.Rows[0].Key)
	assert.Equal(t, "2000", summary.Rows[0].Amount.String())
	assert.Equal(t, []string{"4000", "Sales"}, summary.Rows[1].Key)
	assert.Equal(t, "1500", summary.Rows[1].Amount.String())
	assert.Equal(t, []string{"5100", "Travel"}, summary.Rows[2].Key)
}

func TestAggregator_FlatSummaryTieBreak(t *testing.T) {
	aggregator := NewAggregator(slog.Default())

	records := []domain.TransactionRecord{
		filterRecord("2025-04-01", "9000", "Zulu", 100),
		filterRecord("2025-04-01", "1000", "Alpha", 100),
	}

	summary, err := aggregator.AccountSummary(context.Background(), records)
	require.NoError(t, err)

	// Equal sums fall back to natural key order
	require.Len(t, summary.Rows, 2)
	assert.Equal(t, []string{"1000", "Alpha"}, summary.Rows[0].Key)
	assert.Equal(t, []string{"9000", "Zulu"}, summary.Rows[1].Key)
}

func TestAggregator_DimensionSummary(t *testing.T) {
	aggregator := NewAggregator(slog.Default())
	lookup := domain.NewDimensionLookup(map[string]string{"D1": "North"})

	records := []domain.TransactionRecord{
		dimRecord("Sales", "D1", 300),
		dimRecord("Rent", "D1", 200),
		dimRecord("Sales", "D2", 100),
	}

	summary, err := aggregator.DimensionSummary(context.Background(), records, "Dimension 1 Code", lookup)
	require.NoError(t, err)

	require.Len(t, summary.Rows, 2)
	assert.Equal(t, []string{"North"}, summary.Rows[0].Key)
	assert.Equal(t, "500", summary.Rows[0].Amount.String())
	// Unmapped code appears under its raw value
	assert.Equal(t, []string{"D2"}, summary.Rows[1].Key)
}

func TestAggregator_Pivot(t *testing.T) {
	aggregator := NewAggregator(slog.Default())
	lookup := domain.NewDimensionLookup(map[string]string{"D1": "North", "D2": "South"})

	records := []domain.TransactionRecord{
		dimRecord("Sales", "D1", 1000),
		dimRecord("Sales", "D1", 200),
		dimRecord("Rent", "D2", 700),
	}

	pivot, err := aggregator.Pivot(context.Background(), records, "Dimension 1 Code", lookup)
	require.NoError(t, err)

	assert.Equal(t, []string{"North", "South"}, pivot.RowLabels)
	assert.Equal(t, []string{"Rent", "Sales"}, pivot.Columns)

	// Absent combinations are zero-filled
	assert.Equal(t, [][]int64{
		{0, 1200},
		{700, 0},
	}, pivot.Cells)

	assert.Equal(t, []int64{700, 1200}, pivot.Total)
}

func TestAggregator_PivotTotalEqualsColumnSums(t *testing.T) {
	aggregator := NewAggregator(slog.Default())
	lookup := domain.EmptyDimensionLookup()

	// A larger, uneven distribution; the property must hold for any subset.
	records := []domain.TransactionRecord{
		dimRecord("A", "X", 5), dimRecord("A", "Y", -3), dimRecord("B", "X", 11),
		dimRecord("B", "Z", 42), dimRecord("C", "Y", 7), dimRecord("A", "Z", 1),
		dimRecord("C", "X", -9), dimRecord("B", "Y", 0),
	}

	for cut := 1; cut <= len(records); cut++ {
		pivot, err := aggregator.Pivot(context.Background(), records[:cut], "Dimension 1 Code", lookup)
		require.NoError(t, err)

		for j := range pivot.Columns {
			var sum int64
			for i := range pivot.RowLabels {
				sum += pivot.Cells[i][j]
			}
			assert.Equal(t, sum, pivot.Total[j], "column %s with %d records", pivot.Columns[j], cut)
		}
	}
}

func TestAggregator_EmptyMeasure(t *testing.T) {
	aggregator := NewAggregator(slog.Default())

	records := []domain.TransactionRecord{
		{AccountName: "Sales", Amount: decimal.Zero, AmountNumeric: false},
		{AccountName: "Rent", Amount: decimal.Zero, AmountNumeric: false},
	}

	_, err := aggregator.AccountSummary(context.Background(), records)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeEmptyMeasure))

	_, err = aggregator.Pivot(context.Background(), records, "Dimension 1 Code", domain.EmptyDimensionLookup())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeEmptyMeasure))
}

func TestAggregator_PartiallyNumericAmountsTreatedAsZero(t *testing.T) {
	aggregator := NewAggregator(slog.Default())

	records := []domain.TransactionRecord{
		{AccountNo: "4000", AccountName: "Sales", Amount: decimal.NewFromInt(100), AmountNumeric: true},
		{AccountNo: "4000", AccountName: "Sales", Amount: decimal.Zero, AmountNumeric: false},
	}

	summary, err := aggregator.AccountSummary(context.Background(), records)
	require.NoError(t, err)

	require.Len(t, summary.Rows, 1)
	assert.Equal(t, "100", summary.Rows[0].Amount.String())
}

func TestAggregator_EmptyRecordSet(t *testing.T) {
	aggregator := NewAggregator(slog.Default())

	summary, err := aggregator.AccountSummary(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, summary.Rows)
	assert.True(t, summary.Total.IsZero())

	insights, err := aggregator.Insights(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, insights.HasTopAccount())
	assert.Zero(t, insights.UniqueAccounts)
}

func TestAggregator_Insights(t *testing.T) {
	aggregator := NewAggregator(slog.Default())

	records := []domain.TransactionRecord{
		filterRecord("2025-04-01", "4000", "Sales", 1000),
		filterRecord("2025-03-31", "5000", "Rent", 2000),
		filterRecord("2024-04-15", "5100", "Travel", -500),
	}

	insights, err := aggregator.Insights(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, "2500", insights.TotalAmount.String())
	assert.Equal(t, 3, insights.UniqueAccounts)
	assert.Equal(t, 3, insights.SelectedMonths)
	assert.Equal(t, "Rent", insights.TopAccountName)
	assert.Equal(t, "2000", insights.TopAccountAmount.String())
}
