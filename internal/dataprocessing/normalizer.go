package dataprocessing

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"glcli/internal/config"
	"glcli/internal/errors"
	"glcli/pkg/contracts/domain"
)

// Normalizer turns raw ledger rows into typed transaction records.
type Normalizer struct {
	logger *slog.Logger
	engine config.EngineConfig
}

// NewNormalizer creates a normalizer for the given engine schema.
func NewNormalizer(logger *slog.Logger, engine config.EngineConfig) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger, engine: engine}
}

// Normalize validates the table header against the required columns and
// produces one TransactionRecord per usable input row. A required column
// absent from the header fails the whole load with a MissingColumn error
// naming every absent field. Row-level anomalies never fail the load:
// unparseable dates become nil, non-numeric amounts become zero with
// AmountNumeric=false, and rows with an empty account name are dropped.
func (n *Normalizer) Normalize(ctx context.Context, table *domain.RawTable) (*domain.LedgerBatch, error) {
	var missing []string
	for _, col := range n.engine.RequiredColumns() {
		if table.ColumnIndex(col) < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		n.logger.ErrorContext(ctx, "required columns missing from ledger header",
			slog.Any("columns", missing))
		return nil, errors.NewMissingColumnError(missing)
	}

	dateCol := table.ColumnIndex(n.engine.DateColumn)
	accountNoCol := table.ColumnIndex(n.engine.AccountNoColumn)
	accountNameCol := table.ColumnIndex(n.engine.AccountNameColumn)
	amountCol := table.ColumnIndex(n.engine.AmountColumn)

	// Declared dimension columns missing from this workbook are skipped,
	// never inferred from header naming.
	dimCols := make(map[string]int, len(n.engine.DimensionColumns))
	for _, dim := range n.engine.DimensionColumns {
		if idx := table.ColumnIndex(dim); idx >= 0 {
			dimCols[dim] = idx
		}
	}

	batch := &domain.LedgerBatch{
		ContentHash: HashTable(table),
		SourceRows:  len(table.Rows),
		LoadedAt:    time.Now(),
	}

	for i := range table.Rows {
		accountName := strings.TrimSpace(table.Cell(i, accountNameCol))
		if accountName == "" {
			batch.DroppedRows++
			continue
		}

		record := domain.TransactionRecord{
			AccountNo:   strings.TrimSpace(table.Cell(i, accountNoCol)),
			AccountName: accountName,
		}

		if date, ok := parseDate(table.Cell(i, dateCol)); ok {
			record.PostingDate = &date
			record.FinancialYear = FinancialYearLabel(date)
			record.MonthBucket = MonthBucket(date)
		}

		record.Amount, record.AmountNumeric = parseAmount(table.Cell(i, amountCol))

		if len(dimCols) > 0 {
			record.Dimensions = make(map[string]string, len(dimCols))
			for dim, idx := range dimCols {
				record.Dimensions[dim] = strings.TrimSpace(table.Cell(i, idx))
			}
		}

		batch.Records = append(batch.Records, record)
	}

	n.logger.InfoContext(ctx, "ledger batch normalized",
		slog.Uint64("content_hash", batch.ContentHash),
		slog.Int("source_rows", batch.SourceRows),
		slog.Int("records", len(batch.Records)),
		slog.Int("dropped_rows", batch.DroppedRows))

	return batch, nil
}

// parseDate coerces a cell into a posting date, trying the configured
// layouts in order. Excel serial values arrive already rendered by the
// sheet reader, so only textual layouts are handled here.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range config.DateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAmount coerces a cell into a decimal amount. Thousands separators are
// stripped first. Unparseable values yield a zero amount flagged as
// non-numeric so the aggregator can distinguish "0" from "no value".
func parseAmount(value string) (decimal.Decimal, bool) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
