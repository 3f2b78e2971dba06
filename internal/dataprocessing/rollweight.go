package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"glcli/internal/config"
	"glcli/internal/errors"
	"glcli/pkg/contracts/domain"
)

// RollWeightNormalizer turns raw roll-weight report rows into typed records.
type RollWeightNormalizer struct {
	logger     *slog.Logger
	classifier BandClassifier
}

// NewRollWeightNormalizer creates a roll-weight normalizer using the default
// deviation bands.
func NewRollWeightNormalizer(logger *slog.Logger) *RollWeightNormalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &RollWeightNormalizer{logger: logger, classifier: NewBandClassifier()}
}

// Normalize validates the required report columns and produces one record
// per usable row. Rows without a finished-goods description are dropped
// silently. Numeric measures are rounded to two decimals; optional columns
// are carried through when the sheet has them.
func (n *RollWeightNormalizer) Normalize(ctx context.Context, table *domain.RawTable) (*domain.RollWeightBatch, error) {
	required := []string{
		config.RollWeightFGColumn,
		config.RollWeightRollNoColumn,
		config.RollWeightActualColumn,
		config.RollWeightTheoreticalColumn,
		config.RollWeightDiffColumn,
	}

	var missing []string
	for _, col := range required {
		if table.ColumnIndex(col) < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		n.logger.ErrorContext(ctx, "required columns missing from roll-weight header",
			slog.Any("columns", missing))
		return nil, errors.NewMissingColumnError(missing)
	}

	fgCol := table.ColumnIndex(config.RollWeightFGColumn)
	rollCol := table.ColumnIndex(config.RollWeightRollNoColumn)
	actualCol := table.ColumnIndex(config.RollWeightActualColumn)
	theoreticalCol := table.ColumnIndex(config.RollWeightTheoreticalColumn)
	diffCol := table.ColumnIndex(config.RollWeightDiffColumn)

	optionalCols := make(map[string]int)
	for _, col := range config.RollWeightOptionalColumns {
		if idx := table.ColumnIndex(col); idx >= 0 {
			optionalCols[col] = idx
		}
	}

	batch := &domain.RollWeightBatch{
		ContentHash: HashTable(table),
		SourceRows:  len(table.Rows),
	}

	for i := range table.Rows {
		fg := strings.TrimSpace(table.Cell(i, fgCol))
		if fg == "" {
			batch.DroppedRows++
			continue
		}

		record := domain.RollWeightRecord{
			FGDescription:     fg,
			RollNo:            strings.TrimSpace(table.Cell(i, rollCol)),
			ActualWeight:      round2(parseFloat(table.Cell(i, actualCol))),
			TheoreticalWeight: round2(parseFloat(table.Cell(i, theoreticalCol))),
			Diff:              round2(parseFloat(table.Cell(i, diffCol))),
		}
		record.Band = n.classifier.Classify(record.Diff)

		if len(optionalCols) > 0 {
			record.Extra = make(map[string]float64, len(optionalCols))
			for col, idx := range optionalCols {
				record.Extra[col] = round2(parseFloat(table.Cell(i, idx)))
			}
		}

		batch.Records = append(batch.Records, record)
	}

	n.logger.InfoContext(ctx, "roll-weight batch normalized",
		slog.Uint64("content_hash", batch.ContentHash),
		slog.Int("source_rows", batch.SourceRows),
		slog.Int("records", len(batch.Records)),
		slog.Int("dropped_rows", batch.DroppedRows))

	return batch, nil
}

// FilterByFG narrows records to the selected finished-goods descriptions.
// A nil or empty selection keeps every record. The source slice is never
// mutated.
func FilterByFG(records []domain.RollWeightRecord, selected []string) []domain.RollWeightRecord {
	if len(selected) == 0 {
		out := make([]domain.RollWeightRecord, len(records))
		copy(out, records)
		return out
	}

	want := make(map[string]bool, len(selected))
	for _, s := range selected {
		want[s] = true
	}

	out := make([]domain.RollWeightRecord, 0, len(records))
	for i := range records {
		if want[records[i].FGDescription] {
			out = append(out, records[i])
		}
	}
	return out
}

func parseFloat(value string) float64 {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
