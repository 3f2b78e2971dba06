package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"glcli/internal/config"
	"glcli/pkg/contracts/domain"
)

// CSVWriter exports aggregation results as CSV files under the configured
// reports directory.
type CSVWriter struct {
	logger *slog.Logger
	paths  config.PathsConfig
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(logger *slog.Logger, paths config.PathsConfig) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger, paths: paths}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // UTF-8 BOM so Excel opens the file correctly
}

// WriteCSV writes a table to a CSV file under the reports directory.
func (w *CSVWriter) WriteCSV(fileName string, options WriteOptions) error {
	fullPath := w.resolvePath(fileName)

	w.logger.Info("writing CSV file",
		slog.String("path", fullPath),
		slog.Int("records", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

// WriteSummary exports a flat summary with formatted amounts and a trailing
// total row.
func (w *CSVWriter) WriteSummary(fileName string, summary *domain.FlatSummary) error {
	headers := append(append([]string{}, summary.KeyColumns...), "Amount")

	records := make([][]string, 0, len(summary.Rows)+1)
	for _, row := range summary.Rows {
		record := append(append([]string{}, row.Key...), FormatDecimal(row.Amount))
		records = append(records, record)
	}

	totalRow := make([]string, len(headers))
	totalRow[0] = domain.PivotTotalLabel
	totalRow[len(totalRow)-1] = FormatDecimal(summary.Total)
	records = append(records, totalRow)

	return w.WriteCSV(fileName, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

// WritePivot exports a pivot table, one row per dimension value plus the
// Total row, cells formatted with Indian grouping.
func (w *CSVWriter) WritePivot(fileName string, pivot *domain.PivotTable, rowHeader string) error {
	headers := append([]string{rowHeader}, pivot.Columns...)

	records := make([][]string, 0, len(pivot.RowLabels)+1)
	for i, label := range pivot.RowLabels {
		record := make([]string, 0, len(headers))
		record = append(record, label)
		for _, cell := range pivot.Cells[i] {
			record = append(record, FormatIndian(cell))
		}
		records = append(records, record)
	}

	totalRow := make([]string, 0, len(headers))
	totalRow = append(totalRow, domain.PivotTotalLabel)
	for _, cell := range pivot.Total {
		totalRow = append(totalRow, FormatIndian(cell))
	}
	records = append(records, totalRow)

	return w.WriteCSV(fileName, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteRollWeights exports classified roll-weight records.
func (w *CSVWriter) WriteRollWeights(fileName string, records []domain.RollWeightRecord) error {
	headers := []string{
		config.RollWeightFGColumn,
		config.RollWeightRollNoColumn,
		config.RollWeightActualColumn,
		config.RollWeightTheoreticalColumn,
		config.RollWeightDiffColumn,
		"Band",
	}

	rows := make([][]string, 0, len(records))
	for i := range records {
		r := &records[i]
		rows = append(rows, []string{
			r.FGDescription,
			r.RollNo,
			formatWeight(r.ActualWeight),
			formatWeight(r.TheoreticalWeight),
			formatWeight(r.Diff),
			string(r.Band),
		})
	}

	return w.WriteCSV(fileName, WriteOptions{
		Headers:   headers,
		Records:   rows,
		BOMPrefix: true,
	})
}

func formatWeight(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

func (w *CSVWriter) resolvePath(fileName string) string {
	if filepath.IsAbs(fileName) {
		return fileName
	}
	return filepath.Join(w.paths.ReportsDir, fileName)
}
