package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"glcli/internal/config"
	"glcli/pkg/contracts/domain"
)

// XLSXWriter exports aggregation results as Excel workbooks under the
// configured reports directory.
type XLSXWriter struct {
	logger *slog.Logger
	paths  config.PathsConfig
}

// NewXLSXWriter creates an Excel writer.
func NewXLSXWriter(logger *slog.Logger, paths config.PathsConfig) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{logger: logger, paths: paths}
}

// WriteSummary exports a flat summary to one sheet, formatted amounts and a
// trailing total row, with a bold header.
func (w *XLSXWriter) WriteSummary(fileName, sheet string, summary *domain.FlatSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.prepareSheet(f, sheet); err != nil {
		return err
	}

	headers := append(append([]string{}, summary.KeyColumns...), "Amount")
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return err
	}

	row := 2
	for _, r := range summary.Rows {
		cells := append(append([]string{}, r.Key...), FormatDecimal(r.Amount))
		if err := writeRow(f, sheet, row, cells); err != nil {
			return err
		}
		row++
	}

	totalCells := make([]string, len(headers))
	totalCells[0] = domain.PivotTotalLabel
	totalCells[len(totalCells)-1] = FormatDecimal(summary.Total)
	if err := writeRow(f, sheet, row, totalCells); err != nil {
		return err
	}

	if err := w.styleHeader(f, sheet, len(headers)); err != nil {
		return err
	}

	return w.save(f, fileName)
}

// WritePivot exports a pivot table, dimension values down the first column,
// account names across, and the Total row last.
func (w *XLSXWriter) WritePivot(fileName, sheet string, pivot *domain.PivotTable, rowHeader string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.prepareSheet(f, sheet); err != nil {
		return err
	}

	headers := append([]string{rowHeader}, pivot.Columns...)
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return err
	}

	for i, label := range pivot.RowLabels {
		cells := make([]string, 0, len(headers))
		cells = append(cells, label)
		for _, cell := range pivot.Cells[i] {
			cells = append(cells, FormatIndian(cell))
		}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}

	totalCells := make([]string, 0, len(headers))
	totalCells = append(totalCells, domain.PivotTotalLabel)
	for _, cell := range pivot.Total {
		totalCells = append(totalCells, FormatIndian(cell))
	}
	if err := writeRow(f, sheet, len(pivot.RowLabels)+2, totalCells); err != nil {
		return err
	}

	if err := w.styleHeader(f, sheet, len(headers)); err != nil {
		return err
	}

	return w.save(f, fileName)
}

// WriteRollWeights exports classified roll-weight records with each row
// filled according to its deviation band.
func (w *XLSXWriter) WriteRollWeights(fileName, sheet string, records []domain.RollWeightRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.prepareSheet(f, sheet); err != nil {
		return err
	}

	headers := []string{
		config.RollWeightFGColumn,
		config.RollWeightRollNoColumn,
		config.RollWeightActualColumn,
		config.RollWeightTheoreticalColumn,
		config.RollWeightDiffColumn,
		"Band",
	}
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return err
	}

	fills, err := bandFills(f)
	if err != nil {
		return err
	}

	for i := range records {
		r := &records[i]
		rowIdx := i + 2
		cells := []string{
			r.FGDescription,
			r.RollNo,
			formatWeight(r.ActualWeight),
			formatWeight(r.TheoreticalWeight),
			formatWeight(r.Diff),
			string(r.Band),
		}
		if err := writeRow(f, sheet, rowIdx, cells); err != nil {
			return err
		}

		if styleID, ok := fills[r.Band]; ok {
			start, _ := excelize.CoordinatesToCellName(1, rowIdx)
			end, _ := excelize.CoordinatesToCellName(len(cells), rowIdx)
			if err := f.SetCellStyle(sheet, start, end, styleID); err != nil {
				return fmt.Errorf("failed to style row %d: %w", rowIdx, err)
			}
		}
	}

	if err := w.styleHeader(f, sheet, len(headers)); err != nil {
		return err
	}

	return w.save(f, fileName)
}

func (w *XLSXWriter) prepareSheet(f *excelize.File, sheet string) error {
	if sheet == "Sheet1" {
		return nil
	}
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}
	f.SetActiveSheet(index)
	return f.DeleteSheet("Sheet1")
}

func (w *XLSXWriter) styleHeader(f *excelize.File, sheet string, columns int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	start, _ := excelize.CoordinatesToCellName(1, 1)
	end, _ := excelize.CoordinatesToCellName(columns, 1)
	return f.SetCellStyle(sheet, start, end, style)
}

func (w *XLSXWriter) save(f *excelize.File, fileName string) error {
	fullPath := fileName
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(w.paths.ReportsDir, fileName)
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	w.logger.Info("writing Excel file", slog.String("path", fullPath))

	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []string) error {
	for col, cell := range cells {
		ref, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, ref, cell); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", ref, err)
		}
	}
	return nil
}

// bandFills builds one fill style per deviation band, mirroring how the
// report is highlighted on screen.
func bandFills(f *excelize.File) (map[domain.WeightBand]int, error) {
	colors := map[domain.WeightBand]string{
		domain.BandOK:    "C6EFCE",
		domain.BandWarn:  "FFEB9C",
		domain.BandAlert: "FFC7CE",
	}

	fills := make(map[domain.WeightBand]int, len(colors))
	for band, color := range colors {
		styleID, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return nil, err
		}
		fills[band] = styleID
	}
	return fills, nil
}
