package dataprocessing

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"glcli/internal/config"
	"glcli/internal/errors"
	"glcli/pkg/contracts/domain"
)

// WarningCode identifies a non-fatal load condition surfaced to the caller.
type WarningCode string

const (
	WarnLookupSheetMissing WarningCode = "LOOKUP_SHEET_MISSING"
	WarnMalformedLookup    WarningCode = "MALFORMED_LOOKUP"
)

// Warning is a non-fatal signal emitted during a load. The presentation
// layer decides how to surface it.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

// LoadResult carries everything a workbook load produces: the raw ledger
// table, the dimension lookup (possibly empty), and any warnings.
type LoadResult struct {
	Ledger   *domain.RawTable
	Lookup   *domain.DimensionLookup
	Warnings []Warning
}

// Loader reads uploaded workbooks into raw tables.
type Loader struct {
	logger *slog.Logger
	engine config.EngineConfig
}

// NewLoader creates a workbook loader for the given engine schema.
func NewLoader(logger *slog.Logger, engine config.EngineConfig) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, engine: engine}
}

// LoadWorkbook opens an Excel workbook and extracts the ledger sheet and the
// optional dimension lookup sheet. A missing ledger sheet is fatal; a missing
// or malformed lookup sheet degrades to an empty mapping with a warning.
func (l *Loader) LoadWorkbook(path string) (*LoadResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	ledger, err := l.readSheet(f, l.engine.LedgerSheet, 0)
	if err != nil {
		return nil, errors.NewParsingError(
			fmt.Sprintf("workbook does not contain a %q sheet", l.engine.LedgerSheet), err)
	}

	result := &LoadResult{Ledger: ledger}

	lookupTable, err := l.readSheet(f, l.engine.LookupSheet, 0)
	if err != nil {
		result.Lookup = domain.EmptyDimensionLookup()
		result.Warnings = append(result.Warnings, Warning{
			Code:    WarnLookupSheetMissing,
			Message: fmt.Sprintf("sheet %q not found, using empty mapping", l.engine.LookupSheet),
		})
		l.logger.Warn("lookup sheet not found, using empty mapping",
			slog.String("sheet", l.engine.LookupSheet))
	} else {
		lookup, warning := BuildLookup(l.logger, lookupTable, l.engine)
		result.Lookup = lookup
		if warning != nil {
			result.Warnings = append(result.Warnings, *warning)
		}
	}

	l.logger.Info("workbook loaded",
		slog.String("path", path),
		slog.Int("ledger_rows", len(ledger.Rows)),
		slog.Int("lookup_entries", result.Lookup.Len()),
		slog.Int("warnings", len(result.Warnings)))

	return result, nil
}

// LoadRollWeightWorkbook opens a roll-weight production report. The sheet
// carries a banner row above the header, so the header row index is
// configurable.
func (l *Loader) LoadRollWeightWorkbook(path string) (*domain.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	table, err := l.readSheet(f, config.RollWeightSheet, config.RollWeightHeaderRow)
	if err != nil {
		return nil, errors.NewParsingError(
			fmt.Sprintf("workbook does not contain a %q sheet", config.RollWeightSheet), err)
	}

	l.logger.Info("roll-weight workbook loaded",
		slog.String("path", path),
		slog.Int("rows", len(table.Rows)))

	return table, nil
}

// readSheet extracts one sheet as a RawTable, treating row headerRow as the
// header and everything below it as data.
func (l *Loader) readSheet(f *excelize.File, sheet string, headerRow int) (*domain.RawTable, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) <= headerRow {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}

	return &domain.RawTable{
		Header: rows[headerRow],
		Rows:   rows[headerRow+1:],
	}, nil
}
