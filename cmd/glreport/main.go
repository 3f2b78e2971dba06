package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"glcli/internal/config"
	"glcli/internal/dataprocessing"
	"glcli/internal/errors"
	"glcli/internal/exporter"
	"glcli/internal/files"
	"glcli/internal/infrastructure"
	"glcli/pkg/contracts/domain"
)

func main() {
	in := flag.String("in", "", "GL workbook path, or a directory holding workbooks (newest wins)")
	out := flag.String("out", "", "output directory for report files (defaults to configured reports dir)")
	years := flag.String("years", "", "comma-separated financial years to include, e.g. 2024-25,2025-26")
	months := flag.String("months", "", "comma-separated month buckets to include, e.g. Apr-25,May-25")
	entity := flag.String("entity", "", "exact account name to include")
	search := flag.String("search", "", "case-insensitive substring match on account name or number")
	dimension := flag.String("dimension", "", "dimension column for dimension summary and pivot")
	pivot := flag.Bool("pivot", false, "also export the dimension/account pivot (requires -dimension)")
	format := flag.String("format", "csv", "output format: csv, xlsx, or both")
	listFilters := flag.Bool("list-filters", false, "list the selectable financial years and month buckets and exit")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "glreport: -in is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if *out != "" {
		cfg.Paths.ReportsDir = *out
	}
	if err := cfg.EnsureDirectories(); err != nil {
		slog.Error("failed to create required directories", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	ctx := context.Background()

	discovery := files.NewDiscovery(cfg.Paths.DataDir)
	workbook, err := discovery.ResolveWorkbook(*in)
	if err != nil {
		logger.Error("workbook resolution failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("starting GL report run",
		slog.String("workbook", workbook),
		slog.String("reports_dir", cfg.Paths.ReportsDir))

	loader := dataprocessing.NewLoader(logger, cfg.Engine)
	result, err := loader.LoadWorkbook(workbook)
	if err != nil {
		logger.Error("workbook load failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "glreport: %v\n", err)
		os.Exit(1)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning.Message)
	}

	cache := dataprocessing.NewBatchCache(logger)
	normalizer := dataprocessing.NewNormalizer(logger, cfg.Engine)
	batch, err := cache.NormalizeLedger(ctx, result.Ledger, normalizer)
	if err != nil {
		if errors.IsType(err, errors.ErrTypeMissingColumn) {
			fmt.Fprintf(os.Stderr, "glreport: workbook is missing required columns: %s\n",
				strings.Join(errors.MissingColumns(err), ", "))
		} else {
			fmt.Fprintf(os.Stderr, "glreport: %v\n", err)
		}
		os.Exit(1)
	}

	if *listFilters {
		yearSet := make(map[string]bool)
		for _, y := range splitList(*years) {
			yearSet[y] = true
		}
		fmt.Println("Financial years:", strings.Join(batch.FinancialYears(), ", "))
		fmt.Println("Month buckets:  ", strings.Join(batch.MonthBuckets(yearSet), ", "))
		return
	}

	spec := domain.FilterSpec{
		FinancialYears: splitList(*years),
		Months:         splitList(*months),
		SelectedEntity: *entity,
		SearchTerm:     *search,
	}
	records := dataprocessing.ApplyFilter(batch.Records, spec)
	logger.Info("filter applied",
		slog.Int("input_records", len(batch.Records)),
		slog.Int("selected_records", len(records)))

	aggregator := dataprocessing.NewAggregator(logger)

	insights, err := aggregator.Insights(ctx, records)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glreport: %v\n", err)
		os.Exit(1)
	}
	printInsights(insights, len(records))

	summary, err := aggregator.AccountSummary(ctx, records)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glreport: %v\n", err)
		os.Exit(1)
	}

	csvWriter := exporter.NewCSVWriter(logger, cfg.Paths)
	xlsxWriter := exporter.NewXLSXWriter(logger, cfg.Paths)
	writeCSV := *format == "csv" || *format == "both"
	writeXLSX := *format == "xlsx" || *format == "both"

	if writeCSV {
		if err := csvWriter.WriteSummary("account_summary.csv", summary); err != nil {
			logger.Error("CSV export failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	if writeXLSX {
		if err := xlsxWriter.WriteSummary("account_summary.xlsx", "Summary", summary); err != nil {
			logger.Error("Excel export failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if *dimension != "" {
		dimSummary, err := aggregator.DimensionSummary(ctx, records, *dimension, result.Lookup)
		if err != nil {
			fmt.Fprintf(os.Stderr, "glreport: %v\n", err)
			os.Exit(1)
		}
		if writeCSV {
			if err := csvWriter.WriteSummary("dimension_summary.csv", dimSummary); err != nil {
				logger.Error("CSV export failed", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
		if writeXLSX {
			if err := xlsxWriter.WriteSummary("dimension_summary.xlsx", "Dimensions", dimSummary); err != nil {
				logger.Error("Excel export failed", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}

		if *pivot {
			table, err := aggregator.Pivot(ctx, records, *dimension, result.Lookup)
			if err != nil {
				fmt.Fprintf(os.Stderr, "glreport: %v\n", err)
				os.Exit(1)
			}
			if writeCSV {
				if err := csvWriter.WritePivot("dimension_pivot.csv", table, *dimension); err != nil {
					logger.Error("CSV export failed", slog.String("error", err.Error()))
					os.Exit(1)
				}
			}
			if writeXLSX {
				if err := xlsxWriter.WritePivot("dimension_pivot.xlsx", "Pivot", table, *dimension); err != nil {
					logger.Error("Excel export failed", slog.String("error", err.Error()))
					os.Exit(1)
				}
			}
		}
	}

	logger.Info("GL report run complete",
		slog.Int("dropped_rows", batch.DroppedRows),
		slog.Int("selected_records", len(records)))
	fmt.Printf("Reports written to %s\n", cfg.Paths.ReportsDir)
}

func printInsights(insights *domain.KeyInsights, records int) {
	fmt.Printf("Records selected:  %d\n", records)
	fmt.Printf("Total amount:      %s\n", exporter.FormatDecimal(insights.TotalAmount))
	fmt.Printf("Unique accounts:   %d\n", insights.UniqueAccounts)
	fmt.Printf("Months covered:    %d\n", insights.SelectedMonths)
	if insights.HasTopAccount() {
		fmt.Printf("Top account:       %s (%s)\n",
			insights.TopAccountName, exporter.FormatDecimal(insights.TopAccountAmount))
	}
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
