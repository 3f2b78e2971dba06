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
	in := flag.String("in", "", "roll-weight workbook path, or a directory holding workbooks (newest wins)")
	out := flag.String("out", "", "output directory for report files (defaults to configured reports dir)")
	fg := flag.String("fg", "", "comma-separated finished-goods descriptions to include (default all)")
	format := flag.String("format", "xlsx", "output format: csv, xlsx, or both")
	listFG := flag.Bool("list-fg", false, "list the finished-goods descriptions in the workbook and exit")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "rollweight: -in is required")
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

	logger.Info("starting roll-weight report run", slog.String("workbook", workbook))

	loader := dataprocessing.NewLoader(logger, cfg.Engine)
	table, err := loader.LoadRollWeightWorkbook(workbook)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rollweight: %v\n", err)
		os.Exit(1)
	}

	cache := dataprocessing.NewBatchCache(logger)
	normalizer := dataprocessing.NewRollWeightNormalizer(logger)
	batch, err := cache.NormalizeRollWeight(ctx, table, normalizer)
	if err != nil {
		if errors.IsType(err, errors.ErrTypeMissingColumn) {
			fmt.Fprintf(os.Stderr, "rollweight: workbook is missing required columns: %s\n",
				strings.Join(errors.MissingColumns(err), ", "))
		} else {
			fmt.Fprintf(os.Stderr, "rollweight: %v\n", err)
		}
		os.Exit(1)
	}

	if *listFG {
		for _, d := range batch.FGDescriptions() {
			fmt.Println(d)
		}
		return
	}

	records := dataprocessing.FilterByFG(batch.Records, splitList(*fg))
	logger.Info("finished-goods filter applied",
		slog.Int("input_records", len(batch.Records)),
		slog.Int("selected_records", len(records)))

	printBandCounts(records)

	csvWriter := exporter.NewCSVWriter(logger, cfg.Paths)
	xlsxWriter := exporter.NewXLSXWriter(logger, cfg.Paths)

	if *format == "csv" || *format == "both" {
		if err := csvWriter.WriteRollWeights("roll_weights.csv", records); err != nil {
			logger.Error("CSV export failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	if *format == "xlsx" || *format == "both" {
		if err := xlsxWriter.WriteRollWeights("roll_weights.xlsx", "Rolls", records); err != nil {
			logger.Error("Excel export failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("roll-weight report run complete",
		slog.Int("dropped_rows", batch.DroppedRows),
		slog.Int("selected_records", len(records)))
	fmt.Printf("Reports written to %s\n", cfg.Paths.ReportsDir)
}

func printBandCounts(records []domain.RollWeightRecord) {
	counts := map[domain.WeightBand]int{}
	for i := range records {
		counts[records[i].Band]++
	}
	fmt.Printf("Rolls selected: %d (ok %d, warn %d, alert %d)\n",
		len(records), counts[domain.BandOK], counts[domain.BandWarn], counts[domain.BandAlert])
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
