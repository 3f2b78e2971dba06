package dataprocessing

import (
	"fmt"
	"log/slog"
	"strings"

	"glcli/internal/config"
	"glcli/pkg/contracts/domain"
)

// BuildLookup constructs the dimension lookup from its raw table. The table
// must carry the configured code and name columns; anything else degrades to
// an empty mapping with a MalformedLookup warning rather than failing the
// load. Duplicate codes are treated the same way: the lookup enforces key
// uniqueness, so a table that violates it is malformed as a whole.
func BuildLookup(logger *slog.Logger, table *domain.RawTable, engine config.EngineConfig) (*domain.DimensionLookup, *Warning) {
	if logger == nil {
		logger = slog.Default()
	}

	codeCol := table.ColumnIndex(engine.LookupCodeColumn)
	nameCol := table.ColumnIndex(engine.LookupNameColumn)
	if codeCol < 0 || nameCol < 0 {
		msg := fmt.Sprintf("lookup sheet missing expected columns %q/%q, found: %s",
			engine.LookupCodeColumn, engine.LookupNameColumn, strings.Join(table.Header, ", "))
		logger.Warn("malformed dimension lookup, using empty mapping", slog.String("reason", msg))
		return domain.EmptyDimensionLookup(), &Warning{Code: WarnMalformedLookup, Message: msg}
	}

	entries := make(map[string]string)
	for i := range table.Rows {
		code := strings.TrimSpace(table.Cell(i, codeCol))
		if code == "" {
			continue
		}
		if _, exists := entries[code]; exists {
			msg := fmt.Sprintf("duplicate dimension code %q in lookup sheet", code)
			logger.Warn("malformed dimension lookup, using empty mapping", slog.String("reason", msg))
			return domain.EmptyDimensionLookup(), &Warning{Code: WarnMalformedLookup, Message: msg}
		}
		entries[code] = strings.TrimSpace(table.Cell(i, nameCol))
	}

	return domain.NewDimensionLookup(entries), nil
}
