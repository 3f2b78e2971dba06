// Package exporter renders aggregation results for human consumption: CSV
// and Excel files on disk, plus the display formatting applied to amounts.
//
// Formatting is strictly a presentation concern. Aggregation always runs on
// raw numeric values; only the writers in this package turn them into
// grouped display strings, and ParseIndian recovers the numeric value from
// any string FormatIndian produced.
package exporter
