// Package dataprocessing implements the transformation and aggregation engine
// for tabular financial exports: general-ledger workbooks and roll-weight
// production reports.
//
// # Architecture
//
// The engine is a chain of pure stages over in-memory batches:
//
//	Raw rows → Normalizer → derived fiscal fields → dimension resolution →
//	Filter → Aggregator → (exporter renders the result tables)
//
// 1. Loader: reads workbook sheets into RawTables via excelize
// 2. Normalizer: validates required columns and coerces rows into records
// 3. Fiscal calculator: financial-year and month-bucket labels
// 4. Resolver: dimension code → display name with identity fallback
// 5. Filter: AND-composed, non-mutating predicates
// 6. Aggregator: flat summaries, pivots, and key insights
//
// # Immutability and caching
//
// Every intermediate structure is immutable once produced, so concurrent use
// by independent batches needs no locking. BatchCache memoizes normalized
// batches keyed by a content hash of the raw table; filtering and
// aggregation always re-run.
//
// # Error Handling
//
// Schema-level problems (missing required columns) abort the load and are
// reported once. Row-level anomalies (unparseable dates, unknown dimension
// codes, non-numeric amounts) are absorbed with safe defaults and never
// abort the batch. A lookup sheet that is absent or malformed degrades to an
// empty mapping and surfaces a warning.
package dataprocessing
