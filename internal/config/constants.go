package config

// Default workbook schema. These match the column headers the exporting
// system (Business Central style GL exports) produces.
const (
	DefaultLedgerSheet = "GL"
	DefaultLookupSheet = "DimensionLookup"

	DefaultDateColumn        = "Posting Date"
	DefaultAccountNoColumn   = "G/L Account No."
	DefaultAccountNameColumn = "G/L Account Name"
	DefaultAmountColumn      = "Amount (LCY)"

	DefaultLookupCodeColumn = "DimensionCode"
	DefaultLookupNameColumn = "DimensionName"
)

// Roll-weight report schema. The production report carries its header on the
// second sheet row; the first row is a banner.
const (
	RollWeightSheet     = "Sheet1"
	RollWeightHeaderRow = 1

	RollWeightFGColumn          = "FG Description"
	RollWeightRollNoColumn      = "Roll No"
	RollWeightActualColumn      = "Actual Roll Wt"
	RollWeightTheoreticalColumn = "Theoretical Roll Wt (Incl Toller)"
	RollWeightDiffColumn        = "Diff"
)

// RollWeightOptionalColumns are numeric columns carried through when present.
var RollWeightOptionalColumns = []string{
	"BOM per SQM- PY & OY",
	"Sqm Woven- Theoretical",
}

// Date layouts tried in order when coercing posting dates.
var DateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"02-01-2006",
	"01/02/2006",
	"02/01/2006",
	"2-Jan-06",
	"Jan 2, 2006",
}

// MonthBucketLayout renders posting dates as display grouping labels,
// e.g. "Apr-25".
const MonthBucketLayout = "Jan-06"
