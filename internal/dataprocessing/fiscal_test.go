package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFinancialYearLabel(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{
			name: "april starts the new fiscal year",
			date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			want: "2025-26",
		},
		{
			name: "march belongs to the previous fiscal year",
			date: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
			want: "2024-25",
		},
		{
			name: "mid fiscal year",
			date: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
			want: "2024-25",
		},
		{
			name: "january is late in the fiscal year",
			date: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			want: "2024-25",
		},
		{
			name: "december",
			date: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			want: "2024-25",
		},
		{
			name: "century boundary pads the short year",
			date: time.Date(2099, 5, 1, 0, 0, 0, 0, time.UTC),
			want: "2099-00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FinancialYearLabel(tt.date))
		})
	}
}

func TestFinancialYearLabel_InvariantWithinWindow(t *testing.T) {
	// Every date inside one April–March window must carry the same label.
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	want := FinancialYearLabel(start)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 7) {
		assert.Equal(t, want, FinancialYearLabel(d), "date %s", d.Format("2006-01-02"))
	}
	assert.Equal(t, want, FinancialYearLabel(end))
}

func TestFinancialYearLabel_BoundaryAlwaysSplits(t *testing.T) {
	// March 31 and April 1, one day apart, always yield different labels.
	for year := 2000; year <= 2100; year++ {
		march := time.Date(year, 3, 31, 0, 0, 0, 0, time.UTC)
		april := time.Date(year, 4, 1, 0, 0, 0, 0, time.UTC)
		assert.NotEqual(t, FinancialYearLabel(march), FinancialYearLabel(april), "year %d", year)
	}
}

func TestMonthBucket(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), "Apr-25"},
		{time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), "Dec-24"},
		{time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), "Jan-25"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthBucket(tt.date))
		})
	}
}
