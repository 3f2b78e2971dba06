package dataprocessing

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glcli/internal/config"
	"glcli/pkg/contracts/domain"
)

func TestBuildLookup(t *testing.T) {
	engine := config.Default().Engine

	table := &domain.RawTable{
		Header: []string{"DimensionCode", "DimensionName"},
		Rows: [][]string{
			{"D1", "North"},
			{"D2", "South"},
			{"", "ignored"},
		},
	}

	lookup, warning := BuildLookup(slog.Default(), table, engine)
	require.Nil(t, warning)

	assert.Equal(t, 2, lookup.Len())
	assert.Equal(t, "North", lookup.Resolve("D1"))
	assert.Equal(t, "South", lookup.Resolve("D2"))
}

func TestBuildLookup_MissingColumns(t *testing.T) {
	engine := config.Default().Engine

	table := &domain.RawTable{
		Header: []string{"Code", "Label"},
		Rows:   [][]string{{"D1", "North"}},
	}

	lookup, warning := BuildLookup(slog.Default(), table, engine)

	require.NotNil(t, warning)
	assert.Equal(t, WarnMalformedLookup, warning.Code)
	assert.Contains(t, warning.Message, "DimensionCode")
	// Degraded to pass-through, not a failure
	assert.Equal(t, 0, lookup.Len())
	assert.Equal(t, "D1", lookup.Resolve("D1"))
}

func TestBuildLookup_DuplicateCodes(t *testing.T) {
	engine := config.Default().Engine

	table := &domain.RawTable{
		Header: []string{"DimensionCode", "DimensionName"},
		Rows: [][]string{
			{"D1", "North"},
			{"D1", "East"},
		},
	}

	lookup, warning := BuildLookup(slog.Default(), table, engine)

	require.NotNil(t, warning)
	assert.Equal(t, WarnMalformedLookup, warning.Code)
	assert.Contains(t, warning.Message, "D1")
	assert.Equal(t, 0, lookup.Len())
}

func TestDimensionLookup_Resolve(t *testing.T) {
	lookup := domain.NewDimensionLookup(map[string]string{"D1": "North"})

	tests := []struct {
		name string
		code string
		want string
	}{
		{"mapped code", "D1", "North"},
		{"unmapped code falls through", "D2", "D2"},
		{"already-resolved name is unchanged", "North", "North"},
		{"empty code", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lookup.Resolve(tt.code))
		})
	}
}

func TestDimensionLookup_ResolveIsIdempotent(t *testing.T) {
	lookup := domain.NewDimensionLookup(map[string]string{"D1": "North"})

	// Resolving a resolved value that is absent from the mapping returns it
	// unchanged, so resolution can be applied repeatedly.
	once := lookup.Resolve("D2")
	assert.Equal(t, once, lookup.Resolve(once))

	resolved := lookup.Resolve("D1")
	assert.Equal(t, "North", lookup.Resolve(resolved))
}

func TestEmptyDimensionLookup_PassThrough(t *testing.T) {
	lookup := domain.EmptyDimensionLookup()

	for _, code := range []string{"D1", "anything", ""} {
		assert.Equal(t, code, lookup.Resolve(code))
	}
}
