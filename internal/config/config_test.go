package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "GL", cfg.Engine.LedgerSheet)
	assert.Equal(t, "DimensionLookup", cfg.Engine.LookupSheet)
	assert.Equal(t, "Posting Date", cfg.Engine.DateColumn)
	assert.Equal(t, "Amount (LCY)", cfg.Engine.AmountColumn)
	assert.Equal(t, []string{"Dimension 1 Code", "Dimension 2 Code"}, cfg.Engine.DimensionColumns)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestEngineConfig_RequiredColumns(t *testing.T) {
	cfg := Default()

	want := []string{"Posting Date", "G/L Account No.", "G/L Account Name", "Amount (LCY)"}
	assert.Equal(t, want, cfg.Engine.RequiredColumns())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("GL_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("GL_ENGINE_LEDGER_SHEET", "Ledger")
	t.Setenv("GL_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Ledger", cfg.Engine.LedgerSheet)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched fields keep defaults
	assert.Equal(t, "DimensionLookup", cfg.Engine.LookupSheet)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := []byte(`
engine:
  ledger_sheet: Transactions
  dimension_columns:
    - Cost Center Code
paths:
  reports_dir: out/reports
`)
	require.NoError(t, os.WriteFile(configFile, content, 0644))
	t.Setenv("GL_CONFIG_FILE", configFile)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Transactions", cfg.Engine.LedgerSheet)
	assert.Equal(t, []string{"Cost Center Code"}, cfg.Engine.DimensionColumns)
	assert.Equal(t, "out/reports", cfg.Paths.ReportsDir)
	// File values fill in, defaults cover the rest
	assert.Equal(t, "Posting Date", cfg.Engine.DateColumn)
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Paths.DataDir = filepath.Join(dir, "data")
	cfg.Paths.ReportsDir = filepath.Join(dir, "data", "reports")
	cfg.Paths.LogsDir = filepath.Join(dir, "logs")

	require.NoError(t, cfg.EnsureDirectories())

	for _, d := range []string{cfg.Paths.DataDir, cfg.Paths.ReportsDir, cfg.Paths.LogsDir} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
