package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Engine  EngineConfig  `yaml:"engine" envconfig:"ENGINE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// EngineConfig declares the input schema the engine expects. The caller
// names the dimension columns explicitly; the engine never infers them from
// header naming conventions.
type EngineConfig struct {
	LedgerSheet string `yaml:"ledger_sheet" envconfig:"LEDGER_SHEET" validate:"required"`
	LookupSheet string `yaml:"lookup_sheet" envconfig:"LOOKUP_SHEET" validate:"required"`

	DateColumn        string   `yaml:"date_column" envconfig:"DATE_COLUMN" validate:"required"`
	AccountNoColumn   string   `yaml:"account_no_column" envconfig:"ACCOUNT_NO_COLUMN" validate:"required"`
	AccountNameColumn string   `yaml:"account_name_column" envconfig:"ACCOUNT_NAME_COLUMN" validate:"required"`
	AmountColumn      string   `yaml:"amount_column" envconfig:"AMOUNT_COLUMN" validate:"required"`
	DimensionColumns  []string `yaml:"dimension_columns" envconfig:"DIMENSION_COLUMNS"`

	LookupCodeColumn string `yaml:"lookup_code_column" envconfig:"LOOKUP_CODE_COLUMN" validate:"required"`
	LookupNameColumn string `yaml:"lookup_name_column" envconfig:"LOOKUP_NAME_COLUMN" validate:"required"`
}

// RequiredColumns returns the ledger columns a load cannot proceed without.
func (e EngineConfig) RequiredColumns() []string {
	return []string{e.DateColumn, e.AccountNoColumn, e.AccountNameColumn, e.AmountColumn}
}

// Load loads configuration from environment variables and an optional
// config file. Environment takes precedence over file values.
func Load() (*Config, error) {
	var fileCfg Config
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		loaded, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		fileCfg = *loaded
	}

	cfg := fileCfg
	if err := envconfig.Process("GL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file or environment is
// present, suitable for tests and embedded use.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills fields left zero after file and env processing.
func applyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "console"
	}
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = filepath.Join("logs", "glcli.log")
	}
	if cfg.Paths.DataDir == "" {
		cfg.Paths.DataDir = "data"
	}
	if cfg.Paths.ReportsDir == "" {
		cfg.Paths.ReportsDir = filepath.Join("data", "reports")
	}
	if cfg.Paths.LogsDir == "" {
		cfg.Paths.LogsDir = "logs"
	}
	e := &cfg.Engine
	if e.LedgerSheet == "" {
		e.LedgerSheet = DefaultLedgerSheet
	}
	if e.LookupSheet == "" {
		e.LookupSheet = DefaultLookupSheet
	}
	if e.DateColumn == "" {
		e.DateColumn = DefaultDateColumn
	}
	if e.AccountNoColumn == "" {
		e.AccountNoColumn = DefaultAccountNoColumn
	}
	if e.AccountNameColumn == "" {
		e.AccountNameColumn = DefaultAccountNameColumn
	}
	if e.AmountColumn == "" {
		e.AmountColumn = DefaultAmountColumn
	}
	if len(e.DimensionColumns) == 0 {
		e.DimensionColumns = []string{"Dimension 1 Code", "Dimension 2 Code"}
	}
	if e.LookupCodeColumn == "" {
		e.LookupCodeColumn = DefaultLookupCodeColumn
	}
	if e.LookupNameColumn == "" {
		e.LookupNameColumn = DefaultLookupNameColumn
	}
}

// validate checks the configuration with struct validation tags
func (c *Config) validate() error {
	return validator.New().Struct(c)
}

// EnsureDirectories creates the configured directories if missing
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.ReportsDir, c.Paths.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetLogPath returns the full path for a log file name
func (c *Config) GetLogPath(name string) string {
	return filepath.Join(c.Paths.LogsDir, name)
}

// getConfigFilePath returns the config file location, overridable via env
func getConfigFilePath() string {
	if path := os.Getenv("GL_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}
