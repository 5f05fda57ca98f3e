package config

import (
	"fmt"
	"os"
	"path/filepath"
	"t12fmt/internal/logger"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Scan   ScanConfig   `toml:"scan"`
	Format FormatConfig `toml:"format"`
	Log    LogConfig    `toml:"log"`
	Assist AssistConfig `toml:"assist"`
	UI     UIConfig     `toml:"ui"`
}

type ScanConfig struct {
	InputDirectory  string `toml:"input_directory" validate:"required"`
	OutputDirectory string `toml:"output_directory" validate:"required"`
}

type FormatConfig struct {
	ReportKind   string  `toml:"report_kind" validate:"omitempty,oneof=summary detail"`
	FooterMarker string  `toml:"footer_marker" validate:"required"`
	FooterWindow int     `toml:"footer_window" validate:"gte=1,lte=100"`
	ColumnWidth  float64 `toml:"column_width" validate:"gt=0,lte=255"`
}

type LogConfig struct {
	Directory string `toml:"directory" validate:"required"`
	Level     string `toml:"level" validate:"omitempty,oneof=debug info warn warning error"`
}

// AssistConfig controls the optional Gemini fallback for unreadable report dates.
type AssistConfig struct {
	Enabled        bool   `toml:"enabled"`
	Model          string `toml:"model" validate:"required_if=Enabled true"`
	TimeoutSeconds int    `toml:"timeout_seconds" validate:"gte=0"`
}

type UIConfig struct {
	RowsPerPage int `toml:"rows_per_page" validate:"gte=3"`
}

// Default returns the configuration written on first run.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			InputDirectory:  "data/input",
			OutputDirectory: "data/output",
		},
		Format: FormatConfig{
			ReportKind:   "summary",
			FooterMarker: "Created on",
			FooterWindow: 10,
			ColumnWidth:  12,
		},
		Log: LogConfig{
			Directory: "logs",
			Level:     "info",
		},
		Assist: AssistConfig{
			Enabled:        false,
			Model:          "gemini-2.0-flash-exp",
			TimeoutSeconds: 60,
		},
		UI: UIConfig{
			RowsPerPage: 15,
		},
	}
}

// LoadConfig loads configuration from the specified config file path
func LoadConfig(configPath string) (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configDir := filepath.Dir(configPath)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		defaultConfig := Default()
		err = SaveConfig(configPath, defaultConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}

		logger.Info("Created default config file", "path", configPath)
		return defaultConfig, nil
	}

	var config Config
	_, err := toml.DecodeFile(configPath, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	logger.Info("Loaded configuration", "path", configPath)
	return &config, nil
}

// Set defaults if missing
func applyDefaults(config *Config) {
	defaults := Default()

	if config.Scan.InputDirectory == "" {
		config.Scan.InputDirectory = defaults.Scan.InputDirectory
	}
	if config.Scan.OutputDirectory == "" {
		config.Scan.OutputDirectory = defaults.Scan.OutputDirectory
	}
	if config.Format.FooterMarker == "" {
		config.Format.FooterMarker = defaults.Format.FooterMarker
	}
	if config.Format.FooterWindow == 0 {
		config.Format.FooterWindow = defaults.Format.FooterWindow
	}
	if config.Format.ColumnWidth == 0 {
		config.Format.ColumnWidth = defaults.Format.ColumnWidth
	}
	if config.Log.Directory == "" {
		config.Log.Directory = defaults.Log.Directory
	}
	if config.Log.Level == "" {
		config.Log.Level = defaults.Log.Level
	}
	if config.Assist.Model == "" {
		config.Assist.Model = defaults.Assist.Model
	}
	if config.Assist.TimeoutSeconds == 0 {
		config.Assist.TimeoutSeconds = defaults.Assist.TimeoutSeconds
	}
	if config.UI.RowsPerPage == 0 {
		config.UI.RowsPerPage = defaults.UI.RowsPerPage
	}
}

// Validate checks field constraints declared in the struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// SaveConfig saves configuration to the specified config file path
func SaveConfig(configPath string, config *Config) error {
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	err = encoder.Encode(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	logger.Info("Saved configuration", "path", configPath)
	return nil
}
