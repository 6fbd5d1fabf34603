// Package config loads and validates the application configuration.
//
// Configuration is a JSON file with one section per concern. Every section
// has a Validate method and a default; Load applies defaults, then the file,
// then environment overrides. Secrets (the weather API key) come only from
// the environment, optionally via a .env file, never from the config file.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Vikasg7/PowerAwareIOTProject/errors"
)

// Environment variable names recognized by Load.
const (
	EnvWeatherKey     = "WEATHER_API_KEY"
	EnvWeatherBaseURL = "WEATHER_BASE_URL"
	EnvLogLevel       = "LOG_LEVEL"
)

// Config represents the complete application configuration
type Config struct {
	Pipeline PipelineConfig `json:"pipeline"`
	Weather  WeatherConfig  `json:"weather"`
	Logging  LoggingConfig  `json:"logging"`
}

// PipelineConfig controls the encode-classify pipeline.
type PipelineConfig struct {
	// InputCSV is the reading-row file the collaborator produced.
	InputCSV string `json:"input_csv"`
	// FrameFile is the binary frame file, the simulated wire.
	FrameFile string `json:"frame_file"`
	// SignalFile, when set, receives the derived signal frames.
	SignalFile string `json:"signal_file,omitempty"`
	// ReportDir, when set, receives the plot-feed CSV files.
	ReportDir string `json:"report_dir,omitempty"`
	// TrainingWindow is the number of leading frames used to seed the
	// classifier: one calendar day of hourly samples.
	TrainingWindow int `json:"training_window"`
}

// WeatherConfig controls the historic-weather fetch.
type WeatherConfig struct {
	BaseURL  string `json:"base_url,omitempty"`
	Location string `json:"location"`
	// FromDate and ToDate bound the fetch, "YYYY-MM-DD", inclusive.
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	// APIKey is populated from the environment, not the file.
	APIKey string `json:"-"`
}

// LoggingConfig controls the slog setup.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level"`
	// Format is "text" (tinted for terminals) or "json".
	Format string `json:"format"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Pipeline: PipelineConfig{
			InputCSV:       "input/data.csv",
			FrameFile:      "input/frames.bin",
			TrainingWindow: 24,
		},
		Weather: WeatherConfig{
			Location: "kolkata",
			FromDate: "2023-01-01",
			ToDate:   "2023-01-31",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if err := c.Pipeline.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks the pipeline section
func (c *PipelineConfig) Validate() error {
	if c.InputCSV == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "PipelineConfig", "Validate", "input_csv is required")
	}
	if c.FrameFile == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "PipelineConfig", "Validate", "frame_file is required")
	}
	if c.TrainingWindow <= 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "PipelineConfig", "Validate",
			fmt.Sprintf("training_window must be positive, got %d", c.TrainingWindow))
	}
	return nil
}

// Validate checks the logging section
func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.WrapInvalid(errors.ErrInvalidConfig, "LoggingConfig", "Validate",
			fmt.Sprintf("unknown log level %q", c.Level))
	}
	switch c.Format {
	case "text", "json":
	default:
		return errors.WrapInvalid(errors.ErrInvalidConfig, "LoggingConfig", "Validate",
			fmt.Sprintf("unknown log format %q", c.Format))
	}
	return nil
}

// Load reads configuration: defaults, then the JSON file if path is
// non-empty, then environment overrides. A .env file in the working
// directory is folded into the environment first if present.
func Load(path string) (Config, error) {
	cfg := Default()

	// Missing .env is the common case, not an error.
	_ = godotenv.Load()

	if path != "" {
		bs, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.WrapInvalid(errors.ErrMissingConfig, "config", "Load",
				fmt.Sprintf("read %s: %v", path, err))
		}
		if err := json.Unmarshal(bs, &cfg); err != nil {
			return Config{}, errors.WrapInvalid(errors.ErrInvalidConfig, "config", "Load",
				fmt.Sprintf("parse %s: %v", path, err))
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "config", "Load", "validation")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvWeatherKey); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv(EnvWeatherBaseURL); v != "" {
		cfg.Weather.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
}
