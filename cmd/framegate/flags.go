package main

import (
	"flag"
	"fmt"
	"os"
)

// Commands the CLI accepts as its single positional argument.
const (
	cmdFetch  = "fetch"
	cmdEncode = "encode"
	cmdRun    = "run"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	LogLevel    string
	LogFormat   string
	Command     string
	ShowVersion bool
	ShowHelp    bool
	Validate    bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("FRAMEGATE_CONFIG", ""),
		"Path to configuration file (env: FRAMEGATE_CONFIG)")

	flag.StringVar(&cfg.ConfigPath, "c",
		getEnv("FRAMEGATE_CONFIG", ""),
		"Path to configuration file (env: FRAMEGATE_CONFIG)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("FRAMEGATE_LOG_LEVEL", ""),
		"Log level: debug, info, warn, error (env: FRAMEGATE_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("FRAMEGATE_LOG_FORMAT", ""),
		"Log format: json, text (env: FRAMEGATE_LOG_FORMAT)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	// Custom usage
	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	cfg.Command = flag.Arg(0)
	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "", "json", "text":
	default:
		return fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}
	switch cfg.Command {
	case "", cmdFetch, cmdEncode, cmdRun:
	default:
		return fmt.Errorf("unknown command %q", cfg.Command)
	}
	if flag.NArg() > 1 {
		return fmt.Errorf("too many arguments: %v", flag.Args()[1:])
	}
	return nil
}

func printHelp() {
	printDetailedHelp()
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - power-aware sensor frame pipeline

Usage: %s [options] [command]

Commands:
  fetch    Fetch historic weather readings into the input CSV
  encode   Encode the input CSV into the binary frame file
  run      Decode, classify, and derive signals from the frame file
           (default when no command is given: encode then run)

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Run the full pipeline with a custom config
  %s --config=/path/to/config.json

  # Fetch readings with debug logging
  %s --log-level=debug fetch

  # Run with environment variables
  export FRAMEGATE_CONFIG=/etc/framegate/config.json
  export WEATHER_API_KEY=...
  %s fetch

  # Validate configuration only
  %s --validate

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
