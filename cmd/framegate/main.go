// Package main implements the entry point for the framegate CLI.
// framegate fetches sensor readings, encodes them into checksummed binary
// frames, and classifies the frame stream into essential frames and derived
// power signals.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/Vikasg7/PowerAwareIOTProject/config"
	"github.com/Vikasg7/PowerAwareIOTProject/input/csvfile"
	"github.com/Vikasg7/PowerAwareIOTProject/metric"
	"github.com/Vikasg7/PowerAwareIOTProject/payload"
	"github.com/Vikasg7/PowerAwareIOTProject/pipeline"
	"github.com/Vikasg7/PowerAwareIOTProject/pkg/retry"
	"github.com/Vikasg7/PowerAwareIOTProject/pkg/timestamp"
	"github.com/Vikasg7/PowerAwareIOTProject/weather"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "framegate"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	// Run application with proper error handling
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}
	if cliCfg.ShowHelp {
		printHelp()
		return nil
	}

	cfg, err := config.Load(cliCfg.ConfigPath)
	if err != nil {
		return err
	}

	// Flags win over the config file and environment.
	if cliCfg.LogLevel != "" {
		cfg.Logging.Level = cliCfg.LogLevel
	}
	if cliCfg.LogFormat != "" {
		cfg.Logging.Format = cliCfg.LogFormat
	}
	if err := cfg.Logging.Validate(); err != nil {
		return err
	}

	logger := setupLogger(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	if cliCfg.Validate {
		logger.Info("Configuration is valid", "config_path", cliCfg.ConfigPath)
		return nil
	}

	logger.Info("Starting framegate",
		"command", cliCfg.Command,
		"config_path", cliCfg.ConfigPath)

	registry := metric.NewRegistry()

	switch cliCfg.Command {
	case cmdFetch:
		return runFetch(cfg, logger)
	case cmdEncode:
		p, err := pipeline.New(cfg.Pipeline, logger, registry.Metrics)
		if err != nil {
			return err
		}
		_, err = p.EncodeReadings()
		return err
	case cmdRun:
		p, err := pipeline.New(cfg.Pipeline, logger, registry.Metrics)
		if err != nil {
			return err
		}
		return runClassify(p)
	default:
		p, err := pipeline.New(cfg.Pipeline, logger, registry.Metrics)
		if err != nil {
			return err
		}
		if _, err := p.EncodeReadings(); err != nil {
			return err
		}
		return runClassify(p)
	}
}

// runFetch pulls the historic observations and writes the input CSV the
// encode step reads.
func runFetch(cfg config.Config, logger *slog.Logger) error {
	from, err := time.Parse(timestamp.DateLayout, cfg.Weather.FromDate)
	if err != nil {
		return fmt.Errorf("invalid from_date %q: %w", cfg.Weather.FromDate, err)
	}
	to, err := time.Parse(timestamp.DateLayout, cfg.Weather.ToDate)
	if err != nil {
		return fmt.Errorf("invalid to_date %q: %w", cfg.Weather.ToDate, err)
	}

	client, err := weather.NewClient(weather.Config{
		BaseURL:  cfg.Weather.BaseURL,
		APIKey:   cfg.Weather.APIKey,
		Location: cfg.Weather.Location,
	}, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	readings, err := retry.DoWithResult(ctx, retry.DefaultConfig(),
		func() ([]payload.SensorData, error) {
			return client.PastWeather(ctx, from, to)
		})
	if err != nil {
		return err
	}

	dst, err := os.Create(cfg.Pipeline.InputCSV)
	if err != nil {
		return fmt.Errorf("create %s: %w", cfg.Pipeline.InputCSV, err)
	}
	defer dst.Close()
	if err := csvfile.WriteReadings(dst, readings); err != nil {
		return err
	}

	logger.Info("wrote input readings",
		"path", cfg.Pipeline.InputCSV,
		"readings", len(readings))
	return nil
}

// runClassify executes the decode-train-classify pass and prints the run
// summary for scripted callers.
func runClassify(p *pipeline.Pipeline) error {
	result, err := p.Run()
	if err != nil {
		return err
	}
	fmt.Printf("frames=%d essential=%d signals=%d essential_pct=%.2f\n",
		len(result.Frames), result.EssentialCount(), result.SignalCount(),
		result.EssentialPercentage())
	return nil
}
