package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvLogLevel    = "MOSS_LOG_LEVEL"
	EnvLogFormat   = "MOSS_LOG_FORMAT"
	EnvPreviewPort = "MOSS_PREVIEW_PORT"
	EnvMetrics     = "MOSS_METRICS"
	EnvReport      = "MOSS_REPORT"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads .env and .env.local when present. Variables already in
// the process environment are never overwritten.
func loadEnvFile() {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			slog.Warn("Failed to load env file", slog.String("file", f), slog.String("error", err.Error()))
			continue
		}
		slog.Debug("Loaded environment variables", slog.String("file", f))
	}
}

func applyEnvOverrides(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = LogLevel(v)
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok && v != "" {
		cfg.Log.Format = LogFormat(v)
	}
	if v, ok := os.LookupEnv(EnvPreviewPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid port %q", EnvPreviewPort, v)
		}
		cfg.Preview.Port = port
	}
	if v, ok := os.LookupEnv(EnvMetrics); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", EnvMetrics, v)
		}
		cfg.Preview.Metrics = &b
	}
	if v, ok := os.LookupEnv(EnvReport); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", EnvReport, v)
		}
		cfg.Build.Report = &b
	}
	return nil
}
