package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "moss.yaml"

// DefaultPreviewPort is the port the preview server listens on.
const DefaultPreviewPort = 4040

// Config represents the application configuration. Generation itself has
// no knobs; settings here only shape logging, preview and reporting.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Preview PreviewConfig `yaml:"preview"`
	Build   BuildConfig   `yaml:"build"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// PreviewConfig controls the preview server.
type PreviewConfig struct {
	Port    int   `yaml:"port"`
	Metrics *bool `yaml:"metrics,omitempty"` // serve /metrics; defaults to true
}

// BuildConfig controls side outputs of a generation run.
type BuildConfig struct {
	Report *bool `yaml:"report,omitempty"` // write .moss/build-report.json; defaults to true
}

// MetricsEnabled reports whether /metrics is served.
func (p PreviewConfig) MetricsEnabled() bool { return p.Metrics == nil || *p.Metrics }

// ReportEnabled reports whether the build report is written.
func (b BuildConfig) ReportEnabled() bool { return b.Report == nil || *b.Report }

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads configuration from configPath. A missing file is not an
// error: defaults are used. Environment variables are expanded in the file
// and MOSS_* variables override what it sets.
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	var cfg Config
	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges that defaults cannot repair.
func (c *Config) Validate() error {
	if c.Preview.Port < 1 || c.Preview.Port > 65535 {
		return fmt.Errorf("preview.port must be between 1 and 65535, got %d", c.Preview.Port)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	cfg.Log.Level = NormalizeLogLevel(string(cfg.Log.Level))
	cfg.Log.Format = NormalizeLogFormat(string(cfg.Log.Format))
	if cfg.Preview.Port == 0 {
		cfg.Preview.Port = DefaultPreviewPort
	}
}
