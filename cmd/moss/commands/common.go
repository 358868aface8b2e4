// Package commands holds the moss subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/moss/internal/config"
	ferrors "git.home.luguber.info/inful/moss/internal/foundation/errors"
)

// Global is shared state passed to every subcommand.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

// CLI definition and global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"moss.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" help:"Generate the site for a folder into <folder>/.moss/site"`
	Scan     ScanCmd     `cmd:"" help:"Show how a folder would be classified, without writing anything"`
	Preview  PreviewCmd  `cmd:"" help:"Generate a folder and serve the result locally"`

	// Settings is the loaded configuration, available after flag parsing.
	Settings *config.Config `kong:"-"`
}

// AfterApply runs after flag parsing: it loads the configuration and sets
// up logging once.
func (c *CLI) AfterApply() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return ferrors.ConfigError("failed to load configuration").
			WithCause(err).
			WithContext("path", c.Config).
			Build()
	}
	c.Settings = cfg

	level := cfg.Log.Level.SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.Log.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// settings returns the loaded configuration, or defaults when AfterApply
// has not run.
func (c *CLI) settings() *config.Config {
	if c.Settings == nil {
		return config.Default()
	}
	return c.Settings
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}
