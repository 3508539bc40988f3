package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

// Logger holds logger configuration
type Logger struct {
	Level   string
	JSON    bool
	Silent  bool
	Verbose bool

	// Output defaults to stderr so that stdout only carries results.
	Output io.Writer
}

// Flags returns CLI flags for logger configuration
func (c *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &c.Level,
			Sources:     cli.EnvVars("CONVENTIONAL_SEMVER_LOG_LEVEL"),
		},
		&cli.BoolFlag{
			Name:        "log-json",
			Usage:       "Output logs in JSON format",
			Value:       false,
			Destination: &c.JSON,
			Sources:     cli.EnvVars("CONVENTIONAL_SEMVER_LOG_JSON"),
		},
		&cli.BoolFlag{
			Name:        "silent",
			Aliases:     []string{"s"},
			Usage:       "Disable logging",
			Destination: &c.Silent,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"debug"},
			Usage:       "Set log level to debug",
			Destination: &c.Verbose,
		},
	}
}

// Configure configures and returns a logger
func (c *Logger) Configure() (*slog.Logger, error) {
	if c.Silent && c.Verbose {
		return nil, fmt.Errorf("--silent and --verbose cannot be used together")
	}
	if c.Silent {
		return slog.New(slog.DiscardHandler), nil
	}

	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	if c.Verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	w := c.Output
	if w == nil {
		w = os.Stderr
	}

	var handler slog.Handler
	if c.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler), nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log level %q", s)
}
