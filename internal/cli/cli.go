package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/jimdowning-cyclops/conventional-semver-go/internal/cli/config"
	"github.com/jimdowning-cyclops/conventional-semver-go/internal/commit"
	"github.com/urfave/cli/v3"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	loggerCfg := config.Logger{Output: stderr}
	var inputCfg config.Input
	var logger *slog.Logger

	app := &cli.Command{
		Name:      "conventional-semver",
		Usage:     "Calculate the next Semantic Version from a Conventional Commit message",
		ArgsUsage: "MESSAGE",
		Version:   Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     append(loggerCfg.Flags(), inputCfg.Flags()...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}
			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			a := &action{
				logger:    logger,
				input:     inputCfg,
				configSet: c.IsSet("config"),
				args:      c.Args().Slice(),
				stdin:     stdin,
				stdout:    stdout,
			}
			return a.run(ctx)
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		logger.Debug("CLI execution failed", slog.Any("error", err))
		printError(stderr, err)
		return err
	}

	return nil
}

// printError writes the diagnostic shown to users on failure.
func printError(w io.Writer, err error) {
	label := color.New(color.FgRed, color.Bold)
	label.Fprint(w, "error:")
	fmt.Fprintf(w, " %v\n", err)

	var perr *commit.ParseError
	if errors.As(err, &perr) && perr.Kind != commit.EmptyInput {
		fmt.Fprintln(w, "The message is likely NOT a valid Conventional Commit, see https://www.conventionalcommits.org")
	}
}
