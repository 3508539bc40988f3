package config

import (
	"fmt"

	"github.com/urfave/cli/v3"
)

// Input holds the options that select the message, the base version and
// the output.
type Input struct {
	Semver     string
	Local      bool
	Head       bool
	Stdin      bool
	PreRelease string
	BuildMeta  string
	ConfigPath string
	Dir        string
	Types      []string
	TagPattern string
	TagPrefix  string
	Strict     bool
	Format     string
}

// Flags returns CLI flags for input configuration
func (c *Input) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "semver",
			Aliases:     []string{"latest-version"},
			Usage:       "The latest Semantic Version (on which the next version will be based)",
			Destination: &c.Semver,
			Sources:     cli.EnvVars("CONVENTIONAL_SEMVER_SEMVER"),
		},
		&cli.BoolFlag{
			Name:        "local",
			Aliases:     []string{"l"},
			Usage:       "Use the highest version tag reachable from HEAD as the latest version",
			Destination: &c.Local,
		},
		&cli.BoolFlag{
			Name:        "head",
			Usage:       "Read the commit message from the HEAD commit instead of an argument",
			Destination: &c.Head,
		},
		&cli.BoolFlag{
			Name:        "stdin",
			Usage:       "Read the commit message from standard input instead of an argument",
			Destination: &c.Stdin,
		},
		&cli.StringFlag{
			Name:        "pre-release",
			Usage:       "Pre-release identifiers to attach (without the leading -)",
			Destination: &c.PreRelease,
			Sources:     cli.EnvVars("CONVENTIONAL_SEMVER_PRE_RELEASE"),
		},
		&cli.StringFlag{
			Name:        "build-meta",
			Usage:       "Build metadata identifiers to attach (without the leading +)",
			Destination: &c.BuildMeta,
			Sources:     cli.EnvVars("CONVENTIONAL_SEMVER_BUILD_META"),
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to the commit parsing config file",
			Value:       "config.toml",
			Destination: &c.ConfigPath,
			Sources:     cli.EnvVars("CONVENTIONAL_SEMVER_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "dir",
			Usage:       "Directory used for git commands and config discovery",
			Value:       ".",
			Destination: &c.Dir,
		},
		&cli.StringSliceFlag{
			Name:        "type",
			Usage:       "Allowed commit type, overrides the config (repeatable)",
			Destination: &c.Types,
		},
		&cli.StringFlag{
			Name:        "tag-pattern",
			Usage:       "Glob selecting the tags considered by --local",
			Destination: &c.TagPattern,
		},
		&cli.StringFlag{
			Name:        "tag-prefix",
			Usage:       "Prefix stripped from tag names before parsing the version",
			Destination: &c.TagPrefix,
		},
		&cli.BoolFlag{
			Name:        "strict",
			Usage:       "Fail when the message violates a lint rule",
			Destination: &c.Strict,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Output format (text, json)",
			Value:       "text",
			Destination: &c.Format,
			Sources:     cli.EnvVars("CONVENTIONAL_SEMVER_FORMAT"),
		},
	}
}

// Validate checks flag combinations that the parser cannot express.
func (c *Input) Validate() error {
	if c.Semver != "" && c.Local {
		return fmt.Errorf("--semver and --local cannot be used together")
	}
	if c.Stdin && c.Head {
		return fmt.Errorf("--stdin and --head cannot be used together")
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid format %q (expected text or json)", c.Format)
	}
	return nil
}
