package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jimdowning-cyclops/conventional-semver-go/internal/lint"
	"github.com/jimdowning-cyclops/conventional-semver-go/internal/matcher"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a configuration file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DefaultFile is the file looked up when no --config is given.
const DefaultFile = "config.toml"

// Candidates are the files Discover looks for, in order.
var Candidates = []string{
	"pyproject.toml",
	"pccc.toml",
	"package.json",
	"pccc.json",
	"pccc.yaml",
	"pccc.yml",
}

// ErrNotFound is returned by Discover when no candidate file carries options.
var ErrNotFound = errors.New("no configuration file found")

// DefaultTypes is the allow-list used when no configuration sets one.
var DefaultTypes = []string{
	"build", "ci", "depends", "docs", "feat", "fix",
	"perf", "refactor", "release", "style", "test",
}

var typeRegex = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// Config represents the commit parsing options.
type Config struct {
	Types        []string
	Scopes       []string
	Footers      []string
	HeaderLength int
	BodyLength   int
	TagPattern   string // glob applied to tag names for --local
	TagPrefix    string // stripped from tag names before parsing the version

	// Source is the file the options were read from, empty for defaults.
	Source string
}

// options mirrors Config for decoding. Pointers and nil slices mark
// keys that were absent from the file.
type options struct {
	Types        []string `toml:"types" yaml:"types" json:"types"`
	Scopes       []string `toml:"scopes" yaml:"scopes" json:"scopes"`
	Footers      []string `toml:"footers" yaml:"footers" json:"footers"`
	HeaderLength *int     `toml:"header_length" yaml:"header_length" json:"header_length"`
	BodyLength   *int     `toml:"body_length" yaml:"body_length" json:"body_length"`
	TagPattern   *string  `toml:"tag_pattern" yaml:"tag_pattern" json:"tag_pattern"`
	TagPrefix    *string  `toml:"tag_prefix" yaml:"tag_prefix" json:"tag_prefix"`
}

// nested covers [tool.pccc] in TOML and a "pccc" key in JSON/YAML.
type nested struct {
	Tool struct {
		Pccc *options `toml:"pccc" yaml:"pccc" json:"pccc"`
	} `toml:"tool" yaml:"tool" json:"tool"`
	Pccc *options `toml:"pccc" yaml:"pccc" json:"pccc"`
}

func (n nested) options() *options {
	if n.Tool.Pccc != nil {
		return n.Tool.Pccc
	}
	return n.Pccc
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Types:        append([]string(nil), DefaultTypes...),
		HeaderLength: 50,
		BodyLength:   72,
		TagPattern:   "*",
	}
}

// FormatFromPath derives the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported config format for %q", path)
}

// Load reads and parses a config file from the given path.
func Load(path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	cfg, err := Parse(data, format)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load config", goerr.V("path", path))
	}
	cfg.Source = path
	return cfg, nil
}

// Parse parses config content. Options may sit at the top level or be
// nested under tool.pccc / pccc; the nested form wins when both exist.
func Parse(data []byte, format Format) (*Config, error) {
	opts, found, err := decode(data, format, false)
	if err != nil {
		return nil, err
	}
	if !found {
		opts = &options{}
	}
	return build(opts)
}

// decode returns the options in data. With nestedOnly set, top-level keys
// are ignored, as for pyproject.toml and package.json.
func decode(data []byte, format Format, nestedOnly bool) (*options, bool, error) {
	var n nested
	var top options

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &n); err != nil {
			return nil, false, fmt.Errorf("failed to parse config: %w", err)
		}
		if !nestedOnly {
			if err := toml.Unmarshal(data, &top); err != nil {
				return nil, false, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &n); err != nil {
			return nil, false, fmt.Errorf("failed to parse config: %w", err)
		}
		if !nestedOnly {
			if err := yaml.Unmarshal(data, &top); err != nil {
				return nil, false, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	case FormatJSON:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, false, nil
		}
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, false, fmt.Errorf("failed to parse config: %w", err)
		}
		if !nestedOnly {
			if err := json.Unmarshal(data, &top); err != nil {
				return nil, false, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	default:
		return nil, false, fmt.Errorf("unsupported config format %q", format)
	}

	if opts := n.options(); opts != nil {
		return opts, true, nil
	}
	if nestedOnly || top.empty() {
		return nil, false, nil
	}
	return &top, true, nil
}

func (o *options) empty() bool {
	return o.Types == nil && o.Scopes == nil && o.Footers == nil &&
		o.HeaderLength == nil && o.BodyLength == nil &&
		o.TagPattern == nil && o.TagPrefix == nil
}

// build merges decoded options onto the defaults.
func build(opts *options) (*Config, error) {
	cfg := Default()
	if opts.Types != nil {
		cfg.Types = opts.Types
	}
	if opts.Scopes != nil {
		cfg.Scopes = opts.Scopes
	}
	if opts.Footers != nil {
		cfg.Footers = opts.Footers
	}
	if opts.HeaderLength != nil {
		cfg.HeaderLength = *opts.HeaderLength
	}
	if opts.BodyLength != nil {
		cfg.BodyLength = *opts.BodyLength
	}
	if opts.TagPattern != nil {
		cfg.TagPattern = *opts.TagPattern
	}
	if opts.TagPrefix != nil {
		cfg.TagPrefix = *opts.TagPrefix
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks that the config is valid.
func (c *Config) validate() error {
	for _, typ := range c.Types {
		if !typeRegex.MatchString(typ) {
			return fmt.Errorf("invalid commit type %q: only letters, digits and '-' are allowed", typ)
		}
	}
	if c.HeaderLength < 0 {
		return fmt.Errorf("header_length must not be negative")
	}
	if c.BodyLength < 0 {
		return fmt.Errorf("body_length must not be negative")
	}
	if _, err := matcher.New(c.Scopes); err != nil {
		return fmt.Errorf("invalid scopes: %w", err)
	}
	if c.TagPattern != "" {
		if _, err := matcher.New([]string{c.TagPattern}); err != nil {
			return fmt.Errorf("invalid tag_pattern: %w", err)
		}
	}
	return nil
}

// Discover looks for the first candidate file in dir that carries options.
func Discover(dir string) (*Config, error) {
	for _, name := range Candidates {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
		}

		format, err := FormatFromPath(path)
		if err != nil {
			return nil, err
		}

		nestedOnly := name == "pyproject.toml" || name == "package.json"
		opts, found, err := decode(data, format, nestedOnly)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load config", goerr.V("path", path))
		}
		if !found {
			continue
		}

		cfg, err := build(opts)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load config", goerr.V("path", path))
		}
		cfg.Source = path
		return cfg, nil
	}

	return nil, ErrNotFound
}

// Resolve loads path when it exists. A missing path falls back to Discover
// in dir, and when nothing is found the defaults are returned.
func Resolve(logger *slog.Logger, path, dir string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		logger.Warn("config file does not exist, looking in default places",
			slog.String("path", path),
			slog.Any("candidates", Candidates),
		)
	}

	cfg, err := Discover(dir)
	if errors.Is(err, ErrNotFound) {
		logger.Warn("no config file found, using defaults", slog.String("dir", dir))
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LintRules converts the options into lint rules.
func (c *Config) LintRules() lint.Rules {
	return lint.Rules{
		HeaderLength: c.HeaderLength,
		BodyLength:   c.BodyLength,
		Scopes:       c.Scopes,
		Footers:      c.Footers,
	}
}
