package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		content     string
		wantTypes   string
		wantHeader  int
		wantErr     bool
		errContains string
	}{
		{
			name:      "toml top level",
			file:      "config.toml",
			content:   "types = [\"feat\", \"fix\"]\nheader_length = 72\n",
			wantTypes: "feat,fix", wantHeader: 72,
		},
		{
			name:      "toml tool.pccc",
			file:      "pyproject.toml",
			content:   "[tool.poetry]\nname = \"x\"\n\n[tool.pccc]\ntypes = [\"feat\", \"fix\", \"chore\"]\n",
			wantTypes: "feat,fix,chore", wantHeader: 50,
		},
		{
			name:      "yaml",
			file:      "pccc.yaml",
			content:   "types: [feat, fix]\nbody_length: 100\nscopes: [api]\n",
			wantTypes: "feat,fix", wantHeader: 50,
		},
		{
			name:      "yml nested",
			file:      "pccc.yml",
			content:   "pccc:\n  types: [feat]\n  header_length: 60\n",
			wantTypes: "feat", wantHeader: 60,
		},
		{
			name:      "json",
			file:      "pccc.json",
			content:   `{"types": ["feat", "docs"], "footers": ["Refs"]}`,
			wantTypes: "feat,docs", wantHeader: 50,
		},
		{
			name:      "empty file uses defaults",
			file:      "config.toml",
			content:   "",
			wantTypes: strings.Join(DefaultTypes, ","), wantHeader: 50,
		},
		{
			name:        "invalid toml",
			file:        "config.toml",
			content:     "types = [",
			wantErr:     true,
			errContains: "failed to parse",
		},
		{
			name:        "invalid yaml",
			file:        "pccc.yaml",
			content:     "types: [invalid",
			wantErr:     true,
			errContains: "failed to parse",
		},
		{
			name:        "invalid type token",
			file:        "pccc.json",
			content:     `{"types": ["feat", "bad type"]}`,
			wantErr:     true,
			errContains: "invalid commit type",
		},
		{
			name:        "negative length",
			file:        "pccc.json",
			content:     `{"header_length": -1}`,
			wantErr:     true,
			errContains: "header_length",
		},
		{
			name:        "unsupported extension",
			file:        "pccc.besp",
			content:     "types: feat",
			wantErr:     true,
			errContains: "unsupported config format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)

			cfg, err := Load(path)
			if tt.wantErr {
				gt.Error(t, err)
				gt.String(t, err.Error()).Contains(tt.errContains)
				return
			}

			gt.NoError(t, err)
			gt.Equal(t, strings.Join(cfg.Types, ","), tt.wantTypes)
			gt.Equal(t, cfg.HeaderLength, tt.wantHeader)
			gt.Equal(t, cfg.Source, path)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.toml")
	gt.Error(t, err)
}

func TestParse_MergesOntoDefaults(t *testing.T) {
	cfg, err := Parse([]byte("scopes = [\"api\", \"web-*\"]\ntag_prefix = \"app-v\"\n"), FormatTOML)
	gt.NoError(t, err)

	gt.Equal(t, strings.Join(cfg.Types, ","), strings.Join(DefaultTypes, ","))
	gt.Equal(t, cfg.BodyLength, 72)
	gt.Equal(t, cfg.TagPattern, "*")
	gt.Equal(t, cfg.TagPrefix, "app-v")
	gt.Equal(t, len(cfg.Scopes), 2)

	rules := cfg.LintRules()
	gt.Equal(t, rules.HeaderLength, 50)
	gt.Equal(t, len(rules.Scopes), 2)
}

func TestParse_InvalidScopePattern(t *testing.T) {
	_, err := Parse([]byte(`{"scopes": ["[bad"]}`), FormatJSON)
	gt.Error(t, err)
}

func TestDiscover(t *testing.T) {
	t.Run("first candidate with options wins", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "pccc.toml", "types = [\"feat\"]\n")
		writeFile(t, dir, "pccc.yaml", "types: [fix]\n")

		cfg, err := Discover(dir)
		gt.NoError(t, err)
		gt.Equal(t, strings.Join(cfg.Types, ","), "feat")
		gt.Equal(t, filepath.Base(cfg.Source), "pccc.toml")
	})

	t.Run("pyproject without tool.pccc is skipped", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "pyproject.toml", "[tool.poetry]\nname = \"x\"\ntypes = [\"ignored\"]\n")
		writeFile(t, dir, "pccc.yml", "types: [docs]\n")

		cfg, err := Discover(dir)
		gt.NoError(t, err)
		gt.Equal(t, strings.Join(cfg.Types, ","), "docs")
	})

	t.Run("package.json pccc key", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "package.json", `{"name": "x", "pccc": {"types": ["feat", "fix"]}}`)

		cfg, err := Discover(dir)
		gt.NoError(t, err)
		gt.Equal(t, strings.Join(cfg.Types, ","), "feat,fix")
		gt.Equal(t, filepath.Base(cfg.Source), "package.json")
	})

	t.Run("package.json without pccc is skipped", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "package.json", `{"name": "x", "types": ["nope"]}`)

		_, err := Discover(dir)
		gt.V(t, errors.Is(err, ErrNotFound)).Equal(true)
	})

	t.Run("nothing found", func(t *testing.T) {
		_, err := Discover(t.TempDir())
		gt.V(t, errors.Is(err, ErrNotFound)).Equal(true)
	})
}

func TestResolve(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "custom.yaml", "types: [feat]\n")
		writeFile(t, dir, "pccc.toml", "types = [\"fix\"]\n")

		cfg, err := Resolve(discardLogger(), path, dir)
		gt.NoError(t, err)
		gt.Equal(t, strings.Join(cfg.Types, ","), "feat")
	})

	t.Run("missing explicit path falls back to discovery", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "pccc.toml", "types = [\"fix\"]\n")

		cfg, err := Resolve(discardLogger(), filepath.Join(dir, "config.toml"), dir)
		gt.NoError(t, err)
		gt.Equal(t, strings.Join(cfg.Types, ","), "fix")
	})

	t.Run("defaults when nothing is found", func(t *testing.T) {
		cfg, err := Resolve(discardLogger(), "", t.TempDir())
		gt.NoError(t, err)
		gt.Equal(t, cfg.Source, "")
		gt.Equal(t, strings.Join(cfg.Types, ","), strings.Join(DefaultTypes, ","))
	})

	t.Run("broken explicit file is an error", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "config.toml", "types = [")

		_, err := Resolve(discardLogger(), path, dir)
		gt.Error(t, err)
	})
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a/pyproject.toml", FormatTOML},
		{"pccc.yaml", FormatYAML},
		{"pccc.YML", FormatYAML},
		{"package.json", FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			gt.NoError(t, err)
			gt.Equal(t, got, tt.want)
		})
	}
}
