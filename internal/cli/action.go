package cli

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jimdowning-cyclops/conventional-semver-go/internal/calculator"
	"github.com/jimdowning-cyclops/conventional-semver-go/internal/cli/config"
	appconfig "github.com/jimdowning-cyclops/conventional-semver-go/internal/config"
	"github.com/jimdowning-cyclops/conventional-semver-go/internal/git"
	"github.com/jimdowning-cyclops/conventional-semver-go/internal/lint"
	"github.com/jimdowning-cyclops/conventional-semver-go/internal/version"
	"github.com/m-mizutani/goerr/v2"
)

type action struct {
	logger *slog.Logger
	input  config.Input
	// configSet is true when --config was given explicitly.
	configSet bool
	args      []string
	stdin  io.Reader
	stdout io.Writer
}

func (a *action) run(ctx context.Context) error {
	if err := a.input.Validate(); err != nil {
		return err
	}

	repo := git.Repo{Dir: a.input.Dir}

	message, err := a.message(ctx, repo)
	if err != nil {
		return err
	}
	a.logger.Info("Message", slog.String("message", message))

	cfg, err := appconfig.Resolve(a.logger, a.configPath(), a.input.Dir)
	if err != nil {
		return err
	}
	a.logger.Debug("Configuration",
		slog.String("source", cfg.Source),
		slog.Any("types", cfg.Types),
	)

	types := cfg.Types
	if len(a.input.Types) > 0 {
		types = a.input.Types
	}

	base, err := a.baseVersion(ctx, repo, cfg)
	if err != nil {
		return err
	}
	a.logger.Info("Current version", slog.String("version", base))

	res, err := calculator.Calculate(calculator.Request{
		Message:      message,
		BaseVersion:  base,
		Prerelease:   a.input.PreRelease,
		Build:        a.input.BuildMeta,
		AllowedTypes: types,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to calculate next version")
	}

	c := res.Commit
	a.logger.Debug("Parsed commit",
		slog.String("header", c.Header),
		slog.String("type", c.Type),
		slog.String("scope", c.Scope),
		slog.String("description", c.Description),
		slog.Bool("breaking_flag", c.BreakingFlag),
		slog.Bool("breaking_token", c.BreakingToken),
		slog.Int("body", len(c.Body)),
		slog.Any("footers", c.Footers.Keys()),
	)
	if c.Breaking() {
		a.logger.Info("Breaking change", slog.String("description", c.BreakingDescription()))
	}
	a.logger.Info("Bump", slog.String("bump", res.Bump.String()))

	if err := a.lint(cfg, res); err != nil {
		return err
	}

	a.logger.Info("New version", slog.String("version", res.Next.String()))

	if err := render(a.stdout, a.input.Format, res); err != nil {
		return goerr.Wrap(err, "failed to write result")
	}

	if path, ok := envmanPath(); ok {
		if err := exportOutputs(ctx, path, newOutput(res)); err != nil {
			return goerr.Wrap(err, "failed to export outputs")
		}
		a.logger.Debug("Exported outputs with envman", slog.String("path", path))
	}
	return nil
}

// message picks the commit message from --head, --stdin or the argument.
func (a *action) message(ctx context.Context, repo git.Repo) (string, error) {
	if a.input.Head || a.input.Stdin {
		if len(a.args) > 0 {
			return "", goerr.New("MESSAGE cannot be given together with --head or --stdin")
		}
	}
	if a.input.Head {
		return repo.HeadMessage(ctx)
	}
	if a.input.Stdin {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", goerr.Wrap(err, "failed to read message from stdin")
		}
		return string(data), nil
	}

	if len(a.args) != 1 {
		return "", goerr.New("exactly one MESSAGE argument is required", goerr.V("args", len(a.args)))
	}
	// The flag parser stops at a lone "-" and drops everything after it.
	if a.args[0] == "-" {
		return "", goerr.New("use --stdin to read the message from standard input")
	}
	return a.args[0], nil
}

// configPath returns the config file to load. The default file is looked up
// in --dir, like the discovered ones; an explicit path is used as given.
func (a *action) configPath() string {
	path := a.input.ConfigPath
	if a.configSet || path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.input.Dir, path)
}

// baseVersion returns the version string the bump is applied to.
func (a *action) baseVersion(ctx context.Context, repo git.Repo, cfg *appconfig.Config) (string, error) {
	if a.input.Semver != "" {
		return a.input.Semver, nil
	}
	if !a.input.Local {
		base := version.Zero().String()
		a.logger.Debug("No base version given, using default", slog.String("version", base))
		return base, nil
	}

	if !repo.IsRepository(ctx) {
		return "", goerr.New("not a git repository", goerr.V("dir", a.input.Dir))
	}

	pattern := cfg.TagPattern
	if a.input.TagPattern != "" {
		pattern = a.input.TagPattern
	}
	prefix := cfg.TagPrefix
	if a.input.TagPrefix != "" {
		prefix = a.input.TagPrefix
	}

	tag, err := repo.LatestTag(ctx, pattern, prefix)
	if err != nil {
		return "", goerr.Wrap(err, "failed to determine latest version from git tags")
	}
	a.logger.Debug("Latest tag", slog.String("tag", tag.Name))
	return tag.Version.String(), nil
}

// lint logs every finding as a warning. With --strict any finding fails.
func (a *action) lint(cfg *appconfig.Config, res calculator.Result) error {
	linter, err := lint.New(cfg.LintRules())
	if err != nil {
		return goerr.Wrap(err, "invalid lint rules")
	}

	findings := linter.Check(res.Commit)
	for _, f := range findings {
		a.logger.Warn("Lint", slog.String("rule", f.Rule), slog.String("message", f.Message))
	}

	if a.input.Strict && len(findings) > 0 {
		msgs := make([]string, len(findings))
		for i, f := range findings {
			msgs[i] = f.String()
		}
		return goerr.New("commit message failed lint checks: "+strings.Join(msgs, "; "),
			goerr.V("findings", len(findings)))
	}
	return nil
}
