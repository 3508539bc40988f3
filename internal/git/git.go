package git

import (
	"context"
	"errors"
	"os/exec"
	"sort"
	"strings"

	"github.com/jimdowning-cyclops/conventional-semver-go/internal/matcher"
	"github.com/jimdowning-cyclops/conventional-semver-go/internal/version"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNoTags is returned when no tag in the repository yields a version.
var ErrNoTags = errors.New("no version tags found")

// Tag holds information about a git tag.
type Tag struct {
	Name    string
	Version version.Version
}

// Repo runs git commands against a working tree. An empty Dir means the
// current directory.
type Repo struct {
	Dir string
}

func (r Repo) command(ctx context.Context, args ...string) *exec.Cmd {
	if r.Dir != "" {
		args = append([]string{"-C", r.Dir}, args...)
	}
	return exec.CommandContext(ctx, "git", args...)
}

// IsRepository checks if Dir is inside a git repository.
func (r Repo) IsRepository(ctx context.Context) bool {
	return r.command(ctx, "rev-parse", "--git-dir").Run() == nil
}

// Tags lists the tags reachable from HEAD.
func (r Repo) Tags(ctx context.Context) ([]string, error) {
	output, err := r.command(ctx, "tag", "--merged", "HEAD").Output()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tags", goerr.V("dir", r.Dir))
	}

	var tags []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			tags = append(tags, line)
		}
	}
	return tags, nil
}

// LatestTag finds the tag with the highest version among the tags reachable
// from HEAD that match the glob pattern. The prefix is stripped from each
// tag name before its version is parsed; tags that do not parse are skipped.
func (r Repo) LatestTag(ctx context.Context, pattern, prefix string) (Tag, error) {
	var patterns []string
	if pattern != "" {
		patterns = []string{pattern}
	}
	m, err := matcher.New(patterns)
	if err != nil {
		return Tag{}, goerr.Wrap(err, "invalid tag pattern", goerr.V("pattern", pattern))
	}

	tags, err := r.Tags(ctx)
	if err != nil {
		return Tag{}, err
	}

	candidates := selectTags(m.Filter(tags), prefix)
	if len(candidates) == 0 {
		return Tag{}, goerr.Wrap(ErrNoTags, "no tag yields a version",
			goerr.V("pattern", pattern),
			goerr.V("prefix", prefix),
			goerr.V("tags", len(tags)),
		)
	}
	return candidates[0], nil
}

// selectTags parses the version of each tag and sorts them by descending
// precedence. Ties keep the tag name order for deterministic output.
func selectTags(names []string, prefix string) []Tag {
	var tags []Tag
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		v, err := version.Parse(strings.TrimPrefix(name, prefix))
		if err != nil {
			continue
		}
		tags = append(tags, Tag{Name: name, Version: v})
	}

	sort.SliceStable(tags, func(i, j int) bool {
		if c := version.Compare(tags[i].Version, tags[j].Version); c != 0 {
			return c > 0
		}
		return tags[i].Name < tags[j].Name
	})
	return tags
}

// HeadMessage returns the full message of the HEAD commit.
func (r Repo) HeadMessage(ctx context.Context) (string, error) {
	output, err := r.command(ctx, "log", "-1", "--format=%B").Output()
	if err != nil {
		return "", goerr.Wrap(err, "failed to read HEAD commit message", goerr.V("dir", r.Dir))
	}
	return strings.TrimSpace(string(output)), nil
}
