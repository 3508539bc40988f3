package commit

import (
	"strings"

	"github.com/jimdowning-cyclops/conventional-semver-go/internal/version"
)

// Commit represents a parsed conventional commit.
type Commit struct {
	Header      string
	Type        string
	Scope       string
	Description string

	// BreakingFlag is set by a "!" directly before the header colon.
	BreakingFlag bool
	// BreakingToken is set by a BREAKING CHANGE or BREAKING-CHANGE footer.
	BreakingToken bool

	Body    []string
	Footers Footers
}

// Breaking returns true if the commit carries either breaking marker.
func (c Commit) Breaking() bool {
	return c.BreakingFlag || c.BreakingToken
}

// Classify maps a commit to the bump it requires.
// Breaking changes always win over the type, so "fix!:" is a major bump.
func Classify(c Commit) version.Bump {
	if c.Breaking() {
		return version.BumpMajor
	}
	if c.Type == "feat" {
		return version.BumpMinor
	}
	return version.BumpPatch
}

// Footer is a single "Key: value" or "Key #value" trailer.
type Footer struct {
	Key       string
	Separator string
	Value     string
}

// String renders the footer as it would appear in a message.
func (f Footer) String() string {
	return f.Key + f.Separator + f.Value
}

// Footers is an ordered collection of footers with lookup by key.
type Footers struct {
	list []Footer
}

// Len returns the number of footers.
func (f Footers) Len() int {
	return len(f.list)
}

// All returns a copy of the footers in message order.
func (f Footers) All() []Footer {
	out := make([]Footer, len(f.list))
	copy(out, f.list)
	return out
}

// Get returns every value recorded for key, in message order.
func (f Footers) Get(key string) []string {
	var values []string
	for _, ft := range f.list {
		if ft.Key == key {
			values = append(values, ft.Value)
		}
	}
	return values
}

// Has returns true if at least one footer uses key.
func (f Footers) Has(key string) bool {
	for _, ft := range f.list {
		if ft.Key == key {
			return true
		}
	}
	return false
}

// Keys returns the distinct keys in order of first appearance.
func (f Footers) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, ft := range f.list {
		if !seen[ft.Key] {
			seen[ft.Key] = true
			keys = append(keys, ft.Key)
		}
	}
	return keys
}

// Map returns the footers as key to values.
func (f Footers) Map() map[string][]string {
	m := make(map[string][]string)
	for _, ft := range f.list {
		m[ft.Key] = append(m[ft.Key], ft.Value)
	}
	return m
}

// isBreakingKey is case-sensitive on purpose: "breaking change" is an ordinary footer.
func isBreakingKey(key string) bool {
	return key == "BREAKING CHANGE" || key == "BREAKING-CHANGE"
}

// BreakingDescription returns the text of the breaking change footers joined
// by blank lines, or the header description when only the flag is set.
func (c Commit) BreakingDescription() string {
	var parts []string
	for _, ft := range c.Footers.list {
		if isBreakingKey(ft.Key) {
			parts = append(parts, ft.Value)
		}
	}
	if len(parts) == 0 && c.BreakingFlag {
		return c.Description
	}
	return strings.Join(parts, "\n\n")
}
