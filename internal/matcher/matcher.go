package matcher

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Matcher matches strings against a set of glob patterns.
type Matcher struct {
	patterns []string
	globs    []glob.Glob
}

// New compiles the given patterns once. An empty pattern list matches
// everything.
func New(patterns []string, separators ...rune) (*Matcher, error) {
	m := &Matcher{patterns: append([]string(nil), patterns...)}

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, separators...)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		m.globs = append(m.globs, g)
	}

	return m, nil
}

// Match returns true if s matches any of the patterns (union logic).
func (m *Matcher) Match(s string) bool {
	if len(m.globs) == 0 {
		return true
	}
	for _, g := range m.globs {
		if g.Match(s) {
			return true
		}
	}
	return false
}

// Filter returns the elements of items that match, preserving order.
func (m *Matcher) Filter(items []string) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		if m.Match(item) {
			result = append(result, item)
		}
	}
	return result
}

// Patterns returns the source patterns.
func (m *Matcher) Patterns() []string {
	return append([]string(nil), m.patterns...)
}

// Empty returns true if the matcher was built without patterns.
func (m *Matcher) Empty() bool {
	return len(m.globs) == 0
}
