package lint

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jimdowning-cyclops/conventional-semver-go/internal/commit"
	"github.com/jimdowning-cyclops/conventional-semver-go/internal/matcher"
)

// Rules configures the checks. Zero values disable a rule.
type Rules struct {
	HeaderLength int
	BodyLength   int
	Scopes       []string // glob patterns
	Footers      []string // allowed footer keys
}

// Finding is a single rule violation.
type Finding struct {
	Rule    string
	Message string
}

func (f Finding) String() string {
	return f.Rule + ": " + f.Message
}

// Linter checks parsed commits against Rules. None of its findings affect
// the computed bump.
type Linter struct {
	rules  Rules
	scopes *matcher.Matcher
}

// New validates the rules and compiles the scope patterns.
func New(rules Rules) (*Linter, error) {
	if rules.HeaderLength < 0 || rules.BodyLength < 0 {
		return nil, fmt.Errorf("length limits cannot be negative")
	}

	scopes, err := matcher.New(rules.Scopes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile scope patterns: %w", err)
	}

	return &Linter{rules: rules, scopes: scopes}, nil
}

// Check returns every finding for c, in rule order.
func (l *Linter) Check(c commit.Commit) []Finding {
	var findings []Finding

	if n := utf8.RuneCountInString(c.Header); l.rules.HeaderLength > 0 && n > l.rules.HeaderLength {
		findings = append(findings, Finding{
			Rule:    "header-length",
			Message: fmt.Sprintf("header is %d characters, limit is %d", n, l.rules.HeaderLength),
		})
	}

	if l.rules.BodyLength > 0 {
		for i, paragraph := range c.Body {
			for _, line := range strings.Split(paragraph, "\n") {
				if n := utf8.RuneCountInString(line); n > l.rules.BodyLength {
					findings = append(findings, Finding{
						Rule:    "body-length",
						Message: fmt.Sprintf("paragraph %d has a line of %d characters, limit is %d", i+1, n, l.rules.BodyLength),
					})
					break
				}
			}
		}
	}

	if c.Scope != "" && !l.scopes.Empty() && !l.scopes.Match(c.Scope) {
		findings = append(findings, Finding{
			Rule:    "scope",
			Message: fmt.Sprintf("scope %q does not match any of %v", c.Scope, l.scopes.Patterns()),
		})
	}

	if len(l.rules.Footers) > 0 {
		for _, key := range c.Footers.Keys() {
			if key == "BREAKING CHANGE" || key == "BREAKING-CHANGE" || contains(l.rules.Footers, key) {
				continue
			}
			findings = append(findings, Finding{
				Rule:    "footer",
				Message: fmt.Sprintf("footer %q is not allowed", key),
			})
		}
	}

	return findings
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
