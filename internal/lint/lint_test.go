package lint

import (
	"strings"
	"testing"

	"github.com/jimdowning-cyclops/conventional-semver-go/internal/commit"
	"github.com/m-mizutani/gt"
)

func mustParse(t *testing.T, message string) commit.Commit {
	t.Helper()
	c, err := commit.Parse(message, nil)
	gt.NoError(t, err)
	return c
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(Rules{HeaderLength: -1})
	gt.Error(t, err)

	_, err = New(Rules{Scopes: []string{"[bad"}})
	gt.Error(t, err)
}

func TestCheck(t *testing.T) {
	rules := Rules{
		HeaderLength: 50,
		BodyLength:   20,
		Scopes:       []string{"api", "web-*"},
		Footers:      []string{"Refs", "Reviewed-by"},
	}
	l, err := New(rules)
	gt.NoError(t, err)

	tests := []struct {
		name      string
		message   string
		wantRules []string
	}{
		{name: "clean", message: "feat(api): add endpoint\n\nshort body\n\nRefs #1"},
		{name: "no scope is fine", message: "fix: thing"},
		{name: "long header", message: "feat: " + strings.Repeat("a", 60), wantRules: []string{"header-length"}},
		{name: "long body line", message: "fix: x\n\nthis line is definitely too long", wantRules: []string{"body-length"}},
		{name: "unknown scope", message: "fix(sdk): x", wantRules: []string{"scope"}},
		{name: "glob scope", message: "fix(web-admin): x"},
		{name: "unknown footer", message: "fix: x\n\nSigned-off-by: me", wantRules: []string{"footer"}},
		{name: "breaking footer always allowed", message: "fix: x\n\nBREAKING CHANGE: y"},
		{
			name:      "several findings",
			message:   "fix(sdk): " + strings.Repeat("b", 60) + "\n\nCloses #4",
			wantRules: []string{"header-length", "scope", "footer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := l.Check(mustParse(t, tt.message))
			var got []string
			for _, f := range findings {
				got = append(got, f.Rule)
			}
			gt.Equal(t, strings.Join(got, ","), strings.Join(tt.wantRules, ","))
		})
	}
}

func TestCheck_DisabledRules(t *testing.T) {
	l, err := New(Rules{})
	gt.NoError(t, err)

	c := mustParse(t, "fix(anything): "+strings.Repeat("x", 200)+"\n\n"+strings.Repeat("y", 200)+"\n\nWhatever: z")
	gt.Equal(t, len(l.Check(c)), 0)
}

func TestFinding_String(t *testing.T) {
	f := Finding{Rule: "scope", Message: "bad"}
	gt.Equal(t, f.String(), "scope: bad")
}
