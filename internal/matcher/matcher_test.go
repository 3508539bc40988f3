package matcher

import (
	"testing"

	"github.com/m-mizutani/gt"
)

func TestNew_InvalidGlob(t *testing.T) {
	_, err := New([]string{"[invalid"})
	gt.Error(t, err)
}

func TestMatch(t *testing.T) {
	m, err := New([]string{"api", "web-*", "core/**"}, '/')
	gt.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "exact", input: "api", want: true},
		{name: "wildcard", input: "web-ui", want: true},
		{name: "nested", input: "core/parser/footer", want: true},
		{name: "wildcard does not cross separator", input: "web-ui/x", want: false},
		{name: "no match", input: "sdk", want: false},
		{name: "case-sensitive", input: "API", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, m.Match(tt.input), tt.want)
		})
	}
}

func TestMatch_EmptyMatchesAll(t *testing.T) {
	m, err := New(nil)
	gt.NoError(t, err)
	gt.V(t, m.Empty()).Equal(true)
	gt.V(t, m.Match("anything")).Equal(true)
}

func TestFilter(t *testing.T) {
	m, err := New([]string{"v*", "app-v*"})
	gt.NoError(t, err)

	got := m.Filter([]string{"v1.0.0", "other-v2.0.0", "app-v1.2.0", "latest"})
	gt.Equal(t, len(got), 2)
	gt.Equal(t, got[0], "v1.0.0")
	gt.Equal(t, got[1], "app-v1.2.0")
	gt.Equal(t, len(m.Patterns()), 2)
}
