package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"

	"github.com/jimdowning-cyclops/conventional-semver-go/internal/calculator"
)

// Output is the JSON form of a calculation.
type Output struct {
	Current  string `json:"current"`
	Next     string `json:"next"`
	Bump     string `json:"bump"`
	Type     string `json:"type"`
	Scope    string `json:"scope,omitempty"`
	Breaking bool   `json:"breaking"`
}

func newOutput(res calculator.Result) Output {
	return Output{
		Current:  res.Base.String(),
		Next:     res.Next.String(),
		Bump:     res.Bump.String(),
		Type:     res.Commit.Type,
		Scope:    res.Commit.Scope,
		Breaking: res.Commit.Breaking(),
	}
}

func render(w io.Writer, format string, res calculator.Result) error {
	if format == "json" {
		return json.NewEncoder(w).Encode(newOutput(res))
	}
	_, err := fmt.Fprintln(w, res.Next.String())
	return err
}

// envmanPath reports whether envman is available for exporting outputs to
// subsequent Bitrise steps.
var envmanPath = func() (string, bool) {
	path, err := exec.LookPath("envman")
	return path, err == nil
}

// exportOutputs exports the result fields as environment variables via envman.
func exportOutputs(ctx context.Context, envman string, out Output) error {
	outputs := []struct{ key, value string }{
		{"SEMVER_CURRENT", out.Current},
		{"SEMVER_NEXT", out.Next},
		{"SEMVER_BUMP", out.Bump},
		{"SEMVER_TYPE", out.Type},
		{"SEMVER_SCOPE", out.Scope},
		{"SEMVER_BREAKING", fmt.Sprintf("%t", out.Breaking)},
	}
	for _, o := range outputs {
		cmd := exec.CommandContext(ctx, envman, "add", "--key", o.key, "--value", o.value)
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("failed to export %s: %w", o.key, err)
		}
	}
	return nil
}
