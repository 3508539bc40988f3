package calculator

import (
	"github.com/jimdowning-cyclops/conventional-semver-go/internal/commit"
	"github.com/jimdowning-cyclops/conventional-semver-go/internal/version"
)

// Request holds everything needed to compute one next version.
type Request struct {
	Message      string
	BaseVersion  string
	Prerelease   string
	Build        string
	AllowedTypes []string
}

// Result is the outcome of a successful calculation.
type Result struct {
	Commit commit.Commit
	Bump   version.Bump
	Base   version.Version
	Next   version.Version
}

// Calculate parses the message, classifies it and applies the bump to the
// base version. The first failure is returned unchanged, so callers can use
// errors.Is/As against the commit and version error types.
func Calculate(req Request) (Result, error) {
	c, err := commit.Parse(req.Message, req.AllowedTypes)
	if err != nil {
		return Result{}, err
	}

	bump := commit.Classify(c)

	base, err := version.Parse(req.BaseVersion)
	if err != nil {
		return Result{}, err
	}

	next, err := base.Next(bump, req.Prerelease, req.Build)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Commit: c,
		Bump:   bump,
		Base:   base,
		Next:   next,
	}, nil
}
