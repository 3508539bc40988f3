package version

import "fmt"

// ErrorKind classifies an Error.
type ErrorKind int

const (
	InvalidBaseVersion ErrorKind = iota + 1
	InvalidPrerelease
	InvalidBuildMetadata
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidBaseVersion:
		return "invalid base version"
	case InvalidPrerelease:
		return "invalid pre-release"
	case InvalidBuildMetadata:
		return "invalid build metadata"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned when a version cannot be parsed or computed.
type Error struct {
	Kind   ErrorKind
	Input  string
	Reason string
}

// Sentinels for errors.Is; only Kind is compared.
var (
	ErrInvalidBaseVersion   = &Error{Kind: InvalidBaseVersion}
	ErrInvalidPrerelease    = &Error{Kind: InvalidPrerelease}
	ErrInvalidBuildMetadata = &Error{Kind: InvalidBuildMetadata}
)

func newError(kind ErrorKind, input, reason string) *Error {
	return &Error{Kind: kind, Input: input, Reason: reason}
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %q", e.Kind, e.Input)
	}
	return fmt.Sprintf("%s %q: %s", e.Kind, e.Input, e.Reason)
}

// Is reports whether target is a *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
