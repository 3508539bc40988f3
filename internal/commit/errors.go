package commit

import "fmt"

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	EmptyInput ErrorKind = iota + 1
	MalformedHeader
	InvalidType
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyInput:
		return "empty input"
	case MalformedHeader:
		return "malformed header"
	case InvalidType:
		return "invalid type"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError is returned when a message is not a valid conventional commit.
type ParseError struct {
	Kind   ErrorKind
	Header string
	Reason string
}

// Sentinels for errors.Is; only Kind is compared.
var (
	ErrEmptyInput      = &ParseError{Kind: EmptyInput}
	ErrMalformedHeader = &ParseError{Kind: MalformedHeader}
	ErrInvalidType     = &ParseError{Kind: InvalidType}
)

func (e *ParseError) Error() string {
	switch {
	case e.Header == "" && e.Reason == "":
		return e.Kind.String()
	case e.Header == "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	case e.Reason == "":
		return fmt.Sprintf("%s in %q", e.Kind, e.Header)
	default:
		return fmt.Sprintf("%s in %q: %s", e.Kind, e.Header, e.Reason)
	}
}

// Is reports whether target is a *ParseError of the same kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

func malformed(header, format string, args ...any) *ParseError {
	return &ParseError{Kind: MalformedHeader, Header: header, Reason: fmt.Sprintf(format, args...)}
}
