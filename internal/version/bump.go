package version

import "fmt"

// Bump is the severity class of a change. Values are ordered so that
// BumpMajor > BumpMinor > BumpPatch.
type Bump int

const (
	BumpPatch Bump = iota + 1
	BumpMinor
	BumpMajor
)

// String returns "MAJOR", "MINOR" or "PATCH".
func (b Bump) String() string {
	switch b {
	case BumpMajor:
		return "MAJOR"
	case BumpMinor:
		return "MINOR"
	case BumpPatch:
		return "PATCH"
	default:
		return fmt.Sprintf("Bump(%d)", int(b))
	}
}

// Valid reports whether b is one of the three defined bumps.
func (b Bump) Valid() bool {
	return b >= BumpPatch && b <= BumpMajor
}
