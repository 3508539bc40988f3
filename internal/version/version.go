package version

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Version represents a semantic version with major, minor, and patch components
// and optional pre-release and build identifiers.
// Values are immutable; identifier slices are only ever handed out as copies.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64

	prerelease []string
	build      []string
}

// Zero returns the zero version (0.0.0).
func Zero() Version {
	return Version{Major: 0, Minor: 0, Patch: 0}
}

// New returns a version with the given numeric triple and no metadata.
func New(major, minor, patch uint64) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// Parse parses a version string in the format "X.Y.Z[-PRE][+BUILD]"
// (with optional "v" prefix).
func Parse(s string) (Version, error) {
	raw := s
	s = strings.TrimPrefix(s, "v")

	var build, pre string
	if i := strings.IndexByte(s, '+'); i >= 0 {
		s, build = s[:i], s[i+1:]
		if build == "" {
			return Version{}, newError(InvalidBaseVersion, raw, "empty build metadata")
		}
	}
	if i := strings.IndexByte(s, '-'); i >= 0 {
		s, pre = s[:i], s[i+1:]
		if pre == "" {
			return Version{}, newError(InvalidBaseVersion, raw, "empty pre-release")
		}
	}

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, newError(InvalidBaseVersion, raw, "expected X.Y.Z")
	}

	var nums [3]uint64
	for i, name := range []string{"major", "minor", "patch"} {
		n, err := parseNumeric(parts[i])
		if err != nil {
			return Version{}, newError(InvalidBaseVersion, raw, fmt.Sprintf("invalid %s version %q: %v", name, parts[i], err))
		}
		nums[i] = n
	}

	v := Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}
	if pre != "" {
		ids, err := splitPrerelease(pre)
		if err != nil {
			return Version{}, newError(InvalidBaseVersion, raw, err.Error())
		}
		v.prerelease = ids
	}
	if build != "" {
		ids, err := splitBuild(build)
		if err != nil {
			return Version{}, newError(InvalidBaseVersion, raw, err.Error())
		}
		v.build = ids
	}
	return v, nil
}

// MustParse is like Parse but panics on invalid input. Intended for tests
// and package-level values.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Prerelease returns a copy of the pre-release identifiers.
func (v Version) Prerelease() []string {
	return clone(v.prerelease)
}

// Build returns a copy of the build metadata identifiers.
func (v Version) Build() []string {
	return clone(v.build)
}

// String returns the version as a string in "X.Y.Z[-PRE][+BUILD]" format.
func (v Version) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if len(v.prerelease) > 0 {
		b.WriteByte('-')
		b.WriteString(strings.Join(v.prerelease, "."))
	}
	if len(v.build) > 0 {
		b.WriteByte('+')
		b.WriteString(strings.Join(v.build, "."))
	}
	return b.String()
}

// Bump returns a new bare version with the specified bump applied.
// Any pre-release or build metadata on v is discarded.
// Panics if level is not one of the defined bumps.
func (v Version) Bump(level Bump) (Version, error) {
	if !level.Valid() {
		panic(fmt.Sprintf("version: unknown bump %d", int(level)))
	}

	switch level {
	case BumpMajor:
		if v.Major == math.MaxUint64 {
			return Version{}, newError(InvalidBaseVersion, v.String(), "major version overflow")
		}
		return New(v.Major+1, 0, 0), nil
	case BumpMinor:
		if v.Minor == math.MaxUint64 {
			return Version{}, newError(InvalidBaseVersion, v.String(), "minor version overflow")
		}
		return New(v.Major, v.Minor+1, 0), nil
	default:
		if v.Patch == math.MaxUint64 {
			return Version{}, newError(InvalidBaseVersion, v.String(), "patch version overflow")
		}
		return New(v.Major, v.Minor, v.Patch+1), nil
	}
}

// Next bumps v and attaches the given pre-release and build strings.
// Empty strings attach nothing.
func (v Version) Next(level Bump, prerelease, build string) (Version, error) {
	next, err := v.Bump(level)
	if err != nil {
		return Version{}, err
	}
	if prerelease != "" {
		ids, err := splitPrerelease(prerelease)
		if err != nil {
			return Version{}, newError(InvalidPrerelease, prerelease, err.Error())
		}
		next.prerelease = ids
	}
	if build != "" {
		ids, err := splitBuild(build)
		if err != nil {
			return Version{}, newError(InvalidBuildMetadata, build, err.Error())
		}
		next.build = ids
	}
	return next, nil
}

// Next parses base and returns the version that follows it for the given bump.
func Next(base string, level Bump, prerelease, build string) (Version, error) {
	v, err := Parse(base)
	if err != nil {
		return Version{}, err
	}
	return v.Next(level, prerelease, build)
}

func parseNumeric(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty")
	}
	if len(s) > 1 && s[0] == '0' {
		return 0, fmt.Errorf("leading zero")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("not a number")
		}
	}
	return strconv.ParseUint(s, 10, 64)
}

func splitPrerelease(s string) ([]string, error) {
	ids, err := splitIdentifiers(s)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if isNumeric(id) && len(id) > 1 && id[0] == '0' {
			return nil, fmt.Errorf("numeric identifier %q has a leading zero", id)
		}
	}
	return ids, nil
}

func splitBuild(s string) ([]string, error) {
	return splitIdentifiers(s)
}

func splitIdentifiers(s string) ([]string, error) {
	ids := strings.Split(s, ".")
	for _, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("empty identifier in %q", s)
		}
		for i := 0; i < len(id); i++ {
			if !isIdentChar(id[i]) {
				return nil, fmt.Errorf("identifier %q contains %q", id, id[i])
			}
		}
	}
	return ids, nil
}

func isIdentChar(c byte) bool {
	return c == '-' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}

func isNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func clone(ids []string) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
