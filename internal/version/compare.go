package version

import (
	"cmp"
	"strconv"
	"strings"
)

// Compare returns -1, 0 or +1 depending on the SemVer precedence of a and b.
// Build metadata does not take part in precedence.
func Compare(a, b Version) int {
	if c := cmp.Compare(a.Major, b.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Minor, b.Minor); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Patch, b.Patch); c != 0 {
		return c
	}
	return comparePrerelease(a.prerelease, b.prerelease)
}

// A version without pre-release identifiers has higher precedence than one with.
func comparePrerelease(a, b []string) int {
	switch {
	case len(a) == 0 && len(b) == 0:
		return 0
	case len(a) == 0:
		return 1
	case len(b) == 0:
		return -1
	}

	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareIdentifier(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// Numeric identifiers compare numerically and always sort before
// alphanumeric ones; alphanumeric ones compare in ASCII order.
func compareIdentifier(a, b string) int {
	an, bn := isNumeric(a), isNumeric(b)
	switch {
	case an && bn:
		// Lengths differ only when the values differ, since leading zeros are rejected.
		if len(a) != len(b) {
			return cmp.Compare(len(a), len(b))
		}
		ai, aerr := strconv.ParseUint(a, 10, 64)
		bi, berr := strconv.ParseUint(b, 10, 64)
		if aerr == nil && berr == nil {
			return cmp.Compare(ai, bi)
		}
		return strings.Compare(a, b)
	case an:
		return -1
	case bn:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
