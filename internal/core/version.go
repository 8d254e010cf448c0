package core

import (
	"strconv"
	"strings"

	"depsolver/internal/types"
)

// splitVersion parses a hierarchical numeric dotted version into its
// integer components. Non-numeric components parse as 0, matching the
// "hierarchical numeric dotted versions" semantics of spec.md §4.1.8
// rather than any single ecosystem's version grammar (R package
// versions are arbitrary-length dotted integers, unlike Debian's
// epoch/revision scheme or PEP 440's pre/post/dev segments).
func splitVersion(v string) []int {
	fields := strings.FieldsFunc(v, func(r rune) bool { return r == '.' })
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			n = 0
		}
		out[i] = n
	}
	return out
}

// compareVersions compares two dotted version strings component by
// component, left to right, padding the shorter with zeros. Returns
// -1, 0, or 1.
func compareVersions(a, b string) int {
	pa, pb := splitVersion(a), splitVersion(b)
	n := len(pa)
	if len(pb) > n {
		n = len(pb)
	}
	for i := 0; i < n; i++ {
		var x, y int
		if i < len(pa) {
			x = pa[i]
		}
		if i < len(pb) {
			y = pb[i]
		}
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return 0
}

// VersionSatisfies applies the comparison semantics of §4.1.8. A
// missing or empty op always satisfies.
func VersionSatisfies(v string, op types.ConstraintOp, req string) bool {
	if op == types.ConstraintOpNone || req == "" {
		return true
	}
	c := compareVersions(v, req)
	switch op {
	case types.ConstraintOpEq:
		return c == 0
	case types.ConstraintOpNe:
		return c != 0
	case types.ConstraintOpLt:
		return c < 0
	case types.ConstraintOpLte:
		return c <= 0
	case types.ConstraintOpGt:
		return c > 0
	case types.ConstraintOpGte:
		return c >= 0
	default:
		return false
	}
}
