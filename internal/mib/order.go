// Package mib implements the OID entity and the ordered, persistent MIB
// table: spec.md §3 (OID) and §4.C/§4.D (OID entity, MIB table).
package mib

import (
	"strconv"
	"strings"
)

// components parses a dotted-decimal OID into its unsigned integer parts.
// Malformed components (non-numeric, empty) are treated as zero so a
// broken OID still sorts deterministically instead of panicking; callers
// that need to reject malformed OIDs do so before reaching this function.
func components(oid string) []uint64 {
	parts := strings.Split(oid, ".")
	out := make([]uint64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			n = 0
		}
		out[i] = n
	}
	return out
}

// Compare orders two OIDs component-wise as unsigned integers, not as
// strings — spec.md §4.D's one correctness-relevant ordering:
// "1.3.6.1.10 > 1.3.6.1.2". Shorter OIDs sort before longer ones that
// share the same prefix, matching lexicographic tree order.
func Compare(a, b string) int {
	ca, cb := components(a), components(b)
	for i := 0; i < len(ca) && i < len(cb); i++ {
		if ca[i] != cb[i] {
			if ca[i] < cb[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(ca) < len(cb):
		return -1
	case len(ca) > len(cb):
		return 1
	default:
		return 0
	}
}

// WellFormed reports whether oid is a non-empty, dot-separated sequence
// of unsigned decimal integers, per spec.md §3's "must be non-empty and
// well-formed" invariant.
func WellFormed(oid string) bool {
	if oid == "" {
		return false
	}
	for _, p := range strings.Split(oid, ".") {
		if p == "" {
			return false
		}
		if _, err := strconv.ParseUint(p, 10, 64); err != nil {
			return false
		}
	}
	return true
}
