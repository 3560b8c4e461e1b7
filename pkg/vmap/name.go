package vmap

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseName splits a release name into its prefix and version numbers.
// Version numbers are the underscore-separated digit runs after the first
// "_<digits>" boundary: "LIBFOO_1_4_2" has prefix "LIBFOO" and version
// [1 4 2]. A name without such a boundary has no version; ok is false and
// prefix is the whole name.
func ParseName(name string) (prefix string, version []int, ok bool) {
	for i := 0; i < len(name)-1; i++ {
		if name[i] != '_' || !isDigit(name[i+1]) {
			continue
		}
		// Fold consecutive underscores into the boundary.
		end := i
		for end > 0 && name[end-1] == '_' {
			end--
		}
		prefix = name[:end]
		for _, part := range strings.Split(name[i+1:], "_") {
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return name, nil, false
			}
			version = append(version, n)
		}
		return prefix, version, true
	}
	return name, nil, false
}

// NextName bumps a release name to the next minor version: the second
// version number is incremented and everything after it resets to zero, so
// "LIBFOO_1_4_2" becomes "LIBFOO_1_5_0". A single version number is bumped
// directly. ok is false when the name carries no version to bump.
func NextName(name string) (string, bool) {
	prefix, version, ok := ParseName(name)
	if !ok || len(version) == 0 {
		return "", false
	}
	if len(version) == 1 {
		version[0]++
	} else {
		version[1]++
		for i := 2; i < len(version); i++ {
			version[i] = 0
		}
	}
	var b strings.Builder
	b.WriteString(prefix)
	for _, n := range version {
		fmt.Fprintf(&b, "_%d", n)
	}
	return b.String(), true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
