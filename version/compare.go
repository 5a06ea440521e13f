// Package version tracks the running release and discovers newer ones.
package version

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Compare orders two release versions such as "v0.3.1" and "0.4.0".
// It returns -1, 0 or 1. Pre-release and build suffixes are ignored.
func Compare(a, b string) (int, error) {
	av, err := parseRelease(a)
	if err != nil {
		return 0, err
	}

	bv, err := parseRelease(b)
	if err != nil {
		return 0, err
	}

	return slices.Compare(av[:], bv[:]), nil
}

func parseRelease(raw string) ([3]int, error) {
	var release [3]int

	core, _, _ := strings.Cut(strings.TrimPrefix(raw, "v"), "-")
	core, _, _ = strings.Cut(core, "+")

	parts := strings.Split(core, ".")
	if len(parts) != len(release) {
		return release, fmt.Errorf("release %q: want major.minor.patch", raw)
	}

	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return release, fmt.Errorf("release %q: bad number %q", raw, part)
		}
		release[i] = n
	}

	return release, nil
}
