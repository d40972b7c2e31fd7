package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// core strips a "v" prefix and any pre-release or build suffix, then splits
// what is left into its three numeric parts.
func core(s string) ([3]int, error) {
	var parts [3]int

	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	s, _, _ = strings.Cut(s, "+")
	s, _, _ = strings.Cut(s, "-")

	fields := strings.Split(s, ".")
	if len(fields) != len(parts) {
		return parts, fmt.Errorf("version %q: want MAJOR.MINOR.PATCH", s)
	}

	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return parts, fmt.Errorf("version %q: bad number %q", s, field)
		}
		parts[i] = n
	}

	return parts, nil
}

// Compare returns 1 if a is newer than b, -1 if older and 0 if both share the
// same MAJOR.MINOR.PATCH core.
func Compare(a, b string) (int, error) {
	av, err := core(a)
	if err != nil {
		return 0, err
	}

	bv, err := core(b)
	if err != nil {
		return 0, err
	}

	for _, pair := range lo.Zip2(av[:], bv[:]) {
		switch {
		case pair.A > pair.B:
			return 1, nil
		case pair.A < pair.B:
			return -1, nil
		}
	}

	return 0, nil
}
