// Package version provides unified mechanisms for application version tracking, update discovery, and compatibility validation.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Compare performs a semantic comparison between two version strings.
// Returns 1 if a > b, -1 if a < b, and 0 if equal. A leading "v" is ignored.
func Compare(a, b string) (int, error) {
	av, err := parseVersion(a)
	if err != nil {
		return 0, err
	}

	bv, err := parseVersion(b)
	if err != nil {
		return 0, err
	}

	for _, pair := range []lo.Tuple2[int, int]{
		{A: av.major, B: bv.major},
		{A: av.minor, B: bv.minor},
		{A: av.patch, B: bv.patch},
	} {
		if pair.A > pair.B {
			return 1, nil
		}

		if pair.A < pair.B {
			return -1, nil
		}
	}

	return 0, nil
}

type semver struct {
	major, minor, patch int
}

// parseVersion splits a release tag into its numeric parts. Anything other
// than plain major.minor.patch is rejected.
func parseVersion(s string) (v semver, err error) {
	fields := strings.SplitN(strings.TrimPrefix(s, "v"), ".", 3)
	if len(fields) != 3 {
		return v, fmt.Errorf("malformed version %q", s)
	}

	numbers := make([]int, 3)
	for i, field := range fields {
		numbers[i], err = strconv.Atoi(field)
		if err != nil {
			return v, fmt.Errorf("malformed version %q: %w", s, err)
		}
	}

	v.major, v.minor, v.patch = numbers[0], numbers[1], numbers[2]
	return v, nil
}
