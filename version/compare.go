// Package version compares dotted release labels such as the build version name.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// parse splits a label like "v4.6.1" into its numeric components.
func parse(s string) ([]int, error) {
	parts := strings.Split(strings.TrimPrefix(strings.TrimSpace(s), "v"), ".")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid version %q", s)
		}
		nums[i] = n
	}
	return nums, nil
}

// Compare compares two dotted version labels component by component.
// Missing trailing components count as zero, so "4.6" equals "4.6.0".
// Returns 1 if a > b, -1 if a < b, and 0 if equal.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	n := lo.Max([]int{len(av), len(bv)})
	at := func(v []int, i int) int {
		if i < len(v) {
			return v[i]
		}
		return 0
	}

	for i := 0; i < n; i++ {
		pair := lo.T2(at(av, i), at(bv, i))
		if pair.A > pair.B {
			return 1, nil
		}

		if pair.A < pair.B {
			return -1, nil
		}
	}

	return 0, nil
}

// AtLeast reports whether current is not older than required.
func AtLeast(current, required string) (bool, error) {
	c, err := Compare(current, required)
	if err != nil {
		return false, err
	}
	return c >= 0, nil
}
