// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"strconv"
	"strings"
)

// CompareVersions orders two dotted-numeric versions segment by segment,
// numerically (so "1.10.0" sorts above "1.9.9"). Missing segments count
// as zero; non-numeric segments fall back to string comparison.
func CompareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	for i := 0; i < len(as) || i < len(bs); i++ {
		av, bv := segment(as, i), segment(bs, i)

		an, aerr := strconv.Atoi(av)
		bn, berr := strconv.Atoi(bv)
		if aerr == nil && berr == nil {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			}
			continue
		}
		if c := strings.Compare(av, bv); c != 0 {
			return c
		}
	}
	return 0
}

// LatestVersion folds the version list with CompareVersions and returns
// the highest one; empty input yields the empty string.
func LatestVersion(versions []string) string {
	latest := ""
	for _, v := range versions {
		if latest == "" || CompareVersions(v, latest) > 0 {
			latest = v
		}
	}
	return latest
}

func segment(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return "0"
}
