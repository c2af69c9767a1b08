package types

import (
	"regexp"
	"strings"
)

var cytobandPattern = regexp.MustCompile(`^(cen|[pq](ter|[1-9][0-9]*(\.[1-9][0-9]*)?))$`)

func IsCytoband(s string) bool {
	return cytobandPattern.MatchString(s)
}

// compareCytobands orders two cytobands from the p-arm telomere towards the q-arm
// telomere. A band and one of its sub-bands compare as equal.
func compareCytobands(a, b string) int {
	ra, rb := cytobandRank(a), cytobandRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	if ra != pArm && ra != qArm {
		return 0
	}

	c := compareBandDigits(bandDigits(a), bandDigits(b))
	if ra == pArm {
		// p-arm bands are numbered outwards from the centromere
		return -c
	}
	return c
}

const (
	pTelomere = iota
	pArm
	centromere
	qArm
	qTelomere
)

func cytobandRank(band string) int {
	switch band {
	case "pter":
		return pTelomere
	case "cen":
		return centromere
	case "qter":
		return qTelomere
	}
	if strings.HasPrefix(band, "p") {
		return pArm
	}
	return qArm
}

func bandDigits(band string) string {
	return strings.ReplaceAll(band[1:], ".", "")
}

func compareBandDigits(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
