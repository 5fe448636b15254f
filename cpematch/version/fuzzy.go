package version

import (
	"strconv"
	"strings"
	"unicode"
)

// fuzzyVersionComparison compares versions assuming both follow the same convention. Runs of digits are compared
// numerically (by left padding the shorter run), everything else lexically. It gives a meaningful answer for
// "95SE" vs "98SP1" or "16.3.2" vs "3.7.0", but not for "2000" vs "11.7".
//
// Adapted from github.com/facebookincubator/nvdtools cvefeed/nvd/smartvercmp.go (apache V2), which does not export it.
func fuzzyVersionComparison(v1, v2 string) int {
	v1 = strings.TrimPrefix(v1, "v")
	v2 = strings.TrimPrefix(v2, "v")

	s1, s2 := v1, v2
	for len(s1) > 0 && len(s2) > 0 {
		seg1, seg2 := nextSegment(s1), nextSegment(s2)

		left, right := s1[:seg1.end], s2[:seg2.end]
		if pad := seg1.digits - seg2.digits; pad > 0 {
			right = zeroPad(right, pad)
		} else if pad < 0 {
			left = zeroPad(left, -pad)
		}

		if cmp := compareSegment(left, right); cmp != 0 {
			return cmp
		}

		s1 = s1[seg1.next:]
		s2 = s2[seg2.next:]
	}

	// equal so far, the longer version wins
	switch {
	case len(v1) > len(v2):
		return 1
	case len(v1) < len(v2):
		return -1
	}
	return 0
}

type segment struct {
	// digits is the length of the leading run of digits
	digits int
	// end is the index of the separator closing the segment (exclusive end of the comparable part)
	end int
	// next is the index where the following segment starts
	next int
}

// nextSegment locates the first segment of v. E.g. "11.b4.16-New_Year_Edition" yields {2, 3, 4}.
func nextSegment(v string) segment {
	var digits int
	for digits < len(v) && v[digits] >= '0' && v[digits] <= '9' {
		digits++
	}
	if digits == len(v) {
		return segment{digits: digits, end: digits, next: digits}
	}

	sep := strings.IndexFunc(v, isPunctuation)
	if sep == -1 {
		return segment{digits: digits, end: len(v), next: len(v)}
	}
	return segment{digits: digits, end: sep, next: sep + 1}
}

// isPunctuation reports printable ASCII that is neither a digit nor a letter.
func isPunctuation(r rune) bool {
	if r < '!' || r > '~' {
		return false
	}
	return !unicode.IsDigit(r) && !unicode.IsLetter(r)
}

func zeroPad(s string, n int) string {
	return strings.Repeat("0", n) + s
}

func compareSegment(left, right string) int {
	if hasPatchNumber(left) && hasPatchNumber(right) {
		return comparePatchNumbers(left, right)
	}
	return strings.Compare(left, right)
}

// hasPatchNumber reports whether a letter is directly followed by a digit (e.g. "p9", "rc1", "8p15").
func hasPatchNumber(s string) bool {
	return patchBoundary(s) > 0
}

func patchBoundary(s string) int {
	for i, r := range s {
		if unicode.IsLetter(r) && i < len(s)-1 && unicode.IsDigit(rune(s[i+1])) {
			return i + 1
		}
	}
	return -1
}

// comparePatchNumbers compares the numbers following a shared prefix numerically ("p9" < "p15", "rc1" < "rc10").
func comparePatchNumbers(left, right string) int {
	lPos, rPos := patchBoundary(left), patchBoundary(right)
	if lPos > 0 && rPos > 0 {
		if cmp := strings.Compare(left[:lPos], right[:rPos]); cmp != 0 {
			return cmp
		}
		lNum, lErr := strconv.Atoi(left[lPos:])
		rNum, rErr := strconv.Atoi(right[rPos:])
		if lErr == nil && rErr == nil {
			switch {
			case lNum < rNum:
				return -1
			case lNum > rNum:
				return 1
			}
		}
	}
	return strings.Compare(left, right)
}
