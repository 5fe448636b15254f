package version

import (
	"regexp"
	"strings"

	hashiVer "github.com/anchore/go-version"
)

// derived from https://semver.org/, but additionally matches:
// - partial versions (e.g. "2.0")
// - optional prefix "v" (e.g. "v1.0.0")
var pseudoSemverPattern = regexp.MustCompile(`^v?(0|[1-9]\d*)(\.(0|[1-9]\d*))?(\.(0|[1-9]\d*))?(?:(-|alpha|beta|rc)((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`)

var normalizer = strings.NewReplacer(".alpha", "-alpha", ".beta", "-beta", ".rc", "-rc")

// Compare orders two version strings of an unknown (but shared) versioning convention. When both look like semantic
// versions they are compared as such, otherwise the versions are compared segment by segment.
// Returns -1 if a < b, 1 if a > b and 0 if a == b.
func Compare(a, b string) (int, error) {
	if a == "" || b == "" {
		return 0, ErrNoVersionProvided
	}

	if left, right := semantic(a), semantic(b); left != nil && right != nil {
		return left.Compare(right), nil
	}

	return fuzzyVersionComparison(a, b), nil
}

func semantic(raw string) *hashiVer.Version {
	if !pseudoSemverPattern.MatchString(raw) {
		return nil
	}
	v, err := hashiVer.NewVersion(normalizer.Replace(raw))
	if err != nil {
		return nil
	}
	return v
}
