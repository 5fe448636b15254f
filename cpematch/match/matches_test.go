package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchore/cpematch/cpematch/pkg"
	"github.com/anchore/cpematch/cpematch/vulnerability"
)

func TestMatches_AddMergesDetails(t *testing.T) {
	component := pkg.New("zlib", "1.2.8", "cpe:2.3:a:zlib:zlib:1.2.8:*:*:*:*:*:*:*", "")
	record := vulnerability.VulnerableSoftware{ID: "r-1", VulnerabilityID: "CVE-2018-25032", CPE23: "cpe:2.3:a:zlib:zlib:*:*:*:*:*:*:*:*"}

	exact := Match{
		Vulnerable: record,
		Component:  component,
		Details: Details{{
			Type:       ExactMatch,
			Matcher:    CPEMatcher,
			SearchedBy: CPEParameters{CPE: component.CPE},
			Found:      CPEResult{RecordID: "r-1", CPE: record.CPE23},
			Confidence: 1,
		}},
	}
	fuzzy := Match{
		Vulnerable: record,
		Component:  component,
		Details: Details{{
			Type:       FuzzyMatch,
			Matcher:    FuzzyCPEMatcher,
			SearchedBy: CPEParameters{Terms: []string{"zlib"}},
			Found:      CPEResult{RecordID: "r-1", CPE: record.CPE23},
			Confidence: 0.5,
		}},
	}

	matches := NewMatches(exact, fuzzy, exact)

	require.Equal(t, 1, matches.Count())
	got := matches.GetByComponentID(component.ID)
	require.Len(t, got, 1)
	assert.Equal(t, []Type{ExactMatch, FuzzyMatch}, got[0].Details.Types())
}

func TestMatches_Sorted(t *testing.T) {
	a := pkg.New("a", "1.0", "", "")
	b := pkg.New("b", "1.0", "", "")

	first := Match{Vulnerable: vulnerability.VulnerableSoftware{ID: "1", VulnerabilityID: "CVE-2020-0010"}, Component: b}
	second := Match{Vulnerable: vulnerability.VulnerableSoftware{ID: "2", VulnerabilityID: "CVE-2020-0020"}, Component: a}
	third := Match{Vulnerable: vulnerability.VulnerableSoftware{ID: "3", VulnerabilityID: "CVE-2020-0020"}, Component: b}

	matches := NewMatches(third, first, second)

	assert.Equal(t, []Match{first, second, third}, matches.Sorted())
}

func TestMatches_Merge(t *testing.T) {
	a := pkg.New("a", "1.0", "", "")
	b := pkg.New("b", "1.0", "", "")

	left := NewMatches(Match{Vulnerable: vulnerability.VulnerableSoftware{ID: "1", VulnerabilityID: "CVE-1"}, Component: a})
	right := NewMatches(
		Match{Vulnerable: vulnerability.VulnerableSoftware{ID: "1", VulnerabilityID: "CVE-1"}, Component: a},
		Match{Vulnerable: vulnerability.VulnerableSoftware{ID: "2", VulnerabilityID: "CVE-2"}, Component: b},
	)

	left.Merge(right)

	assert.Equal(t, 2, left.Count())
	assert.Len(t, left.GetByComponentID(b.ID), 1)
}

func TestMatch_MergeRejectsDifferentFingerprints(t *testing.T) {
	m := Match{Vulnerable: vulnerability.VulnerableSoftware{ID: "1"}, Component: pkg.New("a", "1", "", "")}
	err := m.Merge(Match{Vulnerable: vulnerability.VulnerableSoftware{ID: "2"}, Component: pkg.New("a", "1", "", "")})
	assert.ErrorIs(t, err, ErrCannotMerge)
}

func TestResult_Strategy(t *testing.T) {
	r := Result{Matches: []Match{
		{Details: Details{{Type: FuzzyMatch}}},
		{Details: Details{{Type: ExactMatch}, {Type: FuzzyMatch}}},
	}}
	assert.Equal(t, []Type{FuzzyMatch, ExactMatch}, r.Strategy())
}
