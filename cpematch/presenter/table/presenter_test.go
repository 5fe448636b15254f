package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchore/cpematch/cpematch/match"
	"github.com/anchore/cpematch/cpematch/pkg"
	"github.com/anchore/cpematch/cpematch/version"
	"github.com/anchore/cpematch/cpematch/vulnerability"
)

func testResults() []match.Result {
	zlib := pkg.Component{ID: "comp-1", CPE: "cpe:2.3:a:zlib:zlib:1.2.8:*:*:*:*:*:*:*"}
	libexpat := pkg.Component{ID: "comp-2", Name: "libexpat1", Version: "2.2.0"}

	return []match.Result{
		{
			Component: zlib,
			Matches: []match.Match{
				{
					Vulnerable: vulnerability.VulnerableSoftware{
						ID:              "r1",
						VulnerabilityID: "CVE-2018-25032",
						CPE23:           "cpe:2.3:a:zlib:zlib:*:*:*:*:*:*:*:*",
						Range:           version.Range{EndExcluding: "1.2.12"},
						Vulnerable:      true,
					},
					Component: zlib,
					Details:   []match.Detail{{Type: match.ExactMatch, Matcher: match.CPEMatcher, Confidence: 1}},
				},
			},
		},
		{
			Component: libexpat,
			Matches: []match.Match{
				{
					Vulnerable: vulnerability.VulnerableSoftware{
						ID:              "r2",
						VulnerabilityID: "CVE-2018-20843",
						CPE22:           "cpe:/a:libexpat_project:libexpat",
						Vulnerable:      true,
					},
					Component: libexpat,
					Details:   []match.Detail{{Type: match.FuzzyMatch, Matcher: match.FuzzyCPEMatcher, Confidence: 0.875}},
				},
			},
		},
		{
			Component: pkg.Component{ID: "comp-3", Name: "openssl", Version: "1.1.1"},
		},
	}
}

func TestGetRows(t *testing.T) {
	expected := [][]string{
		{"cpe:2.3:a:zlib:zlib:1.2.8:*:*:*:*:*:*:*", "", "CVE-2018-25032", "cpe:2.3:a:zlib:zlib:*:*:*:*:*:*:*:*", "< 1.2.12", "exact-match", "1.00"},
		{"libexpat1", "2.2.0", "CVE-2018-20843", "cpe:/a:libexpat_project:libexpat", "", "fuzzy-match", "0.88"},
	}

	actual := getRows(testResults()).Render()
	if d := cmp.Diff(expected, actual); d != "" {
		t.Errorf("unexpected rows (-want +got):\n%s", d)
	}
}

func TestRows_Render_deduplicates(t *testing.T) {
	results := testResults()
	results = append(results, results[0])

	assert.Len(t, getRows(results).Render(), 2)
}

func TestTablePresenter(t *testing.T) {
	var buffer bytes.Buffer

	require.NoError(t, NewPresenter(testResults(), false).Present(&buffer))

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "COMPONENT")
	assert.Contains(t, lines[0], "VULNERABILITY")
	assert.Contains(t, lines[1], "CVE-2018-25032")
	assert.Contains(t, lines[2], "CVE-2018-20843")
	assert.Contains(t, lines[2], "fuzzy-match")
}

func TestTablePresenter_empty(t *testing.T) {
	var buffer bytes.Buffer

	require.NoError(t, NewPresenter(nil, false).Present(&buffer))
	assert.Equal(t, "No applicable vulnerable software found\n", buffer.String())
}
