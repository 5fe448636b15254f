package search

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anchore/cpematch/cpematch/cpe"
)

func TestToIndexQuery(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{
			name:    "only the part",
			pattern: "cpe:2.3:a:*:*:*:*:*:*:*:*:*:*",
			want:    `cpe\:2\.3\:a\:.*\:.*\:.*\:.*\:.*\:.*\:.*\:.*\:.*\:.*`,
		},
		{
			name:    "every attribute",
			pattern: `cpe:2.3:o:vendor:product:1\.0:2:33:en:inside:Vista:x86:other`,
			want:    `cpe\:2\.3\:o\:vendor\:product\:1.0\:2\:33\:en\:inside\:Vista\:x86\:other`,
		},
		{
			name:    "wildcards and not applicable",
			pattern: "cpe:2.3:a:vendor:pro*:1.?:-:*:*:*:*:*:*",
			want:    `cpe\:2\.3\:a\:vendor\:pro.*\:1..\:-\:.*\:.*\:.*\:.*\:.*\:.*`,
		},
		{
			name:    "quoted regex syntax",
			pattern: `cpe:2.3:a:vendor:c\+\+:*:*:*:*:*:*:*:*`,
			want:    `cpe\:2\.3\:a\:vendor\:c\\\+\\\+\:.*\:.*\:.*\:.*\:.*\:.*\:.*\:.*`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, ToIndexQuery(cpe.Must(test.pattern)))
		})
	}
}

func TestToIndexQuery22(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{
			name:    "every attribute",
			pattern: `cpe:2.3:o:vendor:product:1\.0:2:33:en:inside:Vista:x86:other`,
			want:    `cpe\:\/o\:vendor\:product\:1.0\:2\:33\:en`,
		},
		{
			name:    "only the part",
			pattern: "cpe:2.3:a:*:*:*:*:*:*:*:*:*:*",
			want:    `cpe\:\/a\:.*\:.*\:.*\:.*\:.*\:.*`,
		},
		{
			name:    "wildcards",
			pattern: "cpe:2.3:a:vendor:pro*:1.?:*:*:*:*:*:*:*",
			want:    `cpe\:\/a\:vendor\:pro.*\:1..\:.*\:.*\:.*`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, ToIndexQuery22(cpe.Must(test.pattern)))
		})
	}
}

func TestToIndexQuery_matchesWholeCPE(t *testing.T) {
	pattern := regexp.MustCompile("^" + ToIndexQuery(cpe.Must("cpe:2.3:a:*:file:*:*:*:*:*:*:*:*")) + "$")

	assert.False(t, pattern.MatchString("cpe:2.3:a:dell:emc_vnx2_operating_environment:*:*:*:*:*:file:*:*"))
	assert.True(t, pattern.MatchString("cpe:2.3:a:*:file:*:*:*:*:*:file:*:*"))
}

func TestToIndexQuery22_matchesPaddedURI(t *testing.T) {
	pattern := regexp.MustCompile("^" + ToIndexQuery22(cpe.Must("cpe:2.3:a:*:*:*:*:*:*:*:*:*:*")) + "$")
	stored := cpe.Must("cpe:2.3:a:libexpat_project:libexpat:2.2.2:*:*:*:*:*:*:*").BindToPaddedURI()

	assert.Equal(t, "cpe:/a:libexpat_project:libexpat:2.2.2:::", stored)
	assert.True(t, pattern.MatchString(stored))
}

func TestFuzziness(t *testing.T) {
	tests := []struct {
		term       string
		similarity float64
		want       int
	}{
		{term: "libexpat1", similarity: 0.88, want: 1},
		{term: "zlib", similarity: 0.88, want: 0},
		{term: "nginx", similarity: 0.88, want: 1},
		{term: "util-linux-setarch", similarity: 0.88, want: 2},
		{term: "very-long-product-name-for-testing", similarity: 0.5, want: 2},
		{term: "libexpat1", similarity: 1, want: 1},
	}
	for _, test := range tests {
		t.Run(test.term, func(t *testing.T) {
			assert.Equal(t, test.want, Fuzziness(test.term, test.similarity))
		})
	}
}
