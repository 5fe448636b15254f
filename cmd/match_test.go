package cmd

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchore/cpematch/cpematch/pkg"
)

func TestMatchOptions_components(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/components.txt", []byte(`
# comment
cpe:2.3:a:apache:http_server:2.4.53:*:*:*:*:*:*:*
pkg:deb/debian/libexpat1@2.2.0
`), 0644))

	tests := []struct {
		name    string
		opts    matchOptions
		want    []pkg.Component
		wantErr require.ErrorAssertionFunc
	}{
		{
			name: "single cpe",
			opts: matchOptions{CPE: "cpe:2.3:a:zlib:zlib:1.2.8:*:*:*:*:*:*:*"},
			want: []pkg.Component{pkg.New("", "", "cpe:2.3:a:zlib:zlib:1.2.8:*:*:*:*:*:*:*", "")},
		},
		{
			name: "name and version",
			opts: matchOptions{Name: "libexpat1", Version: "2.2.0"},
			want: []pkg.Component{pkg.New("libexpat1", "2.2.0", "", "")},
		},
		{
			name: "file wins over flags",
			opts: matchOptions{File: "/components.txt", Name: "ignored"},
			want: []pkg.Component{
				pkg.New("", "", "cpe:2.3:a:apache:http_server:2.4.53:*:*:*:*:*:*:*", ""),
				pkg.New("libexpat1", "2.2.0", "", "pkg:deb/debian/libexpat1@2.2.0"),
			},
		},
		{
			name:    "missing file",
			opts:    matchOptions{File: "/nope.json"},
			wantErr: require.Error,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.wantErr == nil {
				test.wantErr = require.NoError
			}
			actual, err := test.opts.components(fs)
			test.wantErr(t, err)
			if err != nil {
				return
			}
			assert.Equal(t, test.want, actual)
		})
	}
}
