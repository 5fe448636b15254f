package pkg

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadComponents_json(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/components.json", []byte(`[
  {"name": "libexpat1", "version": "2.2.2"},
  {"cpe": "cpe:2.3:a:zlib:zlib:1.2.11:*:*:*:*:*:*:*"}
]`), 0644))

	components, err := ReadComponents(fs, "/components.json")
	require.NoError(t, err)
	require.Len(t, components, 2)

	assert.Equal(t, "libexpat1", components[0].Name)
	assert.Equal(t, "2.2.2", components[0].Version)
	assert.NotEmpty(t, components[0].ID)
	assert.Equal(t, "cpe:2.3:a:zlib:zlib:1.2.11:*:*:*:*:*:*:*", components[1].CPE)
}

func TestDecodeComponents_lines(t *testing.T) {
	input := `
# a comment
pkg:deb/debian/libexpat1@2.2.0
cpe:2.3:a:zlib:zlib:1.2.11:*:*:*:*:*:*:*
`
	components, err := DecodeComponents(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, components, 2)

	assert.Equal(t, "libexpat1", components[0].Name)
	assert.Equal(t, "2.2.0", components[0].Version)
	assert.Equal(t, "pkg:deb/debian/libexpat1@2.2.0", components[0].PURL)
	assert.Equal(t, "cpe:2.3:a:zlib:zlib:1.2.11:*:*:*:*:*:*:*", components[1].CPE)
}

func TestDecodeComponents_invalidLine(t *testing.T) {
	_, err := DecodeComponents(strings.NewReader("zlib 1.2.11\n"))
	assert.Error(t, err)
}

func TestDecodeComponents_empty(t *testing.T) {
	components, err := DecodeComponents(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, components)
}
