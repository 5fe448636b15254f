package cpe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchore/cpematch/cpematch/matcherr"
)

func TestNew_roundTrip(t *testing.T) {
	tests := []string{
		"cpe:2.3:a:apache:http_server:2.4.53:*:*:*:*:*:*:*",
		"cpe:2.3:o:linux:linux_kernel:-:*:*:*:*:*:x86:*",
		"cpe:2.3:*:*:*:*:*:*:*:*:*:*:*",
		"cpe:2.3:-:-:-:-:-:-:-:-:-:-:-",
		"cpe:2.3:a:vendor:pro*:1.?:*:*:*:*:*:*:*",
		`cpe:2.3:a:nodejs:node\.js:14.0.0:*:*:*:*:*:*:*`,
		`cpe:2.3:a:vendor:name\:with\:colons:1.0:*:*:*:*:*:*:*`,
	}
	for _, test := range tests {
		t.Run(test, func(t *testing.T) {
			n, err := New(test)
			require.NoError(t, err)
			assert.Equal(t, test, n.String())
			assert.Equal(t, test, n.BindToFmtString())
		})
	}
}

func TestNew_classification(t *testing.T) {
	n := Must(`cpe:2.3:a:vendor:pro*:-:*:node\*js:*:*:*:*:*`)

	assert.Equal(t, Literal, n.Part().Kind)
	assert.Equal(t, Literal, n.Vendor().Kind)
	assert.Equal(t, LiteralWithWildcard, n.Product().Kind)
	assert.Equal(t, NotApplicable, n.Version().Kind)
	assert.Equal(t, Any, n.Get(Update).Kind)
	assert.Equal(t, Literal, n.Get(Edition).Kind, "escaped wildcards are literal")
	assert.Equal(t, "node*js", n.Get(Edition).Unquoted())
}

func TestNew_uri(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{
			uri:  "cpe:/a:apache:http_server:2.4.53",
			want: "cpe:2.3:a:apache:http_server:2.4.53:*:*:*:*:*:*:*",
		},
		{
			uri:  "cpe:/o:vendor:product:1.0:2:33:en",
			want: "cpe:2.3:o:vendor:product:1.0:2:33:en:*:*:*:*",
		},
		{
			uri:  "cpe:/a:xiph:speex:1.2:-",
			want: "cpe:2.3:a:xiph:speex:1.2:-:*:*:*:*:*:*",
		},
	}
	for _, test := range tests {
		t.Run(test.uri, func(t *testing.T) {
			n, err := New(test.uri)
			require.NoError(t, err)
			assert.Equal(t, test.want, n.String())
		})
	}
}

func TestNew_malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "unknown binding", input: "cpe:3.0:a:vendor:product"},
		{name: "too few attributes", input: "cpe:2.3:a:vendor:product:1.0"},
		{name: "too many attributes", input: "cpe:2.3:a:vendor:product:1.0:*:*:*:*:*:*:*:*"},
		{name: "empty attribute", input: "cpe:2.3:a::product:1.0:*:*:*:*:*:*:*"},
		{name: "whitespace", input: "cpe:2.3:a:vendor:my product:1.0:*:*:*:*:*:*:*"},
		{name: "bad part", input: "cpe:2.3:x:vendor:product:1.0:*:*:*:*:*:*:*"},
		{name: "dangling escape", input: `cpe:2.3:a:vendor:product:1.0:*:*:*:*:*:*:other\`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := New(test.input)
			assert.ErrorIs(t, err, matcherr.ErrMalformedCPE)
		})
	}
}

func TestNewSlice(t *testing.T) {
	names := NewSlice(
		"cpe:2.3:a:apache:http_server:2.4.53:*:*:*:*:*:*:*",
		"not-a-cpe",
		"cpe:/a:zlib:zlib:1.2.11",
	)
	require.Len(t, names, 2)
	assert.Equal(t, "cpe:2.3:a:apache:http_server:2.4.53:*:*:*:*:*:*:*", names[0].String())
	assert.Equal(t, "cpe:2.3:a:zlib:zlib:1.2.11:*:*:*:*:*:*:*", names[1].String())
}

func TestName_With(t *testing.T) {
	original := Must("cpe:2.3:a:apache:http_server:2.4.53:*:*:*:*:*:*:*")
	relaxed := original.With(Vendor, AnyValue).With(Product, AnyValue)

	assert.Equal(t, "cpe:2.3:a:*:*:2.4.53:*:*:*:*:*:*:*", relaxed.String())
	assert.Equal(t, "cpe:2.3:a:apache:http_server:2.4.53:*:*:*:*:*:*:*", original.String())
}

func TestName_BindToURI(t *testing.T) {
	tests := []struct {
		cpe  string
		want string
	}{
		{cpe: "cpe:2.3:a:apache:http_server:2.4.53:*:*:*:*:*:*:*", want: "cpe:/a:apache:http_server:2.4.53"},
		{cpe: "cpe:2.3:o:vendor:product:1.0:2:33:en:inside:Vista:x86:other", want: "cpe:/o:vendor:product:1.0:2:33:en"},
		{cpe: "cpe:2.3:a:xiph:speex:1.2:-:*:*:*:*:*:*", want: "cpe:/a:xiph:speex:1.2:-"},
		{cpe: "cpe:2.3:a:*:*:*:*:*:*:*:*:*:*", want: "cpe:/a"},
		{cpe: "cpe:2.3:a:vendor:pro*:*:*:*:*:*:*:*:*", want: "cpe:/a:vendor:pro%02"},
		{cpe: `cpe:2.3:a:vendor:c\+\+:*:*:*:*:*:*:*:*`, want: "cpe:/a:vendor:c%2b%2b"},
	}
	for _, test := range tests {
		t.Run(test.cpe, func(t *testing.T) {
			assert.Equal(t, test.want, Must(test.cpe).BindToURI())
		})
	}
}

func TestValue_Unquoted(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "zlib", want: "zlib"},
		{raw: `node\.js`, want: "node.js"},
		{raw: `notepad\+\+`, want: "notepad++"},
		{raw: `node\*js`, want: "node*js"},
		{raw: `a\/b\[c\]`, want: "a/b[c]"},
		{raw: `back\\slash`, want: `back\slash`},
		{raw: `pro*`, want: "pro*"},
		{raw: "*", want: "*"},
		{raw: "-", want: "-"},
	}
	for _, test := range tests {
		t.Run(test.raw, func(t *testing.T) {
			assert.Equal(t, test.want, NewValue(test.raw).Unquoted())
		})
	}
}

func TestValue_Key_escapedLiteral(t *testing.T) {
	assert.Equal(t, NewLiteral("notepad++").Key(), NewValue(`notepad\+\+`).Key())
	assert.Equal(t, "notepad++", NewLiteral("notepad++").Key())
}
