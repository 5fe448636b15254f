package cpe

import (
	"fmt"
	"strings"

	"github.com/facebookincubator/nvdtools/wfn"

	"github.com/anchore/cpematch/cpematch/matcherr"
	"github.com/anchore/cpematch/internal/log"
)

const (
	fmtStringPrefix = "cpe:2.3:"
	uriPrefix       = "cpe:/"
)

// uriAttributes are the positions expressible in an unpacked 2.2 URI.
var uriAttributes = []Attribute{Part, Vendor, Product, Version, Update, Edition, Language}

// Name is an immutable, classified CPE name.
type Name struct {
	attrs [attributeCount]Value
}

// New parses a CPE 2.3 formatted string or a CPE 2.2 URI.
func New(s string) (Name, error) {
	switch {
	case strings.HasPrefix(s, fmtStringPrefix):
		return parseFmtString(s, s)
	case strings.HasPrefix(s, uriPrefix):
		return parseURI(s)
	}
	return Name{}, malformed(s, "unknown binding")
}

// Must parses the given CPE, panicking on error.
func Must(s string) Name {
	n, err := New(s)
	if err != nil {
		panic(err)
	}
	return n
}

// NewSlice parses every given CPE, excluding (and logging) the ones that cannot be parsed.
func NewSlice(cpeStrs ...string) []Name {
	var names []Name
	for _, c := range cpeStrs {
		value, err := New(c)
		if err != nil {
			log.Warnf("excluding invalid CPE %q: %v", c, err)
			continue
		}
		names = append(names, value)
	}
	return names
}

// AnyName returns a name with every attribute unconstrained.
func AnyName() Name {
	var n Name
	for i := range n.attrs {
		n.attrs[i] = AnyValue
	}
	return n
}

func malformed(s, reason string) error {
	return fmt.Errorf("%w %q: %s", matcherr.ErrMalformedCPE, s, reason)
}

func parseFmtString(s, original string) (Name, error) {
	fields, err := splitFmtString(strings.TrimPrefix(s, fmtStringPrefix))
	if err != nil {
		return Name{}, malformed(original, err.Error())
	}
	if len(fields) != attributeCount {
		return Name{}, malformed(original, fmt.Sprintf("expected %d attributes, found %d", attributeCount, len(fields)))
	}

	var n Name
	for i, f := range fields {
		if f == "" {
			return Name{}, malformed(original, fmt.Sprintf("empty %s attribute", Attribute(i)))
		}
		if strings.ContainsAny(f, " \t\r\n") {
			return Name{}, malformed(original, fmt.Sprintf("whitespace in %s attribute", Attribute(i)))
		}
		n.attrs[i] = NewValue(f)
	}

	part := n.attrs[Part]
	if part.IsConcrete() && part.Raw != "a" && part.Raw != "o" && part.Raw != "h" {
		return Name{}, malformed(original, fmt.Sprintf("invalid part %q", part.Raw))
	}

	return n, nil
}

// splitFmtString splits on unquoted colons, leaving escape sequences intact.
func splitFmtString(s string) ([]string, error) {
	var fields []string
	var current strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			if i+1 >= len(s) {
				return nil, fmt.Errorf("dangling escape character")
			}
			current.WriteByte(c)
			current.WriteByte(s[i+1])
			i++
		case ':':
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	return append(fields, current.String()), nil
}

func parseURI(s string) (Name, error) {
	attrs, err := wfn.Parse(s)
	if err != nil {
		return Name{}, malformed(s, err.Error())
	}
	return parseFmtString(attrs.BindToFmtString(), s)
}

func (n Name) Get(a Attribute) Value {
	return n.attrs[a]
}

func (n Name) Part() Value {
	return n.attrs[Part]
}

func (n Name) Vendor() Value {
	return n.attrs[Vendor]
}

func (n Name) Product() Value {
	return n.attrs[Product]
}

func (n Name) Version() Value {
	return n.attrs[Version]
}

// With returns a copy of the name with the given attribute replaced.
func (n Name) With(a Attribute, v Value) Name {
	n.attrs[a] = v
	return n
}

func (n Name) String() string {
	return n.BindToFmtString()
}

// BindToFmtString renders the CPE 2.3 formatted string.
func (n Name) BindToFmtString() string {
	var sb strings.Builder
	sb.WriteString(fmtStringPrefix)
	for i, v := range n.attrs {
		if i > 0 {
			sb.WriteByte(':')
		}
		sb.WriteString(v.String())
	}
	return sb.String()
}

// BindToURI renders the CPE 2.2 URI. Only the unpacked attributes (part through language) are bound and trailing
// unconstrained components are dropped.
func (n Name) BindToURI() string {
	components := n.URIComponents()
	for len(components) > 1 && components[len(components)-1] == "" {
		components = components[:len(components)-1]
	}
	return uriPrefix + strings.Join(components, ":")
}

// BindToPaddedURI renders the CPE 2.2 URI keeping every unpacked component, so the result always has the same shape.
func (n Name) BindToPaddedURI() string {
	return uriPrefix + strings.Join(n.URIComponents(), ":")
}

// URIComponents returns the percent-encoded 2.2 URI components (part through language). Unconstrained components are
// empty, wildcards are encoded as "%02" ("*") and "%01" ("?").
func (n Name) URIComponents() []string {
	components := make([]string, 0, len(uriAttributes))
	for _, a := range uriAttributes {
		components = append(components, uriComponent(n.attrs[a]))
	}
	return components
}

func uriComponent(v Value) string {
	switch v.Kind {
	case Any:
		return ""
	case NotApplicable:
		return "-"
	}

	var sb strings.Builder
	raw := v.Raw
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '\\' && i+1 < len(raw):
			i++
			writeURIByte(&sb, raw[i])
		case c == '*':
			sb.WriteString("%02")
		case c == '?':
			sb.WriteString("%01")
		default:
			writeURIByte(&sb, c)
		}
	}
	return sb.String()
}

func writeURIByte(sb *strings.Builder, c byte) {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '.', c == '_', c == '-':
		sb.WriteByte(c)
	default:
		fmt.Fprintf(sb, "%%%02x", c)
	}
}
