package cpe

import (
	"strings"

	"github.com/facebookincubator/nvdtools/wfn"
)

// Kind classifies a single CPE attribute value.
type Kind int

const (
	// Any is the CPE wildcard "*", meaning the attribute is unconstrained.
	Any Kind = iota
	// NotApplicable is the CPE marker "-", meaning the attribute has no meaning for the platform.
	NotApplicable
	// Literal is a fully defined value without wildcard characters.
	Literal
	// LiteralWithWildcard is a value carrying unquoted "*" or "?" characters.
	LiteralWithWildcard
)

var kindStr = []string{
	"ANY",
	"NA",
	"LITERAL",
	"LITERAL_WITH_WILDCARD",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) || k < 0 {
		return "UNKNOWN"
	}
	return kindStr[k]
}

var (
	AnyValue = Value{Kind: Any, Raw: "*"}
	NAValue  = Value{Kind: NotApplicable, Raw: "-"}
)

// Value is a classified attribute value. Raw holds the formatted string (2.3) encoding, with any escaping intact.
// The zero value is Any.
type Value struct {
	Kind Kind
	Raw  string
}

// NewValue classifies the given formatted string attribute value.
func NewValue(raw string) Value {
	switch raw {
	case wfn.Any, "*":
		return AnyValue
	case wfn.NA:
		return NAValue
	}
	if hasUnquotedWildcard(raw) {
		return Value{Kind: LiteralWithWildcard, Raw: raw}
	}
	return Value{Kind: Literal, Raw: raw}
}

// NewLiteral quotes every character of s the formatted string binding would otherwise interpret, so the value is
// always a Literal. An empty s is unconstrained.
func NewLiteral(s string) Value {
	switch s {
	case "":
		return AnyValue
	case "-":
		return Value{Kind: Literal, Raw: `\-`}
	}
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
		default:
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return Value{Kind: Literal, Raw: sb.String()}
}

func (v Value) String() string {
	if v.Raw == "" {
		return "*"
	}
	return v.Raw
}

// Unquoted returns the value with formatted string escaping removed (e.g. "node\.js" becomes "node.js" and
// "notepad\+\+" becomes "notepad++"). Unquoted wildcards are left as they are.
func (v Value) Unquoted() string {
	raw := v.String()
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
		}
		sb.WriteByte(raw[i])
	}
	return sb.String()
}

// Key is the value as stored in and looked up from the knowledge base: literals without their escaping, everything
// else by its raw encoding.
func (v Value) Key() string {
	if v.Kind == Literal {
		return v.Unquoted()
	}
	return v.String()
}

// IsConcrete indicates the value names something specific (a literal, wildcarded or not).
func (v Value) IsConcrete() bool {
	return v.Kind == Literal || v.Kind == LiteralWithWildcard
}

func hasUnquotedWildcard(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '*', '?':
			return true
		}
	}
	return false
}

// hasInteriorWildcard reports whether an unquoted wildcard appears anywhere other than the leading or trailing run of
// wildcard characters. The formatted string grammar only allows wildcards at either end of a value.
func hasInteriorWildcard(s string) bool {
	start := 0
	for start < len(s) && (s[start] == '*' || s[start] == '?') {
		start++
	}
	end := len(s)
	for end > start && (s[end-1] == '*' || s[end-1] == '?') && !isQuoted(s, end-1) {
		end--
	}
	return hasUnquotedWildcard(s[start:end])
}

// isQuoted reports whether the byte at idx is preceded by an odd number of escape characters.
func isQuoted(s string, idx int) bool {
	n := 0
	for i := idx - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}
