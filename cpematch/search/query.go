package search

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/anchore/cpematch/cpematch/cpe"
)

const (
	fmtStringRegexPrefix = `cpe\:2\.3\:`
	uriRegexPrefix       = `cpe\:\/`
	anyRegex             = ".*"
	componentSeparator   = `\:`
	maxFuzziness         = 2

	regexMetaCharacters = `\+*?()|[]{}^$`
)

// ToIndexQuery renders a regular expression matching the whole stored 2.3 formatted string of every record the
// pattern could match. Unconstrained attributes become ".*", the wildcards of a value become ".*" ("*") and "."
// ("?") and everything else is matched literally.
func ToIndexQuery(pattern cpe.Name) string {
	components := make([]string, 0, len(cpe.Attributes))
	for _, a := range cpe.Attributes {
		components = append(components, valueRegex(pattern.Get(a)))
	}
	return fmtStringRegexPrefix + strings.Join(components, componentSeparator)
}

// ToIndexQuery22 renders a regular expression matching the whole stored (padded) 2.2 URI of every record the pattern
// could match.
func ToIndexQuery22(pattern cpe.Name) string {
	components := pattern.URIComponents()
	for i, c := range components {
		if c == "" {
			components[i] = anyRegex
			continue
		}
		components[i] = uriComponentRegex(c)
	}
	return uriRegexPrefix + strings.Join(components, componentSeparator)
}

func valueRegex(v cpe.Value) string {
	if v.Kind == cpe.Any {
		return anyRegex
	}

	var sb strings.Builder
	raw := v.Raw
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch c {
		case '\\':
			if i+1 >= len(raw) {
				continue
			}
			i++
			switch next := raw[i]; next {
			case '.', '-', '_':
				// the formatted string binding leaves these unquoted
				literalRegex(&sb, next)
			default:
				sb.WriteString(`\\`)
				literalRegex(&sb, next)
			}
		case '*':
			sb.WriteString(anyRegex)
		case '?':
			sb.WriteByte('.')
		default:
			literalRegex(&sb, c)
		}
	}
	return sb.String()
}

func uriComponentRegex(c string) string {
	var sb strings.Builder
	for i := 0; i < len(c); i++ {
		switch {
		case strings.HasPrefix(c[i:], "%02"):
			sb.WriteString(anyRegex)
			i += 2
		case strings.HasPrefix(c[i:], "%01"):
			sb.WriteByte('.')
			i += 2
		default:
			literalRegex(&sb, c[i])
		}
	}
	return sb.String()
}

func literalRegex(sb *strings.Builder, c byte) {
	switch c {
	case ':':
		sb.WriteString(componentSeparator)
	case '/':
		sb.WriteString(`\/`)
	case '.':
		sb.WriteByte(c)
	default:
		if strings.IndexByte(regexMetaCharacters, c) >= 0 {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
}

// Fuzziness derives the edit distance tolerated for a term from a similarity threshold in (0, 1]: the share of the
// term that may differ, with at least one edit for terms of five or more characters and at most two edits.
func Fuzziness(term string, similarity float64) int {
	length := utf8.RuneCountInString(term)
	edits := int(math.Floor((1 - similarity) * float64(length)))
	if edits < 1 && length >= 5 {
		edits = 1
	}
	switch {
	case edits < 0:
		return 0
	case edits > maxFuzziness:
		return maxFuzziness
	}
	return edits
}
