package cpe

import (
	"strings"

	"github.com/bmatcuk/doublestar/v2"

	"github.com/anchore/cpematch/cpematch/matcherr"
	"github.com/anchore/cpematch/internal/log"
)

// Relation is the set relation of a source (pattern) attribute value to a target (candidate) attribute value.
type Relation int

const (
	Undefined Relation = iota
	Equal
	Superset
	Subset
	Disjoint
)

var relationStr = []string{
	"UNDEFINED",
	"EQUAL",
	"SUPERSET",
	"SUBSET",
	"DISJOINT",
}

func (r Relation) String() string {
	if int(r) >= len(relationStr) || r < 0 {
		return relationStr[0]
	}
	return relationStr[r]
}

type relationFn func(source, target Value) Relation

func fixed(r Relation) relationFn {
	return func(Value, Value) Relation {
		return r
	}
}

// relations is indexed by [source kind][target kind].
var relations = [...][4]relationFn{
	Any: {
		Any:                 fixed(Equal),
		NotApplicable:       fixed(Superset),
		Literal:             fixed(Superset),
		LiteralWithWildcard: fixed(Superset),
	},
	NotApplicable: {
		Any:                 fixed(Subset),
		NotApplicable:       fixed(Equal),
		Literal:             fixed(Disjoint),
		LiteralWithWildcard: fixed(Disjoint),
	},
	Literal: {
		Any:                 fixed(Subset),
		NotApplicable:       fixed(Disjoint),
		Literal:             identical,
		LiteralWithWildcard: identical,
	},
	LiteralWithWildcard: {
		Any:                 fixed(Subset),
		NotApplicable:       fixed(Disjoint),
		Literal:             expand,
		LiteralWithWildcard: identical,
	},
}

// Relate computes the relation of the source value to the target value. Wildcards in the source are expanded against
// literal targets.
func Relate(source, target Value) Relation {
	return relations[source.Kind][target.Kind](source, target)
}

// RelateAttribute computes the relation of the source value to the target value for the given position. Source
// wildcards are only expanded where the position supports it, otherwise the value is compared as a literal.
func RelateAttribute(a Attribute, source, target Value) Relation {
	if source.Kind == LiteralWithWildcard && (!a.honorsWildcards() || hasInteriorWildcard(source.Raw)) {
		log.Debugf("comparing %s value %q as a literal: %v", a, source.Raw, matcherr.ErrUnsupportedWildcardPosition)
		source = Value{Kind: Literal, Raw: source.Raw}
	}
	return Relate(source, target)
}

// identical compares literals without their escaping (so "node\.js" equals "node.js"). Wildcard bearing values are
// compared by their raw encoding, where escaping is significant.
func identical(source, target Value) Relation {
	same := source.Raw == target.Raw
	if source.Kind == Literal && target.Kind == Literal {
		same = source.Unquoted() == target.Unquoted()
	}
	if same {
		return Equal
	}
	return Disjoint
}

func expand(source, target Value) Relation {
	matched, err := doublestar.Match(globPattern(source.Raw), globName(target.Unquoted()))
	if err != nil {
		log.Debugf("unable to expand wildcard value %q: %v", source.Raw, err)
		return Disjoint
	}
	if matched {
		return Superset
	}
	return Disjoint
}

// pathSeparator stands in for "/" since the glob matcher treats it as a path separator.
const pathSeparator = "\x00"

// globPattern converts a formatted string value into a glob pattern. Escaped characters stay escaped, unquoted
// wildcards keep their meaning and glob syntax the formatted string does not have is escaped.
func globPattern(raw string) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch c {
		case '\\':
			if i+1 < len(raw) {
				i++
				if raw[i] == '/' {
					sb.WriteString(pathSeparator)
				} else {
					sb.WriteByte('\\')
					sb.WriteByte(raw[i])
				}
			}
		case '/':
			sb.WriteString(pathSeparator)
		case '[', ']', '{', '}':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func globName(unquoted string) string {
	return strings.ReplaceAll(unquoted, "/", pathSeparator)
}
