package cpe

import (
	"github.com/anchore/cpematch/cpematch/version"
	"github.com/anchore/cpematch/internal/log"
)

// Compare relates every attribute of the pattern to the same attribute of the candidate.
func Compare(pattern, candidate Name) [attributeCount]Relation {
	var relations [attributeCount]Relation
	for _, a := range Attributes {
		relations[a] = RelateAttribute(a, pattern.attrs[a], candidate.attrs[a])
	}
	return relations
}

// Matches indicates whether the candidate falls within the pattern. When a version range is given it decides the
// version attribute instead of (or after) the version relation.
func Matches(pattern, candidate Name, r version.Range) bool {
	relations := Compare(pattern, candidate)

	for _, a := range Attributes {
		if a == Version && !r.IsEmpty() {
			continue
		}
		if relations[a] == Disjoint {
			return false
		}
	}

	// a pattern that is broader on one identity attribute and narrower on the other is ambiguous
	if opposed(relations[Vendor], relations[Product]) {
		return false
	}

	if r.IsEmpty() {
		return true
	}
	return matchesRange(pattern.Version(), candidate.Version(), relations[Version], r)
}

func opposed(a, b Relation) bool {
	return (a == Subset && b == Superset) || (a == Superset && b == Subset)
}

func matchesRange(pattern, candidate Value, relation Relation, r version.Range) bool {
	if !pattern.IsConcrete() && relation == Disjoint {
		return false
	}

	switch candidate.Kind {
	case Any:
		return true
	case NotApplicable:
		return false
	case LiteralWithWildcard:
		log.Debugf("unable to check wildcard version %q against range %q", candidate.Raw, r)
		return false
	}

	contained, err := r.Contains(candidate.Unquoted())
	if err != nil {
		log.Debugf("unable to check version %q against range %q: %v", candidate.Raw, r, err)
		return false
	}
	return contained
}
