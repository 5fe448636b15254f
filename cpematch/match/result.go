package match

import (
	"github.com/anchore/cpematch/cpematch/pkg"
)

// Result is the outcome of matching a single component: every applicable record plus any notes on degraded matching
// (e.g. fuzzy matching skipped since the search index is unavailable).
type Result struct {
	Component pkg.Component
	Matches   []Match
	Warnings  []string
}

// Strategy reports the match types present in the result.
func (r Result) Strategy() []Type {
	seen := make(map[Type]struct{})
	var types []Type
	for _, m := range r.Matches {
		for _, t := range m.Details.Types() {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			types = append(types, t)
		}
	}
	return types
}
