package match

import (
	"sort"

	"github.com/anchore/cpematch/cpematch/pkg"
	"github.com/anchore/cpematch/internal/log"
)

type Matches struct {
	byFingerprint map[Fingerprint]Match
	byComponent   map[pkg.ID][]Fingerprint
}

func NewMatches(matches ...Match) Matches {
	m := Matches{
		byFingerprint: make(map[Fingerprint]Match),
		byComponent:   make(map[pkg.ID][]Fingerprint),
	}
	m.Add(matches...)
	return m
}

// GetByComponentID returns the matches of a single component.
func (r *Matches) GetByComponentID(id pkg.ID) (matches []Match) {
	for _, fingerprint := range r.byComponent[id] {
		matches = append(matches, r.byFingerprint[fingerprint])
	}
	return matches
}

func (r *Matches) Merge(other Matches) {
	for _, fingerprints := range other.byComponent {
		for _, fingerprint := range fingerprints {
			r.Add(other.byFingerprint[fingerprint])
		}
	}
}

// Add records matches, merging the details of matches already seen for the same record and component.
func (r *Matches) Add(matches ...Match) {
	for _, newMatch := range matches {
		fingerprint := newMatch.Fingerprint()

		if existingMatch, exists := r.byFingerprint[fingerprint]; exists {
			if err := existingMatch.Merge(newMatch); err != nil {
				log.Warnf("unable to merge matches: original=%q new=%q : %v", existingMatch.String(), newMatch.String(), err)
				continue
			}
			r.byFingerprint[fingerprint] = existingMatch
			continue
		}

		r.byFingerprint[fingerprint] = newMatch
		r.byComponent[newMatch.Component.ID] = append(r.byComponent[newMatch.Component.ID], fingerprint)
	}
}

func (r *Matches) Sorted() []Match {
	matches := make([]Match, 0, len(r.byFingerprint))
	for _, m := range r.byFingerprint {
		matches = append(matches, m)
	}

	sort.Sort(ByElements(matches))

	return matches
}

// Count returns the total number of matches
func (r *Matches) Count() int {
	return len(r.byFingerprint)
}
