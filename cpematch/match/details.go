package match

import (
	"fmt"
	"strings"

	"github.com/mitchellh/hashstructure/v2"
)

type Details []Detail

type Detail struct {
	Type       Type        // the strategy that made the match (exact or fuzzy)
	SearchedBy interface{} // the attributes used to search --this indicates "how" the match was made
	Found      interface{} // the attributes of the record that were matched on
	Matcher    MatcherType // the matcher that discovered the match
	Confidence float64     // the certainty of the match as a ratio
}

// CPEParameters is what a component was searched by.
type CPEParameters struct {
	CPE       string   `json:"cpe"`
	Terms     []string `json:"terms,omitempty"`
	Component string   `json:"component"`
}

// CPEResult is what was found in the knowledge base.
type CPEResult struct {
	RecordID     string `json:"recordId"`
	CPE          string `json:"cpe"`
	VersionRange string `json:"versionRange"`
}

func (m Detail) String() string {
	return fmt.Sprintf("Detail(type=%q searchedBy=%+v found=%+v matcher=%q)", m.Type, m.SearchedBy, m.Found, m.Matcher)
}

func (m Details) Types() (tys []Type) {
	if len(m) == 0 {
		return nil
	}
	for _, d := range m {
		tys = append(tys, d.Type)
	}
	return tys
}

func (m Details) Matchers() (tys []MatcherType) {
	if len(m) == 0 {
		return nil
	}
	for _, d := range m {
		tys = append(tys, d.Matcher)
	}
	return tys
}

func (m Detail) ID() string {
	f, err := hashstructure.Hash(&m, hashstructure.FormatV2, &hashstructure.HashOptions{
		ZeroNil:      true,
		SlicesAsSets: true,
	})
	if err != nil {
		return ""
	}

	return fmt.Sprintf("%x", f)
}

func (m Details) Len() int {
	return len(m)
}

// Less orders exact matches before fuzzy ones, then by descending confidence.
func (m Details) Less(i, j int) bool {
	a := m[i]
	b := m[j]

	if a.Type != b.Type {
		at := typeOrder[a.Type]
		bt := typeOrder[b.Type]
		if at == 0 {
			return false
		} else if bt == 0 {
			return true
		}
		return at < bt
	}

	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}

	return strings.Compare(a.ID(), b.ID()) < 0
}

func (m Details) Swap(i, j int) {
	m[i], m[j] = m[j], m[i]
}
