package json

import (
	"github.com/anchore/cpematch/cpematch/match"
	"github.com/anchore/cpematch/cpematch/pkg"
	"github.com/anchore/cpematch/internal"
	"github.com/anchore/cpematch/internal/version"
)

// Document represents the JSON document to be presented
type Document struct {
	Results    []Result   `json:"results"`
	Descriptor Descriptor `json:"descriptor"`
}

// Descriptor describes what created the document
type Descriptor struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type Result struct {
	Component pkg.Component `json:"component"`
	Matches   []Match       `json:"matches"`
	Warnings  []string      `json:"warnings,omitempty"`
}

type Match struct {
	VulnerabilityID string        `json:"vulnerabilityId"`
	RecordID        string        `json:"recordId"`
	CPE             string        `json:"cpe"`
	VersionRange    string        `json:"versionRange"`
	MatchDetails    []MatchDetail `json:"matchDetails"`
}

type MatchDetail struct {
	Type       string      `json:"type"`
	Matcher    string      `json:"matcher"`
	SearchedBy interface{} `json:"searchedBy"`
	Found      interface{} `json:"found"`
	Confidence float64     `json:"confidence"`
}

// NewDocument creates and populates a new JSON document struct from the given match results.
func NewDocument(results []match.Result) Document {
	doc := Document{
		Results: make([]Result, 0, len(results)),
		Descriptor: Descriptor{
			Name:    internal.ApplicationName,
			Version: version.FromBuild().Version,
		},
	}

	for _, r := range results {
		matches := make([]Match, 0, len(r.Matches))
		for _, m := range r.Matches {
			matches = append(matches, newMatch(m))
		}
		doc.Results = append(doc.Results, Result{
			Component: r.Component,
			Matches:   matches,
			Warnings:  r.Warnings,
		})
	}
	return doc
}

func newMatch(m match.Match) Match {
	c := m.Vulnerable.CPE23
	if c == "" {
		c = m.Vulnerable.CPE22
	}

	details := make([]MatchDetail, 0, len(m.Details))
	for _, d := range m.Details {
		details = append(details, MatchDetail{
			Type:       string(d.Type),
			Matcher:    d.Matcher.String(),
			SearchedBy: d.SearchedBy,
			Found:      d.Found,
			Confidence: d.Confidence,
		})
	}

	return Match{
		VulnerabilityID: m.Vulnerable.VulnerabilityID,
		RecordID:        m.Vulnerable.ID,
		CPE:             c,
		VersionRange:    m.Vulnerable.Range.String(),
		MatchDetails:    details,
	}
}
