package matcher

import (
	"errors"
	"fmt"

	"github.com/anchore/cpematch/cpematch/cpe"
	"github.com/anchore/cpematch/cpematch/match"
	"github.com/anchore/cpematch/cpematch/matcherr"
	"github.com/anchore/cpematch/cpematch/pkg"
	"github.com/anchore/cpematch/cpematch/vulnerability"
	"github.com/anchore/cpematch/internal/log"
	"github.com/anchore/cpematch/internal/telemetry"
)

// Exact finds the records whose CPE pattern (and version range) applies to the CPE of a component.
type Exact struct{}

func (m *Exact) Type() match.MatcherType {
	return match.CPEMatcher
}

// FindApplicable matches the explicit CPE of the component, or the CPE derived from its package URL. A component
// with neither has no exact matches.
func (m *Exact) FindApplicable(provider vulnerability.Provider, c pkg.Component) ([]match.Match, error) {
	candidate, err := c.CPEName()
	if err != nil {
		if errors.Is(err, matcherr.ErrNoIdentifyingData) {
			log.Debugf("no CPE to match exactly for %s", c)
			telemetry.ComponentsSkipped.WithLabelValues(string(match.ExactMatch), "no-cpe").Inc()
			return nil, nil
		}
		telemetry.ComponentsSkipped.WithLabelValues(string(match.ExactMatch), "malformed-cpe").Inc()
		return nil, fmt.Errorf("unable to resolve CPE of %s: %w", c, err)
	}

	records, err := provider.LookupByVendorProduct(candidate.Vendor().Key(), candidate.Product().Key())
	if err != nil {
		return nil, fmt.Errorf("unable to find records for %s: %w", candidate, err)
	}

	var matches []match.Match
	for _, r := range records {
		if !r.Vulnerable {
			continue
		}
		pattern, err := r.Name()
		if err != nil {
			log.Debugf("skipping record %q: %v", r.ID, err)
			telemetry.RecordsSkipped.WithLabelValues("malformed-cpe").Inc()
			continue
		}
		if !cpe.Matches(pattern, candidate, r.Range) {
			continue
		}
		matches = append(matches, match.Match{
			Vulnerable: r,
			Component:  c,
			Details: []match.Detail{
				{
					Type:    match.ExactMatch,
					Matcher: m.Type(),
					SearchedBy: match.CPEParameters{
						CPE:       candidate.String(),
						Component: c.String(),
					},
					Found:      newCPEResult(r),
					Confidence: 1.0,
				},
			},
		})
	}

	telemetry.MatchesFound.WithLabelValues(string(match.ExactMatch)).Add(float64(len(matches)))
	return matches, nil
}

func newCPEResult(r vulnerability.VulnerableSoftware) match.CPEResult {
	c := r.CPE23
	if c == "" {
		c = r.CPE22
	}
	return match.CPEResult{
		RecordID:     r.ID,
		CPE:          c,
		VersionRange: r.Range.String(),
	}
}
