package matcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/anchore/cpematch/cpematch/cpe"
	"github.com/anchore/cpematch/cpematch/match"
	"github.com/anchore/cpematch/cpematch/matcherr"
	"github.com/anchore/cpematch/cpematch/pkg"
	"github.com/anchore/cpematch/cpematch/store"
	"github.com/anchore/cpematch/internal/log"
	"github.com/anchore/cpematch/internal/telemetry"
)

// purl types still fuzzy matched when components with a package URL are excluded
var fuzzyPURLTypes = []string{"deb"}

// Fuzzy finds records by approximate product name through the search index, for components without a CPE that
// identifies them exactly.
type Fuzzy struct {
	config FuzzyConfig
}

func NewFuzzy(cfg FuzzyConfig) *Fuzzy {
	return &Fuzzy{config: cfg}
}

func (m *Fuzzy) Type() match.MatcherType {
	return match.FuzzyCPEMatcher
}

// FuzzyMatch searches the snapshot index by the names of the component and re-validates every hit against the
// component with the vendor and product left unconstrained. It returns matcherr.ErrIndexUnavailable when the snapshot
// has no usable index.
func (m *Fuzzy) FuzzyMatch(ctx context.Context, snapshot *store.Snapshot, c pkg.Component) ([]match.Match, error) {
	if reason := m.skipReason(c); reason != "" {
		log.Debugf("not fuzzy matching %s: %s", c, reason)
		telemetry.ComponentsSkipped.WithLabelValues(string(match.FuzzyMatch), reason).Inc()
		return nil, nil
	}

	componentCPE, cpeErr := c.CPEName()
	hasCPE := cpeErr == nil

	template := cpe.AnyName()
	if hasCPE {
		template = template.With(cpe.Part, componentCPE.Part())
	}

	terms := searchTerms(c, componentCPE, hasCPE)
	if len(terms) == 0 {
		telemetry.ComponentsSkipped.WithLabelValues(string(match.FuzzyMatch), "no-terms").Inc()
		return nil, nil
	}

	if snapshot == nil || snapshot.Index == nil {
		telemetry.ComponentsSkipped.WithLabelValues(string(match.FuzzyMatch), "index-unavailable").Inc()
		return nil, matcherr.ErrIndexUnavailable
	}

	hits, err := snapshot.Index.Search(ctx, terms, template, m.config.similarity(), m.config.maxCandidates())
	if err != nil {
		telemetry.ComponentsSkipped.WithLabelValues(string(match.FuzzyMatch), "index-unavailable").Inc()
		return nil, err
	}

	candidate := componentCPE
	if !hasCPE {
		candidate = syntheticCPE(template.Part(), c)
	}
	// the index vouched for the identity
	candidate = candidate.With(cpe.Vendor, cpe.AnyValue).With(cpe.Product, cpe.AnyValue)

	var matches []match.Match
	for _, hit := range hits {
		r, err := snapshot.Provider.GetByID(hit.RecordID)
		if err != nil {
			return nil, fmt.Errorf("unable to fetch record %q: %w", hit.RecordID, err)
		}
		if r == nil || !r.Vulnerable {
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
			Vulnerable: *r,
			Component:  c,
			Details: []match.Detail{
				{
					Type:    match.FuzzyMatch,
					Matcher: m.Type(),
					SearchedBy: match.CPEParameters{
						CPE:       template.String(),
						Terms:     terms,
						Component: c.String(),
					},
					Found:      newCPEResult(*r),
					Confidence: hit.Confidence,
				},
			},
		})
	}

	telemetry.MatchesFound.WithLabelValues(string(match.FuzzyMatch)).Add(float64(len(matches)))
	return matches, nil
}

func (m *Fuzzy) skipReason(c pkg.Component) string {
	if !m.config.Enabled {
		return "disabled"
	}
	if m.config.ExcludeComponentsWithPURL && c.PURL != "" {
		p := c.PackageURL()
		if p == nil || !lo.Contains(fuzzyPURLTypes, p.Type) {
			return "has-purl"
		}
	}
	return ""
}

// searchTerms are the names a component may go by: the product of its CPE, the name of its package URL and its own
// name, lowercased without duplicates.
func searchTerms(c pkg.Component, componentCPE cpe.Name, hasCPE bool) []string {
	var terms []string
	if hasCPE && componentCPE.Product().Kind == cpe.Literal {
		terms = append(terms, componentCPE.Product().Unquoted())
	}
	if p := c.PackageURL(); p != nil {
		terms = append(terms, p.Name)
	}
	terms = append(terms, c.Name)

	terms = lo.Map(terms, func(t string, _ int) string {
		return strings.ToLower(strings.TrimSpace(t))
	})
	return lo.Uniq(lo.Compact(terms))
}

// syntheticCPE describes a component without a CPE: cpe:2.3:<part>:*:<name>:<version>:*:*:*:*:*:*:*
func syntheticCPE(part cpe.Value, c pkg.Component) cpe.Name {
	return cpe.AnyName().
		With(cpe.Part, part).
		With(cpe.Product, cpe.NewLiteral(c.Name)).
		With(cpe.Version, cpe.NewLiteral(c.Version))
}
