package match

import (
	"fmt"
	"sort"

	"github.com/scylladb/go-set/strset"

	"github.com/anchore/cpematch/cpematch/pkg"
	"github.com/anchore/cpematch/cpematch/vulnerability"
)

var ErrCannotMerge = fmt.Errorf("unable to merge vulnerability matches")

// Match pairs a single component with a single applicable vulnerable software record.
type Match struct {
	Vulnerable vulnerability.VulnerableSoftware // the knowledge base record that applies
	Component  pkg.Component                    // the component used to search for a match
	Details    Details                          // all ways in which this particular match was made
}

func (m Match) String() string {
	return fmt.Sprintf("Match(component=%s record=%s types=%q)", m.Component, m.Vulnerable, m.Details.Types())
}

func (m Match) Summary() string {
	return fmt.Sprintf("vuln=%q types=%q", m.Vulnerable.VulnerabilityID, m.Details.Types())
}

func (m Match) Fingerprint() Fingerprint {
	return Fingerprint{
		vulnerabilityID: m.Vulnerable.VulnerabilityID,
		recordID:        m.Vulnerable.ID,
		componentID:     m.Component.ID,
	}
}

// Merge folds the details of another match for the same record and component into this one.
func (m *Match) Merge(other Match) error {
	if other.Fingerprint() != m.Fingerprint() {
		return ErrCannotMerge
	}

	detailIDs := strset.New()
	for _, d := range m.Details {
		detailIDs.Add(d.ID())
	}
	for _, d := range other.Details {
		if detailIDs.Has(d.ID()) {
			continue
		}
		m.Details = append(m.Details, d)
	}

	// for stable output
	sort.Sort(m.Details)

	return nil
}
