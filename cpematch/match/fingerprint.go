package match

import (
	"fmt"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/anchore/cpematch/cpematch/pkg"
)

type Fingerprint struct {
	vulnerabilityID string
	recordID        string
	componentID     pkg.ID
}

func (m Fingerprint) String() string {
	return fmt.Sprintf("Fingerprint(vuln=%q record=%q component=%q)", m.vulnerabilityID, m.recordID, m.componentID)
}

func (m Fingerprint) ID() string {
	f, err := hashstructure.Hash(&m, hashstructure.FormatV2, &hashstructure.HashOptions{
		ZeroNil:      true,
		SlicesAsSets: true,
	})
	if err != nil {
		return ""
	}

	return fmt.Sprintf("%x", f)
}
