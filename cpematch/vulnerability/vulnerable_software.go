package vulnerability

import (
	"fmt"

	"github.com/anchore/cpematch/cpematch/cpe"
	"github.com/anchore/cpematch/cpematch/version"
)

// VulnerableSoftware is a knowledge base record: a CPE pattern (optionally bounded by a version range) that a
// vulnerability applies to.
type VulnerableSoftware struct {
	ID              string        `json:"id"`
	VulnerabilityID string        `json:"vulnerabilityId"`
	CPE23           string        `json:"cpe23Uri,omitempty"`
	CPE22           string        `json:"cpe22Uri,omitempty"`
	Vendor          string        `json:"vendor"`  // lookup key of the vendor attribute
	Product         string        `json:"product"` // lookup key of the product attribute
	Version         string        `json:"version"` // lookup key of the version attribute
	Range           version.Range `json:"range"`
	Vulnerable      bool          `json:"vulnerable"`
}

// New creates a record from the given CPE (2.3 formatted string or 2.2 URI), filling in both CPE bindings and the
// identity used for lookups.
func New(id, vulnerabilityID, cpeStr string, r version.Range, vulnerable bool) (VulnerableSoftware, error) {
	n, err := cpe.New(cpeStr)
	if err != nil {
		return VulnerableSoftware{}, err
	}
	return VulnerableSoftware{
		ID:              id,
		VulnerabilityID: vulnerabilityID,
		CPE23:           n.BindToFmtString(),
		CPE22:           n.BindToURI(),
		Vendor:          n.Vendor().Key(),
		Product:         n.Product().Key(),
		Version:         n.Version().Key(),
		Range:           r,
		Vulnerable:      vulnerable,
	}, nil
}

// Name parses the record CPE, preferring the 2.3 binding.
func (v VulnerableSoftware) Name() (cpe.Name, error) {
	if v.CPE23 != "" {
		return cpe.New(v.CPE23)
	}
	return cpe.New(v.CPE22)
}

// ProductWildcard indicates the product attribute carries wildcard characters, meaning the record cannot be found by
// an exact product lookup.
func (v VulnerableSoftware) ProductWildcard() bool {
	n, err := v.Name()
	if err != nil {
		return false
	}
	return n.Product().Kind == cpe.LiteralWithWildcard
}

func (v VulnerableSoftware) String() string {
	c := v.CPE23
	if c == "" {
		c = v.CPE22
	}
	return fmt.Sprintf("VulnerableSoftware(id=%q vuln=%q cpe=%q range=%q)", v.ID, v.VulnerabilityID, c, v.Range)
}
