package pkg

import (
	"fmt"

	"github.com/anchore/packageurl-go"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/anchore/cpematch/cpematch/cpe"
	"github.com/anchore/cpematch/cpematch/matcherr"
)

// ID represents a unique value for each component being matched.
type ID string

// Component is a piece of software to find applicable vulnerable software records for. Matching only reads it.
type Component struct {
	ID      ID     `json:"id,omitempty" hash:"ignore"`
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
	CPE     string `json:"cpe,omitempty"`  // an explicit CPE 2.3 formatted string or 2.2 URI
	PURL    string `json:"purl,omitempty"` // the Package URL (see https://github.com/package-url/purl-spec)
}

// New returns a component with its ID derived from the identifying fields.
func New(name, version, cpeStr, purl string) Component {
	c := Component{
		Name:    name,
		Version: version,
		CPE:     cpeStr,
		PURL:    purl,
	}
	c.ID = c.fingerprint()
	return c
}

func (c Component) fingerprint() ID {
	f, err := hashstructure.Hash(c, hashstructure.FormatV2, &hashstructure.HashOptions{
		ZeroNil: true,
	})
	if err != nil {
		return ID(fmt.Sprintf("%s@%s", c.Name, c.Version))
	}
	return ID(fmt.Sprintf("%x", f))
}

// WithID fills in a missing ID.
func (c Component) WithID() Component {
	if c.ID == "" {
		c.ID = c.fingerprint()
	}
	return c
}

func (c Component) String() string {
	switch {
	case c.CPE != "":
		return fmt.Sprintf("Component(cpe=%q)", c.CPE)
	case c.PURL != "":
		return fmt.Sprintf("Component(purl=%q)", c.PURL)
	}
	return fmt.Sprintf("Component(name=%q version=%q)", c.Name, c.Version)
}

// HasIdentifyingData indicates there is something to search by.
func (c Component) HasIdentifyingData() bool {
	return c.CPE != "" || c.PURL != "" || c.Name != ""
}

// HasExplicitCPE indicates the component was given a CPE by its producer (not derived).
func (c Component) HasExplicitCPE() bool {
	return c.CPE != ""
}

// CPEName resolves the CPE to match with: the explicit CPE when present, otherwise one derived from the package URL.
func (c Component) CPEName() (cpe.Name, error) {
	if c.CPE != "" {
		return cpe.New(c.CPE)
	}
	if c.PURL != "" {
		return cpe.FromPackageURL(c.PURL)
	}
	return cpe.Name{}, fmt.Errorf("%w: %s", matcherr.ErrNoIdentifyingData, c)
}

// PackageURL parses the component package URL, returning nil when there is none (or it is invalid).
func (c Component) PackageURL() *packageurl.PackageURL {
	if c.PURL == "" {
		return nil
	}
	p, err := packageurl.FromString(c.PURL)
	if err != nil {
		return nil
	}
	return &p
}
