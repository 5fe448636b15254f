package cpe

import (
	"fmt"
	"strings"

	"github.com/anchore/packageurl-go"
)

// FromPackageURL derives an application CPE from a package URL. The vendor is the last namespace segment (falling back
// to the package name), the product is the package name and the version is left unconstrained when absent.
func FromPackageURL(purl string) (Name, error) {
	p, err := packageurl.FromString(purl)
	if err != nil {
		return Name{}, malformed(purl, fmt.Sprintf("unable to parse package URL: %v", err))
	}
	if p.Name == "" {
		return Name{}, malformed(purl, "package URL has no name")
	}

	vendor := p.Name
	if p.Namespace != "" {
		segments := strings.Split(strings.Trim(p.Namespace, "/"), "/")
		if last := segments[len(segments)-1]; last != "" {
			vendor = last
		}
	}

	n := AnyName().
		With(Part, Value{Kind: Literal, Raw: "a"}).
		With(Vendor, NewLiteral(vendor)).
		With(Product, NewLiteral(p.Name))
	if p.Version != "" {
		n = n.With(Version, NewLiteral(p.Version))
	}
	return n, nil
}
