package vulnerability

// Provider is the knowledge base as seen by the matcher.
type Provider interface {
	// LookupByVendorProduct returns every record whose vendor is the given vendor or "*" and whose product is the
	// given product or "*", along with product wildcard records of the vendor. A "*" argument leaves the attribute
	// unconstrained.
	LookupByVendorProduct(vendor, product string) ([]VulnerableSoftware, error)
	// GetByID returns the record with the given ID, or nil when there is none.
	GetByID(id string) (*VulnerableSoftware, error)
	// AllRecords returns every record (used when building the search index).
	AllRecords() ([]VulnerableSoftware, error)
}
