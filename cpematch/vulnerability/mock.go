package vulnerability

import (
	"github.com/anchore/cpematch/cpematch/cpe"
)

var _ Provider = (*MockProvider)(nil)

// MockProvider is an in-memory provider, holding records in insertion order.
type MockProvider struct {
	Records []VulnerableSoftware
}

func NewMockProvider(records ...VulnerableSoftware) *MockProvider {
	return &MockProvider{
		Records: records,
	}
}

func (m *MockProvider) LookupByVendorProduct(vendor, product string) ([]VulnerableSoftware, error) {
	var results []VulnerableSoftware
	for _, r := range m.Records {
		if !lookupKeyMatches(vendor, r.Vendor) {
			continue
		}
		if lookupKeyMatches(product, r.Product) || productWildcardMatches(vendor, r) {
			results = append(results, r)
		}
	}
	return results, nil
}

func (m *MockProvider) GetByID(id string) (*VulnerableSoftware, error) {
	for _, r := range m.Records {
		if r.ID == id {
			r := r
			return &r, nil
		}
	}
	return nil, nil
}

func (m *MockProvider) AllRecords() ([]VulnerableSoftware, error) {
	return m.Records, nil
}

// productWildcardMatches mirrors the product wildcard index lookups: a record with a wildcarded product is a candidate
// for its own vendor and, when the record vendor is unconstrained, for every vendor. An unconstrained vendor only
// reaches the records with an unconstrained vendor, since a concrete record vendor is narrower than the candidate.
func productWildcardMatches(vendor string, r VulnerableSoftware) bool {
	if !r.ProductWildcard() {
		return false
	}
	return r.Vendor == cpe.AnyValue.Raw || vendor != cpe.AnyValue.Raw
}

// lookupKeyMatches mirrors the index lookups of the sqlite store: an unconstrained key matches everything, otherwise
// a record matches when it has the same key or is unconstrained itself.
func lookupKeyMatches(key, recordKey string) bool {
	if key == cpe.AnyValue.Raw {
		return true
	}
	return recordKey == key || recordKey == cpe.AnyValue.Raw
}
