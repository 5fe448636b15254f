package match

import (
	"sort"
)

var _ sort.Interface = (*ByElements)(nil)

type ByElements []Match

// Len is the number of elements in the collection.
func (m ByElements) Len() int {
	return len(m)
}

// Less reports whether the element with index i should sort before the element with index j.
func (m ByElements) Less(i, j int) bool {
	a, b := m[i], m[j]
	if a.Vulnerable.VulnerabilityID != b.Vulnerable.VulnerabilityID {
		return a.Vulnerable.VulnerabilityID < b.Vulnerable.VulnerabilityID
	}
	if a.Component.Name != b.Component.Name {
		return a.Component.Name < b.Component.Name
	}
	if a.Component.Version != b.Component.Version {
		return a.Component.Version < b.Component.Version
	}
	if a.Vulnerable.CPE23 != b.Vulnerable.CPE23 {
		return a.Vulnerable.CPE23 < b.Vulnerable.CPE23
	}
	return a.Vulnerable.ID < b.Vulnerable.ID
}

// Swap swaps the elements with indexes i and j.
func (m ByElements) Swap(i, j int) {
	m[i], m[j] = m[j], m[i]
}
