package cpe

// Attribute is a position within a CPE name.
type Attribute int

const (
	Part Attribute = iota
	Vendor
	Product
	Version
	Update
	Edition
	Language
	SWEdition
	TargetSW
	TargetHW
	Other
)

const attributeCount = int(Other) + 1

// Attributes lists every position in matching order.
var Attributes = []Attribute{
	Part,
	Vendor,
	Product,
	Version,
	Update,
	Edition,
	Language,
	SWEdition,
	TargetSW,
	TargetHW,
	Other,
}

var attributeStr = []string{
	"part",
	"vendor",
	"product",
	"version",
	"update",
	"edition",
	"language",
	"sw_edition",
	"target_sw",
	"target_hw",
	"other",
}

func (a Attribute) String() string {
	if int(a) >= len(attributeStr) || a < 0 {
		return "unknown"
	}
	return attributeStr[a]
}

// honorsWildcards indicates whether a wildcard in a pattern value at this position is expanded during matching. Vendor
// wildcards are compared as opaque literals (the knowledge base lookup cannot expand them either).
func (a Attribute) honorsWildcards() bool {
	return a != Vendor
}
