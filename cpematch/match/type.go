package match

const (
	ExactMatch Type = "exact-match"
	FuzzyMatch Type = "fuzzy-match"
)

// Type is the strategy that produced a match.
type Type string

var typeOrder = map[Type]int{
	ExactMatch: 1,
	FuzzyMatch: 2,
}
