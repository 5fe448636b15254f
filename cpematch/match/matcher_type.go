package match

const (
	UnknownMatcherType MatcherType = iota
	CPEMatcher
	FuzzyCPEMatcher
)

var matcherTypeStr = []string{
	"UnknownMatcherType",
	"cpe-matcher",
	"fuzzy-cpe-matcher",
}

var AllMatcherTypes = []MatcherType{
	CPEMatcher,
	FuzzyCPEMatcher,
}

type MatcherType int

func (f MatcherType) String() string {
	if int(f) >= len(matcherTypeStr) || f < 0 {
		return matcherTypeStr[0]
	}

	return matcherTypeStr[f]
}
