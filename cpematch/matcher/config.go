package matcher

import "runtime"

const (
	DefaultSimilarity    = 0.88
	DefaultMaxCandidates = 100
)

type Config struct {
	// Workers bounds the number of components matched concurrently (NumCPU when not positive)
	Workers int
	Fuzzy   FuzzyConfig
}

type FuzzyConfig struct {
	Enabled bool
	// ExcludeComponentsWithPURL skips fuzzy matching for components with a package URL, except deb packages
	ExcludeComponentsWithPURL bool
	MaxCandidates             int
	// Similarity is the share of a search term that must match a product name, in (0, 1]
	Similarity float64
}

func DefaultConfig() Config {
	return Config{
		Workers: runtime.NumCPU(),
		Fuzzy: FuzzyConfig{
			Enabled:                   true,
			ExcludeComponentsWithPURL: false,
			MaxCandidates:             DefaultMaxCandidates,
			Similarity:                DefaultSimilarity,
		},
	}
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

func (c FuzzyConfig) maxCandidates() int {
	if c.MaxCandidates <= 0 {
		return DefaultMaxCandidates
	}
	return c.MaxCandidates
}

func (c FuzzyConfig) similarity() float64 {
	if c.Similarity <= 0 || c.Similarity > 1 {
		return DefaultSimilarity
	}
	return c.Similarity
}
