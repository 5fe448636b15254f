package config

import (
	"fmt"
	"runtime"

	"github.com/spf13/viper"

	"github.com/anchore/cpematch/cpematch/matcher"
)

// matchConfig contains all matching-related configuration options available to the user via the application config.
type matchConfig struct {
	Workers int         `yaml:"workers" json:"workers" mapstructure:"workers"` // number of components matched concurrently
	Fuzzy   fuzzyConfig `yaml:"fuzzy" json:"fuzzy" mapstructure:"fuzzy"`       // settings for the search-index backed matcher
}

type fuzzyConfig struct {
	Enabled                   bool    `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	ExcludeComponentsWithPURL bool    `yaml:"exclude-components-with-purl" json:"exclude-components-with-purl" mapstructure:"exclude-components-with-purl"`
	MaxCandidates             int     `yaml:"max-candidates" json:"max-candidates" mapstructure:"max-candidates"`
	Similarity                float64 `yaml:"similarity" json:"similarity" mapstructure:"similarity"`
}

func (cfg matchConfig) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("match.workers", runtime.NumCPU())
	v.SetDefault("match.fuzzy.enabled", true)
	v.SetDefault("match.fuzzy.exclude-components-with-purl", false)
	v.SetDefault("match.fuzzy.max-candidates", matcher.DefaultMaxCandidates)
	v.SetDefault("match.fuzzy.similarity", matcher.DefaultSimilarity)
}

func (cfg *matchConfig) parseConfigValues() error {
	if cfg.Workers < 0 {
		return fmt.Errorf("match.workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.Fuzzy.Similarity <= 0 || cfg.Fuzzy.Similarity > 1 {
		return fmt.Errorf("match.fuzzy.similarity must be within (0, 1], got %v", cfg.Fuzzy.Similarity)
	}
	if cfg.Fuzzy.MaxCandidates < 1 {
		return fmt.Errorf("match.fuzzy.max-candidates must be positive, got %d", cfg.Fuzzy.MaxCandidates)
	}
	return nil
}

func (cfg matchConfig) ToMatcherConfig() matcher.Config {
	return matcher.Config{
		Workers: cfg.Workers,
		Fuzzy: matcher.FuzzyConfig{
			Enabled:                   cfg.Fuzzy.Enabled,
			ExcludeComponentsWithPURL: cfg.Fuzzy.ExcludeComponentsWithPURL,
			MaxCandidates:             cfg.Fuzzy.MaxCandidates,
			Similarity:                cfg.Fuzzy.Similarity,
		},
	}
}
