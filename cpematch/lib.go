package cpematch

import (
	"context"

	"github.com/wagoodman/go-partybus"

	"github.com/anchore/cpematch/cpematch/db"
	"github.com/anchore/cpematch/cpematch/logger"
	"github.com/anchore/cpematch/cpematch/match"
	"github.com/anchore/cpematch/cpematch/matcher"
	"github.com/anchore/cpematch/cpematch/pkg"
	"github.com/anchore/cpematch/cpematch/store"
	"github.com/anchore/cpematch/internal/bus"
	"github.com/anchore/cpematch/internal/log"
)

// LoadKnowledgeBase publishes the knowledge base found in the configured directory into a new store.
func LoadKnowledgeBase(cfg db.Config) (*store.Store, *db.Curator, error) {
	s := store.New()
	curator := db.NewCurator(cfg, s)
	if err := curator.Load(); err != nil {
		return nil, nil, err
	}
	return s, curator, nil
}

// FindApplicable returns every knowledge base record applicable to the component, exact matches first and fuzzy
// matches when the component has no explicit CPE and nothing matched exactly. Degraded matching is reported through
// the result warnings.
func FindApplicable(s *store.Store, cfg matcher.Config, c pkg.Component) match.Result {
	result, err := matcher.New(s, cfg).FindApplicable(context.Background(), c)
	if err != nil {
		log.Warnf("unable to match %s: %+v", c, err)
		result.Warnings = append(result.Warnings, err.Error())
	}
	return result
}

// FuzzyMatch returns the records found for the component through the search index alone.
func FuzzyMatch(s *store.Store, cfg matcher.Config, c pkg.Component) []match.Match {
	matches, err := matcher.New(s, cfg).FuzzyMatch(context.Background(), c)
	if err != nil {
		log.Warnf("unable to fuzzy match %s: %+v", c, err)
	}
	return matches
}

func SetLogger(logger logger.Logger) {
	log.Log = logger
}

func SetBus(b *partybus.Bus) {
	bus.Set(b)
}
