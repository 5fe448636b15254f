package matcher

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wagoodman/go-partybus"

	"github.com/anchore/cpematch/cpematch/event"
	"github.com/anchore/cpematch/cpematch/event/monitor"
	"github.com/anchore/cpematch/cpematch/match"
	"github.com/anchore/cpematch/cpematch/matcherr"
	"github.com/anchore/cpematch/cpematch/pkg"
	"github.com/anchore/cpematch/cpematch/store"
	"github.com/anchore/cpematch/internal/bus"
	"github.com/anchore/cpematch/internal/log"
	"github.com/anchore/cpematch/internal/telemetry"
)

// Matcher runs components through the exact tier, then the fuzzy tier when the exact tier came up empty for a
// component without an explicit CPE.
type Matcher struct {
	store  *store.Store
	config Config
	exact  *Exact
	fuzzy  *Fuzzy
}

func New(s *store.Store, cfg Config) *Matcher {
	return &Matcher{
		store:  s,
		config: cfg,
		exact:  &Exact{},
		fuzzy:  NewFuzzy(cfg.Fuzzy),
	}
}

// FindApplicable matches a single component against the current knowledge base snapshot. Failures of a tier are
// logged and noted as warnings on the result; only the absence of a knowledge base is returned as an error.
func (m *Matcher) FindApplicable(ctx context.Context, c pkg.Component) (match.Result, error) {
	c = c.WithID()
	snapshot, err := m.store.Acquire()
	if err != nil {
		return match.Result{Component: c}, err
	}
	defer snapshot.Release()

	return m.findApplicable(ctx, snapshot, c), nil
}

func (m *Matcher) findApplicable(ctx context.Context, snapshot *store.Snapshot, c pkg.Component) match.Result {
	telemetry.ComponentsMatched.Inc()
	result := match.Result{Component: c}

	if !c.HasIdentifyingData() {
		log.Debugf("nothing to match for %s: %v", c, matcherr.ErrNoIdentifyingData)
		result.Warnings = append(result.Warnings, matcherr.ErrNoIdentifyingData.Error())
		return result
	}

	exactMatches, err := m.exact.FindApplicable(snapshot.Provider, c)
	if err != nil {
		log.Warnf("exact matching failed for %s: %+v", c, err)
		result.Warnings = append(result.Warnings, err.Error())
	}
	matches := match.NewMatches(exactMatches...)

	if matches.Count() == 0 && !c.HasExplicitCPE() {
		fuzzyMatches, err := m.fuzzy.FuzzyMatch(ctx, snapshot, c)
		switch {
		case errors.Is(err, matcherr.ErrIndexUnavailable):
			log.Warnf("fuzzy matching skipped for %s: %v", c, err)
			bus.Degraded(c.String(), err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("fuzzy matching skipped: %v", err))
		case err != nil:
			log.Warnf("fuzzy matching failed for %s: %+v", c, err)
			result.Warnings = append(result.Warnings, err.Error())
		}
		matches.Add(fuzzyMatches...)
	}

	result.Matches = matches.Sorted()
	logMatches(c, result.Matches)
	return result
}

// FuzzyMatch runs only the fuzzy tier for a single component.
func (m *Matcher) FuzzyMatch(ctx context.Context, c pkg.Component) ([]match.Match, error) {
	c = c.WithID()
	snapshot, err := m.store.Acquire()
	if err != nil {
		return nil, err
	}
	defer snapshot.Release()

	return m.fuzzy.FuzzyMatch(ctx, snapshot, c)
}

func (m *Matcher) trackMatching(total int) (*counter, *counter) {
	componentsProcessed := newCounter(int64(total))
	matchesDiscovered := newCounter(0)

	bus.Publish(partybus.Event{
		Type: event.MatchingStarted,
		Value: monitor.Matching{
			ComponentsProcessed: componentsProcessed,
			MatchesDiscovered:   matchesDiscovered,
		},
	})
	return componentsProcessed, matchesDiscovered
}

type indexedResult struct {
	index  int
	result match.Result
}

// FindAll matches the components concurrently with a bounded pool of workers. Each component is matched against a
// single snapshot for both tiers. Results follow the order of the components; when the context is cancelled no new
// components are scheduled and the results of the components already matched are returned with the context error.
func (m *Matcher) FindAll(ctx context.Context, components []pkg.Component) ([]match.Result, error) {
	componentsProcessed, matchesDiscovered := m.trackMatching(len(components))

	results := make([]match.Result, len(components))
	done := make([]bool, len(components))

	work := make(chan int)
	out := make(chan indexedResult)

	var wg sync.WaitGroup
	for i := 0; i < m.config.workers(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				r, err := m.FindApplicable(ctx, components[idx])
				if err != nil {
					r.Warnings = append(r.Warnings, err.Error())
				}
				out <- indexedResult{index: idx, result: r}
			}
		}()
	}

	go func() {
		defer close(work)
		for idx := range components {
			select {
			case <-ctx.Done():
				return
			case work <- idx:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	for r := range out {
		results[r.index] = r.result
		done[r.index] = true
		componentsProcessed.Increment()
		matchesDiscovered.Add(int64(len(r.result.Matches)))
	}

	componentsProcessed.SetCompleted()
	matchesDiscovered.SetCompleted()

	if err := ctx.Err(); err != nil {
		var partial []match.Result
		for idx, ok := range done {
			if ok {
				partial = append(partial, results[idx])
			}
		}
		return partial, err
	}

	bus.Publish(partybus.Event{
		Type:  event.MatchingFinished,
		Value: results,
	})
	return results, nil
}

func logMatches(c pkg.Component, matches []match.Match) {
	if len(matches) > 0 {
		log.Debugf("found %d applicable records for %s", len(matches), c)
		for idx, m := range matches {
			var branch = "├──"
			if idx == len(matches)-1 {
				branch = "└──"
			}
			log.Debugf("  %s %s", branch, m.Summary())
		}
	}
}
