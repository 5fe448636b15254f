package store

import (
	"sync/atomic"

	"github.com/anchore/cpematch/cpematch/matcherr"
	"github.com/anchore/cpematch/internal/log"
)

// Store publishes the current knowledge base snapshot. Readers acquire the snapshot for the duration of a unit of work
// and are never blocked by a refresh; a refresh never mutates a published snapshot.
type Store struct {
	current atomic.Pointer[Snapshot]
}

func New() *Store {
	return &Store{}
}

// Acquire takes a reference on the current snapshot. Callers must Release it when done.
func (s *Store) Acquire() (*Snapshot, error) {
	for {
		snap := s.current.Load()
		if snap == nil {
			return nil, matcherr.ErrNoKnowledgeBase
		}
		if snap.tryAcquire() {
			return snap, nil
		}
		// the snapshot was retired between the load and the acquire, the next load sees its replacement
	}
}

// Swap publishes the given snapshot and retires the previous one. The previous snapshot is closed as soon as its last
// reader releases it.
func (s *Store) Swap(next *Snapshot) {
	prev := s.current.Swap(next)
	if prev == nil {
		return
	}
	log.Debugf("retiring knowledge base snapshot built at %s", prev.Built)
	prev.Release()
}

// Current returns the published snapshot without taking a reference.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Close retires the published snapshot.
func (s *Store) Close() error {
	prev := s.current.Swap(nil)
	if prev == nil {
		return nil
	}
	if prev.refs.Add(-1) == 0 {
		return prev.close()
	}
	return nil
}
