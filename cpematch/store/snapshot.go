package store

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/anchore/cpematch/cpematch/search"
	"github.com/anchore/cpematch/cpematch/vulnerability"
	"github.com/anchore/cpematch/internal/log"
)

// Snapshot is one immutable generation of the knowledge base: the record provider and the search index built from the
// same records.
type Snapshot struct {
	Provider vulnerability.Provider
	Index    *search.Index
	Built    time.Time
	Records  int

	// the store holds one reference until the snapshot is retired
	refs      atomic.Int64
	closers   []func() error
	closeOnce sync.Once
	closeErr  error
}

// NewSnapshot bundles a provider and an index. The closers are called (in order) once the snapshot has been retired and
// released by every reader.
func NewSnapshot(provider vulnerability.Provider, index *search.Index, records int, closers ...func() error) *Snapshot {
	s := &Snapshot{
		Provider: provider,
		Index:    index,
		Built:    time.Now().UTC(),
		Records:  records,
		closers:  closers,
	}
	s.refs.Store(1)
	return s
}

// tryAcquire takes a reference unless the snapshot is already being closed.
func (s *Snapshot) tryAcquire() bool {
	for {
		n := s.refs.Load()
		if n <= 0 {
			return false
		}
		if s.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Release gives back a reference taken with Store.Acquire. The last release of a retired snapshot closes it.
func (s *Snapshot) Release() {
	if s == nil {
		return
	}
	if s.refs.Add(-1) == 0 {
		if err := s.close(); err != nil {
			log.Warnf("unable to close knowledge base snapshot built at %s: %+v", s.Built, err)
		}
	}
}

func (s *Snapshot) close() error {
	s.closeOnce.Do(func() {
		var errs error
		if s.Index != nil {
			if err := s.Index.Close(); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("unable to close search index: %w", err))
			}
		}
		for _, c := range s.closers {
			if err := c(); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
		s.closeErr = errs
	})
	return s.closeErr
}

// Closed reports whether the snapshot resources have been released.
func (s *Snapshot) Closed() bool {
	return s.refs.Load() <= 0
}
