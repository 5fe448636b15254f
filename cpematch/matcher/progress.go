package matcher

import (
	"sync/atomic"

	"github.com/wagoodman/go-progress"
)

var _ progress.Progressable = (*counter)(nil)

// counter is a progress.Progressable that may be advanced by the matching loop while a UI polls it.
type counter struct {
	current   atomic.Int64
	total     atomic.Int64
	completed atomic.Bool
}

func newCounter(total int64) *counter {
	c := &counter{}
	c.total.Store(total)
	return c
}

func (c *counter) Add(n int64) {
	c.current.Add(n)
}

func (c *counter) Increment() {
	c.current.Add(1)
}

func (c *counter) SetCompleted() {
	c.completed.Store(true)
}

func (c *counter) Current() int64 {
	return c.current.Load()
}

func (c *counter) Size() int64 {
	return c.total.Load()
}

func (c *counter) Error() error {
	if c.completed.Load() {
		return progress.ErrCompleted
	}
	return nil
}
