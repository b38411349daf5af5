// Package admission guards the shared generation resource. The model
// handles one generation at a time, so exactly one caller may hold the
// execution slot; a bounded number of further callers wait in arrival
// order, everyone beyond that is rejected immediately.
package admission

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var ErrBusy = errors.New("generation queue is full")

type Controller struct {
	slot chan struct{}

	outstanding atomic.Int64
	limit       int64
}

// New creates a controller with one execution slot and up to depth waiting
// callers. A negative depth is treated as zero (reject all concurrency).
func New(depth int) *Controller {
	if depth < 0 {
		depth = 0
	}

	return &Controller{
		slot:  make(chan struct{}, 1),
		limit: int64(depth) + 1,
	}
}

// Acquire admits the caller to the wait queue, or fails with ErrBusy
// without blocking on the in-flight generation. It returns once the caller
// holds the execution slot; the release func must run on every exit path
// and is safe to call more than once.
func (c *Controller) Acquire(ctx context.Context) (func(), error) {
	if c.outstanding.Add(1) > c.limit {
		c.outstanding.Add(-1)
		return nil, ErrBusy
	}

	select {
	case c.slot <- struct{}{}:
		var once sync.Once

		release := func() {
			once.Do(func() {
				<-c.slot
				c.outstanding.Add(-1)
			})
		}

		return release, nil

	case <-ctx.Done():
		c.outstanding.Add(-1)
		return nil, ctx.Err()
	}
}

// Outstanding reports the number of callers holding or waiting for the
// slot. Exposed for the status endpoint and tests.
func (c *Controller) Outstanding() int {
	return int(c.outstanding.Load())
}
